package video

import (
	"testing"

	"github.com/sahilchouksey/institute-site/model"
	"github.com/stretchr/testify/assert"
)

func TestExtractYouTubeID(t *testing.T) {
	cases := map[string]string{
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ":           "dQw4w9WgXcQ",
		"https://youtube.com/watch?feature=share&v=dQw4w9WgXcQ": "dQw4w9WgXcQ",
		"https://www.youtube.com/embed/dQw4w9WgXcQ":             "dQw4w9WgXcQ",
		"https://www.youtube.com/v/dQw4w9WgXcQ":                 "dQw4w9WgXcQ",
		"https://youtube.com/shorts/dQw4w9WgXcQ":                "dQw4w9WgXcQ",
		"https://youtu.be/dQw4w9WgXcQ":                          "dQw4w9WgXcQ",
	}
	for url, want := range cases {
		got, ok := ExtractYouTubeID(url)
		assert.True(t, ok, url)
		assert.Equal(t, want, got, url)
	}

	for _, url := range []string{"https://vimeo.com/76979871", "not a url", "https://youtu.be/short"} {
		_, ok := ExtractYouTubeID(url)
		assert.False(t, ok, url)
	}
}

func TestApplySource(t *testing.T) {
	var v model.Video
	applySource(&v, "https://youtu.be/dQw4w9WgXcQ")
	assert.Equal(t, "YOUTUBE", v.Platform)
	if assert.NotNil(t, v.ExternalID) {
		assert.Equal(t, "dQw4w9WgXcQ", *v.ExternalID)
	}

	applySource(&v, "https://vimeo.com/76979871")
	assert.Equal(t, "OTHER", v.Platform)
	assert.Nil(t, v.ExternalID)
	assert.Equal(t, "https://vimeo.com/76979871", v.VideoURL)
}
