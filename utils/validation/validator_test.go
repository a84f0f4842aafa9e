package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type courseInput struct {
	Title       string `json:"title" validate:"notblank"`
	Description string `json:"description" validate:"required"`
	Category    string `json:"category" validate:"omitempty,oneof=TEACHING LEADERSHIP"`
}

func TestMessageUsesJSONNames(t *testing.T) {
	v := NewValidator()

	err := v.ValidateStruct(courseInput{Title: "   ", Description: "x"})
	assert.Error(t, err)
	assert.Equal(t, "title is required", Message(err))

	err = v.ValidateStruct(courseInput{Title: "a", Description: "b", Category: "OTHER"})
	assert.Equal(t, "category must be one of: TEACHING, LEADERSHIP", Message(err))

	assert.NoError(t, v.ValidateStruct(courseInput{Title: "a", Description: "b"}))
}

func TestFormatValidationErrors(t *testing.T) {
	v := NewValidator()

	fields := FormatValidationErrors(v.ValidateStruct(courseInput{}))
	assert.Equal(t, map[string]string{
		"title":       "title is required",
		"description": "description is required",
	}, fields)
}

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "hello", SanitizeString("  hel\x00lo \n"))
}

func TestIsUUID(t *testing.T) {
	assert.True(t, IsUUID("5f0c2a8e-3b1d-4c6e-9a7f-2d4b6e8f0a1c"))
	assert.False(t, IsUUID("does-not-exist"))
	assert.False(t, IsUUID(""))
	assert.False(t, IsUUID("urn:uuid:5f0c2a8e-3b1d-4c6e-9a7f-2d4b6e8f0a1c"))
	assert.False(t, IsUUID("5f0c2a8e-3b1d-4c6e-9a7f-2d4b6e8f0a1c' OR 1=1"))
}
