// Package web holds the embedded templates and browser assets of the public site and console.
package web

import (
	"embed"
	"io/fs"
	"net/http"
	"time"

	"github.com/gofiber/template/html/v2"
)

//go:embed templates
var templates embed.FS

//go:embed static
var static embed.FS

// Templates is the template tree rooted at web/templates
func Templates() http.FileSystem {
	return subFS(templates, "templates")
}

// Static is the asset tree rooted at web/static
func Static() http.FileSystem {
	return subFS(static, "static")
}

func subFS(root embed.FS, dir string) http.FileSystem {
	sub, err := fs.Sub(root, dir)
	if err != nil {
		// the directory is embedded at compile time
		panic(err)
	}
	return http.FS(sub)
}

// NewEngine builds the html view engine over the embedded templates
func NewEngine() *html.Engine {
	engine := html.NewFileSystem(Templates(), ".html")
	engine.AddFunc("year", func() int { return time.Now().Year() })
	engine.AddFunc("millis", func(d time.Duration) int64 { return d.Milliseconds() })
	engine.AddFunc("deref", func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	})
	return engine
}
