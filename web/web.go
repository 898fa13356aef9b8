// Package web embeds the browser upload page so the server binary ships
// self-contained.
package web

import (
	"embed"
	"io/fs"
)

//go:embed static
var staticFS embed.FS

// IndexPage returns the upload page HTML.
func IndexPage() []byte {
	data, err := staticFS.ReadFile("static/index.html")
	if err != nil {
		// The file is embedded at build time; missing means a broken build.
		panic(err)
	}
	return data
}

// Static returns the static asset tree rooted at its contents.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
