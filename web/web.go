// Package web embeds the browser frontend served at the site root.
package web

import (
	"embed"
	"io/fs"
)

//go:embed static
var assets embed.FS

// Assets returns the frontend files rooted at the static directory.
func Assets() fs.FS {
	sub, err := fs.Sub(assets, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
