package web

import (
	"embed"
	"io/fs"
)

//go:embed static
var staticFS embed.FS

// FS returns the front-end assets rooted at the static directory.
func FS() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err) // static is embedded at build time
	}

	return sub
}
