package assets

import (
	"embed"
	"io/fs"
)

//go:embed web
var web embed.FS

// WebFS returns the web assets rooted at the site root: index.html and static/.
func WebFS() fs.FS {
	sub, err := fs.Sub(web, "web")
	if err != nil {
		panic(err)
	}
	return sub
}
