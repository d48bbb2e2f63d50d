package web

import (
	"io/fs"
	"net/http"
)

// Assets serves the files under subdir of fsys at urlPrefix. It panics if
// subdir is not a valid path, which only happens with a bad embed pattern.
func Assets(fsys fs.FS, subdir, urlPrefix string) http.Handler {
	sub, err := fs.Sub(fsys, subdir)
	if err != nil {
		panic("web: invalid asset directory: " + err.Error())
	}
	return http.StripPrefix(urlPrefix, http.FileServer(http.FS(sub)))
}
