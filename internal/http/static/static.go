// Package static serves the public assets (the /add form and anything
// else dropped into the static directory).
//
// http.FileServer answers misses with its own "404 page not found" page
// and lists directories; both are unwanted here, so lookups are done by
// hand and misses are handed to the caller's not-found handler.
package static

import (
	"net/http"
	"path"
)

// Dir serves files under root. Directories serve their index.html when
// present; everything else that does not resolve to a file goes to
// notFound.
func Dir(root string, notFound http.Handler) http.HandlerFunc {
	fsys := http.Dir(root)

	return func(w http.ResponseWriter, r *http.Request) {
		// Clean on a rooted path drops any ".." that would climb out of root.
		name := path.Clean("/" + r.URL.Path)

		if serve(w, r, fsys, name) || serve(w, r, fsys, path.Join(name, "index.html")) {
			return
		}
		notFound.ServeHTTP(w, r)
	}
}

// File always serves the single file name under root, whatever the
// request path. It backs GET /add.
func File(root, name string, notFound http.Handler) http.HandlerFunc {
	fsys := http.Dir(root)

	return func(w http.ResponseWriter, r *http.Request) {
		if !serve(w, r, fsys, "/"+name) {
			notFound.ServeHTTP(w, r)
		}
	}
}

// serve writes the regular file name and reports whether it did.
func serve(w http.ResponseWriter, r *http.Request, fsys http.FileSystem, name string) bool {
	f, err := fsys.Open(name)
	if err != nil {
		return false
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || info.IsDir() {
		return false
	}

	// ServeContent handles Range, If-Modified-Since and the Content-Type
	// sniffing from the file extension.
	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
	return true
}
