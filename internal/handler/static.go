package handler

import (
	"embed"
	"io/fs"
	"net/http"
	"strings"
)

//go:embed static
var staticFS embed.FS

// StaticHandler serves the embedded stylesheets and images under /static/.
type StaticHandler struct {
	files http.Handler
	root  fs.FS
}

func NewStaticHandler() *StaticHandler {
	root, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return &StaticHandler{files: http.FileServerFS(root), root: root}
}

func (h *StaticHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(r.URL.Path, "/static/")
	// Directory listings are never exposed.
	if name == "" || strings.HasSuffix(name, "/") {
		http.NotFound(w, r)
		return
	}
	info, err := fs.Stat(h.root, name)
	if err != nil || info.IsDir() {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Cache-Control", "public, max-age=86400")
	r2 := r.Clone(r.Context())
	r2.URL.Path = "/" + name
	h.files.ServeHTTP(w, r2)
}
