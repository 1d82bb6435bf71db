package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gorilla/mux"
)

// Pages serves the pre-built front-end bundle. It owns no business logic
// and must not shadow the /api namespace.
type Pages struct {
	webDir string
}

// NewPages creates a Pages instance serving files from webDir.
func NewPages(webDir string) *Pages {
	return &Pages{webDir: webDir}
}

// Register mounts the page and asset routes on the router.
func (p *Pages) Register(r *mux.Router) {
	r.HandleFunc("/", p.Index).Methods("GET")
	// The front-end was historically reachable under /frontend as well.
	r.HandleFunc("/frontend/index.html", p.Index).Methods("GET")
	r.HandleFunc("/frontend/{file:.*}", p.File).Methods("GET")
	r.PathPrefix("/assets/").Handler(
		http.StripPrefix("/assets/", http.FileServer(http.Dir(filepath.Join(p.webDir, "assets")))),
	).Methods("GET")
}

// Index serves the front-end entry point.
func (p *Pages) Index(w http.ResponseWriter, r *http.Request) {
	http.ServeFile(w, r, filepath.Join(p.webDir, "index.html"))
}

// File serves any file under the bundle directory verbatim when it
// exists, else a plain 404.
func (p *Pages) File(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["file"]
	path := filepath.Join(p.webDir, filepath.FromSlash(name))

	// The joined path must stay inside the bundle directory.
	rel, err := filepath.Rel(p.webDir, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}
	http.ServeFile(w, r, path)
}
