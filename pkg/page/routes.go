package page

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/goliatone/go-heroform/pkg/renderers/vanilla"
)

// Route patterns served by the handler.
const (
	RouteNew  = "/heroes/new"
	RouteEdit = "/heroes/{id}/edit"
	// AssetsPath serves the embedded stylesheets under the default theme
	// asset prefix.
	AssetsPath = "/assets/themes/heroform/"
)

// Mux is the minimal interface required to register the page routes. It is
// satisfied by *http.ServeMux.
type Mux interface {
	Handle(pattern string, handler http.Handler)
}

// RegisterRoutes mounts the create, edit and asset routes under basePath.
func RegisterRoutes(mux Mux, basePath string, h *Handler) error {
	if mux == nil {
		return fmt.Errorf("page: missing mux")
	}
	if h == nil {
		return fmt.Errorf("page: missing handler")
	}
	base := mountPath(basePath)
	mux.Handle("GET "+base+RouteNew, http.HandlerFunc(h.serveCreate))
	mux.Handle("POST "+base+RouteNew, http.HandlerFunc(h.serveCreate))
	mux.Handle("GET "+base+RouteEdit, http.HandlerFunc(h.serveEdit))
	mux.Handle("POST "+base+RouteEdit, http.HandlerFunc(h.serveEdit))
	mux.Handle("GET "+base+AssetsPath, http.StripPrefix(base+AssetsPath, http.FileServerFS(vanilla.AssetsFS())))
	return nil
}

func mountPath(basePath string) string {
	basePath = strings.TrimSpace(basePath)
	if basePath == "" || basePath == "/" {
		return ""
	}
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	return strings.TrimRight(basePath, "/")
}
