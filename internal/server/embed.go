package server

import (
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vesaa/digestly/webui"
)

// RegisterStaticFiles mounts web/static under /static and answers unknown
// paths with a 404 page that links back to the landing page.
func RegisterStaticFiles(r *gin.Engine) {
	staticFS, err := fs.Sub(webui.FS, "web/static")
	if err != nil {
		panic("embed: web/static sub-fs failed: " + err.Error())
	}
	r.StaticFS("/static", http.FS(staticFS))

	r.NoRoute(func(c *gin.Context) {
		c.Data(http.StatusNotFound, "text/html; charset=utf-8",
			[]byte(`<!DOCTYPE html><title>Not found</title><p>Nothing here. <a href="/">Back to Digestly</a></p>`))
	})
}
