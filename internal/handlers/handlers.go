package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/qrartisan/qrartisan/internal/design"
	"github.com/qrartisan/qrartisan/internal/generate"
	"github.com/qrartisan/qrartisan/internal/template"
)

// Handler bundles the collaborators the HTTP layer drives: the design store,
// the template library and the batch generator.
type Handler struct {
	log       *zap.SugaredLogger
	store     *design.Store
	templates *template.Library
	gen       *generate.Generator
}

// New returns a Handler wired to the given collaborators.
func New(log *zap.SugaredLogger, store *design.Store, templates *template.Library, gen *generate.Generator) *Handler {
	return &Handler{log: log, store: store, templates: templates, gen: gen}
}

// SitemapXML serves a minimal sitemap for the site.
// Update the URLs if you add more pages.
func (h *Handler) SitemapXML(c *gin.Context) {
	c.Header("Content-Type", "application/xml; charset=utf-8")
	scheme := "https"
	host := c.Request.Host
	if xf := c.Request.Header.Get("X-Forwarded-Proto"); xf != "" {
		scheme = xf
	} else if c.Request.TLS == nil && (host == "localhost:8080" || host == "127.0.0.1:8080") {
		scheme = "http"
	}
	base := scheme + "://" + host
	xml := "" +
		"<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n" +
		"<urlset xmlns=\"http://www.sitemaps.org/schemas/sitemap/0.9\">\n" +
		"  <url>\n" +
		"    <loc>" + base + "/" + "</loc>\n" +
		"    <changefreq>weekly</changefreq>\n" +
		"    <priority>1.0</priority>\n" +
		"  </url>\n" +
		"</urlset>\n"
	c.String(200, xml)
}
