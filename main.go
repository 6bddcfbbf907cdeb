package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/qrartisan/qrartisan/internal/config"
	"github.com/qrartisan/qrartisan/internal/design"
	"github.com/qrartisan/qrartisan/internal/generate"
	"github.com/qrartisan/qrartisan/internal/handlers"
	"github.com/qrartisan/qrartisan/internal/logger"
	"github.com/qrartisan/qrartisan/internal/template"
	"github.com/qrartisan/qrartisan/web/pages"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	zl, err := logger.New(cfg.Debug)
	if err != nil {
		log.Fatal(err)
	}
	defer zl.Sync()

	store, err := design.Open(cfg.DesignsPath)
	if err != nil {
		zl.Fatalw("open design store", "path", cfg.DesignsPath, "error", err)
	}
	templates := template.NewLibrary(cfg.TemplatesDir)
	gen := generate.New(templates, cfg.ModuleSize, zl)

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	// API routes
	h := handlers.New(zl, store, templates, gen)
	api := r.Group("/api")
	{
		api.GET("/designs", h.ListDesigns)
		api.POST("/designs", h.CreateDesign)
		api.GET("/designs/:id", h.GetDesign)
		api.PUT("/designs/:id", h.UpdateDesign)
		api.DELETE("/designs/:id", h.DeleteDesign)
		api.GET("/designs/:id/preview", h.Preview)
		api.POST("/generate", h.Generate)
		api.POST("/generate/archive", h.GenerateArchive)
	}

	// Pages
	r.GET("/", func(c *gin.Context) {
		if err := pages.HomePage().Render(c.Request.Context(), c.Writer); err != nil {
			c.String(500, err.Error())
		}
	})
	r.GET("/sitemap.xml", h.SitemapXML)

	zl.Infow("qrartisan listening", "addr", cfg.Addr)
	if err := r.Run(cfg.Addr); err != nil {
		zl.Fatalw("server stopped", "error", err)
	}
}
