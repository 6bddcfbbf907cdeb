package handlers

import (
	"archive/zip"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/qrartisan/qrartisan/internal/design"
	"github.com/qrartisan/qrartisan/internal/generate"
	"github.com/qrartisan/qrartisan/internal/qr"
	"github.com/qrartisan/qrartisan/internal/template"
)

// generateRequest is the body of both the generate and archive endpoints.
// Image is an optional base64 data URI consumed by designs with useImage set.
type generateRequest struct {
	Content   string `json:"content"`
	DesignIDs []int  `json:"designIds,omitempty"`
	Image     string `json:"image,omitempty"`
}

// Generate renders the requested designs and returns artifacts plus
// per-design diagnostics.
func (h *Handler) Generate(c *gin.Context) {
	res, ok := h.runBatch(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, res)
}

// GenerateArchive renders the requested designs and streams the vector
// artifacts as a zip download.
func (h *Handler) GenerateArchive(c *gin.Context) {
	res, ok := h.runBatch(c)
	if !ok {
		return
	}

	c.Header("Content-Type", "application/zip")
	c.Header("Content-Disposition", `attachment; filename="qr-artwork.zip"`)
	zw := zip.NewWriter(c.Writer)
	for _, art := range res.Artifacts {
		name := fmt.Sprintf("design-%d-%s.svg", art.DesignID, safeFilename(art.DesignName))
		f, err := zw.Create(name)
		if err != nil {
			h.log.Errorw("zip entry failed", "name", name, "error", err)
			return
		}
		svg, err := decodeDataURI(art.ArtifactDataURI)
		if err != nil {
			h.log.Errorw("artifact decode failed", "name", name, "error", err)
			continue
		}
		if _, err := f.Write(svg); err != nil {
			h.log.Errorw("zip write failed", "name", name, "error", err)
			return
		}
	}
	if err := zw.Close(); err != nil {
		h.log.Errorw("zip close failed", "error", err)
	}
}

// Preview renders one design and returns a raster preview of its final
// artifact, with the template's vector art behind the composited QR.
func (h *Handler) Preview(c *gin.Context) {
	id, ok := designID(c)
	if !ok {
		return
	}
	d, err := h.store.Get(id)
	if errors.Is(err, design.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "design not found"})
		return
	}

	content := strings.TrimSpace(c.Query("content"))
	if content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "content parameter is required"})
		return
	}

	m, err := qr.Encode(content)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	img, err := qr.Render(m, d, nil, 0)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	tpl, err := h.templates.Load(d.Template)
	if err != nil {
		// No template bound (or missing): the raw raster is the preview.
		uri, err := qr.EncodePNGDataURI(img)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		png, _ := decodeDataURI(uri)
		c.Data(http.StatusOK, "image/png", png)
		return
	}

	png, err := template.PreviewPNG(tpl, img, 512)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Header("Cache-Control", "public, max-age=3600")
	c.Data(http.StatusOK, "image/png", png)
}

// runBatch parses the request, resolves designs and runs the generator.
// It writes the error response itself when something fails.
func (h *Handler) runBatch(c *gin.Context) (generate.Result, bool) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return generate.Result{}, false
	}
	if strings.TrimSpace(req.Content) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "content is required"})
		return generate.Result{}, false
	}

	designs, err := h.resolveDesigns(req.DesignIDs)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return generate.Result{}, false
	}
	if len(designs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no designs to render"})
		return generate.Result{}, false
	}

	res, err := h.gen.Batch(c.Request.Context(), req.Content, designs, req.Image)
	switch {
	case errors.Is(err, qr.ErrEmptyContent):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return generate.Result{}, false
	case errors.Is(err, generate.ErrNoArtifacts):
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":       "all designs failed",
			"diagnostics": res.Diagnostics,
		})
		return generate.Result{}, false
	case err != nil:
		// Context cancellation or encoder failure; the partial result is
		// abandoned rather than returned.
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return generate.Result{}, false
	}
	return res, true
}

// resolveDesigns maps requested ids to designs, preserving request order.
// An empty id list selects every stored design.
func (h *Handler) resolveDesigns(ids []int) ([]design.Design, error) {
	if len(ids) == 0 {
		return h.store.List(), nil
	}
	out := make([]design.Design, 0, len(ids))
	for _, id := range ids {
		d, err := h.store.Get(id)
		if err != nil {
			return nil, fmt.Errorf("design %d not found", id)
		}
		out = append(out, d)
	}
	return out, nil
}

func decodeDataURI(uri string) ([]byte, error) {
	i := strings.Index(uri, ",")
	if i < 0 {
		return nil, fmt.Errorf("malformed data URI")
	}
	return base64.StdEncoding.DecodeString(uri[i+1:])
}

func safeFilename(name string) string {
	if name == "" {
		return "untitled"
	}
	clean := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		case r == ' ':
			return '-'
		default:
			return -1
		}
	}, name)
	if clean == "" {
		return "untitled"
	}
	return clean
}
