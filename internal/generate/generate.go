// Package generate runs the per-design rendering pipeline over a batch of
// designs and collects artifacts and per-design diagnostics.
package generate

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"

	"go.uber.org/zap"

	"github.com/qrartisan/qrartisan/internal/design"
	"github.com/qrartisan/qrartisan/internal/qr"
	"github.com/qrartisan/qrartisan/internal/template"
)

// ErrNoArtifacts is the batch-level failure: every design in the batch failed.
var ErrNoArtifacts = errors.New("no artifacts produced")

// TemplateSource resolves a design's template reference to vector text.
type TemplateSource interface {
	Load(name string) (string, error)
}

// Artifact is the output for one successfully rendered design.
type Artifact struct {
	DesignID        int    `json:"designId"`
	DesignName      string `json:"designName"`
	ImageDataURI    string `json:"imageDataUri"`
	ArtifactDataURI string `json:"artifactDataUri"`
}

// Diagnostic records why one design produced no artifact.
type Diagnostic struct {
	DesignID int    `json:"designId"`
	Stage    string `json:"stage"`
	Error    string `json:"error"`
}

// Result is the outcome of one batch. Artifacts preserve the input design
// order; failed designs appear only in Diagnostics.
type Result struct {
	Artifacts   []Artifact   `json:"artifacts"`
	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`
}

// Generator renders batches. Designs are processed sequentially, each on its
// own freshly allocated surface, so no cross-design state exists.
type Generator struct {
	templates  TemplateSource
	moduleSize int
	log        *zap.SugaredLogger
}

// New returns a Generator using the given template source.
func New(templates TemplateSource, moduleSize int, log *zap.SugaredLogger) *Generator {
	if moduleSize <= 0 {
		moduleSize = qr.DefaultModuleSize
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Generator{templates: templates, moduleSize: moduleSize, log: log}
}

// Batch encodes content once and renders every design against the resulting
// matrix. A failing design is recorded and skipped; it never aborts its
// siblings. Only a batch that produced zero artifacts is an error. The
// context is honored between designs: a canceled batch returns ctx.Err() and
// its partial output is meant to be discarded, not merged.
func (g *Generator) Batch(ctx context.Context, content string, designs []design.Design, bgImage string) (Result, error) {
	var res Result

	m, err := qr.Encode(content)
	if err != nil {
		return res, err
	}

	// The background image is shared by every design with useImage set.
	// A decode failure is not fatal: affected designs fall back to their
	// solid background color.
	var bg image.Image
	if bgImage != "" {
		bg, err = qr.DecodeImageDataURI(bgImage)
		if err != nil {
			g.log.Warnw("background image decode failed, using solid fallback", "error", err)
			bg = nil
		}
	}

	for _, d := range designs {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		art, diag := g.renderOne(m, d, bg)
		if diag != nil {
			g.log.Warnw("design failed", "design", d.ID, "stage", diag.Stage, "error", diag.Error)
			res.Diagnostics = append(res.Diagnostics, *diag)
			continue
		}
		res.Artifacts = append(res.Artifacts, art)
	}

	if len(res.Artifacts) == 0 && len(designs) > 0 {
		return res, ErrNoArtifacts
	}
	return res, nil
}

func (g *Generator) renderOne(m qr.Matrix, d design.Design, bg image.Image) (Artifact, *Diagnostic) {
	fail := func(stage string, err error) (Artifact, *Diagnostic) {
		return Artifact{}, &Diagnostic{DesignID: d.ID, Stage: stage, Error: err.Error()}
	}

	var designBg image.Image
	if d.UseImage {
		designBg = bg
	}

	img, err := qr.Render(m, d, designBg, g.moduleSize)
	if err != nil {
		return fail("render", err)
	}
	imageURI, err := qr.EncodePNGDataURI(img)
	if err != nil {
		return fail("encode", err)
	}

	// Resource fetch failure skips the design; a missing placeholder inside
	// a fetched template does not.
	tpl, err := g.loadTemplate(d)
	if err != nil {
		return fail("template", err)
	}
	svg := template.Inject(tpl, imageURI, d)
	artifactURI := "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString([]byte(svg))

	return Artifact{
		DesignID:        d.ID,
		DesignName:      d.Name,
		ImageDataURI:    imageURI,
		ArtifactDataURI: artifactURI,
	}, nil
}

// loadTemplate fetches the design's bound template, or falls back to a
// minimal wrapper document when the design has no template binding.
func (g *Generator) loadTemplate(d design.Design) (string, error) {
	if d.Template == "" {
		return fallbackTemplate, nil
	}
	tpl, err := g.templates.Load(d.Template)
	if err != nil {
		return "", fmt.Errorf("load template %q: %w", d.Template, err)
	}
	return tpl, nil
}

// fallbackTemplate embeds the raster as-is so untemplated designs still
// yield a downloadable vector artifact.
const fallbackTemplate = `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" viewBox="0 0 512 512" width="512" height="512">
  <image x="0" y="0" width="512" height="512" href="placeholder"/>
</svg>
`
