package template

import (
	"regexp"
	"strings"

	"github.com/qrartisan/qrartisan/internal/design"
)

// The first image-reference element carries the artwork. Both href and
// xlink:href spellings occur in the wild, with either quote style.
var (
	imageHrefRe = regexp.MustCompile(`<image\b[^>]*?(?:xlink:href|href)\s*=\s*("[^"]*"|'[^']*')`)
	textElemRe  = regexp.MustCompile(`(?s)(<text\b[^>]*?)(>)(.*?)(</text>)`)
	fillAttrRe  = regexp.MustCompile(`fill\s*=\s*("[^"]*"|'[^']*')`)
)

// Inject substitutes the rendered artwork data URI into the template's first
// image-reference element and, when the design carries text, rewrites the
// first text placeholder and its fill color. Substitutions whose placeholder
// is missing are skipped silently; the caller treats that as a degraded but
// successful artifact.
func Inject(tpl, artifactDataURI string, d design.Design) string {
	out := injectImageHref(tpl, artifactDataURI)
	if d.Text != "" {
		out = injectText(out, d.Text, d.ForegroundColor)
	}
	return out
}

func injectImageHref(tpl, dataURI string) string {
	loc := imageHrefRe.FindStringSubmatchIndex(tpl)
	if loc == nil {
		return tpl
	}
	// Keep whichever quote character the template used.
	quote := tpl[loc[2] : loc[2]+1]
	return tpl[:loc[2]] + quote + dataURI + quote + tpl[loc[3]:]
}

func injectText(tpl, text, fill string) string {
	loc := textElemRe.FindStringSubmatchIndex(tpl)
	if loc == nil {
		return tpl
	}
	openAttrs := tpl[loc[2]:loc[3]]
	if fill != "" {
		if attr := fillAttrRe.FindStringIndex(openAttrs); attr != nil {
			openAttrs = openAttrs[:attr[0]] + `fill="` + fill + `"` + openAttrs[attr[1]:]
		} else {
			openAttrs += ` fill="` + fill + `"`
		}
	}
	return tpl[:loc[2]] + openAttrs + ">" + escapeText(text) + "</text>" + tpl[loc[9]:]
}

func escapeText(s string) string {
	return strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;").Replace(s)
}
