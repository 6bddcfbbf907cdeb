package template

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qrartisan/qrartisan/internal/design"
)

func TestInjectImageHrefVariants(t *testing.T) {
	cases := map[string]string{
		"double quotes": `<svg><image href="placeholder"/></svg>`,
		"single quotes": `<svg><image href='placeholder'/></svg>`,
		"xlink":         `<svg><image xlink:href="placeholder"/></svg>`,
		"extra attrs":   `<svg><image x="0" y="0" width="10" height="10" href="placeholder"/></svg>`,
	}
	for name, tpl := range cases {
		out := Inject(tpl, "data:X", design.Design{})
		assert.Containsf(t, out, `data:X`, "%s", name)
		assert.NotContainsf(t, out, "placeholder", "%s", name)
	}
}

func TestInjectPreservesQuoteStyle(t *testing.T) {
	out := Inject(`<image href='old'/>`, "data:X", design.Design{})
	assert.Contains(t, out, `href='data:X'`)

	out = Inject(`<image href="old"/>`, "data:X", design.Design{})
	assert.Contains(t, out, `href="data:X"`)
}

func TestInjectOnlyFirstImage(t *testing.T) {
	tpl := `<image href="a"/><image href="b"/>`
	out := Inject(tpl, "data:X", design.Design{})
	assert.Equal(t, `<image href="data:X"/><image href="b"/>`, out)
}

func TestInjectMissingImagePlaceholderIsSilent(t *testing.T) {
	tpl := `<svg><rect width="10" height="10"/></svg>`
	out := Inject(tpl, "data:X", design.Design{})
	assert.Equal(t, tpl, out)
}

func TestInjectText(t *testing.T) {
	tpl := `<svg><image href="p"/><text x="5" fill="#000000">Old label</text></svg>`
	d := design.Design{Text: "Scan me", ForegroundColor: "#FF0000"}

	out := Inject(tpl, "data:X", d)
	assert.Contains(t, out, ">Scan me</text>")
	assert.Contains(t, out, `fill="#FF0000"`)
	assert.NotContains(t, out, "Old label")
	assert.NotContains(t, out, "#000000")
}

func TestInjectTextAddsFillWhenMissing(t *testing.T) {
	tpl := `<text x="5">Old</text>`
	out := Inject(tpl, "data:X", design.Design{Text: "New", ForegroundColor: "#00FF00"})
	assert.Contains(t, out, `fill="#00FF00"`)
	assert.Contains(t, out, ">New</text>")
}

func TestInjectTextEscapesMarkup(t *testing.T) {
	tpl := `<text>Old</text>`
	out := Inject(tpl, "data:X", design.Design{Text: "a<b & c"})
	assert.Contains(t, out, "a&lt;b &amp; c")
}

func TestInjectTextMissingPlaceholderIsSilent(t *testing.T) {
	tpl := `<svg><image href="p"/></svg>`
	out := Inject(tpl, "data:X", design.Design{Text: "hello"})
	// Image substitution still happened; the text one was skipped.
	assert.Contains(t, out, "data:X")
	assert.NotContains(t, out, "hello")
}

func TestInjectWithoutTextLeavesPlaceholder(t *testing.T) {
	tpl := `<svg><image href="p"/><text>Keep</text></svg>`
	out := Inject(tpl, "data:X", design.Design{})
	assert.Contains(t, out, ">Keep</text>")
}

func TestLibraryLoad(t *testing.T) {
	dir := t.TempDir()
	lib := NewLibrary(dir)

	_, err := lib.Load("missing")
	require.ErrorIs(t, err, ErrTemplateNotFound)

	_, err = lib.Load("../escape")
	require.ErrorIs(t, err, ErrTemplateNotFound)

	_, err = lib.Load("")
	require.ErrorIs(t, err, ErrTemplateNotFound)

	writeFile(t, dir, "badge.svg", `<svg><image href="p"/></svg>`)
	tpl, err := lib.Load("badge")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(tpl, "<svg>"))

	tpl2, err := lib.Load("badge.svg")
	require.NoError(t, err)
	assert.Equal(t, tpl, tpl2)
}
