// Package pages holds the hand-written templ components for the few server
// rendered pages the service exposes.
package pages

import (
	"context"
	"fmt"
	"io"

	twmerge "github.com/Oudwins/tailwind-merge-go/pkg/twmerge"
	"github.com/a-h/templ"
)

type endpoint struct {
	method string
	path   string
	desc   string
}

var endpoints = []endpoint{
	{"GET", "/api/designs", "list design presets"},
	{"POST", "/api/designs", "create a design preset"},
	{"POST", "/api/generate", "render artwork for a batch of designs"},
	{"POST", "/api/generate/archive", "download rendered artifacts as a zip"},
	{"GET", "/api/designs/:id/preview", "raster preview of one design"},
}

// HomePage renders a minimal index describing the API surface.
func HomePage() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		card := twmerge.Merge("rounded-lg border p-4", "p-6 shadow-sm")
		row := twmerge.Merge("py-1 font-mono text-sm", "text-sm")

		if _, err := fmt.Fprint(w, `<!DOCTYPE html>
<html lang="en"><head><meta charset="utf-8"><title>qrartisan</title>
<script src="https://cdn.tailwindcss.com"></script></head>
<body class="mx-auto max-w-2xl p-8">
<h1 class="text-2xl font-bold">qrartisan</h1>
<p class="mt-2 text-gray-600">Customizable, scannable QR-code artwork.</p>
<div class="mt-6 `+card+`"><ul>`); err != nil {
			return err
		}
		for _, e := range endpoints {
			if _, err := fmt.Fprintf(w, `<li class="%s"><b>%s</b> %s &mdash; %s</li>`,
				row, e.method, e.path, e.desc); err != nil {
				return err
			}
		}
		_, err := fmt.Fprint(w, `</ul></div></body></html>`)
		return err
	})
}
