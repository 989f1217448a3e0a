package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// HtmxScriptURL is loaded by every page. The forms also work without it (post/redirect/get).
const HtmxScriptURL = "https://unpkg.com/htmx.org@2.0.4"

// BaseLayout wraps body in the html document
func BaseLayout(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := newHTMLWriter(w)
		hw.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		hw.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		hw.raw(`<title>`)
		hw.text(title)
		hw.raw(`</title><link rel="stylesheet" href="/static/style.css">`)
		hw.raw(`<script src="`, HtmxScriptURL, `"></script></head><body>`)
		if hw.err != nil {
			return hw.err
		}

		if err := body.Render(ctx, w); err != nil {
			return err
		}

		hw.raw(`</body></html>`)
		return hw.err
	})
}

// ErrorAlert renders a stand alone error message
func ErrorAlert(message string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := newHTMLWriter(w)
		hw.raw(`<div class="alert alert-error" role="alert"><strong>Error:</strong> `)
		hw.text(message)
		hw.raw(`</div>`)
		return hw.err
	})
}
