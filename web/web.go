// Package web holds the static assets served by the ui
package web

import "embed"

//go:embed static
var Static embed.FS
