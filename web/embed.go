// Package web embeds the built dashboard static assets for single-binary
// distribution.
package web

import "embed"

// Assets contains the dashboard production build output. The build/ directory
// is produced by `pnpm run build` in the web/ directory; the committed
// placeholder keeps the embed valid before a frontend build has run.
//
//go:embed all:build
var Assets embed.FS
