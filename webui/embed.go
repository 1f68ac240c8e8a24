// Package webui exposes the embedded landing page.
// It lives at the module root so it can embed the sibling "web/" directory.
// internal/server parses web/index.html as a template and serves web/static.
package webui

import "embed"

// FS is the embedded web directory tree.
//
//go:embed web
var FS embed.FS
