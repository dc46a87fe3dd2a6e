package templates

import "embed"

//go:embed tool minimal
var TemplateFS embed.FS
