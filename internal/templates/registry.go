package templates

import "fmt"

// DefaultTemplateName is the template used when --template is not specified.
const DefaultTemplateName = "tool"

// templates is the internal registry of available templates.
var templates = map[string]Template{
	"tool": {
		Name:        "tool",
		Description: "Full tool workspace - package source, tests, interface definitions",
		UseCase:     "New tools that ship a package and a test suite",
		Default:     true,
	},
	"minimal": {
		Name:        "minimal",
		Description: "Bare workspace - manifest and interface definitions only",
		UseCase:     "Wrapping an existing source tree in a workspace",
		Default:     false,
	},
}

// Get returns a template by name.
// Returns an error if the template is not found.
func Get(name string) (Template, error) {
	t, ok := templates[name]
	if !ok {
		return Template{}, fmt.Errorf("unknown template %q; valid templates: tool, minimal", name)
	}
	return t, nil
}

// List returns all available templates.
func List() []Template {
	return []Template{
		templates["tool"],
		templates["minimal"],
	}
}

// Names returns all template names.
func Names() []string {
	return []string{"tool", "minimal"}
}
