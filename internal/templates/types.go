// Package templates provides the workspace template system for forge init.
package templates

// Template represents a workspace template with its metadata.
type Template struct {
	// Name is the template identifier (tool, minimal).
	Name string

	// Description explains the template's purpose and use case.
	Description string

	// Default indicates if this is the default template when --template is omitted.
	Default bool

	// UseCase describes when to use this template.
	UseCase string
}

// TemplateData holds the data passed to template rendering.
type TemplateData struct {
	// Name is the tool name in kebab-case (from --name or directory name).
	Name string

	// NamePascal is the PascalCase form of Name, used for the service name
	// in the interface definition.
	NamePascal string

	// Description is the one-line tool description.
	Description string

	// Version is the initial version (hardcoded to 0.1.0).
	Version string

	// BundleID is the generated application bundle identifier.
	BundleID string
}

// GenerateOptions configures workspace generation behavior.
type GenerateOptions struct {
	// TargetDir is the directory to generate the workspace in.
	TargetDir string

	// TemplateName is the template to use.
	TemplateName string

	// Name overrides the tool name derived from TargetDir.
	Name string

	// Description overrides the default tool description.
	Description string

	// Force allows overwriting files in non-empty directories.
	Force bool
}

// GenerateResult contains the result of workspace generation.
type GenerateResult struct {
	// Files is the list of files created, relative to TargetDir.
	Files []string

	// TemplateName is the template that was used.
	TemplateName string

	// TargetDir is the directory where files were created.
	TargetDir string

	// Data is the rendered template data.
	Data TemplateData
}
