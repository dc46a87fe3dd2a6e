package templates

import (
	"bytes"
	"fmt"
	"io/fs"
	"strings"
	"text/template"
)

// Renderer handles template rendering with data substitution.
type Renderer struct {
	data TemplateData
}

// NewRenderer creates a new renderer with the given template data.
func NewRenderer(data TemplateData) *Renderer {
	return &Renderer{data: data}
}

// RenderFile renders a single template file and returns the content.
func (r *Renderer) RenderFile(content []byte) ([]byte, error) {
	tmpl, err := template.New("file").Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("parsing template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, r.data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	return buf.Bytes(), nil
}

// TemplateFile represents a file to be generated from a template.
type TemplateFile struct {
	// SourcePath is the path within the embedded filesystem.
	SourcePath string

	// TargetPath is the output path (with .tmpl suffix removed).
	TargetPath string

	// Content is the rendered content.
	Content []byte
}

// RenderTemplate renders all files from a template and returns them.
func (r *Renderer) RenderTemplate(templateName string) ([]TemplateFile, error) {
	var files []TemplateFile

	err := fs.WalkDir(TemplateFS, templateName, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !strings.HasSuffix(path, ".tmpl") {
			return nil
		}

		content, err := fs.ReadFile(TemplateFS, path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}

		rendered, err := r.RenderFile(content)
		if err != nil {
			return fmt.Errorf("rendering %s: %w", path, err)
		}

		relPath := strings.TrimPrefix(path, templateName+"/")
		targetPath := strings.TrimSuffix(relPath, ".tmpl")

		files = append(files, TemplateFile{
			SourcePath: path,
			TargetPath: targetPath,
			Content:    rendered,
		})

		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("walking template %s: %w", templateName, err)
	}

	return files, nil
}

// ListTemplateFiles returns the list of files in a template without rendering.
func ListTemplateFiles(templateName string) ([]string, error) {
	var files []string

	err := fs.WalkDir(TemplateFS, templateName, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !strings.HasSuffix(path, ".tmpl") {
			return nil
		}

		relPath := strings.TrimPrefix(path, templateName+"/")
		files = append(files, strings.TrimSuffix(relPath, ".tmpl"))
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("listing template %s: %w", templateName, err)
	}

	return files, nil
}
