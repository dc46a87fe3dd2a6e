package output

import (
	"bytes"
	"fmt"

	"github.com/gonvenience/ytbx"
	"github.com/homeport/dyff/pkg/dyff"
)

// DiffDocuments computes a human-readable diff between two JSON or YAML
// documents using dyff. Returns an empty string when the documents are
// semantically identical.
func DiffDocuments(beforeName string, before []byte, afterName string, after []byte) (string, error) {
	if len(before) == 0 && len(after) == 0 {
		return "", nil
	}

	beforeInput, err := parseDocumentInput(beforeName, before)
	if err != nil {
		return "", fmt.Errorf("parsing %s: %w", beforeName, err)
	}

	afterInput, err := parseDocumentInput(afterName, after)
	if err != nil {
		return "", fmt.Errorf("parsing %s: %w", afterName, err)
	}

	report, err := dyff.CompareInputFiles(beforeInput, afterInput)
	if err != nil {
		return "", fmt.Errorf("comparing documents: %w", err)
	}

	if len(report.Diffs) == 0 {
		return "", nil
	}

	return renderDyffReport(report)
}

// parseDocumentInput parses document bytes into a dyff input file.
// JSON is a YAML subset, so manifest.json content loads directly.
func parseDocumentInput(name string, data []byte) (ytbx.InputFile, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return ytbx.InputFile{
			Location:  name,
			Documents: nil,
		}, nil
	}

	docs, err := ytbx.LoadYAMLDocuments(data)
	if err != nil {
		return ytbx.InputFile{}, err
	}

	return ytbx.InputFile{
		Location:  name,
		Documents: docs,
	}, nil
}

// renderDyffReport renders a dyff report to a string.
func renderDyffReport(report dyff.Report) (string, error) {
	var buf bytes.Buffer

	reportWriter := &dyff.HumanReport{
		Report:            report,
		DoNotInspectCerts: true,
		NoTableStyle:      true,
		OmitHeader:        true,
	}

	if err := reportWriter.WriteReport(&buf); err != nil {
		return "", fmt.Errorf("rendering diff: %w", err)
	}

	return buf.String(), nil
}
