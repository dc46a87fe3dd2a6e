package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
)

// configHeader is the fixed banner on generated config files. Stable text
// keeps repeated runs byte-identical.
const configHeader = "# Code generated by forge. DO NOT EDIT.\n\n"

// Materialize writes the generated config file assigning the build-time
// secret to key. A non-empty value is embedded as a quoted literal; an
// absent value falls back to the None sentinel. The file is always
// overwritten, never merged.
func Materialize(path, key, value string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	var content string
	if value == "" {
		content = fmt.Sprintf("%s%s = None\n", configHeader, key)
	} else {
		content = fmt.Sprintf("%s%s = %q\n", configHeader, key, value)
	}

	// 0600: the file may hold a live credential.
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		return fmt.Errorf("writing generated config: %w", err)
	}

	return nil
}
