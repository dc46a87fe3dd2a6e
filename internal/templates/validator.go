package templates

import (
	"fmt"
	"strings"
	"unicode"
)

// ValidateToolName checks if a tool name is valid. Names allow letters,
// digits, hyphens and underscores, and must start with a letter.
func ValidateToolName(name string) error {
	if name == "" {
		return fmt.Errorf("tool name cannot be empty")
	}

	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-' && r != '_' {
			return fmt.Errorf("invalid tool name %q: contains invalid character %q", name, r)
		}
	}

	if !unicode.IsLetter(rune(name[0])) {
		return fmt.Errorf("invalid tool name %q: must start with a letter", name)
	}

	return nil
}

// PascalCase converts a kebab-case or snake_case name to PascalCase.
// "my-tool" becomes "MyTool".
func PascalCase(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '-' || r == '_'
	})

	var b strings.Builder
	for _, part := range parts {
		runes := []rune(part)
		b.WriteRune(unicode.ToUpper(runes[0]))
		b.WriteString(string(runes[1:]))
	}

	if b.Len() == 0 {
		return "Tool"
	}
	return b.String()
}
