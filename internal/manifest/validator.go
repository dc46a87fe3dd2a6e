package manifest

import (
	_ "embed"
	"fmt"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cuejson "cuelang.org/go/encoding/json"

	ferrors "github.com/forgekit/cli/internal/errors"
)

//go:embed schema.cue
var schemaSource string

var (
	schemaOnce  sync.Once
	schemaValue cue.Value
)

// schema compiles the embedded manifest schema once.
func schema() cue.Value {
	schemaOnce.Do(func() {
		ctx := cuecontext.New()
		compiled := ctx.CompileString(schemaSource, cue.Filename("manifest/schema.cue"))
		schemaValue = compiled.LookupPath(cue.ParsePath("#Manifest"))
	})
	return schemaValue
}

// ValidateBytes validates manifest JSON bytes against the embedded CUE
// schema. location is used in error output.
func ValidateBytes(data []byte, location string) error {
	def := schema()
	if err := def.Err(); err != nil {
		return fmt.Errorf("compiling manifest schema: %w", err)
	}

	if err := cuejson.Validate(data, def); err != nil {
		return ferrors.NewValidationError(
			fmt.Sprintf("manifest does not match schema: %v", err),
			location,
			"Run 'forge init' to regenerate the manifest, or fix the listed fields.",
		)
	}

	return nil
}
