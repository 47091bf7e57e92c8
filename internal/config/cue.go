package config

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

//go:embed schema.cue
var schemaCUE string

// decodeCUE unifies the file with #Config, requires a concrete result and
// decodes it over cfg.
func decodeCUE(path string, data []byte, cfg *Config) error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compiling schema: %w", err)
	}

	file := ctx.CompileBytes(data, cue.Filename(path))
	if err := file.Err(); err != nil {
		return fmt.Errorf("compiling %s: %w", path, err)
	}

	value := schema.LookupPath(cue.ParsePath("#Config")).Unify(file)
	if err := value.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("validating against #Config: %w", err)
	}

	// Round-trip through JSON so absent optional fields keep their defaults.
	raw, err := value.MarshalJSON()
	if err != nil {
		return fmt.Errorf("exporting %s: %w", path, err)
	}
	if err := json.Unmarshal(raw, cfg); err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}
	return nil
}
