package metadata

import (
	_ "embed"
	"fmt"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cuejson "cuelang.org/go/encoding/json"
)

//go:embed schema.cue
var schemaCUE []byte

// Validator checks raw metadata documents against the embedded CUE schema.
// It is safe for concurrent use.
type Validator struct {
	mu     sync.Mutex
	ctx    *cue.Context
	schema cue.Value
}

// NewValidator compiles the embedded schema.
func NewValidator() (*Validator, error) {
	ctx := cuecontext.New()

	compiled := ctx.CompileBytes(schemaCUE, cue.Filename("schema.cue"))
	if compiled.Err() != nil {
		return nil, fmt.Errorf("compiling schema: %w", compiled.Err())
	}

	schema := compiled.LookupPath(cue.ParsePath("#BuildMetadata"))
	if !schema.Exists() {
		return nil, fmt.Errorf("schema has no #BuildMetadata definition")
	}

	return &Validator{
		ctx:    ctx,
		schema: schema,
	}, nil
}

// Validate reports whether doc is a JSON document with every required field
// present and of the right type.
func (v *Validator) Validate(doc []byte) error {
	expr, err := cuejson.Extract("metadata.json", doc)
	if err != nil {
		return fmt.Errorf("parsing JSON: %w", err)
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	value := v.ctx.BuildExpr(expr)
	if value.Err() != nil {
		return fmt.Errorf("building value: %w", value.Err())
	}

	if err := v.schema.Unify(value).Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("schema mismatch: %w", err)
	}

	return nil
}
