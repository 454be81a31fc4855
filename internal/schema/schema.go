// Package schema validates invoice data against the bundled CUE schemas.
//
// The invoice schema (#Invoice) references the line-item schema (#Item);
// both are compiled once into a single CUE value. Data is converted to JSON
// and compiled as a CUE value before unification, so JSON integers stay
// integers and the quantity constraint (int & >=0) applies as written.
package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"

	"github.com/alnah/go-revoice/internal/assets"
)

// Sentinel errors for schema operations.
var (
	ErrSchemaCompile = errors.New("schema compilation failed")
	ErrDataEncode    = errors.New("invoice data cannot be encoded")
)

// schemaFiles lists the bundled schemas in dependency order.
var schemaFiles = []string{"item", "invoice"}

// invoiceDefinition is the definition every invoice is unified with.
const invoiceDefinition = "#Invoice"

// ValidationError reports every constraint an invoice violates.
type ValidationError struct {
	Reasons []string
}

// Error joins all reasons with "; ".
func (e *ValidationError) Error() string {
	return strings.Join(e.Reasons, "; ")
}

// Validator checks invoice data against the compiled invoice schema.
// A cue.Context is not safe for concurrent use, so Validate serializes calls.
type Validator struct {
	mu      sync.Mutex
	ctx     *cue.Context
	invoice cue.Value
}

// New compiles the bundled schemas.
func New() (*Validator, error) {
	var src strings.Builder
	for _, name := range schemaFiles {
		text, err := assets.LoadSchema(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSchemaCompile, err)
		}
		src.WriteString(text)
		src.WriteString("\n")
	}

	ctx := cuecontext.New()
	root := ctx.CompileString(src.String(), cue.Filename("invoice.cue"))
	if err := root.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaCompile, err)
	}

	invoice := root.LookupPath(cue.ParsePath(invoiceDefinition))
	if !invoice.Exists() {
		return nil, fmt.Errorf("%w: %s not defined", ErrSchemaCompile, invoiceDefinition)
	}

	return &Validator{ctx: ctx, invoice: invoice}, nil
}

var (
	defaultOnce      sync.Once
	defaultValidator *Validator
	defaultErr       error
)

// Default returns a process-wide validator, compiled on first use.
func Default() (*Validator, error) {
	defaultOnce.Do(func() {
		defaultValidator, defaultErr = New()
	})
	return defaultValidator, defaultErr
}

// Validate returns nil when data satisfies the invoice schema, a
// *ValidationError listing every violation otherwise, or ErrDataEncode when
// data cannot be represented as JSON.
func (v *Validator) Validate(data any) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDataEncode, err)
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	value := v.ctx.CompileBytes(raw, cue.Filename("data.json"))
	if err := value.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrDataEncode, err)
	}

	unified := v.invoice.Unify(value)
	if err := unified.Validate(cue.Concrete(true), cue.All()); err != nil {
		return &ValidationError{Reasons: reasons(err)}
	}
	return nil
}

// reasons flattens a CUE error list into "<path>: <message>" strings.
// Duplicates, which CUE reports once per disjunct, are dropped.
func reasons(err error) []string {
	errs := cueerrors.Errors(err)
	out := make([]string, 0, len(errs))
	seen := make(map[string]bool, len(errs))

	for _, e := range errs {
		format, args := e.Msg()
		msg := fmt.Sprintf(format, args...)

		reason := msg
		if path := strings.Join(e.Path(), "."); path != "" {
			reason = path + ": " + msg
		}

		if seen[reason] {
			continue
		}
		seen[reason] = true
		out = append(out, reason)
	}

	if len(out) == 0 {
		out = append(out, err.Error())
	}
	return out
}
