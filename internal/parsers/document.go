package parsers

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/ethanolivertroy/cargo-local-pkgs/internal/models"
)

// Diagnostic is a single syntax problem found in a TOML document
type Diagnostic struct {
	Line    int
	Column  int
	Message string
}

// String returns the diagnostic prefixed with its position, if known
func (d Diagnostic) String() string {
	if d.Line == 0 {
		return d.Message
	}
	return fmt.Sprintf("line %d, column %d: %s", d.Line, d.Column, d.Message)
}

// SyntaxError reports every syntax diagnostic found while parsing a
// document. It matches models.ErrMalformedDocument
type SyntaxError struct {
	Diagnostics []Diagnostic
}

func (e *SyntaxError) Error() string {
	var sb strings.Builder
	sb.WriteString(models.ErrMalformedDocument.Error())
	if len(e.Diagnostics) == 1 {
		sb.WriteString(": " + e.Diagnostics[0].String())
		return sb.String()
	}
	for _, d := range e.Diagnostics {
		sb.WriteString("\n  " + d.String())
	}
	return sb.String()
}

// Unwrap lets errors.Is match ErrMalformedDocument
func (e *SyntaxError) Unwrap() error { return models.ErrMalformedDocument }

// decodeTree is the first decoding phase: it parses data into an untyped
// tree without imposing any schema on it
func decodeTree(data []byte) (map[string]any, error) {
	tree := make(map[string]any)
	if _, err := toml.Decode(string(data), &tree); err != nil {
		return nil, newSyntaxError(err)
	}
	return tree, nil
}

func newSyntaxError(err error) *SyntaxError {
	var diags []Diagnostic
	for _, e := range flatten(err) {
		var pe toml.ParseError
		if errors.As(e, &pe) {
			diags = append(diags, Diagnostic{
				Line:    pe.Position.Line,
				Column:  pe.Position.Col,
				Message: pe.Message,
			})
			continue
		}
		diags = append(diags, Diagnostic{Message: e.Error()})
	}
	return &SyntaxError{Diagnostics: diags}
}

// flatten splits joined errors so each one becomes its own diagnostic
func flatten(err error) []error {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var errs []error
		for _, e := range joined.Unwrap() {
			errs = append(errs, flatten(e)...)
		}
		return errs
	}
	return []error{err}
}

// typeName names the TOML type of a decoded value
func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "nothing"
	case string:
		return "string"
	case int64:
		return "integer"
	case float64:
		return "float"
	case bool:
		return "boolean"
	case time.Time:
		return "datetime"
	case []any, []map[string]any:
		return "array"
	case map[string]any:
		return "table"
	default:
		return fmt.Sprintf("%T", v)
	}
}
