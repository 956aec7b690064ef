// Package filter compiles AIP-160 filter expressions into predicates over
// read-model records.
package filter

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"go.einride.tech/aip/filtering"
	expr "google.golang.org/genproto/googleapis/api/expr/v1alpha1"
)

// ErrInvalidFilter wraps every parse or type-check failure.
var ErrInvalidFilter = errors.New("invalid filter")

// FieldType describes a supported filter field type.
type FieldType string

const (
	FieldString FieldType = "string"
	FieldInt    FieldType = "int"
	FieldBool   FieldType = "bool"
)

// Field declares one filterable attribute of T.
type Field[T any] struct {
	Type FieldType
	Get  func(T) any
}

// Schema maps filter identifiers to record fields.
type Schema[T any] map[string]Field[T]

// Names returns the declared identifiers, sorted.
func (s Schema[T]) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Compile parses filterStr against schema and returns a predicate. An empty
// filter compiles to a nil predicate, which matches everything.
func Compile[T any](filterStr string, schema Schema[T]) (func(T) bool, error) {
	if strings.TrimSpace(filterStr) == "" {
		return nil, nil
	}
	decls, err := declarations(schema)
	if err != nil {
		return nil, err
	}
	parsed, err := filtering.ParseFilterString(filterStr, decls)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFilter, err)
	}
	root := parsed.CheckedExpr.GetExpr()
	if err := validate(root, schema); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFilter, err)
	}
	return func(record T) bool {
		match, err := evaluate(root, func(name string) (any, bool) {
			field, ok := schema[name]
			if !ok {
				return nil, false
			}
			return field.Get(record), true
		})
		return err == nil && match
	}, nil
}

func declarations[T any](schema Schema[T]) (*filtering.Declarations, error) {
	opts := []filtering.DeclarationOption{filtering.DeclareStandardFunctions()}
	hasBool := false
	for _, name := range schema.Names() {
		switch schema[name].Type {
		case FieldString:
			opts = append(opts, filtering.DeclareIdent(name, filtering.TypeString))
		case FieldInt:
			opts = append(opts, filtering.DeclareIdent(name, filtering.TypeInt))
		case FieldBool:
			opts = append(opts, filtering.DeclareIdent(name, filtering.TypeBool))
			hasBool = true
		default:
			return nil, fmt.Errorf("unsupported field type for %s", name)
		}
	}
	if hasBool {
		// AIP-160 has no boolean literal; true and false parse as identifiers.
		opts = append(opts,
			filtering.DeclareIdent("true", filtering.TypeBool),
			filtering.DeclareIdent("false", filtering.TypeBool),
		)
	}
	return filtering.NewDeclarations(opts...)
}

// validate walks the expression once at compile time so evaluation only sees
// shapes it supports.
func validate[T any](e *expr.Expr, schema Schema[T]) error {
	return walk(e, func(field string, value any) error {
		f, ok := schema[field]
		if !ok {
			return fmt.Errorf("unknown field: %s", field)
		}
		switch f.Type {
		case FieldString:
			if _, ok := value.(string); !ok {
				return fmt.Errorf("field %s expects a string", field)
			}
		case FieldInt:
			if _, ok := value.(int64); !ok {
				return fmt.Errorf("field %s expects an integer", field)
			}
		case FieldBool:
			if _, ok := value.(bool); !ok {
				return fmt.Errorf("field %s expects a boolean", field)
			}
		}
		return nil
	})
}
