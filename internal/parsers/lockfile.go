package parsers

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ethanolivertroy/cargo-local-pkgs/internal/models"
	"go.trai.ch/zerr"
)

// SchemaError reports a lockfile field that is missing or has the wrong
// type. It matches models.ErrInvalidLockfile
type SchemaError struct {
	Field    string // e.g. "package[3].version"
	Expected string
	Found    string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: %s: expected %s, found %s",
		models.ErrInvalidLockfile.Error(), e.Field, e.Expected, e.Found)
}

// Unwrap lets errors.Is match ErrInvalidLockfile
func (e *SchemaError) Unwrap() error { return models.ErrInvalidLockfile }

// LoadLockfile reads and parses the lockfile at path
func LoadLockfile(path string) (*models.Lockfile, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is the configured lockfile
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, zerr.With(fmt.Errorf("%w: %s", models.ErrMissingLockfile, path),
				"hint", "run `cargo generate-lockfile` first")
		}
		return nil, zerr.With(fmt.Errorf("%w: %w", models.ErrLockfileUnreadable, err), "path", path)
	}

	lf, err := ParseLockfile(data)
	if err != nil {
		return nil, zerr.Wrap(err, path)
	}
	return lf, nil
}

// ParseLockfile parses lockfile content.
//
// The document is first parsed into an untyped tree, so syntax problems
// surface as *SyntaxError, and then projected onto the lockfile shape, so
// shape problems surface as *SchemaError
func ParseLockfile(data []byte) (*models.Lockfile, error) {
	tree, err := decodeTree(data)
	if err != nil {
		return nil, err
	}

	rootVal, ok := tree["root"]
	if !ok {
		return nil, &SchemaError{Field: "root", Expected: "table", Found: "nothing"}
	}
	rootTable, ok := rootVal.(map[string]any)
	if !ok {
		return nil, &SchemaError{Field: "root", Expected: "table", Found: typeName(rootVal)}
	}
	root, err := decodePackage("root", rootTable)
	if err != nil {
		return nil, err
	}

	tables, err := packageTables(tree["package"])
	if err != nil {
		return nil, err
	}
	pkgs := make([]models.Package, 0, len(tables))
	for i, t := range tables {
		pkg, err := decodePackage(fmt.Sprintf("package[%d]", i), t)
		if err != nil {
			return nil, err
		}
		pkgs = append(pkgs, pkg)
	}

	return &models.Lockfile{Root: root, Packages: pkgs}, nil
}

// packageTables accepts both [[package]] arrays and inline arrays of tables.
// A missing key means there are no dependencies
func packageTables(v any) ([]map[string]any, error) {
	switch arr := v.(type) {
	case nil:
		return nil, nil
	case []map[string]any:
		return arr, nil
	case []any:
		tables := make([]map[string]any, 0, len(arr))
		for i, elem := range arr {
			t, ok := elem.(map[string]any)
			if !ok {
				return nil, &SchemaError{
					Field:    fmt.Sprintf("package[%d]", i),
					Expected: "table",
					Found:    typeName(elem),
				}
			}
			tables = append(tables, t)
		}
		return tables, nil
	default:
		return nil, &SchemaError{Field: "package", Expected: "array of tables", Found: typeName(v)}
	}
}

func decodePackage(field string, t map[string]any) (models.Package, error) {
	var (
		pkg models.Package
		err error
	)
	if pkg.Name, err = requiredString(field, t, "name"); err != nil {
		return models.Package{}, err
	}
	if pkg.Name == "" {
		return models.Package{}, &SchemaError{Field: field + ".name", Expected: "non-empty string", Found: "empty string"}
	}
	if pkg.Version, err = requiredString(field, t, "version"); err != nil {
		return models.Package{}, err
	}
	if pkg.Source, err = optionalString(field, t, "source"); err != nil {
		return models.Package{}, err
	}
	if pkg.Dependencies, err = stringList(field, t, "dependencies"); err != nil {
		return models.Package{}, err
	}
	return pkg, nil
}

func requiredString(field string, t map[string]any, key string) (string, error) {
	v, ok := t[key]
	if !ok {
		return "", &SchemaError{Field: field + "." + key, Expected: "string", Found: "nothing"}
	}
	s, ok := v.(string)
	if !ok {
		return "", &SchemaError{Field: field + "." + key, Expected: "string", Found: typeName(v)}
	}
	return s, nil
}

func optionalString(field string, t map[string]any, key string) (*string, error) {
	v, ok := t[key]
	if !ok {
		return nil, nil
	}
	s, ok := v.(string)
	if !ok {
		return nil, &SchemaError{Field: field + "." + key, Expected: "string", Found: typeName(v)}
	}
	return &s, nil
}

// stringList decodes an array of strings; a missing key is an empty list
func stringList(field string, t map[string]any, key string) ([]string, error) {
	v, ok := t[key]
	if !ok {
		return nil, nil
	}
	arr, ok := v.([]any)
	if !ok {
		return nil, &SchemaError{Field: field + "." + key, Expected: "array of strings", Found: typeName(v)}
	}
	out := make([]string, 0, len(arr))
	for i, elem := range arr {
		s, ok := elem.(string)
		if !ok {
			return nil, &SchemaError{
				Field:    fmt.Sprintf("%s.%s[%d]", field, key, i),
				Expected: "string",
				Found:    typeName(elem),
			}
		}
		out = append(out, s)
	}
	return out, nil
}
