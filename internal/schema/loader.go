package schema

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"sync"

	"github.com/qri-io/jsonschema"
)

const schemasDir = "schemas"

// Names of the schemas embedded under db/schemas.
const (
	Registration   = "registration"
	Login          = "login"
	ProfileUpdate  = "profile_update"
	Position       = "position"
	PositionUpdate = "position_update"
	SeedPositions  = "seed_positions"
	SeedCandidates = "seed_candidates"
)

// ErrInvalid is wrapped by every ValidationError.
var ErrInvalid = errors.New("invalid document")

// ErrUnknownSchema is returned by Validate for a name that was never loaded.
var ErrUnknownSchema = errors.New("unknown schema")

// ValidationError lists the schema violations of one document.
type ValidationError struct {
	Schema   string
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Schema, strings.Join(e.Problems, "; "))
}

func (e *ValidationError) Unwrap() error { return ErrInvalid }

// Loader compiles and caches JSON schemas read from a file system.
type Loader struct {
	mu    sync.RWMutex
	cache map[string]*jsonschema.Schema
}

// NewLoader compiles every *.json file under "schemas/" in fsys. A schema is
// named after its file without the extension.
func NewLoader(fsys fs.FS) (*Loader, error) {
	l := &Loader{cache: make(map[string]*jsonschema.Schema)}
	if err := l.Reload(fsys); err != nil {
		return nil, err
	}

	return l, nil
}

// Reload replaces the cached schemas with the ones found in fsys.
func (l *Loader) Reload(fsys fs.FS) error {
	entries, err := fs.ReadDir(fsys, schemasDir)
	if err != nil {
		return fmt.Errorf("read schemas dir: %w", err)
	}

	newCache := make(map[string]*jsonschema.Schema)
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}

		b, err := fs.ReadFile(fsys, path.Join(schemasDir, e.Name()))
		if err != nil {
			return fmt.Errorf("read schema %s: %w", e.Name(), err)
		}

		rs := &jsonschema.Schema{}
		if err := json.Unmarshal(b, rs); err != nil {
			return fmt.Errorf("compile schema %s: %w", e.Name(), err)
		}

		newCache[strings.TrimSuffix(e.Name(), ".json")] = rs
	}

	l.mu.Lock()
	l.cache = newCache
	l.mu.Unlock()

	return nil
}

// Has reports whether a schema with the given name is loaded.
func (l *Loader) Has(name string) bool {
	l.mu.RLock()
	_, ok := l.cache[name]
	l.mu.RUnlock()

	return ok
}

// Validate checks doc against the named schema. Violations are reported as a
// *ValidationError; malformed JSON is reported the same way.
func (l *Loader) Validate(ctx context.Context, name string, doc []byte) error {
	l.mu.RLock()
	s, ok := l.cache[name]
	l.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownSchema, name)
	}

	if !json.Valid(doc) {
		return &ValidationError{Schema: name, Problems: []string{"body is not valid JSON"}}
	}

	verrs, err := s.ValidateBytes(ctx, doc)
	if err != nil {
		return fmt.Errorf("validate %s: %w", name, err)
	}
	if len(verrs) == 0 {
		return nil
	}

	problems := make([]string, 0, len(verrs))
	for _, v := range verrs {
		if v.PropertyPath != "" && v.PropertyPath != "/" {
			problems = append(problems, v.PropertyPath+": "+v.Message)
			continue
		}
		problems = append(problems, v.Message)
	}

	return &ValidationError{Schema: name, Problems: problems}
}
