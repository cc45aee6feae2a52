// internal/tile/registry.go
//
// Tile factory and the name-keyed registry behind a row's `tile-element`
// attribute. A row validates a tile element name by asking its Factory to
// construct one; any error means "fall back to the default tile".
//
// Names follow the custom element naming rules: lowercase ASCII start,
// at least one hyphen, no reserved SVG/MathML names.

package tile

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

var (
	// ErrInvalidName is returned for names that are not valid custom element names.
	ErrInvalidName = errors.New("invalid custom element name")
	// ErrUndefined is returned when no constructor is registered for a name.
	ErrUndefined = errors.New("custom element not defined")
	// ErrAlreadyDefined is returned when Define is called twice for one name.
	ErrAlreadyDefined = errors.New("custom element already defined")
)

// Factory constructs tile elements by tag name.
type Factory interface {
	Create(name string) (Element, error)
}

// Constructor builds a fresh tile element.
type Constructor func() (Element, error)

// Registry is a goroutine-safe Factory keyed by lowercase tag name.
type Registry struct {
	mu    sync.RWMutex
	ctors map[string]Constructor
}

// NewRegistry returns a registry with the built-in tile defined as DefaultName.
func NewRegistry() *Registry {
	r := &Registry{ctors: make(map[string]Constructor)}
	r.ctors[DefaultName] = func() (Element, error) { return New(), nil }
	return r
}

// Default is the registry rows use unless given another Factory.
var Default = NewRegistry()

// Define registers ctor under name.
func (r *Registry) Define(name string, ctor Constructor) error {
	if !ValidName(name) {
		return fmt.Errorf("define %q: %w", name, ErrInvalidName)
	}
	if ctor == nil {
		return fmt.Errorf("define %q: nil constructor", name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.ctors[name]; ok {
		return fmt.Errorf("define %q: %w", name, ErrAlreadyDefined)
	}
	r.ctors[name] = ctor
	return nil
}

// Alias defines each name as the built-in tile under that tag name, so
// markup can use its own tile element names without writing a constructor.
func (r *Registry) Alias(names ...string) error {
	for _, name := range names {
		if err := r.Define(name, named(name)); err != nil {
			return err
		}
	}
	return nil
}

func named(name string) Constructor {
	return func() (Element, error) { return NewNamed(name), nil }
}

// Defined reports whether name has a constructor.
func (r *Registry) Defined(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.ctors[strings.ToLower(name)]
	return ok
}

// Create constructs the element registered under name (case-insensitive).
func (r *Registry) Create(name string) (Element, error) {
	name = strings.ToLower(name)
	if !ValidName(name) {
		return nil, fmt.Errorf("create %q: %w", name, ErrInvalidName)
	}
	r.mu.RLock()
	ctor, ok := r.ctors[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("create %q: %w", name, ErrUndefined)
	}
	el, err := ctor()
	if err != nil {
		return nil, fmt.Errorf("create %q: %w", name, err)
	}
	if el == nil {
		return nil, fmt.Errorf("create %q: constructor returned nil", name)
	}
	return el, nil
}

var reservedNames = map[string]struct{}{
	"annotation-xml":   {},
	"color-profile":    {},
	"font-face":        {},
	"font-face-src":    {},
	"font-face-uri":    {},
	"font-face-format": {},
	"font-face-name":   {},
	"missing-glyph":    {},
}

// ValidName reports whether name is a valid custom element name.
func ValidName(name string) bool {
	if name == "" || name[0] < 'a' || name[0] > 'z' {
		return false
	}
	if !strings.Contains(name, "-") {
		return false
	}
	if _, ok := reservedNames[name]; ok {
		return false
	}
	for _, c := range name {
		if !isPCENChar(c) {
			return false
		}
	}
	return true
}

func isPCENChar(c rune) bool {
	switch {
	case c == '-' || c == '.' || c == '_' || c == 0xB7:
		return true
	case c >= '0' && c <= '9', c >= 'a' && c <= 'z':
		return true
	case c >= 0xC0 && c <= 0xD6, c >= 0xD8 && c <= 0xF6, c >= 0xF8 && c <= 0x37D:
		return true
	case c >= 0x37F && c <= 0x1FFF, c >= 0x200C && c <= 0x200D, c >= 0x203F && c <= 0x2040:
		return true
	case c >= 0x2070 && c <= 0x218F, c >= 0x2C00 && c <= 0x2FEF, c >= 0x3001 && c <= 0xD7FF:
		return true
	case c >= 0xF900 && c <= 0xFDCF, c >= 0xFDF0 && c <= 0xFFFD, c >= 0x10000 && c <= 0xEFFFF:
		return true
	}
	return false
}
