package catalog

import "strings"

// Kind identifies an attribute value list.
type Kind string

const (
	KindColor    Kind = "color"
	KindMaterial Kind = "material"
	KindSize     Kind = "size"
	KindFinish   Kind = "finish"
)

// Kinds lists every attribute kind in display order.
func Kinds() []Kind {
	return []Kind{KindColor, KindMaterial, KindSize, KindFinish}
}

// ValidKind reports whether k names a known attribute kind.
func ValidKind(k Kind) bool {
	switch k {
	case KindColor, KindMaterial, KindSize, KindFinish:
		return true
	}
	return false
}

// Value is one reusable attribute value. Code is only meaningful for colors.
type Value struct {
	Name string `json:"name"`
	Code string `json:"code,omitempty"`
}

// NeutralColorCode is used when no display code is known for a color.
const NeutralColorCode = "#808080"

// wellKnownColorCodes supplies display codes for common color names.
var wellKnownColorCodes = map[string]string{
	"black":  "#000000",
	"white":  "#ffffff",
	"gray":   "#808080",
	"grey":   "#808080",
	"red":    "#ff0000",
	"blue":   "#0000ff",
	"green":  "#008000",
	"yellow": "#ffff00",
	"orange": "#ffa500",
	"purple": "#800080",
	"pink":   "#ffc0cb",
	"brown":  "#a52a2a",
	"beige":  "#f5f5dc",
	"navy":   "#000080",
	"gold":   "#ffd700",
	"silver": "#c0c0c0",
	"ivory":  "#fffff0",
	"teal":   "#008080",
}

// ColorCodeFor returns the display code for a color name: the caller-supplied
// code when present, a well-known code for common names, otherwise neutral.
func ColorCodeFor(name, supplied string) string {
	if supplied != "" {
		return supplied
	}
	if code, ok := wellKnownColorCodes[strings.ToLower(strings.TrimSpace(name))]; ok {
		return code
	}
	return NeutralColorCode
}

// Registry holds the open sets of reusable attribute values editors draw
// from while composing variants. It is in-memory, single-editor state; the
// persistence collaborator mirrors create-if-absent semantics server-side.
type Registry struct {
	values map[Kind][]Value
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{values: make(map[Kind][]Value)}
}

// List returns the known values for a kind in creation order.
func (r *Registry) List(kind Kind) []Value {
	return append([]Value(nil), r.values[kind]...)
}

// Create adds a value to the registry. Whitespace is trimmed; a
// case-insensitive match returns the existing value without mutation, and an
// empty name is a no-op reported through ok=false so the registry never
// holds blank placeholders.
func (r *Registry) Create(kind Kind, name, code string) (Value, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Value{}, false
	}
	for _, existing := range r.values[kind] {
		if strings.EqualFold(existing.Name, name) {
			return existing, true
		}
	}
	value := Value{Name: name}
	if kind == KindColor {
		value.Code = ColorCodeFor(name, code)
	}
	r.values[kind] = append(r.values[kind], value)
	return value, true
}
