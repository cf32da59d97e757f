package catalog

import (
	"github.com/google/uuid"
)

// DuplicateSKUSuffix is appended to the SKU of a duplicated variant.
const DuplicateSKUSuffix = "-COPY"

// VariantSet is the ordered collection of variants owned by one product.
// Whenever the set is non-empty exactly one variant is the default; mutations
// that would break that invariant repair it before returning.
type VariantSet struct {
	variants []Variant
}

// NewVariantSet builds a set from existing variants, preserving order.
// Variants are assumed to have been produced by this package (or loaded from
// storage that was); the default invariant is re-checked and repaired so a
// set loaded from a stale row can never surface without a default.
func NewVariantSet(variants []Variant) *VariantSet {
	s := &VariantSet{variants: append([]Variant(nil), variants...)}
	s.repairDefault()
	return s
}

// Variants returns a copy of the collection in insertion order.
func (s *VariantSet) Variants() []Variant {
	return append([]Variant(nil), s.variants...)
}

// Len returns the number of variants in the set.
func (s *VariantSet) Len() int {
	return len(s.variants)
}

// Default returns the default variant, or nil for an empty set.
func (s *VariantSet) Default() *Variant {
	for i := range s.variants {
		if s.variants[i].IsDefault {
			v := s.variants[i]
			return &v
		}
	}
	return nil
}

// Add validates and appends a variant, assigning a fresh identifier. The
// first variant added to an empty set becomes the default regardless of the
// caller-supplied flag. Returns the stored variant.
func (s *VariantSet) Add(v Variant) (Variant, error) {
	if err := v.validate(); err != nil {
		return Variant{}, err
	}
	v.ID = uuid.NewString()
	if len(s.variants) == 0 {
		v.IsDefault = true
	} else if v.IsDefault {
		s.clearDefault()
	}
	v.dedupImages()
	s.variants = append(s.variants, v)
	return v, nil
}

// Update replaces the variant matching id in place. A zero-value IsDefault in
// data keeps the existing flag, so callers that only edit price or inventory
// cannot accidentally drop the default.
func (s *VariantSet) Update(id string, data Variant) (Variant, error) {
	idx := s.indexOf(id)
	if idx < 0 {
		return Variant{}, ErrVariantNotFound
	}
	if err := data.validate(); err != nil {
		return Variant{}, err
	}
	data.ID = id
	if !data.IsDefault {
		data.IsDefault = s.variants[idx].IsDefault
	} else if !s.variants[idx].IsDefault {
		s.clearDefault()
	}
	data.dedupImages()
	s.variants[idx] = data
	return data, nil
}

// Delete removes the variant matching id. Deleting the default promotes the
// first remaining variant by insertion order.
func (s *VariantSet) Delete(id string) error {
	idx := s.indexOf(id)
	if idx < 0 {
		return ErrVariantNotFound
	}
	wasDefault := s.variants[idx].IsDefault
	s.variants = append(s.variants[:idx], s.variants[idx+1:]...)
	if wasDefault && len(s.variants) > 0 {
		s.variants[0].IsDefault = true
	}
	return nil
}

// Duplicate clones the variant matching id with a new identifier and a
// "-COPY" SKU suffix. The clone is never the default.
func (s *VariantSet) Duplicate(id string) (Variant, error) {
	idx := s.indexOf(id)
	if idx < 0 {
		return Variant{}, ErrVariantNotFound
	}
	clone := s.variants[idx]
	clone.ID = uuid.NewString()
	clone.SKU += DuplicateSKUSuffix
	clone.IsDefault = false
	clone.Images = append([]string(nil), s.variants[idx].Images...)
	s.variants = append(s.variants, clone)
	return clone, nil
}

// SetDefault marks the variant matching id as default and clears the flag on
// every other variant.
func (s *VariantSet) SetDefault(id string) error {
	idx := s.indexOf(id)
	if idx < 0 {
		return ErrVariantNotFound
	}
	for i := range s.variants {
		s.variants[i].IsDefault = i == idx
	}
	return nil
}

// Aggregates holds the fields derived from the variant collection. The value
// lists keep first-seen order and omit empty values.
type Aggregates struct {
	TotalInventory int
	Colors         []string
	Sizes          []string
	Materials      []string
	Finishes       []string
}

// Aggregates recomputes the derived fields from the current collection.
func (s *VariantSet) Aggregates() Aggregates {
	agg := Aggregates{}
	for i := range s.variants {
		v := &s.variants[i]
		agg.TotalInventory += v.Inventory
		agg.Colors = appendDistinct(agg.Colors, v.Color)
		agg.Sizes = appendDistinct(agg.Sizes, v.Size)
		agg.Materials = appendDistinct(agg.Materials, v.Material)
		agg.Finishes = appendDistinct(agg.Finishes, v.Finish)
	}
	return agg
}

func appendDistinct(values []string, value string) []string {
	if value == "" {
		return values
	}
	for _, existing := range values {
		if existing == value {
			return values
		}
	}
	return append(values, value)
}

func (s *VariantSet) indexOf(id string) int {
	for i := range s.variants {
		if s.variants[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *VariantSet) clearDefault() {
	for i := range s.variants {
		s.variants[i].IsDefault = false
	}
}

func (s *VariantSet) repairDefault() {
	if len(s.variants) == 0 {
		return
	}
	defaults := 0
	for i := range s.variants {
		if s.variants[i].IsDefault {
			defaults++
		}
	}
	if defaults == 1 {
		return
	}
	s.clearDefault()
	s.variants[0].IsDefault = true
}
