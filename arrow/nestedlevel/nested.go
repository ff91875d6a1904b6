// Package nestedlevel implements the rep/def level machine of spec.md
// section 4.4 (C4): reconstructing arbitrarily nested Arrow structure from
// a flat pair of integer streams. Ported from
// original_source/src/io/parquet/read/deserialize/nested_utils.rs (the
// Nested trait, its five concrete builders, and the extend/extend_offsets2
// cumulative-table loop) — see DESIGN.md.
package nestedlevel

// InitNested describes one depth of the builder stack, from the outermost
// row-level container down to the leaf/primitive (spec.md section 4.4,
// "Inputs") — index 0 is always the row-counting container, and the last
// entry is always InitPrimitive.
type InitNested struct {
	Kind     InitKind
	Nullable bool
}

type InitKind int

const (
	InitPrimitive InitKind = iota
	InitList
	InitStruct
)

// Nested is the builder interface every depth of the stack satisfies.
type Nested interface {
	// Inner returns (and clears) the accumulated offsets and validity for
	// this depth, handing ownership to the caller.
	Inner() ([]int64, *MutableBitmap)
	// Push records one element at this depth: length is the child count
	// accumulated one depth down (or, at the leaf, unused), isValid
	// reports whether this element is defined at this depth.
	Push(length int64, isValid bool)
	IsNullable() bool
	IsRepeated() bool
	// IsRequired reports whether the Arrow container requires all items
	// to be filled (struct semantics).
	IsRequired() bool
	Len() int
	// NumValues is the number of values associated with the primitive
	// type this Nested tracks.
	NumValues() int64
}

// MutableBitmap is the level machine's own minimal validity builder, kept
// separate from arrow.MutableBitmap: a plain []bool supporting only
// push, len and read-back of the pushed bits.
type MutableBitmap struct {
	bits []bool
}

func (m *MutableBitmap) Push(v bool) { m.bits = append(m.bits, v) }
func (m *MutableBitmap) Len() int    { return len(m.bits) }
func (m *MutableBitmap) Bits() []bool { return m.bits }

// NestedPrimitive is a length counter only; no offsets, no validity
// (spec.md section 4.4).
type NestedPrimitive struct {
	nullable bool
	length   int
}

func NewNestedPrimitive(nullable bool) *NestedPrimitive { return &NestedPrimitive{nullable: nullable} }

func (n *NestedPrimitive) Inner() ([]int64, *MutableBitmap) { return nil, nil }
func (n *NestedPrimitive) IsNullable() bool                 { return n.nullable }
func (n *NestedPrimitive) IsRepeated() bool                 { return false }
func (n *NestedPrimitive) IsRequired() bool                 { return false }
func (n *NestedPrimitive) Push(int64, bool)                 { n.length++ }
func (n *NestedPrimitive) Len() int                         { return n.length }
func (n *NestedPrimitive) NumValues() int64                 { return int64(n.length) }

// NestedOptional is a nullable list: offsets + validity, repeated=true.
type NestedOptional struct {
	Validity MutableBitmap
	Offsets  []int64
}

func NewNestedOptional(capacity int) *NestedOptional {
	return &NestedOptional{Offsets: make([]int64, 0, capacity+1)}
}

func (n *NestedOptional) Inner() ([]int64, *MutableBitmap) {
	offsets := n.Offsets
	validity := n.Validity
	n.Offsets = nil
	n.Validity = MutableBitmap{}
	return offsets, &validity
}
func (n *NestedOptional) IsNullable() bool { return true }
func (n *NestedOptional) IsRepeated() bool { return true }
func (n *NestedOptional) IsRequired() bool { return false } // may be for FixedSizeList
func (n *NestedOptional) Push(length int64, isValid bool) {
	n.Offsets = append(n.Offsets, length)
	n.Validity.Push(isValid)
}
func (n *NestedOptional) Len() int { return len(n.Offsets) }
func (n *NestedOptional) NumValues() int64 {
	if len(n.Offsets) == 0 {
		return 0
	}
	return n.Offsets[len(n.Offsets)-1]
}

// NestedValid is a non-null list: offsets only, repeated=true.
type NestedValid struct {
	Offsets []int64
}

func NewNestedValid(capacity int) *NestedValid {
	return &NestedValid{Offsets: make([]int64, 0, capacity+1)}
}

func (n *NestedValid) Inner() ([]int64, *MutableBitmap) {
	offsets := n.Offsets
	n.Offsets = nil
	return offsets, nil
}
func (n *NestedValid) IsNullable() bool         { return false }
func (n *NestedValid) IsRepeated() bool         { return true }
func (n *NestedValid) IsRequired() bool         { return false }
func (n *NestedValid) Push(length int64, _ bool) { n.Offsets = append(n.Offsets, length) }
func (n *NestedValid) Len() int                 { return len(n.Offsets) }
func (n *NestedValid) NumValues() int64 {
	if len(n.Offsets) == 0 {
		return 0
	}
	return n.Offsets[len(n.Offsets)-1]
}

// NestedStructValid is a non-null struct: length counter, required=true.
type NestedStructValid struct{ length int }

func NewNestedStructValid() *NestedStructValid { return &NestedStructValid{} }

func (n *NestedStructValid) Inner() ([]int64, *MutableBitmap) { return nil, nil }
func (n *NestedStructValid) IsNullable() bool                 { return false }
func (n *NestedStructValid) IsRepeated() bool                 { return false }
func (n *NestedStructValid) IsRequired() bool                 { return true }
func (n *NestedStructValid) Push(int64, bool)                 { n.length++ }
func (n *NestedStructValid) Len() int                         { return n.length }
func (n *NestedStructValid) NumValues() int64                 { return int64(n.length) }

// NestedStruct is a nullable struct: validity only, required=true.
type NestedStruct struct{ Validity MutableBitmap }

func NewNestedStruct(capacity int) *NestedStruct {
	_ = capacity
	return &NestedStruct{}
}

func (n *NestedStruct) Inner() ([]int64, *MutableBitmap) {
	validity := n.Validity
	n.Validity = MutableBitmap{}
	return nil, &validity
}
func (n *NestedStruct) IsNullable() bool           { return true }
func (n *NestedStruct) IsRepeated() bool           { return false }
func (n *NestedStruct) IsRequired() bool           { return true }
func (n *NestedStruct) Push(_ int64, isValid bool) { n.Validity.Push(isValid) }
func (n *NestedStruct) Len() int                   { return n.Validity.Len() }
func (n *NestedStruct) NumValues() int64           { return int64(n.Validity.Len()) }

// InitNestedStack builds one Nested builder per InitNested entry, outermost
// to innermost, as spec.md section 4.4 describes.
func InitNestedStack(init []InitNested, capacity int) []Nested {
	out := make([]Nested, len(init))
	for i, in := range init {
		switch in.Kind {
		case InitPrimitive:
			out[i] = NewNestedPrimitive(in.Nullable)
		case InitList:
			if in.Nullable {
				out[i] = NewNestedOptional(capacity)
			} else {
				out[i] = NewNestedValid(capacity)
			}
		case InitStruct:
			if in.Nullable {
				out[i] = NewNestedStruct(capacity)
			} else {
				out[i] = NewNestedStructValid()
			}
		}
	}
	return out
}

// NestedState bundles the per-depth builder stack; Len() is the number of
// rows (the outermost builder's length).
type NestedState struct {
	Nested []Nested
}

func NewNestedState(nested []Nested) *NestedState { return &NestedState{Nested: nested} }

func (s *NestedState) Len() int {
	if len(s.Nested) == 0 {
		return 0
	}
	return s.Nested[0].Len()
}
