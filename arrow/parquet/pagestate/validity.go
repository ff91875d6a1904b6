package pagestate

// OptionalPageValidity walks a definition-level stream and exposes it as
// runs of (isValid, length), the form extend_from_state's "validity-guided
// copy" loop needs: it lets a flat decoder bulk-copy a run of valid values
// in one slice operation instead of branching per row (spec.md section
// 4.5). Grounded on the run-oriented validity iteration in
// original_source/src/io/parquet/read/deserialize/fixed_size_binary/basic.rs.
type OptionalPageValidity struct {
	def       []uint32
	maxDef    uint32
	pos       int
}

func NewOptionalPageValidity(def []uint32, maxDef uint32) *OptionalPageValidity {
	return &OptionalPageValidity{def: def, maxDef: maxDef}
}

func (v *OptionalPageValidity) Len() int { return len(v.def) - v.pos }

// NextRun returns the next maximal run of equally-valid rows starting at
// the current position, advancing past it. ok is false once exhausted.
func (v *OptionalPageValidity) NextRun() (isValid bool, length int, ok bool) {
	if v.pos >= len(v.def) {
		return false, 0, false
	}
	isValid = v.def[v.pos] == v.maxDef
	start := v.pos
	for v.pos < len(v.def) && (v.def[v.pos] == v.maxDef) == isValid {
		v.pos++
	}
	return isValid, v.pos - start, true
}

// NextIsValid pulls a single row's validity, advancing by one.
func (v *OptionalPageValidity) NextIsValid() (bool, bool) {
	if v.pos >= len(v.def) {
		return false, false
	}
	isValid := v.def[v.pos] == v.maxDef
	v.pos++
	return isValid, true
}
