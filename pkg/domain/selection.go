package domain

// Range is a half-open span of byte offsets [Start, End) in a document.
type Range struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// IsEmpty reports whether the range covers no text.
func (r Range) IsEmpty() bool {
	return r.End <= r.Start
}

// Len returns the number of bytes covered.
func (r Range) Len() int {
	if r.IsEmpty() {
		return 0
	}
	return r.End - r.Start
}

// Valid reports whether the range fits inside a document of the given size.
func (r Range) Valid(size int) bool {
	return r.Start >= 0 && r.End >= r.Start && r.End <= size
}

// Selection is the reference captured when input is read from a document.
// Delivery targets this reference, not whatever is selected at delivery time.
type Selection struct {
	Range Range  `json:"range"`
	Text  string `json:"text"`
}

// IsEmpty reports whether nothing is selected.
func (s Selection) IsEmpty() bool {
	return s.Range.IsEmpty()
}
