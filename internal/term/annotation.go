package term

// Annotation is what a print pass computes for one binder.
type Annotation struct {
	// NameID selects the display name; binders visible at the same point
	// never share one.
	NameID int
	// Closed is set when no reference inside the binder escapes past it.
	Closed bool
}

// Annotations is a side table keyed on binder identity. It is rebuilt for
// every print, so terms themselves are never written to.
type Annotations map[Binder]Annotation

// Closed reports whether t is a binder annotated as closed.
func (a Annotations) Closed(t Term) bool {
	b, ok := t.(Binder)
	if !ok {
		return false
	}
	return a[b].Closed
}
