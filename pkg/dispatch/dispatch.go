// Package dispatch holds the metadata types referenced by generated dispatch
// tables. Generated code is data-only: every entry was validated at compile
// time, so consumers never re-derive any of the checks.
package dispatch

// SelectorKind distinguishes how an entry resolves its selector.
type SelectorKind uint8

const (
	// SelectorDefault uses whichever selector the definition marks default.
	SelectorDefault SelectorKind = iota
	// SelectorNamed uses the selector declared under SelectorMeta.Name.
	SelectorNamed
)

// SelectorMeta describes the selector requirement of a call or view.
type SelectorMeta struct {
	Kind       SelectorKind
	Name       string // set for SelectorNamed
	ReturnType string
}

// ArgMeta is one argument of a call or view, origin and selection wrapper
// already stripped, self-references rewritten to the runtime placeholder.
type ArgMeta struct {
	Name    string
	Type    string
	Compact bool
}

// CallMeta is the dispatch record of one call.
type CallMeta struct {
	Index    uint8
	Name     string
	Weight   string // weight formula, verbatim
	Selector *SelectorMeta
	Args     []ArgMeta
	Docs     []string
}

// ViewMeta is the dispatch record of one view.
type ViewMeta struct {
	Index    uint8
	Name     string
	Selector *SelectorMeta
	Args     []ArgMeta
	Docs     []string
}

// Table is the complete dispatch surface of one interface definition.
type Table struct {
	Name  string
	Calls []CallMeta
	Views []ViewMeta
}

// CallName resolves a call index to its method name.
func (t *Table) CallName(index uint8) (string, bool) {
	for i := range t.Calls {
		if t.Calls[i].Index == index {
			return t.Calls[i].Name, true
		}
	}
	return "", false
}

// CallIndex resolves a method name to its call index.
func (t *Table) CallIndex(name string) (uint8, bool) {
	for i := range t.Calls {
		if t.Calls[i].Name == name {
			return t.Calls[i].Index, true
		}
	}
	return 0, false
}

// ViewName resolves a view index to its method name.
func (t *Table) ViewName(index uint8) (string, bool) {
	for i := range t.Views {
		if t.Views[i].Index == index {
			return t.Views[i].Name, true
		}
	}
	return "", false
}
