// Enums here are shared between command line handling and the processing
// pipeline. Keeping them in a separate package avoids pulling the whole
// configuration into packages that only need the values.
package common

// Specification of requested dump output type.
// ENUM(tree, html, resources)
type DumpFmt int

func (d DumpFmt) Ext() string {
	switch d {
	case DumpFmtTree:
		return ".txt"
	case DumpFmtHtml:
		return ".html"
	case DumpFmtResources:
		return ".txt"
	default:
		// this should never happen
		panic("unsupported dump format requested")
	}
}

// Classification of an extracted resource reference value.
// ENUM(local, external, anchor, data, empty)
type RefKind int

// IsFetchable reports whether the reference points at something that exists
// outside of the page itself.
func (k RefKind) IsFetchable() bool {
	return k == RefKindLocal || k == RefKindExternal
}
