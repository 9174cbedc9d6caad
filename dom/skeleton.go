package dom

// NewDocument builds a minimal well-formed document: an html root with a
// head carrying the charset declaration and title, and an empty body. An
// empty lang leaves the root without a lang attribute.
func NewDocument(title, lang string) *Element {
	root := NewElement("html")
	if lang != "" {
		root.SetAttr("lang", lang)
	}
	head := NewElement("head")
	head.Children = []Node{
		Elem(NewElement("meta", Attr{Key: "charset", Value: DefaultCharset})),
	}
	t := NewElement("title")
	t.Children = []Node{Text(title)}
	head.Children = append(head.Children, Elem(t))
	root.Children = []Node{Elem(head), Elem(NewElement("body"))}
	return root
}
