package dom

// resourceAttrs lists the attributes that may carry a resource reference,
// in the order they are reported for a single element.
var resourceAttrs = [...]string{"src", "href", "data", "action"}

// ResourceRef records a single resource-bearing attribute found on an
// element: the element name, the attribute key and its verbatim value.
type ResourceRef struct {
	Name  string
	Attr  string
	Value string
}

// ExtractResources collects every non-empty src, href, data and action
// attribute in the tree, root included, in document order. An element
// carrying several of them yields one record per attribute, in the fixed
// src, href, data, action order.
func ExtractResources(e *Element) []ResourceRef {
	var refs []ResourceRef
	Walk(Elem(e), func(n Node) {
		if n.Kind != NodeElement {
			return
		}
		for _, key := range resourceAttrs {
			if v := n.Elem.AttrValue(key, ""); v != "" {
				refs = append(refs, ResourceRef{Name: n.Elem.Name, Attr: key, Value: v})
			}
		}
	})
	return refs
}
