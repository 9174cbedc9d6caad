package rework

import (
	"fmt"
	"strconv"

	"github.com/beevik/etree"

	"htmlfix/misc"
)

// writeManifest serializes the inventory as an XML manifest. Reference
// values are element text, everything else goes into attributes.
func writeManifest(path string, inv *Inventory) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	manifest := doc.CreateElement("manifest")
	manifest.CreateAttr("generator", misc.GetAppName())
	manifest.CreateAttr("version", misc.GetVersion())
	manifest.CreateAttr("pages", strconv.Itoa(len(inv.Pages)))

	for _, page := range inv.Pages {
		pg := manifest.CreateElement("page")
		pg.CreateAttr("id", page.ID)
		pg.CreateAttr("source", page.SrcName)
		if page.Title != "" {
			pg.CreateAttr("title", page.Title)
		}
		for _, r := range page.Refs {
			res := pg.CreateElement("resource")
			res.CreateAttr("element", r.Elem)
			res.CreateAttr("attribute", r.Attr)
			res.CreateAttr("kind", r.Kind.String())
			if r.MediaType != "" {
				res.CreateAttr("mediatype", r.MediaType)
			}
			if r.Note != "" {
				res.CreateAttr("note", r.Note)
			}
			res.SetText(r.Value)
		}
	}

	doc.Indent(2)
	if err := doc.WriteToFile(path); err != nil {
		return fmt.Errorf("unable to write manifest file: %w", err)
	}
	return nil
}
