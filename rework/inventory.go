package rework

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/h2non/filetype"
	"github.com/maruel/natural"
	parse "github.com/tdewolff/parse/v2"
	"go.uber.org/zap"

	"htmlfix/common"
	"htmlfix/dom"
	"htmlfix/utils/debug"
)

// Ref is one classified resource reference found in a page.
type Ref struct {
	Elem      string
	Attr      string
	Value     string
	Kind      common.RefKind
	MediaType string // data references only
	Note      string // verification finding, empty when nothing to report
}

// PageRefs holds every reference extracted from one page, in document order.
type PageRefs struct {
	ID      string
	SrcName string
	Title   string
	Refs    []Ref
}

// Inventory accumulates classified resource references across all pages of
// one extract run.
type Inventory struct {
	Pages  []PageRefs
	verify bool
}

func newInventory(verify bool) *Inventory {
	return &Inventory{verify: verify}
}

// addPage parses one page and appends its classified references. This is
// the extract command counterpart of processPage.
func (inv *Inventory) addPage(ctx context.Context, r io.Reader, src, fsPath string, log *zap.Logger) error {
	p, err := Prepare(ctx, r, src, log)
	if err != nil {
		return fmt.Errorf("unable to parse page (%s): %w", src, err)
	}
	if p.Root == nil {
		log.Warn("Skipping page, no top level html element", zap.String("from", src))
		return nil
	}

	// Verification resolves targets relative to the page location, pages
	// coming out of archives have none.
	baseDir := ""
	if inv.verify && fsPath != "" {
		baseDir = filepath.Dir(fsPath)
	}

	page := inv.collect(p, baseDir)
	log.Info("Page scanned", zap.String("from", src), zap.Int("refs", len(page.Refs)), zap.String("page_id", p.ID))
	return nil
}

// collect classifies every resource reference of the page and records the
// result. Local references are verified when baseDir is not empty.
func (inv *Inventory) collect(p *Page, baseDir string) PageRefs {
	raw := dom.ExtractResources(p.Root)
	page := PageRefs{
		ID:      p.ID,
		SrcName: p.SrcName,
		Title:   p.Title(),
		Refs:    make([]Ref, 0, len(raw)),
	}
	for _, rr := range raw {
		ref := Ref{Elem: rr.Name, Attr: rr.Attr, Value: rr.Value}
		ref.Kind, ref.MediaType = classifyRef(rr.Value)
		if ref.Kind == common.RefKindLocal && baseDir != "" {
			ref.Note = verifyLocal(baseDir, rr.Value)
		}
		page.Refs = append(page.Refs, ref)
	}

	inv.Pages = append(inv.Pages, page)
	return page
}

// classifyRef buckets a reference value. Protocol relative references
// ("//cdn.example.com/...") count as external even though they carry no
// scheme.
func classifyRef(value string) (common.RefKind, string) {
	if value == "" {
		return common.RefKindEmpty, ""
	}
	if strings.HasPrefix(value, "#") {
		return common.RefKindAnchor, ""
	}
	if strings.HasPrefix(strings.ToLower(value), "data:") {
		var mediatype string
		if mt, _, err := parse.DataURI([]byte(value)); err == nil {
			mediatype = string(mt)
		}
		return common.RefKindData, mediatype
	}
	if u, err := url.Parse(value); err == nil && (u.Scheme != "" || u.Host != "") {
		return common.RefKindExternal, ""
	}
	return common.RefKindLocal, ""
}

// filetype reports some contents under a name different from the customary
// file extension.
var extAliases = map[string]string{
	"jpeg":  "jpg",
	"htm":   "html",
	"xhtml": "html",
	"tif":   "tiff",
}

// verifyLocal checks that a local reference points at an existing file and
// that the file extension agrees with the sniffed content. The returned
// string describes the problem and is empty when there is nothing to report.
func verifyLocal(dir, value string) string {
	v := value
	if i := strings.IndexAny(v, "?#"); i >= 0 {
		v = v[:i]
	}
	if v == "" {
		return ""
	}
	if unescaped, err := url.PathUnescape(v); err == nil {
		v = unescaped
	}

	target := filepath.Join(dir, filepath.FromSlash(v))
	fi, err := os.Stat(target)
	if err != nil {
		return "target does not exist"
	}
	if fi.IsDir() {
		return "target is a directory"
	}

	f, err := os.Open(target)
	if err != nil {
		return fmt.Sprintf("unable to open target: %v", err)
	}
	defer f.Close()

	buf, err := sniff(f)
	if err != nil {
		return fmt.Sprintf("unable to read target: %v", err)
	}
	t, err := filetype.Match(buf)
	if err != nil || t == filetype.Unknown {
		// content not recognized, nothing to compare against
		return ""
	}

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(target)), ".")
	if canon, ok := extAliases[ext]; ok {
		ext = canon
	}
	if ext != "" && ext != t.Extension {
		return fmt.Sprintf("extension %q does not match content (%s)", ext, t.Extension)
	}
	return ""
}

// String returns a readable listing of the whole inventory. Pages are listed
// in natural order of their source names, references stay in document order.
func (inv *Inventory) String() string {
	if inv == nil || len(inv.Pages) == 0 {
		return "no resource references found\n"
	}

	pages := slices.Clone(inv.Pages)
	sort.Slice(pages, func(i, j int) bool { return natural.Less(pages[i].SrcName, pages[j].SrcName) })

	counts := make(map[common.RefKind]int)
	total := 0
	for _, page := range pages {
		for _, r := range page.Refs {
			counts[r.Kind]++
			total++
		}
	}

	tw := debug.NewTreeWriter()
	tw.Line(0, "Resource references (%d pages, %d refs)", len(pages), total)
	tw.Line(1, "local[%d] external[%d] anchor[%d] data[%d]",
		counts[common.RefKindLocal], counts[common.RefKindExternal], counts[common.RefKindAnchor], counts[common.RefKindData])

	for _, page := range pages {
		tw.Line(1, "Page[%q] id[%s] title[%q] refs[%d]", page.SrcName, page.ID, page.Title, len(page.Refs))
		for _, r := range page.Refs {
			tw.Line(2, "[%s] %s@%s = %q", r.Kind, r.Elem, r.Attr, r.Value)
			if r.MediaType != "" {
				tw.Line(3, "mediatype: %s", r.MediaType)
			}
			if r.Note != "" {
				tw.Line(3, "verify: %s", r.Note)
			}
		}
	}
	return tw.String()
}
