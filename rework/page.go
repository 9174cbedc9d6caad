package rework

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"htmlfix/config"
	"htmlfix/dom"
	"htmlfix/state"
)

// Page is a single parsed HTML document travelling through the pipeline.
type Page struct {
	SrcName string
	ID      string
	Root    *dom.Element
}

// Prepare reads and parses a single HTML page getting it ready for rework.
// A page without a top level html element comes back with a nil Root - the
// caller decides what to do with it, parsing itself did not fail.
func Prepare(ctx context.Context, r io.Reader, srcName string, log *zap.Logger) (*Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	env := state.EnvFromContext(ctx)

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("unable to read page: %w", err)
	}

	root, err := dom.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("unable to parse page: %w", err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("unable to generate page ID: %w", err)
	}

	p := &Page{
		SrcName: srcName,
		ID:      id.String(),
		Root:    root,
	}

	// Save source as received for debugging
	if root != nil {
		env.Rpt.StoreData(fmt.Sprintf("original-%s-%s", p.ID, filepath.Base(srcName)), data)
	}
	return p, nil
}

// Title returns the text of the first title element of the page or an empty
// string when there is none.
func (p *Page) Title() string {
	var title string
	dom.Exists(dom.Elem(p.Root), func(v dom.NodeView) bool {
		if v.Name != "title" {
			return false
		}
		title = v.Content
		return true
	})
	return title
}

// Lang returns the language attribute of the page root.
func (p *Page) Lang() string {
	return p.Root.AttrValue("lang", "")
}

// Apply performs the configured edits on the page tree: prune rules first,
// then head edits in a fixed order.
func (p *Page) Apply(ctx context.Context, log *zap.Logger) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	env := state.EnvFromContext(ctx)

	if err := p.prune(env.Cfg.Pages.Prune, log); err != nil {
		return err
	}
	return p.editHead(&env.Cfg.Pages.Head, log)
}

func (p *Page) prune(rules []config.PruneRule, log *zap.Logger) error {
	if len(rules) == 0 {
		return nil
	}

	matchers := make([]func(dom.NodeView) bool, 0, len(rules))
	for i, r := range rules {
		m, err := compileRule(r)
		if err != nil {
			return fmt.Errorf("invalid prune rule %d: %w", i+1, err)
		}
		matchers = append(matchers, m)
	}

	before := countNodes(p.Root)
	p.Root.Prune(func(v dom.NodeView) bool {
		for _, m := range matchers {
			if m(v) {
				return true
			}
		}
		return false
	})
	if removed := before - countNodes(p.Root); removed > 0 {
		log.Debug("Pruned page nodes", zap.Int("nodes", removed))
	}
	return nil
}

// compileRule turns a prune rule into a node predicate. All criteria of one
// rule must match the same node. A rule without criteria is refused, it
// would match everything.
func compileRule(r config.PruneRule) (func(dom.NodeView) bool, error) {
	if r.Empty() {
		return nil, errors.New("rule has no criteria")
	}
	return func(v dom.NodeView) bool {
		if r.Name != "" && v.Name != r.Name {
			return false
		}
		if r.ID != "" && v.Attrs["id"] != r.ID {
			return false
		}
		if r.Class != "" && !hasClassToken(v.Attrs["class"], r.Class) {
			return false
		}
		if r.Attribute != "" {
			val, ok := v.Attrs[r.Attribute]
			if !ok {
				return false
			}
			if r.Value != "" && val != r.Value {
				return false
			}
		}
		if r.Content != "" && v.Content != r.Content {
			return false
		}
		return true
	}, nil
}

// hasClassToken matches a single class against the whitespace separated
// token list of a class attribute value.
func hasClassToken(attr, class string) bool {
	for _, tok := range strings.Fields(attr) {
		if tok == class {
			return true
		}
	}
	return false
}

func countNodes(e *dom.Element) int {
	n := 0
	dom.Walk(dom.Elem(e), func(dom.Node) { n++ })
	return n
}

func (p *Page) editHead(hc *config.HeadConfig, log *zap.Logger) error {
	if hc.TitleTemplate != "" {
		title, err := expandTemplate(p, config.TitleTemplateFieldName, hc.TitleTemplate)
		if err != nil {
			log.Warn("Unable to expand title template, keeping page title", zap.Error(err))
		} else if title != "" {
			p.Root.SetTitle(title)
		}
	}
	if hc.Charset != "" {
		p.Root.SetCharset(hc.Charset)
	}
	if hc.Viewport != "" {
		p.Root.SetViewport(hc.Viewport)
	}
	if hc.Lang != "" {
		p.Root.SetAttr("lang", hc.Lang)
	}
	for _, l := range hc.Links {
		extra := make([]dom.Attr, 0, len(l.Attributes))
		for _, a := range l.Attributes {
			extra = append(extra, dom.Attr{Key: a.Key, Value: a.Value})
		}
		p.Root.InsertLink(l.Href, l.Rel, extra...)
	}
	for _, s := range hc.Scripts {
		text, err := scriptText(s)
		if err != nil {
			return err
		}
		p.Root.InsertInlineScript(text)
	}
	return nil
}

// scriptText resolves the text of a configured inline script. Inline text
// wins over a file path when both are present.
func scriptText(s config.ScriptConfig) (string, error) {
	if s.Text != "" {
		return s.Text, nil
	}
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return "", fmt.Errorf("unable to read script from %q: %w", s.Path, err)
	}
	return string(data), nil
}
