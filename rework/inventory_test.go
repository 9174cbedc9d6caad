package rework

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"htmlfix/common"
)

func TestClassifyRef(t *testing.T) {
	tests := []struct {
		name      string
		value     string
		kind      common.RefKind
		mediatype string
	}{
		{"empty", "", common.RefKindEmpty, ""},
		{"anchor", "#top", common.RefKindAnchor, ""},
		{"data base64", "data:image/png;base64,aGVsbG8=", common.RefKindData, "image/png"},
		{"data plain", "data:text/html,<b>x</b>", common.RefKindData, "text/html"},
		{"external https", "https://example.com/a.css", common.RefKindExternal, ""},
		{"external protocol relative", "//cdn.example.com/lib.js", common.RefKindExternal, ""},
		{"external mailto", "mailto:someone@example.com", common.RefKindExternal, ""},
		{"local relative", "images/pic.jpg", common.RefKindLocal, ""},
		{"local absolute", "/assets/pic.jpg", common.RefKindLocal, ""},
		{"local with query", "page.html?x=1", common.RefKindLocal, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, mediatype := classifyRef(tt.value)
			if kind != tt.kind {
				t.Errorf("classifyRef(%q) kind = %s, want %s", tt.value, kind, tt.kind)
			}
			if mediatype != tt.mediatype {
				t.Errorf("classifyRef(%q) mediatype = %q, want %q", tt.value, mediatype, tt.mediatype)
			}
		})
	}
}

func TestVerifyLocal(t *testing.T) {
	tmpDir := t.TempDir()

	pngData := append([]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}, make([]byte, 64)...)
	files := map[string][]byte{
		"pic.png":    pngData,
		"fake.jpg":   pngData,
		"notes.txt":  []byte("just some text"),
		"my pic.png": pngData,
	}
	for name, data := range files {
		if err := os.WriteFile(filepath.Join(tmpDir, name), data, 0644); err != nil {
			t.Fatalf("Failed to create test file: %v", err)
		}
	}
	if err := os.MkdirAll(filepath.Join(tmpDir, "sub"), 0755); err != nil {
		t.Fatalf("Failed to create test directory: %v", err)
	}

	tests := []struct {
		name  string
		value string
		want  string
	}{
		{"existing image", "pic.png", ""},
		{"query string ignored", "pic.png?v=2", ""},
		{"fragment ignored", "pic.png#section", ""},
		{"escaped name", "my%20pic.png", ""},
		{"missing target", "missing.png", "target does not exist"},
		{"directory target", "sub", "target is a directory"},
		{"unrecognized content", "notes.txt", ""},
		{"extension mismatch", "fake.jpg", "does not match content"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			note := verifyLocal(tmpDir, tt.value)
			if tt.want == "" {
				if note != "" {
					t.Errorf("verifyLocal(%q) = %q, want no finding", tt.value, note)
				}
				return
			}
			if !strings.Contains(note, tt.want) {
				t.Errorf("verifyLocal(%q) = %q, want containing %q", tt.value, note, tt.want)
			}
		})
	}
}

func TestCollect(t *testing.T) {
	p := setupTestPageForTemplate(t, `<html><head><title>Refs</title><link href="style.css" rel="stylesheet"></head><body><img src="https://cdn.example.com/pic.png"><a href="#top">top</a></body></html>`, "refs.html")

	inv := newInventory(false)
	page := inv.collect(p, "")

	if len(inv.Pages) != 1 {
		t.Fatalf("collect() recorded %d pages, want 1", len(inv.Pages))
	}
	if page.Title != "Refs" {
		t.Errorf("collect() title = %q, want %q", page.Title, "Refs")
	}

	want := []struct {
		elem string
		attr string
		kind common.RefKind
	}{
		{"link", "href", common.RefKindLocal},
		{"img", "src", common.RefKindExternal},
		{"a", "href", common.RefKindAnchor},
	}
	if len(page.Refs) != len(want) {
		t.Fatalf("collect() refs = %d, want %d", len(page.Refs), len(want))
	}
	for i, w := range want {
		r := page.Refs[i]
		if r.Elem != w.elem || r.Attr != w.attr || r.Kind != w.kind {
			t.Errorf("collect() ref[%d] = %s@%s kind %s, want %s@%s kind %s", i, r.Elem, r.Attr, r.Kind, w.elem, w.attr, w.kind)
		}
	}
}

func TestCollect_WithVerification(t *testing.T) {
	tmpDir := t.TempDir()
	p := setupTestPageForTemplate(t, `<html><head></head><body><img src="missing.png"></body></html>`, "page.html")

	inv := newInventory(true)
	page := inv.collect(p, tmpDir)

	if len(page.Refs) != 1 {
		t.Fatalf("collect() refs = %d, want 1", len(page.Refs))
	}
	if page.Refs[0].Note == "" {
		t.Error("collect() expected verification note for missing target")
	}
}

func TestAddPage(t *testing.T) {
	ctx, _ := setupTestEnv(t)
	logger := zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))

	inv := newInventory(false)
	err := inv.addPage(ctx, strings.NewReader(`<html><head><title>T</title></head><body><img src="pic.png"></body></html>`), "page.html", "", logger)
	if err != nil {
		t.Fatalf("addPage() error = %v", err)
	}
	if len(inv.Pages) != 1 {
		t.Fatalf("addPage() recorded %d pages, want 1", len(inv.Pages))
	}
	if len(inv.Pages[0].Refs) != 1 {
		t.Errorf("addPage() recorded %d refs, want 1", len(inv.Pages[0].Refs))
	}
}

func TestAddPage_Fragment(t *testing.T) {
	ctx, _ := setupTestEnv(t)
	logger := zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))

	inv := newInventory(false)
	err := inv.addPage(ctx, strings.NewReader(`<p>not a page</p>`), "fragment.html", "", logger)
	if err != nil {
		t.Fatalf("addPage() error = %v", err)
	}
	if len(inv.Pages) != 0 {
		t.Errorf("addPage() recorded %d pages for a fragment, want 0", len(inv.Pages))
	}
}

func TestInventoryString_Empty(t *testing.T) {
	inv := newInventory(false)
	if got := inv.String(); got != "no resource references found\n" {
		t.Errorf("String() = %q, want %q", got, "no resource references found\n")
	}
}

func TestInventoryString(t *testing.T) {
	inv := newInventory(false)
	inv.Pages = []PageRefs{
		{ID: "id-10", SrcName: "page10.html", Title: "Ten", Refs: []Ref{
			{Elem: "img", Attr: "src", Value: "a.png", Kind: common.RefKindLocal},
		}},
		{ID: "id-2", SrcName: "page2.html", Title: "Two", Refs: []Ref{
			{Elem: "a", Attr: "href", Value: "#x", Kind: common.RefKindAnchor},
			{Elem: "script", Attr: "src", Value: "https://cdn.example.com/s.js", Kind: common.RefKindExternal},
		}},
	}

	out := inv.String()
	if !strings.Contains(out, "Resource references (2 pages, 3 refs)") {
		t.Errorf("String() missing header, got:\n%s", out)
	}
	if !strings.Contains(out, "local[1] external[1] anchor[1] data[0]") {
		t.Errorf("String() missing totals, got:\n%s", out)
	}
	// natural order sorts page2 before page10
	if strings.Index(out, `Page["page2.html"]`) > strings.Index(out, `Page["page10.html"]`) {
		t.Errorf("String() pages are not in natural order, got:\n%s", out)
	}
}
