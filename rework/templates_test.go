package rework

import (
	"strings"
	"testing"

	"htmlfix/config"
	"htmlfix/dom"
)

func setupTestPageForTemplate(t *testing.T, html, srcName string) *Page {
	t.Helper()
	if html == "" {
		html = `<html lang="en"><head><title>Test Page</title></head><body></body></html>`
	}
	if srcName == "" {
		srcName = "testpage.html"
	}
	root, err := dom.ParseString(html)
	if err != nil {
		t.Fatalf("parse page: %v", err)
	}
	if root == nil {
		t.Fatal("parse page: no top level html element")
	}
	return &Page{
		SrcName: srcName,
		ID:      "0198f3a2-0000-7000-8000-000000000001",
		Root:    root,
	}
}

func TestExpandTemplate_SimpleText(t *testing.T) {
	p := setupTestPageForTemplate(t, "", "")

	result, err := expandTemplate(p, config.OutputNameTemplateFieldName, "simple-text")
	if err != nil {
		t.Fatalf("expandTemplate() error = %v", err)
	}
	if result != "simple-text" {
		t.Errorf("expandTemplate() = %q, want %q", result, "simple-text")
	}
}

func TestExpandTemplate_Title(t *testing.T) {
	p := setupTestPageForTemplate(t, `<html><head><title>My Great Page</title></head><body></body></html>`, "")

	result, err := expandTemplate(p, config.OutputNameTemplateFieldName, "{{ .Title }}")
	if err != nil {
		t.Fatalf("expandTemplate() error = %v", err)
	}
	if result != "My Great Page" {
		t.Errorf("expandTemplate() = %q, want %q", result, "My Great Page")
	}
}

func TestExpandTemplate_Language(t *testing.T) {
	p := setupTestPageForTemplate(t, `<html lang="ru"><head></head><body></body></html>`, "")

	result, err := expandTemplate(p, config.OutputNameTemplateFieldName, "{{ .Lang }}")
	if err != nil {
		t.Fatalf("expandTemplate() error = %v", err)
	}
	if result != "ru" {
		t.Errorf("expandTemplate() = %q, want %q", result, "ru")
	}
}

func TestExpandTemplate_SourceFile(t *testing.T) {
	p := setupTestPageForTemplate(t, "", "path/to/mypage.html")

	result, err := expandTemplate(p, config.OutputNameTemplateFieldName, "{{ .SourceFile }}")
	if err != nil {
		t.Fatalf("expandTemplate() error = %v", err)
	}
	if result != "mypage" {
		t.Errorf("expandTemplate() = %q, want %q", result, "mypage")
	}
}

func TestExpandTemplate_PageID(t *testing.T) {
	p := setupTestPageForTemplate(t, "", "")
	p.ID = "unique-page-id-123"

	result, err := expandTemplate(p, config.OutputNameTemplateFieldName, "{{ .PageID }}")
	if err != nil {
		t.Fatalf("expandTemplate() error = %v", err)
	}
	if result != "unique-page-id-123" {
		t.Errorf("expandTemplate() = %q, want %q", result, "unique-page-id-123")
	}
}

func TestExpandTemplate_Context(t *testing.T) {
	p := setupTestPageForTemplate(t, "", "")

	result, err := expandTemplate(p, config.TitleTemplateFieldName, "{{ .Context }}")
	if err != nil {
		t.Fatalf("expandTemplate() error = %v", err)
	}
	if result != string(config.TitleTemplateFieldName) {
		t.Errorf("expandTemplate() = %q, want %q", result, string(config.TitleTemplateFieldName))
	}
}

func TestExpandTemplate_ComplexTemplate(t *testing.T) {
	p := setupTestPageForTemplate(t, `<html lang="en"><head><title>The Great Page</title></head><body></body></html>`, "source.html")

	template := "{{ .Lang }}/{{ .SourceFile }} - {{ .Title }}"
	result, err := expandTemplate(p, config.OutputNameTemplateFieldName, template)
	if err != nil {
		t.Fatalf("expandTemplate() error = %v", err)
	}

	expected := "en/source - The Great Page"
	if result != expected {
		t.Errorf("expandTemplate() = %q, want %q", result, expected)
	}
}

func TestExpandTemplate_SprigFunctions(t *testing.T) {
	p := setupTestPageForTemplate(t, `<html><head><title>test page</title></head><body></body></html>`, "")

	result, err := expandTemplate(p, config.OutputNameTemplateFieldName, "{{ .Title | title }}")
	if err != nil {
		t.Fatalf("expandTemplate() error = %v", err)
	}
	if result != "Test Page" {
		t.Errorf("expandTemplate() = %q, want %q", result, "Test Page")
	}
}

func TestExpandTemplate_InvalidTemplate(t *testing.T) {
	p := setupTestPageForTemplate(t, "", "")

	_, err := expandTemplate(p, config.OutputNameTemplateFieldName, "{{ .Title")
	if err == nil {
		t.Error("expandTemplate() expected error for invalid template, got nil")
	}
}

func TestExpandTemplate_InvalidField(t *testing.T) {
	p := setupTestPageForTemplate(t, "", "")

	_, err := expandTemplate(p, config.OutputNameTemplateFieldName, "{{ .NonExistentField }}")
	if err == nil {
		t.Error("expandTemplate() expected error for invalid field, got nil")
	}
}

func TestExpandTemplate_PathSeparators(t *testing.T) {
	p := setupTestPageForTemplate(t, `<html lang="de"><head><title>Page</title></head><body></body></html>`, "")

	result, err := expandTemplate(p, config.OutputNameTemplateFieldName, "{{ .Lang }}/{{ .Title }}")
	if err != nil {
		t.Fatalf("expandTemplate() error = %v", err)
	}

	// Should contain forward slash for path separation
	if !strings.Contains(result, "/") {
		t.Errorf("expandTemplate() = %q, want to contain /", result)
	}
}
