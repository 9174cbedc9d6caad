package rework

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

const samplePage = `<!DOCTYPE html>
<html lang="en">
<head><title>Sample</title></head>
<body><p>Content</p></body>
</html>`

// collectSrcs builds a pageFunc recording the source name of every page it
// was fed.
func collectSrcs(srcs *[]string) pageFunc {
	return func(_ context.Context, r io.Reader, src, _ string, _ *zap.Logger) error {
		if _, err := io.ReadAll(r); err != nil {
			return err
		}
		*srcs = append(*srcs, src)
		return nil
	}
}

func TestWalkPages_SingleFile(t *testing.T) {
	ctx, _ := setupTestEnv(t)
	logger := zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))

	path := writeTestFile(t, "page.html", []byte(samplePage))

	var srcs []string
	if err := walkPages(ctx, path, collectSrcs(&srcs), logger); err != nil {
		t.Fatalf("walkPages() error = %v", err)
	}
	if len(srcs) != 1 || srcs[0] != "page.html" {
		t.Errorf("walkPages() visited %v, want [page.html]", srcs)
	}
}

func TestWalkPages_NonExistentPath(t *testing.T) {
	ctx, _ := setupTestEnv(t)
	logger := zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))

	var srcs []string
	err := walkPages(ctx, "/nonexistent/path/page.html", collectSrcs(&srcs), logger)
	if err == nil {
		t.Fatal("Expected error for non-existent path, got nil")
	}
	expectedMsg := "input source was not found"
	if !strings.Contains(err.Error(), expectedMsg) {
		t.Errorf("Expected error containing '%s', got: %v", expectedMsg, err)
	}
}

func TestWalkPages_CancelledContext(t *testing.T) {
	ctx, _ := setupTestEnv(t)
	cancelCtx, cancel := context.WithCancel(ctx)
	logger := zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))
	cancel()

	var srcs []string
	err := walkPages(cancelCtx, t.TempDir(), collectSrcs(&srcs), logger)
	if err != context.Canceled {
		t.Errorf("Expected context.Canceled error, got %v", err)
	}
}

func TestWalkPages_NotAPage(t *testing.T) {
	ctx, _ := setupTestEnv(t)
	logger := zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))

	path := writeTestFile(t, "notes.txt", []byte("not html at all"))

	var srcs []string
	err := walkPages(ctx, path, collectSrcs(&srcs), logger)
	if err == nil {
		t.Fatal("Expected error for non-page file, got nil")
	}
	expectedMsg := "input was not recognized as HTML page"
	if !strings.Contains(err.Error(), expectedMsg) {
		t.Errorf("Expected error containing '%s', got: %v", expectedMsg, err)
	}
}

func TestWalkPages_DirectoryWithTail(t *testing.T) {
	ctx, _ := setupTestEnv(t)
	logger := zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))

	tmpDir := t.TempDir()
	pathWithTail := filepath.Join(tmpDir, "nonexistent.html")

	var srcs []string
	err := walkPages(ctx, pathWithTail, collectSrcs(&srcs), logger)
	if err == nil {
		t.Fatal("Expected error for directory with tail, got nil")
	}
}

func TestWalkPages_Directory(t *testing.T) {
	ctx, _ := setupTestEnv(t)
	logger := zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))

	tmpDir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(tmpDir, "sub"), 0755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}
	files := map[string]string{
		"page.html": samplePage,
		"notes.txt": "not a page",
	}
	files[filepath.Join("sub", "other.html")] = samplePage
	files[filepath.Join("sub", "fake.html")] = "also not a page"
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(tmpDir, name), []byte(content), 0644); err != nil {
			t.Fatalf("Failed to create test file: %v", err)
		}
	}

	var srcs []string
	if err := walkPages(ctx, tmpDir, collectSrcs(&srcs), logger); err != nil {
		t.Fatalf("walkPages() error = %v", err)
	}

	want := []string{"page.html", filepath.Join("sub", "other.html")}
	slices.Sort(srcs)
	if !slices.Equal(srcs, want) {
		t.Errorf("walkPages() visited %v, want %v", srcs, want)
	}
}

func TestWalkPages_EmptyDirectory(t *testing.T) {
	ctx, _ := setupTestEnv(t)
	logger := zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))

	var srcs []string
	if err := walkPages(ctx, t.TempDir(), collectSrcs(&srcs), logger); err != nil {
		t.Errorf("walkPages() should handle empty directory, got error: %v", err)
	}
	if len(srcs) != 0 {
		t.Errorf("walkPages() visited %v in an empty directory", srcs)
	}
}

func TestWalkPages_Archive(t *testing.T) {
	ctx, _ := setupTestEnv(t)
	logger := zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))

	zipPath := writeTestArchive(t, map[string][]byte{
		"page.html": []byte(samplePage),
		"skip.txt":  []byte("not a page"),
	})

	var srcs []string
	if err := walkPages(ctx, zipPath, collectSrcs(&srcs), logger); err != nil {
		t.Fatalf("walkPages() error = %v", err)
	}
	if len(srcs) != 1 || srcs[0] != "page.html" {
		t.Errorf("walkPages() visited %v, want [page.html]", srcs)
	}
}

func TestWalkPages_ArchiveWithPath(t *testing.T) {
	ctx, _ := setupTestEnv(t)
	logger := zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))

	zipPath := writeTestArchive(t, map[string][]byte{
		"subdir/page.html": []byte(samplePage),
		"other/page.html":  []byte(samplePage),
	})

	pathInArchive := zipPath + string(filepath.Separator) + "subdir"
	var srcs []string
	if err := walkPages(ctx, pathInArchive, collectSrcs(&srcs), logger); err != nil {
		t.Fatalf("walkPages() error = %v", err)
	}
	if len(srcs) != 1 || srcs[0] != filepath.Join("subdir", "page.html") {
		t.Errorf("walkPages() visited %v, want [%s]", srcs, filepath.Join("subdir", "page.html"))
	}
}

func TestWalkPages_ArchiveInDirectory(t *testing.T) {
	ctx, _ := setupTestEnv(t)
	logger := zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))

	zipPath := writeTestArchive(t, map[string][]byte{
		"inside.html": []byte(samplePage),
	})
	tmpDir := t.TempDir()
	data, err := os.ReadFile(zipPath)
	if err != nil {
		t.Fatalf("read archive fixture: %v", err)
	}
	if err := os.WriteFile(filepath.Join(tmpDir, "books.zip"), data, 0644); err != nil {
		t.Fatalf("Failed to create test archive: %v", err)
	}

	var srcs []string
	if err := walkPages(ctx, tmpDir, collectSrcs(&srcs), logger); err != nil {
		t.Fatalf("walkPages() error = %v", err)
	}
	// page names coming out of an archive at the directory root must stay
	// relative
	if len(srcs) != 1 || srcs[0] != "inside.html" {
		t.Errorf("walkPages() visited %v, want [inside.html]", srcs)
	}
}
