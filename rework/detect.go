// Package rework implements the page processing pipeline: it finds HTML
// pages in files, directories and zip archives, applies configured
// structural edits to them and writes the results out. The tree operations
// themselves live in the dom package, rework only drives them.
package rework

import (
	"archive/zip"
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
	"github.com/h2non/filetype/matchers"
)

// sniffLen is how much of a file content detection is allowed to look at.
const sniffLen = 512

var htmlType = filetype.NewType("html", "text/html")

func init() {
	filetype.AddMatcher(htmlType, htmlMatcher)
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

var htmlPrefixes = [][]byte{
	[]byte("<!doctype html"),
	[]byte("<html"),
	[]byte("<head"),
	[]byte("<body"),
	[]byte("<!--"),
}

// htmlMatcher recognizes page content: optional BOM and whitespace followed
// by a doctype declaration, a comment or an opening html-ish tag. It is a
// content matcher for the filetype registry, not an encoding detector.
func htmlMatcher(buf []byte) bool {
	t := bytes.TrimPrefix(buf, utf8BOM)
	t = bytes.TrimLeft(t, " \t\r\n")
	for _, p := range htmlPrefixes {
		if len(t) >= len(p) && bytes.EqualFold(t[:len(p)], p) {
			return true
		}
	}
	return false
}

func sniff(r io.Reader) ([]byte, error) {
	buf := make([]byte, sniffLen)
	n, err := io.ReadFull(r, buf)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, err
	}
	return buf[:n], nil
}

// isArchiveFile reports whether path looks like a zip archive, checking both
// the extension and the content.
func isArchiveFile(path string) (bool, error) {
	if ext := strings.ToLower(filepath.Ext(path)); ext != ".zip" {
		return false, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	buf, err := sniff(f)
	if err != nil {
		return false, err
	}
	return filetype.IsType(buf, matchers.TypeZip), nil
}

// isPageFile reports whether path looks like an HTML page, checking both the
// extension and the content.
func isPageFile(path string) (bool, error) {
	if !hasPageExt(path) {
		return false, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	buf, err := sniff(f)
	if err != nil {
		return false, err
	}
	return filetype.IsType(buf, htmlType), nil
}

// isPageInArchive reports whether the archive entry looks like an HTML page.
func isPageInArchive(f *zip.File) (bool, error) {
	if !hasPageExt(f.FileHeader.Name) {
		return false, nil
	}
	r, err := f.Open()
	if err != nil {
		return false, err
	}
	defer r.Close()

	buf, err := sniff(r)
	if err != nil {
		return false, err
	}
	return filetype.IsType(buf, htmlType), nil
}

func hasPageExt(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm", ".xhtml":
		return true
	}
	return false
}
