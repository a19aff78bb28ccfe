package extract

import (
	"archive/zip"
	"bytes"
	"errors"
	"testing"

	"docchat/internal/domain"
)

func TestExtractTXT(t *testing.T) {
	e := New()
	text, err := e.Extract([]byte("plain utf-8 text\nsecond line"), "notes.txt")
	if err != nil {
		t.Fatal(err)
	}
	if text != "plain utf-8 text\nsecond line" {
		t.Errorf("unexpected text: %q", text)
	}
}

func TestExtractTXTInvalidUTF8(t *testing.T) {
	e := New()
	text, err := e.Extract([]byte{0xff, 0xfe, 0xfd}, "broken.txt")
	if !errors.Is(err, domain.ErrParseFailure) {
		t.Fatalf("expected ErrParseFailure, got %v", err)
	}
	if text != "" {
		t.Errorf("parse failures must not return partial text, got %q", text)
	}
}

func TestExtractUnsupportedType(t *testing.T) {
	e := New()
	_, err := e.Extract([]byte("data"), "image.png")
	if !errors.Is(err, domain.ErrUnsupportedFileType) {
		t.Fatalf("expected ErrUnsupportedFileType, got %v", err)
	}
}

func TestExtractExtensionCaseInsensitive(t *testing.T) {
	e := New()
	if _, err := e.Extract([]byte("ok"), "NOTES.TXT"); err != nil {
		t.Fatalf("uppercase extension should be accepted: %v", err)
	}
}

func TestExtractDOCX(t *testing.T) {
	docXML := `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>First paragraph.</w:t></w:r></w:p>
    <w:p><w:r><w:t>Second </w:t></w:r><w:r><w:t>paragraph.</w:t></w:r></w:p>
  </w:body>
</w:document>`

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	f, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.Write([]byte(docXML)); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}

	e := New()
	text, err := e.Extract(buf.Bytes(), "report.docx")
	if err != nil {
		t.Fatal(err)
	}

	want := "First paragraph.\nSecond paragraph.\n"
	if text != want {
		t.Errorf("got %q, want %q", text, want)
	}
}

func TestExtractDOCXCorrupt(t *testing.T) {
	e := New()
	text, err := e.Extract([]byte("not a zip archive"), "report.docx")
	if !errors.Is(err, domain.ErrParseFailure) {
		t.Fatalf("expected ErrParseFailure, got %v", err)
	}
	if text != "" {
		t.Errorf("expected no partial text, got %q", text)
	}
}

func TestExtractDOCXMissingDocumentXML(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	f, _ := zw.Create("word/other.xml")
	f.Write([]byte("<x/>"))
	zw.Close()

	e := New()
	if _, err := e.Extract(buf.Bytes(), "report.docx"); !errors.Is(err, domain.ErrParseFailure) {
		t.Fatalf("expected ErrParseFailure, got %v", err)
	}
}

func TestExtractPDFCorrupt(t *testing.T) {
	e := New()
	text, err := e.Extract([]byte("definitely not a pdf"), "paper.pdf")
	if !errors.Is(err, domain.ErrParseFailure) {
		t.Fatalf("expected ErrParseFailure, got %v", err)
	}
	if text != "" {
		t.Errorf("expected no partial text, got %q", text)
	}
}
