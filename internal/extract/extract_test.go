package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/go-pdf/fpdf"
)

const documentXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
	`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
	`<w:p><w:r><w:t>Jane Doe</w:t></w:r></w:p>` +
	`<w:p><w:r><w:t>Skills: Python, SQL</w:t></w:r><w:r><w:br/><w:t>Interests: data analysis</w:t></w:r></w:p>` +
	`</w:body></w:document>`

const documentRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`

func buildDocx(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, body := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("create zip entry: %v", err)
		}
		if _, err := w.Write([]byte(body)); err != nil {
			t.Fatalf("write zip entry: %v", err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func resumeDocx(t *testing.T) []byte {
	return buildDocx(t, map[string]string{
		"[Content_Types].xml":          `<?xml version="1.0"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"/>`,
		"word/document.xml":            documentXML,
		"word/_rels/document.xml.rels": documentRels,
	})
}

func TestExtractTextFromBytes_Docx(t *testing.T) {
	text, err := ExtractTextFromBytes(context.Background(), resumeDocx(t), MimeDOCX, "resume.docx")
	if err != nil {
		t.Fatalf("extract docx: %v", err)
	}
	want := "Jane Doe\nSkills: Python, SQL\nInterests: data analysis"
	if text != want {
		t.Fatalf("unexpected text:\n%q\nwant\n%q", text, want)
	}
}

func TestExtractTextFromBytes_ZipDocxNormalizes(t *testing.T) {
	if _, err := ExtractTextFromBytes(context.Background(), resumeDocx(t), "application/zip", "test.docx"); err != nil {
		t.Fatalf("expected docx to extract from zip mime, got error: %v", err)
	}
}

func TestExtractTextFromBytes_RealZipRejected(t *testing.T) {
	data := buildDocx(t, map[string]string{"notes.txt": "hello"})

	_, err := ExtractTextFromBytes(context.Background(), data, "application/zip", "notes.zip")
	if !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("expected unsupported type, got %v", err)
	}
	if !strings.Contains(err.Error(), "application/zip") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestExtractTextFromBytes_MalformedDocx(t *testing.T) {
	_, err := ExtractTextFromBytes(context.Background(), []byte("not a zip"), MimeDOCX, "resume.docx")
	if !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected malformed error, got %v", err)
	}

	missingBody := buildDocx(t, map[string]string{"word/styles.xml": "<w:styles/>"})
	_, err = ExtractTextFromBytes(context.Background(), missingBody, MimeDOCX, "resume.docx")
	if !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected malformed error for missing document.xml, got %v", err)
	}
}

func TestExtractTextFromBytes_PDF(t *testing.T) {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.AddPage()
	doc.SetFont("Arial", "", 12)
	doc.Cell(40, 10, "Python SQL Excel")
	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		t.Fatalf("write pdf: %v", err)
	}

	text, err := ExtractTextFromBytes(context.Background(), buf.Bytes(), "", "resume.pdf")
	if err != nil {
		t.Fatalf("extract pdf: %v", err)
	}
	if !strings.Contains(text, "Python SQL Excel") {
		t.Fatalf("unexpected pdf text: %q", text)
	}
}

func TestExtractTextFromBytes_MalformedPDF(t *testing.T) {
	_, err := ExtractTextFromBytes(context.Background(), []byte("%PDF-1.4\ntruncated"), MimePDF, "resume.pdf")
	if !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected malformed error, got %v", err)
	}
}

func TestExtractTextFromBytes_PlainText(t *testing.T) {
	text, err := ExtractTextFromBytes(context.Background(), []byte("Go, Kubernetes"), "text/plain; charset=utf-8", "resume.txt")
	if err != nil {
		t.Fatalf("extract text: %v", err)
	}
	if text != "Go, Kubernetes" {
		t.Fatalf("unexpected text: %q", text)
	}

	_, err = ExtractTextFromBytes(context.Background(), []byte{0xff, 0xfe, 0x00}, MimeText, "resume.txt")
	if !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected malformed error for invalid utf-8, got %v", err)
	}
}

func TestExtractTextFromBytes_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := ExtractTextFromBytes(ctx, []byte("x"), MimeText, "a.txt"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context canceled, got %v", err)
	}
}

func TestNormalizeMimeType(t *testing.T) {
	cases := []struct {
		mime, name string
		data       []byte
		want       string
	}{
		{"application/pdf", "x", nil, MimePDF},
		{"", "cv.PDF", nil, MimePDF},
		{"application/octet-stream", "cv.docx", nil, MimeDOCX},
		{"", "cv.txt", nil, MimeText},
		{"", "cv", []byte("%PDF-1.7\n"), MimePDF},
		{"", "cv", []byte("plain words"), MimeText},
		{"image/png", "cv.pdf", nil, "image/png"},
	}
	for _, tc := range cases {
		if got := NormalizeMimeType(tc.mime, tc.name, tc.data); got != tc.want {
			t.Fatalf("NormalizeMimeType(%q, %q) = %q, want %q", tc.mime, tc.name, got, tc.want)
		}
	}
}

func TestSupported(t *testing.T) {
	if !Supported("", "resume.docx") || !Supported(MimePDF, "") {
		t.Fatal("expected docx and pdf to be supported")
	}
	if Supported("image/png", "photo.png") {
		t.Fatal("expected png to be unsupported")
	}
}
