package recommend

import (
	"archive/zip"
	"bytes"
	"testing"
	"time"

	"career-recommender/internal/model/modeltest"
	"career-recommender/internal/report"
)

var fixedNow = time.Date(2026, time.October, 19, 15, 4, 0, 0, time.UTC)

func newTestService() *Service {
	return &Service{
		Artifacts: modeltest.Artifacts(),
		Catalog:   DefaultCatalog(),
		Renderer:  &report.Renderer{Now: func() time.Time { return fixedNow }},
		Now:       func() time.Time { return fixedNow },
	}
}

func buildDocx(t *testing.T, paragraphs ...string) []byte {
	t.Helper()
	var body bytes.Buffer
	body.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
	body.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)
	for _, p := range paragraphs {
		body.WriteString(`<w:p><w:r><w:t>` + p + `</w:t></w:r></w:p>`)
	}
	body.WriteString(`</w:body></w:document>`)

	files := map[string]string{
		"[Content_Types].xml":          `<?xml version="1.0"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"/>`,
		"word/document.xml":            body.String(),
		"word/_rels/document.xml.rels": `<?xml version="1.0"?><Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"/>`,
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("create zip entry: %v", err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("write zip entry: %v", err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

type failingRenderer struct{ err error }

func (f failingRenderer) Render(report.Summary) ([]byte, error) { return nil, f.err }

type capturingRenderer struct{ got *report.Summary }

func (c capturingRenderer) Render(s report.Summary) ([]byte, error) {
	*c.got = s
	return []byte("%PDF-"), nil
}
