package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

const (
	MimePDF  = "application/pdf"
	MimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MimeText = "text/plain"
)

// ExtractTextFromBytes extracts the text layer of an uploaded resume.
// Libraries used: github.com/ledongthuc/pdf (PDF) and github.com/nguyenthenguyen/docx (DOCX).
func ExtractTextFromBytes(ctx context.Context, data []byte, mimeType string, fileName string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	normalized := NormalizeMimeType(mimeType, fileName, data)
	switch normalized {
	case MimePDF:
		text, err := extractPDF(data)
		if err != nil {
			return "", fmt.Errorf("%w: pdf %s: %v", ErrMalformed, fileName, err)
		}
		return text, nil
	case MimeDOCX:
		text, err := extractDOCX(data)
		if err != nil {
			return "", fmt.Errorf("%w: docx %s: %v", ErrMalformed, fileName, err)
		}
		return text, nil
	case MimeText:
		if !utf8.Valid(data) {
			return "", fmt.Errorf("%w: text %s is not valid UTF-8", ErrMalformed, fileName)
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, normalized)
	}
}

// Supported reports whether a file with this MIME type and name would be accepted.
func Supported(mimeType string, fileName string) bool {
	switch NormalizeMimeType(mimeType, fileName, nil) {
	case MimePDF, MimeDOCX, MimeText:
		return true
	}
	return false
}

func extractPDF(data []byte) (text string, err error) {
	// The reader panics on some truncated xref tables.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf reader: %v", r)
		}
	}()

	pdfReader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	plain, err := pdfReader.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func extractDOCX(data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("empty docx data")
	}
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	defer doc.Close()

	return stripDocxXML(doc.Editable().GetContent()), nil
}

// stripDocxXML keeps character data and turns paragraph and line breaks into newlines.
func stripDocxXML(raw string) string {
	decoder := xml.NewDecoder(strings.NewReader(raw))
	var buf strings.Builder
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return raw
		}
		switch t := tok.(type) {
		case xml.CharData:
			buf.WriteString(string(t))
		case xml.StartElement:
			if t.Name.Local == "tab" {
				buf.WriteString("\t")
			}
		case xml.EndElement:
			if t.Name.Local == "p" || t.Name.Local == "br" {
				if buf.Len() > 0 {
					buf.WriteString("\n")
				}
			}
		}
	}
	return strings.TrimSpace(buf.String())
}

// NormalizeMimeType resolves the declared type, falling back to the file extension and content sniffing.
func NormalizeMimeType(mimeType string, fileName string, data []byte) string {
	clean := strings.ToLower(strings.TrimSpace(strings.Split(mimeType, ";")[0]))
	switch clean {
	case MimePDF, MimeDOCX, MimeText:
		return clean
	case "application/zip":
		if mapped := mapOOXMLFromZip(data); mapped != "" {
			return mapped
		}
		if strings.EqualFold(filepath.Ext(fileName), ".docx") {
			return MimeDOCX
		}
		return clean
	case "", "application/octet-stream":
	default:
		return clean
	}

	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".pdf":
		return MimePDF
	case ".docx":
		return MimeDOCX
	case ".txt":
		return MimeText
	}
	if len(data) == 0 {
		return clean
	}
	sniffed := strings.Split(http.DetectContentType(data), ";")[0]
	switch sniffed {
	case MimePDF, MimeText:
		return sniffed
	case "application/zip":
		if mapped := mapOOXMLFromZip(data); mapped != "" {
			return mapped
		}
	}
	return sniffed
}

func mapOOXMLFromZip(data []byte) string {
	if len(data) == 0 {
		return ""
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return ""
	}
	for _, f := range zr.File {
		name := strings.ReplaceAll(f.Name, "\\", "/")
		switch name {
		case "word/document.xml":
			return MimeDOCX
		case "xl/workbook.xml":
			return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		case "ppt/presentation.xml":
			return "application/vnd.openxmlformats-officedocument.presentationml.presentation"
		}
	}
	return ""
}
