package services

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

// TextExtractor turns an uploaded document into plain UTF-8 text. Extraction
// never fails from the caller's point of view: a corrupt or unreadable file
// yields an empty string, and the caller decides whether that is an error.
type TextExtractor interface {
	Extract(filename string, data []byte) string
}

type textExtractor struct{}

func NewTextExtractor() TextExtractor {
	return &textExtractor{}
}

var xmlTagPattern = regexp.MustCompile(`<[^>]+>`)

// Extract implements TextExtractor. The filename is used only to pick the
// parser by extension; anything that is not .pdf or .docx is treated as
// plain text.
func (e *textExtractor) Extract(filename string, data []byte) string {
	ext := strings.ToLower(filepath.Ext(filename))

	var text string
	var err error

	switch ext {
	case ".pdf":
		text, err = extractPDF(data)
	case ".docx":
		text, err = extractDocx(data)
	default:
		text = decodePlainText(data)
	}

	if err != nil {
		log.Printf("⚠️  Extraction failed for %s: %v\n", filename, err)
		return ""
	}

	return strings.TrimSpace(text)
}

// pdfParseTimeout bounds the page walk. A hostile file can contain a cyclic
// page tree that the parser follows forever.
const pdfParseTimeout = 10 * time.Second

var errPDFTimeout = errors.New("PDF parsing timed out")

func extractPDF(data []byte) (string, error) {
	return extractPDFWithin(data, pdfParseTimeout)
}

// extractPDFWithin runs the parse in its own goroutine so a malformed file
// cannot pin the request. On timeout the parse goroutine is abandoned; the
// caller gets an error either way.
func extractPDFWithin(data []byte, timeout time.Duration) (string, error) {
	type parseResult struct {
		text string
		err  error
	}

	done := make(chan parseResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- parseResult{err: fmt.Errorf("panic while parsing PDF: %v", r)}
			}
		}()
		text, err := parsePDF(data)
		done <- parseResult{text: text, err: err}
	}()

	select {
	case res := <-done:
		return res.text, res.err
	case <-time.After(timeout):
		return "", fmt.Errorf("%w after %s", errPDFTimeout, timeout)
	}
}

func parsePDF(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}

	var textBuilder strings.Builder
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// A scanned or broken page contributes nothing; keep going.
			continue
		}

		textBuilder.WriteString(text)
		textBuilder.WriteString("\n\n")
	}

	return textBuilder.String(), nil
}

func extractDocx(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open DOCX: %w", err)
	}

	var docXML []byte
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			rc, err := f.Open()
			if err != nil {
				return "", fmt.Errorf("failed to open document.xml: %w", err)
			}
			docXML, err = io.ReadAll(rc)
			rc.Close()
			if err != nil {
				return "", fmt.Errorf("failed to read document.xml: %w", err)
			}
			break
		}
	}

	if len(docXML) == 0 {
		return "", fmt.Errorf("no document.xml found in docx")
	}

	// Paragraph closings become newlines, then every remaining tag is
	// stripped so only the run text survives.
	text := string(docXML)
	text = strings.ReplaceAll(text, "</w:p>", "\n")
	text = strings.ReplaceAll(text, "<w:tab/>", "\t")
	text = xmlTagPattern.ReplaceAllString(text, " ")

	return text, nil
}

func decodePlainText(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}
	return strings.ToValidUTF8(string(data), "�")
}

// CleanText collapses blank lines and trims each remaining line. Used to
// tidy extracted text before it is stored or embedded.
func CleanText(text string) string {
	text = strings.TrimSpace(text)

	lines := strings.Split(text, "\n")
	var cleanedLines []string

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleanedLines = append(cleanedLines, line)
		}
	}

	return strings.Join(cleanedLines, "\n")
}
