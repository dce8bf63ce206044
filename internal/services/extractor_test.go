package services

import (
	"archive/zip"
	"bytes"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildDocx(t *testing.T, documentXML string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(documentXML))
	require.NoError(t, err)

	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestExtract_PlainText(t *testing.T) {
	e := NewTextExtractor()

	text := e.Extract("resume.txt", []byte("  Experienced Go developer.\n"))
	assert.Equal(t, "Experienced Go developer.", text)
}

func TestExtract_UnknownExtensionTreatedAsPlainText(t *testing.T) {
	e := NewTextExtractor()

	text := e.Extract("resume.md", []byte("# Skills\nGo, SQL"))
	assert.Equal(t, "# Skills\nGo, SQL", text)
}

func TestExtract_InvalidUTF8Replaced(t *testing.T) {
	e := NewTextExtractor()

	data := []byte{'G', 'o', ' ', 0xff, 0xfe, 'd', 'e', 'v'}
	text := e.Extract("resume.txt", data)

	assert.Contains(t, text, "Go")
	assert.Contains(t, text, "dev")
	assert.Contains(t, text, "�")
}

func TestExtract_CorruptPDFYieldsEmpty(t *testing.T) {
	e := NewTextExtractor()

	text := e.Extract("resume.pdf", []byte("this is not a pdf"))
	assert.Equal(t, "", text)
}

// buildPDF assembles a structurally valid PDF (correct xref offsets and
// trailer) from the given body objects, numbered from 1.
func buildPDF(t *testing.T, objects ...string) []byte {
	t.Helper()

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xrefStart := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\n", len(objects)+1)
	fmt.Fprintf(&buf, "startxref\n%d\n%%%%EOF\n", xrefStart)

	return buf.Bytes()
}

func TestExtractPDF_CyclicPageTreeReturnsInTime(t *testing.T) {
	// A page tree node listing itself as a kid sends the parser in circles.
	data := buildPDF(t,
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [2 0 R] /Count 1 >>",
	)

	type parseResult struct {
		text string
		err  error
	}

	done := make(chan parseResult, 1)
	go func() {
		text, err := extractPDFWithin(data, 200*time.Millisecond)
		done <- parseResult{text: text, err: err}
	}()

	select {
	case res := <-done:
		require.Error(t, res.err)
		assert.ErrorIs(t, res.err, errPDFTimeout)
		assert.Equal(t, "", res.text)
	case <-time.After(5 * time.Second):
		t.Fatal("PDF parsing did not honor its deadline")
	}
}

func TestExtractPDF_ValidFileUnaffectedByDeadline(t *testing.T) {
	// Well-formed but empty page tree; must parse well within the bound.
	data := buildPDF(t,
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [] /Count 0 >>",
	)

	text, err := extractPDFWithin(data, 5*time.Second)
	require.NoError(t, err)
	assert.Equal(t, "", text)
}

func TestExtract_Docx(t *testing.T) {
	e := NewTextExtractor()

	docXML := `<?xml version="1.0"?><w:document><w:body>` +
		`<w:p><w:r><w:t>Senior Backend Engineer</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t>Go and PostgreSQL</w:t></w:r></w:p>` +
		`</w:body></w:document>`

	text := e.Extract("resume.docx", buildDocx(t, docXML))

	assert.Contains(t, text, "Senior Backend Engineer")
	assert.Contains(t, text, "Go and PostgreSQL")
}

func TestExtract_CorruptDocxYieldsEmpty(t *testing.T) {
	e := NewTextExtractor()

	text := e.Extract("resume.docx", []byte("not a zip archive"))
	assert.Equal(t, "", text)
}

func TestExtract_DocxWithoutDocumentXMLYieldsEmpty(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/styles.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte("<styles/>"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	e := NewTextExtractor()
	assert.Equal(t, "", e.Extract("resume.docx", buf.Bytes()))
}

func TestCleanText(t *testing.T) {
	in := "  line one  \n\n\n   line two\n\n"
	assert.Equal(t, "line one\nline two", CleanText(in))
}
