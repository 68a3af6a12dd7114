package loader_test

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"pdfassist/internal/domain"
	"pdfassist/internal/loader"
)

// writeSamplePDF builds a minimal two-page PDF with uncompressed
// content streams, computing xref offsets while writing.
func writeSamplePDF(t *testing.T, dir string) string {
	t.Helper()
	var buf bytes.Buffer
	var offsets []int
	addObj := func(body string) {
		offsets = append(offsets, buf.Len())
		buf.WriteString(body)
	}
	streams := []string{
		"BT /F1 12 Tf 72 720 Td (Turbine blade inspection schedule) Tj ET",
		"BT /F1 12 Tf 72 720 Td (Cooling circuit maintenance) Tj ET",
	}
	buf.WriteString("%PDF-1.4\n")
	addObj("1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")
	addObj("2 0 obj\n<< /Type /Pages /Kids [3 0 R 5 0 R] /Count 2 >>\nendobj\n")
	addObj("3 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 7 0 R >> >> /Contents 4 0 R >>\nendobj\n")
	addObj(fmt.Sprintf("4 0 obj\n<< /Length %d >>\nstream\n%s\nendstream\nendobj\n", len(streams[0]), streams[0]))
	addObj("5 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 7 0 R >> >> /Contents 6 0 R >>\nendobj\n")
	addObj(fmt.Sprintf("6 0 obj\n<< /Length %d >>\nstream\n%s\nendstream\nendobj\n", len(streams[1]), streams[1]))
	addObj("7 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>\nendobj\n")
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(offsets)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(offsets)+1, xref)

	path := filepath.Join(dir, "sample.pdf")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func TestLoadPagesInOrder(t *testing.T) {
	path := writeSamplePDF(t, t.TempDir())

	pages, err := loader.Load(path)
	require.NoError(t, err)
	require.Len(t, pages, 2)
	require.Equal(t, 0, pages[0].Index)
	require.Equal(t, 1, pages[1].Index)
	require.Equal(t, "sample.pdf", pages[0].SourceName)
	require.Contains(t, pages[0].Text, "Turbine")
	require.Contains(t, pages[1].Text, "Cooling")
	require.True(t, filepath.IsAbs(pages[0].SourcePath))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := loader.Load(filepath.Join(t.TempDir(), "nope.pdf"))
	require.ErrorIs(t, err, domain.ErrParseDocument)
}

func TestLoadRejectsNonPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.pdf")
	require.NoError(t, os.WriteFile(path, []byte("plain text, not a pdf"), 0o644))

	_, err := loader.Load(path)
	require.ErrorIs(t, err, domain.ErrParseDocument)
}

func TestLoadRejectsTruncatedPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cut.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4\n1 0 obj\n<<"), 0o644))

	_, err := loader.Load(path)
	require.ErrorIs(t, err, domain.ErrParseDocument)
}
