// Package pdftest builds minimal classic-xref PDF fixtures for tests.
// Fixtures are generated byte-for-byte deterministically and independently of
// any PDF library, so library behavior under test is never self-referential.
package pdftest

import (
	"bytes"
	"fmt"
)

// MultiPagePDF returns a structurally valid PDF 1.4 document with n pages.
// Each page is US Letter sized and carries a one-line content stream so that
// watermarking and page copying operate on non-degenerate pages.
func MultiPagePDF(n int) []byte {
	if n < 1 {
		panic("pdftest: page count must be >= 1")
	}

	// Object numbering: 1 catalog, 2 page tree, 3..n+2 pages,
	// n+3..2n+2 content streams, 2n+3 shared font.
	fontObj := 2*n + 3
	size := fontObj + 1 // xref entries including the free object 0

	var b bytes.Buffer
	offsets := make([]int, size)

	b.WriteString("%PDF-1.4\n")

	writeObj := func(num int, body string) {
		offsets[num] = b.Len()
		fmt.Fprintf(&b, "%d 0 obj\n%s\nendobj\n", num, body)
	}

	var kids bytes.Buffer
	for i := 0; i < n; i++ {
		if i > 0 {
			kids.WriteByte(' ')
		}
		fmt.Fprintf(&kids, "%d 0 R", 3+i)
	}

	writeObj(1, "<< /Type /Catalog /Pages 2 0 R >>")
	writeObj(2, fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", kids.String(), n))

	for i := 0; i < n; i++ {
		writeObj(3+i, fmt.Sprintf(
			"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 %d 0 R >> >> /Contents %d 0 R >>",
			fontObj, n+3+i,
		))
	}

	for i := 0; i < n; i++ {
		content := fmt.Sprintf("BT /F1 24 Tf 72 720 Td (Page %d) Tj ET", i+1)
		offsets[n+3+i] = b.Len()
		fmt.Fprintf(&b, "%d 0 obj\n<< /Length %d >>\nstream\n%s\nendstream\nendobj\n",
			n+3+i, len(content), content)
	}

	writeObj(fontObj, "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>")

	xrefOffset := b.Len()
	fmt.Fprintf(&b, "xref\n0 %d\n", size)
	b.WriteString("0000000000 65535 f \n")
	for i := 1; i < size; i++ {
		fmt.Fprintf(&b, "%010d 00000 n \n", offsets[i])
	}
	fmt.Fprintf(&b, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", size, xrefOffset)

	return b.Bytes()
}
