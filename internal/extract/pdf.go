package extract

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PDFSource extracts plain text from digital PDFs. It reads at most the
// first maxPages pages; statements carry their transaction table up front
// and later pages only add prompt noise.
//
// Scanned/image-only PDFs yield little or no text here. That case is not
// handled by OCR; the caller rejects it via its minimum-length threshold.
type PDFSource struct{}

// NewPDFSource returns a ready PDF text source.
func NewPDFSource() *PDFSource {
	return &PDFSource{}
}

// Extract returns the text of the first maxPages pages joined with blank
// lines. maxPages <= 0 means all pages.
func (s *PDFSource) Extract(path string, maxPages int) (text string, err error) {
	// The pdf library panics on some malformed files; turn that into an error.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("extract %s: pdf library crashed: %v", path, r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("extract %s: %w", path, err)
	}
	defer f.Close()

	numPages := r.NumPage()
	if numPages == 0 {
		return "", fmt.Errorf("extract %s: pdf has no pages", path)
	}
	if maxPages > 0 && numPages > maxPages {
		numPages = maxPages
	}

	var pages []string
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		if t := pageText(page); t != "" {
			pages = append(pages, t)
		}
	}

	return strings.Join(pages, "\n\n"), nil
}

// pageText reconstructs a page line by line. GetTextByRow preserves the
// row structure of statement tables better than plain text extraction.
func pageText(page pdf.Page) string {
	rows, err := page.GetTextByRow()
	if err != nil {
		return ""
	}

	var lines []string
	for _, row := range rows {
		var parts []string
		for _, word := range row.Content {
			parts = append(parts, word.S)
		}
		line := strings.TrimSpace(strings.Join(parts, " "))
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}
