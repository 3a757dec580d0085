package extractor

import (
	"bytes"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"

	"github.com/iho/goextrato/internal/domain"
)

type pdfView struct {
	lines []Line
	err   error
}

// openPDF opens the document, translating password failures into domain errors.
func (d *Document) openPDF() (*pdf.Reader, error) {
	tried := false
	password := func() string {
		if tried {
			return ""
		}
		tried = true
		return d.Password
	}

	r, err := pdf.NewReaderEncrypted(bytes.NewReader(d.Content), int64(len(d.Content)), password)
	if errors.Is(err, pdf.ErrInvalidPassword) {
		if d.Password == "" {
			return nil, domain.ErrPasswordRequired
		}
		return nil, domain.ErrWrongPassword
	}
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	return r, nil
}

// PDFLines returns the text rows of every page in reading order. Pages without a
// text layer (scanned documents) contribute nothing.
func (d *Document) PDFLines() ([]Line, error) {
	if d.pdf != nil {
		return d.pdf.lines, d.pdf.err
	}

	lines, err := d.readPDFLines()
	d.pdf = &pdfView{lines: lines, err: err}
	return lines, err
}

// HasTextLayer reports whether the PDF carries extractable text.
func (d *Document) HasTextLayer() bool {
	lines, err := d.PDFLines()
	return err == nil && len(lines) > 0
}

func (d *Document) readPDFLines() ([]Line, error) {
	if d.Kind() != KindPDF {
		return nil, errors.New("document is not a pdf")
	}

	r, err := d.openPDF()
	if err != nil {
		return nil, err
	}

	var out []Line
	offset := 0.0
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}

		boxes, height := pageBoxes(page.Content().Text)
		for _, l := range SegmentRows(boxes, 0) {
			l.Y += offset
			out = append(out, l)
		}
		offset += height
	}
	return out, nil
}

// pageBoxes converts glyph runs to top-down boxes. PDF user space grows upwards,
// so Y is flipped against the highest glyph on the page.
func pageBoxes(texts []pdf.Text) ([]Box, float64) {
	top := 0.0
	for _, t := range texts {
		if t.Y+t.FontSize > top {
			top = t.Y + t.FontSize
		}
	}

	boxes := make([]Box, 0, len(texts))
	for _, t := range texts {
		w := t.W
		if w <= 0 {
			w = t.FontSize * 0.5 * float64(utf8.RuneCountInString(t.S))
		}
		boxes = append(boxes, Box{
			Text: t.S,
			X:    t.X,
			Y:    top - t.Y - t.FontSize,
			W:    w,
			H:    t.FontSize,
		})
	}
	return boxes, top
}
