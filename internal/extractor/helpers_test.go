package extractor_test

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"github.com/iho/goextrato/internal/extractor"
)

var fixedNow = time.Date(2024, 4, 15, 12, 0, 0, 0, time.UTC)

func newRegistry(opts extractor.Options) *extractor.Registry {
	r := extractor.NewDefaultRegistry(zerolog.Nop(), opts)
	r.SetClock(func() time.Time { return fixedNow })
	return r
}

// workbook builds an xlsx in memory; a non-empty password encrypts it.
func workbook(t *testing.T, rows [][]interface{}, password string) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		r := row
		if err := f.SetSheetRow("Sheet1", fmt.Sprintf("A%d", i+1), &r); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}

	var buf bytes.Buffer
	var err error
	if password != "" {
		err = f.Write(&buf, excelize.Options{Password: password})
	} else {
		err = f.Write(&buf)
	}
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf.Bytes()
}

// blankPDF builds a one-page PDF without a text layer, as a scanner produces.
func blankPDF() []byte {
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents 4 0 R /Resources << >> >>",
		"<< /Length 3 >>\nstream\nq Q\nendstream",
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)

	return buf.Bytes()
}

type stubOCR struct {
	pages []extractor.OCRPage
	err   error
	calls int
}

func (s *stubOCR) Recognize(context.Context, []byte, string) ([]extractor.OCRPage, error) {
	s.calls++
	return s.pages, s.err
}

// words lays out one row of words left to right at height y.
func words(y float64, texts ...string) []extractor.Box {
	out := make([]extractor.Box, 0, len(texts))
	x := 10.0
	for _, t := range texts {
		w := float64(len(t)) * 6
		out = append(out, extractor.Box{Text: t, X: x, Y: y, W: w, H: 10})
		x += w + 8
	}
	return out
}
