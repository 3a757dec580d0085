package extractor

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"

	"github.com/iho/goextrato/internal/domain"
)

type sheetView struct {
	rows [][]string
	err  error
}

// Sheet returns the first worksheet as rows of cell strings. Delimited text is
// read as a sheet too, with the delimiter sniffed from the first line.
func (d *Document) Sheet() ([][]string, error) {
	if d.sheet != nil {
		return d.sheet.rows, d.sheet.err
	}

	var rows [][]string
	var err error
	switch d.Kind() {
	case KindZIP:
		rows, err = readWorkbook(d.Content, "")
	case KindOLE:
		if d.Encrypted() {
			if err = d.unlockWorkbook(); err == nil {
				return d.sheet.rows, d.sheet.err
			}
		} else {
			rows, err = readLegacyWorkbook(d.Content)
		}
	case KindText:
		rows, err = readDelimited(d.Text())
	default:
		err = fmt.Errorf("%s is not a spreadsheet", d.Kind())
	}

	d.sheet = &sheetView{rows: rows, err: err}
	return rows, err
}

func (d *Document) unlockWorkbook() error {
	if d.sheet != nil && d.sheet.err == nil {
		return nil
	}

	if d.Password == "" {
		return domain.ErrPasswordRequired
	}

	rows, err := readWorkbook(d.Content, d.Password)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrWrongPassword, err)
	}

	d.sheet = &sheetView{rows: rows}
	return nil
}

func readWorkbook(content []byte, password string) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content), excelize.Options{Password: password})
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, errors.New("workbook has no sheets")
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return rows, nil
}

func readLegacyWorkbook(content []byte) ([][]string, error) {
	wb, err := xls.OpenReader(bytes.NewReader(content), "utf-8")
	if err != nil {
		return nil, fmt.Errorf("open xls workbook: %w", err)
	}

	sheet := wb.GetSheet(0)
	if sheet == nil {
		return nil, errors.New("xls workbook has no sheets")
	}

	rows := make([][]string, 0, int(sheet.MaxRow)+1)
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		if row == nil {
			rows = append(rows, nil)
			continue
		}
		cells := make([]string, 0, row.LastCol())
		for c := 0; c < row.LastCol(); c++ {
			cells = append(cells, row.Col(c))
		}
		rows = append(rows, cells)
	}
	return rows, nil
}

func readDelimited(text string) ([][]string, error) {
	r := csv.NewReader(strings.NewReader(text))
	r.Comma = sniffDelimiter(text)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true

	var rows [][]string
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return rows, fmt.Errorf("read delimited text: %w", err)
		}
		rows = append(rows, rec)
	}
	return rows, nil
}

func sniffDelimiter(text string) rune {
	first := text
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		first = text[:i]
	}

	best, bestCount := ',', 0
	for _, c := range []rune{';', ',', '\t', '|'} {
		if n := strings.Count(first, string(c)); n > bestCount {
			best, bestCount = c, n
		}
	}
	return best
}

// cell returns row[i] trimmed, or "" when the row is short.
func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// findColumns locates a header row whose folded cells contain every wanted
// keyword, searching the first limit rows. It returns the header row index and
// the column of each keyword.
func findColumns(rows [][]string, limit int, wanted ...string) (int, map[string]int, bool) {
	if limit > len(rows) {
		limit = len(rows)
	}

	for r := 0; r < limit; r++ {
		cols := make(map[string]int, len(wanted))
		for c, v := range rows[r] {
			f := fold(strings.TrimSpace(v))
			for _, w := range wanted {
				if _, done := cols[w]; !done && strings.HasPrefix(f, w) {
					cols[w] = c
				}
			}
		}
		if len(cols) == len(wanted) {
			return r, cols, true
		}
	}
	return -1, nil, false
}
