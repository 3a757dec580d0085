package extractor

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

// Box is a positioned piece of text: a PDF glyph run or an OCR word.
// Y grows downwards.
type Box struct {
	Text string
	X    float64
	Y    float64
	W    float64
	H    float64
}

func (b Box) centerY() float64 { return b.Y + b.H/2 }

// Line is one visual row of boxes in horizontal order.
type Line struct {
	Y     float64
	Boxes []Box
}

// SegmentRows groups boxes into rows by vertical proximity, then orders each row
// horizontally. tolerance is the largest centre distance still considered the
// same row; zero uses half the median box height.
func SegmentRows(boxes []Box, tolerance float64) []Line {
	if len(boxes) == 0 {
		return nil
	}

	if tolerance <= 0 {
		tolerance = medianHeight(boxes) / 2
		if tolerance <= 0 {
			tolerance = 1
		}
	}

	sorted := make([]Box, len(boxes))
	copy(sorted, boxes)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].centerY() < sorted[j].centerY()
	})

	var lines []Line
	var current []Box
	rowY := sorted[0].centerY()

	flush := func() {
		if len(current) == 0 {
			return
		}
		sort.SliceStable(current, func(i, j int) bool { return current[i].X < current[j].X })
		lines = append(lines, Line{Y: rowY, Boxes: current})
		current = nil
	}

	for _, b := range sorted {
		if strings.TrimSpace(b.Text) == "" {
			continue
		}
		if len(current) > 0 && math.Abs(b.centerY()-rowY) > tolerance {
			flush()
		}
		if len(current) == 0 {
			rowY = b.centerY()
		}
		current = append(current, b)
	}
	flush()

	return lines
}

// Text joins the boxes of a line. Boxes closer than a quarter of their height are
// glued together (glyphs of one word); wider gaps become a single space.
func (l Line) Text() string {
	var b strings.Builder
	for i, box := range l.Boxes {
		if i > 0 {
			prev := l.Boxes[i-1]
			gap := box.X - (prev.X + prev.W)
			if gap > math.Max(prev.H, box.H)*0.25 {
				b.WriteByte(' ')
			}
		}
		b.WriteString(box.Text)
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Columns splits the line wherever the horizontal gap exceeds minGap.
func (l Line) Columns(minGap float64) []string {
	var cols []string
	start := 0
	for i := 1; i <= len(l.Boxes); i++ {
		if i < len(l.Boxes) {
			prev := l.Boxes[i-1]
			if l.Boxes[i].X-(prev.X+prev.W) <= minGap {
				continue
			}
		}
		cols = append(cols, Line{Boxes: l.Boxes[start:i]}.Text())
		start = i
	}
	return cols
}

// RepairRecords re-inserts record boundaries lost when a two-column page is read
// as single lines. Every record ends with a match of end (its amount), so the
// line is broken after each match that is not already at the end of the line.
func RepairRecords(lines []string, end *regexp.Regexp) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		prev := 0
		for _, loc := range end.FindAllStringIndex(line, -1) {
			if strings.TrimSpace(line[loc[1]:]) == "" {
				break
			}
			if part := strings.TrimSpace(line[prev:loc[1]]); part != "" {
				out = append(out, part)
			}
			prev = loc[1]
		}
		if part := strings.TrimSpace(line[prev:]); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func medianHeight(boxes []Box) float64 {
	hs := make([]float64, 0, len(boxes))
	for _, b := range boxes {
		if b.H > 0 {
			hs = append(hs, b.H)
		}
	}
	if len(hs) == 0 {
		return 0
	}
	sort.Float64s(hs)
	return hs[len(hs)/2]
}
