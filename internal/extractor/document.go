package extractor

import (
	"bytes"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/iho/goextrato/internal/domain"
)

// Kind is the container format of a document, detected from magic bytes.
type Kind string

const (
	KindPDF  Kind = "pdf"
	KindOLE  Kind = "ole" // legacy xls or encrypted xlsx
	KindZIP  Kind = "zip" // xlsx
	KindText Kind = "text"
)

var (
	pdfMagic = []byte("%PDF")
	oleMagic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
	zipMagic = []byte("PK\x03\x04")
	utf8BOM  = []byte{0xEF, 0xBB, 0xBF}

	// "EncryptionInfo" as UTF-16LE, the stream name of an encrypted OOXML package.
	encryptionInfoStream = []byte("E\x00n\x00c\x00r\x00y\x00p\x00t\x00i\x00o\x00n\x00I\x00n\x00f\x00o\x00")
)

// Document is one uploaded source file. Decoded views are computed lazily and
// memoized; a Document is not safe for concurrent use.
type Document struct {
	Name     string
	Content  []byte
	Password string

	text     *string
	sheet    *sheetView
	pdf      *pdfView
	unlocked bool
}

// NewDocument wraps file content.
func NewDocument(name string, content []byte, password string) *Document {
	return &Document{Name: name, Content: content, Password: password}
}

// Kind detects the container format.
func (d *Document) Kind() Kind {
	switch {
	case bytes.HasPrefix(d.Content, pdfMagic):
		return KindPDF
	case bytes.HasPrefix(d.Content, oleMagic):
		return KindOLE
	case bytes.HasPrefix(d.Content, zipMagic):
		return KindZIP
	default:
		return KindText
	}
}

// Ext returns the lower-case file extension without the dot.
func (d *Document) Ext() string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(d.Name)), ".")
}

// Encrypted reports whether the container declares encryption.
func (d *Document) Encrypted() bool {
	switch d.Kind() {
	case KindOLE:
		return bytes.Contains(d.Content, encryptionInfoStream)
	case KindPDF:
		return bytes.Contains(d.Content, []byte("/Encrypt"))
	default:
		return false
	}
}

// Unlock checks that a protected document can be opened with its password.
// It returns ErrPasswordRequired or ErrWrongPassword; unprotected documents pass.
func (d *Document) Unlock() error {
	if d.unlocked || !d.Encrypted() {
		d.unlocked = true
		return nil
	}

	var err error
	switch d.Kind() {
	case KindOLE:
		err = d.unlockWorkbook()
	case KindPDF:
		_, err = d.openPDF()
	}
	if err != nil {
		return err
	}

	d.unlocked = true
	return nil
}

// Text returns the document as text. Delimited files are decoded as UTF-8 when
// valid, Windows-1252 otherwise; PDFs yield their extracted lines.
func (d *Document) Text() string {
	if d.text != nil {
		return *d.text
	}

	var s string
	switch d.Kind() {
	case KindText:
		s = decodeText(d.Content)
	case KindPDF:
		if lines, err := d.PDFLines(); err == nil {
			texts := make([]string, 0, len(lines))
			for _, l := range lines {
				texts = append(texts, l.Text())
			}
			s = strings.Join(texts, "\n")
		}
	}

	d.text = &s
	return s
}

// Lines returns the non-empty lines of Text, trimmed.
func (d *Document) Lines() []string {
	raw := strings.Split(d.Text(), "\n")
	out := make([]string, 0, len(raw))
	for _, l := range raw {
		if l = strings.TrimSpace(strings.TrimRight(l, "\r")); l != "" {
			out = append(out, l)
		}
	}
	return out
}

// Folded returns Text lower-cased with accents removed, for fingerprinting.
func (d *Document) Folded() string {
	return fold(d.Text())
}

func decodeText(content []byte) string {
	content = bytes.TrimPrefix(content, utf8BOM)
	if utf8.Valid(content) {
		return string(content)
	}

	decoded, err := charmap.Windows1252.NewDecoder().Bytes(content)
	if err != nil {
		return string(content)
	}
	return string(decoded)
}

func fold(s string) string {
	return strings.ToLower(domain.FoldAccents(s))
}
