// Package label builds printable label documents for delivery routes.
//
// Labels are assembled as structured documents (positioned text, rules and barcodes)
// and rendered to ZPL only when the bytes are needed, so the content can be inspected
// independently of the printer command language.
package label

import (
	"bytes"
	"fmt"
	"strings"
	"unicode"
)

// Element is one positioned item on a label.
type Element interface {
	writeZPL(buf *bytes.Buffer)
}

// Text is a line of text printed with the scalable font.
type Text struct {
	X, Y   int
	Height int
	Value  string
}

// Rule is a horizontal line.
type Rule struct {
	X, Y      int
	Width     int
	Thickness int
}

// Barcode is a Code 39 barcode with its human readable interpretation line.
type Barcode struct {
	X, Y   int
	Height int
	Value  string
}

// Document is one label, sent to the printer as a single transmission.
type Document struct {
	Elements []Element
}

// Lines returns the text and barcode values of the document in order.
func (d Document) Lines() []string {
	lines := make([]string, 0, len(d.Elements))
	for _, el := range d.Elements {
		switch e := el.(type) {
		case Text:
			lines = append(lines, e.Value)
		case Barcode:
			lines = append(lines, e.Value)
		}
	}

	return lines
}

// Bytes renders the document as a ZPL label format.
func (d Document) Bytes() []byte {
	var buf bytes.Buffer
	if len(d.Elements) == 0 {
		buf.WriteString("^XA^XZ")
		return buf.Bytes()
	}

	buf.WriteString("^XA\n")
	for _, el := range d.Elements {
		el.writeZPL(&buf)
	}
	buf.WriteString("^XZ\n")

	return buf.Bytes()
}

func (t Text) writeZPL(buf *bytes.Buffer) {
	fmt.Fprintf(buf, "^FO%d,%d^A0N,%d,%d^FH^FD%s^FS\n", t.X, t.Y, t.Height, t.Height, escapeField(t.Value))
}

func (r Rule) writeZPL(buf *bytes.Buffer) {
	fmt.Fprintf(buf, "^FO%d,%d^GB%d,%d,%d^FS\n", r.X, r.Y, r.Width, r.Thickness, r.Thickness)
}

func (b Barcode) writeZPL(buf *bytes.Buffer) {
	fmt.Fprintf(buf, "^FO%d,%d^B3N,N,%d,Y,N^FH^FD%s^FS\n", b.X, b.Y, b.Height, escapeField(code39(b.Value)))
}

// code39 upper-cases value and replaces characters Code 39 cannot encode with '-'.
func code39(value string) string {
	return strings.Map(func(r rune) rune {
		r = unicode.ToUpper(r)
		switch {
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case strings.ContainsRune(" -.$/+%", r):
			return r
		default:
			return '-'
		}
	}, value)
}

// fieldEscaper hex-encodes the characters that ZPL treats as command prefixes
// (and the ^FH escape character itself) inside field data.
var fieldEscaper = strings.NewReplacer(
	"_", "_5F",
	"^", "_5E",
	"~", "_7E",
	"\r", " ",
	"\n", " ",
)

func escapeField(value string) string {
	return fieldEscaper.Replace(value)
}
