package printer

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	esc = 0x1B
	gs  = 0x1D
	lf  = 0x0A
)

type Align byte

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

type FontSize byte

const (
	FontNormal FontSize = 0x00
	FontTall   FontSize = 0x01
	FontWide   FontSize = 0x10
	FontDouble FontSize = 0x11
)

// Paper widths in characters.
const (
	Width58mm = 32
	Width80mm = 48
)

// Document builds an ESC/POS byte stream. Column math counts runes, so
// accented names line up.
type Document struct {
	buf   bytes.Buffer
	width int
}

// NewDocument starts a document for the given character width; a
// non-positive width means 58mm paper.
func NewDocument(width int) *Document {
	if width <= 0 {
		width = Width58mm
	}
	d := &Document{width: width}
	d.buf.Write([]byte{esc, '@'})
	return d
}

func (d *Document) Width() int {
	return d.width
}

func (d *Document) Feed(n int) *Document {
	for range n {
		d.buf.WriteByte(lf)
	}
	return d
}

func (d *Document) Align(a Align) *Document {
	d.buf.Write([]byte{esc, 'a', byte(a)})
	return d
}

func (d *Document) Bold(on bool) *Document {
	var b byte
	if on {
		b = 1
	}
	d.buf.Write([]byte{esc, 'E', b})
	return d
}

func (d *Document) Size(s FontSize) *Document {
	d.buf.Write([]byte{gs, '!', byte(s)})
	return d
}

func (d *Document) Text(s string) *Document {
	d.buf.WriteString(s)
	d.buf.WriteByte(lf)
	return d
}

func (d *Document) Textf(format string, args ...any) *Document {
	return d.Text(fmt.Sprintf(format, args...))
}

// Separator fills one line with char.
func (d *Document) Separator(char rune) *Document {
	return d.Text(strings.Repeat(string(char), d.width))
}

// Columns prints left and right on one line, right-aligned to the paper
// width. left is truncated when both do not fit.
func (d *Document) Columns(left, right string) *Document {
	room := d.width - utf8.RuneCountInString(right) - 1
	if room < 1 {
		room = 1
	}
	left = truncate(left, room)
	pad := d.width - utf8.RuneCountInString(left) - utf8.RuneCountInString(right)
	if pad < 1 {
		pad = 1
	}
	return d.Text(left + strings.Repeat(" ", pad) + right)
}

// Item prints "2x Name" with an optional right-aligned amount.
func (d *Document) Item(qty int, name, amount string) *Document {
	left := fmt.Sprintf("%dx %s", qty, name)
	if amount == "" {
		return d.Text(truncate(left, d.width))
	}
	return d.Columns(left, amount)
}

func (d *Document) Cut() *Document {
	d.buf.Write([]byte{gs, 'V', 0x00})
	return d
}

func (d *Document) PartialCut() *Document {
	d.buf.Write([]byte{gs, 'V', 0x01})
	return d
}

func (d *Document) Bytes() []byte {
	return d.buf.Bytes()
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n])
}
