// Copyright 2026 The Bigo Authors
// SPDX-License-Identifier: MIT

package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// DefaultBoxWidth is the inner width of a Box in terminal cells.
const DefaultBoxWidth = 60

type boxRow struct {
	text   string
	rule   bool
	center bool
}

// Box renders text inside a double-line frame:
//
//	╔════╗
//	║ ab ║
//	╠════╣
//	╚════╝
//
// Rows longer than the inner width are written as is and overflow the frame.
type Box struct {
	width int
	rows  []boxRow
}

// NewBox creates a box with the given inner width. A width below 1 uses
// DefaultBoxWidth.
func NewBox(width int) *Box {
	if width < 1 {
		width = DefaultBoxWidth
	}
	return &Box{width: width}
}

// Title adds a centered row.
func (b *Box) Title(text string) {
	b.rows = append(b.rows, boxRow{text: text, center: true})
}

// Line adds a left-justified row.
func (b *Box) Line(text string) {
	b.rows = append(b.rows, boxRow{text: text})
}

// Paragraph adds text word-wrapped to fit the frame, each row prefixed by
// prefix.
func (b *Box) Paragraph(prefix, text string) {
	for _, l := range Wrap(text, b.width-runewidth.StringWidth(prefix)-1) {
		b.Line(prefix + l)
	}
}

// Rule adds a horizontal divider.
func (b *Box) Rule() {
	b.rows = append(b.rows, boxRow{rule: true})
}

// Render writes the framed box to w.
func (b *Box) Render(w io.Writer) error {
	bar := strings.Repeat("═", b.width)
	lines := make([]string, 0, len(b.rows)+2)
	lines = append(lines, "╔"+bar+"╗")
	for _, r := range b.rows {
		switch {
		case r.rule:
			lines = append(lines, "╠"+bar+"╣")
		case r.center:
			lines = append(lines, "║"+center(r.text, b.width)+"║")
		default:
			lines = append(lines, "║"+runewidth.FillRight(r.text, b.width)+"║")
		}
	}
	lines = append(lines, "╚"+bar+"╝")

	if _, err := fmt.Fprintln(w, strings.Join(lines, "\n")); err != nil {
		return fmt.Errorf("render box: %w", err)
	}
	return nil
}

func center(text string, width int) string {
	n := width - runewidth.StringWidth(text)
	if n <= 0 {
		return text
	}
	left := n / 2
	return strings.Repeat(" ", left) + text + strings.Repeat(" ", n-left)
}

// Wrap splits text on whitespace into lines of at most width cells. A word
// wider than width gets a line of its own. Empty text yields a single empty
// line.
func Wrap(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}

	var (
		lines []string
		cur   strings.Builder
		n     int
	)
	for _, word := range words {
		ww := runewidth.StringWidth(word)
		if n > 0 && n+1+ww > width {
			lines = append(lines, cur.String())
			cur.Reset()
			n = 0
		}
		if n > 0 {
			cur.WriteByte(' ')
			n++
		}
		cur.WriteString(word)
		n += ww
	}
	return append(lines, cur.String())
}
