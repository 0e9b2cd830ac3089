// Copyright 2026 The Bigo Authors
// SPDX-License-Identifier: MIT

package report

import (
	"strings"

	"github.com/fatih/color"

	"github.com/davetashner/bigo/internal/model"
)

// Shared color printers.
var (
	colorRed    = color.New(color.FgRed)
	colorYellow = color.New(color.FgYellow)
	colorGreen  = color.New(color.FgGreen)
	colorCyan   = color.New(color.FgCyan, color.Bold)
	colorBold   = color.New(color.Bold)
	colorFaint  = color.New(color.Faint)
)

// ColorComplexity colors a complexity string by its growth class:
// constant and logarithmic are green, linear and linearithmic yellow, anything
// worse red. Unrecognized classes are returned unchanged.
func ColorComplexity(val string) string {
	rank := model.ParseComplexityClass(val).Rank()
	switch {
	case rank < 0:
		return val
	case rank <= 1:
		return colorGreen.Sprint(val)
	case rank <= 3:
		return colorYellow.Sprint(val)
	default:
		return colorRed.Sprint(val)
	}
}

// ColorConfidence colors a confidence score in [0, 1] rendered as text.
func ColorConfidence(score float64, text string) string {
	switch {
	case score >= 0.8:
		return colorGreen.Sprint(text)
	case score >= 0.5:
		return colorYellow.Sprint(text)
	default:
		return colorRed.Sprint(text)
	}
}

// ColorWinner highlights a comparison verdict.
func ColorWinner(val string) string {
	switch strings.ToUpper(val) {
	case "A", "B":
		return colorGreen.Sprint(val)
	case "TIE":
		return colorYellow.Sprint(val)
	default:
		return val
	}
}

// ColorError renders an error label in red.
func ColorError(val string) string {
	return colorRed.Sprint(val)
}

// Label renders a bold cyan field label.
func Label(val string) string {
	return colorCyan.Sprint(val)
}

// Faint renders secondary text dimmed.
func Faint(val string) string {
	return colorFaint.Sprint(val)
}

// SectionTitle renders a bold section title.
func SectionTitle(title string) string {
	return colorBold.Sprint(title)
}
