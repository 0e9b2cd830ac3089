// Copyright 2026 The Bigo Authors
// SPDX-License-Identifier: MIT

package model

import "strings"

// ComplexityClass is a standard Big-O growth class. It is used for
// presentation only; model output is never rejected for not matching one.
type ComplexityClass string

// Known complexity classes, ordered from best to worst.
const (
	Constant     ComplexityClass = "O(1)"
	Logarithmic  ComplexityClass = "O(log n)"
	Linear       ComplexityClass = "O(n)"
	Linearithmic ComplexityClass = "O(n log n)"
	Quadratic    ComplexityClass = "O(n²)"
	Cubic        ComplexityClass = "O(n³)"
	Polynomial   ComplexityClass = "O(n^k)"
	Exponential  ComplexityClass = "O(2^n)"
	Factorial    ComplexityClass = "O(n!)"
	Unknown      ComplexityClass = "Unknown"
)

var classOrder = []ComplexityClass{
	Constant, Logarithmic, Linear, Linearithmic, Quadratic,
	Cubic, Polynomial, Exponential, Factorial,
}

var classAliases = map[string]ComplexityClass{
	"O(1)":         Constant,
	"CONSTANT":     Constant,
	"O(LOGN)":      Logarithmic,
	"O(LOG(N))":    Logarithmic,
	"LOGARITHMIC":  Logarithmic,
	"O(N)":         Linear,
	"LINEAR":       Linear,
	"O(NLOGN)":     Linearithmic,
	"O(NLOG(N))":   Linearithmic,
	"LINEARITHMIC": Linearithmic,
	"O(N^2)":       Quadratic,
	"O(N²)":        Quadratic,
	"QUADRATIC":    Quadratic,
	"O(N^3)":       Cubic,
	"O(N³)":        Cubic,
	"CUBIC":        Cubic,
	"O(N^K)":       Polynomial,
	"POLYNOMIAL":   Polynomial,
	"O(2^N)":       Exponential,
	"EXPONENTIAL":  Exponential,
	"O(N!)":        Factorial,
	"FACTORIAL":    Factorial,
}

// ParseComplexityClass maps a free-form complexity string onto a known class.
// Whitespace and case are ignored; unrecognized input yields Unknown.
func ParseComplexityClass(s string) ComplexityClass {
	normalized := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), " ", ""))
	normalized = strings.ReplaceAll(normalized, "*", "")
	if c, ok := classAliases[normalized]; ok {
		return c
	}
	return Unknown
}

// Rank returns the position of c in the best-to-worst ordering, or -1 for
// Unknown.
func (c ComplexityClass) Rank() int {
	for i, known := range classOrder {
		if known == c {
			return i
		}
	}
	return -1
}
