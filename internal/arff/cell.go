// Package arff renders extracted entries as an ARFF dataset of nominal attributes.
package arff

import (
	"strconv"
	"strings"
)

type cellKind int

const (
	kindMissing cellKind = iota
	kindText
	kindNumber
)

// Cell is a single value of a data row: missing, a string or an integer.
type Cell struct {
	kind cellKind
	text string
	num  int
}

// Missing is the unknown value, rendered as '?'.
func Missing() Cell {
	return Cell{kind: kindMissing}
}

// Text is a quoted nominal value.
func Text(s string) Cell {
	return Cell{kind: kindText, text: s}
}

// Number is a bare integer value.
func Number(n int) Cell {
	return Cell{kind: kindNumber, num: n}
}

func (c Cell) String() string {
	switch c.kind {
	case kindText:
		return Quote(c.text)
	case kindNumber:
		return strconv.Itoa(c.num)
	default:
		return "?"
	}
}

var quoteEscaper = strings.NewReplacer(`\`, `\\`, "'", `\'`)

// Quote single-quotes s, escaping backslashes and single quotes.
func Quote(s string) string {
	return "'" + quoteEscaper.Replace(s) + "'"
}

// JoinCells renders cells as a comma-separated list.
func JoinCells(cells []Cell) string {
	parts := make([]string, len(cells))
	for i, c := range cells {
		parts[i] = c.String()
	}
	return strings.Join(parts, ",")
}
