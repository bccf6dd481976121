package arff

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/verte-zerg/sensearff/internal/model"
)

// Attribute is a nominal attribute declaration.
type Attribute struct {
	Name   string
	Values []Cell
}

// Header describes the relation and its attributes.
type Header struct {
	Relation   string
	Attributes []Attribute
}

// Writer emits an ARFF document. Errors are sticky: after the first failed
// write every call returns the same error.
type Writer struct {
	w   *bufio.Writer
	err error
}

// NewWriter wraps w in a buffered ARFF writer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

func (w *Writer) printf(format string, args ...any) error {
	if w.err != nil {
		return w.err
	}
	_, w.err = fmt.Fprintf(w.w, format, args...)
	return w.err
}

// WriteHeader writes the relation, the attribute declarations and the data
// section marker.
func (w *Writer) WriteHeader(h Header) error {
	if err := w.printf("@relation %s\n\n", h.Relation); err != nil {
		return err
	}
	for _, attr := range h.Attributes {
		if err := w.printf("@attribute %s {%s}\n", attr.Name, JoinCells(attr.Values)); err != nil {
			return err
		}
	}
	return w.printf("\n@data\n")
}

// WriteRow writes one data row.
func (w *Writer) WriteRow(cells []Cell) error {
	return w.printf("%s\n", JoinCells(cells))
}

// Flush flushes buffered output.
func (w *Writer) Flush() error {
	if w.err != nil {
		return w.err
	}
	w.err = w.w.Flush()
	return w.err
}

// BuildHeader declares the meaning attribute followed by a word and a
// category attribute per context slot.
func BuildHeader(relation string, senses []int, domains Domains) Header {
	attrs := make([]Attribute, 0, 1+2*len(domains.Words))
	meaning := make([]Cell, len(senses))
	for i, s := range senses {
		meaning[i] = Number(s)
	}
	attrs = append(attrs, Attribute{Name: "meaning", Values: meaning})
	for i := range domains.Words {
		idx := strconv.Itoa(i)
		attrs = append(attrs,
			Attribute{Name: "word" + idx, Values: textCells(domains.Words[i])},
			Attribute{Name: "cat" + idx, Values: textCells(domains.Cats[i])},
		)
	}
	return Header{Relation: relation, Attributes: attrs}
}

// Row lays out an entry as [meaning, word0, cat0, word1, cat1, ...].
func Row(entry model.Entry) []Cell {
	cells := make([]Cell, 0, 1+2*len(entry.Slots))
	if entry.HasMeaning {
		cells = append(cells, Number(entry.Meaning))
	} else {
		cells = append(cells, Missing())
	}
	for _, slot := range entry.Slots {
		if !slot.Present {
			cells = append(cells, Missing(), Missing())
			continue
		}
		cells = append(cells, Text(slot.Word.Text), Text(slot.Word.Cat))
	}
	return cells
}

// Write renders the complete dataset for entries.
func Write(out io.Writer, cfg model.Config, entries []model.Entry) error {
	domains := BuildDomains(entries, cfg.Window)
	relation := cfg.Relation
	if strings.TrimSpace(relation) == "" {
		relation = model.DefaultRelation
	}
	w := NewWriter(out)
	if err := w.WriteHeader(BuildHeader(relation, SenseDomain(cfg, entries), domains)); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, entry := range entries {
		if err := w.WriteRow(Row(entry)); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}
	return nil
}

func textCells(values []string) []Cell {
	cells := make([]Cell, len(values))
	for i, v := range values {
		cells[i] = Text(v)
	}
	return cells
}
