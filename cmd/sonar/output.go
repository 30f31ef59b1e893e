package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"sonar/internal/analysis"
)

// row is one "label  value  note" line of a result table.
type row struct {
	label string
	value string
	note  string
}

// numbers prints integers with digit grouping (1,234,567).
var numbers = message.NewPrinter(language.English)

func grouped[T ~int | ~int64 | ~uint64](v T) string {
	return numbers.Sprintf("%d", v)
}

// groupedProduct groups the digits of a product that may not fit in 64 bits.
func groupedProduct(p analysis.Product) string {
	if v, ok := p.Uint64(); ok {
		return grouped(v)
	}
	digits := p.String()
	var sb strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			sb.WriteByte(',')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// renderRows writes rows with labels and values padded to a common width.
// Labels are bold and notes faint when colorize is set.
func renderRows(out io.Writer, rows []row, colorize bool) error {
	labelW, valueW := 0, 0
	for _, r := range rows {
		labelW = max(labelW, runewidth.StringWidth(r.label))
		valueW = max(valueW, runewidth.StringWidth(r.value))
	}

	label := color.New(color.Bold)
	note := color.New(color.Faint)
	if colorize {
		label.EnableColor()
		note.EnableColor()
	} else {
		label.DisableColor()
		note.DisableColor()
	}

	for _, r := range rows {
		var sb strings.Builder
		sb.WriteString(label.Sprint(runewidth.FillRight(r.label, labelW)))
		sb.WriteString("  ")
		if r.note == "" {
			sb.WriteString(r.value)
		} else {
			sb.WriteString(runewidth.FillRight(r.value, valueW))
			sb.WriteString("  ")
			sb.WriteString(note.Sprint(r.note))
		}
		if _, err := fmt.Fprintln(out, strings.TrimRight(sb.String(), " ")); err != nil {
			return err
		}
	}
	return nil
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// readFormat validates the --format flag against the allowed values.
func readFormat(value string, allowed ...string) (string, error) {
	f := strings.ToLower(strings.TrimSpace(value))
	for _, a := range allowed {
		if f == a {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown format %q (expected %s)", value, strings.Join(allowed, "|"))
}
