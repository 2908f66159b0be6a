package batch

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/mitchellh/hashstructure"
)

var (
	columns = [4]string{"#", "Input", "Output", "Status"}

	// extra space after the widest cell of each column
	padding = [4]int{2, 4, 4, 2}
)

func (r *Report) cells() [][4]string {
	rows := make([][4]string, 0, len(r.Lines))
	for _, l := range r.Lines {
		rows = append(rows, [4]string{strconv.Itoa(l.Number), l.Input, l.Output, l.Status()})
	}
	return rows
}

// WriteText writes r as a fixed width plain text table, preceded by the
// batch settings. Column widths come from the cell text only, so a
// header wider than its column is not cut.
func WriteText(w io.Writer, r *Report) error {
	rows := r.cells()
	var width [4]int
	for i := range width {
		for _, row := range rows {
			if n := utf8.RuneCountInString(row[i]); n > width[i] {
				width[i] = n
			}
		}
		width[i] += padding[i]
	}

	var b strings.Builder
	b.WriteString("Batch Conversion Results\n")
	fmt.Fprintf(&b, "Mode: %s\n", r.Mode.Title())
	fmt.Fprintf(&b, "FPS: %s\n", r.FPS.Label())
	fmt.Fprintf(&b, "Reel: %d\n", r.Reel)
	b.WriteString("\n")
	writeRow(&b, columns, width)
	for _, row := range rows {
		writeRow(&b, row, width)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeRow(b *strings.Builder, row [4]string, width [4]int) {
	for i, cell := range row {
		if i > 0 {
			b.WriteByte('\t')
		}
		b.WriteString(cell)
		if n := width[i] - utf8.RuneCountInString(cell); n > 0 {
			b.WriteString(strings.Repeat(" ", n))
		}
	}
	b.WriteByte('\n')
}

// WriteTSV writes r as tab separated values, the format spreadsheets
// accept from the clipboard.
func WriteTSV(w io.Writer, r *Report) error {
	var b strings.Builder
	b.WriteString(strings.Join(columns[:], "\t"))
	b.WriteByte('\n')
	for _, row := range r.cells() {
		b.WriteString(strings.Join(row[:], "\t"))
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// Filename is the download name of a text export made at t
func Filename(t time.Time) string {
	return t.Format("batch-conversion_2006-01-02_15-04.txt")
}

// Fingerprint hashes the content of r. Reports that would export the
// same text have the same fingerprint.
func Fingerprint(r *Report) (string, error) {
	h, err := hashstructure.Hash(r, nil)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%016x", h), nil
}
