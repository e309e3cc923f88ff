package report

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/logrusorgru/aurora"

	"github.com/lost-woods/randtest/src/battery"
)

var ErrOutputUnavailable = errors.New("output unavailable")

type Format int

const (
	FormatText Format = iota
	FormatJSON
	FormatLaTeX
)

func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "latex":
		return FormatLaTeX, nil
	}
	return 0, fmt.Errorf("unknown report format %q", s)
}

// OpenAppend opens path for appending, creating it if needed.
func OpenAppend(path string) (io.WriteCloser, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOutputUnavailable, err)
	}
	return f, nil
}

// Document is the JSON form of a whole report.
type Document struct {
	Input   string           `json:"input"`
	Length  int              `json:"length"`
	Results []battery.Result `json:"results"`
}

// Writer renders battery results. Text output is written as it arrives; the
// JSON and LaTeX forms are buffered until Flush.
type Writer struct {
	w      io.Writer
	format Format
	color  bool
	doc    Document
}

func New(w io.Writer, format Format, color bool) *Writer {
	return &Writer{w: w, format: format, color: color}
}

func (w *Writer) Banner(name string, length int) error {
	w.doc.Input = name
	w.doc.Length = length
	if w.format != FormatText {
		return nil
	}
	_, err := fmt.Fprintf(w.w, "\n\nRANDTEST ( %s, %d )\n\n", name, length)
	return err
}

func (w *Writer) Result(res battery.Result) error {
	w.doc.Results = append(w.doc.Results, res)
	if w.format != FormatText {
		return nil
	}
	_, err := io.WriteString(w.w, w.Line(res)+"\n")
	return err
}

// Line is the fixed-field text form of one result.
func (w *Writer) Line(res battery.Result) string {
	verdict := fmt.Sprintf("%10s", Label(res.Verdict))
	if w.color {
		verdict = colorize(res.Verdict, verdict)
	}
	line := fmt.Sprintf("%10s:%s ( %.4f, %.4f ) {%.4f} %s",
		res.Name, verdict, res.CriticalLow, res.CriticalHigh, res.Statistic, res.Detail)
	return strings.TrimRight(line, " ")
}

func (w *Writer) Flush() error {
	switch w.format {
	case FormatJSON:
		out, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(w.doc, "", "  ")
		if err != nil {
			return err
		}
		_, err = w.w.Write(append(out, '\n'))
		return err
	case FormatLaTeX:
		_, err := io.WriteString(w.w, LaTeXRow(w.doc.Results)+"\n")
		return err
	}
	return nil
}

// Label is the verdict as printed in text reports.
func Label(v battery.Verdict) string {
	switch v {
	case battery.OK:
		return "OK."
	case battery.Marginal:
		return "MARGINAL."
	case battery.Failed:
		return "FAILED!"
	}
	return v.String()
}

func colorize(v battery.Verdict, s string) string {
	switch v {
	case battery.OK:
		return aurora.Bold(aurora.Green(s)).String()
	case battery.Marginal:
		return aurora.Bold(aurora.Yellow(s)).String()
	case battery.Failed:
		return aurora.Bold(aurora.Red(s)).String()
	}
	return aurora.Bold(aurora.Magenta(s)).String()
}

var latexPrecision = map[string]int{
	battery.NamePoker8:           2,
	battery.NamePoker16:          0,
	battery.NameLinearComplexity: 0,
}

// LaTeXRow joins the statistics as one table row.
func LaTeXRow(results []battery.Result) string {
	cells := make([]string, 0, len(results))
	for _, res := range results {
		prec, ok := latexPrecision[res.Name]
		if !ok {
			prec = 4
		}
		cells = append(cells, fmt.Sprintf("%.*f", prec, res.Statistic))
	}
	return strings.Join(cells, "\t& ") + " \\\\"
}
