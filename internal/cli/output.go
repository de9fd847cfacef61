package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

var (
	styleBrand  = color.New(color.FgHiMagenta, color.Bold)
	styleSubtle = color.New(color.FgHiBlack)
	styleWarn   = color.New(color.FgYellow)
	styleGood   = color.New(color.FgGreen)
	styleBad    = color.New(color.FgRed)
	styleValue  = color.New(color.FgCyan)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconArrow   = "→"
)

func printSuccess(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleGood.Sprint(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

func printWarning(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleWarn.Sprint(iconWarning)+" "+styleWarn.Sprintf(format, args...))
}

func printError(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleBad.Sprint(iconError)+" "+fmt.Sprintf(format, args...))
}

// printFile prints an output path line.
func printFile(w io.Writer, path string) {
	fmt.Fprintln(w, "  "+styleSubtle.Sprint(iconArrow)+" "+path)
}

// printKeyValue prints a labeled value with the label padded to width.
func printKeyValue(w io.Writer, width int, key, value string) {
	fmt.Fprintf(w, "  %s %s\n", styleSubtle.Sprintf("%-*s", width, key), styleValue.Sprint(value))
}

// printTable prints rows under headers with aligned columns.
func printTable(w io.Writer, headers []string, rows [][]string) {
	if len(rows) == 0 {
		return
	}
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	header, sep := "  ", "  "
	for i, h := range headers {
		header += fmt.Sprintf("%-*s  ", widths[i], h)
		sep += strings.Repeat("─", widths[i]) + "  "
	}
	styleSubtle.Fprintln(w, strings.TrimRight(header, " "))
	styleSubtle.Fprintln(w, strings.TrimRight(sep, " "))
	for _, row := range rows {
		line := "  "
		for i, cell := range row {
			if i < len(widths) {
				line += fmt.Sprintf("%-*s  ", widths[i], cell)
			}
		}
		fmt.Fprintln(w, strings.TrimRight(line, " "))
	}
}
