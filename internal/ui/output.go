package ui

import (
	"fmt"
	"strings"

	"github.com/dmdesousa/lapis/internal/model"
)

// Unicode symbols for status indicators
const (
	SymbolSuccess = "✓"
	SymbolError   = "✗"
	SymbolWarning = "⚠"
)

// Success returns a success message with checkmark symbol.
func Success(msg string) string {
	return fmt.Sprintf("%s %s", SymbolSuccess, msg)
}

// Successf returns a formatted success message with checkmark symbol.
func Successf(format string, args ...interface{}) string {
	return Success(fmt.Sprintf(format, args...))
}

// Errorf returns a formatted error message with X symbol.
func Errorf(format string, args ...interface{}) string {
	return fmt.Sprintf("%s %s", SymbolError, fmt.Sprintf(format, args...))
}

// Warningf returns a formatted warning message with warning symbol.
func Warningf(format string, args ...interface{}) string {
	return fmt.Sprintf("%s %s", SymbolWarning, fmt.Sprintf(format, args...))
}

// FilePath returns an accent-styled file path.
func FilePath(path string) string {
	return render(Accent, path)
}

// Hint returns muted hint text.
func Hint(msg string) string {
	return render(Muted, msg)
}

// ContentRow formats one numbered search result:
//
//	1.) | Article | Published | 2014-03-09 | Foo Bar
func ContentRow(index int, c *model.Content) string {
	date := "          "
	if c.DateCreated != nil {
		date = c.DateCreated.Format("2006-01-02")
	}
	status := string(c.Status)
	if status == "" {
		status = "-"
	}
	statusStyle := StatusOther
	if c.Status == model.StatusPublished {
		statusStyle = StatusOK
	}
	return fmt.Sprintf("%d.) | %s | %s | %s | %s",
		index,
		render(Bold, capitalize(string(c.Type))),
		render(statusStyle, capitalize(status)),
		render(Muted, date),
		render(Accent, c.Title))
}

// TermRow formats one tag/author/category listing row: "[2] ocean".
func TermRow(t model.Term) string {
	return fmt.Sprintf("[%s] %s",
		render(Muted, fmt.Sprintf("%d", t.Count)),
		render(Accent, t.Name))
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
