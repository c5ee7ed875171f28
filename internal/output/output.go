// Package output provides styled terminal output helpers (success,
// error, warning, word formatting) using lipgloss.
package output

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	subtleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	dueStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	classStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("45"))
)

// Success prints a success message
func Success(format string, args ...interface{}) {
	fmt.Println(successStyle.Render(fmt.Sprintf(format, args...)))
}

// Error prints an error message
func Error(format string, args ...interface{}) {
	fmt.Println(errorStyle.Render("ERROR: " + fmt.Sprintf(format, args...)))
}

// Warning prints a warning message
func Warning(format string, args ...interface{}) {
	fmt.Println(warningStyle.Render("Warning: " + fmt.Sprintf(format, args...)))
}

// Info prints an info message
func Info(format string, args ...interface{}) {
	fmt.Println(fmt.Sprintf(format, args...))
}

// Title prints a bold heading
func Title(s string) {
	fmt.Println(titleStyle.Render(s))
}

// Subtle prints de-emphasized text
func Subtle(format string, args ...interface{}) {
	fmt.Println(subtleStyle.Render(fmt.Sprintf(format, args...)))
}

// JSON outputs data as JSON
func JSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

// Word formats a word with its frequency class, e.g. "casa  [120]".
func Word(word string, class int) string {
	return fmt.Sprintf("%s  %s", word, classStyle.Render("["+strconv.Itoa(class)+"]"))
}

// DueWord formats a word that is due for review.
func DueWord(word string) string {
	return fmt.Sprintf("%s  %s", word, dueStyle.Render("(due)"))
}

// TerminalWidth returns the current terminal width or a fallback when
// unavailable.
func TerminalWidth(fallback int) int {
	if fallback <= 0 {
		fallback = 80
	}

	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}

	if cols := os.Getenv("COLUMNS"); cols != "" {
		if parsed, err := strconv.Atoi(cols); err == nil && parsed > 0 {
			return parsed
		}
	}

	return fallback
}

// Columns lays out items in terminal-width columns, like ls.
func Columns(items []string) string {
	if len(items) == 0 {
		return ""
	}

	width := TerminalWidth(80)
	longest := 0
	for _, item := range items {
		if w := lipgloss.Width(item); w > longest {
			longest = w
		}
	}

	perRow := width / (longest + 2)
	if perRow < 1 {
		perRow = 1
	}

	var b strings.Builder
	for i, item := range items {
		b.WriteString(item)
		if (i+1)%perRow == 0 || i == len(items)-1 {
			b.WriteByte('\n')
		} else {
			b.WriteString(strings.Repeat(" ", longest+2-lipgloss.Width(item)))
		}
	}
	return b.String()
}
