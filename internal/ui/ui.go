// Package ui renders messages, trees and tables for the interactive shell.
package ui

import (
	"fmt"
	"io"
	"strings"
)

// UI writes styled shell output to a writer.
type UI struct {
	writer   io.Writer
	useColor bool
	styles   styles
}

func NewUI(w io.Writer, useColor bool) *UI {
	return &UI{writer: w, useColor: useColor, styles: newStyles(useColor)}
}

// Writer returns the destination of all output.
func (u *UI) Writer() io.Writer {
	return u.writer
}

func (u *UI) Print(message string) {
	fmt.Fprint(u.writer, message)
}

func (u *UI) Println(message string) {
	fmt.Fprintln(u.writer, message)
}

// Message prints a formatted line without styling.
func (u *UI) Message(format string, args ...interface{}) {
	fmt.Fprintf(u.writer, format, args...)
	if !strings.HasSuffix(format, "\n") {
		fmt.Fprintln(u.writer)
	}
}

func (u *UI) Success(message string) {
	u.Println(u.styles.success.Render(message))
}

func (u *UI) Warning(message string) {
	u.Println(u.styles.warning.Render("? " + message))
}

func (u *UI) Error(message string) {
	u.Println(u.styles.errorMark.Render("!") + " " + u.styles.errorText.Render(message))
}

func (u *UI) Info(message string) {
	u.Println(u.styles.info.Render(message))
}

// PromptString builds the readline prompt showing the current document and
// whether it has unsaved edits.
func (u *UI) PromptString(document string, dirty bool) string {
	var sb strings.Builder
	if document != "" {
		sb.WriteString(u.styles.document.Render(document))
		if dirty {
			sb.WriteString(u.styles.warning.Render("*"))
		}
		sb.WriteString(" ")
	}
	sb.WriteString(u.styles.prompt.Render("> "))
	return sb.String()
}
