package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	newStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	chgStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	trkStyle  = lipgloss.NewStyle().Faint(true)
	errStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	kindStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	headStyle = lipgloss.NewStyle().Bold(true)
	tagStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
)

func NewLine(w io.Writer, path string) {
	fmt.Fprintln(w, newStyle.Render("new")+"  "+path)
}

func ChgLine(w io.Writer, path string) {
	fmt.Fprintln(w, chgStyle.Render("chg")+"  "+path)
}

func TrkLine(w io.Writer, path string) {
	fmt.Fprintln(w, trkStyle.Render("trk")+"  "+path)
}

func ErrLine(w io.Writer, path, msg string) {
	fmt.Fprintln(w, errStyle.Render("err")+"  "+path+": "+msg)
}

func SummaryLine(w io.Writer, files, scenarios int) {
	fmt.Fprintf(w, "synced %d files (%d scenarios)\n", files, scenarios)
}

func ViolationLine(w io.Writer, path string, line int, kind, msg string) {
	fmt.Fprintf(w, "%s:%d  %s  %s\n", path, line, kindStyle.Render("["+kind+"]"), msg)
}

func LintSummary(w io.Writer, files, problems int) {
	if problems == 0 {
		fmt.Fprintf(w, "%d files checked, no problems\n", files)
		return
	}
	fmt.Fprintf(w, "%d files checked, %s\n", files, errStyle.Render(fmt.Sprintf("%d problems", problems)))
}

func ListRow(w io.Writer, file, kind, name, tags string, fileWidth, kindWidth, nameWidth int) {
	fmt.Fprintf(w, "%-*s  %-*s  %-*s  %s\n",
		fileWidth, file,
		kindWidth, kind,
		nameWidth, name,
		tagStyle.Render(tags))
}

func ShowHeader(w io.Writer, name, path string) {
	fmt.Fprintln(w, headStyle.Render("Feature: "+name)+"  "+trkStyle.Render(path))
}

// GherkinBlock writes an already newline-terminated gherkin block.
func GherkinBlock(w io.Writer, text string) {
	fmt.Fprint(w, text)
}
