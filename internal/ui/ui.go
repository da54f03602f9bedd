package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nleclerc/dockhand/internal/model"
)

var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#DC2626")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#CA8A04"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#16A34A"))
	hintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280")).Italic(true)
	boldStyle    = lipgloss.NewStyle().Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF"))

	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#60A5FA"))

	stateStyles = map[model.ServiceState]lipgloss.Style{
		model.StateRunning:    successStyle,
		model.StateStopped:    dimStyle,
		model.StateStarting:   warnStyle,
		model.StateRestarting: warnStyle,
		model.StatePaused:     warnStyle,
		model.StateDead:       errorStyle,
		model.StateUnknown:    dimStyle,
	}
)

// FormatError returns a styled multi-line error message.
func FormatError(title, detail, suggestion string) string {
	out := errorStyle.Render("Error: "+title) + "\n"
	if detail != "" {
		out += "  " + detail + "\n"
	}
	if suggestion != "" {
		out += "  " + hintStyle.Render("Hint: "+suggestion) + "\n"
	}
	return out
}

// Success prints a green success message.
func Success(msg string) {
	fmt.Println(successStyle.Render(msg))
}

// Warn prints a yellow warning message.
func Warn(msg string) {
	fmt.Println(warnStyle.Render("Warning: " + msg))
}

// Bold renders text in bold.
func Bold(s string) string {
	return boldStyle.Render(s)
}

// Hint renders text in dim italic.
func Hint(s string) string {
	return hintStyle.Render(s)
}

// Dim renders text dimmed.
func Dim(s string) string {
	return dimStyle.Render(s)
}

// CandidateLine renders one ranked discovery candidate for selection
// lists and scan output.
func CandidateLine(index int, rel string, primary bool, services int) string {
	marker := "variant"
	if primary {
		marker = "primary"
	}
	detail := fmt.Sprintf("%s, %d services", marker, services)
	return fmt.Sprintf("  %2d. %s %s", index, rel, dimStyle.Render("("+detail+")"))
}

// StatusTable renders normalized status records as an aligned table.
func StatusTable(records []model.ServiceStatusRecord) string {
	if len(records) == 0 {
		return hintStyle.Render("No status available.")
	}

	rows := make([][4]string, 0, len(records))
	widths := [4]int{len("SERVICE"), len("STATE"), len("HEALTH"), len("PORTS")}
	for _, rec := range records {
		row := [4]string{rec.Name, string(rec.State), string(rec.Health), strings.Join(rec.Ports, ", ")}
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
		rows = append(rows, row)
	}

	var b strings.Builder
	header := [4]string{"SERVICE", "STATE", "HEALTH", "PORTS"}
	for i, h := range header {
		b.WriteString(headerStyle.Render(pad(h, widths[i])))
		b.WriteString("  ")
	}
	b.WriteString("\n")

	for ri, row := range rows {
		for i, cell := range row {
			text := pad(cell, widths[i])
			if i == 1 {
				text = stateStyles[records[ri].State].Render(text)
			}
			b.WriteString(text)
			b.WriteString("  ")
		}
		b.WriteString("\n")
	}
	return b.String()
}

func pad(s string, w int) string {
	if len(s) >= w {
		return s
	}
	return s + strings.Repeat(" ", w-len(s))
}
