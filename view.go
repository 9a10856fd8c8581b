package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m model) View() string {
	if m.help {
		return m.helpView()
	}
	if m.fieldCols == 0 {
		return "Loading field..."
	}

	selected := -1
	if m.editor.Len() > 0 {
		selected = m.selectedRow
	}
	field := strings.Join(renderField(m.editor, m.fieldCols, m.fieldRows, selected), "\n")
	panel := m.panelView()

	var result strings.Builder
	result.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, field, " ", panel))
	result.WriteString("\n")
	result.WriteString(m.statusLine())
	return result.String()
}

// panelView renders the form row in focus and a preview of the generated code.
func (m model) panelView() string {
	width := panelWidth - 4
	var b strings.Builder

	b.WriteString(stylePanelTitle.Render(fmt.Sprintf("Waypoints (%d)", m.editor.Len())))
	b.WriteString("\n")

	rows := m.editor.Rows()
	if len(rows) == 0 {
		b.WriteString(styleFieldLabel.Render("Click the field to add a waypoint"))
	} else {
		row := rows[min(m.selectedRow, len(rows)-1)]
		b.WriteString(styleRowActive.Render(fmt.Sprintf("#%d", row.Index)))
		b.WriteString("\n")
		for i, name := range FormFields {
			value := row.Values[name]
			if m.mode == ModeEditField && i == m.selectedField {
				value = m.input.View()
			}
			label := fmt.Sprintf("%-15s", strings.TrimPrefix(name, "attributes."))
			line := styleFieldLabel.Render(label) + " " + value
			if i == m.selectedField {
				line = styleRowActive.Render("›") + line
			} else {
				line = " " + line
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(stylePanelTitle.Render("Code"))
	b.WriteString("\n")
	code := strings.Split(strings.TrimRight(m.editor.Code(), "\n"), "\n")
	room := m.fieldRows - len(FormFields) - 6
	if room < 1 {
		room = 1
	}
	if len(code) > room {
		code = append(code[:room-1], "…")
	}
	for _, line := range code {
		b.WriteString(truncate(line, width))
		b.WriteString("\n")
	}

	return stylePanel.Width(width).Height(m.fieldRows - 2).Render(strings.TrimRight(b.String(), "\n"))
}

func (m model) statusLine() string {
	var statusLine string
	switch m.mode {
	case ModeEditField:
		statusLine = fmt.Sprintf("Mode: EDIT | Waypoint %d %s | Enter=apply, Esc=cancel, empty clears optional fields",
			m.selectedRow, FormFields[m.selectedField])
	case ModeFileInput:
		var opStr string
		switch m.fileOp {
		case FileOpSaveCode:
			opStr = "Save code"
		case FileOpSavePNG:
			opStr = "Export PNG"
		case FileOpImport:
			opStr = "Import"
		}
		statusLine = fmt.Sprintf("Mode: FILE | %s filename: %s | Enter=confirm, Esc=cancel", opStr, m.input.View())
	case ModeConfirm:
		var message string
		switch m.confirmAction {
		case ConfirmDeleteWaypoint:
			message = fmt.Sprintf("Delete waypoint %d? (y/n)", m.confirmIndex)
		case ConfirmQuit:
			message = "Quit fieldpath? (y/n)"
		case ConfirmOverwriteFile:
			message = fmt.Sprintf("File %s already exists. Overwrite? (y/n)", m.filename)
		}
		statusLine = fmt.Sprintf("Mode: CONFIRM | %s", message)
	default:
		state, index := m.editor.State()
		status := fmt.Sprintf("Mode: %s | %s", m.modeString(), state)
		if state == StateDragging {
			status += fmt.Sprintf(" #%d", index)
		}
		if m.codeFile != "" {
			status += " | " + m.codeFile
		}
		if m.successMessage != "" {
			status += " | " + styleStatusOK.Render(m.successMessage)
		}
		if m.errorMessage != "" {
			status += " | " + styleStatusErr.Render("ERROR: "+m.errorMessage)
		} else if m.successMessage == "" {
			status += " | ? for help | q to quit"
		}
		statusLine = status
	}
	return statusLine
}

func (m model) modeString() string {
	switch m.mode {
	case ModeNormal:
		return "NORMAL"
	case ModeEditField:
		return "EDIT"
	case ModeFileInput:
		return "FILE"
	case ModeConfirm:
		return "CONFIRM"
	default:
		return "UNKNOWN"
	}
}

func (m model) helpView() string {
	helpLines := []string{
		"fieldpath Help",
		"==============",
		"",
		"Field:",
		"------",
		"  click empty field  Append a waypoint",
		"  drag a marker      Move that waypoint",
		"",
		"Waypoints:",
		"----------",
	}
	for _, b := range []struct {
		keys, desc string
	}{
		{m.keys.NextRow.Help().Key, m.keys.NextRow.Help().Desc},
		{m.keys.PrevRow.Help().Key, m.keys.PrevRow.Help().Desc},
		{m.keys.NextField.Help().Key, m.keys.NextField.Help().Desc},
		{m.keys.PrevField.Help().Key, m.keys.PrevField.Help().Desc},
		{m.keys.Edit.Help().Key, m.keys.Edit.Help().Desc},
		{m.keys.Delete.Help().Key, m.keys.Delete.Help().Desc},
		{m.keys.Nudge.Help().Key, m.keys.Nudge.Help().Desc},
		{"Shift+hjkl", "nudge waypoint 2x"},
	} {
		helpLines = append(helpLines, fmt.Sprintf("  %-18s %s", b.keys, b.desc))
	}
	helpLines = append(helpLines,
		"",
		"Code and sharing:",
		"-----------------",
	)
	for _, b := range []struct {
		keys, desc string
	}{
		{m.keys.CopyCode.Help().Key, m.keys.CopyCode.Help().Desc},
		{m.keys.CopyShare.Help().Key, m.keys.CopyShare.Help().Desc},
		{m.keys.Paste.Help().Key, m.keys.Paste.Help().Desc},
		{m.keys.Import.Help().Key, m.keys.Import.Help().Desc},
		{m.keys.SaveCode.Help().Key, m.keys.SaveCode.Help().Desc},
		{m.keys.SavePNG.Help().Key, m.keys.SavePNG.Help().Desc},
		{m.keys.Quit.Help().Key, m.keys.Quit.Help().Desc},
	} {
		helpLines = append(helpLines, fmt.Sprintf("  %-18s %s", b.keys, b.desc))
	}
	helpLines = append(helpLines, "", "Press any key to return")

	height := m.height
	if height < 1 || height > len(helpLines) {
		height = len(helpLines)
	}
	return strings.Join(helpLines[:height], "\n")
}

func truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes)) > width-1 {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}
