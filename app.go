package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"
)

func runEditor(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd.String("config"))
	if err != nil {
		return err
	}
	logger, closeLog, err := openLogFile(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	m := initialModel(cfg, logger)

	if link := cmd.String("share"); link != "" {
		path, stripped, err := DecodeShareURL(link, cfg.Share.Param)
		if err != nil {
			return err
		}
		if err := m.editor.Load(path); err != nil {
			return err
		}
		m.successMessage = "Opened " + stripped
	}

	codeFile := cmd.String("code")
	if codeFile != "" {
		data, err := os.ReadFile(codeFile)
		if err != nil {
			return fmt.Errorf("read code file: %w", err)
		}
		if err := m.editor.Import(string(data)); err != nil {
			return err
		}
		m.codeFile = codeFile
	}
	m.events.drain()

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if cmd.Bool("watch") && codeFile != "" {
		watchCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		go func() {
			err := watchCodeFile(watchCtx, codeFile, logger, func(code string) {
				p.Send(codeChangedMsg{code: code})
			})
			if err != nil {
				logger.Error("watcher failed", slog.String("error", err.Error()))
			}
		}()
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("editor: %w", err)
	}
	return nil
}

func initialModel(cfg *Config, logger *slog.Logger) model {
	queue := &eventQueue{}
	translator := NewTranslator(0, 0, WithFieldSize(cfg.Field.Width, cfg.Field.Height))
	editor := NewPathEditor(translator,
		WithLogger(logger),
		WithMarkerRadius(cfg.Field.MarkerRadius),
		WithDefaultTimeout(cfg.Field.DefaultTimeout),
		WithListener(queue.push),
	)

	input := textinput.New()
	input.CharLimit = 512

	return model{
		editor:       editor,
		events:       queue,
		config:       cfg,
		logger:       logger,
		keys:         defaultKeys,
		mode:         ModeNormal,
		input:        input,
		confirmIndex: -1,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case freshExpiredMsg:
		m.editor.ClearFresh(msg.marker)
		return m, nil

	case clearMessageMsg:
		if msg.seq == m.messageSeq {
			m.errorMessage = ""
			m.successMessage = ""
		}
		return m, nil

	case codeChangedMsg:
		if err := m.editor.Import(msg.code); err != nil {
			cmd = m.setError(err.Error())
		} else {
			cmd = m.setSuccess("Reloaded " + m.codeFile)
		}

	case tea.MouseMsg:
		cmd = m.handleMouse(msg)

	case tea.KeyMsg:
		var next tea.Model
		next, cmd = m.handleKey(msg)
		if mm, ok := next.(*model); ok {
			m = *mm
		} else {
			return next, cmd
		}
	}

	return m, tea.Batch(cmd, m.drainEvents())
}

// layout sizes the field to a square in field units. Terminal cells are about
// twice as tall as wide, so the field gets two columns per row.
func (m *model) layout() {
	rows := m.height - 1
	cols := m.width - panelWidth - 1
	if cols > 2*rows {
		cols = 2 * rows
	}
	rows = cols / 2
	if rows < minFieldRows {
		rows = minFieldRows
		cols = 2 * rows
	}
	m.fieldCols = cols
	m.fieldRows = rows
	m.editor.Resize(float64(cols), float64(rows))
}

// drainEvents turns editor events into follow-up commands.
func (m *model) drainEvents() tea.Cmd {
	var cmds []tea.Cmd
	for _, ev := range m.events.drain() {
		switch ev.Kind {
		case EventAppended:
			m.selectedRow = ev.Index
			if marker := ev.Marker; marker != nil {
				cmds = append(cmds, tea.Tick(m.config.Field.Highlight(), func(time.Time) tea.Msg {
					return freshExpiredMsg{marker: marker}
				}))
			}
		case EventDeleted, EventLoaded:
			m.ensureSelectionInBounds()
		}
	}
	return tea.Batch(cmds...)
}

func (m *model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	inField := msg.X >= 0 && msg.X < m.fieldCols && msg.Y >= 0 && msg.Y < m.fieldRows
	px := clamp(float64(msg.X)+0.5, 0, float64(m.fieldCols))
	py := clamp(float64(msg.Y)+0.5, 0, float64(m.fieldRows))

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !inField || m.mode != ModeNormal {
			return nil
		}
		m.editor.Press(px, py)
		if state, index := m.editor.State(); state == StateDragging {
			m.selectedRow = index
		}
	case tea.MouseActionMotion:
		if err := m.editor.Move(px, py); err != nil {
			return m.setError(err.Error())
		}
	case tea.MouseActionRelease:
		state, _ := m.editor.State()
		if state != StateDragging && (!inField || m.mode != ModeNormal) {
			return nil
		}
		if _, err := m.editor.Release(px, py); err != nil {
			return m.setError(err.Error())
		}
	}
	return nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.help {
		m.help = false
		return &m, nil
	}

	switch m.mode {
	case ModeEditField:
		switch {
		case key.Matches(msg, m.keys.Submit):
			m.mode = ModeNormal
			m.input.Blur()
			field := FormFields[m.selectedField]
			if err := m.editor.EditField(m.selectedRow, field, m.input.Value()); err != nil {
				return &m, m.setError(err.Error())
			}
			return &m, m.setSuccess(fmt.Sprintf("Waypoint %d %s updated", m.selectedRow, field))
		case key.Matches(msg, m.keys.Cancel):
			m.mode = ModeNormal
			m.input.Blur()
			return &m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return &m, cmd

	case ModeFileInput:
		switch {
		case key.Matches(msg, m.keys.Submit):
			m.filename = strings.TrimSpace(m.input.Value())
			m.input.Blur()
			if m.filename == "" {
				return &m, m.setError("Please enter a filename")
			}
			if m.fileOp != FileOpImport && m.config.App.Confirmations {
				if target, err := m.targetPath(); err == nil {
					if _, statErr := os.Stat(target); statErr == nil {
						m.mode = ModeConfirm
						m.confirmAction = ConfirmOverwriteFile
						return &m, nil
					}
				}
			}
			m.mode = ModeNormal
			return &m, m.performFileOp()
		case key.Matches(msg, m.keys.Cancel):
			m.mode = ModeNormal
			m.input.Blur()
			return &m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return &m, cmd

	case ModeConfirm:
		switch msg.String() {
		case "y", "Y":
			m.mode = ModeNormal
			switch m.confirmAction {
			case ConfirmQuit:
				return &m, tea.Quit
			case ConfirmDeleteWaypoint:
				return &m, m.deleteWaypoint(m.confirmIndex)
			case ConfirmOverwriteFile:
				return &m, m.performFileOp()
			}
		case "n", "N", "esc":
			m.mode = ModeNormal
		}
		return &m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		if msg.String() == "ctrl+c" || !m.config.App.Confirmations {
			return &m, tea.Quit
		}
		m.mode = ModeConfirm
		m.confirmAction = ConfirmQuit
	case key.Matches(msg, m.keys.Help):
		m.help = true
	case key.Matches(msg, m.keys.NextRow):
		m.selectRow(1)
	case key.Matches(msg, m.keys.PrevRow):
		m.selectRow(-1)
	case key.Matches(msg, m.keys.NextField):
		m.selectField(1)
	case key.Matches(msg, m.keys.PrevField):
		m.selectField(-1)
	case key.Matches(msg, m.keys.Edit):
		if m.editor.Len() == 0 {
			return &m, m.setError("No waypoints yet, click the field to add one")
		}
		rows := m.editor.Rows()
		m.mode = ModeEditField
		m.input.Placeholder = FormFields[m.selectedField]
		m.input.SetValue(rows[m.selectedRow].Values[FormFields[m.selectedField]])
		m.input.CursorEnd()
		return &m, m.input.Focus()
	case key.Matches(msg, m.keys.Delete):
		if m.editor.Len() == 0 {
			return &m, nil
		}
		if m.config.App.Confirmations {
			m.mode = ModeConfirm
			m.confirmAction = ConfirmDeleteWaypoint
			m.confirmIndex = m.selectedRow
			return &m, nil
		}
		return &m, m.deleteWaypoint(m.selectedRow)
	case key.Matches(msg, m.keys.CopyCode):
		if err := writeClipboardText(m.editor.Code()); err != nil {
			return &m, m.setError(fmt.Sprintf("Clipboard unavailable: %s", err.Error()))
		}
		return &m, m.setSuccess("Code copied")
	case key.Matches(msg, m.keys.CopyShare):
		link, err := m.editor.ShareLink(m.config.Share.BaseURL, m.config.Share.Param)
		if err != nil {
			return &m, m.setError(err.Error())
		}
		if err := writeClipboardText(link); err != nil {
			return &m, m.setError(fmt.Sprintf("Clipboard unavailable: %s", err.Error()))
		}
		return &m, m.setSuccess("Share link copied")
	case key.Matches(msg, m.keys.Paste):
		text, err := readClipboardText()
		if err != nil {
			return &m, m.setError(fmt.Sprintf("Clipboard unavailable: %s", err.Error()))
		}
		if err := m.editor.Import(cleanClipboardText(text)); err != nil {
			return &m, m.setError(err.Error())
		}
		return &m, m.setSuccess(fmt.Sprintf("Imported %d waypoints", m.editor.Len()))
	case key.Matches(msg, m.keys.SaveCode):
		return &m, m.startFileInput(FileOpSaveCode)
	case key.Matches(msg, m.keys.SavePNG):
		return &m, m.startFileInput(FileOpSavePNG)
	case key.Matches(msg, m.keys.Import):
		return &m, m.startFileInput(FileOpImport)
	case key.Matches(msg, m.keys.Nudge):
		k := msg.String()
		return m.handleNavigation(k, m.getMoveSpeed(k))
	}
	return &m, nil
}

func (m *model) deleteWaypoint(index int) tea.Cmd {
	if err := m.editor.Delete(index); err != nil {
		if errors.Is(err, ErrOutOfRange) {
			return nil
		}
		return m.setError(err.Error())
	}
	return m.setSuccess(fmt.Sprintf("Deleted waypoint %d", index))
}

func (m *model) startFileInput(op FileOperation) tea.Cmd {
	m.mode = ModeFileInput
	m.fileOp = op
	m.input.SetValue("")
	switch op {
	case FileOpImport:
		m.input.Placeholder = "code file to import"
		if m.codeFile != "" {
			m.input.SetValue(m.codeFile)
		}
	case FileOpSavePNG:
		m.input.Placeholder = "path.png"
	default:
		m.input.Placeholder = "path.cpp"
		if m.codeFile != "" {
			m.input.SetValue(m.codeFile)
		}
	}
	m.input.CursorEnd()
	return m.input.Focus()
}

// targetPath resolves the filename typed for the current file operation.
func (m *model) targetPath() (string, error) {
	name := m.filename
	switch m.fileOp {
	case FileOpImport:
		return name, nil
	case FileOpSavePNG:
		if !strings.HasSuffix(strings.ToLower(name), ".png") {
			name += ".png"
		}
	default:
		if filepath.Ext(name) == "" {
			name += ".cpp"
		}
	}
	if filepath.IsAbs(name) {
		return name, nil
	}
	return m.config.GetSavePath(name)
}

func (m *model) performFileOp() tea.Cmd {
	target, err := m.targetPath()
	if err != nil {
		return m.setError(err.Error())
	}
	switch m.fileOp {
	case FileOpImport:
		data, err := os.ReadFile(target)
		if err != nil {
			return m.setError(fmt.Sprintf("Error opening file: %s", err.Error()))
		}
		if err := m.editor.Import(string(data)); err != nil {
			return m.setError(err.Error())
		}
		m.codeFile = target
		return m.setSuccess(fmt.Sprintf("Imported %d waypoints from %s", m.editor.Len(), target))
	case FileOpSavePNG:
		if err := ExportPNG(target, m.editor.Waypoints(), m.config.Field, pngExportSize); err != nil {
			return m.setError(fmt.Sprintf("Error exporting PNG: %s", err.Error()))
		}
	default:
		if err := exportCode(target, m.editor.Code()); err != nil {
			return m.setError(fmt.Sprintf("Error saving file: %s", err.Error()))
		}
		m.codeFile = target
	}
	absPath, _ := filepath.Abs(target)
	return m.setSuccess(fmt.Sprintf("Saved to %s", absPath))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
