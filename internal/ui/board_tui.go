package ui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/josephgoksu/daytrack/internal/board"
	"github.com/josephgoksu/daytrack/internal/clock"
	"github.com/josephgoksu/daytrack/internal/logger"
	"github.com/josephgoksu/daytrack/models"
	"golang.org/x/text/message"
)

type focusArea int

// tab order
const (
	focusText focusArea = iota
	focusTime
	focusList
	focusCount
)

const (
	DefaultRolloverInterval = time.Minute
	MaxTaskLength           = 200
)

// BoardOptions configures NewBoardModel.
type BoardOptions struct {
	ZoneLabel        string
	RolloverInterval time.Duration
	Locale           string
}

// ConfigChangedMsg carries reloaded clock settings into a running program.
type ConfigChangedMsg struct {
	Offset    time.Duration
	ZoneLabel string
}

type tickMsg time.Time

type rolloverMsg time.Time

type savedMsg struct {
	gen   uint64
	wrote bool
	err   error
}

type row struct {
	date string
	task models.Task
}

// BoardModel is the interactive daily board.
type BoardModel struct {
	ctx     context.Context
	board   *board.Board
	keys    KeyMap
	help    help.Model
	printer *message.Printer

	text      textinput.Model
	timeIn    textinput.Model
	editor    textinput.Model
	important bool

	focus  focusArea
	cursor int

	zoneLabel     string
	rolloverEvery time.Duration
	ticking       bool
	width         int

	status    string
	statusErr bool
}

// NewBoardModel builds the TUI around an opened board.
func NewBoardModel(ctx context.Context, b *board.Board, opts BoardOptions) BoardModel {
	text := textinput.New()
	text.Placeholder = "Add a new task..."
	text.CharLimit = MaxTaskLength
	text.Width = 40
	text.Focus()

	timeIn := textinput.New()
	timeIn.Placeholder = "HH:MM"
	timeIn.CharLimit = 5
	timeIn.Width = 5

	editor := textinput.New()
	editor.CharLimit = MaxTaskLength
	editor.Width = 40

	every := opts.RolloverInterval
	if every <= 0 {
		every = DefaultRolloverInterval
	}

	return BoardModel{
		ctx:           ctx,
		board:         b,
		keys:          DefaultKeyMap(),
		help:          help.New(),
		printer:       NewPrinter(opts.Locale),
		text:          text,
		timeIn:        timeIn,
		editor:        editor,
		zoneLabel:     opts.ZoneLabel,
		rolloverEvery: every,
	}
}

func (m BoardModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.rolloverTick())
}

func secondTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m BoardModel) rolloverTick() tea.Cmd {
	return tea.Tick(m.rolloverEvery, func(t time.Time) tea.Msg {
		return rolloverMsg(t)
	})
}

// save hands the current snapshot to the board's writer off the UI goroutine.
func (m BoardModel) save() tea.Cmd {
	gen, snap := m.board.Snapshot()
	w := m.board.Writer()
	ctx := m.ctx
	logger.SetSummary(fmt.Sprintf("%d tasks, generation %d, timers running: %t", snap.Count(), gen, m.board.AnyRunning()))
	return func() tea.Msg {
		wrote, err := w.Write(ctx, gen, snap)
		return savedMsg{gen: gen, wrote: wrote, err: err}
	}
}

// ensureTicking starts the shared one-second loop unless it is already running.
func (m *BoardModel) ensureTicking() tea.Cmd {
	if m.ticking || !m.board.AnyRunning() {
		return nil
	}
	m.ticking = true
	return secondTick()
}

func (m *BoardModel) setStatus(s string, isErr bool) {
	m.status = s
	m.statusErr = isErr
}

func (m BoardModel) rows() []row {
	var rows []row
	for _, d := range m.board.Dates() {
		for _, t := range m.board.Tasks(d) {
			rows = append(rows, row{date: d, task: t})
		}
	}
	return rows
}

func (m BoardModel) selected() (row, bool) {
	rows := m.rows()
	if m.cursor < 0 || m.cursor >= len(rows) {
		return row{}, false
	}
	return rows[m.cursor], true
}

func (m *BoardModel) moveCursor(delta int) {
	m.cursor += delta
	m.clampCursor()
}

func (m *BoardModel) clampCursor() {
	n := len(m.rows())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m BoardModel) editing() bool {
	_, ok := m.board.Editing()
	return ok
}

func (m BoardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		m.width = msg.Width
		return m, nil

	case tickMsg:
		m.board.Tick()
		if m.board.AnyRunning() {
			return m, secondTick()
		}
		m.ticking = false
		return m, nil

	case rolloverMsg:
		if date, changed := m.board.CheckRollover(); changed {
			m.setStatus("New day: "+LongDate(date), false)
		}
		return m, m.rolloverTick()

	case savedMsg:
		if msg.err != nil {
			slog.Error("save failed", "generation", msg.gen, "error", msg.err)
			m.setStatus("Save failed: "+msg.err.Error(), true)
			return m, nil
		}
		slog.Debug("saved", "generation", msg.gen, "wrote", msg.wrote, "latest", m.board.Generation())
		return m, nil

	case ConfigChangedMsg:
		m.board.SetOffset(msg.Offset)
		if msg.ZoneLabel != "" {
			m.zoneLabel = msg.ZoneLabel
		}
		m.board.CheckRollover()
		m.setStatus("Config reloaded", false)
		return m, nil

	case tea.KeyMsg:
		logger.SetLastAction("key " + msg.String())
		return m.handleKey(msg)
	}

	return m.updateFocused(msg)
}

// updateFocused forwards msg to whichever text input has focus.
func (m BoardModel) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case m.editing():
		m.editor, cmd = m.editor.Update(msg)
		_ = m.board.SetEditText(m.editor.Value())
	case m.focus == focusText:
		m.text, cmd = m.text.Update(msg)
	case m.focus == focusTime:
		m.timeIn, cmd = m.timeIn.Update(msg)
	}
	return m, cmd
}

func (m BoardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m.quit()
	}
	if key.Matches(msg, m.keys.Focus) {
		// leaving the row ends the edit like a blur
		saveCmd := m.commitEdit()
		step := 1
		if msg.String() == "shift+tab" {
			step = int(focusCount) - 1
		}
		m.focus = (m.focus + focusArea(step)) % focusCount
		focusCmd := m.applyFocus()
		return m, tea.Batch(saveCmd, focusCmd)
	}

	switch {
	case m.editing():
		return m.handleEditKey(msg)
	case m.focus == focusList:
		return m.handleListKey(msg)
	default:
		return m.handleInputKey(msg)
	}
}

func (m *BoardModel) applyFocus() tea.Cmd {
	m.text.Blur()
	m.timeIn.Blur()
	switch m.focus {
	case focusText:
		return m.text.Focus()
	case focusTime:
		return m.timeIn.Focus()
	}
	m.clampCursor()
	return nil
}

func (m BoardModel) quit() (tea.Model, tea.Cmd) {
	m.board.CancelEdit()
	return m, tea.Sequence(m.save(), tea.Quit)
}

func (m BoardModel) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Enter):
		return m.addTask()
	case key.Matches(msg, m.keys.Important):
		m.important = !m.important
		return m, nil
	case key.Matches(msg, m.keys.Cancel):
		m.text.Reset()
		m.timeIn.Reset()
		m.important = false
		return m, nil
	}
	return m.updateFocused(msg)
}

func (m BoardModel) addTask() (tea.Model, tea.Cmd) {
	task, err := m.board.Add(board.NewTask{
		Text:      m.text.Value(),
		Time:      strings.TrimSpace(m.timeIn.Value()),
		Important: m.important,
	})
	if errors.Is(err, board.ErrBlankText) {
		return m, nil
	}
	if err != nil {
		m.setStatus(err.Error(), true)
		return m, nil
	}

	m.text.Reset()
	m.timeIn.Reset()
	m.important = false
	m.setStatus("Added "+Truncate(task.Text, 40), false)
	return m, m.save()
}

func (m BoardModel) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Enter):
		cmd := m.commitEdit()
		return m, cmd
	case key.Matches(msg, m.keys.Cancel):
		m.board.CancelEdit()
		m.editor.Blur()
		return m, nil
	case msg.Type == tea.KeyUp:
		cmd := m.commitEdit()
		m.moveCursor(-1)
		return m, cmd
	case msg.Type == tea.KeyDown:
		cmd := m.commitEdit()
		m.moveCursor(1)
		return m, cmd
	}
	return m.updateFocused(msg)
}

// commitEdit writes back the active edit. Blank text is dropped silently.
func (m *BoardModel) commitEdit() tea.Cmd {
	if !m.editing() {
		return nil
	}
	_ = m.board.SetEditText(m.editor.Value())
	changed, err := m.board.CommitEdit()
	m.editor.Blur()
	if err != nil {
		m.setStatus(err.Error(), true)
		return nil
	}
	if !changed {
		return nil
	}
	return m.save()
}

func (m BoardModel) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
		return m, nil
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
		return m, nil
	}

	sel, ok := m.selected()
	if !ok {
		return m, nil
	}
	date, id := sel.date, sel.task.ID

	switch {
	case key.Matches(msg, m.keys.Toggle):
		if _, err := m.board.Toggle(date, id); err != nil {
			m.setStatus(err.Error(), true)
			return m, nil
		}
		return m, m.save()

	case key.Matches(msg, m.keys.Edit):
		e, err := m.board.BeginEdit(date, id)
		if errors.Is(err, board.ErrTaskCompleted) {
			m.setStatus("Completed tasks can't be edited", true)
			return m, nil
		}
		if err != nil {
			m.setStatus(err.Error(), true)
			return m, nil
		}
		m.editor.SetValue(e.Text)
		m.editor.CursorEnd()
		cmd := m.editor.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.Timer):
		running, err := m.board.ToggleTimer(id)
		if err != nil {
			m.setStatus(err.Error(), true)
			return m, nil
		}
		if running {
			cmd := m.ensureTicking()
			return m, cmd
		}
		return m, nil

	case key.Matches(msg, m.keys.Stop):
		m.board.StopTimer(id)
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		if err := m.board.Delete(date, id); err != nil {
			m.setStatus(err.Error(), true)
			return m, nil
		}
		m.clampCursor()
		m.setStatus("Deleted "+Truncate(sel.task.Text, 40), false)
		return m, m.save()
	}
	return m, nil
}

func (m BoardModel) View() string {
	var sb strings.Builder

	today := m.board.Today()
	subtitle := fmt.Sprintf("Time in %s (UTC%s) · %s", m.zoneLabel, clock.FormatOffset(m.board.Offset()), DateHeader(today, today))
	panel := NewPanel("Daily To-Do List", StyleSubtle.Render(subtitle)).WithBorderColor(ColorPrimary)
	if m.width > 2 {
		// border takes one column each side
		panel = panel.WithWidth(m.width - 2)
	}
	sb.WriteString(panel.Render())
	sb.WriteString("\n")

	sb.WriteString(m.viewInputRow())
	sb.WriteString("\n")
	if m.status != "" {
		style := StyleSuccess
		if m.statusErr {
			style = StyleError
		}
		sb.WriteString(style.Render(m.status))
		sb.WriteString("\n")
	}
	if m.board.Dirty() {
		sb.WriteString(StyleSubtle.Render("● unsaved changes"))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	sb.WriteString(m.viewList())
	sb.WriteString(m.help.View(m.keys))
	return sb.String()
}

func (m BoardModel) viewInputRow() string {
	box := func(f focusArea, view string) string {
		if m.focus == f && !m.editing() {
			return StyleInputBoxFocused.Render(view)
		}
		return StyleInputBox.Render(view)
	}
	star := StyleSubtle.Render("☆ important (ctrl+t)")
	if m.important {
		star = StyleImportant.Render("★ important (ctrl+t)")
	}
	return lipgloss.JoinHorizontal(lipgloss.Center,
		box(focusText, m.text.View()), " ",
		box(focusTime, m.timeIn.View()), " ",
		star,
	)
}

func (m BoardModel) viewList() string {
	dates := m.board.Dates()
	if len(dates) == 0 {
		return StyleSubtle.Render("No tasks yet. Add some!") + "\n\n"
	}

	var sb strings.Builder
	today := m.board.Today()
	idx := 0
	for _, d := range dates {
		tasks := m.board.Tasks(d)
		done := 0
		for _, t := range tasks {
			if t.Completed {
				done++
			}
		}

		sb.WriteString(StyleDateHeader.Render(DateHeader(d, today)))
		sb.WriteString("  ")
		sb.WriteString(StyleTotalBadge.Render("Total Study Time " + FormatTotal(m.board.TotalFor(d))))
		sb.WriteString("  ")
		sb.WriteString(StyleSubtle.Render(Progress(m.printer, done, len(tasks))))
		sb.WriteString("\n")

		for _, t := range tasks {
			sb.WriteString(m.viewTask(d, t, m.focus == focusList && idx == m.cursor))
			sb.WriteString("\n")
			idx++
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func (m BoardModel) viewTask(date string, t models.Task, selected bool) string {
	cursor := "  "
	if selected {
		cursor = StyleCursor.Render("> ")
	}
	check := "[ ]"
	if t.Completed {
		check = StyleSuccess.Render("[✓]")
	}
	star := " "
	if t.Important {
		star = StyleImportant.Render("★")
	}

	var text string
	switch e, ok := m.board.Editing(); {
	case ok && e.Date == date && e.ID == t.ID:
		text = m.editor.View()
	case t.Completed:
		text = StyleCompleted.Render(t.Text)
	default:
		text = StyleText.Render(t.Text)
	}

	when := FormatTime12(t.Time)
	if t.Time != "" && m.zoneLabel != "" {
		when += " " + m.zoneLabel
	}

	watch := StyleSubtle.Render("  " + FormatElapsed(0))
	if st, ok := m.board.Timer(t.ID); ok {
		if st.Running {
			watch = StyleRunning.Render("▶ " + FormatElapsed(st.Elapsed))
		} else {
			watch = StylePaused.Render("⏸ " + FormatElapsed(st.Elapsed))
		}
	}

	return fmt.Sprintf("%s%s %s %s  %s  %s", cursor, check, star, text, StyleTimeBadge.Render(when), watch)
}
