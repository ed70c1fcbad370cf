package ui

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/josephgoksu/daytrack/internal/board"
	"github.com/josephgoksu/daytrack/internal/clock"
	"github.com/josephgoksu/daytrack/store"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2026-10-18 09:00 IST
var testNow = time.Date(2026, 10, 18, 3, 30, 0, 0, time.UTC)

const today = "2026-10-18"

func newTestBoard(t *testing.T) (*board.Board, store.Store) {
	t.Helper()
	st, err := store.NewFileStore(afero.NewMemMapFs(), "/data/tasks.json", store.FileOptions{})
	require.NoError(t, err)
	clk := &clock.Clock{Offset: clock.DefaultOffset, Now: func() time.Time { return testNow }}
	var next int64
	b, err := board.Open(context.Background(), st, clk, board.WithIDSource(func() int64 {
		next++
		return next
	}))
	require.NoError(t, err)
	return b, st
}

func newTestModel(t *testing.T) (BoardModel, *board.Board, store.Store) {
	b, st := newTestBoard(t)
	return NewBoardModel(context.Background(), b, BoardOptions{ZoneLabel: "IST", Locale: "en-IN"}), b, st
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keySpace = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	keyCtrlT = tea.KeyMsg{Type: tea.KeyCtrlT}
)

// send feeds msgs to the model and returns the model with the last command.
func send(m BoardModel, msgs ...tea.Msg) (BoardModel, tea.Cmd) {
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(BoardModel)
	}
	return m, cmd
}

func addTask(m BoardModel, text string) BoardModel {
	m, _ = send(m, runes(text), keyEnter)
	return m
}

func toList(m BoardModel) BoardModel {
	for m.focus != focusList {
		m, _ = send(m, keyTab)
	}
	return m
}

func TestBoardModel_AddTask(t *testing.T) {
	m, b, _ := newTestModel(t)

	m, _ = send(m, runes("Write report"), keyTab, runes("09:30"), keyCtrlT)
	m, cmd := send(m, keyEnter)
	require.NotNil(t, cmd)

	tasks := b.Tasks(today)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Write report", tasks[0].Text)
	assert.Equal(t, "09:30", tasks[0].Time)
	assert.True(t, tasks[0].Important)

	assert.Empty(t, m.text.Value(), "input row is cleared")
	assert.Empty(t, m.timeIn.Value())
	assert.False(t, m.important)

	msg := cmd()
	saved, ok := msg.(savedMsg)
	require.True(t, ok)
	assert.NoError(t, saved.err)
	assert.True(t, saved.wrote)
	assert.False(t, b.Dirty())
}

func TestBoardModel_BlankAddIgnored(t *testing.T) {
	m, b, _ := newTestModel(t)
	m, cmd := send(m, runes("   "), keyEnter)
	assert.Nil(t, cmd)
	assert.Equal(t, 0, b.Count())
	assert.Equal(t, uint64(0), b.Generation())
	assert.Empty(t, m.status)
}

func TestBoardModel_ToggleAndDelete(t *testing.T) {
	m, b, _ := newTestModel(t)
	m = addTask(m, "first")
	m = addTask(m, "second")
	m = toList(m)

	m, cmd := send(m, keyDown, keySpace)
	require.NotNil(t, cmd)
	tasks := b.Tasks(today)
	assert.False(t, tasks[0].Completed)
	assert.True(t, tasks[1].Completed)

	m, _ = send(m, runes("d"))
	tasks = b.Tasks(today)
	require.Len(t, tasks, 1)
	assert.Equal(t, "first", tasks[0].Text)
	assert.Equal(t, 0, m.cursor, "cursor stays on a row")

	_, _ = send(m, runes("d"))
	assert.Empty(t, b.Dates())
}

func TestBoardModel_Timer(t *testing.T) {
	m, b, _ := newTestModel(t)
	m = addTask(m, "study")
	id := b.Tasks(today)[0].ID
	m = toList(m)

	m, cmd := send(m, runes("s"))
	require.NotNil(t, cmd, "starting a timer starts the tick loop")
	assert.True(t, m.ticking)

	m, cmd = send(m, tickMsg(testNow), tickMsg(testNow))
	assert.NotNil(t, cmd)
	st, _ := b.Timer(id)
	assert.Equal(t, int64(2), st.Elapsed)

	m, _ = send(m, runes("s"))
	m, cmd = send(m, tickMsg(testNow))
	assert.Nil(t, cmd, "loop ends once nothing runs")
	assert.False(t, m.ticking)
	st, _ = b.Timer(id)
	assert.Equal(t, int64(2), st.Elapsed)
	assert.Contains(t, m.View(), "00:00:02")

	m, _ = send(m, runes("x"))
	_, ok := b.Timer(id)
	assert.False(t, ok)

	// a second running timer shares the loop
	m = addTaskFromList(m, "other")
	m, _ = send(m, runes("s"))
	m, cmd = send(m, keyDown, runes("s"))
	assert.Nil(t, cmd, "loop already running")
	_, _ = send(m, tickMsg(testNow))
	assert.Equal(t, int64(2), b.TotalFor(today), "both timers advanced once")
}

func addTaskFromList(m BoardModel, text string) BoardModel {
	m, _ = send(m, keyTab)
	m = addTask(m, text)
	return toList(m)
}

func TestBoardModel_Edit(t *testing.T) {
	m, b, _ := newTestModel(t)
	m = addTask(m, "Write report")
	m = toList(m)

	m, _ = send(m, runes("e"))
	assert.True(t, m.editing())

	m, _ = send(m, runes(" now"), keyEnter)
	assert.False(t, m.editing())
	assert.Equal(t, "Write report now", b.Tasks(today)[0].Text)

	// esc discards
	m, _ = send(m, runes("e"), runes(" later"), keyEsc)
	assert.Equal(t, "Write report now", b.Tasks(today)[0].Text)

	// clearing the text and committing leaves the task alone
	m, _ = send(m, runes("e"))
	m.editor.SetValue("  ")
	m, _ = send(m, keyEnter)
	assert.Equal(t, "Write report now", b.Tasks(today)[0].Text)

	// moving away commits
	m, _ = send(m, runes("e"), runes("!"), keyUp)
	assert.False(t, m.editing())
	assert.Equal(t, "Write report now!", b.Tasks(today)[0].Text)
}

func TestBoardModel_EditCompletedRejected(t *testing.T) {
	m, b, _ := newTestModel(t)
	m = addTask(m, "done")
	m = toList(m)

	m, _ = send(m, keySpace, runes("e"))
	assert.False(t, m.editing())
	assert.True(t, m.statusErr)
	assert.Equal(t, "done", b.Tasks(today)[0].Text)
}

func TestBoardModel_TypingInInputIgnoresListKeys(t *testing.T) {
	m, b, _ := newTestModel(t)
	m, _ = send(m, runes("q"), runes("d"), runes("s"))
	assert.Equal(t, "qds", m.text.Value())
	assert.Equal(t, 0, b.Count())
}

func TestBoardModel_View(t *testing.T) {
	m, _, _ := newTestModel(t)
	view := m.View()
	assert.Contains(t, view, "Daily To-Do List")
	assert.Contains(t, view, "No tasks yet. Add some!")
	assert.Contains(t, view, "IST")

	m, _ = send(m, runes("Write report"), keyTab, runes("14:30"), keyEnter)
	view = m.View()
	assert.Contains(t, view, "Today - Sunday, 18 October 2026")
	assert.Contains(t, view, "Total Study Time 0m")
	assert.Contains(t, view, "Write report")
	assert.Contains(t, view, "2:30 PM IST")
	assert.Contains(t, view, "0 of 1 done")
}

func TestBoardModel_UnsavedIndicator(t *testing.T) {
	m, _, _ := newTestModel(t)
	assert.NotContains(t, m.View(), "unsaved changes")

	m, cmd := send(m, runes("Write report"), keyEnter)
	require.NotNil(t, cmd)
	assert.Contains(t, m.View(), "unsaved changes")

	m, _ = send(m, cmd())
	assert.NotContains(t, m.View(), "unsaved changes")
}

func TestBoardModel_PanelFollowsWindowWidth(t *testing.T) {
	m, _, _ := newTestModel(t)
	m, _ = send(m, tea.WindowSizeMsg{Width: 80, Height: 24})
	assert.Equal(t, 80, m.width)

	header := strings.SplitN(m.View(), "\n", 2)[0]
	assert.Equal(t, 80, lipgloss.Width(header))
}

func TestBoardModel_ConfigReload(t *testing.T) {
	m, b, _ := newTestModel(t)
	m, _ = send(m, ConfigChangedMsg{Offset: -10 * time.Hour, ZoneLabel: "HST"})

	assert.Equal(t, "2026-10-17", b.Today())
	assert.Equal(t, "HST", m.zoneLabel)
	assert.Contains(t, m.View(), "UTC-10:00")
}

func TestBoardModel_SaveFailureShown(t *testing.T) {
	m, _, _ := newTestModel(t)
	m, _ = send(m, savedMsg{gen: 3, err: assert.AnError})
	assert.True(t, m.statusErr)
	assert.Contains(t, m.status, "Save failed")
}

func TestBoardModel_RolloverReschedules(t *testing.T) {
	m, _, _ := newTestModel(t)
	_, cmd := send(m, rolloverMsg(testNow))
	assert.NotNil(t, cmd)
}

func TestBoardModel_QuitSaves(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = toList(m)
	_, cmd := send(m, runes("q"))
	assert.NotNil(t, cmd)
}

func TestRenderBoard(t *testing.T) {
	b, _ := newTestBoard(t)
	_, err := b.Add(board.NewTask{Text: "Write report", Time: "09:30", Important: true})
	require.NoError(t, err)
	done, err := b.Add(board.NewTask{Text: "Read"})
	require.NoError(t, err)
	_, err = b.Toggle(today, done.ID)
	require.NoError(t, err)

	var out bytes.Buffer
	RenderBoard(&out, b, ListOptions{ZoneLabel: "IST", Locale: "en"})
	s := out.String()
	assert.Contains(t, s, "2 tasks")
	assert.Contains(t, s, "Today - Sunday, 18 October 2026")
	assert.Contains(t, s, "Write report")
	assert.Contains(t, s, "9:30 AM IST")
	assert.Contains(t, s, "No time set")
	assert.Contains(t, s, "★")

	out.Reset()
	RenderBoard(&out, b, ListOptions{Date: "2026-10-01"})
	assert.Contains(t, out.String(), "No tasks yet. Add some!")
}
