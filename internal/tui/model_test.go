package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Veraticus/mathnote/internal/model"
	"github.com/Veraticus/mathnote/internal/testutil"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestModel(t *testing.T) (Model, *testutil.TestDB) {
	t.Helper()
	db := testutil.SetupTestDB(t)

	cfg := defaultConfig()
	WithStorage(db.Storage)(&cfg)
	WithClock(func() time.Time { return testutil.Day(2024, 3, 15) })(&cfg)
	return newModel(context.Background(), cfg), db
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	result, ok := next.(Model)
	require.True(t, ok)
	return result, cmd
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return m
}

func TestQuickEntry_LivePreview(t *testing.T) {
	m, _ := newTestModel(t)
	assert.Equal(t, StateEditing, m.state)
	assert.Contains(t, m.View(), "Type a note like")

	m = typeText(t, m, "Sold 50*8 to Shop")
	require.NotNil(t, m.parsed)
	assert.Equal(t, model.TypeSale, m.parsed.Type)
	assert.True(t, m.parsed.Amount.Equal(testutil.Dec(t, "400")))
	assert.Contains(t, m.View(), "₹400.00")
	assert.Contains(t, m.View(), "Press Enter to review")
}

func TestQuickEntry_ConfirmAndSave(t *testing.T) {
	m, db := newTestModel(t)
	m = typeText(t, m, "Spent 200 on Lunch")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, StateConfirming, m.state)
	assert.Contains(t, m.View(), "Save this entry?")

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}})
	assert.Equal(t, StateSaving, m.state)
	require.NotNil(t, cmd)

	msg := cmd()
	recorded, ok := msg.(recordedMsg)
	require.True(t, ok, "expected recordedMsg, got %T", msg)
	require.NotNil(t, recorded.entry.Expense)
	assert.Equal(t, model.CategoryFood, recorded.entry.Expense.Category)

	m, _ = update(t, m, msg)
	assert.Equal(t, StateEditing, m.state)
	assert.Empty(t, m.input.Value())
	assert.Nil(t, m.parsed)
	require.Len(t, m.history, 1)
	assert.Contains(t, m.View(), "Saved expense of ₹200.00")

	expenses, err := db.Storage.ListExpenses(context.Background(), model.LedgerFilter{})
	require.NoError(t, err)
	require.Len(t, expenses, 1)
	assert.Equal(t, "2024-03-15", expenses[0].Date.Format("2006-01-02"))
}

func TestQuickEntry_RejectReturnsToEditing(t *testing.T) {
	m, _ := newTestModel(t)
	m = typeText(t, m, "Lent 1000 to Ajay cash")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, StateConfirming, m.state)

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})
	assert.Nil(t, cmd)
	assert.Equal(t, StateEditing, m.state)
	assert.Equal(t, "Lent 1000 to Ajay cash", m.input.Value())
}

func TestQuickEntry_SubmitFailure(t *testing.T) {
	m, _ := newTestModel(t)
	m = typeText(t, m, "asdkfj qwer")
	assert.Nil(t, m.parsed)
	assert.Contains(t, m.View(), "Keep typing")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, StateEditing, m.state)
	assert.True(t, m.showFailure)
	assert.Contains(t, m.View(), "Try something like")

	m = typeText(t, m, " 500")
	assert.False(t, m.showFailure)
}

func TestQuickEntry_SaveError(t *testing.T) {
	m, _ := newTestModel(t)
	m = typeText(t, m, "Sold 500 to Rahul UPI")
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m.state = StateSaving

	m, _ = update(t, m, errorMsg{err: errors.New("disk full")})
	assert.Equal(t, StateEditing, m.state)
	assert.Contains(t, m.View(), "Could not save: disk full")
	assert.Equal(t, "Sold 500 to Rahul UPI", m.input.Value())
}

func TestQuickEntry_Keys(t *testing.T) {
	tests := []struct {
		name     string
		msg      tea.KeyMsg
		state    State
		wantQuit bool
	}{
		{name: "ctrl+c while editing", msg: tea.KeyMsg{Type: tea.KeyCtrlC}, state: StateEditing, wantQuit: true},
		{name: "esc while editing", msg: tea.KeyMsg{Type: tea.KeyEsc}, state: StateEditing, wantQuit: true},
		{name: "ctrl+c while saving", msg: tea.KeyMsg{Type: tea.KeyCtrlC}, state: StateSaving, wantQuit: true},
		{name: "esc while confirming goes back", msg: tea.KeyMsg{Type: tea.KeyEsc}, state: StateConfirming},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newTestModel(t)
			m.state = tt.state

			m, _ = update(t, m, tt.msg)
			assert.Equal(t, tt.wantQuit, m.quitting)
			if tt.wantQuit {
				assert.Empty(t, m.View())
			}
		})
	}
}

func TestQuickEntry_Clear(t *testing.T) {
	m, _ := newTestModel(t)
	m = typeText(t, m, "Sold 500")
	require.NotNil(t, m.parsed)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlU})
	assert.Empty(t, m.input.Value())
	assert.Nil(t, m.parsed)
}

func TestQuickEntry_WindowResize(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Equal(t, 120, m.width)
	assert.Equal(t, 116, m.input.Width)
}

func TestRun_RequiresStorage(t *testing.T) {
	assert.ErrorIs(t, Run(context.Background()), ErrNoStorage)
}
