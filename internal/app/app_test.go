package app

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/levelquiz/internal/metrics"
	qz "github.com/abhisek/levelquiz/internal/quiz"
	"github.com/abhisek/levelquiz/internal/router"
	"github.com/abhisek/levelquiz/internal/screens/summary"
)

func oneQuestion(_ context.Context, _ int) ([]qz.Question, error) {
	return []qz.Question{{Prompt: "Sky colour?", Answers: []string{"Blue", "Green"}, CorrectIndex: 0}}, nil
}

func step(t *testing.T, m tea.Model, msg tea.Msg) (tea.Model, tea.Cmd) {
	t.Helper()
	return m.Update(msg)
}

func TestAppFlow(t *testing.T) {
	m := newAppModel(context.Background(), Options{
		Source:     qz.SourceFunc(oneQuestion),
		StartLevel: 3,
		Metrics:    metrics.New(),
	})

	var model tea.Model = m
	model, _ = step(t, model, tea.WindowSizeMsg{Width: 100, Height: 30})
	assert.Equal(t, 100, model.(AppModel).width)

	load := m.Init()
	require.NotNil(t, load)
	_, cmd := step(t, model, load())
	assert.Nil(t, cmd)

	active := m.router.Active()
	assert.Equal(t, "Level 3 > Question 1", active.Title())
	body := m.router.View(100, 24)
	assert.Contains(t, body, "Sky colour?")
	assert.Contains(t, body, "Check Answer")

	_, cmd = step(t, model, tea.KeyPressMsg{Code: '1', Text: "1"})
	assert.Nil(t, cmd)
	_, cmd = step(t, model, tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd, "submit schedules the advance timer")
	assert.Contains(t, m.router.View(100, 24), "Blue - Correct")
}

func TestCtrlCQuits(t *testing.T) {
	m := newAppModel(context.Background(), Options{Source: qz.SourceFunc(oneQuestion)})
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestEscPopsOnlyAboveRoot(t *testing.T) {
	m := newAppModel(context.Background(), Options{Source: qz.SourceFunc(oneQuestion)})

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	assert.Nil(t, cmd)

	m.router.Push(summary.New(qz.Result{Level: 1}))
	_, cmd = m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	require.NotNil(t, cmd)
	assert.Equal(t, router.PopScreenMsg{}, cmd())
}
