package metrics

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/levelquiz/internal/quiz"
)

func TestObserveFetch(t *testing.T) {
	m := New()
	m.ObserveFetch(120*time.Millisecond, ResultOK)
	m.ObserveFetch(2*time.Second, ResultNetwork)
	m.ObserveFetch(time.Second, ResultOK)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.loads.WithLabelValues(ResultOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.loads.WithLabelValues(ResultNetwork)))
	assert.Equal(t, 1, testutil.CollectAndCount(m.fetchDuration))
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveFetch(time.Second, ResultOK)
		m.Observer()(quiz.Snapshot{State: quiz.StateCompleted})
	})
}

func TestObserver(t *testing.T) {
	m := New()
	obs := m.Observer()

	for _, s := range []quiz.Snapshot{
		{State: quiz.StateLoading},
		{State: quiz.StateAwaitingSelection},
		{State: quiz.StateAwaitingSelection, Pending: 1},
		{State: quiz.StateAnswerRevealed, LastCorrect: true},
		{State: quiz.StateAwaitingSelection},
		{State: quiz.StateAnswerRevealed, LastCorrect: false},
		{State: quiz.StateCompleted},
		{State: quiz.StateLoading},
		{State: quiz.StateCompleted},
	} {
		obs(s)
	}

	assert.Equal(t, 1.0, testutil.ToFloat64(m.answers.WithLabelValues("true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.answers.WithLabelValues("false")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.levelsCompleted))
}

func TestObserverWithEngine(t *testing.T) {
	m := New()
	src := quiz.SourceFunc(func(_ context.Context, _ int) ([]quiz.Question, error) {
		return []quiz.Question{{Prompt: "2+2?", Answers: []string{"3", "4"}, CorrectIndex: 1}}, nil
	})
	e := quiz.NewEngine(src, quiz.WithObserver(m.Observer()))

	load, err := e.Start(1)
	require.NoError(t, err)
	require.True(t, e.Complete(load.Run(context.Background())))
	require.NoError(t, e.SelectAnswer(1))
	require.NoError(t, e.Submit())
	require.NoError(t, e.AdvanceQuestion())

	assert.Equal(t, 1.0, testutil.ToFloat64(m.answers.WithLabelValues("true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.levelsCompleted))
}

func TestHandler(t *testing.T) {
	m := New()
	m.ObserveFetch(time.Second, ResultMalformed)
	srv := httptest.NewServer(m.Handler())
	t.Cleanup(srv.Close)

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body strings.Builder
	_, err = io.Copy(&body, resp.Body)
	require.NoError(t, err)
	assert.Contains(t, body.String(), `levelquiz_loads_total{result="malformed"} 1`)

	resp, err = http.Post(srv.URL+"/metrics", "text/plain", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}
