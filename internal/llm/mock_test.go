package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestMockProvider_FIFO(t *testing.T) {
	boom := errors.New("boom")
	m := NewMockProvider(
		MockResponse{Content: []byte(pairJSON), Usage: Usage{InputTokens: 3, OutputTokens: 4}},
		MockResponse{Err: boom},
	)

	resp, err := m.Generate(context.Background(), Request{Prompt: "first", Schema: pairSchema})
	require.NoError(t, err)
	assert.Equal(t, 7, resp.Usage.Total())
	assert.Equal(t, "mock", resp.Model)

	_, err = m.Generate(context.Background(), Request{Prompt: "second"})
	assert.ErrorIs(t, err, boom)

	_, err = m.Generate(context.Background(), Request{Prompt: "third"})
	var unavail *ErrProviderUnavailable
	assert.True(t, errors.As(err, &unavail))

	assert.Equal(t, 3, m.CallCount())
	reqs := m.Requests()
	assert.Equal(t, "first", reqs[0].Prompt)
	assert.Equal(t, "third", reqs[2].Prompt)
}

func TestMockProvider_EnforcesSchema(t *testing.T) {
	m := NewMockProvider()
	m.Push(MockResponse{Content: []byte(`{"question":1}`)})

	_, err := m.Generate(context.Background(), Request{Schema: pairSchema})
	var invalid *ErrInvalidResponse
	assert.True(t, errors.As(err, &invalid))
}

func TestMockProvider_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m := NewMockProvider(MockResponse{Content: []byte(pairJSON)})
	_, err := m.Generate(ctx, Request{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, m.CallCount())
}

func TestWithLogging(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	m := NewMockProvider(
		MockResponse{Content: []byte(pairJSON), Usage: Usage{InputTokens: 10, OutputTokens: 5}},
		MockResponse{Err: errors.New("down")},
	)
	p := WithLogging(m, ProviderMock, zap.New(core))

	_, err := p.Generate(context.Background(), Request{Prompt: "a"})
	require.NoError(t, err)
	_, err = p.Generate(context.Background(), Request{Prompt: "b"})
	require.Error(t, err)

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "generation", entries[0].Message)
	assert.Equal(t, int64(10), entries[0].ContextMap()["input_tokens"])
	assert.Equal(t, "generation failed", entries[1].Message)
	assert.Equal(t, "mock", entries[1].ContextMap()["provider"])
	assert.Equal(t, "mock", p.ModelID())
}

func TestNewProvider(t *testing.T) {
	ctx := context.Background()

	_, err := NewProvider(ctx, Config{}, nil)
	assert.Error(t, err)

	_, err = NewProvider(ctx, Config{Provider: "bard"}, nil)
	assert.ErrorContains(t, err, "unknown LLM provider")

	_, err = NewProvider(ctx, Config{Provider: ProviderAnthropic}, nil)
	assert.ErrorContains(t, err, "API key")

	p, err := NewProvider(ctx, Config{Provider: ProviderMock}, nil)
	require.NoError(t, err)
	assert.Equal(t, "mock", p.ModelID())

	p, err = NewProvider(ctx, Config{Provider: ProviderOpenRouter, APIKey: "k"}, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "google/gemini-2.0-flash-exp", p.ModelID())

	p, err = NewProvider(ctx, Config{Provider: ProviderAnthropic, APIKey: "k", Model: "claude-sonnet"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "claude-sonnet-4-20250514", p.ModelID())
}
