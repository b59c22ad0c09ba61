package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/levelquiz/internal/source"
)

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse(args))
	return fs
}

func load(t *testing.T, file string, args ...string) (*Config, error) {
	t.Helper()
	v := New()
	require.NoError(t, BindFlags(v, newFlags(t, args...)))
	return Load(v, file)
}

func TestDefaults(t *testing.T) {
	cfg, err := load(t, "")
	require.NoError(t, err)

	assert.Equal(t, 1, cfg.Level)
	assert.Equal(t, 2*time.Second, cfg.AdvanceDelay)
	assert.Equal(t, source.KindHTTP, cfg.Source.Kind)
	assert.Equal(t, source.DefaultURL, cfg.Source.URL)
	assert.Equal(t, 10*time.Second, cfg.Source.Timeout)
	assert.Equal(t, 1.0, cfg.Source.Rate)
	assert.Equal(t, 3, cfg.Source.Burst)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Empty(t, cfg.Metrics.Addr)
}

func TestPrecedence(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "levelquiz.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
level: 4
advance_delay: 500ms
source:
  url: http://file.test/quiz
  burst: 9
log:
  file: /tmp/levelquiz.log
`), 0o644))

	t.Setenv("LEVELQUIZ_SOURCE_URL", "http://env.test/quiz")
	t.Setenv("LEVELQUIZ_SOURCE_RATE", "2.5")

	cfg, err := load(t, file, "--level", "6")
	require.NoError(t, err)

	assert.Equal(t, 6, cfg.Level, "flag beats file")
	assert.Equal(t, "http://env.test/quiz", cfg.Source.URL, "env beats file")
	assert.Equal(t, 2.5, cfg.Source.Rate)
	assert.Equal(t, 9, cfg.Source.Burst, "file beats default")
	assert.Equal(t, 500*time.Millisecond, cfg.AdvanceDelay)
	assert.Equal(t, "/tmp/levelquiz.log", cfg.Log.File)
}

func TestMissingFile(t *testing.T) {
	_, err := load(t, filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorContains(t, err, "read config")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		args []string
		err  string
	}{
		{"level zero", []string{"--level", "0"}, "level must be at least 1"},
		{"unknown kind", []string{"--source", "ftp"}, "unknown source kind"},
		{"zero rate", []string{"--source-rate", "0"}, "source.rate must be positive"},
		{"negative delay", []string{"--advance-delay", "-1s"}, "advance_delay"},
		{"llm without provider", []string{"--source", "llm"}, "no LLM provider configured"},
		{"llm without key", []string{"--source", "llm", "--llm-provider", "openai"}, "API key"},
		{"llm zero questions", []string{"--source", "llm", "--llm-provider", "mock", "--questions", "0"}, "source.questions"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := load(t, "", tt.args...)
			assert.ErrorContains(t, err, tt.err)
		})
	}
}

func TestSourceConfig(t *testing.T) {
	cfg, err := load(t, "", "--source", "llm", "--llm-provider", "mock", "--questions", "8", "--source-timeout", "3s")
	require.NoError(t, err)

	sc := cfg.SourceConfig()
	assert.Equal(t, source.KindLLM, sc.Kind)
	assert.Equal(t, 8, sc.Questions)
	assert.Equal(t, "mock", sc.LLM.Provider)
	assert.Equal(t, 3*time.Second, sc.LLM.Timeout)
}
