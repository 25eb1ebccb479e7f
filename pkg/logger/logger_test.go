package logger

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_WritesJSONToOutput(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	var buf bytes.Buffer
	l, err := Init(Options{Level: "debug", Output: &buf})
	require.NoError(t, err)

	l.Debug().Str("user", "ada").Msg("hello")
	assert.Contains(t, buf.String(), `"user":"ada"`)
	assert.Contains(t, buf.String(), `"message":"hello"`)
}

func TestInit_OnlyFirstCallApplies(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	var first, second bytes.Buffer
	_, _ = Init(Options{Output: &first})
	l, _ := Init(Options{Output: &second})

	l.Info().Msg("x")
	assert.NotEmpty(t, first.String())
	assert.Empty(t, second.String())
}

func TestInit_File(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	path := filepath.Join(t.TempDir(), "game.log")
	_, err := Init(Options{File: path})
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestGet_PanicsBeforeInit(t *testing.T) {
	Reset()
	assert.Panics(t, func() { Get() })
}

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		"DEBUG":   zerolog.DebugLevel,
		" warn ":  zerolog.WarnLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"off":     zerolog.Disabled,
		"":        zerolog.InfoLevel,
		"bogus":   zerolog.InfoLevel,
	}
	for in, want := range cases {
		assert.Equal(t, want, parseLevel(in), in)
	}
}
