package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"calcpad/internal/config"
	"calcpad/internal/keypad"
	"calcpad/internal/logging"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// resetGlobals puts the package-level flag state back to defaults for one test.
func resetGlobals(t *testing.T) {
	t.Helper()
	reset := func() {
		verbose = false
		workspace = ""
		configPath = ""
		cfg = nil
		evalTrace, evalJSON = false, false
		replayWatch = false
		configForce = false
		keysRaw = false
	}
	reset()
	logger = zap.NewNop()
	t.Cleanup(reset)
}

func newTestCmd() (*cobra.Command, *bytes.Buffer) {
	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	return cmd, &buf
}

func TestEvalCmd(t *testing.T) {
	resetGlobals(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"chained", []string{"3", "+", "4", "x", "5", "="}, "35"},
		{"numeral expands", []string{"12.5", "+", "0.5", "="}, "13"},
		{"percent", []string{"50", "%"}, "0.5"},
		{"divide by zero", []string{"5", "÷", "0", "="}, "Infinity"},
		{"zero by zero", []string{"0", "/", "0", "="}, "NaN"},
		{"aliases", []string{"9", "neg", "times", "2", "eq"}, "-18"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, out := newTestCmd()
			require.NoError(t, runEval(cmd, tt.args))
			assert.Equal(t, tt.want+"\n", out.String())
		})
	}
}

func TestEvalCmd_UnknownKey(t *testing.T) {
	resetGlobals(t)

	cmd, _ := newTestCmd()
	err := runEval(cmd, []string{"1", "plus", "sqrt"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, keypad.ErrUnknownKey))
	assert.Contains(t, err.Error(), "token 3")
}

func TestEvalCmd_Trace(t *testing.T) {
	resetGlobals(t)
	evalTrace = true

	cmd, out := newTestCmd()
	require.NoError(t, runEval(cmd, []string{"7", "-", "2", "="}))

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Contains(t, lines[0], "digit(7)")
	assert.Contains(t, lines[1], "operator(subtract)")
	assert.Contains(t, lines[1], "−")
	assert.Contains(t, lines[3], "equals")
	assert.Equal(t, "5", lines[4])
}

func TestEvalCmd_JSON(t *testing.T) {
	resetGlobals(t)
	evalJSON = true

	cmd, out := newTestCmd()
	require.NoError(t, runEval(cmd, []string{"8", "/"}))

	var snap map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &snap))
	assert.Equal(t, "8", snap["display"])
	assert.Equal(t, "8", snap["accumulator"])
	assert.Equal(t, "divide", snap["operator"])
	assert.Equal(t, "C", snap["clear_label"])
	assert.Equal(t, float64(2), snap["seq"])
}

func TestReplayCmd(t *testing.T) {
	resetGlobals(t)
	ws := t.TempDir()
	workspace = ws

	a := filepath.Join(ws, "a.calc")
	b := filepath.Join(ws, "b.calc")
	require.NoError(t, os.WriteFile(a, []byte("3 + 4 x 5 =\n"), 0644))
	require.NoError(t, os.WriteFile(b, []byte("# half\n50 %\n"), 0644))

	cmd, out := newTestCmd()
	require.NoError(t, runReplay(cmd, []string{b, a}))
	assert.Equal(t, "b.calc: 0.5\na.calc: 35\n", out.String())
}

func TestReplayCmd_Errors(t *testing.T) {
	resetGlobals(t)
	ws := t.TempDir()

	bad := filepath.Join(ws, "bad.calc")
	require.NoError(t, os.WriteFile(bad, []byte("1 + banana\n"), 0644))

	cmd, _ := newTestCmd()
	err := runReplay(cmd, []string{bad})
	assert.ErrorIs(t, err, keypad.ErrUnknownKey)

	err = runReplay(cmd, []string{filepath.Join(ws, "missing.calc")})
	assert.ErrorContains(t, err, "failed to read script")

	replayWatch = true
	err = runReplay(cmd, []string{bad, bad})
	assert.ErrorContains(t, err, "exactly one script")
}

func TestConfigInitAndShow(t *testing.T) {
	resetGlobals(t)
	ws := t.TempDir()
	workspace = ws

	cmd, out := newTestCmd()
	require.NoError(t, runConfigInit(cmd, nil))
	assert.Contains(t, out.String(), filepath.Join(".calcpad", "config.yaml"))

	path := config.DefaultPath(ws)
	loaded, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig().Replay, loaded.Replay)

	err = runConfigInit(cmd, nil)
	assert.ErrorContains(t, err, "already exists")

	configForce = true
	require.NoError(t, runConfigInit(cmd, nil))

	out.Reset()
	require.NoError(t, runConfigShow(cmd, nil))
	assert.Contains(t, out.String(), "theme: auto")
	assert.Contains(t, out.String(), "max_parallel: 4")
}

func TestKeysMarkdown(t *testing.T) {
	md := keysMarkdown()

	assert.Contains(t, md, "[AC   ]")
	assert.Contains(t, md, "[0"+strings.Repeat(" ", 12)+"]")
	assert.Contains(t, md, "| × | operator(multiply) |")
	assert.Contains(t, md, "`times`")
	assert.Contains(t, md, "| +/- | toggle_sign |")
}

func TestKeysCmd_Raw(t *testing.T) {
	resetGlobals(t)
	keysRaw = true

	cmd, out := newTestCmd()
	require.NoError(t, runKeys(cmd, nil))
	assert.Equal(t, keysMarkdown(), out.String())
}

func TestRootCmd_EvalEndToEnd(t *testing.T) {
	resetGlobals(t)
	t.Setenv("CALCPAD_THEME", "")

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs([]string{"--workspace", t.TempDir(), "eval", "1", "+", "1", "="})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "2\n", buf.String())
	require.NotNil(t, cfg)
	assert.Equal(t, config.ThemeAuto, cfg.UI.Theme)
}

func TestRootCmd_InvalidConfig(t *testing.T) {
	resetGlobals(t)
	t.Setenv("CALCPAD_THEME", "neon")

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs([]string{"--workspace", t.TempDir(), "version"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	assert.ErrorContains(t, err, "invalid ui theme")
}

func TestRootCmd_ConfigMessagesReachLogFile(t *testing.T) {
	resetGlobals(t)
	t.Setenv("CALCPAD_THEME", "")
	t.Setenv("CALCPAD_LOG_LEVEL", "")
	t.Setenv("CALCPAD_DEBUG", "maybe")

	ws := t.TempDir()
	path := config.DefaultPath(ws)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("logging:\n  debug_mode: true\n"), 0644))

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs([]string{"--workspace", ws, "version"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
		logging.CloseAll()
		_ = logging.Initialize(ws, logging.Settings{})
	})

	require.NoError(t, rootCmd.Execute())

	matches, err := filepath.Glob(filepath.Join(ws, ".calcpad", "logs", "*_config.log"))
	require.NoError(t, err)
	require.Len(t, matches, 1)
	data, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), "loaded config from "+path)
	assert.Contains(t, string(data), `ignoring CALCPAD_DEBUG="maybe"`)
}

func TestVersionCmd(t *testing.T) {
	cmd, out := newTestCmd()
	versionCmd.Run(cmd, nil)
	assert.True(t, strings.HasPrefix(out.String(), "calcpad "+version))
}
