package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/specialistvlad/cargogo/internal/compiler"
	"github.com/specialistvlad/cargogo/internal/hcl"
	"github.com/specialistvlad/cargogo/internal/testutil"
	"github.com/specialistvlad/cargogo/internal/yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const corridorHCL = `
maze "corridor" {
  width   = 7
  height  = 3
  start   = [1, 1]
  heading = "right"
  goal    = [5, 1]

  wall   { rect = [[0, 0], [6, 0]] }
  wall   { rect = [[0, 2], [6, 2]] }
  wall   { pos = [0, 1] }
  wall   { pos = [6, 1] }
  credit { pos = [3, 1] }
}
`

const boxYAML = `name: box
width: 3
height: 3
start: [1, 1]
heading: up
goal: [1, 1]
fills:
  - {type: wall, rect: [[0, 0], [2, 0]]}
  - {type: wall, rect: [[0, 2], [2, 2]]}
  - {type: wall, pos: [0, 1]}
  - {type: wall, pos: [2, 1]}
`

// setupApp writes the levels and program into a temp dir and builds an App
// with a debug logger writing into the returned buffer.
func setupApp(t *testing.T, program string, mutate func(*Config)) (*App, *testutil.SafeBuffer) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a_corridor.hcl"), []byte(corridorHCL), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b_box.yaml"), []byte(boxYAML), 0o644))
	programPath := filepath.Join(t.TempDir(), "program.txt")
	require.NoError(t, os.WriteFile(programPath, []byte(program), 0o644))

	cfg, err := NewConfig(Config{
		MazePath:    dir,
		ProgramPath: programPath,
		Delay:       time.Millisecond,
		LogLevel:    "debug",
		LogFormat:   "text",
	})
	require.NoError(t, err)
	if mutate != nil {
		mutate(cfg)
	}

	buf := &testutil.SafeBuffer{}
	a := NewApp(buf, cfg, hcl.NewLoader(), yaml.NewLoader())

	t.Cleanup(func() {
		if os.Getenv("CARGOGO_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), buf.String())
		}
	})
	return a, buf
}

func runWithTimeout(t *testing.T, a *App) error {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err := a.Run(ctx)
	require.NoError(t, ctx.Err(), "run must finish on its own")
	return err
}

func TestNewApp_SelectsLevels(t *testing.T) {
	t.Parallel()
	a, _ := setupApp(t, "DRIVE", nil)
	assert.Equal(t, "corridor", a.Level().Name, "first level by path order")
	assert.Equal(t, []string{"corridor", "box"}, a.model.Names())

	b, _ := setupApp(t, "DRIVE", func(c *Config) { c.Level = "box" })
	assert.Equal(t, "box", b.Level().Name)
}

func TestNewApp_PanicsOnUnknownLevel(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() {
		setupApp(t, "DRIVE", func(c *Config) { c.Level = "missing" })
	})
}

func TestRun_ReachesFinish(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	a, buf := setupApp(t, "UNTIL ON FINISH:\nIF ON CREDIT: PICK UP CREDIT\nDRIVE\nEND", nil)

	// --- Act ---
	err := runWithTimeout(t, a)

	// --- Assert ---
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "The car reached the finish.")
	assert.Contains(t, out, "credits: 1/1")
	assert.Contains(t, out, "name=reached-finish")
}

func TestRun_ProgramEndsEarly(t *testing.T) {
	t.Parallel()
	a, buf := setupApp(t, "DRIVE\nDRIVE", nil)

	err := runWithTimeout(t, a)

	require.ErrorIs(t, err, ErrFinishNotReached)
	assert.Contains(t, err.Error(), "(3,1)")
	assert.Contains(t, buf.String(), "The program ended before the finish.")
}

func TestRun_CompileError(t *testing.T) {
	t.Parallel()
	a, _ := setupApp(t, "DRIVE\nTURN LEF", nil)

	err := runWithTimeout(t, a)

	var perr *compiler.ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 2, perr.Line)
	assert.Equal(t, "TURN LEFT", perr.Suggestion)
}

func TestRun_MaxStepsStopsEndlessLoop(t *testing.T) {
	t.Parallel()
	a, buf := setupApp(t, "WHILE WALL AHEAD:\nTURN LEFT\nEND", func(c *Config) {
		c.Level = "box"
		c.MaxSteps = 25
	})

	err := runWithTimeout(t, a)

	require.ErrorIs(t, err, ErrFinishNotReached)
	assert.Contains(t, err.Error(), "stopped after 25 steps")
	assert.Contains(t, buf.String(), "Stopped after 25 steps.")
}

func TestRun_StepMode(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	a, buf := setupApp(t, "DRIVE\nTURN LEFT\nDRIVE", func(c *Config) { c.StepMode = true })
	a.WithInput(strings.NewReader("\n\n-\nq\n"))

	// --- Act ---
	err := runWithTimeout(t, a)

	// --- Assert ---
	require.ErrorIs(t, err, ErrFinishNotReached)
	out := buf.String()
	assert.Contains(t, out, "  TURN LEFT\n")
	assert.Contains(t, out, "car at (2,1) facing right, 2 pending")
	assert.Contains(t, out, "car at (2,1) facing up, 1 pending")
	assert.Contains(t, out, "delay 2ms")
	assert.Contains(t, out, "Stopped before the finish.")
}

func TestRun_ProgramFromInput(t *testing.T) {
	t.Parallel()
	a, _ := setupApp(t, "", func(c *Config) { c.ProgramPath = "-" })
	a.WithInput(strings.NewReader("DRIVE\nDRIVE\nDRIVE\nDRIVE\n"))

	require.NoError(t, runWithTimeout(t, a))
}

func TestStatusHandler(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	a, _ := setupApp(t, "DRIVE\nDRIVE", nil)
	srv := httptest.NewServer(a.statusMux())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/status")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode, "no session before Run")

	// --- Act ---
	_ = runWithTimeout(t, a)
	resp, err = http.Get(srv.URL + "/status")
	require.NoError(t, err)
	defer resp.Body.Close()

	// --- Assert ---
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var st Status
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&st))
	assert.Equal(t, "corridor", st.Level)
	assert.Equal(t, 3, st.Session.Position.X)
	assert.Equal(t, 2, st.Score.Executed)
	assert.Equal(t, 1, st.Score.Credits)

	health, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer health.Body.Close()
	assert.Equal(t, http.StatusOK, health.StatusCode)
}

func TestNewConfig_Validation(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{name: "no maze", cfg: Config{ProgramPath: "p"}, wantErr: "MazePath"},
		{name: "no program", cfg: Config{MazePath: "m"}, wantErr: "ProgramPath"},
		{name: "stdin and step", cfg: Config{MazePath: "m", ProgramPath: "-", StepMode: true}, wantErr: "step mode"},
		{name: "stdin and watch", cfg: Config{MazePath: "m", ProgramPath: "-", Watch: true}, wantErr: "watch stdin"},
		{name: "negative steps", cfg: Config{MazePath: "m", ProgramPath: "p", MaxSteps: -1}, wantErr: "MaxSteps"},
		{name: "bad port", cfg: Config{MazePath: "m", ProgramPath: "p", StatusPort: 70000}, wantErr: "StatusPort"},
		{name: "ok", cfg: Config{MazePath: "m", ProgramPath: "p"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := NewConfig(tc.cfg)
			if tc.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.cfg, *cfg)
		})
	}
}
