package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ik5/audfx/formats/wav"
	"github.com/ik5/audfx/internal/audiotest"
)

// setupTestEnv isolates the command from the user's config and environment.
func setupTestEnv(t *testing.T) string {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, k := range []string{"AUDFX_ENGINE", "AUDFX_RESAMPLER", "AUDFX_OUTPUT_PREFIX", "AUDFX_OUTPUT_DIR", "AUDFX_MAX_FILE_SIZE", "AUDFX_LOG_LEVEL"} {
		t.Setenv(k, "")
	}
	return home
}

func runCmd(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	var outBuf, errBuf bytes.Buffer
	root := NewRootCommand()
	root.SetOut(&outBuf)
	root.SetErr(&errBuf)
	root.SetArgs(args)

	err = root.Execute()
	return outBuf.String(), errBuf.String(), err
}

func writeSong(t *testing.T, dir string) string {
	t.Helper()

	data, err := wav.EncodeWAV(audiotest.SineBuffer(16000, 2, 8000, 440, 0.5))
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "song.wav")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestVersion(t *testing.T) {
	setupTestEnv(t)

	stdout, _, err := runCmd(t, "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(stdout, "audfx ") {
		t.Fatalf("expected 'audfx', got: %s", stdout)
	}

	stdout, _, err = runCmd(t, "version", "-v")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stdout, "go:") {
		t.Fatalf("verbose output lacks go version: %s", stdout)
	}
}

func TestProcessWritesOutput(t *testing.T) {
	home := setupTestEnv(t)
	input := writeSong(t, home)
	output := filepath.Join(home, "out", "karaoke.wav")

	stdout, stderr, err := runCmd(t, "process", "--pitch=-3", "-k", "--engine", "granular", "-o", output, input)
	if err != nil {
		t.Fatalf("process: %v\nstderr: %s", err, stderr)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("output missing: %v", err)
	}
	if want := 8000*2*2 + wav.HeaderSize; len(data) != want {
		t.Errorf("output is %d bytes, want %d", len(data), want)
	}

	for _, want := range []string{"Processing complete", "song.wav", "-3 semitones", "500ms"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("stdout lacks %q:\n%s", want, stdout)
		}
	}
	for _, want := range []string{"10%", "50%", "60%", "100% complete"} {
		if !strings.Contains(stderr, want) {
			t.Errorf("stderr lacks %q:\n%s", want, stderr)
		}
	}
}

func TestProcessGeneratedName(t *testing.T) {
	home := setupTestEnv(t)
	input := writeSong(t, home)
	outDir := filepath.Join(home, "generated")

	_, stderr, err := runCmd(t, "process", "-q", "--output-dir", outDir, "--prefix", "mix", input)
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if strings.Contains(stderr, "100%") {
		t.Errorf("quiet run printed progress: %q", stderr)
	}

	matches, err := filepath.Glob(filepath.Join(outDir, "mix_*.wav"))
	if err != nil || len(matches) != 1 {
		t.Fatalf("generated files = %v, %v", matches, err)
	}
}

func TestProcessConfigFile(t *testing.T) {
	home := setupTestEnv(t)
	input := writeSong(t, home)
	outDir := filepath.Join(home, "from-config")

	cfgPath := filepath.Join(home, "custom.yaml")
	cfg := "engine: granular\noutput:\n  dir: " + outDir + "\n  prefix: cfg\n"
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, _, err := runCmd(t, "--config", cfgPath, "process", "-q", "-p", "2", input); err != nil {
		t.Fatalf("process: %v", err)
	}

	matches, _ := filepath.Glob(filepath.Join(outDir, "cfg_*.wav"))
	if len(matches) != 1 {
		t.Fatalf("config output settings ignored, found %v", matches)
	}
}

func TestProcessErrors(t *testing.T) {
	home := setupTestEnv(t)
	input := writeSong(t, home)

	notAudio := filepath.Join(home, "notes")
	if err := os.WriteFile(notAudio, []byte("just some text"), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no input", []string{"process"}, "accepts 1 arg"},
		{"bad engine", []string{"process", "--engine", "vocoder", input}, "unknown pitch engine"},
		{"bad resampler", []string{"process", "--resampler", "sinc", input}, "unknown duration resampler"},
		{"not audio", []string{"process", notAudio}, "Please select a valid audio file"},
		{"missing file", []string{"process", filepath.Join(home, "nope.wav")}, "no such file"},
		{"missing config", []string{"--config", filepath.Join(home, "nope.yaml"), "process", input}, "nope.yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := runCmd(t, tt.args...)
			if err == nil {
				t.Fatal("command succeeded")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q lacks %q", err, tt.want)
			}
		})
	}
}

func TestInspect(t *testing.T) {
	home := setupTestEnv(t)
	input := writeSong(t, home)

	stdout, _, err := runCmd(t, "inspect", input)
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}

	for _, want := range []string{"song.wav", "audio/wave", "16,000 Hz", "8,000", "500ms", "31 KiB"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("inspect output lacks %q:\n%s", want, stdout)
		}
	}
}

func TestConfigInitAndShow(t *testing.T) {
	home := setupTestEnv(t)
	path := filepath.Join(home, ".audfx", "config.yaml")

	stdout, _, err := runCmd(t, "config", "init")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(stdout, path) {
		t.Errorf("init output lacks %q: %s", path, stdout)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not written: %v", err)
	}

	if _, _, err := runCmd(t, "config", "init"); err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("second init error = %v, want already exists", err)
	}

	if err := os.WriteFile(path, []byte("engine: granular\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	stdout, _, err = runCmd(t, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	for _, want := range []string{"granular", "cubic", "audfx_processed", "50 MiB", "info"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("show output lacks %q:\n%s", want, stdout)
		}
	}

	if _, _, err := runCmd(t, "config", "init", "--force"); err != nil {
		t.Fatalf("config init --force: %v", err)
	}
	stdout, _, err = runCmd(t, "config", "show")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stdout, "wsola") {
		t.Errorf("forced init did not restore defaults:\n%s", stdout)
	}
}

func TestProgressLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		percent int
		want    string
	}{
		{0, "  0% start"},
		{50, " 50% start"},
		{100, "100% start"},
		{150, "100% start"},
	}

	for _, tt := range tests {
		if got := progressLine(tt.percent, "start"); !strings.HasSuffix(got, tt.want) {
			t.Errorf("progressLine(%d) = %q, want suffix %q", tt.percent, got, tt.want)
		}
	}
}
