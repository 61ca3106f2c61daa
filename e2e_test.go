//go:build e2e

package main

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

var cxBin string

func TestMain(m *testing.M) {
	tmp, err := os.MkdirTemp("", "cxgraph-e2e-*")
	if err != nil {
		panic("failed to create temp dir: " + err.Error())
	}
	defer os.RemoveAll(tmp)

	cxBin = filepath.Join(tmp, "cxgraph")
	build := exec.Command("go", "build", "-ldflags", "-X github.com/msalah0e/cxgraph/cmd.version=0.3.0-test", "-o", cxBin, ".")
	build.Stderr = os.Stderr
	if err := build.Run(); err != nil {
		panic("failed to build cxgraph: " + err.Error())
	}

	os.Exit(m.Run())
}

// fixture writes A->B (instantiation), B<->C (subpart), C->D (polysemi)
// plus an isolated E, and returns the data directory.
func fixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"constructions.json": `{
  "A": {"form": "X--is--<ADJ>", "examples": ["it is red"]},
  "B": {"form": "let alone"},
  "C": {"form": "the more X the more Y"},
  "D": {"form": "what about X"},
  "E": {"form": "lonely"}
}`,
		"relations.json": `{
  "A": {"B": {"relation": "instantiation", "direction": "uni-directional"}},
  "B": {"C": {"relation": "subpart", "direction": "bi-directional"}},
  "C": {"D": {"relation": "polysemi"}}
}`,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return dir
}

// runCx executes the cxgraph binary with home as HOME and stdin as input.
func runCx(t *testing.T, home, stdin string, args ...string) (stdout, stderr string, exitCode int) {
	t.Helper()
	cmd := exec.Command(cxBin, args...)
	cmd.Env = append(os.Environ(),
		"HOME="+home,
		"XDG_CONFIG_HOME="+filepath.Join(home, ".config"),
		"NO_COLOR=1",
	)
	cmd.Stdin = strings.NewReader(stdin)

	var outBuf, errBuf strings.Builder
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	err := cmd.Run()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		} else {
			t.Fatalf("failed to run cxgraph %v: %v", args, err)
		}
	}
	return outBuf.String(), errBuf.String(), exitCode
}

func TestE2E_Version(t *testing.T) {
	out, _, code := runCx(t, t.TempDir(), "", "--version")
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if !strings.Contains(out, "0.3.0-test") {
		t.Errorf("expected version in output, got %q", out)
	}
}

func TestE2E_SelectTree(t *testing.T) {
	data := fixture(t)
	out, _, code := runCx(t, t.TempDir(), "", "--data", data, "select", "B")
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	for _, want := range []string{"B  let alone", "instantiation <── A", "subpart <─> C", "4 constructions, 4 links"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output, got:\n%s", want, out)
		}
	}
}

func TestE2E_SelectJSONDepth(t *testing.T) {
	data := fixture(t)
	out, _, code := runCx(t, t.TempDir(), "", "--data", data, "select", "A", "--format", "json", "--depth", "1")
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	var frame struct {
		Selected  string `json:"selected"`
		Displayed struct {
			Nodes []struct {
				ID string `json:"id"`
			} `json:"nodes"`
		} `json:"displayed"`
	}
	if err := json.Unmarshal([]byte(out), &frame); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, out)
	}
	if frame.Selected != "A" || len(frame.Displayed.Nodes) != 2 {
		t.Errorf("expected A and its one neighbor, got %+v", frame)
	}
}

func TestE2E_SelectNotFound(t *testing.T) {
	data := fixture(t)
	out, _, code := runCx(t, t.TempDir(), "", "--data", data, "select", "Z")
	if code == 0 {
		t.Fatal("expected non-zero exit for unknown construction")
	}
	if !strings.Contains(out, "not found") {
		t.Errorf("expected not-found notice, got %q", out)
	}
}

func TestE2E_MissingData(t *testing.T) {
	_, _, code := runCx(t, t.TempDir(), "", "--data", t.TempDir(), "stats")
	if code == 0 {
		t.Fatal("expected non-zero exit without data files")
	}
}

func TestE2E_Random(t *testing.T) {
	data := fixture(t)
	out, _, code := runCx(t, t.TempDir(), "", "--data", data, "--seed", "7", "random", "--format", "dot")
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if !strings.HasPrefix(out, "digraph constructions {") {
		t.Errorf("expected DOT output, got %q", out)
	}
	if strings.Contains(out, `"E"`) {
		t.Error("the isolated construction must never be picked while others are connected")
	}
}

func TestE2E_Search(t *testing.T) {
	data := fixture(t)
	out, _, code := runCx(t, t.TempDir(), "", "--data", data, "search", "more")
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if !strings.Contains(out, "best match: C") {
		t.Errorf("expected C as best match, got %q", out)
	}

	_, _, code = runCx(t, t.TempDir(), "", "--data", data, "search", "zzz")
	if code == 0 {
		t.Fatal("expected non-zero exit for zero matches")
	}
}

func TestE2E_ListAndStats(t *testing.T) {
	data := fixture(t)
	out, _, code := runCx(t, t.TempDir(), "", "--data", data, "list", "--from", "C", "--limit", "2")
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if !strings.Contains(out, "Showing 2 of 5") || !strings.Contains(out, "--from E") {
		t.Errorf("unexpected list output:\n%s", out)
	}

	out, _, code = runCx(t, t.TempDir(), "", "--data", data, "stats")
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	for _, want := range []string{"Constructions", "Components", "Isolated"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in stats, got:\n%s", want, out)
		}
	}
}

func TestE2E_ExploreAndHistory(t *testing.T) {
	data := fixture(t)
	home := t.TempDir()
	out, _, code := runCx(t, home, "select A\nselect C\nshow\nmetrics\nquit\n", "--data", data, "explore")
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if !strings.Contains(out, "selected C") {
		t.Errorf("expected a frame for C, got:\n%s", out)
	}
	if !strings.Contains(out, `cxgraph_selections_total{outcome="selected"} 2`) {
		t.Errorf("expected metrics snapshot, got:\n%s", out)
	}

	out, _, code = runCx(t, home, "", "history")
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if strings.Count(out, "select ") < 2 {
		t.Errorf("expected two selections in history, got:\n%s", out)
	}
}

func TestE2E_ViewWritesPage(t *testing.T) {
	data := fixture(t)
	page := filepath.Join(t.TempDir(), "b.html")
	_, _, code := runCx(t, t.TempDir(), "", "--data", data, "view", "B", "--output", page, "--no-open")
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	html, err := os.ReadFile(page)
	if err != nil {
		t.Fatalf("page not written: %v", err)
	}
	if !strings.Contains(string(html), "<canvas") {
		t.Error("expected a canvas page")
	}
}

func TestE2E_Completion(t *testing.T) {
	out, _, code := runCx(t, t.TempDir(), "", "completion", "bash")
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if !strings.Contains(out, "cxgraph") {
		t.Error("expected completion script to mention cxgraph")
	}
}
