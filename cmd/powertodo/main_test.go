//nolint:testpackage // Tests require internal access for thorough testing
package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	todoerrors "github.com/abatilo/powertodo/internal/errors"
	"github.com/abatilo/powertodo/internal/storage"
)

type harness struct {
	t       *testing.T
	dataDir string
	cfgPath string
	now     time.Time
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	dir := t.TempDir()
	return &harness{
		t:       t,
		dataDir: filepath.Join(dir, "data"),
		cfgPath: filepath.Join(dir, "config.yaml"),
		now:     time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC),
	}
}

// run executes one command line against the harness profile and returns
// stdout, stderr and the command error.
func (h *harness) run(stdin string, args ...string) (string, string, error) {
	h.t.Helper()
	var out, errOut bytes.Buffer
	a := &app{
		in:     strings.NewReader(stdin),
		out:    &out,
		errOut: &errOut,
		now:    func() time.Time { return h.now },
	}
	cmd := newRootCmd(a)
	cmd.SetArgs(append([]string{"--config", h.cfgPath, "--data-dir", h.dataDir}, args...))
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func writeConfig(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

type taskOut struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Category  string `json:"category"`
	Completed bool   `json:"completed"`
}

func (h *harness) addJSON(args ...string) taskOut {
	h.t.Helper()
	out, _, err := h.run("", append([]string{"--json", "add"}, args...)...)
	if err != nil {
		h.t.Fatalf("add %v: %v", args, err)
	}
	var got taskOut
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		h.t.Fatalf("add output is not JSON: %v\n%s", err, out)
	}
	return got
}

func (h *harness) listJSON(args ...string) []taskOut {
	h.t.Helper()
	out, _, err := h.run("", append([]string{"--json", "list"}, args...)...)
	if err != nil {
		h.t.Fatalf("list %v: %v", args, err)
	}
	var got []taskOut
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		h.t.Fatalf("list output is not JSON: %v\n%s", err, out)
	}
	return got
}

func TestAddListToggleFlow(t *testing.T) {
	h := newHarness(t)

	essay := h.addJSON("Essay", "-c", "academic", "-p", "urgent", "--deadline", "2024-06-01")
	gym := h.addJSON("Gym", "-c", "personal", "-p", "low")
	if essay.ID == "" || essay.ID == gym.ID {
		t.Fatalf("ids %q and %q", essay.ID, gym.ID)
	}

	if got := h.listJSON(); len(got) != 2 || got[0].Title != "Essay" || got[1].Title != "Gym" {
		t.Fatalf("list = %+v", got)
	}

	if _, _, err := h.run("", "done", gym.ID); err != nil {
		t.Fatalf("done: %v", err)
	}
	pending := h.listJSON("--status", "pending")
	if len(pending) != 1 || pending[0].ID != essay.ID {
		t.Errorf("pending = %+v", pending)
	}
	completed := h.listJSON("--status", "completed")
	if len(completed) != 1 || completed[0].ID != gym.ID {
		t.Errorf("completed = %+v", completed)
	}
	if got := h.listJSON("-c", "academic"); len(got) != 1 || got[0].ID != essay.ID {
		t.Errorf("academic = %+v", got)
	}

	out, _, err := h.run("", "stats")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if !strings.Contains(out, "50%") {
		t.Errorf("stats output missing progress:\n%s", out)
	}
}

func TestAddRequiresCategoryAndPriority(t *testing.T) {
	h := newHarness(t)

	tests := []struct {
		name  string
		args  []string
		field string
	}{
		{"missing category", []string{"add", "x", "-p", "low"}, "category"},
		{"missing priority", []string{"add", "x", "-c", "personal"}, "priority"},
		{"blank title", []string{"add", "  ", "-c", "personal", "-p", "low"}, "title"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := h.run("", tt.args...)
			var verr todoerrors.ValidationError
			if !errors.As(err, &verr) || verr.Field != tt.field {
				t.Errorf("err = %v, want ValidationError on %s", err, tt.field)
			}
		})
	}
	if got := h.listJSON(); len(got) != 0 {
		t.Errorf("rejected adds left %d tasks", len(got))
	}
}

func TestRemoveConfirmation(t *testing.T) {
	h := newHarness(t)
	added := h.addJSON("Essay", "-c", "academic", "-p", "high")

	_, _, err := h.run("n\n", "rm", added.ID)
	var aerr todoerrors.AbortedError
	if !errors.As(err, &aerr) {
		t.Fatalf("declined rm err = %v, want AbortedError", err)
	}
	if got := h.listJSON(); len(got) != 1 {
		t.Fatalf("declined rm removed the task")
	}

	if _, _, err = h.run("y\n", "rm", added.ID); err != nil {
		t.Fatalf("confirmed rm: %v", err)
	}
	if got := h.listJSON(); len(got) != 0 {
		t.Errorf("task still listed after rm: %+v", got)
	}
}

func TestPrune(t *testing.T) {
	h := newHarness(t)
	a := h.addJSON("a", "-c", "personal", "-p", "low")
	h.addJSON("b", "-c", "personal", "-p", "low")
	if _, _, err := h.run("", "toggle", a.ID); err != nil {
		t.Fatal(err)
	}

	out, _, err := h.run("", "prune")
	if err != nil {
		t.Fatalf("prune: %v", err)
	}
	if !strings.Contains(out, "Pruned 1") {
		t.Errorf("prune output = %q", out)
	}
	if got := h.listJSON(); len(got) != 1 || got[0].Title != "b" {
		t.Errorf("after prune = %+v", got)
	}
}

func TestUnknownTask(t *testing.T) {
	h := newHarness(t)
	for _, args := range [][]string{{"show", "nope"}, {"toggle", "nope"}, {"rm", "-y", "nope"}} {
		_, _, err := h.run("", args...)
		var nf todoerrors.TaskNotFoundError
		if !errors.As(err, &nf) {
			t.Errorf("%v: err = %v, want TaskNotFoundError", args, err)
		}
	}
}

func TestProfileCommands(t *testing.T) {
	h := newHarness(t)

	out, _, err := h.run("", "profile")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Theme:  dark") {
		t.Errorf("default profile = %q", out)
	}

	if out, _, err = h.run("", "name", "  Ada  "); err != nil || !strings.Contains(out, "Welcome, Ada!") {
		t.Errorf("name: %q %v", out, err)
	}
	if out, _, err = h.run("", "name", "Grace"); err != nil || !strings.Contains(out, "from Ada to Grace") {
		t.Errorf("rename: %q %v", out, err)
	}
	if _, _, err = h.run("", "theme", "toggle"); err != nil {
		t.Fatal(err)
	}

	out, _, err = h.run("", "profile")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Grace") || !strings.Contains(out, "Theme:  light") {
		t.Errorf("profile = %q", out)
	}

	_, _, err = h.run("", "name", "   ")
	var nerr todoerrors.EmptyNameError
	if !errors.As(err, &nerr) {
		t.Errorf("blank name err = %v", err)
	}
}

func TestResetPreferencesKeepsTasks(t *testing.T) {
	h := newHarness(t)
	h.addJSON("a", "-c", "personal", "-p", "low")
	if _, _, err := h.run("", "name", "Ada"); err != nil {
		t.Fatal(err)
	}

	if _, _, err := h.run("", "reset", "--preferences", "-y"); err != nil {
		t.Fatal(err)
	}
	if got := h.listJSON(); len(got) != 1 {
		t.Errorf("tasks after preference reset = %d", len(got))
	}
	out, _, _ := h.run("", "profile")
	if strings.Contains(out, "Ada") {
		t.Errorf("name survived reset: %q", out)
	}

	if _, _, err := h.run("", "reset", "-y"); err != nil {
		t.Fatal(err)
	}
	if got := h.listJSON(); len(got) != 0 {
		t.Errorf("tasks after full reset = %d", len(got))
	}
}

func TestCodecFromConfig(t *testing.T) {
	h := newHarness(t)
	if _, _, err := h.run("", "config", "--save"); err != nil {
		t.Fatal(err)
	}

	out, _, err := h.run("", "config")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "codec: json") {
		t.Errorf("config output = %q", out)
	}

	for _, codec := range []string{"yaml", "msgpack"} {
		t.Run(codec, func(t *testing.T) {
			h := newHarness(t)
			writeConfig(t, h.cfgPath, "codec: "+codec+"\n")
			added := h.addJSON("x", "-c", "personal", "-p", "low")
			if got := h.listJSON(); len(got) != 1 || got[0].ID != added.ID {
				t.Errorf("list = %+v", got)
			}
		})
	}
}

func TestWriteFailureIsAWarning(t *testing.T) {
	h := newHarness(t)
	// A regular file where the profile directory should be makes every write fail.
	writeConfig(t, h.dataDir, "")

	out, errOut, err := h.run("", "add", "x", "-c", "personal", "-p", "low")
	if err != nil {
		t.Fatalf("add err = %v, want nil", err)
	}
	if !strings.Contains(out, "x") {
		t.Errorf("stdout = %q", out)
	}
	if !strings.Contains(errOut, "Warning: could not save "+storage.TasksKey) {
		t.Errorf("stderr = %q", errOut)
	}
}

func TestEphemeralLeavesNothingBehind(t *testing.T) {
	h := newHarness(t)
	if _, _, err := h.run("", "--ephemeral", "add", "x", "-c", "personal", "-p", "low"); err != nil {
		t.Fatal(err)
	}
	if got := h.listJSON(); len(got) != 0 {
		t.Errorf("ephemeral add persisted: %+v", got)
	}
}
