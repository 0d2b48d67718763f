package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/matzehuels/boardtree/pkg/design"
	bterrors "github.com/matzehuels/boardtree/pkg/errors"
)

const testDesign = `
name = "cli"

[[nodes]]
key = "board"
[nodes.absolute]
x = 10.0
y = 10.0
layer = "TOP"

[[nodes]]
key = "reg"
parent = "board"
component = "ldo"
[nodes.relative]
x = 5.0
y = 0.0
`

const orphanDesign = `
[[nodes]]
key = "board"
[nodes.absolute]
x = 0.0
y = 0.0

[[nodes]]
key = "lost"
designator = "R"
[nodes.relative]
x = 1.0
y = 1.0
`

// runCLI executes the root command with isolated config and cache dirs.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(append(args, "--config-dir", t.TempDir()))
	err := root.Execute()
	return out.String(), err
}

// captureStatus redirects status output for the rest of the test.
func captureStatus(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := stdout
	stdout = &buf
	t.Cleanup(func() { stdout = prev })
	return &buf
}

func writeDesign(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "board.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestPlaceCommand(t *testing.T) {
	out, err := runCLI(t, "place", writeDesign(t, testDesign))
	if err != nil {
		t.Fatalf("place: %v", err)
	}

	rep, err := design.UnmarshalReport([]byte(out))
	if err != nil {
		t.Fatalf("report: %v\n%s", err, out)
	}
	reg, ok := rep.Placement("reg")
	if !ok {
		t.Fatalf("reg not placed: %+v", rep)
	}
	if reg.X != 15 || reg.Y != 10 || reg.Layer != "TOP" {
		t.Errorf("reg = %+v, want (15, 10, TOP)", reg)
	}
	if !rep.OK() {
		t.Errorf("unexpected failures: %+v", rep.Failures)
	}
}

func TestPlaceCommandOutputFile(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "placements.json")
	if _, err := runCLI(t, "place", writeDesign(t, testDesign), "-o", dst, "--no-cache"); err != nil {
		t.Fatalf("place: %v", err)
	}
	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"reg"`) {
		t.Errorf("report file missing reg:\n%s", data)
	}
}

func TestPlaceCommandStrict(t *testing.T) {
	path := writeDesign(t, orphanDesign)

	out, err := runCLI(t, "place", path)
	if err != nil {
		t.Fatalf("non-strict place should succeed: %v", err)
	}
	rep, err := design.UnmarshalReport([]byte(out))
	if err != nil {
		t.Fatal(err)
	}
	if len(rep.Failures) != 1 || rep.Failures[0].Code != bterrors.ErrCodeNoParent {
		t.Errorf("Failures = %+v, want one NO_PARENT", rep.Failures)
	}

	_, err = runCLI(t, "place", path, "--strict")
	if !bterrors.Is(err, bterrors.ErrCodeNoParent) {
		t.Errorf("strict place error = %v, want NO_PARENT", err)
	}
}

func TestPlaceCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		path string
		want bterrors.Code
	}{
		{"missing file", filepath.Join(t.TempDir(), "nope.toml"), bterrors.ErrCodeFileNotFound},
		{"bad extension", filepath.Join(t.TempDir(), "board.yaml"), bterrors.ErrCodeInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCLI(t, "place", tt.path)
			if got := bterrors.GetCode(err); got != tt.want {
				t.Errorf("code = %q, want %q (err %v)", got, tt.want, err)
			}
		})
	}
}

func TestValidateCommand(t *testing.T) {
	if _, err := runCLI(t, "validate", writeDesign(t, testDesign)); err != nil {
		t.Errorf("validate: %v", err)
	}
	if _, err := runCLI(t, "validate", writeDesign(t, orphanDesign)); err == nil {
		t.Error("validate should fail for an unanchored relative node")
	}
}

func TestValidateCommandList(t *testing.T) {
	status := captureStatus(t)
	if _, err := runCLI(t, "validate", "--list", writeDesign(t, testDesign)); err != nil {
		t.Fatalf("validate --list: %v", err)
	}

	got := status.String()
	for _, want := range []string{"is valid", "Key", "Layer", "reg", "15", "TOP", "extent"} {
		if !strings.Contains(got, want) {
			t.Errorf("status output missing %q:\n%s", want, got)
		}
	}
}

func TestValidateCommandListFailures(t *testing.T) {
	status := captureStatus(t)
	if _, err := runCLI(t, "validate", "--list", writeDesign(t, orphanDesign)); err == nil {
		t.Fatal("validate should fail")
	}
	got := status.String()
	if !strings.Contains(got, "lost") || !strings.Contains(got, string(bterrors.ErrCodeNoParent)) {
		t.Errorf("failure table missing lost/NO_PARENT:\n%s", got)
	}
}

func TestRenderCommandDOT(t *testing.T) {
	out, err := runCLI(t, "render", writeDesign(t, testDesign), "--detailed")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.HasPrefix(out, "digraph") {
		t.Errorf("output is not DOT:\n%s", out)
	}
	if !strings.Contains(out, "(15, 10") {
		t.Errorf("detailed label should carry the reg position:\n%s", out)
	}
}

func TestRenderCommandBadFormat(t *testing.T) {
	if _, err := runCLI(t, "render", writeDesign(t, testDesign), "-f", "pdf"); err == nil {
		t.Error("render should reject pdf")
	}
}

func TestCachePathCommand(t *testing.T) {
	out, err := runCLI(t, "cache", "path")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(strings.TrimSpace(out), appName) {
		t.Errorf("cache path = %q, want suffix %q", out, appName)
	}
}

func TestCompletionCommand(t *testing.T) {
	out, err := runCLI(t, "completion", "bash")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, appName) {
		t.Error("bash completion should mention the binary name")
	}
}

func TestCompleteDesign(t *testing.T) {
	exts, dir := completeDesign(nil, nil, "")
	if dir != cobra.ShellCompDirectiveFilterFileExt || strings.Join(exts, ",") != "toml,json" {
		t.Errorf("first arg = %v %v, want toml,json file filter", exts, dir)
	}
	if _, dir := completeDesign(nil, []string{"a.toml"}, ""); dir != cobra.ShellCompDirectiveNoFileComp {
		t.Errorf("second arg directive = %v, want NoFileComp", dir)
	}
}

func TestPlacementListModel(t *testing.T) {
	rep := &design.Report{
		Design: "demo",
		Placements: []design.Placement{
			{Key: "board", Path: "board", X: 10, Y: 10, Layer: "TOP", Anchor: true},
			{Key: "reg", Path: "board.reg", Designator: "U", X: 15, Y: 10, Layer: "TOP"},
		},
		Failures: []design.Failure{
			{Key: "lost", Path: "lost", Code: bterrors.ErrCodeNoParent, Message: "no parent"},
		},
	}

	m := NewPlacementListModel(rep)
	if len(m.Rows) != 3 {
		t.Fatalf("Rows = %d, want 3", len(m.Rows))
	}
	if m.Rows[2].key() != "lost" {
		t.Errorf("failures should follow placements, got %q last", m.Rows[2].key())
	}

	view := m.View()
	for _, want := range []string{"demo", "board", "reg", "NO_PARENT"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestFormatCoord(t *testing.T) {
	tests := map[float64]string{10: "10", 2.5: "2.5", -0.125: "-0.125", 0: "0"}
	for in, want := range tests {
		if got := formatCoord(in); got != want {
			t.Errorf("formatCoord(%v) = %q, want %q", in, got, want)
		}
	}
}
