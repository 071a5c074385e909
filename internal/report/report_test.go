package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func init() {
	// Keep console assertions free of ANSI escapes
	color.NoColor = true
}

func tempPath(t *testing.T, name string) string {
	t.Helper()
	return filepath.Join(t.TempDir(), name)
}

func readString(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

// --- Changed ---

func TestChanged(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name string
		rep  Report
		want bool
	}{
		{"empty", Report{}, false},
		{"updated only", Report{Updated: []string{"a"}}, true},
		{"removed only", Report{Removed: []string{"b"}}, true},
	}
	for _, tc := range cases {
		if got := tc.rep.Changed(); got != tc.want {
			t.Errorf("%s: Changed() = %v, want %v", tc.name, got, tc.want)
		}
	}
}

// --- WriteConsole ---

func TestWriteConsole_UpToDate(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	Report{}.WriteConsole(&buf)

	if !strings.Contains(buf.String(), "All skills are up to date.") {
		t.Errorf("console output = %q", buf.String())
	}
}

func TestWriteConsole_UpdatedAndRemoved(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	rep := Report{
		Updated: []string{"dest/a.txt", "dest/sub/b.txt"},
		Removed: []string{"dest/old.txt"},
		Skills:  []string{"demo"},
	}
	rep.WriteConsole(&buf)
	out := buf.String()

	if !strings.Contains(out, "Updated 2 file(s):") {
		t.Errorf("missing updated count, output: %q", out)
	}
	if !strings.Contains(out, "  + dest/a.txt") || !strings.Contains(out, "  + dest/sub/b.txt") {
		t.Errorf("missing + lines, output: %q", out)
	}
	if !strings.Contains(out, "Removed 1 file(s):") || !strings.Contains(out, "  - dest/old.txt") {
		t.Errorf("missing - lines, output: %q", out)
	}
}

// --- WriteOutput ---

func TestWriteOutput_Changed(t *testing.T) {
	t.Parallel()
	path := tempPath(t, "output")
	rep := Report{
		Updated: []string{"a"},
		Skills:  []string{"demo", "guide"},
	}

	if err := rep.WriteOutput(path); err != nil {
		t.Fatal(err)
	}

	got := readString(t, path)
	want := "updated=true\nskills=demo, guide\n"
	if got != want {
		t.Errorf("output file = %q, want %q", got, want)
	}
}

func TestWriteOutput_Unchanged(t *testing.T) {
	t.Parallel()
	path := tempPath(t, "output")

	if err := (Report{}).WriteOutput(path); err != nil {
		t.Fatal(err)
	}

	got := readString(t, path)
	if got != "updated=false\n" {
		t.Errorf("output file = %q, want %q", got, "updated=false\n")
	}
	// Consumers key on the presence of the skills line
	if strings.Contains(got, "skills=") {
		t.Errorf("unchanged run wrote a skills= line: %q", got)
	}
}

func TestWriteOutput_Appends(t *testing.T) {
	t.Parallel()
	path := tempPath(t, "output")
	if err := os.WriteFile(path, []byte("existing=keep\n"), 0644); err != nil {
		t.Fatal(err)
	}

	rep := Report{Updated: []string{"a"}, Skills: []string{"demo"}}
	if err := rep.WriteOutput(path); err != nil {
		t.Fatal(err)
	}

	got := readString(t, path)
	if !strings.HasPrefix(got, "existing=keep\n") {
		t.Errorf("existing content overwritten: %q", got)
	}
	if !strings.Contains(got, "updated=true\n") {
		t.Errorf("new lines not appended: %q", got)
	}
}

// --- WriteSummary ---

func TestWriteSummary_Changed(t *testing.T) {
	t.Parallel()
	path := tempPath(t, "summary.md")
	rep := Report{
		Updated: []string{"dest/a.txt", "dest/sub/b.txt"},
		Removed: []string{"dest/old.txt"},
		Skills:  []string{"demo"},
	}

	if err := rep.WriteSummary(path); err != nil {
		t.Fatal(err)
	}

	got := readString(t, path)
	for _, want := range []string{
		"## Skill Sync",
		"Changed skills: `demo`",
		"### Updated files (2)",
		"- `dest/a.txt`",
		"- `dest/sub/b.txt`",
		"### Removed files (1)",
		"- `dest/old.txt`",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("summary missing %q:\n%s", want, got)
		}
	}
}

func TestWriteSummary_UpToDate(t *testing.T) {
	t.Parallel()
	path := tempPath(t, "summary.md")

	if err := (Report{}).WriteSummary(path); err != nil {
		t.Fatal(err)
	}

	got := readString(t, path)
	if !strings.Contains(got, "All skills are up to date.") {
		t.Errorf("summary = %q", got)
	}
	if strings.Contains(got, "### ") {
		t.Errorf("unexpected file sections in up-to-date summary: %q", got)
	}
}

func TestWriteSummary_Appends(t *testing.T) {
	t.Parallel()
	path := tempPath(t, "summary.md")
	if err := os.WriteFile(path, []byte("# Earlier step\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := (Report{}).WriteSummary(path); err != nil {
		t.Fatal(err)
	}

	got := readString(t, path)
	if !strings.HasPrefix(got, "# Earlier step\n") {
		t.Errorf("existing summary overwritten: %q", got)
	}
}

// --- Emit ---

func TestEmit_DisabledSinks(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	rep := Report{Updated: []string{"a"}, Skills: []string{"demo"}}

	// Empty paths: console only, no files touched
	if err := rep.Emit(&buf, Sinks{}); err != nil {
		t.Fatal(err)
	}
	if buf.Len() == 0 {
		t.Error("no console output")
	}
}

func TestEmit_AllSinks(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	sinks := Sinks{
		Output:  tempPath(t, "output"),
		Summary: tempPath(t, "summary.md"),
	}
	rep := Report{Updated: []string{"a"}, Skills: []string{"demo"}}

	if err := rep.Emit(&buf, sinks); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(readString(t, sinks.Output), "updated=true") {
		t.Error("output sink not written")
	}
	if !strings.Contains(readString(t, sinks.Summary), "## Skill Sync") {
		t.Error("summary sink not written")
	}
}

// --- SinksFromEnv ---

func TestSinksFromEnv(t *testing.T) {
	t.Setenv("GITHUB_OUTPUT", "/tmp/out")
	t.Setenv("GITHUB_STEP_SUMMARY", "/tmp/sum")

	s := SinksFromEnv()
	if s.Output != "/tmp/out" || s.Summary != "/tmp/sum" {
		t.Errorf("SinksFromEnv() = %+v", s)
	}
}
