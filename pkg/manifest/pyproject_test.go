package manifest

import (
	"path/filepath"
	"testing"
)

func TestParsePyproject(t *testing.T) {
	content := `[tool.poetry]
name = "demo"

[tool.poetry.dependencies]
django = "^4.0"
python = "^3.10"
flask = "*"
httpx = { version = ">=0.24", extras = ["http2"] }
local-pkg = { path = "../local" }
`
	path := filepath.Join(t.TempDir(), "pyproject.toml")
	writeFile(t, path, content)

	got := NewParser(nil).ParsePyproject(path)
	want := []Specifier{"django^4.0", "flask", "httpx>=0.24", "local-pkg"}

	if len(got) != len(want) {
		t.Fatalf("ParsePyproject = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("specifier[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestParsePyproject_WildcardOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pyproject.toml")
	writeFile(t, path, "[tool.poetry.dependencies]\nflask = \"*\"\n")

	got := NewParser(nil).ParsePyproject(path)
	if len(got) != 1 || got[0] != "flask" {
		t.Errorf("ParsePyproject = %v, want [flask]", got)
	}
}

func TestParsePyproject_NoPoetryTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pyproject.toml")
	writeFile(t, path, "[project]\nname = \"demo\"\ndependencies = [\"requests\"]\n")

	if got := NewParser(nil).ParsePyproject(path); len(got) != 0 {
		t.Errorf("ParsePyproject = %v, want empty for non-poetry project", got)
	}
}

func TestParsePyproject_MalformedTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pyproject.toml")
	writeFile(t, path, "[tool.poetry.dependencies\ndjango = \"^4.0\"\n")

	diag := &recordingReporter{}
	got := NewParser(diag).ParsePyproject(path)

	if len(got) != 0 {
		t.Errorf("ParsePyproject = %v, want empty", got)
	}
	if len(diag.malformed) != 1 {
		t.Errorf("recorded %d malformed events, want 1", len(diag.malformed))
	}
}

func TestParsePyproject_MissingFile(t *testing.T) {
	diag := &recordingReporter{}
	got := NewParser(diag).ParsePyproject(filepath.Join(t.TempDir(), "pyproject.toml"))

	if len(got) != 0 {
		t.Errorf("ParsePyproject = %v, want empty", got)
	}
	if len(diag.unreadable) != 1 {
		t.Errorf("recorded %d unreadable-file events, want 1", len(diag.unreadable))
	}
}
