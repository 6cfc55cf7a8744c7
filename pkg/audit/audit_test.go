package audit

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/libfix/libfix/pkg/cache"
	"github.com/libfix/libfix/pkg/inactive"
	"github.com/libfix/libfix/pkg/integrations/pypi"
)

type recordingReporter struct {
	unreadable []string
	malformed  []string
	lookups    []string
	versions   []string
}

func (r *recordingReporter) FileUnreadable(path string, err error) {
	r.unreadable = append(r.unreadable, path)
}

func (r *recordingReporter) ManifestMalformed(path string, err error) {
	r.malformed = append(r.malformed, path)
}

func (r *recordingReporter) LookupFailed(pkg string, err error) {
	r.lookups = append(r.lookups, pkg)
}

func (r *recordingReporter) VersionSkipped(pkg, v string, err error) {
	r.versions = append(r.versions, v)
}

var testNow = time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)

func metadataDoc(version, classifier string, uploaded time.Time) string {
	return fmt.Sprintf(`{
		"info": {"name": "pkg", "version": %q, "classifiers": [%q]},
		"releases": {%q: [{"upload_time_iso_8601": %q}]}
	}`, version, classifier, version, uploaded.Format(time.RFC3339))
}

func newRegistry(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/pypi/requests/json", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, metadataDoc("2.31.0", "Development Status :: 5 - Production/Stable", testNow.Add(-30*24*time.Hour)))
	})
	mux.HandleFunc("/pypi/old-lib/json", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, metadataDoc("0.9.1", "Programming Language :: Python", testNow.Add(-4*365*24*time.Hour)))
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestRunner(t *testing.T, diag *recordingReporter) *Runner {
	t.Helper()
	srv := newRegistry(t)
	client := pypi.NewClient(srv.URL, cache.NullCache{}, time.Hour)
	classifier := &inactive.Classifier{Now: func() time.Time { return testNow }, Diag: diag}
	return NewRunner(client, classifier, diag, nil)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func resultFor(t *testing.T, report *Report, pkg string) Result {
	t.Helper()
	for _, res := range report.Results {
		if res.Package == pkg {
			return res
		}
	}
	t.Fatalf("no result for %q in %+v", pkg, report.Results)
	return Result{}
}

func TestRun(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "requirements.txt"), "requests>=2.20\nold-lib\nghost\n")
	writeFile(t, filepath.Join(root, "sub", "requirements.txt"), "requests>=2.20\n")

	diag := &recordingReporter{}
	runner := newTestRunner(t, diag)

	report, err := runner.Run(context.Background(), Options{Root: root})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if report.ID.String() == "00000000-0000-0000-0000-000000000000" {
		t.Error("report has the zero run ID")
	}
	if report.Root != root {
		t.Errorf("Root = %q, want %q", report.Root, root)
	}
	if report.FinishedAt.Before(report.StartedAt) {
		t.Error("FinishedAt precedes StartedAt")
	}
	if report.FileCount() != 2 {
		t.Errorf("FileCount = %d, want 2", report.FileCount())
	}

	// The duplicate requests specifier collapses to one result.
	if len(report.Results) != 3 {
		t.Fatalf("got %d results, want 3: %+v", len(report.Results), report.Results)
	}

	requests := resultFor(t, report, "requests")
	if requests.Verdict.Inactive {
		t.Errorf("requests flagged inactive: %+v", requests.Verdict)
	}
	if requests.LatestVersion != "2.31.0" {
		t.Errorf("requests LatestVersion = %q, want 2.31.0", requests.LatestVersion)
	}

	oldLib := resultFor(t, report, "old-lib")
	if !oldLib.Verdict.Inactive {
		t.Errorf("old-lib not flagged inactive: %+v", oldLib.Verdict)
	}
	if !strings.Contains(oldLib.Verdict.Reason, "years ago") {
		t.Errorf("old-lib Reason = %q, want a staleness reason", oldLib.Verdict.Reason)
	}

	// A failed lookup degrades to the insufficient-information verdict plus
	// a diagnostic, never an error.
	ghost := resultFor(t, report, "ghost")
	if ghost.Verdict.Inactive {
		t.Errorf("ghost flagged inactive: %+v", ghost.Verdict)
	}
	if ghost.LatestVersion != "" {
		t.Errorf("ghost LatestVersion = %q, want empty", ghost.LatestVersion)
	}
	if len(diag.lookups) != 1 || diag.lookups[0] != "ghost" {
		t.Errorf("failed lookups = %v, want [ghost]", diag.lookups)
	}

	if report.InactiveCount() != 1 {
		t.Errorf("InactiveCount = %d, want 1", report.InactiveCount())
	}
}

func TestRun_ExcludeFilter(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "requirements.txt"), "requests\n")
	writeFile(t, filepath.Join(root, "vendor", "requirements.txt"), "old-lib\n")

	runner := newTestRunner(t, &recordingReporter{})

	report, err := runner.Run(context.Background(), Options{
		Root: root,
		ExcludeFilter: func(path string) bool {
			return strings.Contains(path, string(filepath.Separator)+"vendor"+string(filepath.Separator))
		},
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if report.FileCount() != 1 {
		t.Errorf("FileCount = %d, want 1 after exclusion", report.FileCount())
	}
	if len(report.Results) != 1 || report.Results[0].Package != "requests" {
		t.Errorf("Results = %+v, want only requests", report.Results)
	}
}

func TestRun_EmptyTree(t *testing.T) {
	runner := newTestRunner(t, &recordingReporter{})

	report, err := runner.Run(context.Background(), Options{Root: t.TempDir()})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(report.Results) != 0 {
		t.Errorf("got %d results for an empty tree", len(report.Results))
	}
	if report.FileCount() != 0 {
		t.Errorf("FileCount = %d, want 0", report.FileCount())
	}
}

func TestRun_Cancelled(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "requirements.txt"), "requests\n")

	runner := newTestRunner(t, &recordingReporter{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := runner.Run(ctx, Options{Root: root}); err == nil {
		t.Error("Run succeeded with a cancelled context")
	}
}
