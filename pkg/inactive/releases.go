package inactive

import (
	"time"

	goversion "github.com/hashicorp/go-version"

	"github.com/libfix/libfix/pkg/integrations/pypi"
	"github.com/libfix/libfix/pkg/observability"
)

// latestRelease finds the highest release version in meta and the newest
// upload timestamp among its files. Keys that do not parse as versions are
// skipped with a diagnostic. The second return is zero and ok is false when
// no release carries a usable timestamp.
func latestRelease(meta *pypi.Metadata, name string, diag observability.Reporter) (string, time.Time, bool) {
	var (
		bestKey string
		bestVer *goversion.Version
	)
	for key := range meta.Releases {
		v, err := goversion.NewVersion(key)
		if err != nil {
			diag.VersionSkipped(name, key, err)
			continue
		}
		switch {
		case bestVer == nil || v.GreaterThan(bestVer):
			bestKey, bestVer = key, v
		case v.Equal(bestVer) && key > bestKey:
			// "1.0" and "1.0.0" parse equal; break the tie on the raw key so
			// repeated runs pick the same release.
			bestKey = key
		}
	}
	if bestVer == nil {
		return "", time.Time{}, false
	}

	var (
		latest time.Time
		found  bool
	)
	for _, file := range meta.Releases[bestKey] {
		if uploaded, ok := file.Uploaded(); ok && uploaded.After(latest) {
			latest = uploaded
			found = true
		}
	}
	return bestKey, latest, found
}
