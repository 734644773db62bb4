package ingest

import (
	"path/filepath"
	"sort"
	"strings"
)

// Target is one source file that has not been ingested yet.
type Target struct {
	// Rel is the base-relative path stored as the document source path.
	Rel string
	// Abs is the path used to read the file.
	Abs string
}

// NewTargets computes which scanned files have not yet produced a stored
// document. Both sides are normalized to base-relative form before
// comparison; a path outside the base is kept as given. Output is sorted by
// relative path, and feeding the output back through known yields an empty
// result.
func NewTargets(scanPaths []string, baseDir string, known []string) []Target {
	seen := make(map[string]struct{}, len(known))
	for _, k := range known {
		seen[normalize(k, baseDir)] = struct{}{}
	}

	targets := make([]Target, 0, len(scanPaths))
	dedup := make(map[string]struct{}, len(scanPaths))
	for _, p := range scanPaths {
		rel := normalize(p, baseDir)
		if _, ok := seen[rel]; ok {
			continue
		}
		if _, dup := dedup[rel]; dup {
			continue
		}
		dedup[rel] = struct{}{}
		targets = append(targets, Target{Rel: rel, Abs: p})
	}

	sort.Slice(targets, func(i, j int) bool { return targets[i].Rel < targets[j].Rel })
	return targets
}

// normalize rewrites a path relative to baseDir. Paths that cannot be
// expressed under the base (different root, or escaping upward) are kept
// unchanged so they still compare consistently between scans.
func normalize(path, baseDir string) string {
	if baseDir == "" || !filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	rel, err := filepath.Rel(baseDir, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return filepath.Clean(path)
	}
	return rel
}
