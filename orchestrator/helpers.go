package orchestrator

import (
	"math"
	"path/filepath"
)

func countStrings(xs []string) map[string]int {
	out := make(map[string]int)
	for _, x := range xs {
		out[x]++
	}
	return out
}

func countInts(xs []int) map[int]int {
	out := make(map[int]int)
	for _, x := range xs {
		out[x]++
	}
	return out
}

func spread(xs []float64) (lo, mean, hi float64) {
	if len(xs) == 0 {
		return 0, 0, 0
	}
	lo, hi = math.Inf(1), math.Inf(-1)
	total := 0.0
	for _, x := range xs {
		lo = math.Min(lo, x)
		hi = math.Max(hi, x)
		total += x
	}
	return lo, total / float64(len(xs)), hi
}

// sourcePath turns a slash separated relative file into a path under root.
func sourcePath(root, rel string) string {
	return filepath.Join(root, filepath.FromSlash(rel))
}
