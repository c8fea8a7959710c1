// Package compare computes the two-way set difference between hostname
// collections. The output feeds worksheets that end users diff week over
// week, so ordering must be stable and reproducible for identical inputs.
package compare

import (
	"sort"
	"strings"
)

// Result holds both directions of the asymmetric difference. Set semantics
// guarantee no identifier ever appears in both lists.
type Result struct {
	// MissingInSecond are identifiers present in the first collection only.
	MissingInSecond []string
	// MissingInFirst are identifiers present in the second collection only.
	MissingInFirst []string
}

// Compare normalizes both collections (trimming whitespace, dropping empty
// entries, collapsing duplicates) and returns the sorted asymmetric
// differences in both directions.
func Compare(first, second []string) Result {
	firstSet := normalize(first)
	secondSet := normalize(second)

	return Result{
		MissingInSecond: difference(firstSet, secondSet),
		MissingInFirst:  difference(secondSet, firstSet),
	}
}

// Normalize trims and deduplicates a collection, returning it sorted. The
// writer uses this so worksheet columns and comparison inputs share one
// definition of a clean collection.
func Normalize(values []string) []string {
	set := normalize(values)
	result := make([]string, 0, len(set))
	for value := range set {
		result = append(result, value)
	}
	sort.Strings(result)
	return result
}

func normalize(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, value := range values {
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			continue
		}
		set[trimmed] = struct{}{}
	}
	return set
}

func difference(from, exclude map[string]struct{}) []string {
	result := make([]string, 0, len(from))
	for value := range from {
		if _, ok := exclude[value]; ok {
			continue
		}
		result = append(result, value)
	}
	sort.Strings(result)
	return result
}
