package ownership

import (
	"sort"
	"strings"
)

// BuildPathMapping merges ownership entries with unowned buckets into one
// deterministically ordered, presentation-ready mapping.
//
// The key set is the union of pattern keys and unowned buckets. Keys found in
// the entries carry their owner list; keys present only as unowned buckets (or
// entries that somehow carry zero owners) render the UnownedMarker. Ordering:
// the root marker sorts first, then ascending path depth, then lexicographic
// within equal depth.
func BuildPathMapping(entries map[string][]string, unownedBuckets []string) []PathAssignment {
	allKeys := make([]string, 0, len(entries)+len(unownedBuckets))
	for pattern := range entries {
		allKeys = append(allKeys, pattern)
	}
	for _, bucket := range unownedBuckets {
		if _, alreadyPresent := entries[bucket]; !alreadyPresent {
			allKeys = append(allKeys, bucket)
		}
	}

	sort.SliceStable(allKeys, func(firstIndex int, secondIndex int) bool {
		firstKey := allKeys[firstIndex]
		secondKey := allKeys[secondIndex]

		if firstKey == RootPatternMarker && secondKey != RootPatternMarker {
			return true
		}
		if secondKey == RootPatternMarker && firstKey != RootPatternMarker {
			return false
		}

		firstDepth := pathDepth(firstKey)
		secondDepth := pathDepth(secondKey)
		if firstDepth != secondDepth {
			return firstDepth < secondDepth
		}
		return firstKey < secondKey
	})

	mapping := make([]PathAssignment, 0, len(allKeys))
	for _, key := range allKeys {
		owners, owned := entries[key]
		if !owned || len(owners) == 0 {
			mapping = append(mapping, PathAssignment{Path: key, Unowned: true})
			continue
		}
		mapping = append(mapping, PathAssignment{Path: key, Owners: owners})
	}
	return mapping
}

func pathDepth(patternKey string) int {
	trimmedKey := strings.Trim(patternKey, pathSeparatorConstant)
	if len(trimmedKey) == 0 {
		return 0
	}
	return len(strings.Split(trimmedKey, pathSeparatorConstant))
}
