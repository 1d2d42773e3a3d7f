package stale

import "sort"

// StaleEntry describes one stale item (a remote branch or a pull request)
// attributed to an author with its age in whole days.
type StaleEntry struct {
	Title   string
	AgeDays int
	Author  string
}

// RepositoryFindings groups the stale entries detected for one repository.
type RepositoryFindings struct {
	Slug    string
	Entries []StaleEntry
}

// AuthorSummary aggregates the stale entries of a single author.
type AuthorSummary struct {
	Author     string
	EntryCount int
	MaxAgeDays int
}

// SortFindings orders repository findings alphabetically by slug.
func SortFindings(findings []RepositoryFindings) {
	sort.SliceStable(findings, func(firstIndex int, secondIndex int) bool {
		return findings[firstIndex].Slug < findings[secondIndex].Slug
	})
}

// SummarizeAuthors groups entries by author and orders the summaries by the
// oldest entry first, breaking ties alphabetically.
func SummarizeAuthors(entries []StaleEntry) []AuthorSummary {
	summariesByAuthor := make(map[string]*AuthorSummary)
	authorOrder := make([]string, 0)

	for _, entry := range entries {
		summary, known := summariesByAuthor[entry.Author]
		if !known {
			summary = &AuthorSummary{Author: entry.Author}
			summariesByAuthor[entry.Author] = summary
			authorOrder = append(authorOrder, entry.Author)
		}
		summary.EntryCount++
		if entry.AgeDays > summary.MaxAgeDays {
			summary.MaxAgeDays = entry.AgeDays
		}
	}

	summaries := make([]AuthorSummary, 0, len(authorOrder))
	for _, author := range authorOrder {
		summaries = append(summaries, *summariesByAuthor[author])
	}

	sort.SliceStable(summaries, func(firstIndex int, secondIndex int) bool {
		if summaries[firstIndex].MaxAgeDays != summaries[secondIndex].MaxAgeDays {
			return summaries[firstIndex].MaxAgeDays > summaries[secondIndex].MaxAgeDays
		}
		return summaries[firstIndex].Author < summaries[secondIndex].Author
	})

	return summaries
}
