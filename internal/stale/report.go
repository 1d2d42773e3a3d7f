package stale

import (
	"fmt"
	"io"
	"sort"

	"gopkg.in/yaml.v3"
)

const (
	repositoryHeadingTemplateConstant = "%s:\n"
	authorSummaryLineTemplateConstant = "  %s: (%d, %d)\n"
	summarySeparatorConstant          = "\n"
)

type authorBranchDetail struct {
	Branches []map[string]int `yaml:"branches"`
	Count    int              `yaml:"count"`
}

type authorPullRequestDetail struct {
	PullRequests []map[string]int `yaml:"prs"`
	Count        int              `yaml:"count"`
}

// Renderer writes stale entry reports in summary or detailed YAML form.
type Renderer struct {
	writer io.Writer
}

// NewRenderer constructs a Renderer targeting the supplied writer.
func NewRenderer(writer io.Writer) *Renderer {
	return &Renderer{writer: writer}
}

// RenderSummary prints one block per repository: the slug heading followed by
// each author with their entry count and oldest entry age, oldest first.
func (renderer *Renderer) RenderSummary(findings []RepositoryFindings) {
	for _, repositoryFindings := range findings {
		fmt.Fprintf(renderer.writer, repositoryHeadingTemplateConstant, repositoryFindings.Slug)
		for _, authorSummary := range SummarizeAuthors(repositoryFindings.Entries) {
			fmt.Fprintf(renderer.writer, authorSummaryLineTemplateConstant, authorSummary.Author, authorSummary.EntryCount, authorSummary.MaxAgeDays)
		}
		fmt.Fprint(renderer.writer, summarySeparatorConstant)
	}
}

// RenderBranchDetail prints the full YAML listing of stale branches grouped
// by repository and author.
func (renderer *Renderer) RenderBranchDetail(findings []RepositoryFindings) error {
	repositoryDocument := make(map[string]map[string]authorBranchDetail, len(findings))
	for _, repositoryFindings := range findings {
		authorDocument := make(map[string]authorBranchDetail)
		for author, entries := range groupEntriesByAuthor(repositoryFindings.Entries) {
			authorDocument[author] = authorBranchDetail{Branches: entryMaps(entries), Count: len(entries)}
		}
		repositoryDocument[repositoryFindings.Slug] = authorDocument
	}
	return renderer.writeYAML(repositoryDocument)
}

// RenderPullRequestDetail prints the full YAML listing of stale pull requests
// grouped by repository and author.
func (renderer *Renderer) RenderPullRequestDetail(findings []RepositoryFindings) error {
	repositoryDocument := make(map[string]map[string]authorPullRequestDetail, len(findings))
	for _, repositoryFindings := range findings {
		authorDocument := make(map[string]authorPullRequestDetail)
		for author, entries := range groupEntriesByAuthor(repositoryFindings.Entries) {
			authorDocument[author] = authorPullRequestDetail{PullRequests: entryMaps(entries), Count: len(entries)}
		}
		repositoryDocument[repositoryFindings.Slug] = authorDocument
	}
	return renderer.writeYAML(repositoryDocument)
}

func (renderer *Renderer) writeYAML(document any) error {
	encodedDocument, encodingError := yaml.Marshal(document)
	if encodingError != nil {
		return encodingError
	}
	_, writeError := renderer.writer.Write(encodedDocument)
	return writeError
}

func groupEntriesByAuthor(entries []StaleEntry) map[string][]StaleEntry {
	entriesByAuthor := make(map[string][]StaleEntry)
	for _, entry := range entries {
		entriesByAuthor[entry.Author] = append(entriesByAuthor[entry.Author], entry)
	}
	return entriesByAuthor
}

func entryMaps(entries []StaleEntry) []map[string]int {
	orderedEntries := make([]StaleEntry, len(entries))
	copy(orderedEntries, entries)
	sort.SliceStable(orderedEntries, func(firstIndex int, secondIndex int) bool {
		if orderedEntries[firstIndex].AgeDays != orderedEntries[secondIndex].AgeDays {
			return orderedEntries[firstIndex].AgeDays > orderedEntries[secondIndex].AgeDays
		}
		return orderedEntries[firstIndex].Title < orderedEntries[secondIndex].Title
	})

	entryDocuments := make([]map[string]int, 0, len(orderedEntries))
	for _, entry := range orderedEntries {
		entryDocuments = append(entryDocuments, map[string]int{entry.Title: entry.AgeDays})
	}
	return entryDocuments
}
