package ownership

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
)

const (
	summaryLineTemplateConstant        = "%s %s\n"
	summaryFooterTemplateConstant      = "count %d\n"
	detailedHeaderTemplateConstant     = "%s %s:\n"
	detailedMarkerTemplateConstant     = "  %s\n"
	detailedPathsHeaderConstant        = "  paths:\n"
	detailedSingleOwnerTemplate        = "    %s: %s\n"
	detailedOwnerListTemplateConstant  = "    %s: [%s]\n"
	detailedAuthorsHeaderConstant      = "  authors:\n"
	detailedAuthorLineTemplateConstant = "    - %s\n"
	detailedFooterTemplateConstant     = "Matched %d repos\n"
	ownerListSeparatorConstant         = ", "
)

var summaryStatusWidth = len(string(StatusUnowned))

var statusColors = map[CoverageStatus]*color.Color{
	StatusOwned:   color.New(color.FgGreen, color.Bold),
	StatusPartial: color.New(color.FgYellow, color.Bold),
	StatusUnowned: color.New(color.FgRed, color.Bold),
}

// SortReports orders reports worst status first (unowned, partial, owned), then by slug.
func SortReports(reports []RepositoryReport) {
	sort.SliceStable(reports, func(firstIndex int, secondIndex int) bool {
		firstReport := reports[firstIndex]
		secondReport := reports[secondIndex]
		if firstReport.Status.Rank() != secondReport.Status.Rank() {
			return firstReport.Status.Rank() < secondReport.Status.Rank()
		}
		return firstReport.Slug < secondReport.Slug
	})
}

// Renderer writes ownership reports in either the one-line summary shape or the
// indented detail shape.
type Renderer struct {
	writer io.Writer
}

// NewRenderer constructs a Renderer targeting the provided writer.
func NewRenderer(writer io.Writer) Renderer {
	return Renderer{writer: writer}
}

// RenderSummary writes one status-colored line per repository followed by a count footer.
func (renderer Renderer) RenderSummary(reports []RepositoryReport) {
	for _, report := range reports {
		paddedStatus := fmt.Sprintf("%*s", summaryStatusWidth, string(report.Status))
		fmt.Fprintf(renderer.writer, summaryLineTemplateConstant, colorizeStatus(report.Status, paddedStatus), report.Slug)
	}
	fmt.Fprintf(renderer.writer, summaryFooterTemplateConstant, len(reports))
}

// RenderDetailed writes the full per-repository listing: header line, path mapping
// or classification marker, and contributors when present.
func (renderer Renderer) RenderDetailed(reports []RepositoryReport) {
	for _, report := range reports {
		fmt.Fprintf(renderer.writer, detailedHeaderTemplateConstant, colorizeStatus(report.Status, string(report.Status)), report.Slug)

		if len(report.PathsMarker) > 0 {
			fmt.Fprintf(renderer.writer, detailedMarkerTemplateConstant, report.PathsMarker)
		} else {
			fmt.Fprint(renderer.writer, detailedPathsHeaderConstant)
			for _, pathAssignment := range report.PathMapping {
				renderer.renderPathAssignment(pathAssignment)
			}
		}

		if len(report.Authors) > 0 {
			fmt.Fprint(renderer.writer, detailedAuthorsHeaderConstant)
			for _, authorLine := range report.Authors {
				fmt.Fprintf(renderer.writer, detailedAuthorLineTemplateConstant, authorLine)
			}
		}
	}
	fmt.Fprintf(renderer.writer, detailedFooterTemplateConstant, len(reports))
}

func (renderer Renderer) renderPathAssignment(pathAssignment PathAssignment) {
	if pathAssignment.Unowned {
		fmt.Fprintf(renderer.writer, detailedSingleOwnerTemplate, pathAssignment.Path, UnownedMarker)
		return
	}
	if len(pathAssignment.Owners) == 1 {
		fmt.Fprintf(renderer.writer, detailedSingleOwnerTemplate, pathAssignment.Path, pathAssignment.Owners[0])
		return
	}
	fmt.Fprintf(renderer.writer, detailedOwnerListTemplateConstant, pathAssignment.Path, strings.Join(pathAssignment.Owners, ownerListSeparatorConstant))
}

func colorizeStatus(status CoverageStatus, label string) string {
	if statusColor, known := statusColors[status]; known {
		return statusColor.Sprint(label)
	}
	return label
}
