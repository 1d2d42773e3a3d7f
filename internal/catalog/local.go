package catalog

import (
	"io"
	"sort"

	"github.com/olekukonko/tablewriter"

	"github.com/temirov/repofleet/internal/discovery"
)

const (
	slugColumnHeaderConstant = "Slug"
	pathColumnHeaderConstant = "Path"
)

// RenderLocalRepositories prints a borderless table of discovered
// repositories sorted by slug.
func RenderLocalRepositories(writer io.Writer, descriptors []discovery.RepositoryDescriptor) {
	orderedDescriptors := make([]discovery.RepositoryDescriptor, len(descriptors))
	copy(orderedDescriptors, descriptors)
	sort.SliceStable(orderedDescriptors, func(firstIndex int, secondIndex int) bool {
		return orderedDescriptors[firstIndex].Slug < orderedDescriptors[secondIndex].Slug
	})

	table := tablewriter.NewWriter(writer)
	table.SetHeader([]string{slugColumnHeaderConstant, pathColumnHeaderConstant})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT})

	for _, descriptor := range orderedDescriptors {
		table.Append([]string{descriptor.Slug, descriptor.Path})
	}

	table.Render()
}
