package reposlug

import "github.com/temirov/repofleet/internal/gitrepo"

func defaultSlugResolver() SlugResolver {
	return gitrepo.NewLocalRepositoryReader()
}
