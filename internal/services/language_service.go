package services

import (
	"sort"

	"github.com/RaviPatel94/Gitstats/internal/models"
)

// topLanguageCount is how many languages the summary exposes.
const topLanguageCount = 5

type LanguageService struct{}

func NewLanguageService() *LanguageService {
	return &LanguageService{}
}

type languageTotal struct {
	name  string
	bytes int
	count int
}

// TopLanguages reduces per-repository language byte edges into the top
// five global language names, formatted with a leading "#". Excluded
// repositories are filtered out before accumulation. Ties keep first-seen
// order via the stable sort.
func (s *LanguageService) TopLanguages(repos []models.RepositorySnapshot, excluded models.ExcludedRepositories) []string {
	totals := make(map[string]*languageTotal)
	var order []*languageTotal

	for _, repo := range repos {
		if excluded.Contains(repo.Name) {
			continue
		}
		for _, lang := range repo.Languages {
			entry, ok := totals[lang.Name]
			if !ok {
				entry = &languageTotal{name: lang.Name}
				totals[lang.Name] = entry
				order = append(order, entry)
			}
			entry.bytes += lang.Size
			entry.count++
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return order[i].bytes > order[j].bytes
	})

	limit := topLanguageCount
	if len(order) < limit {
		limit = len(order)
	}

	top := make([]string, 0, limit)
	for _, entry := range order[:limit] {
		top = append(top, "#"+entry.name)
	}
	return top
}

// TotalStars sums star counts over non-excluded repositories
func (s *LanguageService) TotalStars(repos []models.RepositorySnapshot, excluded models.ExcludedRepositories) int {
	total := 0
	for _, repo := range repos {
		if excluded.Contains(repo.Name) {
			continue
		}
		total += repo.Stars
	}
	return total
}
