package usecase

import (
	"sort"

	"github.com/montanaflynn/stats"

	"github.com/naka-gawa/gitfinder/internal/domain"
)

// DefaultTopLanguages is how many languages the language breakdown shows.
const DefaultTopLanguages = 5

// CountLanguages counts repositories per declared language, most common first.
// Languages with equal counts keep the order in which they first appear.
func CountLanguages(repos []domain.Repository) []domain.LanguageCount {
	index := make(map[string]int)
	var counts []domain.LanguageCount
	for _, r := range repos {
		if r.Language == "" {
			continue
		}
		i, ok := index[r.Language]
		if !ok {
			i = len(counts)
			index[r.Language] = i
			counts = append(counts, domain.LanguageCount{Language: r.Language})
		}
		counts[i].Count++
	}
	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	return counts
}

// TopLanguages returns the n most common languages with their share of ALL
// repositories, including those without a language, rounded to whole percent.
func TopLanguages(repos []domain.Repository, n int) []domain.LanguageShare {
	return topShares(CountLanguages(repos), len(repos), n)
}

func topShares(counts []domain.LanguageCount, total, n int) []domain.LanguageShare {
	if n < 0 {
		n = 0
	}
	if len(counts) > n {
		counts = counts[:n]
	}
	shares := make([]domain.LanguageShare, 0, len(counts))
	for _, c := range counts {
		shares = append(shares, domain.LanguageShare{
			Language: c.Language,
			Count:    c.Count,
			Percent:  percent(c.Count, total),
		})
	}
	return shares
}

func percent(count, total int) float64 {
	if total == 0 {
		return 0
	}
	p, err := stats.Round(float64(count)/float64(total)*100, 0)
	if err != nil {
		return 0
	}
	return p
}

// Filter keeps repositories whose language equals language exactly.
// FilterAll or an empty language keeps everything.
func Filter(repos []domain.Repository, language string) []domain.Repository {
	if language == "" || language == domain.FilterAll {
		return append([]domain.Repository(nil), repos...)
	}
	var out []domain.Repository
	for _, r := range repos {
		if r.Language == language {
			out = append(out, r)
		}
	}
	return out
}

// Sort returns a copy of repos in descending order of the given key.
// Unknown keys sort by last update. Equal elements keep their incoming order.
func Sort(repos []domain.Repository, key domain.SortKey) []domain.Repository {
	out := append([]domain.Repository(nil), repos...)
	var less func(i, j int) bool
	switch key {
	case domain.SortStars:
		less = func(i, j int) bool { return out[i].Stars > out[j].Stars }
	case domain.SortForks:
		less = func(i, j int) bool { return out[i].Forks > out[j].Forks }
	default:
		less = func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) }
	}
	sort.SliceStable(out, less)
	return out
}

// TotalStars sums star counts over repos.
func TotalStars(repos []domain.Repository) int {
	if len(repos) == 0 {
		return 0
	}
	data := make(stats.Float64Data, 0, len(repos))
	for _, r := range repos {
		data = append(data, float64(r.Stars))
	}
	sum, err := data.Sum()
	if err != nil {
		return 0
	}
	return int(sum)
}

// DominantLanguage returns the most common language, or domain.NoLanguage.
func DominantLanguage(repos []domain.Repository) string {
	return dominant(CountLanguages(repos))
}

func dominant(counts []domain.LanguageCount) string {
	if len(counts) == 0 {
		return domain.NoLanguage
	}
	return counts[0].Language
}

// Derive computes the language breakdown, aggregate stats and the filtered,
// sorted repository view. Aggregates always cover the full list.
func Derive(repos []domain.Repository, sel domain.Selection, topN int) domain.RepoStats {
	counts := CountLanguages(repos)
	return domain.RepoStats{
		Languages:        counts,
		TopLanguages:     topShares(counts, len(repos), topN),
		TotalStars:       TotalStars(repos),
		DominantLanguage: dominant(counts),
		View:             Sort(Filter(repos, sel.Language), sel.Sort),
	}
}
