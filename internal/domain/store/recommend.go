// internal/domain/store/recommend.go
package store

import (
	"fmt"
	"sort"
	"strings"

	"github.com/your-org/store-pilot/internal/domain/catalog"
)

const (
	maxRecommendations = 4
	sharedCategoryHit  = 3
	sharedColorHit     = 1
)

// RecommendProducts suggests up to four products the shopper has neither
// viewed nor carted. Candidates sharing categories and colours with viewed or
// carted products come first; top-rated products fill the remaining slots.
func (s *Store) RecommendProducts() RecommendationResult {
	s.mu.Lock()
	seen := make(map[int]bool, len(s.viewed)+len(s.cart))
	var seeds []catalog.Product
	for _, l := range s.cart {
		if !seen[l.Product.ID] {
			seen[l.Product.ID] = true
			seeds = append(seeds, l.Product)
		}
	}
	for _, id := range s.viewed {
		if seen[id] {
			continue
		}
		if p, ok := s.catalog.Get(id); ok {
			seen[id] = true
			seeds = append(seeds, p)
		}
	}
	s.mu.Unlock()

	type candidate struct {
		product catalog.Product
		score   int
	}

	var candidates []candidate
	for _, p := range s.catalog.Products() {
		if seen[p.ID] {
			continue
		}
		candidates = append(candidates, candidate{product: p, score: affinity(p, seeds)})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].product.Rating > candidates[j].product.Rating
	})

	if len(candidates) > maxRecommendations {
		candidates = candidates[:maxRecommendations]
	}

	products := make([]catalog.Product, len(candidates))
	for i, c := range candidates {
		products[i] = c.product
	}

	message := fmt.Sprintf("Here are %d %s you might like", len(products), pluralize(len(products), "product"))
	if len(products) == 0 {
		message = "You've already seen everything we have"
	}

	return RecommendationResult{
		Outcome:  succeeded(message),
		Count:    len(products),
		Products: products,
	}
}

// affinity adds 3 per seed in the same category and 1 per shared colour
func affinity(p catalog.Product, seeds []catalog.Product) int {
	score := 0
	for _, seed := range seeds {
		if strings.TrimSpace(seed.Category) != "" && p.HasCategory(seed.Category) {
			score += sharedCategoryHit
		}
		for _, c := range p.Colors {
			for _, sc := range seed.Colors {
				if strings.EqualFold(strings.TrimSpace(c), strings.TrimSpace(sc)) {
					score += sharedColorHit
				}
			}
		}
	}
	return score
}
