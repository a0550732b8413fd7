// internal/domain/search/scorer.go
package search

import (
	"strings"

	"github.com/your-org/store-pilot/internal/domain/catalog"
	"github.com/your-org/store-pilot/internal/pkg/textnorm"
)

// Field weights. A token only earns the weight of the first field it hits,
// checked in this order.
const (
	phraseAnyBonus   = 8.0
	phraseNameBonus  = 10.0
	nameWeight       = 6.0
	categoryWeight   = 5.0
	colorWeight      = 4.0
	descWeight       = 3.0
	wordBoundary     = 0.5
	ratingTieBreak   = 0.15
	minPhraseLength  = 3
	maxRatingCounted = 5.0
)

// document holds the normalized haystacks of one product.
type document struct {
	product     catalog.Product
	name        string
	category    string
	colors      string
	description string
	// all is name, category, description, colors
	all string
	// text is name, description, category, colors; used by the rescue clause
	text string
}

func newDocument(p catalog.Product) document {
	d := document{
		product:     p,
		name:        textnorm.Normalize(p.Name),
		category:    textnorm.Normalize(p.Category),
		colors:      textnorm.Normalize(p.ColorsText()),
		description: textnorm.Normalize(p.Description),
	}
	d.all = joinNonEmpty(d.name, d.category, d.description, d.colors)
	d.text = textnorm.Normalize(joinNonEmpty(p.Name, p.Description, p.Category, p.ColorsText()))
	return d
}

// Score rates how well product matches a query. queryTokens and queryText are
// expected to come from textnorm.Tokenize and textnorm.Normalize. It returns 0
// when there are no tokens.
func Score(product catalog.Product, queryTokens []string, queryText string) float64 {
	d := newDocument(product)
	return d.score(queryTokens, queryText)
}

func (d *document) score(queryTokens []string, queryText string) float64 {
	if len(queryTokens) == 0 {
		return 0
	}

	var score float64
	if len(queryText) >= minPhraseLength {
		if strings.Contains(d.all, queryText) {
			score += phraseAnyBonus
		}
		if strings.Contains(d.name, queryText) {
			score += phraseNameBonus
		}
	}

	for _, token := range queryTokens {
		if token == "" {
			continue
		}

		switch {
		case strings.Contains(d.name, token):
			score += nameWeight
		case strings.Contains(d.category, token):
			score += categoryWeight
		case strings.Contains(d.colors, token):
			score += colorWeight
		case strings.Contains(d.description, token):
			score += descWeight
		}

		if textnorm.ContainsWord(d.all, token) {
			score += wordBoundary
		}
	}

	rating := d.product.Rating
	if rating > maxRatingCounted {
		rating = maxRatingCounted
	}
	if rating > 0 {
		score += rating * ratingTieBreak
	}

	return score
}

// ScoreName rates a product by its name alone: the whole phrase inside the
// name earns 10 and every token that is a word of the name earns 6.
func ScoreName(product catalog.Product, queryTokens []string, queryText string) float64 {
	return scoreName(textnorm.Normalize(product.Name), queryTokens, queryText)
}

func scoreName(name string, queryTokens []string, queryText string) float64 {
	if len(queryTokens) == 0 || name == "" {
		return 0
	}

	var score float64
	if len(queryText) >= minPhraseLength && strings.Contains(name, queryText) {
		score += phraseNameBonus
	}
	for _, token := range queryTokens {
		if textnorm.ContainsWord(name, token) {
			score += nameWeight
		}
	}
	return score
}

func joinNonEmpty(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}
