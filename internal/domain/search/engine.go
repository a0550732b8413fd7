// internal/domain/search/engine.go
package search

import (
	"fmt"
	"sort"
	"strings"

	"github.com/your-org/store-pilot/internal/domain/catalog"
	"github.com/your-org/store-pilot/internal/pkg/textnorm"
)

// MaxResults caps the number of products a search returns
const MaxResults = 8

// minLookupScore is one whole-word hit on a product name
const minLookupScore = nameWeight

// MsgInvalidQuery is the error reported for an empty query
const MsgInvalidQuery = "Invalid search query"

// Result is the outcome of a product search
type Result struct {
	Success  bool              `json:"success"`
	Query    string            `json:"query"`
	Count    int               `json:"count"`
	Products []catalog.Product `json:"products"`
	Message  string            `json:"message,omitempty"`
	Error    string            `json:"error,omitempty"`
}

// Engine ranks catalog products against free-text queries
type Engine struct {
	catalog *catalog.Catalog
	docs    []document
}

// NewEngine precomputes the normalized haystacks of every product
func NewEngine(c *catalog.Catalog) *Engine {
	products := c.Products()
	docs := make([]document, len(products))
	for i, p := range products {
		docs[i] = newDocument(p)
	}
	return &Engine{catalog: c, docs: docs}
}

type scored struct {
	doc   *document
	score float64
}

// Search returns up to MaxResults products ranked by relevance. Products with
// equal scores keep their catalog order. A query without usable tokens shows
// the whole catalog.
func (e *Engine) Search(query string) Result {
	if query == "" {
		return Result{Success: false, Error: MsgInvalidQuery, Products: []catalog.Product{}}
	}

	queryText := textnorm.Normalize(query)
	queryTokens := textnorm.Tokenize(queryText)

	if queryText == "" || len(queryTokens) == 0 {
		all := e.catalog.Products()
		return Result{
			Success:  true,
			Query:    "",
			Count:    len(all),
			Products: all,
			Message:  fmt.Sprintf("Showing all %d products", len(all)),
		}
	}

	matches := make([]scored, 0, len(e.docs))
	for i := range e.docs {
		d := &e.docs[i]
		s := d.score(queryTokens, queryText)
		if s > 0 || (len(queryText) >= minPhraseLength && strings.Contains(d.text, queryText)) {
			matches = append(matches, scored{doc: d, score: s})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})

	if len(matches) > MaxResults {
		matches = matches[:MaxResults]
	}

	products := make([]catalog.Product, len(matches))
	for i, m := range matches {
		products[i] = m.doc.product.Clone()
	}

	return Result{
		Success:  true,
		Query:    queryText,
		Count:    len(products),
		Products: products,
		Message:  fmt.Sprintf("Found %d %s matching %q", len(products), plural(len(products), "product"), query),
	}
}

// lookupFiller is dropped from name references before matching.
var lookupFiller = map[string]struct{}{
	"the": {}, "that": {}, "this": {}, "these": {}, "those": {}, "it": {}, "one": {},
	"an": {}, "my": {}, "me": {}, "some": {}, "please": {}, "want": {}, "buy": {},
	"get": {}, "add": {}, "to": {}, "cart": {}, "for": {}, "on": {}, "of": {},
	"item": {}, "product": {}, "can": {}, "could": {}, "you": {}, "give": {},
	"discount": {}, "deal": {}, "price": {}, "off": {}, "is": {}, "its": {},
}

// Lookup resolves a free-text reference such as "that blue jacket" to a
// product by name. Filler words are ignored and the best name score must
// reach one whole-word hit. Ties go to the earlier catalog entry.
func (e *Engine) Lookup(reference string) (catalog.Product, bool) {
	tokens := make([]string, 0, 4)
	for _, t := range textnorm.Tokenize(reference) {
		if _, filler := lookupFiller[t]; !filler {
			tokens = append(tokens, t)
		}
	}
	if len(tokens) == 0 {
		return catalog.Product{}, false
	}
	text := strings.Join(tokens, " ")

	var (
		best      *document
		bestScore float64
	)
	for i := range e.docs {
		d := &e.docs[i]
		s := scoreName(d.name, tokens, text)
		if s > bestScore {
			best, bestScore = d, s
		}
	}

	if best == nil || bestScore < minLookupScore {
		return catalog.Product{}, false
	}
	return best.product.Clone(), true
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
