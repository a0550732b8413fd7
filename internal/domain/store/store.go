// internal/domain/store/store.go
package store

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/your-org/store-pilot/internal/domain/catalog"
	"github.com/your-org/store-pilot/internal/domain/negotiation"
	"github.com/your-org/store-pilot/internal/domain/search"
	"github.com/your-org/store-pilot/internal/infrastructure/kv"
)

const (
	maxRecentlyViewed = 10
	persistTimeout    = 3 * time.Second
)

// Store is the single source of truth for one shopper: the catalog view,
// cart, coupon, navigation and negotiation history. Every operation is
// atomic and safe for concurrent use.
type Store struct {
	mu sync.Mutex

	catalog    *catalog.Catalog
	engine     *search.Engine
	calculator *negotiation.Calculator
	kv         kv.Store
	recorder   negotiation.Recorder
	logger     logrus.FieldLogger
	now        func() time.Time
	newID      func() string
	sessionID  string

	visible        []catalog.Product
	activeCategory string
	activeQuery    string
	sortOrder      SortOrder
	cart           []CartLine
	coupon         *Coupon
	history        []negotiation.Record
	generated      []string
	nav            Navigation
	viewed         []int
}

// Option configures a Store
type Option func(*Store)

// WithKV persists the cart and coupon in kvStore
func WithKV(kvStore kv.Store) Option {
	return func(s *Store) { s.kv = kvStore }
}

// WithLogger sets the logger
func WithLogger(logger logrus.FieldLogger) Option {
	return func(s *Store) { s.logger = logger }
}

// WithRandom sets the randomness used by negotiations
func WithRandom(random negotiation.RandomSource) Option {
	return func(s *Store) { s.calculator = negotiation.NewCalculator(random) }
}

// WithRecorder ships every negotiation record to recorder
func WithRecorder(recorder negotiation.Recorder) Option {
	return func(s *Store) { s.recorder = recorder }
}

// WithClock overrides time.Now
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithSessionID tags negotiation records with the owning session
func WithSessionID(id string) Option {
	return func(s *Store) { s.sessionID = id }
}

// WithSearchEngine shares a prebuilt engine over the same catalog
func WithSearchEngine(engine *search.Engine) Option {
	return func(s *Store) { s.engine = engine }
}

// New creates a store over c and restores any persisted cart and coupon.
func New(ctx context.Context, c *catalog.Catalog, opts ...Option) *Store {
	s := &Store{
		catalog: c,
		logger:  logrus.StandardLogger(),
		now:     time.Now,
		newID:   uuid.NewString,
		nav:     Navigation{CurrentPage: PageHome},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.engine == nil {
		s.engine = search.NewEngine(c)
	}
	if s.calculator == nil {
		s.calculator = negotiation.NewCalculator(nil)
	}
	if s.sessionID != "" {
		s.logger = s.logger.WithField("session_id", s.sessionID)
	}

	s.visible = c.Products()
	s.restore(ctx)
	return s
}

// Catalog returns the catalog the store sells from
func (s *Store) Catalog() *catalog.Catalog {
	return s.catalog
}

// SearchProducts replaces the visible products with the ranked matches of
// query.
func (s *Store) SearchProducts(query string) ProductsResult {
	result := s.engine.Search(query)
	if !result.Success {
		return ProductsResult{Outcome: invalid(result.Error)}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.visible = result.Products
	s.activeQuery = result.Query
	s.activeCategory = ""
	s.sortOrder = SortNone

	return ProductsResult{
		Outcome:  succeeded(result.Message),
		Query:    result.Query,
		Count:    result.Count,
		Products: cloneProducts(s.visible),
	}
}

// FilterCategory shows every catalog product of category, keeping the
// current sort order. An unknown category leaves the view untouched.
func (s *Store) FilterCategory(category string) ProductsResult {
	normalized := strings.ToLower(strings.TrimSpace(category))
	if normalized == "" {
		return ProductsResult{Outcome: invalid("Invalid category")}
	}

	var filtered []catalog.Product
	for _, p := range s.catalog.Products() {
		if p.HasCategory(normalized) {
			filtered = append(filtered, p)
		}
	}
	if len(filtered) == 0 {
		return ProductsResult{Outcome: notFound(fmt.Sprintf("No products found in category %q", category))}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sortByPrice(filtered, s.sortOrder)
	s.visible = filtered
	s.activeCategory = normalized
	s.activeQuery = ""

	return ProductsResult{
		Outcome:   succeeded(fmt.Sprintf("Showing %d %s in %s", len(filtered), pluralize(len(filtered), "product"), normalized)),
		Category:  normalized,
		SortOrder: s.sortOrder,
		Count:     len(filtered),
		Products:  cloneProducts(filtered),
	}
}

// SortProducts orders the visible products by price. Equal prices keep
// their current relative order.
func (s *Store) SortProducts(order string) ProductsResult {
	so := SortOrder(order)
	if so != SortAsc && so != SortDesc {
		return ProductsResult{Outcome: invalid(`Invalid sort order. Must be "asc" or "desc"`)}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sortByPrice(s.visible, so)
	s.sortOrder = so

	orderText := "lowest to highest"
	if so == SortDesc {
		orderText = "highest to lowest"
	}

	return ProductsResult{
		Outcome:   succeeded(fmt.Sprintf("Products sorted by price (%s)", orderText)),
		Category:  s.activeCategory,
		SortOrder: so,
		Count:     len(s.visible),
		Products:  cloneProducts(s.visible),
	}
}

// ResetFilters shows the whole catalog in its original order
func (s *Store) ResetFilters() ProductsResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.visible = s.catalog.Products()
	s.activeCategory = ""
	s.activeQuery = ""
	s.sortOrder = SortNone

	return ProductsResult{
		Outcome:  succeeded(fmt.Sprintf("Showing all %d products", len(s.visible))),
		Count:    len(s.visible),
		Products: cloneProducts(s.visible),
	}
}

// LookupProduct resolves a free-text product reference by name
func (s *Store) LookupProduct(reference string) LookupResult {
	if strings.TrimSpace(reference) == "" {
		return LookupResult{Outcome: invalid("Invalid product name")}
	}
	p, ok := s.engine.Lookup(reference)
	if !ok {
		return LookupResult{Outcome: notFound(fmt.Sprintf("No product matches %q", reference))}
	}
	return LookupResult{Outcome: succeeded(fmt.Sprintf("Found %s", p.Name)), Product: &p}
}

// Snapshot returns a copy of the whole state
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Snapshot{
		VisibleProducts:    cloneProducts(s.visible),
		ActiveCategory:     s.activeCategory,
		ActiveQuery:        s.activeQuery,
		SortOrder:          s.sortOrder,
		Cart:               cloneCart(s.cart),
		Coupon:             cloneCoupon(s.coupon),
		Totals:             computeTotals(s.cart, s.coupon),
		Navigation:         cloneNavigation(s.nav),
		NegotiationHistory: cloneHistory(s.history),
		GeneratedCoupons:   append([]string{}, s.generated...),
		RecentlyViewed:     append([]int{}, s.viewed...),
	}
}

// VisibleProducts returns the products the shopper currently sees
func (s *Store) VisibleProducts() []catalog.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneProducts(s.visible)
}

func sortByPrice(products []catalog.Product, order SortOrder) {
	switch order {
	case SortAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price.LessThan(products[j].Price)
		})
	case SortDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price.GreaterThan(products[j].Price)
		})
	}
}

func cloneProducts(products []catalog.Product) []catalog.Product {
	out := make([]catalog.Product, len(products))
	for i, p := range products {
		out[i] = p.Clone()
	}
	return out
}

func cloneCart(lines []CartLine) []CartLine {
	out := make([]CartLine, len(lines))
	for i, l := range lines {
		out[i] = CartLine{Product: l.Product.Clone(), Quantity: l.Quantity}
	}
	return out
}

func cloneCoupon(c *Coupon) *Coupon {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}

func cloneNavigation(n Navigation) Navigation {
	if n.CurrentProductID != nil {
		id := *n.CurrentProductID
		n.CurrentProductID = &id
	}
	return n
}

func cloneHistory(records []negotiation.Record) []negotiation.Record {
	out := make([]negotiation.Record, len(records))
	copy(out, records)
	return out
}

func pluralize(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

func persistContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), persistTimeout)
}
