package features

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/cucumber/godog"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/your-org/store-pilot/internal/domain/catalog"
	"github.com/your-org/store-pilot/internal/domain/catalog/catalogtest"
	"github.com/your-org/store-pilot/internal/domain/command"
	"github.com/your-org/store-pilot/internal/domain/negotiation"
	"github.com/your-org/store-pilot/internal/domain/store"
	"github.com/your-org/store-pilot/internal/infrastructure/kv"
)

type storefrontTestContext struct {
	catalog       *catalog.Catalog
	kv            *kv.Memory
	seed          uint64
	store         *store.Store
	logger        logrus.FieldLogger
	negotiation   store.NegotiationResult
	lastSuccess   bool
	visibleBefore []int
}

func (c *storefrontTestContext) reset() {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	c.catalog = nil
	c.kv = kv.NewMemory()
	c.seed = 0
	c.store = nil
	c.logger = logger
	c.negotiation = store.NegotiationResult{}
	c.lastSuccess = false
	c.visibleBefore = nil
}

// current opens the store on first use so Given steps can still change the seed
func (c *storefrontTestContext) current() *store.Store {
	if c.store == nil {
		c.store = store.New(context.Background(), c.catalog,
			store.WithKV(c.kv),
			store.WithLogger(c.logger),
			store.WithRandom(negotiation.NewSeededRandom(c.seed)),
		)
	}
	return c.store
}

func visibleIDs(s *store.Store) []int {
	products := s.VisibleProducts()
	out := make([]int, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func (c *storefrontTestContext) aCatalogWithTheBlueJacket() error {
	c.catalog = catalogtest.Catalog()
	return nil
}

func (c *storefrontTestContext) theHaggleSeedIs(seed int) error {
	c.seed = uint64(seed)
	c.store = nil
	return nil
}

func (c *storefrontTestContext) iNegotiateForProduct(request string, productID int) error {
	c.negotiation = c.current().NegotiateDiscount(request, &productID)
	c.lastSuccess = c.negotiation.Success
	if !c.negotiation.Success {
		return fmt.Errorf("negotiation failed: %s", c.negotiation.Error)
	}
	return nil
}

func (c *storefrontTestContext) iSearchFor(query string) error {
	c.lastSuccess = c.current().SearchProducts(query).Success
	return nil
}

func (c *storefrontTestContext) iFilterByCategory(category string) error {
	c.visibleBefore = visibleIDs(c.current())
	c.lastSuccess = c.current().FilterCategory(category).Success
	return nil
}

func (c *storefrontTestContext) iAddProductToTheCart(productID int) error {
	res := c.current().AddToCart(productID)
	c.lastSuccess = res.Success
	if !res.Success {
		return fmt.Errorf("add to cart failed: %s", res.Error)
	}
	return nil
}

func (c *storefrontTestContext) iApplyCouponForPercent(code string, percent int) error {
	res := c.current().ApplyCoupon(code, percent)
	c.lastSuccess = res.Success
	if !res.Success {
		return fmt.Errorf("apply coupon failed: %s", res.Error)
	}
	return nil
}

func (c *storefrontTestContext) theStoreIsReopened() error {
	c.store = nil
	c.current()
	return nil
}

func (c *storefrontTestContext) theAssistantChainSearchesAndAdds(query string, productID int) error {
	searchArgs, err := json.Marshal(command.SearchProducts{Query: query})
	if err != nil {
		return err
	}
	addArgs, err := json.Marshal(command.AddToCart{ProductID: productID})
	if err != nil {
		return err
	}

	head := command.Link(nil, command.NameSearchProducts, string(searchArgs))
	head = command.Link(head, command.NameAddToCart, string(addArgs))

	results, err := command.NewExecutor(c.logger).Replay(c.current(), head)
	if err != nil {
		return err
	}
	for _, r := range results {
		if !r.Success {
			return fmt.Errorf("%s failed: %s", r.Function, r.Error)
		}
	}
	c.lastSuccess = true
	return nil
}

func (c *storefrontTestContext) theNegotiationIsApproved() error {
	if !c.negotiation.Approved {
		return fmt.Errorf("expected approval, got reason %q", c.negotiation.Reason)
	}
	return nil
}

func (c *storefrontTestContext) theDiscountIsBetweenAndPercent(lo, hi int) error {
	if d := c.negotiation.DiscountPercent; d < lo || d > hi {
		return fmt.Errorf("expected discount in [%d, %d], got %d", lo, hi, d)
	}
	return nil
}

func (c *storefrontTestContext) theFinalPriceOfProductIsAtLeast(productID, floor int) error {
	p, ok := c.catalog.Get(productID)
	if !ok {
		return fmt.Errorf("product %d not in catalog", productID)
	}
	final := p.DiscountedPrice(c.negotiation.DiscountPercent)
	if final.LessThan(decimal.NewFromInt(int64(floor))) {
		return fmt.Errorf("final price %s is below %d", final, floor)
	}
	return nil
}

func (c *storefrontTestContext) aCouponWithAPositiveDiscountIsApplied() error {
	coupon := c.current().Snapshot().Coupon
	if coupon == nil || coupon.DiscountPercent <= 0 {
		return fmt.Errorf("expected a positive coupon, got %+v", coupon)
	}
	return nil
}

func (c *storefrontTestContext) theNegotiationIsRefusedWithReason(reason string) error {
	if c.negotiation.Approved {
		return errors.New("expected a refusal, negotiation was approved")
	}
	if c.negotiation.Reason != reason {
		return fmt.Errorf("expected reason %q, got %q", reason, c.negotiation.Reason)
	}
	return nil
}

func (c *storefrontTestContext) noCouponIsApplied() error {
	if coupon := c.current().Snapshot().Coupon; coupon != nil {
		return fmt.Errorf("expected no coupon, got %s", coupon.Code)
	}
	return nil
}

func (c *storefrontTestContext) aPenaltyCouponWithANegativeDiscountIsApplied() error {
	coupon := c.current().Snapshot().Coupon
	if coupon == nil || !coupon.IsPenalty() || coupon.DiscountPercent >= 0 {
		return fmt.Errorf("expected a penalty coupon, got %+v", coupon)
	}
	return nil
}

func (c *storefrontTestContext) theFirstVisibleProductIs(name string) error {
	visible := c.current().VisibleProducts()
	if len(visible) == 0 {
		return errors.New("no visible products")
	}
	if visible[0].Name != name {
		return fmt.Errorf("expected %q first, got %q", name, visible[0].Name)
	}
	return nil
}

func (c *storefrontTestContext) atMostProductsAreVisible(n int) error {
	if got := len(c.current().VisibleProducts()); got > n {
		return fmt.Errorf("expected at most %d visible products, got %d", n, got)
	}
	return nil
}

func (c *storefrontTestContext) theOperationFails() error {
	if c.lastSuccess {
		return errors.New("expected the last operation to fail")
	}
	return nil
}

func (c *storefrontTestContext) theVisibleProductsAreUnchanged() error {
	after := visibleIDs(c.current())
	if fmt.Sprint(after) != fmt.Sprint(c.visibleBefore) {
		return fmt.Errorf("visible products changed from %v to %v", c.visibleBefore, after)
	}
	return nil
}

func (c *storefrontTestContext) theCartHasLines(n int) error {
	if got := len(c.current().Cart()); got != n {
		return fmt.Errorf("expected %d cart lines, got %d", n, got)
	}
	return nil
}

func (c *storefrontTestContext) productHasQuantity(productID, quantity int) error {
	for _, line := range c.current().Cart() {
		if line.Product.ID == productID {
			if line.Quantity != quantity {
				return fmt.Errorf("expected quantity %d, got %d", quantity, line.Quantity)
			}
			return nil
		}
	}
	return fmt.Errorf("product %d is not in the cart", productID)
}

func (c *storefrontTestContext) theAppliedCouponIs(code string) error {
	coupon := c.current().Snapshot().Coupon
	if coupon == nil || coupon.Code != code {
		return fmt.Errorf("expected coupon %q, got %+v", code, coupon)
	}
	return nil
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &storefrontTestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^a catalog with the Blue Jacket and five unrelated products$`, tc.aCatalogWithTheBlueJacket)
	ctx.Step(`^the haggle seed is (\d+)$`, tc.theHaggleSeedIs)

	// When steps
	ctx.Step(`^I negotiate "([^"]*)" for product (\d+)$`, tc.iNegotiateForProduct)
	ctx.Step(`^I search for "([^"]*)"$`, tc.iSearchFor)
	ctx.Step(`^I filter by category "([^"]*)"$`, tc.iFilterByCategory)
	ctx.Step(`^I add product (\d+) to the cart$`, tc.iAddProductToTheCart)
	ctx.Step(`^I apply coupon "([^"]*)" for (\d+) percent$`, tc.iApplyCouponForPercent)
	ctx.Step(`^the store is reopened$`, tc.theStoreIsReopened)
	ctx.Step(`^the assistant chain searches for "([^"]*)" and then adds product (\d+)$`, tc.theAssistantChainSearchesAndAdds)

	// Then steps
	ctx.Step(`^the negotiation is approved$`, tc.theNegotiationIsApproved)
	ctx.Step(`^the discount is between (\d+) and (\d+) percent$`, tc.theDiscountIsBetweenAndPercent)
	ctx.Step(`^the final price of product (\d+) is at least (\d+)$`, tc.theFinalPriceOfProductIsAtLeast)
	ctx.Step(`^a coupon with a positive discount is applied$`, tc.aCouponWithAPositiveDiscountIsApplied)
	ctx.Step(`^the negotiation is refused with reason "([^"]*)"$`, tc.theNegotiationIsRefusedWithReason)
	ctx.Step(`^no coupon is applied$`, tc.noCouponIsApplied)
	ctx.Step(`^a penalty coupon with a negative discount is applied$`, tc.aPenaltyCouponWithANegativeDiscountIsApplied)
	ctx.Step(`^the first visible product is "([^"]*)"$`, tc.theFirstVisibleProductIs)
	ctx.Step(`^at most (\d+) products are visible$`, tc.atMostProductsAreVisible)
	ctx.Step(`^the operation fails$`, tc.theOperationFails)
	ctx.Step(`^the visible products are unchanged$`, tc.theVisibleProductsAreUnchanged)
	ctx.Step(`^the cart has (\d+) lines?$`, tc.theCartHasLines)
	ctx.Step(`^product (\d+) has quantity (\d+)$`, tc.productHasQuantity)
	ctx.Step(`^the applied coupon is "([^"]*)"$`, tc.theAppliedCouponIs)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"storefront.feature"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
