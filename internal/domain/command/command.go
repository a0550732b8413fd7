// Package command turns function calls proposed by the assistant into typed
// store operations.
package command

// Function names the assistant may call
const (
	NameAddToCart         = "addToCart"
	NameRemoveFromCart    = "removeFromCart"
	NameSortProducts      = "sortProducts"
	NameFilterCategory    = "filterCategory"
	NameNavigateToProduct = "navigateToProduct"
	NameApplyCoupon       = "applyCoupon"
	NameSearchProducts    = "searchProducts"
	NameNegotiateDiscount = "negotiateDiscount"
	NameRecommendProducts = "recommendProducts"
)

// Command is one of the types declared in this package
type Command interface {
	Name() string
	isCommand()
}

// AddToCart adds one unit of a product
type AddToCart struct {
	ProductID int `json:"productId" jsonschema:"description=The unique ID of the product to add to cart"`
}

// RemoveFromCart removes a product line
type RemoveFromCart struct {
	ProductID int `json:"productId" jsonschema:"description=The unique ID of the product to remove from cart"`
}

// SortProducts orders the visible products by price
type SortProducts struct {
	Order string `json:"order" jsonschema:"enum=asc,enum=desc,description=asc for cheapest first and desc for most expensive first"`
}

// FilterCategory shows one category
type FilterCategory struct {
	Category string `json:"category" jsonschema:"description=The category name to filter by such as clothing or bags or footwear or accessories"`
}

// NavigateToProduct opens a product page
type NavigateToProduct struct {
	ProductID int `json:"productId" jsonschema:"description=The unique ID of the product to view"`
}

// ApplyCoupon applies a coupon code
type ApplyCoupon struct {
	Code            string `json:"code" jsonschema:"description=The coupon code such as BDAY-20-123"`
	DiscountPercent int    `json:"discountPercent" jsonschema:"minimum=0,maximum=100,description=The discount percentage between 0 and 100"`
}

// SearchProducts runs a free-text product search
type SearchProducts struct {
	Query string `json:"query" jsonschema:"description=What the shopper is looking for such as summer wedding outfit or leather bag"`
}

// NegotiateDiscount haggles over a product
type NegotiateDiscount struct {
	Request   string `json:"request" jsonschema:"description=The shopper's discount request or reason in their own words"`
	ProductID *int   `json:"productId,omitempty" jsonschema:"description=Optional product ID to negotiate for. Defaults to the product named in the request or the first cart item or the product being viewed"`
}

// RecommendProducts suggests products based on activity
type RecommendProducts struct{}

// Unknown is a function name this store does not implement. Executing it is
// a no-op.
type Unknown struct {
	Function string `json:"-"`
}

func (AddToCart) Name() string         { return NameAddToCart }
func (RemoveFromCart) Name() string    { return NameRemoveFromCart }
func (SortProducts) Name() string      { return NameSortProducts }
func (FilterCategory) Name() string    { return NameFilterCategory }
func (NavigateToProduct) Name() string { return NameNavigateToProduct }
func (ApplyCoupon) Name() string       { return NameApplyCoupon }
func (SearchProducts) Name() string    { return NameSearchProducts }
func (NegotiateDiscount) Name() string { return NameNegotiateDiscount }
func (RecommendProducts) Name() string { return NameRecommendProducts }
func (u Unknown) Name() string         { return u.Function }

func (AddToCart) isCommand()         {}
func (RemoveFromCart) isCommand()    {}
func (SortProducts) isCommand()      {}
func (FilterCategory) isCommand()    {}
func (NavigateToProduct) isCommand() {}
func (ApplyCoupon) isCommand()       {}
func (SearchProducts) isCommand()    {}
func (NegotiateDiscount) isCommand() {}
func (RecommendProducts) isCommand() {}
func (Unknown) isCommand()           {}
