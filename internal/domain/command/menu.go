// internal/domain/command/menu.go
package command

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// FunctionSpec describes a callable function to the language model
type FunctionSpec struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

var menuEntries = []struct {
	name        string
	description string
	args        any
}{
	{NameAddToCart, "Add a product to the shopping cart when the user wants to buy something", &AddToCart{}},
	{NameRemoveFromCart, "Remove a product from the shopping cart", &RemoveFromCart{}},
	{NameSortProducts, "Sort the visible products by price", &SortProducts{}},
	{NameFilterCategory, "Show only products from one category", &FilterCategory{}},
	{NameNavigateToProduct, "Open the detail page of a product", &NavigateToProduct{}},
	{NameApplyCoupon, "Apply a coupon code to the cart. Use this after a successful negotiation to apply the generated coupon", &ApplyCoupon{}},
	{NameSearchProducts, "Search products by keywords such as occasion or style or colour or material", &SearchProducts{}},
	{NameNegotiateDiscount, "Haggle with the shopper over the price of a product. Use this whenever the user asks for a discount or a better deal or gives a reason they deserve one", &NegotiateDiscount{}},
	{NameRecommendProducts, "Recommend products based on what the shopper has viewed and added to the cart", &RecommendProducts{}},
}

// Menu returns the functions the assistant may call
func Menu() ([]FunctionSpec, error) {
	r := &jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}

	specs := make([]FunctionSpec, 0, len(menuEntries))
	for _, entry := range menuEntries {
		params, err := schemaMap(r.Reflect(entry.args))
		if err != nil {
			return nil, fmt.Errorf("failed to build schema for %s: %w", entry.name, err)
		}
		specs = append(specs, FunctionSpec{
			Name:        entry.name,
			Description: entry.description,
			Parameters:  params,
		})
	}
	return specs, nil
}

func schemaMap(schema *jsonschema.Schema) (map[string]any, error) {
	raw, err := json.Marshal(schema)
	if err != nil {
		return nil, err
	}

	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	delete(m, "$schema")
	delete(m, "$id")
	if _, ok := m["properties"]; !ok {
		m["properties"] = map[string]any{}
	}
	return m, nil
}
