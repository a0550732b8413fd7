// internal/domain/command/parse.go
package command

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/your-org/store-pilot/internal/domain/search"
	"github.com/your-org/store-pilot/internal/domain/store"
)

var (
	// ErrMalformedArguments means the arguments were not a JSON object. This
	// is a fault of the model, not of the shopper.
	ErrMalformedArguments = errors.New("malformed function arguments")
	// ErrUnknownFunction marks calls to functions the store does not offer
	ErrUnknownFunction = errors.New("unknown function")
)

const (
	msgInvalidProductID = "Invalid product ID. Product ID must be a number."
	msgInvalidPercent   = "Invalid discount percentage. Must be between 0 and 100"
)

// ArgumentError is a well-formed call with an argument of the wrong type
type ArgumentError struct {
	Function string
	Message  string
}

func (e *ArgumentError) Error() string {
	return e.Message
}

// Unwrap lets callers treat argument errors as store validation failures
func (e *ArgumentError) Unwrap() error {
	return store.ErrValidation
}

type fields map[string]json.RawMessage

// Parse decodes a function call into a Command. Unknown names produce an
// Unknown command rather than an error.
func Parse(name, arguments string) (Command, error) {
	f, err := decodeFields(arguments)
	if err != nil {
		return nil, fmt.Errorf("%w for %s: %v", ErrMalformedArguments, name, err)
	}

	argErr := func(message string) error {
		return &ArgumentError{Function: name, Message: message}
	}

	switch name {
	case NameAddToCart, NameRemoveFromCart, NameNavigateToProduct:
		id, ok := f.productID("productId")
		if !ok {
			return nil, argErr(msgInvalidProductID)
		}
		switch name {
		case NameAddToCart:
			return AddToCart{ProductID: id}, nil
		case NameRemoveFromCart:
			return RemoveFromCart{ProductID: id}, nil
		default:
			return NavigateToProduct{ProductID: id}, nil
		}

	case NameSortProducts:
		order, ok := f.str("order")
		if !ok {
			return nil, argErr(`Invalid sort order. Must be "asc" or "desc"`)
		}
		return SortProducts{Order: order}, nil

	case NameFilterCategory:
		category, ok := f.str("category")
		if !ok {
			return nil, argErr("Invalid category")
		}
		return FilterCategory{Category: category}, nil

	case NameApplyCoupon:
		code, ok := f.str("code")
		if !ok {
			return nil, argErr("Invalid coupon code")
		}
		percent, ok := f.integer("discountPercent")
		if !ok {
			return nil, argErr(msgInvalidPercent)
		}
		return ApplyCoupon{Code: code, DiscountPercent: percent}, nil

	case NameSearchProducts:
		query, ok := f.str("query")
		if !ok {
			return nil, argErr(search.MsgInvalidQuery)
		}
		return SearchProducts{Query: query}, nil

	case NameNegotiateDiscount:
		request, ok := f.str("request")
		if !ok {
			return nil, argErr("Invalid negotiation request")
		}
		cmd := NegotiateDiscount{Request: request}
		if f.present("productId") {
			id, ok := f.productID("productId")
			if !ok {
				return nil, argErr(msgInvalidProductID)
			}
			cmd.ProductID = &id
		}
		return cmd, nil

	case NameRecommendProducts:
		return RecommendProducts{}, nil
	}

	return Unknown{Function: name}, nil
}

func decodeFields(arguments string) (fields, error) {
	trimmed := strings.TrimSpace(arguments)
	if trimmed == "" {
		return fields{}, nil
	}

	var f fields
	dec := json.NewDecoder(strings.NewReader(trimmed))
	dec.UseNumber()
	if err := dec.Decode(&f); err != nil {
		return nil, err
	}
	if f == nil {
		f = fields{}
	}
	return f, nil
}

// present reports whether key exists and is not null
func (f fields) present(key string) bool {
	raw, ok := f[key]
	return ok && !bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// str returns the string at key. A missing key yields "" so the store can
// reject it with its own message.
func (f fields) str(key string) (string, bool) {
	if !f.present(key) {
		return "", true
	}
	var s string
	if err := json.Unmarshal(f[key], &s); err != nil {
		return "", false
	}
	return s, true
}

func (f fields) integer(key string) (int, bool) {
	if !f.present(key) {
		return 0, false
	}
	raw := bytes.TrimSpace(f[key])
	// json.Number would also accept a quoted number
	if raw[0] == '"' {
		return 0, false
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, false
	}
	v, err := n.Float64()
	if err != nil || v != math.Trunc(v) || math.IsInf(v, 0) {
		return 0, false
	}
	if v > math.MaxInt32 || v < math.MinInt32 {
		return 0, false
	}
	return int(v), true
}

func (f fields) productID(key string) (int, bool) {
	id, ok := f.integer(key)
	if !ok || id < 1 {
		return 0, false
	}
	return id, true
}
