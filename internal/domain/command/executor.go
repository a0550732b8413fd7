// internal/domain/command/executor.go
package command

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/your-org/store-pilot/internal/domain/store"
)

// Result is the outcome of running one command. Data holds the store's
// typed result and is what gets reported back to the model.
type Result struct {
	Function string `json:"function"`
	Success  bool   `json:"success"`
	Error    string `json:"error,omitempty"`
	Message  string `json:"message,omitempty"`
	Data     any    `json:"data,omitempty"`

	err error
}

// Err returns nil when the command succeeded
func (r Result) Err() error {
	return r.err
}

// Failed builds the result for a call that never reached the store
func Failed(function, message string, err error) Result {
	return Result{
		Function: function,
		Error:    message,
		Data: struct {
			Success bool   `json:"success"`
			Error   string `json:"error"`
		}{false, message},
		err: err,
	}
}

// Executor dispatches commands to a store
type Executor struct {
	logger logrus.FieldLogger
}

// NewExecutor creates an executor
func NewExecutor(logger logrus.FieldLogger) *Executor {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Executor{logger: logger}
}

// Execute runs cmd against s
func (e *Executor) Execute(s *store.Store, cmd Command) Result {
	var (
		data    any
		outcome store.Outcome
	)

	switch c := cmd.(type) {
	case AddToCart:
		r := s.AddToCart(c.ProductID)
		data, outcome = r, r.Outcome
	case RemoveFromCart:
		r := s.RemoveFromCart(c.ProductID)
		data, outcome = r, r.Outcome
	case SortProducts:
		r := s.SortProducts(c.Order)
		data, outcome = r, r.Outcome
	case FilterCategory:
		r := s.FilterCategory(c.Category)
		data, outcome = r, r.Outcome
	case NavigateToProduct:
		r := s.NavigateToProduct(c.ProductID)
		data, outcome = r, r.Outcome
	case ApplyCoupon:
		r := s.ApplyCoupon(c.Code, c.DiscountPercent)
		data, outcome = r, r.Outcome
	case SearchProducts:
		r := s.SearchProducts(c.Query)
		data, outcome = r, r.Outcome
	case NegotiateDiscount:
		r := s.NegotiateDiscount(c.Request, c.ProductID)
		data, outcome = r, r.Outcome
	case RecommendProducts:
		r := s.RecommendProducts()
		data, outcome = r, r.Outcome
	default:
		e.logger.WithField("function", cmd.Name()).Warn("Unknown function requested")
		return Failed(cmd.Name(), "Unknown function: "+cmd.Name(), fmt.Errorf("%w: %s", ErrUnknownFunction, cmd.Name()))
	}

	return Result{
		Function: cmd.Name(),
		Success:  outcome.Success,
		Error:    outcome.Error,
		Message:  outcome.Message,
		Data:     data,
		err:      outcome.Err(),
	}
}

// Run parses and executes a single call. Malformed arguments are returned
// as an error; argument type errors become a failed Result.
func (e *Executor) Run(s *store.Store, name, arguments string) (Result, error) {
	cmd, err := Parse(name, arguments)
	if err != nil {
		var argErr *ArgumentError
		if errors.As(err, &argErr) {
			return Failed(name, argErr.Message, err), nil
		}
		return Result{}, err
	}
	return e.Execute(s, cmd), nil
}

// Replay runs every call in a chain oldest first and stops at the first
// failure.
func (e *Executor) Replay(s *store.Store, head *ExecutedFunction) ([]Result, error) {
	calls, err := Flatten(head)
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(calls))
	for _, call := range calls {
		res, err := e.Run(s, call.Name, string(call.Params))
		if err != nil {
			return results, err
		}
		results = append(results, res)
		if !res.Success {
			break
		}
	}
	return results, nil
}
