// internal/domain/command/chain.go
package command

import (
	"encoding/json"
	"errors"
	"fmt"
)

// MaxChainDepth bounds how many linked functions a chain may hold
const MaxChainDepth = 16

// ErrChainTooDeep is returned for chains longer than MaxChainDepth
var ErrChainTooDeep = errors.New("function chain too deep")

// ExecutedFunction records one successful function call and the call before
// it. The newest call is the head.
type ExecutedFunction struct {
	Name             string            `json:"name"`
	Params           json.RawMessage   `json:"params"`
	PreviousFunction *ExecutedFunction `json:"previousFunction,omitempty"`
}

// Link returns a new head that points at prev
func Link(prev *ExecutedFunction, name, arguments string) *ExecutedFunction {
	params := json.RawMessage(arguments)
	if !json.Valid(params) {
		params = json.RawMessage("{}")
	}
	return &ExecutedFunction{Name: name, Params: params, PreviousFunction: prev}
}

// Flatten returns the chain oldest first
func Flatten(head *ExecutedFunction) ([]ExecutedFunction, error) {
	var calls []ExecutedFunction
	for fn := head; fn != nil; fn = fn.PreviousFunction {
		if len(calls) == MaxChainDepth {
			return nil, fmt.Errorf("%w: more than %d calls", ErrChainTooDeep, MaxChainDepth)
		}
		calls = append(calls, ExecutedFunction{Name: fn.Name, Params: fn.Params})
	}

	for i, j := 0, len(calls)-1; i < j; i, j = i+1, j-1 {
		calls[i], calls[j] = calls[j], calls[i]
	}
	return calls, nil
}

// Len counts the calls in a chain, stopping at MaxChainDepth+1
func (f *ExecutedFunction) Len() int {
	n := 0
	for fn := f; fn != nil && n <= MaxChainDepth; fn = fn.PreviousFunction {
		n++
	}
	return n
}
