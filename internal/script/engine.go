package script

import (
	"errors"
	"fmt"
	"sync"

	"github.com/chuanjin/elmlink/internal/elm"
	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"
)

var ErrCompile = errors.New("decoder script does not compile")

// decodeFunc is the signature every script must export as decoder.Decode.
type decodeFunc = func(payload string) (interface{}, error)

// Engine compiles decoder scripts. Each script gets its own interpreter so
// that they can all use package decoder without clashing.
type Engine struct{}

func NewEngine() *Engine {
	return &Engine{}
}

// Compile evaluates src and returns its Decode function as an elm.Decoder.
func (e *Engine) Compile(src string) (elm.Decoder, error) {
	i := interp.New(interp.Options{})
	if err := i.Use(stdlib.Symbols); err != nil {
		return nil, fmt.Errorf("%w: load stdlib: %v", ErrCompile, err)
	}

	if _, err := i.Eval(src); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCompile, err)
	}

	v, err := i.Eval("decoder.Decode")
	if err != nil {
		return nil, fmt.Errorf("%w: could not find decoder.Decode: %v", ErrCompile, err)
	}

	fn, ok := v.Interface().(decodeFunc)
	if !ok {
		return nil, fmt.Errorf("%w: Decode must be func(string) (interface{}, error), got %s", ErrCompile, v.Type())
	}

	return &scriptDecoder{fn: fn}, nil
}

// scriptDecoder guards the interpreted function; yaegi interpreters are not
// safe for concurrent calls.
type scriptDecoder struct {
	mu sync.Mutex
	fn decodeFunc
}

func (d *scriptDecoder) Decode(payload string) (v any, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			v, err = nil, fmt.Errorf("%w: decoder panicked: %v", elm.ErrMalformedResponse, r)
		}
	}()
	v, err = d.fn(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", elm.ErrMalformedResponse, err)
	}
	return v, nil
}
