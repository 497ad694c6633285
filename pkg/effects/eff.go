package effects

import (
	"reflect"

	"github.com/arthur-debert/homebrew-automation/pkg/errors"
)

// Step consumes the result of the previous step and produces the next one.
type Step func(any) (any, error)

// Eff is a deferred computation. Use Pure or FromComputation to build one.
type Eff struct {
	steps []Step
}

// Pure wraps a plain value. Forcing it has no side effects.
func Pure(value any) *Eff {
	return &Eff{steps: []Step{func(any) (any, error) {
		return value, nil
	}}}
}

// FromComputation wraps a thunk that is invoked once per Force.
func FromComputation(thunk func() (any, error)) *Eff {
	return &Eff{steps: []Step{func(any) (any, error) {
		return thunk()
	}}}
}

// Force runs every step in order and returns the last result. It stops at
// the first step that returns an error.
func (e *Eff) Force() (any, error) {
	var result any
	for _, step := range e.steps {
		next, err := step(result)
		if err != nil {
			return nil, err
		}
		result = next
	}
	return result, nil
}

// ForceAs forces e and asserts the result to T. A nil result is only
// accepted when T is a type that can be nil, such as a pointer or slice.
func ForceAs[T any](e *Eff) (T, error) {
	var zero T
	result, err := e.Force()
	if err != nil {
		return zero, err
	}
	if result == nil {
		if !nillable(reflect.TypeOf((*T)(nil)).Elem()) {
			return zero, errors.Newf(errors.ErrInvalidInput,
				"effect produced nil, want %T", zero)
		}
		return zero, nil
	}
	typed, ok := result.(T)
	if !ok {
		return zero, errors.Newf(errors.ErrInvalidInput,
			"effect produced %T, want %T", result, zero)
	}
	return typed, nil
}

func nillable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func:
		return true
	default:
		return false
	}
}

// Len returns the number of steps.
func (e *Eff) Len() int {
	return len(e.steps)
}

// Duplicate returns a new Eff whose step list is an independent copy of the
// receiver's. The steps themselves are shared, so state captured by a step
// closure is shared too.
func (e *Eff) Duplicate() *Eff {
	steps := make([]Step, len(e.steps), len(e.steps)+1)
	copy(steps, e.steps)
	return &Eff{steps: steps}
}

// Transform returns a new Eff that runs the receiver's steps followed by f.
func (e *Eff) Transform(f Step) *Eff {
	return e.Duplicate().TransformInPlace(f)
}

// TransformInPlace appends f to the receiver and returns the receiver.
func (e *Eff) TransformInPlace(f Step) *Eff {
	e.steps = append(e.steps, f)
	return e
}

// Chain returns a new Eff that, when forced, feeds the receiver's result to
// f and forces the Eff it returns. f is not called until Force.
func (e *Eff) Chain(f func(any) *Eff) *Eff {
	return e.Duplicate().ChainInPlace(f)
}

// ChainInPlace is the mutating form of Chain.
func (e *Eff) ChainInPlace(f func(any) *Eff) *Eff {
	return e.TransformInPlace(bind(f))
}

// ApplyFn returns a new Eff that passes the receiver's result to the
// function eventually produced by fe. fe must yield a Step or a
// func(any) any.
func (e *Eff) ApplyFn(fe *Eff) *Eff {
	return e.Duplicate().ApplyFnInPlace(fe)
}

// ApplyFnInPlace is the mutating form of ApplyFn.
func (e *Eff) ApplyFnInPlace(fe *Eff) *Eff {
	return e.ChainInPlace(func(arg any) *Eff {
		return fe.Transform(func(fn any) (any, error) {
			return call(fn, arg)
		})
	})
}

func bind(f func(any) *Eff) Step {
	return func(x any) (any, error) {
		next := f(x)
		if next == nil {
			return nil, errors.New(errors.ErrInvalidInput, "chained function returned a nil effect")
		}
		return next.Force()
	}
}

func call(fn any, arg any) (any, error) {
	switch f := fn.(type) {
	case Step:
		return f(arg)
	case func(any) (any, error):
		return f(arg)
	case func(any) any:
		return f(arg), nil
	default:
		return nil, errors.Newf(errors.ErrInvalidInput,
			"cannot apply a value of type %T", fn)
	}
}
