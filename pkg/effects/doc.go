// Package effects provides Eff, a deferred computation built from an
// ordered list of steps.
//
// An Eff describes what will happen; nothing runs until Force is called.
// Each step receives the result of the previous one, the first step
// receives nil. Forcing is not memoized: every call to Force re-runs
// every step, including their side effects.
//
// # Mutating and non-mutating combinators
//
// Every combinator comes in two forms:
//
//	b := a.Transform(f)        // b is new, a is unchanged
//	b := a.TransformInPlace(f) // b == a, a now ends with f
//
// The InPlace forms append to the receiver's own step list and return the
// receiver. Any other holder of the same *Eff observes the new steps on its
// next Force. This lets a single handle be assembled across several call
// sites, at the cost of aliasing: if you need a branch that must not see
// later appends, take a Duplicate first.
//
// An Eff is not safe for concurrent use.
package effects
