//go:build !debug_offsetalloc

package offsetalloc

// debugValidate is a no-op in production builds. See validate_debug.go.
func debugValidate(v Validatable) {}

// debugCloseCheck is a no-op in production builds: Close never reports
// ErrLeakedAllocations unless built with debug_offsetalloc. See
// validate_debug.go.
func (a *Allocator) debugCloseCheck() error { return nil }
