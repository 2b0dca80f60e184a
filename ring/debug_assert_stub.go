//go:build !ringdebug

package ring

// assertResettable is a no-op outside the ringdebug build; the check exists
// only to catch misuse during development, not to guard production paths.
//
//go:nosplit
//go:inline
func (r *Ring) assertResettable() {}
