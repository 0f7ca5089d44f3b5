//go:build !linux && !darwin && !freebsd

package bindings

// DefaultLibraryName returns the platform soname of the GIAC C shim.
func DefaultLibraryName() string { return "giac_c.dll" }

// Open always fails: the runtime loader is only implemented for platforms
// with dlopen. Callers fall back to degraded mode.
func Open(path string) (Engine, error) {
	return nil, ErrUnavailable
}
