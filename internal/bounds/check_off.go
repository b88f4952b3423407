//go:build dope_nobounds

package bounds

// Checking is the global bounds-checking switch. Build without -tags dope_nobounds to enable it.
const Checking = false
