//go:build !dope_nobounds

package bounds

// Checking is the global bounds-checking switch. Build with -tags dope_nobounds to disable it.
const Checking = true
