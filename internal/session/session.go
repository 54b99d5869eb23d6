// Package session tracks whether a user is identified to the backend.
//
// The backend is the authority on credentials; this is only the client-side
// cache of "who is logged in". Its presence gates every data-mutating
// request the view models issue.
package session

// Store is the capability interface for session state. It is constructed
// once per process and passed by reference to anything that needs it, so
// tests can substitute a fake.
type Store interface {
	// IsAuthenticated reports whether a non-empty identity is present.
	IsAuthenticated() bool

	// Identity returns the stored identity, or "" when absent.
	Identity() string

	// Establish records the identity. No validation happens here; the
	// gateway's login call is the authority.
	Establish(identity string) error

	// Clear removes the identity. Called on logout and on any 401.
	Clear() error

	// Watch registers onChange to run whenever the durable state changes
	// out-of-band (another process writing the state file). It returns a
	// stop function that must be called on teardown.
	Watch(onChange func()) (stop func(), err error)
}
