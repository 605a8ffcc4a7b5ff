package ports

// IdentityProvider yields the stable identity of the caller, recorded as the
// initiator of pauses and documentation entries
type IdentityProvider interface {
	CurrentInitiator() (string, error)
}
