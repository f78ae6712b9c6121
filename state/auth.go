package state

// AuthorizationStatus is the store's knowledge of the user's session
type AuthorizationStatus int

const (
	// AuthUnknown is the status before the session check completes
	AuthUnknown AuthorizationStatus = iota
	// AuthAuthenticated indicates a valid session
	AuthAuthenticated
	// AuthNotAuthenticated indicates no session or a rejected one
	AuthNotAuthenticated
)

// String returns the string representation of an AuthorizationStatus
func (s AuthorizationStatus) String() string {
	switch s {
	case AuthAuthenticated:
		return "AUTH"
	case AuthNotAuthenticated:
		return "NO_AUTH"
	default:
		return "UNKNOWN"
	}
}

// IsKnown reports whether the session check has resolved
func (s AuthorizationStatus) IsKnown() bool {
	return s == AuthAuthenticated || s == AuthNotAuthenticated
}
