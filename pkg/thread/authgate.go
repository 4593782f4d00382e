package thread

// Principal identifies the authenticated user as far as this package
// needs: an id for ownership hints and display fields for optimistic
// rendering of the user's own pending input.
type Principal struct {
	ID          string
	DisplayName string
	Avatar      *string
}

// AuthGate is the capability every gated operation consults before
// touching the network. The host owns credentials and sign-in flows;
// this package only ever asks three questions. When a gated operation is
// attempted while unauthenticated, the core calls RequestAuthentication
// instead of performing the operation, so the host can present its
// sign-in affordance.
type AuthGate interface {
	// IsAuthenticated reports whether a principal is present.
	IsAuthenticated() bool

	// Principal returns the current identity, or nil when unauthenticated.
	Principal() *Principal

	// RequestAuthentication asks the host to start its sign-in flow.
	RequestAuthentication()
}
