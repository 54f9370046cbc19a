package session

// Surface classifies a view by who may use it.
type Surface int

const (
	// SurfaceProtected requires an authenticated session.
	SurfaceProtected Surface = iota
	// SurfacePublicOnly is for login/register style views that make no sense
	// with a session already in place.
	SurfacePublicOnly
	// SurfacePublic is open to everyone.
	SurfacePublic
)

// Decision is the route guard's verdict.
type Decision int

const (
	// DecisionWait means rehydration has not settled; render a neutral
	// loading state and decide nothing.
	DecisionWait Decision = iota
	DecisionAllow
	// DecisionLogin redirects to the login entry point.
	DecisionLogin
	// DecisionHome redirects to the authenticated landing view.
	DecisionHome
)

// Guard gates a surface on session state. Pure derived-state logic: no I/O,
// no retries, no failure modes of its own.
func Guard(snap Snapshot, surface Surface) Decision {
	if !snap.Rehydrated {
		return DecisionWait
	}

	switch surface {
	case SurfaceProtected:
		if snap.Authenticated {
			return DecisionAllow
		}
		return DecisionLogin
	case SurfacePublicOnly:
		if snap.Authenticated {
			return DecisionHome
		}
		return DecisionAllow
	default:
		return DecisionAllow
	}
}
