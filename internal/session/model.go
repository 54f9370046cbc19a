package session

// User is the authenticated operator record. It is never persisted; it is
// re-fetched at rehydration or re-supplied at login.
type User struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
	IsActive  bool   `json:"is_active"`
}

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type Profile struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type Session struct {
	AccessToken  string
	RefreshToken string
	User         User
}

// Snapshot is the read-only projection of session state handed to the rest of
// the program. Authenticated is derived, never stored: token present and user
// present.
type Snapshot struct {
	User          *User
	Rehydrated    bool
	Authenticated bool
}
