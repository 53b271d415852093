package models

// Credentials is the resolved token for one request. It is produced once
// at the boundary (session middleware or the process default token) and
// threaded explicitly through every call; nothing below the handler reads
// tokens ambiently.
type Credentials struct {
	Token         string
	Authenticated bool
}

// DataScope describes which repositories the token can see
func (c Credentials) DataScope() string {
	if c.Authenticated {
		return "public-and-private"
	}
	return "public-only"
}

// Visibility returns the tag fragment strategies use to record whether
// they ran with a user token
func (c Credentials) Visibility() string {
	if c.Authenticated {
		return "authenticated"
	}
	return "public"
}
