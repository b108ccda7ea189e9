package domain

// UserIdentity is the signed-in user as reported by the identity provider.
// The cart session holds a read-only reference; email is the user key.
type UserIdentity struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	PhotoURL string `json:"photo,omitempty"`
}
