package domain

// User represents a registered storefront account.
//
// IDs are assigned by the store, start at 1, and are never reused. The
// password field holds whatever the auth layer stored (a bcrypt hash in
// practice); it never appears in JSON output.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Password string `json:"-"`
}
