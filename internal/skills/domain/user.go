package domain

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// DefaultRoles are granted to every user. Nothing checks them yet.
var DefaultRoles = []string{RoleUser, RoleAdmin}

// User is an entry of the fixed user directory.
type User struct {
	Username     string
	PasswordHash string
	TOTPSecret   string // empty when no second factor is set up
	Roles        []string
}

// HasTOTP reports whether the user must present a one-time code.
func (u User) HasTOTP() bool { return u.TOTPSecret != "" }
