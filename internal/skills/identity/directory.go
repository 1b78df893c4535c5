// Package identity holds the fixed set of users allowed to sign in. The
// directory is built once at startup and never changes while running.
package identity

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/aussiebroadwan/myskills/internal/skills/domain"
	"github.com/aussiebroadwan/myskills/pkg/cryptox"
	"github.com/pquerna/otp/totp"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDuplicateUser      = errors.New("duplicate username")
	ErrInvalidUser        = errors.New("invalid user entry")
)

// DefaultPassword is the password of the built-in demo users.
const DefaultPassword = "pass"

// DefaultUsernames are available when no users file is configured.
var DefaultUsernames = []string{"Lia", "Leo"}

// Directory is a read-only username to user map. Safe for concurrent use.
type Directory struct {
	users map[string]domain.User
	// verified in place of a real hash for unknown usernames
	decoy string
}

// NewDirectory builds a directory from users. Usernames are case sensitive
// and must be unique.
func NewDirectory(users []domain.User) (*Directory, error) {
	d := &Directory{users: make(map[string]domain.User, len(users))}

	for _, u := range users {
		if strings.TrimSpace(u.Username) == "" || u.PasswordHash == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidUser, u.Username)
		}
		if !cryptox.IsSupportedHash(u.PasswordHash) {
			return nil, fmt.Errorf("%w: %q has an unsupported password hash", ErrInvalidUser, u.Username)
		}
		if _, dup := d.users[u.Username]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateUser, u.Username)
		}
		// every user holds the same fixed roles
		u.Roles = slices.Clone(domain.DefaultRoles)
		d.users[u.Username] = u
	}

	decoy, err := cryptox.HashPassword("decoy-password")
	if err != nil {
		return nil, fmt.Errorf("identity: hash decoy: %w", err)
	}
	d.decoy = decoy

	return d, nil
}

// DefaultUsers returns the demo users with freshly hashed passwords.
func DefaultUsers() ([]domain.User, error) {
	users := make([]domain.User, 0, len(DefaultUsernames))
	for _, name := range DefaultUsernames {
		hash, err := cryptox.HashPassword(DefaultPassword)
		if err != nil {
			return nil, fmt.Errorf("identity: hash password for %s: %w", name, err)
		}
		users = append(users, domain.User{
			Username:     name,
			PasswordHash: hash,
			Roles:        slices.Clone(domain.DefaultRoles),
		})
	}
	return users, nil
}

type fileEntry struct {
	Username     string `json:"username"`
	PasswordHash string `json:"password_hash"`
	TOTPSecret   string `json:"totp_secret,omitempty"`
}

// LoadUsersFile reads a JSON array of users. Password hashes are argon2id
// strings produced by cryptox.HashPassword or bcrypt strings.
func LoadUsersFile(path string) ([]domain.User, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("identity: read users file: %w", err)
	}

	var entries []fileEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("identity: parse users file: %w", err)
	}

	users := make([]domain.User, 0, len(entries))
	for _, e := range entries {
		users = append(users, domain.User{
			Username:     e.Username,
			PasswordHash: e.PasswordHash,
			TOTPSecret:   e.TOTPSecret,
		})
	}
	return users, nil
}

// Load builds the directory from path, or from the default users when path
// is empty.
func Load(path string) (*Directory, error) {
	var (
		users []domain.User
		err   error
	)
	if path == "" {
		users, err = DefaultUsers()
	} else {
		users, err = LoadUsersFile(path)
	}
	if err != nil {
		return nil, err
	}
	return NewDirectory(users)
}

// Lookup returns the user with exactly this username.
func (d *Directory) Lookup(username string) (domain.User, bool) {
	u, ok := d.users[username]
	return u, ok
}

// Usernames lists the known usernames in sorted order.
func (d *Directory) Usernames() []string {
	names := make([]string, 0, len(d.users))
	for name := range d.users {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Authenticate checks password and, for users with a second factor, the
// current TOTP code. Every failure is reported as ErrInvalidCredentials.
func (d *Directory) Authenticate(username, password, code string) (domain.User, error) {
	u, ok := d.users[username]
	if !ok {
		// keep the response time close to a real check
		_ = cryptox.VerifyPassword(password, d.decoy)
		return domain.User{}, ErrInvalidCredentials
	}

	if err := cryptox.VerifyPassword(password, u.PasswordHash); err != nil {
		return domain.User{}, ErrInvalidCredentials
	}

	if u.HasTOTP() && !totp.Validate(strings.TrimSpace(code), u.TOTPSecret) {
		return domain.User{}, ErrInvalidCredentials
	}

	return u, nil
}
