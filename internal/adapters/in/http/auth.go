package http

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"slices"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
)

// Role decides which parts of the API a user reaches.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleCashier Role = "cajero"
)

const roleContextKey = "role"

type account struct {
	hash []byte
	role Role
}

// Authenticator checks basic-auth credentials against bcrypt hashes. The
// user names are the role names.
type Authenticator struct {
	accounts map[string]account
}

// NewAuthenticator hashes the configured passwords. A role with an empty
// password cannot log in.
func NewAuthenticator(adminPassword, cashierPassword string) (*Authenticator, error) {
	a := &Authenticator{accounts: make(map[string]account)}
	for role, password := range map[Role]string{RoleAdmin: adminPassword, RoleCashier: cashierPassword} {
		if password == "" {
			continue
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		a.accounts[string(role)] = account{hash: hash, role: role}
	}
	if len(a.accounts) == 0 {
		return nil, errors.New("at least one of the admin or cashier passwords must be set")
	}
	return a, nil
}

// Validate is an echo middleware.BasicAuthValidator. On success the role is
// stored in the request context.
func (a *Authenticator) Validate(username, password string, c echo.Context) (bool, error) {
	for name, acc := range a.accounts {
		if subtle.ConstantTimeCompare([]byte(name), []byte(username)) != 1 {
			continue
		}
		if bcrypt.CompareHashAndPassword(acc.hash, []byte(password)) != nil {
			return false, nil
		}
		c.Set(roleContextKey, acc.role)
		return true, nil
	}
	return false, nil
}

// RequireRole lets through users holding one of roles.
func RequireRole(roles ...Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !slices.Contains(roles, roleOf(c)) {
				return c.JSON(http.StatusForbidden, Error{Code: http.StatusForbidden, Message: "forbidden"})
			}
			return next(c)
		}
	}
}

func roleOf(c echo.Context) Role {
	role, _ := c.Get(roleContextKey).(Role)
	return role
}
