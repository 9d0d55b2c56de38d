package auth

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/mboehm/travellog/internal/domain"
)

// Account pairs an identity with its password for the static authenticator.
type Account struct {
	Identity domain.Identity
	Password string
}

// StaticAuthenticator verifies credentials against a fixed account list and
// remembers the signed-in identity for the life of the process. It stands in
// for a hosted auth provider; a single-family deployment only ever has a
// couple of accounts.
type StaticAuthenticator struct {
	accounts []Account

	mu      sync.Mutex
	current *domain.Identity
}

// NewStaticAuthenticator constructs an authenticator over the given accounts.
func NewStaticAuthenticator(accounts []Account) *StaticAuthenticator {
	return &StaticAuthenticator{accounts: accounts}
}

// DefaultAccounts returns the built-in family account list.
func DefaultAccounts() []Account {
	return []Account{
		{
			Identity: domain.Identity{
				ID:    uuid.MustParse("00000000-0000-0000-0000-000000000002"),
				Email: "family@example.com",
				Name:  "Family Account",
			},
			Password: "family123",
		},
	}
}

// SignIn matches email (case-insensitive) and password against the account
// list. Returns domain.ErrUnauthenticated when nothing matches.
func (a *StaticAuthenticator) SignIn(_ context.Context, email, password string) (domain.Identity, error) {
	for _, acct := range a.accounts {
		if strings.EqualFold(acct.Identity.Email, email) && acct.Password == password {
			a.mu.Lock()
			identity := acct.Identity
			a.current = &identity
			a.mu.Unlock()
			return identity, nil
		}
	}
	return domain.Identity{}, domain.ErrUnauthenticated
}

// SignOut forgets the current session. Signing out twice is harmless.
func (a *StaticAuthenticator) SignOut(_ context.Context) error {
	a.mu.Lock()
	a.current = nil
	a.mu.Unlock()
	return nil
}

// CurrentSession returns the identity signed in earlier in this process, or
// domain.ErrUnauthenticated when there is none.
func (a *StaticAuthenticator) CurrentSession(_ context.Context) (domain.Identity, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.current == nil {
		return domain.Identity{}, domain.ErrUnauthenticated
	}
	return *a.current, nil
}
