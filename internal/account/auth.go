package account

import (
	"context"
	"fmt"

	"github.com/stolasapp/janus/internal/sec"
)

// ErrInvalidPassword is returned when credentials name an existing account
// but the password does not match the stored hash.
const ErrInvalidPassword Error = "invalid password"

// Authenticate verifies id/password credentials and returns the matching
// account with the password hash still populated; callers must redact before
// returning the record externally. Lookup is by id, not email. An unknown id
// yields [ErrNotFound] and a bad password [ErrInvalidPassword]; the HTTP
// layer maps both to the same status code so callers cannot probe which
// accounts exist.
func (r *Repository) Authenticate(ctx context.Context, id, password string) (Account, error) {
	acct, err := r.FetchByID(ctx, id, false)
	if err != nil {
		return Account{}, err
	}
	if err = sec.ComparePassword(password, []byte(acct.HashedPassword)); err != nil {
		return Account{}, fmt.Errorf("%w: %w", ErrInvalidPassword, err)
	}
	return acct, nil
}
