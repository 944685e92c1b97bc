package account

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/stolasapp/janus/internal/kv"
	"github.com/stolasapp/janus/internal/sec"
)

const (
	accountKeyPrefix = "account:"
	emailKeyPrefix   = "account-by-email:"
)

// Repository provides account creation and lookup over a [kv.Store]. It holds
// no mutable state and is safe for arbitrary concurrent use.
type Repository struct {
	store  kv.Store
	logger *slog.Logger
}

// NewRepository creates a repository on top of the given store.
func NewRepository(store kv.Store, logger *slog.Logger) *Repository {
	return &Repository{store: store, logger: logger}
}

// FetchByID returns the account stored under id. When redact is true the
// password hash is cleared; only credential verification should pass false.
// An [ErrNotFound] is returned if the id does not exist.
func (r *Repository) FetchByID(ctx context.Context, id string, redact bool) (Account, error) {
	var acct Account
	value, err := r.store.Get(ctx, accountKeyPrefix+id)
	if errors.Is(err, kv.ErrNotFound) {
		return acct, ErrNotFound
	} else if err != nil {
		return acct, fmt.Errorf("failed to read account record: %w", err)
	}
	if err = json.Unmarshal(value, &acct); err != nil {
		return acct, fmt.Errorf("failed to decode account record: %w", err)
	}
	if redact {
		acct = acct.Redacted()
	}
	return acct, nil
}

// FetchByEmail resolves email (case-insensitively) through the secondary
// index and returns the account it points to. A missing pointer and a pointer
// to a missing record both surface as [ErrNotFound]; the latter indicates an
// orphaned index entry and is logged.
func (r *Repository) FetchByEmail(ctx context.Context, email string, redact bool) (Account, error) {
	value, err := r.store.Get(ctx, emailKey(email))
	if errors.Is(err, kv.ErrNotFound) {
		return Account{}, ErrNotFound
	} else if err != nil {
		return Account{}, fmt.Errorf("failed to read email index: %w", err)
	}
	var pointer emailPointer
	if err = json.Unmarshal(value, &pointer); err != nil {
		return Account{}, fmt.Errorf("failed to decode email index record: %w", err)
	}

	acct, err := r.FetchByID(ctx, pointer.ID, redact)
	if errors.Is(err, ErrNotFound) {
		r.logger.WarnContext(ctx,
			"email index points at a missing account record",
			slog.String("id", pointer.ID),
		)
	}
	return acct, err
}

// Create registers a new account for email with the given plaintext password
// and returns the stored record, password hash included. An [ErrEmailInUse]
// is returned without mutating anything if the email is already registered.
//
// The primary record is written before the email pointer. If the process dies
// between the two writes, the account exists but cannot be found by email;
// with no multi-key transactions in the store this window is accepted rather
// than papered over. The same applies to two concurrent creates racing past
// the existence check: the second pointer write wins and the losing record
// becomes unreachable by email.
func (r *Repository) Create(ctx context.Context, email, password string) (Account, error) {
	var acct Account
	switch _, err := r.store.Get(ctx, emailKey(email)); {
	case err == nil:
		return acct, ErrEmailInUse
	case !errors.Is(err, kv.ErrNotFound):
		return acct, fmt.Errorf("failed to check email index: %w", err)
	}

	hash, err := sec.HashPassword(password)
	if err != nil {
		return acct, fmt.Errorf("failed to hash password: %w", err)
	}
	acct = Account{
		ID:             uuid.NewString(),
		Email:          email,
		HashedPassword: string(hash),
	}

	record, err := json.Marshal(acct)
	if err != nil {
		return acct, fmt.Errorf("failed to encode account record: %w", err)
	}
	if err = r.store.Put(ctx, accountKeyPrefix+acct.ID, record); err != nil {
		return acct, fmt.Errorf("failed to write account record: %w", err)
	}

	pointer, err := json.Marshal(emailPointer{ID: acct.ID})
	if err != nil {
		return acct, fmt.Errorf("failed to encode email index record: %w", err)
	}
	if err = r.store.Put(ctx, emailKey(email), pointer); err != nil {
		return acct, fmt.Errorf("failed to write email index: %w", err)
	}
	return acct, nil
}

// emailKey lower-cases the email for the index key. The account record itself
// keeps the caller's original casing.
func emailKey(email string) string {
	return emailKeyPrefix + strings.ToLower(email)
}
