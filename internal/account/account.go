// Package account owns the user-account data model and its persistence
// protocol on top of the kv store.
//
// Each account is stored twice: the full record under "account:<id>" and a
// pointer record under "account-by-email:<lowercased email>" that enables
// lookup by email. Email uniqueness is enforced against the pointer key.
// Records are immutable once created; there is no update or delete.
package account

const (
	// ErrNotFound is returned when no account exists for an id or email.
	ErrNotFound Error = "account not found"
	// ErrEmailInUse is returned when creating an account whose email is
	// already registered, in any casing.
	ErrEmailInUse Error = "email in use"
)

// Error is an error type returned by the repository.
type Error string

// Error satisfies [error].
func (e Error) Error() string { return string(e) }

// Account is a persisted user record. HashedPassword holds the bcrypt digest
// of the password and must be cleared (redacted) before the record leaves the
// service.
type Account struct {
	ID             string `json:"id"`
	Email          string `json:"email"`
	HashedPassword string `json:"hashedPassword"`
}

// Redacted returns a copy of the account with the password hash cleared.
func (a Account) Redacted() Account {
	a.HashedPassword = ""
	return a
}

// emailPointer is the secondary-index record stored under the email key.
type emailPointer struct {
	ID string `json:"id"`
}
