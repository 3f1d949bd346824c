package model

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"
)

// AccountStore persists the whole account mapping as one snapshot.
type AccountStore interface {
	// Load returns every account. An absent or unreadable snapshot yields
	// an empty mapping.
	Load(ctx context.Context) Accounts
	// Save overwrites the snapshot with accounts.
	Save(ctx context.Context, accounts Accounts) error
}

// Account is a stored credential record. Legacy accounts were written as a
// bare password string and carry no email.
type Account struct {
	Username string
	Password string
	Email    string
	Legacy   bool
}

type accountRecord struct {
	Password string `json:"password"`
	Email    string `json:"email"`
}

// HasEmail reports whether the account can take part in email reset.
func (a Account) HasEmail() bool {
	return !a.Legacy && a.Email != ""
}

// MarshalJSON writes legacy accounts back as a bare string.
func (a Account) MarshalJSON() ([]byte, error) {
	if a.Legacy {
		return json.Marshal(a.Password)
	}
	return json.Marshal(accountRecord{Password: a.Password, Email: a.Email})
}

// UnmarshalJSON accepts both the object and the bare string shape.
func (a *Account) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var password string
		if err := json.Unmarshal(data, &password); err != nil {
			return err
		}
		*a = Account{Password: password, Legacy: true}
		return nil
	}

	var rec accountRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return fmt.Errorf("decode account: %w", err)
	}
	*a = Account{Password: rec.Password, Email: rec.Email}
	return nil
}

// Accounts maps username to account.
type Accounts map[string]Account

// Get returns the account with its Username populated.
func (a Accounts) Get(username string) (Account, bool) {
	acc, ok := a[username]
	if !ok {
		return Account{}, false
	}
	acc.Username = username
	return acc, true
}

// FindByEmail returns the account whose email matches exactly. Legacy
// accounts never match.
func (a Accounts) FindByEmail(email string) (Account, bool) {
	for _, username := range a.Usernames() {
		acc := a[username]
		if acc.HasEmail() && acc.Email == email {
			acc.Username = username
			return acc, true
		}
	}
	return Account{}, false
}

// Usernames returns the keys in sorted order.
func (a Accounts) Usernames() []string {
	names := make([]string, 0, len(a))
	for name := range a {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clone returns a shallow copy safe to mutate.
func (a Accounts) Clone() Accounts {
	out := make(Accounts, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}
