package account

import (
	"fmt"

	"github.com/google/uuid"
)

// SetDefault returns a copy of accounts in which accountID is the only
// default. The previous default loses the flag in the same step, so the
// result never holds zero or two defaults. Returns ErrNotFound when
// accountID is not in the set. Calling it again with the same id yields
// the same result.
func SetDefault(accountID uuid.UUID, accounts []*Account) ([]*Account, error) {
	found := false

	for _, a := range accounts {
		if a.ID == accountID {
			found = true
			break
		}
	}

	if !found {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, accountID)
	}

	out := make([]*Account, len(accounts))

	for i, a := range accounts {
		cp := *a
		cp.IsDefault = a.ID == accountID
		out[i] = &cp
	}

	return out, nil
}

// UnsetDefault rejects removing the default flag without nominating a
// replacement: if accountID is the current default the call fails with
// ErrLastDefault, otherwise the set is returned unchanged.
func UnsetDefault(accountID uuid.UUID, accounts []*Account) ([]*Account, error) {
	for _, a := range accounts {
		if a.ID != accountID {
			continue
		}

		if a.IsDefault {
			return nil, ErrLastDefault
		}

		return accounts, nil
	}

	return nil, fmt.Errorf("%w: %s", ErrNotFound, accountID)
}
