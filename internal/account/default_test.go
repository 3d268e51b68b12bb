package account_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osadebe/kobo/internal/account"
)

func threeAccounts() (a, b, c *account.Account) {
	a = &account.Account{ID: uuid.New(), Name: "A", Type: account.TypeCurrent}
	b = &account.Account{ID: uuid.New(), Name: "B", Type: account.TypeSavings, IsDefault: true}
	c = &account.Account{ID: uuid.New(), Name: "C", Type: account.TypeCurrent}

	return a, b, c
}

func defaultIDs(accounts []*account.Account) []uuid.UUID {
	var out []uuid.UUID

	for _, a := range accounts {
		if a.IsDefault {
			out = append(out, a.ID)
		}
	}

	return out
}

func TestSetDefault_TransfersFlag(t *testing.T) {
	a, b, c := threeAccounts()

	got, err := account.SetDefault(c.ID, []*account.Account{a, b, c})
	require.NoError(t, err)

	require.Equal(t, []uuid.UUID{c.ID}, defaultIDs(got))

	// Inputs are not mutated.
	assert.True(t, b.IsDefault)
	assert.False(t, c.IsDefault)
}

func TestSetDefault_Idempotent(t *testing.T) {
	a, b, c := threeAccounts()

	first, err := account.SetDefault(c.ID, []*account.Account{a, b, c})
	require.NoError(t, err)

	second, err := account.SetDefault(c.ID, first)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, []uuid.UUID{c.ID}, defaultIDs(second))
}

func TestSetDefault_AlwaysExactlyOneDefault(t *testing.T) {
	a, b, c := threeAccounts()
	accounts := []*account.Account{a, b, c}

	for _, target := range accounts {
		got, err := account.SetDefault(target.ID, accounts)
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{target.ID}, defaultIDs(got))
	}
}

func TestSetDefault_UnknownAccount(t *testing.T) {
	a, b, c := threeAccounts()

	_, err := account.SetDefault(uuid.New(), []*account.Account{a, b, c})
	assert.ErrorIs(t, err, account.ErrNotFound)
}

func TestUnsetDefault_SoleDefaultRejected(t *testing.T) {
	a, b, c := threeAccounts()

	_, err := account.UnsetDefault(b.ID, []*account.Account{a, b, c})
	assert.ErrorIs(t, err, account.ErrLastDefault)
}

func TestUnsetDefault_NonDefaultIsNoop(t *testing.T) {
	a, b, c := threeAccounts()
	accounts := []*account.Account{a, b, c}

	got, err := account.UnsetDefault(a.ID, accounts)
	require.NoError(t, err)
	assert.Equal(t, accounts, got)
}

func TestUnsetDefault_UnknownAccount(t *testing.T) {
	a, b, c := threeAccounts()

	_, err := account.UnsetDefault(uuid.New(), []*account.Account{a, b, c})
	assert.ErrorIs(t, err, account.ErrNotFound)
}
