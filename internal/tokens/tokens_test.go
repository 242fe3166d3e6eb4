package tokens

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParse(t *testing.T) {
	t.Parallel()

	secret := []byte("test-secret")
	token, err := Issue(secret, 42, PrincipalCustomer, time.Hour)
	require.NoError(t, err)

	claims, err := Parse(token, secret)
	require.NoError(t, err)
	assert.Equal(t, PrincipalCustomer, claims.Type)

	id, err := claims.SubjectID()
	require.NoError(t, err)
	assert.EqualValues(t, 42, id)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	t.Parallel()

	token, err := Issue([]byte("right"), 1, PrincipalAdmin, time.Hour)
	require.NoError(t, err)

	_, err = Parse(token, []byte("wrong"))
	assert.Error(t, err)
}

func TestParseRejectsExpired(t *testing.T) {
	t.Parallel()

	secret := []byte("test-secret")
	token, err := Issue(secret, 1, PrincipalAdmin, -time.Minute)
	require.NoError(t, err)

	_, err = Parse(token, secret)
	assert.Error(t, err)
}
