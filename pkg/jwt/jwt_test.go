package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bodega-api/pkg/jwt"
)

const (
	testSecret = "unit-test-secret"
	testIssuer = "bodega-api-test"
)

func TestGenerateYParse_RoundTrip(t *testing.T) {
	perms := []string{"receipts.edit", "receipts.post"}
	token, err := jwt.Generate(testSecret, "user-1", "skladistar@example.com", "user", perms, testIssuer, 60)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := jwt.Parse(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "skladistar@example.com", claims.Email)
	assert.Equal(t, "user", claims.Role)
	assert.Equal(t, perms, claims.Permissions)
	assert.Equal(t, testIssuer, claims.Issuer)
	assert.Equal(t, "user-1", claims.Subject)
}

func TestParse_SecretEquivocado(t *testing.T) {
	token, err := jwt.Generate(testSecret, "user-1", "a@b.com", "admin", nil, testIssuer, 60)
	require.NoError(t, err)

	_, err = jwt.Parse("otro-secret", token)
	assert.Error(t, err)
}

func TestParse_Expirado(t *testing.T) {
	token, err := jwt.Generate(testSecret, "user-1", "a@b.com", "admin", nil, testIssuer, -1)
	require.NoError(t, err)

	_, err = jwt.Parse(testSecret, token)
	assert.Error(t, err)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := jwt.Generate("", "user-1", "a@b.com", "admin", nil, testIssuer, 60)
	assert.Error(t, err)
}

func TestParse_Basura(t *testing.T) {
	_, err := jwt.Parse(testSecret, "no-es-un-jwt")
	assert.Error(t, err)
}
