package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/stellarmotion-erp/pkg/jwt"
)

const testSecret = "test-secret-key-for-unit-tests"

func testSession() pkgjwt.Session {
	return pkgjwt.Session{
		UserID:     "00000000-0000-0000-0000-000000000001",
		Email:      "ana@stellarmotion.io",
		RolID:      "00000000-0000-0000-0000-0000000000aa",
		ContactoID: "00000000-0000-0000-0000-0000000000cc",
	}
}

func TestGenerateAndParse(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testSession(), "test", 60)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	s, err := pkgjwt.Parse(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, testSession(), *s)
}

func TestParse_TokenExpirado(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testSession(), "test", -1)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testSecret, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestParse_SecretIncorrecto(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testSession(), "test", 60)
	require.NoError(t, err)

	_, err = pkgjwt.Parse("otro-secret", tok)
	assert.Error(t, err)
}

func TestGenerate_SinUsuario(t *testing.T) {
	_, err := pkgjwt.Generate(testSecret, pkgjwt.Session{}, "test", 60)
	assert.Error(t, err)
}
