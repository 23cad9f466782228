package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/markbates/goth"
	"github.com/markbates/goth/providers/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret = "test-secret-key-for-testing"
	testUserID = "7d5c1f0e-2a9b-4c3d-8e1f-0a1b2c3d4e5f"
)

// signs claims with the test secret, bypassing GenerateJWT
func signClaims(t *testing.T, claims Claims) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	return token
}

func clearProviderEnv(t *testing.T) {
	t.Helper()

	goth.ClearProviders()
	for _, key := range []string{
		"GOOGLE_CLIENT_ID", "GOOGLE_CLIENT_SECRET",
		"GITHUB_CLIENT_ID", "GITHUB_CLIENT_SECRET",
		"APPLE_CLIENT_ID", "APPLE_CLIENT_SECRET",
	} {
		t.Setenv(key, "")
	}

	t.Cleanup(goth.ClearProviders)
}

func TestGenerateJWT_Claims(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)

	token, err := GenerateJWT(testUserID, "maker@example.com")
	require.NoError(t, err)

	claims, err := ValidateJWT(token)
	require.NoError(t, err)

	assert.Equal(t, testUserID, claims.UserID)
	assert.Equal(t, testUserID, claims.Subject)
	assert.Equal(t, "maker@example.com", claims.Email)

	lifetime := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	assert.Equal(t, TokenTTL, lifetime)
}

func TestGenerateJWT_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := GenerateJWT(testUserID, "maker@example.com")
	assert.ErrorContains(t, err, "JWT_SECRET not set")
}

func TestValidateJWT_RejectsTokenWithoutUser(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)

	token := signClaims(t, Claims{
		UserID: "",
		Email:  "nobody@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	_, err := ValidateJWT(token)
	assert.Error(t, err)
}

func TestValidateJWT_Rejections(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)

	valid, err := GenerateJWT(testUserID, "maker@example.com")
	require.NoError(t, err)

	expired := signClaims(t, Claims{
		UserID: testUserID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: testUserID}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"expired", expired},
		{"tampered signature", valid[:len(valid)-4] + "AAAA"},
		{"none algorithm", unsigned},
		{"empty", ""},
		{"not a jwt", "not.a.jwt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateJWT(tt.token)
			assert.Error(t, err)
		})
	}
}

func TestValidateJWT_SecretRotation(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	token, err := GenerateJWT(testUserID, "maker@example.com")
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "rotated-secret")

	_, err = ValidateJWT(token)
	assert.Error(t, err)
}

func TestInitializeProviders_OnlyConfigured(t *testing.T) {
	clearProviderEnv(t)
	t.Setenv("GITHUB_CLIENT_ID", "gh-id")
	t.Setenv("GITHUB_CLIENT_SECRET", "gh-secret")

	names, err := InitializeProviders("session-secret", "https://builder.example.com/")
	require.NoError(t, err)
	assert.Equal(t, []string{"github"}, names)

	provider, err := goth.GetProvider("github")
	require.NoError(t, err)

	gh, ok := provider.(*github.Provider)
	require.True(t, ok)
	assert.Equal(t, "https://builder.example.com/api/v1/auth/github/callback", gh.CallbackURL)

	_, err = goth.GetProvider("google")
	assert.Error(t, err)
}

func TestInitializeProviders_NoneConfigured(t *testing.T) {
	clearProviderEnv(t)

	names, err := InitializeProviders("session-secret", "")
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestInitializeProviders_RequiresSessionSecret(t *testing.T) {
	clearProviderEnv(t)

	_, err := InitializeProviders("", "http://localhost:8080")
	assert.Error(t, err)
}

func TestCallbackURL(t *testing.T) {
	assert.Equal(t, "http://localhost:8080/api/v1/auth/google/callback", callbackURL("http://localhost:8080", "google"))
	assert.Equal(t, "https://a.dev/api/v1/auth/apple/callback", callbackURL("https://a.dev//", "apple"))
}
