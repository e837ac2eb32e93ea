package sanitizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	s := New()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"password", "login password=hunter22 ok", "login password=[FILTERED] ok"},
		{"password colon", `Password: "s3cret!"`, "Password: [FILTERED]"},
		{"api key", "api_key=staging_api_key", "api_key=[FILTERED]"},
		{"email", "user testuser@example.com signed in", "user [FILTERED_EMAIL] signed in"},
		{"card", "card 4111 1111 1111 1111", "card [FILTERED]"},
		{"phone", "phone: 1234567890", "phone: [FILTERED_PHONE]"},
		{"dsn", "postgres://qa:pa55@db:5432/results", "postgres://qa:[FILTERED]@db:5432/results"},
		{"plain", "Welcome back, testuser", "Welcome back, testuser"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.Sanitize(tt.in))
		})
	}
}

func TestSanitizeField(t *testing.T) {
	s := New()

	assert.Equal(t, Filtered, s.SanitizeField("password", "password123"))
	assert.Equal(t, Filtered, s.SanitizeField("API_KEY", "dev_api_key"))
	assert.Equal(t, "testuser", s.SanitizeField("username", "testuser"))
	assert.Equal(t, "", s.SanitizeField("password", ""))
}

func TestSanitizeRecord(t *testing.T) {
	s := New()
	rec := map[string]any{
		"username": "testuser",
		"password": "password123",
		"email":    "testuser@example.com",
		"age":      25,
		"nested":   map[string]any{"token": "abcdef123456"},
	}

	got := s.SanitizeRecord(rec)

	assert.Equal(t, "testuser", got["username"])
	assert.Equal(t, Filtered, got["password"])
	assert.Equal(t, "[FILTERED_EMAIL]", got["email"])
	assert.Equal(t, 25, got["age"])
	assert.Equal(t, map[string]any{"token": Filtered}, got["nested"])
	assert.Equal(t, "password123", rec["password"], "исходная запись не меняется")
}

func TestSanitizeValue(t *testing.T) {
	s := New()

	assert.Equal(t, "{age=25 password=[FILTERED]}", s.SanitizeValue(map[string]any{"age": 25, "password": "x1234"}))
	assert.Equal(t, "42", s.SanitizeValue(42))
}
