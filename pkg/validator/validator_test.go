package validator

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateUsername(t *testing.T) {
	valid := []string{"abc", "alice", "a_b-c", "User_123", "exactly-thirty-characters-long"}
	for _, u := range valid {
		require.True(t, ValidateUsername(u), "username %q", u)
	}

	invalid := []string{"", "ab", "has space", "dot.name", "emoji😀", "thisusernameiswaytoolongtobevalid"}
	for _, u := range invalid {
		require.False(t, ValidateUsername(u), "username %q", u)
	}
}

func TestIsReservedUsername(t *testing.T) {
	for _, u := range []string{"admin", "Admin", "ADMIN", "moderator", "support", "staff", "team", "dev", "developer", "maintenance", "superuser", "Root"} {
		require.True(t, IsReservedUsername(u), "username %q", u)
	}

	for _, u := range []string{"administrator", "devops", "alice", "rooted"} {
		require.False(t, IsReservedUsername(u), "username %q", u)
	}
}

func TestValidatePassword(t *testing.T) {
	require.False(t, ValidatePassword("Sup3rSecret").HasErrors())
	require.True(t, ValidatePassword("short").HasErrors())
	require.True(t, ValidatePassword("alllowercase1").HasErrors())
	require.True(t, ValidatePassword("NoNumbersHere").HasErrors())
}

func TestSanitizeEmail(t *testing.T) {
	require.Equal(t, "alice@example.com", SanitizeEmail("  Alice@Example.COM "))
}
