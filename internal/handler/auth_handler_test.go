package handler

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUsernameRegex(t *testing.T) {
	t.Parallel()

	valid := []string{"pong", "paddle_master", "abcd", "a_b_c_1", "12345678901234567890"}
	for _, v := range valid {
		assert.True(t, usernameRegex.MatchString(v), "expected %q to be valid", v)
	}

	invalid := []string{"", "abc", "Uppercase", "with space", "dash-ed", "é_accent", strings.Repeat("a", 21)}
	for _, v := range invalid {
		assert.False(t, usernameRegex.MatchString(v), "expected %q to be invalid", v)
	}
}

func TestEmailRegex(t *testing.T) {
	t.Parallel()

	valid := []string{"a@b.co", "player.one@example.com", "x+tag@sub.example.org"}
	for _, v := range valid {
		assert.True(t, emailRegex.MatchString(v), "expected %q to be valid", v)
	}

	invalid := []string{"", "plain", "no@dot", "two@@example.com", "has space@example.com", "@example.com"}
	for _, v := range invalid {
		assert.False(t, emailRegex.MatchString(v), "expected %q to be invalid", v)
	}
}

func TestValidPassword(t *testing.T) {
	t.Parallel()

	assert.True(t, validPassword("secret"))
	assert.True(t, validPassword(strings.Repeat("a", 50)))
	assert.True(t, validPassword("密码密码密码"))

	assert.False(t, validPassword(""))
	assert.False(t, validPassword("short"))
	assert.False(t, validPassword(strings.Repeat("a", 51)))
}

func TestNormalizeEmail(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "player@example.com", normalizeEmail("  Player@Example.COM  "))
	assert.Equal(t, "a@b.co", normalizeEmail("a@b.co"))
}
