package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidUsername(t *testing.T) {
	assert.True(t, IsValidUsername("kwame_01"))
	assert.True(t, IsValidUsername("abc"))

	assert.False(t, IsValidUsername("ab"))
	assert.False(t, IsValidUsername("way_too_long_username_here"))
	assert.False(t, IsValidUsername("bad name"))
	assert.False(t, IsValidUsername("bad-name"))
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("user@example.com"))
	assert.True(t, IsValidEmail("first.last+tag@sub.example.org"))

	assert.False(t, IsValidEmail("no-at-sign"))
	assert.False(t, IsValidEmail("user@"))
	assert.False(t, IsValidEmail("user@host"))
}

func TestIsValidPassword(t *testing.T) {
	assert.True(t, IsValidPassword("password1"))

	// too short, too long, missing letter or number
	assert.False(t, IsValidPassword("pass1"))
	assert.False(t, IsValidPassword("abcdefghijklmnopq1234"))
	assert.False(t, IsValidPassword("12345678"))
	assert.False(t, IsValidPassword("passwords"))
}
