package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	cases := map[string]string{
		"admin":                     "admin",
		"ad<min":                    "admin",
		"<script>alert(1)</script>": "scriptalert(1)/script",
		"<<>>":                      "",
		"":                          "",
		"a&b\"c":                    "a&b\"c",
	}
	for in, want := range cases {
		assert.Equal(t, want, Sanitize(in), "Sanitize(%q)", in)
	}
}

func TestIsValidUsername(t *testing.T) {
	valid := []string{
		"admin",
		"user",
		"A_b_9",
		"_",
		strings.Repeat("x", 20),
	}
	for _, s := range valid {
		assert.True(t, IsValidUsername(s), "expected %q to be valid", s)
	}

	invalid := []string{
		"",
		strings.Repeat("x", 21),
		"ad min",
		"ad-min",
		"admin!",
		"ad<min",
		"ümlaut",
		"admin\n",
		"tab\there",
	}
	for _, s := range invalid {
		assert.False(t, IsValidUsername(s), "expected %q to be invalid", s)
	}
}

func TestIsValidPasswordMatchesUsernameRule(t *testing.T) {
	for _, s := range []string{"admin123", "user123", "P_4ss", strings.Repeat("p", 20)} {
		assert.True(t, IsValidPassword(s), "expected %q to be valid", s)
	}
	for _, s := range []string{"", "pass word", "p@ss", "admin!23", strings.Repeat("p", 21)} {
		assert.False(t, IsValidPassword(s), "expected %q to be invalid", s)
	}
}
