package application

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testPBKDF2Params = PBKDF2Params{
	Iterations: 512,
	SaltLength: 16,
	KeyLength:  32,
}

func TestCreatePasswordHash_Format(t *testing.T) {
	t.Parallel()

	hash, err := CreatePasswordHash("geheim", testPBKDF2Params)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(hash, "$pbkdf2-sha384$i=512$"), "unexpected hash prefix: %s", hash)
	assert.Len(t, strings.Split(hash, "$"), 5)
}

func TestCreatePasswordHash_SaltsDiffer(t *testing.T) {
	t.Parallel()

	first, err := CreatePasswordHash("geheim", testPBKDF2Params)
	require.NoError(t, err)
	second, err := CreatePasswordHash("geheim", testPBKDF2Params)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestVerifyPassword(t *testing.T) {
	t.Parallel()

	hash, err := CreatePasswordHash("geheim", testPBKDF2Params)
	require.NoError(t, err)

	t.Run("accepts the original password", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, VerifyPassword(hash, "geheim"))
	})

	t.Run("rejects a mutated password", func(t *testing.T) {
		t.Parallel()
		assert.ErrorIs(t, VerifyPassword(hash, "geheim!"), ErrInvalidCredentials)
	})

	t.Run("rejects an empty password", func(t *testing.T) {
		t.Parallel()
		assert.ErrorIs(t, VerifyPassword(hash, ""), ErrInvalidCredentials)
	})
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		hash string
	}{
		{"empty", ""},
		{"plain text", "geheim"},
		{"wrong algorithm", "$argon2id$v=19$m=65536,t=3,p=2$c2FsdA$aGFzaA"},
		{"missing sections", "$pbkdf2-sha384$i=512$c2FsdA"},
		{"bad iteration count", "$pbkdf2-sha384$i=abc$c2FsdA$aGFzaA"},
		{"zero iterations", "$pbkdf2-sha384$i=0$c2FsdA$aGFzaA"},
		{"bad salt encoding", "$pbkdf2-sha384$i=512$!!!$aGFzaA"},
		{"bad hash encoding", "$pbkdf2-sha384$i=512$c2FsdA$!!!"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.ErrorIs(t, VerifyPassword(tc.hash, "geheim"), ErrInvalidPasswordHash)
		})
	}
}
