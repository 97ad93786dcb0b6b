package codec

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Produced with: openssl enc -aes-256-cbc -md md5 (the CryptoJS passphrase
// envelope) using salt 0001020304050607.
const (
	vectorPassphrase = "00112233445566778899aabbccddeeff"
	vectorCiphertext = "U2FsdGVkX18AAQIDBAUGB0VufTYwkAGjlhPUHIR4acujyLVMGl5wSvTbNWd2SRgkaeA/ZcMSy0HingqbGujHNQ=="
	vectorPlaintext  = `{"username":"alice123","password":"Secret1!"}`
)

func TestDecrypt_KnownVector(t *testing.T) {
	plaintext, err := Decrypt(vectorCiphertext, vectorPassphrase)
	require.NoError(t, err)
	assert.Equal(t, vectorPlaintext, string(plaintext))
}

func TestDecryptJSON_KnownVector(t *testing.T) {
	var creds struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	err := DecryptJSON(vectorCiphertext, vectorPassphrase, &creds)
	require.NoError(t, err)
	assert.Equal(t, "alice123", creds.Username)
	assert.Equal(t, "Secret1!", creds.Password)
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	tests := []struct {
		name      string
		plaintext string
	}{
		{name: "credentials", plaintext: `{"username":"bob","password":"hunter22"}`},
		{name: "empty object", plaintext: `{}`},
		{name: "block aligned", plaintext: strings.Repeat("a", 32)},
		{name: "single byte", plaintext: "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ciphertext, err := Encrypt([]byte(tt.plaintext), vectorPassphrase)
			require.NoError(t, err)

			raw, err := base64.StdEncoding.DecodeString(ciphertext)
			require.NoError(t, err)
			assert.Equal(t, saltedPrefix, string(raw[:8]))

			plaintext, err := Decrypt(ciphertext, vectorPassphrase)
			require.NoError(t, err)
			assert.Equal(t, tt.plaintext, string(plaintext))
		})
	}
}

func TestDecrypt_WrongKey(t *testing.T) {
	_, err := Decrypt(vectorCiphertext, "ffeeddccbbaa99887766554433221100")
	assert.ErrorIs(t, err, ErrDecryptFailed)
}

func TestDecrypt_Malformed(t *testing.T) {
	tests := []struct {
		name       string
		ciphertext string
	}{
		{name: "not base64", ciphertext: "%%%not-base64%%%"},
		{name: "missing salt header", ciphertext: base64.StdEncoding.EncodeToString([]byte("NoHeader0123456789abcdef"))},
		{name: "truncated", ciphertext: base64.StdEncoding.EncodeToString([]byte("Salted__0123"))},
		{name: "empty body", ciphertext: base64.StdEncoding.EncodeToString([]byte("Salted__01234567"))},
		{name: "unaligned body", ciphertext: base64.StdEncoding.EncodeToString([]byte("Salted__01234567abc"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decrypt(tt.ciphertext, vectorPassphrase)
			assert.ErrorIs(t, err, ErrMalformedCiphertext)
		})
	}
}

func TestDecryptJSON_NotJSON(t *testing.T) {
	ciphertext, err := Encrypt([]byte("this is not json"), vectorPassphrase)
	require.NoError(t, err)

	var out map[string]any
	err = DecryptJSON(ciphertext, vectorPassphrase, &out)
	assert.ErrorIs(t, err, ErrDecryptFailed)
}

func TestDecrypt_TamperedCiphertext(t *testing.T) {
	ciphertext, err := Encrypt([]byte(`{"username":"alice123"}`), vectorPassphrase)
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	require.NoError(t, err)

	// Flip one bit in the last ciphertext block to corrupt the padding.
	raw[len(raw)-1] ^= 0x01
	tampered := base64.StdEncoding.EncodeToString(raw)

	plaintext, decErr := Decrypt(tampered, vectorPassphrase)
	if decErr == nil {
		// CBC bit flips are not authenticated; if the padding happens to
		// survive, the plaintext must at least differ.
		assert.NotEqual(t, `{"username":"alice123"}`, string(plaintext))
		return
	}
	assert.True(t, errors.Is(decErr, ErrDecryptFailed))
}
