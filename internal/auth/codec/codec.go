// Package codec decrypts credential payloads produced client-side by
// passphrase-based AES (the OpenSSL envelope: "Salted__" + 8-byte salt,
// MD5 EVP_BytesToKey derivation, AES-256-CBC, PKCS#7 padding, base64).
// Responses travel as plain JSON, so only tests use the encrypt side.
package codec

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/md5"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

var (
	// ErrMalformedCiphertext is returned when the envelope cannot be parsed.
	ErrMalformedCiphertext = errors.New("malformed ciphertext")
	// ErrDecryptFailed is returned when the key is wrong or the padding is bad.
	ErrDecryptFailed = errors.New("decryption failed")
)

const (
	saltedPrefix = "Salted__"
	saltSize     = 8
	keySize      = 32
)

// evpKDF derives an AES-256 key and IV from a passphrase and salt the way
// OpenSSL's EVP_BytesToKey does with MD5 and one iteration.
func evpKDF(passphrase, salt []byte) (key, iv []byte) {
	var derived, prev []byte
	for len(derived) < keySize+aes.BlockSize {
		h := md5.New()
		h.Write(prev)
		h.Write(passphrase)
		h.Write(salt)
		prev = h.Sum(nil)
		derived = append(derived, prev...)
	}
	return derived[:keySize], derived[keySize : keySize+aes.BlockSize]
}

// Decrypt reverses a passphrase-encrypted payload and returns the plaintext.
func Decrypt(ciphertext, passphrase string) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedCiphertext, err)
	}
	if len(raw) < saltSize+len(saltedPrefix) || string(raw[:len(saltedPrefix)]) != saltedPrefix {
		return nil, fmt.Errorf("%w: missing salt header", ErrMalformedCiphertext)
	}

	salt := raw[len(saltedPrefix) : len(saltedPrefix)+saltSize]
	body := raw[len(saltedPrefix)+saltSize:]
	if len(body) == 0 || len(body)%aes.BlockSize != 0 {
		return nil, fmt.Errorf("%w: body is not block aligned", ErrMalformedCiphertext)
	}

	key, iv := evpKDF([]byte(passphrase), salt)
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecryptFailed, err)
	}

	plaintext := make([]byte, len(body))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plaintext, body)

	return unpad(plaintext)
}

// DecryptJSON decrypts ciphertext and unmarshals the plaintext into v.
func DecryptJSON(ciphertext, passphrase string, v any) error {
	plaintext, err := Decrypt(ciphertext, passphrase)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(plaintext, v); err != nil {
		return fmt.Errorf("%w: plaintext is not valid JSON", ErrDecryptFailed)
	}
	return nil
}

// Encrypt is the client-side counterpart of Decrypt. The server never
// encrypts responses; this exists for tests and client tooling.
func Encrypt(plaintext []byte, passphrase string) (string, error) {
	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	key, iv := evpKDF([]byte(passphrase), salt)
	block, err := aes.NewCipher(key)
	if err != nil {
		return "", err
	}

	padded := pad(plaintext)
	body := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(body, padded)

	raw := append([]byte(saltedPrefix), salt...)
	raw = append(raw, body...)

	return base64.StdEncoding.EncodeToString(raw), nil
}

func pad(data []byte) []byte {
	n := aes.BlockSize - len(data)%aes.BlockSize
	return append(data, bytes.Repeat([]byte{byte(n)}, n)...)
}

func unpad(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty plaintext", ErrDecryptFailed)
	}
	n := int(data[len(data)-1])
	if n == 0 || n > aes.BlockSize || n > len(data) {
		return nil, fmt.Errorf("%w: bad padding", ErrDecryptFailed)
	}
	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, fmt.Errorf("%w: bad padding", ErrDecryptFailed)
		}
	}
	return data[:len(data)-n], nil
}
