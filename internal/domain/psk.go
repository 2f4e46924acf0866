package domain

import (
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	pskIterations = 4096
	pskKeyLen     = 32
)

// DerivePSK expands a WPA passphrase into the 256-bit pre-shared key, salted
// with the SSID. Returns 64 lower-case hex digits.
func DerivePSK(passphrase, ssid string) (string, error) {
	if len(passphrase) < 8 || len(passphrase) > 63 {
		return "", errors.New("passphrase must be 8 to 63 characters")
	}
	key := pbkdf2.Key([]byte(passphrase), []byte(UnquoteSSID(ssid)), pskIterations, pskKeyLen, sha1.New)
	return hex.EncodeToString(key), nil
}

// IsRawPSK reports whether key is already a 64 hex digit PSK
func IsRawPSK(key string) bool {
	if len(key) != 2*pskKeyLen {
		return false
	}
	_, err := hex.DecodeString(key)
	return err == nil
}

// NormalizePSK turns a passphrase (quoted or bare) into a raw PSK.
// Raw PSKs are returned lower-cased.
func NormalizePSK(key, ssid string) (string, error) {
	if IsRawPSK(key) {
		return strings.ToLower(key), nil
	}
	if len(key) >= 2 && strings.HasPrefix(key, `"`) && strings.HasSuffix(key, `"`) {
		key = key[1 : len(key)-1]
	}
	return DerivePSK(key, ssid)
}
