package gobitfinex

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
)

// GetParamHmacSHA384Sign signs the params with the secret key, the
// signature is the lowercase hex form. Pure function, no I/O.
func GetParamHmacSHA384Sign(secret, params string) (string, error) {
	mac := hmac.New(sha512.New384, []byte(secret))
	if _, err := mac.Write([]byte(params)); err != nil {
		return "", err
	}
	return hex.EncodeToString(mac.Sum(nil)), nil
}
