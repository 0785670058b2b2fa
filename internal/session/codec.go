package session

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/gorilla/securecookie"
	"golang.org/x/crypto/hkdf"
)

const (
	hashKeyInfo  = "otraveznose session cookie hmac"
	blockKeyInfo = "otraveznose session cookie aes"
)

// Codec signs and encrypts session ids for transport in a cookie.
type Codec struct {
	sc   *securecookie.SecureCookie
	name string
}

// NewCodec derives an HMAC-SHA256 key and an AES-256 key from secret.
// Cookies older than maxAge are rejected on decode.
func NewCodec(secret []byte, name string, maxAge time.Duration) (*Codec, error) {
	if len(secret) == 0 {
		return nil, errors.New("session: empty secret")
	}

	hashKey, err := deriveKey(secret, hashKeyInfo, 32)
	if err != nil {
		return nil, err
	}
	blockKey, err := deriveKey(secret, blockKeyInfo, 32)
	if err != nil {
		return nil, err
	}

	sc := securecookie.New(hashKey, blockKey).
		SetSerializer(securecookie.JSONEncoder{}).
		MaxAge(int(maxAge / time.Second))

	return &Codec{sc: sc, name: name}, nil
}

func (c *Codec) Encode(id string) (string, error) {
	v, err := c.sc.Encode(c.name, id)
	if err != nil {
		return "", fmt.Errorf("session: encode cookie: %w", err)
	}
	return v, nil
}

// Decode returns ErrInvalidSession for any cookie the codec did not
// produce, or one that has aged out.
func (c *Codec) Decode(value string) (string, error) {
	var id string
	if err := c.sc.Decode(c.name, value, &id); err != nil || id == "" {
		return "", ErrInvalidSession
	}
	return id, nil
}

func deriveKey(secret []byte, info string, size int) ([]byte, error) {
	key := make([]byte, size)
	r := hkdf.New(sha256.New, secret, nil, []byte(info))
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, fmt.Errorf("session: derive key: %w", err)
	}
	return key, nil
}
