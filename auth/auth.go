// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

var (
	ErrInvalidAdminToken = errors.New("invalid admin token")
)

const eventIDAlphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// NewEventID creates a short URL-safe public identifier for an event.
// 10 alphanumeric chars is enough headroom for the target event volume.
func NewEventID() (string, error) {
	id, err := gonanoid.Generate(eventIDAlphabet, 10)
	if err != nil {
		return "", fmt.Errorf("failed to generate event ID: %w", err)
	}
	return id, nil
}

// NewRowID creates an identifier for internal rows (slots, responses).
func NewRowID() string {
	return uuid.NewString()
}

// GenerateAdminToken creates the opaque admin secret stored with an event.
// Possession of this token in the event URL is the entire admin credential.
func GenerateAdminToken() (string, error) {
	b := make([]byte, 24) // 24 bytes = 192 bits of entropy
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate admin token: %w", err)
	}
	// URL-safe base64 without padding
	return strings.TrimRight(base64.URLEncoding.EncodeToString(b), "="), nil
}

// ValidateAdminToken checks the supplied token against the stored one in
// constant time. An empty supplied token never matches.
func ValidateAdminToken(supplied, stored string) error {
	if supplied == "" || stored == "" {
		return ErrInvalidAdminToken
	}
	if !hmac.Equal([]byte(supplied), []byte(stored)) {
		return ErrInvalidAdminToken
	}
	return nil
}

// GenerateFingerprint creates an opaque "remember me" identifier for a
// participant device. It is continuity state, not a security credential.
func GenerateFingerprint() (string, error) {
	b := make([]byte, 16)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate fingerprint: %w", err)
	}
	return strings.TrimRight(base64.URLEncoding.EncodeToString(b), "="), nil
}
