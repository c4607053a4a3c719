// Copyright (c) 2026 Taskly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// MinSecretBytes is the smallest HMAC-SHA256 secret accepted (256 bits).
const MinSecretBytes = 32

// SigningKey holds the process-wide HMAC secret used to sign and verify tokens.
//
// It is built once at startup from base64 material supplied by configuration
// and is read-only afterwards. A single instance is shared by every request
// goroutine.
type SigningKey struct {
	secret []byte
}

// NewSigningKey decodes a standard base64 secret and validates its length.
func NewSigningKey(encoded string) (*SigningKey, error) {
	if strings.TrimSpace(encoded) == "" {
		return nil, errors.New("sec: signing secret is empty")
	}

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encoded))
	if err != nil {
		return nil, fmt.Errorf("sec: signing secret is not valid base64: %w", err)
	}

	if len(decoded) < MinSecretBytes {
		return nil, fmt.Errorf("sec: signing secret must be at least %d bytes, got %d", MinSecretBytes, len(decoded))
	}

	return &SigningKey{secret: decoded}, nil
}

func (key *SigningKey) bytes() []byte {
	return key.secret
}
