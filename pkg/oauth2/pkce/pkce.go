/*
 * Copyright (c) 2025, WSO2 LLC. (https://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

// Package pkce provides PKCE (Proof Key for Code Exchange) generation and validation utilities.
package pkce

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
)

// PKCE Code Challenge Methods.
const (
	CodeChallengeMethodPlain = "plain"
	CodeChallengeMethodS256  = "S256"
)

// Number of random bytes backing a generated code verifier. Encodes to
// 43 base64url characters, the RFC 7636 minimum verifier length.
const codeVerifierByteLength = 32

// PKCE errors
var (
	ErrInvalidCodeVerifier    = errors.New("invalid code verifier")
	ErrInvalidCodeChallenge   = errors.New("invalid code challenge")
	ErrInvalidChallengeMethod = errors.New("invalid code challenge method")
	ErrPKCEValidationFailed   = errors.New("PKCE validation failed")
)

// ChallengeFunc derives a code challenge from a code verifier.
type ChallengeFunc func(codeVerifier string) string

// S256Challenge derives a code challenge by hashing the verifier with SHA-256
// and encoding the digest URL-safely without padding.
func S256Challenge(codeVerifier string) string {
	hash := sha256.Sum256([]byte(codeVerifier))
	return base64.RawURLEncoding.EncodeToString(hash[:])
}

// PlainChallenge returns the verifier unchanged as the code challenge.
func PlainChallenge(codeVerifier string) string {
	return codeVerifier
}

// GenerateCodeVerifier generates a fresh random code verifier in the
// RFC 7636 unreserved character set.
func GenerateCodeVerifier() (string, error) {
	verifierBytes := make([]byte, codeVerifierByteLength)
	if _, err := rand.Read(verifierBytes); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(verifierBytes), nil
}

// GenerateCodeChallenge generates a code challenge from a code verifier using the specified method.
func GenerateCodeChallenge(codeVerifier, method string) (string, error) {
	if err := validateCodeVerifier(codeVerifier); err != nil {
		return "", err
	}

	switch method {
	case CodeChallengeMethodPlain:
		return PlainChallenge(codeVerifier), nil
	case CodeChallengeMethodS256:
		return S256Challenge(codeVerifier), nil
	default:
		return "", ErrInvalidChallengeMethod
	}
}

// ValidatePKCE validates the PKCE code verifier against the stored code challenge.
func ValidatePKCE(codeChallenge, codeChallengeMethod, codeVerifier string) error {
	if codeChallengeMethod == "" {
		codeChallengeMethod = CodeChallengeMethodPlain
	}

	if err := validateCodeVerifier(codeVerifier); err != nil {
		return err
	}
	if codeChallenge == "" {
		return ErrInvalidCodeChallenge
	}

	switch codeChallengeMethod {
	case CodeChallengeMethodPlain:
		if codeChallenge != PlainChallenge(codeVerifier) {
			return ErrPKCEValidationFailed
		}
	case CodeChallengeMethodS256:
		if codeChallenge != S256Challenge(codeVerifier) {
			return ErrPKCEValidationFailed
		}
	default:
		return ErrInvalidChallengeMethod
	}
	return nil
}

// ValidateCodeChallenge validates the format of a code challenge according to RFC 7636.
func ValidateCodeChallenge(codeChallenge, codeChallengeMethod string) error {
	if codeChallengeMethod == "" {
		codeChallengeMethod = CodeChallengeMethodPlain
	}

	switch codeChallengeMethod {
	case CodeChallengeMethodPlain:
		if len(codeChallenge) < 43 || len(codeChallenge) > 128 {
			return ErrInvalidCodeChallenge
		}
		for _, c := range codeChallenge {
			if !isValidASCIIUnreserved(c) {
				return ErrInvalidCodeChallenge
			}
		}
	case CodeChallengeMethodS256:
		if len(codeChallenge) != 43 {
			return ErrInvalidCodeChallenge
		}
		for _, c := range codeChallenge {
			if !isValidBase64URLChar(c) {
				return ErrInvalidCodeChallenge
			}
		}
	default:
		return ErrInvalidCodeChallenge
	}
	return nil
}

// validateCodeVerifier validates the format of a code verifier according to RFC 7636.
func validateCodeVerifier(codeVerifier string) error {
	if codeVerifier == "" {
		return ErrInvalidCodeVerifier
	}
	if len(codeVerifier) < 43 || len(codeVerifier) > 128 {
		return ErrInvalidCodeVerifier
	}
	for _, c := range codeVerifier {
		if !isValidASCIIUnreserved(c) {
			return ErrInvalidCodeVerifier
		}
	}
	return nil
}

// isValidASCIIUnreserved validates that a character is in the unreserved set.
func isValidASCIIUnreserved(c rune) bool {
	return (c >= 'A' && c <= 'Z') ||
		(c >= 'a' && c <= 'z') ||
		(c >= '0' && c <= '9') ||
		c == '-' || c == '_' || c == '.' || c == '~'
}

// isValidBase64URLChar validates that a character is in the base64url alphabet.
func isValidBase64URLChar(c rune) bool {
	return (c >= 'A' && c <= 'Z') ||
		(c >= 'a' && c <= 'z') ||
		(c >= '0' && c <= '9') ||
		c == '-' || c == '_'
}
