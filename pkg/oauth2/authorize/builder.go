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

package authorize

import (
	"crypto/rand"
	"encoding/base64"
	"strings"

	"github.com/asgardeo/thunder-client/internal/system/utils"
	"github.com/asgardeo/thunder-client/pkg/oauth2/constants"
	"github.com/asgardeo/thunder-client/pkg/oauth2/pkce"
)

// Number of random bytes backing a generated state token.
const stateTokenByteLength = 32

// valueList tracks the difference between a list field that was never
// configured and one explicitly set, possibly to no values. Both serialize
// to absent, but they are reached differently.
type valueList struct {
	set    bool
	values []string
}

// serialize returns the space-joined values in insertion order, or the empty
// string when the list was never set or was set to no values.
func (l valueList) serialize() string {
	if !l.set || len(l.values) == 0 {
		return ""
	}
	return strings.Join(l.values, " ")
}

// AuthorizationRequestBuilder accumulates the parameters of an authorization
// request. The client identifier and the challenge function are fixed at
// construction; every other field may be replaced until Build is called.
//
// The builder performs no validation. Inputs are carried into the produced
// request as given. It is not safe for concurrent use.
type AuthorizationRequestBuilder struct {
	applicationID string
	clientID      string
	redirectURI   string
	scopes        valueList
	state         string
	acrValues     valueList
	nonce         string
	prompts       valueList
	correlationID string
	context       string
	codeVerifier  string
	codeChallenge string
	callbacks     Callbacks
}

// NewAuthorizationRequestBuilder creates a builder for the given application,
// client and redirect URI. A fresh state token and PKCE code verifier are
// generated here; the code challenge is derived once from the verifier with the
// supplied challenge function. When challenge is nil, S256 is used.
//
// Repeated Build calls on the same builder reuse the generated values; they are
// never re-randomized.
func NewAuthorizationRequestBuilder(applicationID, clientID string, challenge pkce.ChallengeFunc,
	redirectURI string) (*AuthorizationRequestBuilder, error) {
	state, err := generateStateToken()
	if err != nil {
		return nil, err
	}

	codeVerifier, err := pkce.GenerateCodeVerifier()
	if err != nil {
		return nil, err
	}

	if challenge == nil {
		challenge = pkce.S256Challenge
	}

	return &AuthorizationRequestBuilder{
		applicationID: applicationID,
		clientID:      clientID,
		redirectURI:   redirectURI,
		scopes: valueList{
			set:    true,
			values: []string{constants.ScopeOpenID},
		},
		state:         state,
		codeVerifier:  codeVerifier,
		codeChallenge: challenge(codeVerifier),
	}, nil
}

// WithScopes replaces the scope list with the given values, removing
// duplicates while preserving first-occurrence order. Calling it with no
// values explicitly empties the list, which serializes to absent.
func (b *AuthorizationRequestBuilder) WithScopes(scopes ...string) *AuthorizationRequestBuilder {
	b.scopes = valueList{
		set:    true,
		values: utils.DeduplicateStrings(scopes),
	}
	return b
}

// WithRedirectURI replaces the redirect destination.
func (b *AuthorizationRequestBuilder) WithRedirectURI(redirectURI string) *AuthorizationRequestBuilder {
	b.redirectURI = redirectURI
	return b
}

// WithState replaces the auto-generated state token with the given value,
// re-encoded URL-safely without padding. The same input always yields the
// same encoded state.
func (b *AuthorizationRequestBuilder) WithState(state string) *AuthorizationRequestBuilder {
	b.state = base64.RawURLEncoding.EncodeToString([]byte(state))
	return b
}

// WithoutState removes the state token from the request entirely. The caller
// opts out of CSRF token inclusion.
func (b *AuthorizationRequestBuilder) WithoutState() *AuthorizationRequestBuilder {
	b.state = ""
	return b
}

// WithACRValues replaces the requested authentication context class
// references. An empty call serializes to absent.
func (b *AuthorizationRequestBuilder) WithACRValues(acrValues ...string) *AuthorizationRequestBuilder {
	b.acrValues = valueList{
		set:    true,
		values: acrValues,
	}
	return b
}

// WithNonce replaces the replay protection nonce.
func (b *AuthorizationRequestBuilder) WithNonce(nonce string) *AuthorizationRequestBuilder {
	b.nonce = nonce
	return b
}

// WithCorrelationID replaces the tracing correlation identifier.
func (b *AuthorizationRequestBuilder) WithCorrelationID(correlationID string) *AuthorizationRequestBuilder {
	b.correlationID = correlationID
	return b
}

// WithPrompts replaces the prompt directives. An empty call serializes to absent.
func (b *AuthorizationRequestBuilder) WithPrompts(prompts ...string) *AuthorizationRequestBuilder {
	b.prompts = valueList{
		set:    true,
		values: prompts,
	}
	return b
}

// WithContext replaces the opaque caller-supplied context value.
func (b *AuthorizationRequestBuilder) WithContext(context string) *AuthorizationRequestBuilder {
	b.context = context
	return b
}

// OnSuccess replaces the success callback.
func (b *AuthorizationRequestBuilder) OnSuccess(fn func(AuthorizationResponse)) *AuthorizationRequestBuilder {
	b.callbacks.OnSuccess = fn
	return b
}

// OnFailure replaces the failure callback.
func (b *AuthorizationRequestBuilder) OnFailure(fn func(error)) *AuthorizationRequestBuilder {
	b.callbacks.OnFailure = fn
	return b
}

// OnCompletion replaces the completion callback.
func (b *AuthorizationRequestBuilder) OnCompletion(fn func()) *AuthorizationRequestBuilder {
	b.callbacks.OnCompletion = fn
	return b
}

// OnCancellation replaces the cancellation callback.
func (b *AuthorizationRequestBuilder) OnCancellation(fn func()) *AuthorizationRequestBuilder {
	b.callbacks.OnCancellation = fn
	return b
}

// CodeVerifier returns the PKCE code verifier generated at construction.
func (b *AuthorizationRequestBuilder) CodeVerifier() string {
	return b.codeVerifier
}

// Build constructs the authorization request from the current field values and
// wraps it in a message addressed to the authorization-handling component.
// The builder remains usable afterwards.
func (b *AuthorizationRequestBuilder) Build() *Message {
	return &Message{
		ApplicationID: b.applicationID,
		Request: AuthorizationRequest{
			ClientID:      b.clientID,
			RedirectURI:   b.redirectURI,
			Scope:         b.scopes.serialize(),
			State:         b.state,
			ACR:           b.acrValues.serialize(),
			Nonce:         b.nonce,
			Prompt:        b.prompts.serialize(),
			CorrelationID: b.correlationID,
			Context:       b.context,
			CodeChallenge: b.codeChallenge,
		},
		CodeVerifier: b.codeVerifier,
		Callbacks:    b.callbacks,
	}
}

// generateStateToken generates a fresh random state token, encoded URL-safely
// without padding.
func generateStateToken() (string, error) {
	tokenBytes := make([]byte, stateTokenByteLength)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(tokenBytes), nil
}
