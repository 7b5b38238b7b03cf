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

// Package authorize provides construction of OAuth2 authorization requests.
package authorize

// AuthorizationRequest represents a fully populated authorization request.
// String fields with no value are empty; serialized output treats them as absent.
type AuthorizationRequest struct {
	ClientID      string `json:"client_id"`
	RedirectURI   string `json:"redirect_uri,omitempty"`
	Scope         string `json:"scope,omitempty"`
	State         string `json:"state,omitempty"`
	ACR           string `json:"acr_values,omitempty"`
	Nonce         string `json:"nonce,omitempty"`
	Prompt        string `json:"prompt,omitempty"`
	CorrelationID string `json:"correlation_id,omitempty"`
	Context       string `json:"context,omitempty"`
	CodeChallenge string `json:"code_challenge,omitempty"`
}

// AuthorizationResponse represents the result delivered back to a success callback.
type AuthorizationResponse struct {
	Code  string
	State string
}

// Callbacks carries the optional result handlers attached to an authorization message.
// Any handler may be nil. Dispatch policy is owned by the authorization-handling
// component receiving the message, not by the builder.
type Callbacks struct {
	OnSuccess      func(AuthorizationResponse)
	OnFailure      func(error)
	OnCompletion   func()
	OnCancellation func()
}

// Message is the outbound message addressed to the authorization-handling
// component. It carries the calling application identity, the request, the PKCE
// code verifier for later redemption, and the optional result callbacks.
type Message struct {
	ApplicationID string
	Request       AuthorizationRequest
	CodeVerifier  string
	Callbacks     Callbacks
}
