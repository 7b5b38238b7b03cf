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

// Package constants defines constants used across the OAuth2 client module.
package constants

// OAuth2 request parameters.
const (
	ClientID            = "client_id"
	RedirectURI         = "redirect_uri"
	ResponseType        = "response_type"
	Scope               = "scope"
	State               = "state"
	Nonce               = "nonce"
	Prompt              = "prompt"
	ACRValues           = "acr_values"
	CodeChallenge       = "code_challenge"
	CodeChallengeMethod = "code_challenge_method"
	CorrelationID       = "correlation_id"
	RequestContext      = "context"
	Code                = "code"
	Error               = "error"
	ErrorDescription    = "error_description"
)

// OAuth2 response types.
const (
	ResponseTypeCode = "code"
)

// Well-known scope values.
const (
	ScopeOpenID = "openid"
)

// OAuth2 endpoints.
const (
	OAuth2AuthorizationEndpoint = "/oauth2/authorize"
	OAuth2TokenEndpoint         = "/oauth2/token" // #nosec G101
)
