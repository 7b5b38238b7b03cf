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

// Package discovery resolves the OAuth2 endpoints of an authorization server.
package discovery

import (
	"context"
	"errors"
	"strings"

	oidc "github.com/coreos/go-oidc"
	"golang.org/x/oauth2"

	"github.com/asgardeo/thunder-client/pkg/oauth2/constants"
)

// Endpoints resolves the authorization server endpoints for the given issuer
// via OIDC provider discovery.
func Endpoints(ctx context.Context, issuer string) (oauth2.Endpoint, error) {
	if issuer == "" {
		return oauth2.Endpoint{}, errors.New("issuer is required")
	}

	provider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return oauth2.Endpoint{}, errors.New("failed to discover provider endpoints: " + err.Error())
	}
	return provider.Endpoint(), nil
}

// StaticEndpoints returns endpoints for servers configured without discovery.
func StaticEndpoints(authorizeURL, tokenURL string) oauth2.Endpoint {
	return oauth2.Endpoint{
		AuthURL:  authorizeURL,
		TokenURL: tokenURL,
	}
}

// ServerEndpoints returns the endpoints of a Thunder server at the given base
// URL, using the server's well-known OAuth2 paths.
func ServerEndpoints(serverURL string) oauth2.Endpoint {
	base := strings.TrimSuffix(serverURL, "/")
	return StaticEndpoints(base+constants.OAuth2AuthorizationEndpoint,
		base+constants.OAuth2TokenEndpoint)
}
