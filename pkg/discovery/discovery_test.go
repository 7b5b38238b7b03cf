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

package discovery

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type DiscoveryTestSuite struct {
	suite.Suite
}

func TestDiscoverySuite(t *testing.T) {
	suite.Run(t, new(DiscoveryTestSuite))
}

func (suite *DiscoveryTestSuite) TestEndpointsViaDiscovery() {
	var issuer string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/.well-known/openid-configuration" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"issuer":                 issuer,
			"authorization_endpoint": issuer + "/oauth2/authorize",
			"token_endpoint":         issuer + "/oauth2/token",
			"jwks_uri":               issuer + "/oauth2/jwks",
			"response_types_supported": []string{
				"code",
			},
		})
	}))
	defer server.Close()
	issuer = server.URL

	endpoint, err := Endpoints(context.Background(), issuer)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), issuer+"/oauth2/authorize", endpoint.AuthURL)
	assert.Equal(suite.T(), issuer+"/oauth2/token", endpoint.TokenURL)
}

func (suite *DiscoveryTestSuite) TestEndpointsRequiresIssuer() {
	_, err := Endpoints(context.Background(), "")
	assert.Error(suite.T(), err)
}

func (suite *DiscoveryTestSuite) TestEndpointsDiscoveryFailure() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer server.Close()

	_, err := Endpoints(context.Background(), server.URL)
	assert.Error(suite.T(), err)
	assert.Contains(suite.T(), err.Error(), "failed to discover provider endpoints")
}

func (suite *DiscoveryTestSuite) TestStaticEndpoints() {
	endpoint := StaticEndpoints("https://localhost:8090/oauth2/authorize",
		"https://localhost:8090/oauth2/token")
	assert.Equal(suite.T(), "https://localhost:8090/oauth2/authorize", endpoint.AuthURL)
	assert.Equal(suite.T(), "https://localhost:8090/oauth2/token", endpoint.TokenURL)
}

func (suite *DiscoveryTestSuite) TestServerEndpoints() {
	testCases := []struct {
		name      string
		serverURL string
	}{
		{
			name:      "WithoutTrailingSlash",
			serverURL: "https://localhost:8090",
		},
		{
			name:      "WithTrailingSlash",
			serverURL: "https://localhost:8090/",
		},
	}

	for _, tc := range testCases {
		suite.T().Run(tc.name, func(t *testing.T) {
			endpoint := ServerEndpoints(tc.serverURL)
			assert.Equal(t, "https://localhost:8090/oauth2/authorize", endpoint.AuthURL)
			assert.Equal(t, "https://localhost:8090/oauth2/token", endpoint.TokenURL)
		})
	}
}
