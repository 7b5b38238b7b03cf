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

package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/asgardeo/thunder-client/internal/system/config"
	"github.com/asgardeo/thunder-client/internal/system/log"
	"github.com/asgardeo/thunder-client/pkg/discovery"
	"github.com/asgardeo/thunder-client/pkg/flow"
	"github.com/asgardeo/thunder-client/pkg/flow/store"
	"github.com/asgardeo/thunder-client/pkg/oauth2/authorize"
	"github.com/asgardeo/thunder-client/pkg/oauth2/pkce"
)

func main() {

	logger := log.GetLogger()
	defer log.Sync()

	configPath := flag.String("config", "client.yaml", "Path to the client configuration file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		logger.Fatal("Failed to load configurations", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	endpoint := resolveEndpoints(ctx, logger, cfg)
	flowStore := initFlowStore(logger, cfg)
	agent := flow.NewAgent(endpoint, flowStore,
		flow.WithChallengeMethod(challengeMethod(cfg)))

	msg := buildAuthorizationMessage(logger, cfg)
	authzFlow, err := agent.Authorize(ctx, msg)
	if err != nil {
		logger.Fatal("Failed to dispatch authorization request", zap.Error(err))
	}

	logger.Info("Authorization request dispatched", zap.String("flowId", authzFlow.ID))
	fmt.Println("Open the following URL in a browser to continue the login:")
	fmt.Println(authzFlow.URL)
}

// resolveEndpoints resolves the authorization server endpoints, preferring
// OIDC discovery when an issuer is configured.
func resolveEndpoints(ctx context.Context, logger *zap.Logger, cfg *config.Config) oauth2.Endpoint {

	if cfg.OAuth.Issuer != "" {
		endpoint, err := discovery.Endpoints(ctx, cfg.OAuth.Issuer)
		if err != nil {
			logger.Fatal("Failed to discover authorization server endpoints", zap.Error(err))
		}
		return endpoint
	}

	if cfg.OAuth.AuthorizeURL != "" {
		return discovery.StaticEndpoints(cfg.OAuth.AuthorizeURL, cfg.OAuth.TokenURL)
	}

	if cfg.OAuth.ServerURL == "" {
		logger.Fatal("An issuer, an authorize URL or a server URL must be configured")
	}
	return discovery.ServerEndpoints(cfg.OAuth.ServerURL)
}

// initFlowStore creates the pending flow store selected by the configuration.
func initFlowStore(logger *zap.Logger, cfg *config.Config) store.Store {

	ttl := time.Duration(cfg.FlowStore.TTLSeconds) * time.Second

	switch cfg.FlowStore.Type {
	case "", "memory":
		memStore, err := store.NewMemoryStore(cfg.FlowStore.Size, ttl)
		if err != nil {
			logger.Fatal("Failed to create in-memory flow store", zap.Error(err))
		}
		return memStore
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.FlowStore.Redis.Address,
			Password: cfg.FlowStore.Redis.Password,
			DB:       cfg.FlowStore.Redis.Database,
		})
		redisStore, err := store.NewRedisStore(client, ttl)
		if err != nil {
			logger.Fatal("Failed to create redis flow store", zap.Error(err))
		}
		return redisStore
	case "database":
		dbStore, err := store.NewPostgresStore(cfg.FlowStore.Database.DSN())
		if err != nil {
			logger.Fatal("Failed to create database flow store", zap.Error(err))
		}
		deleted, err := dbStore.DeleteExpired(context.Background(), ttl)
		if err != nil {
			logger.Warn("Failed to sweep expired flow records", zap.Error(err))
		} else if deleted > 0 {
			logger.Info("Removed expired flow records", zap.Int64("count", deleted))
		}
		return dbStore
	default:
		logger.Fatal("Unsupported flow store type", zap.String("type", cfg.FlowStore.Type))
		return nil
	}
}

// challengeMethod returns the configured code challenge method, defaulting to S256.
func challengeMethod(cfg *config.Config) string {
	if cfg.OAuth.CodeChallengeMethod == "" {
		return pkce.CodeChallengeMethodS256
	}
	return cfg.OAuth.CodeChallengeMethod
}

// buildAuthorizationMessage assembles the authorization request from the
// client configuration.
func buildAuthorizationMessage(logger *zap.Logger, cfg *config.Config) *authorize.Message {

	var challenge pkce.ChallengeFunc
	if challengeMethod(cfg) == pkce.CodeChallengeMethodPlain {
		challenge = pkce.PlainChallenge
	} else {
		challenge = pkce.S256Challenge
	}

	builder, err := authorize.NewAuthorizationRequestBuilder(cfg.Application.ID,
		cfg.OAuth.ClientID, challenge, cfg.OAuth.RedirectURI)
	if err != nil {
		logger.Fatal("Failed to create authorization request builder", zap.Error(err))
	}

	if len(cfg.OAuth.Scopes) > 0 {
		builder.WithScopes(cfg.OAuth.Scopes...)
	}

	return builder.
		WithCorrelationID(uuid.NewString()).
		OnSuccess(func(resp authorize.AuthorizationResponse) {
			logger.Info("Authorization succeeded", zap.String("state", resp.State))
		}).
		OnFailure(func(err error) {
			logger.Error("Authorization failed", zap.Error(err))
		}).
		OnCompletion(func() {
			logger.Info("Authorization flow completed without a result")
		}).
		OnCancellation(func() {
			logger.Info("Authorization flow cancelled by the user")
		}).
		Build()
}
