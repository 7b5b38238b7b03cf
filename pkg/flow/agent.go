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

// Package flow provides the authorization-handling component that consumes
// built authorization messages, renders the front-channel authorize URL and
// owns the result callback dispatch policy.
package flow

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/asgardeo/thunder-client/internal/system/log"
	"github.com/asgardeo/thunder-client/pkg/flow/store"
	"github.com/asgardeo/thunder-client/pkg/oauth2/authorize"
	"github.com/asgardeo/thunder-client/pkg/oauth2/constants"
	"github.com/asgardeo/thunder-client/pkg/oauth2/pkce"
)

// Flow errors
var (
	ErrUnknownFlow   = errors.New("unknown flow")
	ErrFlowFinalized = errors.New("flow result already delivered")
	ErrStateMismatch = errors.New("authorization response state does not match the dispatched request")
)

// Flow represents a dispatched authorization request awaiting its result.
type Flow struct {
	ID  string
	URL string
}

// pendingFlow tracks the in-process callback state of a dispatched flow.
type pendingFlow struct {
	callbacks authorize.Callbacks
	delivered bool
}

// Agent consumes authorization messages and mediates result delivery to the
// callbacks they carry. Each flow delivers success or failure at most once;
// completion is suppressed when a success or failure has already fired;
// cancellation implies completion.
type Agent struct {
	endpoint        oauth2.Endpoint
	store           store.Store
	challengeMethod string
	mu              sync.Mutex
	pending         map[string]*pendingFlow
}

// AgentOption configures an Agent.
type AgentOption func(*Agent)

// WithChallengeMethod sets the code challenge method advertised in the
// authorize URL. Defaults to S256.
func WithChallengeMethod(method string) AgentOption {
	return func(a *Agent) {
		a.challengeMethod = method
	}
}

// NewAgent creates an agent dispatching to the given authorization endpoint,
// persisting pending flows in the given store.
func NewAgent(endpoint oauth2.Endpoint, flowStore store.Store, opts ...AgentOption) *Agent {
	a := &Agent{
		endpoint:        endpoint,
		store:           flowStore,
		challengeMethod: pkce.CodeChallengeMethodS256,
		pending:         make(map[string]*pendingFlow),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Authorize accepts a built authorization message, persists its flow record
// and returns the flow with the rendered authorize URL. The host is expected
// to direct the user agent to the URL and report the outcome through Succeed,
// Fail, Cancel or Complete.
func (a *Agent) Authorize(ctx context.Context, msg *authorize.Message) (*Flow, error) {
	if msg == nil {
		return nil, errors.New("authorization message is required")
	}

	logger := log.GetLogger()
	flowID := uuid.NewString()

	authorizeURL, err := a.buildAuthorizeURL(msg.Request)
	if err != nil {
		return nil, err
	}

	rec := store.Record{
		FlowID:        flowID,
		ApplicationID: msg.ApplicationID,
		ClientID:      msg.Request.ClientID,
		RedirectURI:   msg.Request.RedirectURI,
		State:         msg.Request.State,
		Nonce:         msg.Request.Nonce,
		CodeVerifier:  msg.CodeVerifier,
		CorrelationID: msg.Request.CorrelationID,
		CreatedAt:     time.Now(),
	}
	if err := a.store.Put(ctx, rec); err != nil {
		return nil, errors.New("failed to persist flow record: " + err.Error())
	}

	a.mu.Lock()
	a.pending[flowID] = &pendingFlow{callbacks: msg.Callbacks}
	a.mu.Unlock()

	logger.Debug("Dispatched authorization request",
		zap.String("flowId", flowID),
		zap.String("applicationId", msg.ApplicationID),
		zap.String("correlationId", msg.Request.CorrelationID))

	return &Flow{
		ID:  flowID,
		URL: authorizeURL,
	}, nil
}

// CodeVerifier returns the PKCE code verifier persisted for the given flow,
// for redemption at the token endpoint.
func (a *Agent) CodeVerifier(ctx context.Context, flowID string) (string, error) {
	rec, err := a.store.Get(ctx, flowID)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return "", ErrUnknownFlow
		}
		return "", err
	}
	return rec.CodeVerifier, nil
}

// HandleRedirect delivers the outcome carried by an authorization redirect
// URL. An error response is routed to the failure callback; a code response
// to the success callback. A redirect carrying neither is rejected without
// finalizing the flow.
func (a *Agent) HandleRedirect(ctx context.Context, flowID string, redirectURL string) error {
	u, err := url.Parse(redirectURL)
	if err != nil {
		return errors.New("invalid redirect URL: " + err.Error())
	}

	params := u.Query()
	if errorCode := params.Get(constants.Error); errorCode != "" {
		cause := errorCode
		if desc := params.Get(constants.ErrorDescription); desc != "" {
			cause = errorCode + ": " + desc
		}
		return a.Fail(ctx, flowID, errors.New(cause))
	}

	code := params.Get(constants.Code)
	if code == "" {
		return errors.New("authorization redirect carries neither a code nor an error")
	}

	return a.Succeed(ctx, flowID, authorize.AuthorizationResponse{
		Code:  code,
		State: params.Get(constants.State),
	})
}

// Succeed delivers a successful authorization response to the flow's success
// callback. When the dispatched request carried a state token, the response
// state must match the persisted one.
func (a *Agent) Succeed(ctx context.Context, flowID string, resp authorize.AuthorizationResponse) error {
	rec, err := a.store.Get(ctx, flowID)
	if err != nil && !errors.Is(err, store.ErrRecordNotFound) {
		return err
	}
	if err == nil && rec.State != "" && rec.State != resp.State {
		return ErrStateMismatch
	}

	p, err := a.markDelivered(flowID)
	if err != nil {
		return err
	}

	if p.callbacks.OnSuccess != nil {
		p.callbacks.OnSuccess(resp)
	}
	return nil
}

// Fail delivers an authorization failure to the flow's failure callback.
func (a *Agent) Fail(_ context.Context, flowID string, cause error) error {
	p, err := a.markDelivered(flowID)
	if err != nil {
		return err
	}

	if p.callbacks.OnFailure != nil {
		p.callbacks.OnFailure(cause)
	}
	return nil
}

// Cancel reports that the user abandoned the authorization step. The
// cancellation callback fires, followed by completion since no result was
// delivered.
func (a *Agent) Cancel(ctx context.Context, flowID string) error {
	a.mu.Lock()
	p, ok := a.pending[flowID]
	if !ok {
		a.mu.Unlock()
		return ErrUnknownFlow
	}
	if p.delivered {
		a.mu.Unlock()
		return ErrFlowFinalized
	}
	delete(a.pending, flowID)
	a.mu.Unlock()

	a.discardRecord(ctx, flowID)

	if p.callbacks.OnCancellation != nil {
		p.callbacks.OnCancellation()
	}
	if p.callbacks.OnCompletion != nil {
		p.callbacks.OnCompletion()
	}
	return nil
}

// Complete reports that the authorization surface closed. The completion
// callback fires only when no success or failure was delivered for the flow.
func (a *Agent) Complete(ctx context.Context, flowID string) error {
	a.mu.Lock()
	p, ok := a.pending[flowID]
	if !ok {
		a.mu.Unlock()
		return ErrUnknownFlow
	}
	delete(a.pending, flowID)
	delivered := p.delivered
	a.mu.Unlock()

	a.discardRecord(ctx, flowID)

	if !delivered && p.callbacks.OnCompletion != nil {
		p.callbacks.OnCompletion()
	}
	return nil
}

// markDelivered transitions the flow into the delivered state, failing when
// the flow is unknown or a result was already delivered.
func (a *Agent) markDelivered(flowID string) (*pendingFlow, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	p, ok := a.pending[flowID]
	if !ok {
		return nil, ErrUnknownFlow
	}
	if p.delivered {
		return nil, ErrFlowFinalized
	}
	p.delivered = true
	return p, nil
}

// discardRecord removes the persisted flow record, logging on failure.
func (a *Agent) discardRecord(ctx context.Context, flowID string) {
	if err := a.store.Delete(ctx, flowID); err != nil {
		log.GetLogger().Warn("Failed to remove flow record",
			zap.String("flowId", flowID), zap.Error(err))
	}
}

// buildAuthorizeURL renders the front-channel authorize URL for the request.
// Absent fields contribute no query parameter.
func (a *Agent) buildAuthorizeURL(req authorize.AuthorizationRequest) (string, error) {
	base, err := url.Parse(a.endpoint.AuthURL)
	if err != nil {
		return "", errors.New("invalid authorization endpoint: " + err.Error())
	}

	params := base.Query()
	params.Set(constants.ResponseType, constants.ResponseTypeCode)
	params.Set(constants.ClientID, req.ClientID)

	setIfPresent(params, constants.RedirectURI, req.RedirectURI)
	setIfPresent(params, constants.Scope, req.Scope)
	setIfPresent(params, constants.State, req.State)
	setIfPresent(params, constants.ACRValues, req.ACR)
	setIfPresent(params, constants.Nonce, req.Nonce)
	setIfPresent(params, constants.Prompt, req.Prompt)
	setIfPresent(params, constants.CorrelationID, req.CorrelationID)
	setIfPresent(params, constants.RequestContext, req.Context)
	if req.CodeChallenge != "" {
		params.Set(constants.CodeChallenge, req.CodeChallenge)
		params.Set(constants.CodeChallengeMethod, a.challengeMethod)
	}

	base.RawQuery = params.Encode()
	return base.String(), nil
}

// setIfPresent sets the query parameter only when the value is non-empty.
func setIfPresent(params url.Values, key, value string) {
	if value != "" {
		params.Set(key, value)
	}
}
