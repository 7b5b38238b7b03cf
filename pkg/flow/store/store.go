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

// Package store provides functionality for persisting pending authorization flows.
package store

import (
	"context"
	"errors"
	"time"
)

// ErrRecordNotFound is returned when no record exists for the given flow id.
var ErrRecordNotFound = errors.New("flow record not found")

// Record holds the security-sensitive values of a dispatched authorization
// request that must survive until the authorization response arrives.
type Record struct {
	FlowID        string    `json:"flow_id"`
	ApplicationID string    `json:"application_id"`
	ClientID      string    `json:"client_id"`
	RedirectURI   string    `json:"redirect_uri"`
	State         string    `json:"state"`
	Nonce         string    `json:"nonce"`
	CodeVerifier  string    `json:"code_verifier"`
	CorrelationID string    `json:"correlation_id"`
	CreatedAt     time.Time `json:"created_at"`
}

// Store defines the interface for pending flow persistence, keyed by flow id.
type Store interface {
	// Put stores the record, replacing any existing record for the same flow id.
	Put(ctx context.Context, rec Record) error
	// Get retrieves the record for the given flow id.
	Get(ctx context.Context, flowID string) (Record, error)
	// Delete removes the record for the given flow id. Deleting an absent
	// record is not an error.
	Delete(ctx context.Context, flowID string) error
}
