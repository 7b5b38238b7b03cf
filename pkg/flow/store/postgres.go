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

package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	// Postgres driver for the flow store.
	_ "github.com/lib/pq"
)

// Queries for the FLOW_REQUEST table.
const (
	queryInsertFlowRecord = `INSERT INTO FLOW_REQUEST
		(flow_id, application_id, client_id, redirect_uri, state, nonce, code_verifier, correlation_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (flow_id) DO UPDATE SET
		application_id = EXCLUDED.application_id, client_id = EXCLUDED.client_id,
		redirect_uri = EXCLUDED.redirect_uri, state = EXCLUDED.state, nonce = EXCLUDED.nonce,
		code_verifier = EXCLUDED.code_verifier, correlation_id = EXCLUDED.correlation_id,
		created_at = EXCLUDED.created_at`
	queryGetFlowRecord = `SELECT flow_id, application_id, client_id, redirect_uri, state, nonce,
		code_verifier, correlation_id, created_at FROM FLOW_REQUEST WHERE flow_id = $1`
	queryDeleteFlowRecord   = `DELETE FROM FLOW_REQUEST WHERE flow_id = $1`
	queryDeleteExpiredFlows = `DELETE FROM FLOW_REQUEST WHERE created_at < $1`
)

// PostgresStore is a database-backed flow store for deployments that need
// pending flows to survive process restarts.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a database-backed flow store for the given data
// source name and verifies connectivity.
func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, errors.New("failed to open database connection: " + err.Error())
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, errors.New("failed to connect to database: " + err.Error())
	}

	return NewPostgresStoreFromDB(db), nil
}

// NewPostgresStoreFromDB creates a flow store over an existing connection pool.
func NewPostgresStoreFromDB(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Put stores the record, replacing any existing record for the same flow id.
func (ps *PostgresStore) Put(ctx context.Context, rec Record) error {
	if rec.FlowID == "" {
		return errors.New("flow id is required")
	}

	_, err := ps.db.ExecContext(ctx, queryInsertFlowRecord, rec.FlowID, rec.ApplicationID,
		rec.ClientID, rec.RedirectURI, rec.State, rec.Nonce, rec.CodeVerifier,
		rec.CorrelationID, rec.CreatedAt)
	if err != nil {
		return errors.New("failed to insert flow record: " + err.Error())
	}
	return nil
}

// Get retrieves the record for the given flow id.
func (ps *PostgresStore) Get(ctx context.Context, flowID string) (Record, error) {
	var rec Record
	err := ps.db.QueryRowContext(ctx, queryGetFlowRecord, flowID).Scan(&rec.FlowID,
		&rec.ApplicationID, &rec.ClientID, &rec.RedirectURI, &rec.State, &rec.Nonce,
		&rec.CodeVerifier, &rec.CorrelationID, &rec.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, ErrRecordNotFound
		}
		return Record{}, errors.New("failed to retrieve flow record: " + err.Error())
	}
	return rec, nil
}

// Delete removes the record for the given flow id.
func (ps *PostgresStore) Delete(ctx context.Context, flowID string) error {
	if _, err := ps.db.ExecContext(ctx, queryDeleteFlowRecord, flowID); err != nil {
		return errors.New("failed to delete flow record: " + err.Error())
	}
	return nil
}

// DeleteExpired removes records older than the given validity period.
func (ps *PostgresStore) DeleteExpired(ctx context.Context, ttl time.Duration) (int64, error) {
	res, err := ps.db.ExecContext(ctx, queryDeleteExpiredFlows, time.Now().Add(-ttl))
	if err != nil {
		return 0, errors.New("failed to delete expired flow records: " + err.Error())
	}
	return res.RowsAffected()
}

// Close closes the underlying database connection pool.
func (ps *PostgresStore) Close() error {
	return ps.db.Close()
}
