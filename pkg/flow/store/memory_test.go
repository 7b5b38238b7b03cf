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
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type MemoryStoreTestSuite struct {
	suite.Suite
}

func TestMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(MemoryStoreTestSuite))
}

func testRecord(flowID string) Record {
	return Record{
		FlowID:        flowID,
		ApplicationID: "app-001",
		ClientID:      "client-001",
		RedirectURI:   "https://localhost:3000/callback",
		State:         "state-" + flowID,
		Nonce:         "nonce-" + flowID,
		CodeVerifier:  "verifier-" + flowID,
		CorrelationID: "corr-" + flowID,
		CreatedAt:     time.Now().UTC().Truncate(time.Second),
	}
}

func (suite *MemoryStoreTestSuite) TestPutAndGet() {
	ms, err := NewMemoryStore(10, time.Minute)
	assert.NoError(suite.T(), err)

	rec := testRecord("flow-1")
	assert.NoError(suite.T(), ms.Put(context.Background(), rec))

	got, err := ms.Get(context.Background(), "flow-1")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), rec, got)
}

func (suite *MemoryStoreTestSuite) TestPutRequiresFlowID() {
	ms, err := NewMemoryStore(10, time.Minute)
	assert.NoError(suite.T(), err)

	assert.Error(suite.T(), ms.Put(context.Background(), Record{}))
}

func (suite *MemoryStoreTestSuite) TestPutReplacesExistingRecord() {
	ms, err := NewMemoryStore(10, time.Minute)
	assert.NoError(suite.T(), err)

	first := testRecord("flow-1")
	assert.NoError(suite.T(), ms.Put(context.Background(), first))

	second := testRecord("flow-1")
	second.Nonce = "replaced"
	assert.NoError(suite.T(), ms.Put(context.Background(), second))

	got, err := ms.Get(context.Background(), "flow-1")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "replaced", got.Nonce)
}

func (suite *MemoryStoreTestSuite) TestGetUnknownFlow() {
	ms, err := NewMemoryStore(10, time.Minute)
	assert.NoError(suite.T(), err)

	_, err = ms.Get(context.Background(), "missing")
	assert.ErrorIs(suite.T(), err, ErrRecordNotFound)
}

func (suite *MemoryStoreTestSuite) TestExpiredRecordIsRemoved() {
	ms, err := NewMemoryStore(10, time.Millisecond)
	assert.NoError(suite.T(), err)

	assert.NoError(suite.T(), ms.Put(context.Background(), testRecord("flow-1")))
	time.Sleep(5 * time.Millisecond)

	_, err = ms.Get(context.Background(), "flow-1")
	assert.ErrorIs(suite.T(), err, ErrRecordNotFound)
	assert.Equal(suite.T(), 0, ms.Len())
}

func (suite *MemoryStoreTestSuite) TestLeastRecentlyUsedEviction() {
	ms, err := NewMemoryStore(2, time.Minute)
	assert.NoError(suite.T(), err)

	for i := 1; i <= 3; i++ {
		assert.NoError(suite.T(), ms.Put(context.Background(), testRecord(fmt.Sprintf("flow-%d", i))))
	}

	_, err = ms.Get(context.Background(), "flow-1")
	assert.ErrorIs(suite.T(), err, ErrRecordNotFound)

	_, err = ms.Get(context.Background(), "flow-3")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 2, ms.Len())
}

func (suite *MemoryStoreTestSuite) TestDelete() {
	ms, err := NewMemoryStore(10, time.Minute)
	assert.NoError(suite.T(), err)

	assert.NoError(suite.T(), ms.Put(context.Background(), testRecord("flow-1")))
	assert.NoError(suite.T(), ms.Delete(context.Background(), "flow-1"))

	_, err = ms.Get(context.Background(), "flow-1")
	assert.ErrorIs(suite.T(), err, ErrRecordNotFound)

	// Deleting an absent record is not an error.
	assert.NoError(suite.T(), ms.Delete(context.Background(), "flow-1"))
}

func (suite *MemoryStoreTestSuite) TestDefaultsApplied() {
	ms, err := NewMemoryStore(0, 0)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), defaultMemoryStoreTTL, ms.ttl)
}
