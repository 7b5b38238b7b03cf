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
	"errors"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/simplelru"
)

const (
	defaultMemoryStoreSize = 256
	defaultMemoryStoreTTL  = 10 * time.Minute
)

// memoryEntry represents an entry in the in-memory flow store.
type memoryEntry struct {
	rec        Record
	expiryTime time.Time
}

// MemoryStore is a bounded in-memory flow store. The least recently used
// record is evicted when the store is full; records also expire after the
// configured validity period.
type MemoryStore struct {
	mu      sync.Mutex
	entries *simplelru.LRU
	ttl     time.Duration
}

// NewMemoryStore creates an in-memory flow store with the given capacity and
// record validity period. Non-positive values select the defaults.
func NewMemoryStore(size int, ttl time.Duration) (*MemoryStore, error) {
	if size <= 0 {
		size = defaultMemoryStoreSize
	}
	if ttl <= 0 {
		ttl = defaultMemoryStoreTTL
	}

	entries, err := simplelru.NewLRU(size, nil)
	if err != nil {
		return nil, err
	}

	return &MemoryStore{
		entries: entries,
		ttl:     ttl,
	}, nil
}

// Put stores the record, replacing any existing record for the same flow id.
func (ms *MemoryStore) Put(_ context.Context, rec Record) error {
	if rec.FlowID == "" {
		return errors.New("flow id is required")
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()

	ms.entries.Add(rec.FlowID, memoryEntry{
		rec:        rec,
		expiryTime: time.Now().Add(ms.ttl),
	})
	return nil
}

// Get retrieves the record for the given flow id, removing it if expired.
func (ms *MemoryStore) Get(_ context.Context, flowID string) (Record, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	value, ok := ms.entries.Get(flowID)
	if !ok {
		return Record{}, ErrRecordNotFound
	}

	entry := value.(memoryEntry)
	if time.Now().After(entry.expiryTime) {
		ms.entries.Remove(flowID)
		return Record{}, ErrRecordNotFound
	}

	return entry.rec, nil
}

// Delete removes the record for the given flow id.
func (ms *MemoryStore) Delete(_ context.Context, flowID string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	ms.entries.Remove(flowID)
	return nil
}

// Len returns the number of records currently held, including expired ones
// that have not been touched since expiry.
func (ms *MemoryStore) Len() int {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	return ms.entries.Len()
}
