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
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "thunder:client:flow:"

// RedisStore is a redis-backed flow store for deployments where the
// authorization response may be handled by a different process than the one
// that dispatched the request.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a redis-backed flow store using the given client.
// Records expire after the given validity period; a non-positive value
// selects the default.
func NewRedisStore(client *redis.Client, ttl time.Duration) (*RedisStore, error) {
	if client == nil {
		return nil, errors.New("redis client is required")
	}
	if ttl <= 0 {
		ttl = defaultMemoryStoreTTL
	}

	return &RedisStore{
		client: client,
		ttl:    ttl,
	}, nil
}

// Put stores the record, replacing any existing record for the same flow id.
func (rs *RedisStore) Put(ctx context.Context, rec Record) error {
	if rec.FlowID == "" {
		return errors.New("flow id is required")
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return errors.New("failed to serialize flow record: " + err.Error())
	}

	return rs.client.Set(ctx, redisKeyPrefix+rec.FlowID, data, rs.ttl).Err()
}

// Get retrieves the record for the given flow id.
func (rs *RedisStore) Get(ctx context.Context, flowID string) (Record, error) {
	data, err := rs.client.Get(ctx, redisKeyPrefix+flowID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Record{}, ErrRecordNotFound
		}
		return Record{}, err
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, errors.New("failed to deserialize flow record: " + err.Error())
	}
	return rec, nil
}

// Delete removes the record for the given flow id.
func (rs *RedisStore) Delete(ctx context.Context, flowID string) error {
	return rs.client.Del(ctx, redisKeyPrefix+flowID).Err()
}
