/*
 * Copyright (c) 2025, WSO2 LLC. (http://www.wso2.com).
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

package lock

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/wso2/entity-tokenization-service/internal/system/errors"
	"github.com/wso2/entity-tokenization-service/internal/system/log"
	"github.com/wso2/entity-tokenization-service/internal/system/redis"
)

const (
	lockKeyPrefix = "ets:lock:"
	lockTTL       = 30 * time.Second
)

// releaseScript deletes the lock only when the stored token matches, so a
// holder cannot release a lock that expired and was re-acquired elsewhere.
var releaseScript = goredis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`)

// RedisLock implements DistributedLock with SET NX and a per-holder token.
type RedisLock struct {
	mu     sync.Mutex
	tokens map[string]string
}

func NewRedisLock() *RedisLock {
	return &RedisLock{tokens: make(map[string]string)}
}

func (l *RedisLock) Acquire(key string) (bool, error) {

	logger := log.GetLogger()
	client, err := redis.GetClient()
	if err != nil {
		errorMsg := "Failed to get Redis client for lock acquiring."
		logger.Error(errorMsg, log.Error(err))
		return false, errors.NewServerError(errors.ErrorMessage{
			Code:        errors.LOCK_ACQUIRE.Code,
			Message:     errors.LOCK_ACQUIRE.Message,
			Description: errorMsg,
		}, err)
	}

	token := uuid.New().String()
	acquired, err := client.SetNX(context.Background(), lockKeyPrefix+key, token, lockTTL).Result()
	if err != nil {
		errorMsg := "Failed to execute SET NX for lock key."
		logger.Error(errorMsg, log.Error(err))
		return false, errors.NewServerError(errors.ErrorMessage{
			Code:        errors.LOCK_ACQUIRE.Code,
			Message:     errors.LOCK_ACQUIRE.Message,
			Description: errorMsg,
		}, err)
	}
	if acquired {
		l.mu.Lock()
		l.tokens[key] = token
		l.mu.Unlock()
	}
	return acquired, nil
}

func (l *RedisLock) Release(key string) error {

	logger := log.GetLogger()
	client, err := redis.GetClient()
	if err != nil {
		errorMsg := "Failed to get Redis client for lock releasing."
		logger.Error(errorMsg, log.Error(err))
		return errors.NewServerError(errors.ErrorMessage{
			Code:        errors.LOCK_RELEASE.Code,
			Message:     errors.LOCK_RELEASE.Message,
			Description: errorMsg,
		}, err)
	}

	l.mu.Lock()
	token := l.tokens[key]
	delete(l.tokens, key)
	l.mu.Unlock()

	released, err := releaseScript.Run(context.Background(), client, []string{lockKeyPrefix + key}, token).Int()
	if err != nil {
		errorMsg := "Failed to execute lock release script."
		logger.Error(errorMsg, log.Error(err))
		return errors.NewServerError(errors.ErrorMessage{
			Code:        errors.LOCK_RELEASE.Code,
			Message:     errors.LOCK_RELEASE.Message,
			Description: errorMsg,
		}, err)
	}
	if released == 0 {
		logger.Warn("Lock was not held at release time", log.String("key", key))
	}
	return nil
}
