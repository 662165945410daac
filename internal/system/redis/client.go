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

package redis

import (
	"context"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/wso2/entity-tokenization-service/internal/system/config"
)

var (
	client *redis.Client
	mu     sync.Mutex
)

// GetClient returns the shared Redis client, connecting on first use.
func GetClient() (*redis.Client, error) {

	mu.Lock()
	defer mu.Unlock()

	if client != nil {
		return client, nil
	}

	redisConfig := config.GetETSRuntime().Config.Redis
	c := redis.NewClient(&redis.Options{
		Addr:     redisConfig.Addr,
		Password: redisConfig.Password,
		DB:       redisConfig.DB,
	})

	if err := c.Ping(context.Background()).Err(); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	client = c
	return client, nil
}

// SetTestClient installs a shared Redis client used by integration tests.
func SetTestClient(c *redis.Client) {

	mu.Lock()
	defer mu.Unlock()
	client = c
}

// Close closes the shared Redis connection.
func Close() error {

	mu.Lock()
	defer mu.Unlock()

	if client == nil {
		return nil
	}
	err := client.Close()
	client = nil
	return err
}
