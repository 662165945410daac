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

package mongo

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/wso2/entity-tokenization-service/internal/system/config"
)

var (
	database *mongo.Database
	client   *mongo.Client
	mu       sync.Mutex
)

// GetDatabase returns the shared MongoDB database handle, connecting on first use.
func GetDatabase() (*mongo.Database, error) {

	mu.Lock()
	defer mu.Unlock()

	if database != nil {
		return database, nil
	}

	mongoConfig := config.GetETSRuntime().Config.Mongo
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	c, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoConfig.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := c.Ping(ctx, nil); err != nil {
		_ = c.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	client = c
	database = c.Database(mongoConfig.Database)
	return database, nil
}

// SetTestDatabase installs a shared database handle used by integration tests.
func SetTestDatabase(db *mongo.Database) {

	mu.Lock()
	defer mu.Unlock()
	database = db
}

// Disconnect closes the shared MongoDB connection.
func Disconnect(ctx context.Context) error {

	mu.Lock()
	defer mu.Unlock()

	if client == nil {
		return nil
	}
	err := client.Disconnect(ctx)
	client = nil
	database = nil
	return err
}
