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

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/wso2/entity-tokenization-service/internal/system/config"
	"github.com/wso2/entity-tokenization-service/internal/system/database/provider"
	"github.com/wso2/entity-tokenization-service/internal/system/log"
	"github.com/wso2/entity-tokenization-service/internal/system/mongo"
	"github.com/wso2/entity-tokenization-service/internal/system/objectstore"
	"github.com/wso2/entity-tokenization-service/internal/system/redis"
)

const checkTimeout = 5 * time.Second

// HealthCheckServiceInterface defines the service interface.
type HealthCheckServiceInterface interface {
	CheckReadiness() error
}

// HealthCheckService is the default implementation.
type HealthCheckService struct{}

// GetHealthCheckService returns a new instance.
func GetHealthCheckService() HealthCheckServiceInterface {
	return &HealthCheckService{}
}

// CheckReadiness probes every backend the running configuration depends
// on: Postgres always, Mongo for the staging store, Redis when it backs
// the distributed lock, and the object store when configured.
func (h HealthCheckService) CheckReadiness() error {
	logger := log.GetLogger()
	if logger == nil {
		return errors.New("logger not initialized")
	}

	if err := checkDatabase(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
	defer cancel()

	if err := checkMongo(ctx); err != nil {
		return err
	}

	cfg := config.GetETSRuntime().Config
	if cfg.Lock.Provider == "redis" {
		if err := checkRedis(ctx); err != nil {
			return err
		}
	}
	if cfg.ObjectStore.Endpoint != "" {
		store, err := objectstore.GetStore()
		if err != nil {
			return fmt.Errorf("failed to create object store client: %v", err)
		}
		if err := store.Healthy(ctx); err != nil {
			return fmt.Errorf("object store connectivity check failed: %v", err)
		}
	}

	return nil
}

func checkDatabase() error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	if err != nil {
		return fmt.Errorf("failed to create database client: %v", err)
	}
	defer dbClient.Close()

	// Lightweight query to ensure DB connectivity.
	if _, err = dbClient.ExecuteQuery("SELECT 1;"); err != nil {
		return fmt.Errorf("database connectivity check failed: %v", err)
	}
	return nil
}

func checkMongo(ctx context.Context) error {

	db, err := mongo.GetDatabase()
	if err != nil {
		return fmt.Errorf("failed to create mongo client: %v", err)
	}
	if err := db.Client().Ping(ctx, nil); err != nil {
		return fmt.Errorf("mongo connectivity check failed: %v", err)
	}
	return nil
}

func checkRedis(ctx context.Context) error {

	client, err := redis.GetClient()
	if err != nil {
		return fmt.Errorf("failed to create redis client: %v", err)
	}
	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis connectivity check failed: %v", err)
	}
	return nil
}
