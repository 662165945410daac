/*
 * Copyright (c) 2026, WSO2 LLC. (http://www.wso2.com).
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

package integration

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/wso2/entity-tokenization-service/internal/system/config"
	"github.com/wso2/entity-tokenization-service/internal/system/database/provider"
	"github.com/wso2/entity-tokenization-service/internal/system/log"
	"github.com/wso2/entity-tokenization-service/internal/system/mongo"
	"github.com/wso2/entity-tokenization-service/internal/system/workers"
	"github.com/wso2/entity-tokenization-service/test/setup"
)

// dockerAvailable is false when the container runtime could not be
// reached; every test in this package skips in that case. mongoAvailable
// additionally gates the tests driving the full push flow.
var (
	dockerAvailable bool
	mongoAvailable  bool
)

func TestMain(m *testing.M) {
	ctx := context.Background()
	os.Setenv("TEST_MODE", "true")

	conf := config.Config{
		Log: config.LogConfig{
			LogLevel: "ERROR",
		},
	}
	config.OverrideETSRuntime(conf)
	_ = log.Init("ERROR")

	pg, err := setup.SetupTestPostgres(ctx)
	if err != nil {
		fmt.Println("Skipping integration tests, container runtime unavailable:", err)
		os.Exit(m.Run())
	}
	dockerAvailable = true

	provider.SetTestDB(pg.DB)
	if err := setup.ApplySchema(pg.DB, "../../dbscripts/postgres.sql"); err != nil {
		fmt.Println("Failed to create tables from schema:", err)
		_ = pg.Container.Terminate(ctx)
		os.Exit(1)
	}

	mg, err := setup.SetupTestMongo(ctx)
	if err != nil {
		fmt.Println("Skipping push flow tests, Mongo container unavailable:", err)
	} else {
		mongoAvailable = true
		mongo.SetTestDatabase(mg.Database)
	}

	workers.StartEventWorker()

	code := m.Run()

	if mg != nil {
		_ = mg.Container.Terminate(ctx)
	}
	_ = pg.Container.Terminate(ctx)
	os.Exit(code)
}

func requireDocker(t *testing.T) {
	if !dockerAvailable {
		t.Skip("container runtime unavailable")
	}
}

func requireMongo(t *testing.T) {
	if !dockerAvailable || !mongoAvailable {
		t.Skip("mongo container unavailable")
	}
}
