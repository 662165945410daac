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

package adapter

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/wso2/entity-tokenization-service/internal/adapter/model"
	"github.com/wso2/entity-tokenization-service/internal/system/constants"
	"github.com/wso2/entity-tokenization-service/internal/system/database/provider"
	"github.com/wso2/entity-tokenization-service/internal/system/database/scripts"
	errors2 "github.com/wso2/entity-tokenization-service/internal/system/errors"
	"github.com/wso2/entity-tokenization-service/internal/system/log"
)

// LocalAdapter persists snapshots into the item_snapshots table. The
// location is a bare snapshot id.
type LocalAdapter struct{}

func NewLocalAdapter() *LocalAdapter {

	return &LocalAdapter{}
}

func (a *LocalAdapter) Type() string {

	return constants.AdapterTypeLocal
}

// Store writes the snapshot row and returns its id as the location.
func (a *LocalAdapter) Store(ctx context.Context, snapshot model.ItemSnapshot) (model.AdapterLocation, string, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		return model.AdapterLocation{}, "", errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DB_CLIENT_INIT.Code,
			Message:     errors2.DB_CLIENT_INIT.Message,
			Description: fmt.Sprintf("Failed to get database client for storing snapshot of item: %s", snapshot.DFID),
		}, err)
	}
	defer dbClient.Close()

	if err := ctx.Err(); err != nil {
		return model.AdapterLocation{}, "", err
	}

	sum := sha256.Sum256(snapshot.Payload)
	contentHash := hex.EncodeToString(sum[:])
	snapshotID := uuid.New().String()

	query := scripts.InsertItemSnapshot[provider.NewDBProvider().GetDBType()]
	_, err = dbClient.ExecuteQuery(query, snapshotID, snapshot.DFID, string(snapshot.Payload),
		contentHash, time.Now().UTC())
	if err != nil {
		errorMsg := fmt.Sprintf("Error occurred while storing snapshot of item: %s", snapshot.DFID)
		logger.Debug(errorMsg, log.Error(err))
		return model.AdapterLocation{}, "", errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.ADAPTER_STORE.Code,
			Message:     errors2.ADAPTER_STORE.Message,
			Description: errorMsg,
		}, err)
	}

	return model.AdapterLocation{ID: snapshotID}, contentHash, nil
}

// HealthCheck verifies database connectivity.
func (a *LocalAdapter) HealthCheck(ctx context.Context) error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	if err != nil {
		return err
	}
	defer dbClient.Close()

	_, err = dbClient.ExecuteQuery("SELECT 1")
	return err
}
