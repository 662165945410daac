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

package store

import (
	"fmt"
	"time"

	"github.com/wso2/entity-tokenization-service/internal/system/database/provider"
	"github.com/wso2/entity-tokenization-service/internal/system/database/scripts"
	errors2 "github.com/wso2/entity-tokenization-service/internal/system/errors"
	"github.com/wso2/entity-tokenization-service/internal/system/log"
	"github.com/wso2/entity-tokenization-service/internal/tokenization/model"
)

// InsertOperation persists a push operation.
func InsertOperation(operation model.PushOperation) error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		return dbClientError(fmt.Sprintf("adding operation: %s", operation.OperationID), err)
	}
	defer dbClient.Close()

	query := scripts.InsertOperation[provider.NewDBProvider().GetDBType()]
	_, err = dbClient.ExecuteQuery(query, operation.OperationID, operation.CircuitID, operation.DFID,
		operation.LID, operation.RequesterID, operation.Status, operation.CreatedAt)
	if err != nil {
		errorMsg := fmt.Sprintf("Error occurred while adding operation: %s", operation.OperationID)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.ADD_OPERATION.Code,
			Message:     errors2.ADD_OPERATION.Message,
			Description: errorMsg,
		}, err)
	}
	return nil
}

// GetOperation fetches a push operation by id. Returns nil when absent.
func GetOperation(operationID string) (*model.PushOperation, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		return nil, dbClientError(fmt.Sprintf("fetching operation: %s", operationID), err)
	}
	defer dbClient.Close()

	query := scripts.GetOperation[provider.NewDBProvider().GetDBType()]
	results, err := dbClient.ExecuteQuery(query, operationID)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed in fetching operation: %s", operationID)
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.GET_OPERATION.Code,
			Message:     errors2.GET_OPERATION.Message,
			Description: errorMsg,
		}, err)
	}
	if len(results) == 0 {
		return nil, nil
	}

	row := results[0]
	operation := model.PushOperation{
		OperationID: row["operation_id"].(string),
		CircuitID:   row["circuit_id"].(string),
		DFID:        row["dfid"].(string),
		LID:         row["lid"].(string),
		Status:      row["status"].(string),
	}
	if v, ok := row["requester_id"].(string); ok {
		operation.RequesterID = v
	}
	if v, ok := row["created_at"].(time.Time); ok {
		operation.CreatedAt = v
	}
	if v, ok := row["decided_at"].(time.Time); ok {
		operation.DecidedAt = v
	}
	if v, ok := row["decided_by"].(string); ok {
		operation.DecidedBy = v
	}
	return &operation, nil
}

// DecideOperation moves a pending operation to a terminal status. Returns
// false when the operation was already decided, so callers can surface the
// double-decision instead of silently re-deciding.
func DecideOperation(operationID, status, decidedBy string) (bool, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		return false, dbClientError(fmt.Sprintf("deciding operation: %s", operationID), err)
	}
	defer dbClient.Close()

	query := scripts.DecideOperation[provider.NewDBProvider().GetDBType()]
	rows, err := dbClient.ExecuteQueryWithCount(query, operationID, status, time.Now().UTC(), decidedBy)
	if err != nil {
		errorMsg := fmt.Sprintf("Error occurred while deciding operation: %s", operationID)
		logger.Debug(errorMsg, log.Error(err))
		return false, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.UPDATE_OPERATION.Code,
			Message:     errors2.UPDATE_OPERATION.Message,
			Description: errorMsg,
		}, err)
	}
	return rows > 0, nil
}

func dbClientError(context string, err error) error {

	errorMsg := fmt.Sprintf("Failed to get database client for %s", context)
	log.GetLogger().Debug(errorMsg, log.Error(err))
	return errors2.NewServerError(errors2.ErrorMessage{
		Code:        errors2.DB_CLIENT_INIT.Code,
		Message:     errors2.DB_CLIENT_INIT.Message,
		Description: errorMsg,
	}, err)
}
