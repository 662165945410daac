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
	"encoding/json"
	"fmt"
	"time"

	"github.com/wso2/entity-tokenization-service/internal/dedup/model"
	"github.com/wso2/entity-tokenization-service/internal/system/database/provider"
	"github.com/wso2/entity-tokenization-service/internal/system/database/scripts"
	errors2 "github.com/wso2/entity-tokenization-service/internal/system/errors"
	"github.com/wso2/entity-tokenization-service/internal/system/log"
)

// InsertConflict persists an ambiguous match for later manual resolution.
func InsertConflict(conflict model.Conflict) error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		return dbClientError(fmt.Sprintf("adding conflict: %s", conflict.ConflictID), err)
	}
	defer dbClient.Close()

	candidates, err := json.Marshal(conflict.Candidates)
	if err != nil {
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.MARSHAL_JSON.Code,
			Message:     errors2.MARSHAL_JSON.Message,
			Description: fmt.Sprintf("Failed to marshal candidates for conflict: %s", conflict.ConflictID),
		}, err)
	}

	query := scripts.InsertConflict[provider.NewDBProvider().GetDBType()]
	_, err = dbClient.ExecuteQuery(query, conflict.ConflictID, conflict.CircuitID, conflict.LID,
		conflict.WorkspaceID, string(candidates), conflict.Status, conflict.CreatedAt)
	if err != nil {
		errorMsg := fmt.Sprintf("Error occurred while adding conflict: %s", conflict.ConflictID)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.ADD_CONFLICT.Code,
			Message:     errors2.ADD_CONFLICT.Message,
			Description: errorMsg,
		}, err)
	}
	return nil
}

// GetOpenConflicts lists unresolved conflicts, oldest first.
func GetOpenConflicts() ([]model.Conflict, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		return nil, dbClientError("listing open conflicts", err)
	}
	defer dbClient.Close()

	query := scripts.GetOpenConflicts[provider.NewDBProvider().GetDBType()]
	results, err := dbClient.ExecuteQuery(query)
	if err != nil {
		errorMsg := "Failed in listing open conflicts"
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.GET_CONFLICTS.Code,
			Message:     errors2.GET_CONFLICTS.Message,
			Description: errorMsg,
		}, err)
	}

	conflicts := make([]model.Conflict, 0, len(results))
	for _, row := range results {
		conflicts = append(conflicts, rowToConflict(row))
	}
	return conflicts, nil
}

// GetConflict fetches a conflict by id. Returns nil when absent.
func GetConflict(conflictID string) (*model.Conflict, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		return nil, dbClientError(fmt.Sprintf("fetching conflict: %s", conflictID), err)
	}
	defer dbClient.Close()

	query := scripts.GetConflict[provider.NewDBProvider().GetDBType()]
	results, err := dbClient.ExecuteQuery(query, conflictID)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed in fetching conflict: %s", conflictID)
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.GET_CONFLICTS.Code,
			Message:     errors2.GET_CONFLICTS.Message,
			Description: errorMsg,
		}, err)
	}
	if len(results) == 0 {
		return nil, nil
	}

	conflict := rowToConflict(results[0])
	return &conflict, nil
}

// ResolveConflict marks an open conflict as resolved in favor of the given
// DFID. Returns false when the conflict was already decided.
func ResolveConflict(conflictID, resolvedBy, dfid string) (bool, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		return false, dbClientError(fmt.Sprintf("resolving conflict: %s", conflictID), err)
	}
	defer dbClient.Close()

	query := scripts.ResolveConflict[provider.NewDBProvider().GetDBType()]
	rows, err := dbClient.ExecuteQueryWithCount(query, conflictID, time.Now().UTC(), resolvedBy, dfid)
	if err != nil {
		errorMsg := fmt.Sprintf("Error occurred while resolving conflict: %s", conflictID)
		logger.Debug(errorMsg, log.Error(err))
		return false, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.ADD_CONFLICT.Code,
			Message:     errors2.ADD_CONFLICT.Message,
			Description: errorMsg,
		}, err)
	}
	return rows > 0, nil
}

func rowToConflict(row map[string]interface{}) model.Conflict {

	conflict := model.Conflict{
		ConflictID: row["conflict_id"].(string),
		CircuitID:  row["circuit_id"].(string),
		LID:        row["lid"].(string),
		Status:     row["status"].(string),
	}
	if v, ok := row["workspace_id"].(string); ok {
		conflict.WorkspaceID = v
	}
	if v, ok := row["candidates"].(string); ok && v != "" {
		_ = json.Unmarshal([]byte(v), &conflict.Candidates)
	}
	if v, ok := row["created_at"].(time.Time); ok {
		conflict.CreatedAt = v
	}
	if v, ok := row["resolved_at"].(time.Time); ok {
		conflict.ResolvedAt = v
	}
	if v, ok := row["resolved_by"].(string); ok {
		conflict.ResolvedBy = v
	}
	if v, ok := row["resolved_dfid"].(string); ok {
		conflict.ResolvedDFID = v
	}
	return conflict
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
