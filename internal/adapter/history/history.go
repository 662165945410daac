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

package history

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/wso2/entity-tokenization-service/internal/adapter/model"
	"github.com/wso2/entity-tokenization-service/internal/system/database/provider"
	"github.com/wso2/entity-tokenization-service/internal/system/database/scripts"
	errors2 "github.com/wso2/entity-tokenization-service/internal/system/errors"
	"github.com/wso2/entity-tokenization-service/internal/system/log"
)

// activeIndex maps (dfid, adapter_type) to the currently active record id,
// so maintaining the one-active-per-adapter rule stays O(1) instead of
// scanning history on every write.
var (
	activeIndex   = map[string]string{}
	activeIndexMu sync.Mutex
)

func indexKey(dfid, adapterType string) string {

	return dfid + "|" + adapterType
}

// RecordWrite appends a storage record for a successful adapter write and
// deactivates the previous active record for the same (dfid, adapter_type).
// Both statements run in one transaction.
func RecordWrite(dfid, adapterType string, location model.AdapterLocation, contentHash,
	triggeredBy, triggeredByID string) (*model.StorageRecord, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		return nil, dbClientError(fmt.Sprintf("recording storage write for item: %s", dfid), err)
	}
	defer dbClient.Close()

	record := model.StorageRecord{
		RecordID:      uuid.New().String(),
		DFID:          dfid,
		AdapterType:   adapterType,
		Location:      location,
		ContentHash:   contentHash,
		TriggeredBy:   triggeredBy,
		TriggeredByID: triggeredByID,
		IsActive:      true,
		StoredAt:      time.Now().UTC(),
	}

	locationJSON, err := json.Marshal(location)
	if err != nil {
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.MARSHAL_JSON.Code,
			Message:     errors2.MARSHAL_JSON.Message,
			Description: fmt.Sprintf("Failed to marshal storage location for item: %s", dfid),
		}, err)
	}

	tx, err := dbClient.BeginTx()
	if err != nil {
		return nil, storageRecordError(dfid, err)
	}

	dbType := provider.NewDBProvider().GetDBType()
	if _, err := tx.Exec(scripts.DeactivateStorageRecords[dbType], dfid, adapterType); err != nil {
		_ = tx.Rollback()
		return nil, storageRecordError(dfid, err)
	}
	_, err = tx.Exec(scripts.InsertStorageRecord[dbType], record.RecordID, record.DFID, record.AdapterType,
		string(locationJSON), record.ContentHash, record.TriggeredBy, record.TriggeredByID,
		record.IsActive, record.StoredAt)
	if err != nil {
		_ = tx.Rollback()
		return nil, storageRecordError(dfid, err)
	}
	if err := tx.Commit(); err != nil {
		return nil, storageRecordError(dfid, err)
	}

	activeIndexMu.Lock()
	activeIndex[indexKey(dfid, adapterType)] = record.RecordID
	activeIndexMu.Unlock()

	logger.Debug(fmt.Sprintf("Recorded %s storage write for item: %s", adapterType, dfid))
	return &record, nil
}

// GetHistory returns all storage records of an item, oldest first.
func GetHistory(dfid string) ([]model.StorageRecord, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		return nil, dbClientError(fmt.Sprintf("fetching storage history for item: %s", dfid), err)
	}
	defer dbClient.Close()

	query := scripts.GetStorageRecordsByDfid[provider.NewDBProvider().GetDBType()]
	results, err := dbClient.ExecuteQuery(query, dfid)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed in fetching storage history for item: %s", dfid)
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.GET_STORAGE_RECORDS.Code,
			Message:     errors2.GET_STORAGE_RECORDS.Message,
			Description: errorMsg,
		}, err)
	}

	records := make([]model.StorageRecord, 0, len(results))
	for _, row := range results {
		records = append(records, rowToRecord(row))
	}
	return records, nil
}

// GetActiveRecord returns the active record for (dfid, adapter_type), or
// nil when the item was never stored through that adapter.
func GetActiveRecord(dfid, adapterType string) (*model.StorageRecord, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		return nil, dbClientError(fmt.Sprintf("fetching active storage record for item: %s", dfid), err)
	}
	defer dbClient.Close()

	query := scripts.GetActiveStorageRecord[provider.NewDBProvider().GetDBType()]
	results, err := dbClient.ExecuteQuery(query, dfid, adapterType)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed in fetching active storage record for item: %s", dfid)
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.GET_STORAGE_RECORDS.Code,
			Message:     errors2.GET_STORAGE_RECORDS.Message,
			Description: errorMsg,
		}, err)
	}
	if len(results) == 0 {
		return nil, nil
	}

	record := rowToRecord(results[0])

	activeIndexMu.Lock()
	activeIndex[indexKey(dfid, adapterType)] = record.RecordID
	activeIndexMu.Unlock()

	return &record, nil
}

// ActiveRecordID returns the cached active record id for (dfid, adapter_type)
// without touching the database. The second return reports a cache hit.
func ActiveRecordID(dfid, adapterType string) (string, bool) {

	activeIndexMu.Lock()
	defer activeIndexMu.Unlock()
	recordID, ok := activeIndex[indexKey(dfid, adapterType)]
	return recordID, ok
}

// ResetActiveIndex clears the in-memory index. Used by tests.
func ResetActiveIndex() {

	activeIndexMu.Lock()
	defer activeIndexMu.Unlock()
	activeIndex = map[string]string{}
}

func rowToRecord(row map[string]interface{}) model.StorageRecord {

	record := model.StorageRecord{
		RecordID:    row["record_id"].(string),
		DFID:        row["dfid"].(string),
		AdapterType: row["adapter_type"].(string),
		ContentHash: row["content_hash"].(string),
	}
	if v, ok := row["location"].(string); ok && v != "" {
		_ = json.Unmarshal([]byte(v), &record.Location)
	}
	if v, ok := row["triggered_by"].(string); ok {
		record.TriggeredBy = v
	}
	if v, ok := row["triggered_by_id"].(string); ok {
		record.TriggeredByID = v
	}
	if v, ok := row["is_active"].(bool); ok {
		record.IsActive = v
	}
	if v, ok := row["stored_at"].(time.Time); ok {
		record.StoredAt = v
	}
	return record
}

func storageRecordError(dfid string, err error) error {

	errorMsg := fmt.Sprintf("Error occurred while recording storage history for item: %s", dfid)
	log.GetLogger().Debug(errorMsg, log.Error(err))
	return errors2.NewServerError(errors2.ErrorMessage{
		Code:        errors2.ADD_STORAGE_RECORD.Code,
		Message:     errors2.ADD_STORAGE_RECORD.Message,
		Description: errorMsg,
	}, err)
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
