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

	"github.com/wso2/entity-tokenization-service/internal/identifier"
	"github.com/wso2/entity-tokenization-service/internal/item/model"
	"github.com/wso2/entity-tokenization-service/internal/system/database/provider"
	"github.com/wso2/entity-tokenization-service/internal/system/database/scripts"
	errors2 "github.com/wso2/entity-tokenization-service/internal/system/errors"
	"github.com/wso2/entity-tokenization-service/internal/system/log"
)

// InsertItem persists a freshly minted item and its identifiers.
func InsertItem(item model.Item) error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		return dbClientError(fmt.Sprintf("adding item: %s", item.DFID), err)
	}
	defer dbClient.Close()

	data, err := json.Marshal(item.Data)
	if err != nil {
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.MARSHAL_JSON.Code,
			Message:     errors2.MARSHAL_JSON.Message,
			Description: fmt.Sprintf("Failed to marshal data for item: %s", item.DFID),
		}, err)
	}

	dbType := provider.NewDBProvider().GetDBType()
	query := scripts.InsertItem[dbType]
	_, err = dbClient.ExecuteQuery(query, item.DFID, item.Status, string(data), item.Fingerprint,
		item.Confidence, item.CreatedAt, item.UpdatedAt)
	if err != nil {
		errorMsg := fmt.Sprintf("Error occurred while adding item: %s", item.DFID)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.ADD_ITEM.Code,
			Message:     errors2.ADD_ITEM.Message,
			Description: errorMsg,
		}, err)
	}

	for _, id := range item.Identifiers {
		if err := addIdentifier(dbClient.ExecuteQuery, dbType, item.DFID, id); err != nil {
			return err
		}
	}

	logger.Info(fmt.Sprintf("Item %s created successfully", item.DFID))
	return nil
}

// GetItem fetches an item with its identifiers and aliases. Returns nil when absent.
func GetItem(dfid string) (*model.Item, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		return nil, dbClientError(fmt.Sprintf("fetching item: %s", dfid), err)
	}
	defer dbClient.Close()

	dbType := provider.NewDBProvider().GetDBType()
	results, err := dbClient.ExecuteQuery(scripts.GetItemByDfid[dbType], dfid)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed in fetching item: %s", dfid)
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.GET_ITEM.Code,
			Message:     errors2.GET_ITEM.Message,
			Description: errorMsg,
		}, err)
	}
	if len(results) == 0 {
		logger.Debug(fmt.Sprintf("No item found for dfid: %s", dfid))
		return nil, nil
	}

	row := results[0]
	var item model.Item
	item.DFID = row["dfid"].(string)
	item.Status = row["status"].(string)
	if v, ok := row["fingerprint"].(string); ok {
		item.Fingerprint = v
	}
	switch c := row["confidence"].(type) {
	case float64:
		item.Confidence = c
	case []byte:
		// lib/pq returns numeric columns as raw bytes.
		fmt.Sscanf(string(c), "%f", &item.Confidence)
	}
	if v, ok := row["data"].(string); ok {
		_ = json.Unmarshal([]byte(v), &item.Data)
	}
	if v, ok := row["created_at"].(time.Time); ok {
		item.CreatedAt = v
	}
	if v, ok := row["updated_at"].(time.Time); ok {
		item.UpdatedAt = v
	}

	identifiers, err := getIdentifiers(dbClient.ExecuteQuery, dbType, dfid)
	if err != nil {
		return nil, err
	}
	item.Identifiers = identifiers

	aliases, err := getAliases(dbClient.ExecuteQuery, dbType, dfid)
	if err != nil {
		return nil, err
	}
	item.Aliases = aliases

	return &item, nil
}

// UpdateItemData replaces the item's merged data payload.
func UpdateItemData(dfid string, data map[string]interface{}) error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		return dbClientError(fmt.Sprintf("updating item: %s", dfid), err)
	}
	defer dbClient.Close()

	payload, err := json.Marshal(data)
	if err != nil {
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.MARSHAL_JSON.Code,
			Message:     errors2.MARSHAL_JSON.Message,
			Description: fmt.Sprintf("Failed to marshal data for item: %s", dfid),
		}, err)
	}

	query := scripts.UpdateItemData[provider.NewDBProvider().GetDBType()]
	_, err = dbClient.ExecuteQuery(query, dfid, string(payload), time.Now().UTC())
	if err != nil {
		errorMsg := fmt.Sprintf("Error occurred while updating item: %s", dfid)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.UPDATE_ITEM.Code,
			Message:     errors2.UPDATE_ITEM.Message,
			Description: errorMsg,
		}, err)
	}
	return nil
}

// AddIdentifiers appends identifier tuples to an item. Existing tuples are
// left untouched.
func AddIdentifiers(dfid string, identifiers []identifier.Identifier) error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	if err != nil {
		return dbClientError(fmt.Sprintf("adding identifiers to item: %s", dfid), err)
	}
	defer dbClient.Close()

	dbType := provider.NewDBProvider().GetDBType()
	for _, id := range identifiers {
		if err := addIdentifier(dbClient.ExecuteQuery, dbType, dfid, id); err != nil {
			return err
		}
	}
	return nil
}

// FindDfidsByIdentifier returns the distinct DFIDs carrying the exact tuple.
func FindDfidsByIdentifier(id identifier.Identifier) ([]string, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		return nil, dbClientError(fmt.Sprintf("looking up identifier: %s", id.Tuple()), err)
	}
	defer dbClient.Close()

	query := scripts.FindDfidsByIdentifier[provider.NewDBProvider().GetDBType()]
	results, err := dbClient.ExecuteQuery(query, id.Namespace, id.Key, id.Value)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed in looking up identifier: %s", id.Tuple())
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.GET_ITEM.Code,
			Message:     errors2.GET_ITEM.Message,
			Description: errorMsg,
		}, err)
	}

	var dfids []string
	for _, row := range results {
		dfids = append(dfids, row["dfid"].(string))
	}
	return dfids, nil
}

// AddCircuitFingerprint records the circuit-scoped fingerprint of an item.
func AddCircuitFingerprint(circuitID, fingerprint, dfid string) error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	if err != nil {
		return dbClientError(fmt.Sprintf("adding fingerprint for item: %s", dfid), err)
	}
	defer dbClient.Close()

	query := scripts.InsertCircuitFingerprint[provider.NewDBProvider().GetDBType()]
	_, err = dbClient.ExecuteQuery(query, circuitID, fingerprint, dfid)
	if err != nil {
		errorMsg := fmt.Sprintf("Error occurred while adding fingerprint for item: %s", dfid)
		log.GetLogger().Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.ADD_ITEM.Code,
			Message:     errors2.ADD_ITEM.Message,
			Description: errorMsg,
		}, err)
	}
	return nil
}

// FindDfidByCircuitFingerprint resolves a circuit-scoped fingerprint to a DFID.
// Returns an empty string when no item was stored under the fingerprint.
func FindDfidByCircuitFingerprint(circuitID, fingerprint string) (string, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		return "", dbClientError(fmt.Sprintf("looking up fingerprint in circuit: %s", circuitID), err)
	}
	defer dbClient.Close()

	query := scripts.GetDfidByCircuitFingerprint[provider.NewDBProvider().GetDBType()]
	results, err := dbClient.ExecuteQuery(query, circuitID, fingerprint)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed in looking up fingerprint in circuit: %s", circuitID)
		logger.Debug(errorMsg, log.Error(err))
		return "", errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.GET_ITEM.Code,
			Message:     errors2.GET_ITEM.Message,
			Description: errorMsg,
		}, err)
	}
	if len(results) == 0 {
		return "", nil
	}
	return results[0]["dfid"].(string), nil
}

// AddMapping writes the immutable LID to DFID binding. The insert is a no-op
// when the LID is already mapped.
func AddMapping(mapping model.Mapping) error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		return dbClientError(fmt.Sprintf("adding mapping for LID: %s", mapping.LID), err)
	}
	defer dbClient.Close()

	query := scripts.InsertMapping[provider.NewDBProvider().GetDBType()]
	_, err = dbClient.ExecuteQuery(query, mapping.LID, mapping.DFID, mapping.WorkspaceID, mapping.CreatedAt)
	if err != nil {
		errorMsg := fmt.Sprintf("Error occurred while adding mapping for LID: %s", mapping.LID)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.ADD_MAPPING.Code,
			Message:     errors2.ADD_MAPPING.Message,
			Description: errorMsg,
		}, err)
	}
	return nil
}

// GetMapping fetches the mapping for a LID. Returns nil when the LID has
// never been tokenized.
func GetMapping(lid string) (*model.Mapping, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		return nil, dbClientError(fmt.Sprintf("fetching mapping for LID: %s", lid), err)
	}
	defer dbClient.Close()

	query := scripts.GetMappingByLid[provider.NewDBProvider().GetDBType()]
	results, err := dbClient.ExecuteQuery(query, lid)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed in fetching mapping for LID: %s", lid)
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.GET_MAPPING.Code,
			Message:     errors2.GET_MAPPING.Message,
			Description: errorMsg,
		}, err)
	}
	if len(results) == 0 {
		return nil, nil
	}

	row := results[0]
	mapping := model.Mapping{
		LID:  row["lid"].(string),
		DFID: row["dfid"].(string),
	}
	if v, ok := row["workspace_id"].(string); ok {
		mapping.WorkspaceID = v
	}
	if v, ok := row["created_at"].(time.Time); ok {
		mapping.CreatedAt = v
	}
	return &mapping, nil
}

type queryFunc func(query string, args ...interface{}) ([]map[string]interface{}, error)

func addIdentifier(execute queryFunc, dbType, dfid string, id identifier.Identifier) error {

	metadata, err := json.Marshal(id.Metadata)
	if err != nil {
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.MARSHAL_JSON.Code,
			Message:     errors2.MARSHAL_JSON.Message,
			Description: fmt.Sprintf("Failed to marshal identifier metadata for item: %s", dfid),
		}, err)
	}

	_, err = execute(scripts.InsertItemIdentifier[dbType], dfid, id.Namespace, id.Key, id.Value,
		id.Kind, string(metadata), time.Now().UTC())
	if err != nil {
		errorMsg := fmt.Sprintf("Error occurred while adding identifier %s to item: %s", id.Tuple(), dfid)
		log.GetLogger().Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.ADD_ITEM.Code,
			Message:     errors2.ADD_ITEM.Message,
			Description: errorMsg,
		}, err)
	}
	return nil
}

func getIdentifiers(execute queryFunc, dbType, dfid string) ([]identifier.Identifier, error) {

	results, err := execute(scripts.GetItemIdentifiers[dbType], dfid)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed in fetching identifiers for item: %s", dfid)
		log.GetLogger().Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.GET_ITEM.Code,
			Message:     errors2.GET_ITEM.Message,
			Description: errorMsg,
		}, err)
	}

	var identifiers []identifier.Identifier
	for _, row := range results {
		id := identifier.Identifier{
			Namespace: row["namespace"].(string),
			Key:       row["id_key"].(string),
			Value:     row["id_value"].(string),
			Kind:      row["kind"].(string),
		}
		if v, ok := row["metadata"].(string); ok && v != "" && v != "null" {
			_ = json.Unmarshal([]byte(v), &id.Metadata)
		}
		identifiers = append(identifiers, id)
	}
	return identifiers, nil
}

func getAliases(execute queryFunc, dbType, dfid string) ([]model.Alias, error) {

	results, err := execute(scripts.GetItemAliases[dbType], dfid)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed in fetching aliases for item: %s", dfid)
		log.GetLogger().Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.GET_ITEM.Code,
			Message:     errors2.GET_ITEM.Message,
			Description: errorMsg,
		}, err)
	}

	var aliases []model.Alias
	for _, row := range results {
		alias := model.Alias{
			Scheme: row["scheme"].(string),
			Value:  row["alias_value"].(string),
		}
		if v, ok := row["issuer"].(string); ok {
			alias.Issuer = v
		}
		if v, ok := row["evidence_hash"].(string); ok {
			alias.EvidenceHash = v
		}
		if v, ok := row["asserted_at"].(time.Time); ok {
			alias.AssertedAt = v
		}
		aliases = append(aliases, alias)
	}
	return aliases, nil
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
