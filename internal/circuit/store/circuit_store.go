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

	"github.com/wso2/entity-tokenization-service/internal/circuit/model"
	"github.com/wso2/entity-tokenization-service/internal/system/database/provider"
	"github.com/wso2/entity-tokenization-service/internal/system/database/scripts"
	errors2 "github.com/wso2/entity-tokenization-service/internal/system/errors"
	"github.com/wso2/entity-tokenization-service/internal/system/log"
)

// AddCircuit inserts a new circuit with its alias configuration.
func AddCircuit(circuit model.Circuit) error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get database client for adding circuit: %s", circuit.CircuitID)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DB_CLIENT_INIT.Code,
			Message:     errors2.DB_CLIENT_INIT.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	requiredCanonical, _ := json.Marshal(circuit.Config.RequiredCanonical)
	requiredContextual, _ := json.Marshal(circuit.Config.RequiredContextual)
	allowedNamespaces, _ := json.Marshal(circuit.Config.AllowedNamespaces)

	query := scripts.InsertCircuit[provider.NewDBProvider().GetDBType()]
	_, err = dbClient.ExecuteQuery(query, circuit.CircuitID, circuit.CircuitName, circuit.OwnerID,
		circuit.Config.AdapterType, circuit.Config.RequireApproval, string(requiredCanonical),
		string(requiredContextual), string(allowedNamespaces), circuit.Config.DefaultNamespace,
		circuit.Config.AutoApplyNamespace, circuit.Config.UseFingerprint, circuit.Config.StrictFormat,
		circuit.CreatedAt, circuit.UpdatedAt)
	if err != nil {
		errorMsg := fmt.Sprintf("Error occurred while adding circuit: %s", circuit.CircuitID)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.ADD_CIRCUIT.Code,
			Message:     errors2.ADD_CIRCUIT.Message,
			Description: errorMsg,
		}, err)
	}

	logger.Info(fmt.Sprintf("Circuit %s added successfully", circuit.CircuitID))
	return nil
}

// GetCircuit fetches a circuit by id. Returns nil when absent.
func GetCircuit(circuitID string) (*model.Circuit, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get database client for fetching circuit: %s", circuitID)
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DB_CLIENT_INIT.Code,
			Message:     errors2.DB_CLIENT_INIT.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	query := scripts.GetCircuit[provider.NewDBProvider().GetDBType()]
	results, err := dbClient.ExecuteQuery(query, circuitID)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed in fetching circuit: %s", circuitID)
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.GET_CIRCUIT.Code,
			Message:     errors2.GET_CIRCUIT.Message,
			Description: errorMsg,
		}, err)
	}
	if len(results) == 0 {
		logger.Debug(fmt.Sprintf("No circuit found for circuit_id: %s", circuitID))
		return nil, nil
	}

	circuit := rowToCircuit(results[0])
	return &circuit, nil
}

// UpdateCircuitConfig replaces the alias configuration of a circuit.
func UpdateCircuitConfig(circuitID string, config model.CircuitAliasConfig) error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get database client for updating circuit: %s", circuitID)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DB_CLIENT_INIT.Code,
			Message:     errors2.DB_CLIENT_INIT.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	requiredCanonical, _ := json.Marshal(config.RequiredCanonical)
	requiredContextual, _ := json.Marshal(config.RequiredContextual)
	allowedNamespaces, _ := json.Marshal(config.AllowedNamespaces)

	query := scripts.UpdateCircuitAdapter[provider.NewDBProvider().GetDBType()]
	_, err = dbClient.ExecuteQuery(query, circuitID, config.AdapterType, config.RequireApproval,
		string(requiredCanonical), string(requiredContextual), string(allowedNamespaces),
		config.DefaultNamespace, config.AutoApplyNamespace, config.UseFingerprint, config.StrictFormat,
		time.Now().UTC())
	if err != nil {
		errorMsg := fmt.Sprintf("Error occurred while updating circuit: %s", circuitID)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.UPDATE_CIRCUIT.Code,
			Message:     errors2.UPDATE_CIRCUIT.Message,
			Description: errorMsg,
		}, err)
	}

	logger.Info(fmt.Sprintf("Circuit %s configuration updated successfully", circuitID))
	return nil
}

// UpsertCircuitItem records circuit membership for a DFID with the given visibility.
func UpsertCircuitItem(circuitID, dfid string, visible bool, operationID string) error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get database client for adding circuit item: %s", dfid)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DB_CLIENT_INIT.Code,
			Message:     errors2.DB_CLIENT_INIT.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	query := scripts.UpsertCircuitItem[provider.NewDBProvider().GetDBType()]
	_, err = dbClient.ExecuteQuery(query, circuitID, dfid, visible, operationID, time.Now().UTC())
	if err != nil {
		errorMsg := fmt.Sprintf("Error occurred while adding item %s to circuit %s", dfid, circuitID)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.UPDATE_CIRCUIT.Code,
			Message:     errors2.UPDATE_CIRCUIT.Message,
			Description: errorMsg,
		}, err)
	}
	return nil
}

// SetCircuitItemVisible flips the visibility of a circuit member.
func SetCircuitItemVisible(circuitID, dfid string, visible bool) error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get database client for updating circuit item: %s", dfid)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DB_CLIENT_INIT.Code,
			Message:     errors2.DB_CLIENT_INIT.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	query := scripts.SetCircuitItemVisible[provider.NewDBProvider().GetDBType()]
	_, err = dbClient.ExecuteQuery(query, circuitID, dfid, visible)
	if err != nil {
		errorMsg := fmt.Sprintf("Error occurred while updating visibility of item %s in circuit %s", dfid, circuitID)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.UPDATE_CIRCUIT.Code,
			Message:     errors2.UPDATE_CIRCUIT.Message,
			Description: errorMsg,
		}, err)
	}
	return nil
}

// ListVisibleItems returns the DFIDs visible in a circuit, ordered by DFID.
func ListVisibleItems(circuitID string) ([]string, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get database client for listing circuit items: %s", circuitID)
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DB_CLIENT_INIT.Code,
			Message:     errors2.DB_CLIENT_INIT.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	query := scripts.ListVisibleCircuitItems[provider.NewDBProvider().GetDBType()]
	results, err := dbClient.ExecuteQuery(query, circuitID)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed in listing items for circuit: %s", circuitID)
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.GET_CIRCUIT.Code,
			Message:     errors2.GET_CIRCUIT.Message,
			Description: errorMsg,
		}, err)
	}

	var dfids []string
	for _, row := range results {
		dfids = append(dfids, row["dfid"].(string))
	}
	return dfids, nil
}

func rowToCircuit(row map[string]interface{}) model.Circuit {

	var circuit model.Circuit
	circuit.CircuitID = row["circuit_id"].(string)
	circuit.CircuitName = row["circuit_name"].(string)
	circuit.OwnerID = row["owner_id"].(string)
	circuit.Config.AdapterType = row["adapter_type"].(string)
	circuit.Config.RequireApproval = row["require_approval"].(bool)
	circuit.Config.AutoApplyNamespace = row["auto_apply_namespace"].(bool)
	circuit.Config.UseFingerprint = row["use_fingerprint"].(bool)
	circuit.Config.StrictFormat = row["strict_format"].(bool)
	if v, ok := row["default_namespace"].(string); ok {
		circuit.Config.DefaultNamespace = v
	}
	if v, ok := row["required_canonical"].(string); ok {
		_ = json.Unmarshal([]byte(v), &circuit.Config.RequiredCanonical)
	}
	if v, ok := row["required_contextual"].(string); ok {
		_ = json.Unmarshal([]byte(v), &circuit.Config.RequiredContextual)
	}
	if v, ok := row["allowed_namespaces"].(string); ok {
		_ = json.Unmarshal([]byte(v), &circuit.Config.AllowedNamespaces)
	}
	if v, ok := row["created_at"].(time.Time); ok {
		circuit.CreatedAt = v
	}
	if v, ok := row["updated_at"].(time.Time); ok {
		circuit.UpdatedAt = v
	}
	return circuit
}
