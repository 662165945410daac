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
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/wso2/entity-tokenization-service/internal/circuit/model"
	"github.com/wso2/entity-tokenization-service/internal/circuit/store"
	"github.com/wso2/entity-tokenization-service/internal/system/cache"
	"github.com/wso2/entity-tokenization-service/internal/system/constants"
	errors2 "github.com/wso2/entity-tokenization-service/internal/system/errors"
	"github.com/wso2/entity-tokenization-service/internal/system/log"
)

// circuitCache keeps hot circuit configurations off the push path's DB round trip.
var circuitCache = cache.NewCache(30 * time.Second)

// CircuitServiceInterface defines operations over circuits and their
// adapter configuration.
type CircuitServiceInterface interface {
	AddCircuit(ownerID string, req model.CreateCircuitRequest) (*model.Circuit, error)
	GetCircuit(circuitID string) (*model.Circuit, error)
	GetAdapterConfig(circuitID string) (*model.CircuitAliasConfig, error)
	UpdateAdapterConfig(circuitID, actor string, config model.CircuitAliasConfig) (*model.CircuitAliasConfig, error)
	ListCircuitItems(circuitID string) ([]string, error)
}

// CircuitService is the default implementation of CircuitServiceInterface.
type CircuitService struct{}

func NewCircuitService() CircuitServiceInterface {
	return &CircuitService{}
}

// AddCircuit creates a circuit with its alias configuration.
func (s *CircuitService) AddCircuit(ownerID string, req model.CreateCircuitRequest) (*model.Circuit, error) {

	if req.CircuitName == "" {
		return nil, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.BAD_REQUEST.Code,
			Message:     errors2.BAD_REQUEST.Message,
			Description: "circuit_name must be non-empty.",
		}, http.StatusBadRequest)
	}
	if err := validateAdapterType(req.Config.AdapterType); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	circuit := model.Circuit{
		CircuitID:   uuid.New().String(),
		CircuitName: req.CircuitName,
		OwnerID:     ownerID,
		Config:      req.Config,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := store.AddCircuit(circuit); err != nil {
		return nil, err
	}

	log.GetLogger().Audit(log.AuditEvent{
		ActionID:      log.ActionAddCircuit,
		InitiatorType: log.InitiatorTypeUser,
		InitiatorID:   ownerID,
		TargetType:    log.TargetTypeCircuit,
		TargetID:      circuit.CircuitID,
	})
	return &circuit, nil
}

// GetCircuit fetches a circuit, consulting the cache first.
func (s *CircuitService) GetCircuit(circuitID string) (*model.Circuit, error) {

	if cached, found := circuitCache.Get(circuitID); found {
		circuit := cached.(model.Circuit)
		return &circuit, nil
	}

	circuit, err := store.GetCircuit(circuitID)
	if err != nil {
		return nil, err
	}
	if circuit == nil {
		return nil, circuitNotFound(circuitID)
	}

	circuitCache.Set(circuitID, *circuit)
	return circuit, nil
}

// GetAdapterConfig returns the circuit's alias configuration.
func (s *CircuitService) GetAdapterConfig(circuitID string) (*model.CircuitAliasConfig, error) {

	circuit, err := s.GetCircuit(circuitID)
	if err != nil {
		return nil, err
	}
	return &circuit.Config, nil
}

// UpdateAdapterConfig replaces the circuit's alias configuration.
func (s *CircuitService) UpdateAdapterConfig(circuitID, actor string,
	config model.CircuitAliasConfig) (*model.CircuitAliasConfig, error) {

	if err := validateAdapterType(config.AdapterType); err != nil {
		return nil, err
	}

	existing, err := store.GetCircuit(circuitID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, circuitNotFound(circuitID)
	}

	if err := store.UpdateCircuitConfig(circuitID, config); err != nil {
		return nil, err
	}
	circuitCache.Delete(circuitID)

	log.GetLogger().Audit(log.AuditEvent{
		ActionID:      log.ActionUpdateCircuitAdapter,
		InitiatorType: log.InitiatorTypeUser,
		InitiatorID:   actor,
		TargetType:    log.TargetTypeCircuit,
		TargetID:      circuitID,
		Data:          map[string]interface{}{"adapter_type": config.AdapterType},
	})
	return &config, nil
}

// ListCircuitItems returns the DFIDs visible in the circuit. Items awaiting
// approval or rejected are excluded.
func (s *CircuitService) ListCircuitItems(circuitID string) ([]string, error) {

	if _, err := s.GetCircuit(circuitID); err != nil {
		return nil, err
	}
	return store.ListVisibleItems(circuitID)
}

func validateAdapterType(adapterType string) error {

	if !constants.AllowedAdapterTypes[adapterType] {
		return errors2.NewClientErrorWithContext(errors2.ErrorMessage{
			Code:        errors2.BAD_REQUEST.Code,
			Message:     errors2.BAD_REQUEST.Message,
			Description: fmt.Sprintf("Unknown adapter type %q.", adapterType),
		}, http.StatusBadRequest, map[string]interface{}{
			"allowed_adapter_types": []string{constants.AdapterTypeLocal, constants.AdapterTypeCAS, constants.AdapterTypeLedger},
		})
	}
	return nil
}

func circuitNotFound(circuitID string) error {
	return errors2.NewClientError(errors2.ErrorMessage{
		Code:        errors2.CIRCUIT_NOT_FOUND.Code,
		Message:     errors2.CIRCUIT_NOT_FOUND.Message,
		Description: fmt.Sprintf("No circuit found for circuit_id: %s", circuitID),
	}, http.StatusNotFound)
}
