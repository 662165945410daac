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

package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/wso2/entity-tokenization-service/internal/circuit/model"
	"github.com/wso2/entity-tokenization-service/internal/circuit/provider"
	"github.com/wso2/entity-tokenization-service/internal/system/constants"
	errors2 "github.com/wso2/entity-tokenization-service/internal/system/errors"
	"github.com/wso2/entity-tokenization-service/internal/system/utils"
)

// CircuitHandler handles HTTP requests for circuits and their adapter configuration.
type CircuitHandler struct{}

func NewCircuitHandler() *CircuitHandler {
	return &CircuitHandler{}
}

// AddCircuit handles POST /circuits.
func (h *CircuitHandler) AddCircuit(w http.ResponseWriter, r *http.Request) {

	var req model.CreateCircuitRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		utils.HandleError(w, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.BAD_REQUEST.Code,
			Message:     errors2.BAD_REQUEST.Message,
			Description: utils.HandleDecodeError(err, "circuit"),
		}, http.StatusBadRequest))
		return
	}

	owner, _ := r.Context().Value(constants.SubjectContextKey).(string)
	circuitService := provider.NewCircuitProvider().GetCircuitService()
	circuit, err := circuitService.AddCircuit(owner, req)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusCreated, circuit)
}

// GetCircuit handles GET /circuits/{id}.
func (h *CircuitHandler) GetCircuit(w http.ResponseWriter, r *http.Request) {

	circuitID := pathSegment(r.URL.Path, "/circuits/")
	circuitService := provider.NewCircuitProvider().GetCircuitService()
	circuit, err := circuitService.GetCircuit(circuitID)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, circuit)
}

// GetAdapterConfig handles GET /circuits/{id}/adapter.
func (h *CircuitHandler) GetAdapterConfig(w http.ResponseWriter, r *http.Request) {

	circuitID := pathSegment(r.URL.Path, "/circuits/")
	circuitService := provider.NewCircuitProvider().GetCircuitService()
	config, err := circuitService.GetAdapterConfig(circuitID)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, config)
}

// UpdateAdapterConfig handles PUT /circuits/{id}/adapter.
func (h *CircuitHandler) UpdateAdapterConfig(w http.ResponseWriter, r *http.Request) {

	var config model.CircuitAliasConfig
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&config); err != nil {
		utils.HandleError(w, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.BAD_REQUEST.Code,
			Message:     errors2.BAD_REQUEST.Message,
			Description: utils.HandleDecodeError(err, "adapter configuration"),
		}, http.StatusBadRequest))
		return
	}

	circuitID := pathSegment(r.URL.Path, "/circuits/")
	actor, _ := r.Context().Value(constants.SubjectContextKey).(string)
	circuitService := provider.NewCircuitProvider().GetCircuitService()
	updated, err := circuitService.UpdateAdapterConfig(circuitID, actor, config)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, updated)
}

// ListCircuitItems handles GET /circuits/{id}/items.
func (h *CircuitHandler) ListCircuitItems(w http.ResponseWriter, r *http.Request) {

	circuitID := pathSegment(r.URL.Path, "/circuits/")
	circuitService := provider.NewCircuitProvider().GetCircuitService()
	dfids, err := circuitService.ListCircuitItems(circuitID)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	if dfids == nil {
		dfids = []string{}
	}
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"circuit_id": circuitID,
		"items":      dfids,
	})
}

// pathSegment extracts the first path segment after the given prefix.
func pathSegment(path, prefix string) string {

	rest := strings.TrimPrefix(path, prefix)
	if idx := strings.Index(rest, "/"); idx >= 0 {
		return rest[:idx]
	}
	return rest
}
