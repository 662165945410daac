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

	"github.com/wso2/entity-tokenization-service/internal/system/constants"
	errors2 "github.com/wso2/entity-tokenization-service/internal/system/errors"
	"github.com/wso2/entity-tokenization-service/internal/system/utils"
	"github.com/wso2/entity-tokenization-service/internal/tokenization/model"
	"github.com/wso2/entity-tokenization-service/internal/tokenization/provider"
)

// TokenizationHandler handles HTTP requests for pushes, push operations and
// LID mapping queries.
type TokenizationHandler struct{}

func NewTokenizationHandler() *TokenizationHandler {
	return &TokenizationHandler{}
}

// Push handles POST /circuits/{id}/push.
func (h *TokenizationHandler) Push(w http.ResponseWriter, r *http.Request) {

	var req model.PushRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		utils.HandleError(w, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.BAD_REQUEST.Code,
			Message:     errors2.BAD_REQUEST.Message,
			Description: utils.HandleDecodeError(err, "push request"),
		}, http.StatusBadRequest))
		return
	}

	circuitID := pathSegment(r.URL.Path, "/"+constants.CircuitsApiPath+"/")
	workspaceID, _ := r.Context().Value(constants.WorkspaceContextKey).(string)
	requester, _ := r.Context().Value(constants.SubjectContextKey).(string)

	tokenizationService := provider.NewTokenizationProvider().GetTokenizationService()
	response, err := tokenizationService.Push(circuitID, workspaceID, requester, req)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	status := http.StatusCreated
	if response.Status == constants.PushResultExistingItemEnriched {
		status = http.StatusOK
	}
	utils.RespondJSON(w, status, response)
}

// GetMapping handles GET /items/mapping/{lid}.
func (h *TokenizationHandler) GetMapping(w http.ResponseWriter, r *http.Request) {

	lid := pathSegment(r.URL.Path, "/"+constants.ItemsApiPath+"/mapping/")
	workspaceID, _ := r.Context().Value(constants.WorkspaceContextKey).(string)

	tokenizationService := provider.NewTokenizationProvider().GetTokenizationService()
	mapping, err := tokenizationService.GetMappingStatus(workspaceID, lid)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, mapping)
}

// GetOperation handles GET /operations/{id}.
func (h *TokenizationHandler) GetOperation(w http.ResponseWriter, r *http.Request) {

	operationID := pathSegment(r.URL.Path, "/"+constants.OperationsApiPath+"/")
	tokenizationService := provider.NewTokenizationProvider().GetTokenizationService()
	operation, err := tokenizationService.GetOperation(operationID)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, operation)
}

// ApproveOperation handles POST /operations/{id}/approve.
func (h *TokenizationHandler) ApproveOperation(w http.ResponseWriter, r *http.Request) {

	h.decideOperation(w, r, true)
}

// RejectOperation handles POST /operations/{id}/reject.
func (h *TokenizationHandler) RejectOperation(w http.ResponseWriter, r *http.Request) {

	h.decideOperation(w, r, false)
}

func (h *TokenizationHandler) decideOperation(w http.ResponseWriter, r *http.Request, approve bool) {

	operationID := pathSegment(r.URL.Path, "/"+constants.OperationsApiPath+"/")
	actor, _ := r.Context().Value(constants.SubjectContextKey).(string)

	tokenizationService := provider.NewTokenizationProvider().GetTokenizationService()
	var operation *model.PushOperation
	var err error
	if approve {
		operation, err = tokenizationService.ApproveOperation(operationID, actor)
	} else {
		operation, err = tokenizationService.RejectOperation(operationID, actor)
	}
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, operation)
}

// pathSegment extracts the first path segment after the given prefix.
func pathSegment(path, prefix string) string {

	rest := strings.TrimPrefix(path, prefix)
	if idx := strings.Index(rest, "/"); idx >= 0 {
		return rest[:idx]
	}
	return rest
}
