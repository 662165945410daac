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

	"github.com/wso2/entity-tokenization-service/internal/dedup/model"
	"github.com/wso2/entity-tokenization-service/internal/dedup/provider"
	"github.com/wso2/entity-tokenization-service/internal/system/constants"
	errors2 "github.com/wso2/entity-tokenization-service/internal/system/errors"
	"github.com/wso2/entity-tokenization-service/internal/system/utils"
	tokenization "github.com/wso2/entity-tokenization-service/internal/tokenization/provider"
)

// ConflictHandler handles HTTP requests for deduplication conflicts.
type ConflictHandler struct{}

func NewConflictHandler() *ConflictHandler {
	return &ConflictHandler{}
}

// ListConflicts handles GET /conflicts.
func (h *ConflictHandler) ListConflicts(w http.ResponseWriter, r *http.Request) {

	conflictService := provider.NewDedupProvider().GetConflictService()
	conflicts, err := conflictService.ListOpenConflicts()
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	if conflicts == nil {
		conflicts = []model.Conflict{}
	}
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"conflicts": conflicts,
	})
}

// GetConflict handles GET /conflicts/{id}.
func (h *ConflictHandler) GetConflict(w http.ResponseWriter, r *http.Request) {

	conflictID := conflictIDFromPath(r.URL.Path)
	conflictService := provider.NewDedupProvider().GetConflictService()
	conflict, err := conflictService.GetConflict(conflictID)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, conflict)
}

// ResolveConflict handles POST /conflicts/{id}/resolve. The decision is
// executed by the tokenization coordinator: it enriches the chosen item,
// pins the LID and closes the conflict.
func (h *ConflictHandler) ResolveConflict(w http.ResponseWriter, r *http.Request) {

	var req model.ResolveConflictRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		utils.HandleError(w, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.BAD_REQUEST.Code,
			Message:     errors2.BAD_REQUEST.Message,
			Description: utils.HandleDecodeError(err, "conflict resolution"),
		}, http.StatusBadRequest))
		return
	}
	if req.DFID == "" {
		utils.HandleError(w, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.BAD_REQUEST.Code,
			Message:     errors2.BAD_REQUEST.Message,
			Description: "dfid is required to resolve a conflict",
		}, http.StatusBadRequest))
		return
	}

	conflictID := conflictIDFromPath(r.URL.Path)
	actor, _ := r.Context().Value(constants.SubjectContextKey).(string)
	tokenizationService := tokenization.NewTokenizationProvider().GetTokenizationService()
	conflict, err := tokenizationService.ResolveConflict(conflictID, actor, req.DFID)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, conflict)
}

func conflictIDFromPath(path string) string {

	rest := strings.TrimPrefix(path, "/"+constants.ConflictsApiPath+"/")
	if idx := strings.Index(rest, "/"); idx >= 0 {
		return rest[:idx]
	}
	return rest
}
