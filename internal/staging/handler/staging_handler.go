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

	"github.com/wso2/entity-tokenization-service/internal/staging/model"
	"github.com/wso2/entity-tokenization-service/internal/staging/provider"
	"github.com/wso2/entity-tokenization-service/internal/system/constants"
	errors2 "github.com/wso2/entity-tokenization-service/internal/system/errors"
	"github.com/wso2/entity-tokenization-service/internal/system/utils"
)

// StagingHandler handles HTTP requests for local staged records.
type StagingHandler struct{}

func NewStagingHandler() *StagingHandler {
	return &StagingHandler{}
}

// AddLocalRecord handles POST /items/local.
func (h *StagingHandler) AddLocalRecord(w http.ResponseWriter, r *http.Request) {

	var req model.CreateLocalRecordRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		utils.HandleError(w, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.BAD_REQUEST.Code,
			Message:     errors2.BAD_REQUEST.Message,
			Description: utils.HandleDecodeError(err, "local record"),
		}, http.StatusBadRequest))
		return
	}

	workspaceID := utils.ExtractWorkspaceFromPath(r)
	creator, _ := r.Context().Value(constants.SubjectContextKey).(string)

	stagingService := provider.NewStagingProvider().GetStagingService()
	record, err := stagingService.CreateLocalRecord(workspaceID, creator, req)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusCreated, record)
}

// GetLocalRecord handles GET /items/local/{lid}.
func (h *StagingHandler) GetLocalRecord(w http.ResponseWriter, r *http.Request) {

	lid := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/items/local/"), "/")
	workspaceID := utils.ExtractWorkspaceFromPath(r)

	stagingService := provider.NewStagingProvider().GetStagingService()
	record, err := stagingService.GetLocalRecord(workspaceID, lid)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, record)
}

// MergeLocal handles POST /items/local/merge.
func (h *StagingHandler) MergeLocal(w http.ResponseWriter, r *http.Request) {

	var req model.MergeLocalRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		utils.HandleError(w, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.BAD_REQUEST.Code,
			Message:     errors2.BAD_REQUEST.Message,
			Description: utils.HandleDecodeError(err, "local merge"),
		}, http.StatusBadRequest))
		return
	}
	if req.SourceLID == "" || req.TargetLID == "" || req.SourceLID == req.TargetLID {
		utils.HandleError(w, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.BAD_REQUEST.Code,
			Message:     errors2.BAD_REQUEST.Message,
			Description: "source_lid and target_lid must be distinct, non-empty LIDs.",
		}, http.StatusBadRequest))
		return
	}

	workspaceID := utils.ExtractWorkspaceFromPath(r)
	stagingService := provider.NewStagingProvider().GetStagingService()
	record, err := stagingService.MergeLocal(workspaceID, req.SourceLID, req.TargetLID)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, record)
}

// UnmergeLocal handles POST /items/local/{lid}/unmerge.
func (h *StagingHandler) UnmergeLocal(w http.ResponseWriter, r *http.Request) {

	path := strings.TrimPrefix(r.URL.Path, "/items/local/")
	lid := strings.TrimSuffix(path, "/unmerge")
	workspaceID := utils.ExtractWorkspaceFromPath(r)

	stagingService := provider.NewStagingProvider().GetStagingService()
	record, err := stagingService.Unmerge(workspaceID, lid)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, record)
}
