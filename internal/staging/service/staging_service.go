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
	"reflect"
	"time"

	"github.com/google/uuid"

	"github.com/wso2/entity-tokenization-service/internal/identifier"
	"github.com/wso2/entity-tokenization-service/internal/staging/model"
	"github.com/wso2/entity-tokenization-service/internal/staging/store"
	"github.com/wso2/entity-tokenization-service/internal/system/constants"
	errors2 "github.com/wso2/entity-tokenization-service/internal/system/errors"
	"github.com/wso2/entity-tokenization-service/internal/system/log"
)

// StagingServiceInterface defines workspace-scoped operations over staged records.
type StagingServiceInterface interface {
	CreateLocalRecord(workspaceID, creator string, req model.CreateLocalRecordRequest) (*model.LocalRecord, error)
	GetLocalRecord(workspaceID, lid string) (*model.LocalRecord, error)
	MergeLocal(workspaceID, sourceLID, targetLID string) (*model.LocalRecord, error)
	Unmerge(workspaceID, sourceLID string) (*model.LocalRecord, error)
}

// StagingService is the default implementation of StagingServiceInterface.
type StagingService struct{}

func NewStagingService() StagingServiceInterface {
	return &StagingService{}
}

// CreateLocalRecord stages a new record. At least one identifier is mandatory.
func (s *StagingService) CreateLocalRecord(workspaceID, creator string,
	req model.CreateLocalRecordRequest) (*model.LocalRecord, error) {

	if len(req.Identifiers) == 0 {
		return nil, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.IDENTIFIERS_REQUIRED.Code,
			Message:     errors2.IDENTIFIERS_REQUIRED.Message,
			Description: "A local record must carry at least one identifier.",
		}, http.StatusBadRequest)
	}
	for _, id := range req.Identifiers {
		if id.Key == "" || id.Value == "" {
			return nil, errors2.NewClientError(errors2.ErrorMessage{
				Code:        errors2.BAD_REQUEST.Code,
				Message:     errors2.BAD_REQUEST.Message,
				Description: "Identifier key and value must be non-empty.",
			}, http.StatusBadRequest)
		}
	}

	now := time.Now().UTC()
	record := model.LocalRecord{
		LID:         uuid.New().String(),
		WorkspaceID: workspaceID,
		Identifiers: req.Identifiers,
		Data:        req.Data,
		Status:      constants.LocalRecordStatusLocalOnly,
		CreatedBy:   creator,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if record.Data == nil {
		record.Data = map[string]interface{}{}
	}

	if err := store.InsertLocalRecord(record); err != nil {
		return nil, err
	}

	logger := log.GetLogger()
	logger.Audit(log.AuditEvent{
		ActionID:      log.ActionCreateLocalRecord,
		InitiatorType: log.InitiatorTypeUser,
		InitiatorID:   creator,
		TargetType:    log.TargetTypeLocalRecord,
		TargetID:      record.LID,
	})
	return &record, nil
}

// GetLocalRecord fetches a staged record, enforcing workspace ownership.
func (s *StagingService) GetLocalRecord(workspaceID, lid string) (*model.LocalRecord, error) {

	record, err := store.GetLocalRecord(lid)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, recordNotFound(lid)
	}
	if record.WorkspaceID != workspaceID {
		return nil, workspaceMismatch(lid)
	}
	return record, nil
}

// MergeLocal consolidates the source record into the target before
// tokenization. The target receives the union of identifiers and the source's
// data for keys it does not already carry; the source is retired.
func (s *StagingService) MergeLocal(workspaceID, sourceLID, targetLID string) (*model.LocalRecord, error) {

	source, err := s.GetLocalRecord(workspaceID, sourceLID)
	if err != nil {
		return nil, err
	}
	target, err := s.GetLocalRecord(workspaceID, targetLID)
	if err != nil {
		return nil, err
	}

	if source.Status != constants.LocalRecordStatusLocalOnly || target.Status != constants.LocalRecordStatusLocalOnly {
		return nil, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.RECORD_ALREADY_TOKENIZED.Code,
			Message:     errors2.RECORD_ALREADY_TOKENIZED.Message,
			Description: "Both records must be in LOCAL_ONLY state to merge locally.",
		}, http.StatusConflict)
	}

	target.Identifiers = identifier.Union(target.Identifiers, source.Identifiers)
	target.Data = mergeDataPreferTarget(target.Data, source.Data)
	target.MergedLids = append(target.MergedLids, source.LID)
	target.UpdatedAt = time.Now().UTC()

	source.Status = constants.LocalRecordStatusRetired
	source.MergedInto = target.LID
	source.UpdatedAt = target.UpdatedAt

	if err := store.UpdateLocalRecord(*target); err != nil {
		return nil, err
	}
	if err := store.UpdateLocalRecord(*source); err != nil {
		return nil, err
	}

	log.GetLogger().Audit(log.AuditEvent{
		ActionID:      log.ActionMergeLocalRecords,
		InitiatorType: log.InitiatorTypeUser,
		TargetType:    log.TargetTypeLocalRecord,
		TargetID:      target.LID,
		Data:          map[string]interface{}{"source_lid": source.LID},
	})
	return target, nil
}

// Unmerge reverses a local merge: the source is restored to LOCAL_ONLY and
// the tuples and data values it contributed are withdrawn from the target.
func (s *StagingService) Unmerge(workspaceID, sourceLID string) (*model.LocalRecord, error) {

	source, err := s.GetLocalRecord(workspaceID, sourceLID)
	if err != nil {
		return nil, err
	}
	if source.Status != constants.LocalRecordStatusRetired || source.MergedInto == "" {
		return nil, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.BAD_REQUEST.Code,
			Message:     errors2.BAD_REQUEST.Message,
			Description: fmt.Sprintf("Local record %s was not merged into another record.", sourceLID),
		}, http.StatusBadRequest)
	}

	target, err := s.GetLocalRecord(workspaceID, source.MergedInto)
	if err != nil {
		return nil, err
	}
	if target.Status != constants.LocalRecordStatusLocalOnly {
		return nil, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.RECORD_ALREADY_TOKENIZED.Code,
			Message:     errors2.RECORD_ALREADY_TOKENIZED.Message,
			Description: "The merged record has already been tokenized and can no longer be unmerged.",
		}, http.StatusConflict)
	}

	target.Identifiers = withdrawIdentifiers(target.Identifiers, source.Identifiers)
	target.Data = withdrawData(target.Data, source.Data)
	target.MergedLids = removeString(target.MergedLids, source.LID)
	target.UpdatedAt = time.Now().UTC()

	source.Status = constants.LocalRecordStatusLocalOnly
	source.MergedInto = ""
	source.UpdatedAt = target.UpdatedAt

	if err := store.UpdateLocalRecord(*target); err != nil {
		return nil, err
	}
	if err := store.UpdateLocalRecord(*source); err != nil {
		return nil, err
	}

	log.GetLogger().Audit(log.AuditEvent{
		ActionID:      log.ActionUnmergeLocal,
		InitiatorType: log.InitiatorTypeUser,
		TargetType:    log.TargetTypeLocalRecord,
		TargetID:      source.LID,
		Data:          map[string]interface{}{"target_lid": target.LID},
	})
	return source, nil
}

// mergeDataPreferTarget fills gaps in the target's data with the source's
// values without overwriting keys the target already carries.
func mergeDataPreferTarget(target, source map[string]interface{}) map[string]interface{} {

	merged := make(map[string]interface{}, len(target)+len(source))
	for k, v := range target {
		merged[k] = v
	}
	for k, v := range source {
		if _, exists := merged[k]; !exists {
			merged[k] = v
		}
	}
	return merged
}

// withdrawIdentifiers removes tuples contributed by the source from the target.
func withdrawIdentifiers(target, source []identifier.Identifier) []identifier.Identifier {

	kept := make([]identifier.Identifier, 0, len(target))
	for _, id := range target {
		contributed := false
		for _, src := range source {
			if id.Equal(src) {
				contributed = true
				break
			}
		}
		if !contributed {
			kept = append(kept, id)
		}
	}
	return kept
}

// withdrawData removes keys whose value matches what the source contributed.
// Values are compared structurally; a string "1" is not the number 1.
func withdrawData(target, source map[string]interface{}) map[string]interface{} {

	kept := make(map[string]interface{}, len(target))
	for k, v := range target {
		if srcVal, ok := source[k]; ok && reflect.DeepEqual(srcVal, v) {
			continue
		}
		kept[k] = v
	}
	return kept
}

func removeString(list []string, value string) []string {

	kept := list[:0]
	for _, v := range list {
		if v != value {
			kept = append(kept, v)
		}
	}
	return kept
}

func recordNotFound(lid string) error {
	return errors2.NewClientError(errors2.ErrorMessage{
		Code:        errors2.LOCAL_RECORD_NOT_FOUND.Code,
		Message:     errors2.LOCAL_RECORD_NOT_FOUND.Message,
		Description: fmt.Sprintf("No local record found for LID: %s", lid),
	}, http.StatusNotFound)
}

func workspaceMismatch(lid string) error {
	return errors2.NewClientError(errors2.ErrorMessage{
		Code:        errors2.WORKSPACE_MISMATCH.Code,
		Message:     errors2.WORKSPACE_MISMATCH.Message,
		Description: fmt.Sprintf("Local record %s belongs to a different workspace.", lid),
	}, http.StatusForbidden)
}
