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
	"net/http"

	"github.com/wso2/entity-tokenization-service/internal/dedup/model"
	"github.com/wso2/entity-tokenization-service/internal/dedup/store"
	errors2 "github.com/wso2/entity-tokenization-service/internal/system/errors"
)

// ConflictServiceInterface exposes read access to persisted conflicts.
// Resolution is owned by the tokenization coordinator since it pins the
// LID and enriches the surviving item.
type ConflictServiceInterface interface {
	ListOpenConflicts() ([]model.Conflict, error)
	GetConflict(conflictID string) (*model.Conflict, error)
}

// ConflictService is the default implementation of ConflictServiceInterface.
type ConflictService struct{}

func NewConflictService() *ConflictService {

	return &ConflictService{}
}

// ListOpenConflicts returns all unresolved conflicts, oldest first.
func (s *ConflictService) ListOpenConflicts() ([]model.Conflict, error) {

	return store.GetOpenConflicts()
}

// GetConflict fetches a single conflict by id.
func (s *ConflictService) GetConflict(conflictID string) (*model.Conflict, error) {

	conflict, err := store.GetConflict(conflictID)
	if err != nil {
		return nil, err
	}
	if conflict == nil {
		return nil, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.CONFLICT_NOT_FOUND.Code,
			Message:     errors2.CONFLICT_NOT_FOUND.Message,
			Description: "No deduplication conflict exists for id: " + conflictID,
		}, http.StatusNotFound)
	}
	return conflict, nil
}
