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

package model

import (
	"time"

	"github.com/wso2/entity-tokenization-service/internal/identifier"
)

// LocalRecord is a staged, not-yet-tokenized record owned exclusively by the
// creating workspace. It never carries a DFID; the LID to DFID mapping is
// written by the tokenization coordinator.
type LocalRecord struct {
	LID         string                  `json:"lid" bson:"lid"`
	WorkspaceID string                  `json:"workspace_id" bson:"workspace_id"`
	Identifiers []identifier.Identifier `json:"identifiers" bson:"identifiers"`
	Data        map[string]interface{}  `json:"data" bson:"data"`
	Status      string                  `json:"status" bson:"status"`
	MergedInto  string                  `json:"merged_into,omitempty" bson:"merged_into,omitempty"`
	MergedLids  []string                `json:"merged_lids,omitempty" bson:"merged_lids,omitempty"`
	CreatedBy   string                  `json:"created_by" bson:"created_by"`
	CreatedAt   time.Time               `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time               `json:"updated_at" bson:"updated_at"`
}

// CreateLocalRecordRequest is the request body for creating a local record.
type CreateLocalRecordRequest struct {
	Identifiers []identifier.Identifier `json:"identifiers"`
	Data        map[string]interface{}  `json:"data"`
}

// MergeLocalRequest consolidates two staged records before tokenization.
type MergeLocalRequest struct {
	SourceLID string `json:"source_lid"`
	TargetLID string `json:"target_lid"`
}
