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

// PushRequest tokenizes a staged local record into a circuit. Identifiers
// and data supplied here are unioned with the local record's own.
type PushRequest struct {
	LID         string                  `json:"lid"`
	Identifiers []identifier.Identifier `json:"identifiers,omitempty"`
	Data        map[string]interface{}  `json:"data,omitempty"`
}

// PushResponse is the result of a push attempt.
type PushResponse struct {
	DFID        string `json:"dfid"`
	Status      string `json:"status"`
	OperationID string `json:"operation_id"`
	LID         string `json:"lid"`
}

// PushOperation tracks one push attempt through the approval gate. It
// transitions exactly once out of PENDING; pushes into circuits without
// an approval requirement are created directly COMPLETED.
type PushOperation struct {
	OperationID string    `json:"operation_id"`
	CircuitID   string    `json:"circuit_id"`
	DFID        string    `json:"dfid"`
	LID         string    `json:"lid"`
	RequesterID string    `json:"requester_id"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	DecidedAt   time.Time `json:"decided_at,omitempty"`
	DecidedBy   string    `json:"decided_by,omitempty"`
}

// MappingResponse answers the LID mapping query. DFID is empty while the
// record is still local-only.
type MappingResponse struct {
	LID    string `json:"lid"`
	DFID   string `json:"dfid,omitempty"`
	Status string `json:"status"`
}
