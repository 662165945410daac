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

// Item is the canonical, deduplicated entity. It is a cross-circuit
// singleton: exactly one Item exists per real-world entity, and its
// identifier set only grows on enrichment.
type Item struct {
	DFID        string                  `json:"dfid"`
	Identifiers []identifier.Identifier `json:"identifiers"`
	Data        map[string]interface{}  `json:"data"`
	Fingerprint string                  `json:"fingerprint,omitempty"`
	Aliases     []Alias                 `json:"aliases,omitempty"`
	Confidence  float64                 `json:"confidence"`
	Status      string                  `json:"status"`
	CreatedAt   time.Time               `json:"created_at"`
	UpdatedAt   time.Time               `json:"updated_at"`
}

// Alias is a third-party cross-reference. Purely additive; never
// authoritative for matching unless promoted to a canonical identifier.
type Alias struct {
	Scheme       string    `json:"scheme"`
	Value        string    `json:"value"`
	Issuer       string    `json:"issuer"`
	AssertedAt   time.Time `json:"asserted_at"`
	EvidenceHash string    `json:"evidence_hash,omitempty"`
}

// Mapping records the immutable LID to DFID binding written at first
// successful tokenization.
type Mapping struct {
	LID         string    `json:"lid"`
	DFID        string    `json:"dfid"`
	WorkspaceID string    `json:"workspace_id"`
	CreatedAt   time.Time `json:"created_at"`
}
