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

import "time"

// Resolution outcome kinds.
const (
	ResolutionNewIdentity      = "NEW_IDENTITY"
	ResolutionExistingIdentity = "EXISTING_IDENTITY"
	ResolutionAmbiguousMatch   = "AMBIGUOUS_MATCH"
)

// Match sources, recorded for metrics and audit.
const (
	MatchSourceCanonical   = "canonical"
	MatchSourceFingerprint = "fingerprint"
	MatchSourceNone        = "none"
)

// Resolution is the tagged result of deduplication: exactly one of the
// variants applies. Candidates is populated only for AMBIGUOUS_MATCH.
type Resolution struct {
	Kind       string   `json:"kind"`
	DFID       string   `json:"dfid,omitempty"`
	Source     string   `json:"source"`
	Candidates []string `json:"candidates,omitempty"`
}

// Conflict is a persisted ambiguous match awaiting manual resolution.
// Shared canonical evidence linked previously separate identities; merging
// them silently could fuse two unrelated histories.
type Conflict struct {
	ConflictID   string    `json:"conflict_id"`
	CircuitID    string    `json:"circuit_id"`
	LID          string    `json:"lid"`
	WorkspaceID  string    `json:"workspace_id"`
	Candidates   []string  `json:"candidates"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	ResolvedAt   time.Time `json:"resolved_at,omitempty"`
	ResolvedBy   string    `json:"resolved_by,omitempty"`
	ResolvedDFID string    `json:"resolved_dfid,omitempty"`
}

// ResolveConflictRequest selects the surviving DFID for an open conflict.
type ResolveConflictRequest struct {
	DFID string `json:"dfid"`
}
