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

import "github.com/wso2/entity-tokenization-service/internal/merkle/tree"

// RootResponse carries a computed Merkle root. LeafCount is the number of
// leaves the root covers.
type RootResponse struct {
	DFID      string `json:"dfid,omitempty"`
	CircuitID string `json:"circuit_id,omitempty"`
	Root      string `json:"root"`
	LeafCount int    `json:"leaf_count"`
}

// Proof is a verifiable inclusion proof: the leaf hash, the sibling steps
// bottom-up, and the root the steps recompute to.
type Proof struct {
	LeafHash string      `json:"leaf_hash"`
	Steps    []tree.Step `json:"steps"`
	Root     string      `json:"root"`
}

// VerifyProofRequest is the request body for offline proof verification.
type VerifyProofRequest struct {
	LeafHash string      `json:"leaf_hash"`
	Steps    []tree.Step `json:"steps"`
	Root     string      `json:"root"`
}

// VerifyProofResponse reports the verification outcome.
type VerifyProofResponse struct {
	Valid bool `json:"valid"`
}
