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

package services

import (
	"net/http"
	"strings"

	"github.com/wso2/entity-tokenization-service/internal/merkle/handler"
)

// MerkleService handles routing for audit roots and inclusion proofs.
type MerkleService struct {
	handler *handler.MerkleHandler
}

// NewMerkleService creates a new MerkleService instance.
func NewMerkleService() *MerkleService {
	return &MerkleService{
		handler: handler.NewMerkleHandler(),
	}
}

// Route dispatches merkle requests under /merkle.
func (s *MerkleService) Route(w http.ResponseWriter, r *http.Request) {

	path := strings.TrimSuffix(r.URL.Path, "/")
	method := r.Method

	switch {
	case method == http.MethodPost && path == "/merkle/verify-proof":
		s.handler.VerifyProof(w, r)

	case method == http.MethodGet && strings.HasPrefix(path, "/merkle/items/") &&
		strings.HasSuffix(path, "/merkle-root"):
		s.handler.GetItemRoot(w, r)

	case method == http.MethodGet && strings.HasPrefix(path, "/merkle/items/") &&
		strings.Contains(path, "/merkle-proof/"):
		s.handler.GetItemProof(w, r)

	case method == http.MethodGet && strings.HasPrefix(path, "/merkle/circuits/") &&
		strings.HasSuffix(path, "/merkle-root"):
		s.handler.GetCircuitRoot(w, r)

	case method == http.MethodGet && strings.HasPrefix(path, "/merkle/circuits/") &&
		strings.Contains(path, "/merkle-proof/"):
		s.handler.GetCircuitProof(w, r)

	default:
		http.NotFound(w, r)
	}
}
