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

	"github.com/wso2/entity-tokenization-service/internal/dedup/handler"
)

// ConflictService handles routing for deduplication conflicts.
type ConflictService struct {
	handler *handler.ConflictHandler
}

// NewConflictService creates a new ConflictService instance.
func NewConflictService() *ConflictService {
	return &ConflictService{
		handler: handler.NewConflictHandler(),
	}
}

// Route dispatches conflict requests under /conflicts.
func (s *ConflictService) Route(w http.ResponseWriter, r *http.Request) {

	path := strings.TrimSuffix(r.URL.Path, "/")
	method := r.Method

	switch {
	case method == http.MethodGet && path == "/conflicts":
		s.handler.ListConflicts(w, r)

	case method == http.MethodPost && strings.HasSuffix(path, "/resolve"):
		s.handler.ResolveConflict(w, r)

	case method == http.MethodGet && strings.HasPrefix(path, "/conflicts/"):
		s.handler.GetConflict(w, r)

	default:
		http.NotFound(w, r)
	}
}
