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

	circuithandler "github.com/wso2/entity-tokenization-service/internal/circuit/handler"
	tokenizationhandler "github.com/wso2/entity-tokenization-service/internal/tokenization/handler"
)

// CircuitService handles routing for circuits, their adapter configuration
// and pushes into them.
type CircuitService struct {
	circuitHandler      *circuithandler.CircuitHandler
	tokenizationHandler *tokenizationhandler.TokenizationHandler
}

// NewCircuitService creates a new CircuitService instance.
func NewCircuitService() *CircuitService {
	return &CircuitService{
		circuitHandler:      circuithandler.NewCircuitHandler(),
		tokenizationHandler: tokenizationhandler.NewTokenizationHandler(),
	}
}

// Route dispatches circuit requests under /circuits.
func (s *CircuitService) Route(w http.ResponseWriter, r *http.Request) {

	path := strings.TrimSuffix(r.URL.Path, "/")
	method := r.Method

	switch {
	case method == http.MethodPost && path == "/circuits":
		s.circuitHandler.AddCircuit(w, r)

	case method == http.MethodPost && strings.HasSuffix(path, "/push"):
		s.tokenizationHandler.Push(w, r)

	case method == http.MethodGet && strings.HasSuffix(path, "/adapter"):
		s.circuitHandler.GetAdapterConfig(w, r)

	case method == http.MethodPut && strings.HasSuffix(path, "/adapter"):
		s.circuitHandler.UpdateAdapterConfig(w, r)

	case method == http.MethodGet && strings.HasSuffix(path, "/items"):
		s.circuitHandler.ListCircuitItems(w, r)

	case method == http.MethodGet && strings.HasPrefix(path, "/circuits/"):
		s.circuitHandler.GetCircuit(w, r)

	default:
		http.NotFound(w, r)
	}
}
