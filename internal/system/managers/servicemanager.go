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

package managers

import (
	"context"
	"net/http"
	"strings"

	"github.com/wso2/entity-tokenization-service/internal/system/authn"
	"github.com/wso2/entity-tokenization-service/internal/system/constants"
	tracecontext "github.com/wso2/entity-tokenization-service/internal/system/context"
	"github.com/wso2/entity-tokenization-service/internal/system/services"
	"github.com/wso2/entity-tokenization-service/internal/system/utils"
)

type ServiceManagerInterface interface {
	RegisterServices(apiBasePath string) error
}

type ServiceManager struct {
	mux *http.ServeMux
}

// NewServiceManager creates a new instance of ServiceManager.
func NewServiceManager(mux *http.ServeMux) ServiceManagerInterface {

	return &ServiceManager{
		mux: mux,
	}
}

func (sm *ServiceManager) RegisterServices(apiBasePath string) error {

	utils.RewriteToDefaultWorkspace(apiBasePath, sm.mux, "default")

	healthService := services.NewHealthService()
	sm.mux.HandleFunc("/health", healthService.Route)
	sm.mux.HandleFunc("/ready", healthService.Route)

	stagingService := services.NewStagingService()
	itemService := services.NewItemService()
	circuitService := services.NewCircuitService()
	operationService := services.NewOperationService()
	conflictService := services.NewConflictService()
	merkleService := services.NewMerkleService()

	// Single workspace dispatcher for all services.
	utils.MountWorkspaceDispatcher(sm.mux, apiBasePath, func(w http.ResponseWriter, r *http.Request) {

		claims, err := authn.ValidateAuthenticationAndReturnClaims(r)
		if err != nil {
			utils.HandleError(w, err)
			return
		}
		ctx := tracecontext.WithTraceID(r.Context())
		ctx = context.WithValue(ctx, constants.SubjectContextKey, authn.ExtractSubject(claims))
		r = r.WithContext(ctx)

		// Internal path after workspace and base path stripping.
		path := strings.TrimSuffix(r.URL.Path, "/")

		// Dispatch to the correct service based on path.
		switch {
		case strings.HasPrefix(path, "/items/local"):
			stagingService.Route(w, r)
		case strings.HasPrefix(path, "/items"):
			itemService.Route(w, r)
		case strings.HasPrefix(path, "/circuits"):
			circuitService.Route(w, r)
		case strings.HasPrefix(path, "/operations"):
			operationService.Route(w, r)
		case strings.HasPrefix(path, "/conflicts"):
			conflictService.Route(w, r)
		case strings.HasPrefix(path, "/merkle"):
			merkleService.Route(w, r)
		default:
			http.NotFound(w, r)
		}
	})
	return nil
}
