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

package provider

import (
	"github.com/wso2/entity-tokenization-service/internal/dedup/service"
)

// DedupProviderInterface provides access to the deduplication services.
type DedupProviderInterface interface {
	GetDedupService() service.DedupServiceInterface
	GetConflictService() service.ConflictServiceInterface
}

// DedupProvider is the default implementation of DedupProviderInterface.
type DedupProvider struct{}

// NewDedupProvider creates a new instance of DedupProvider.
func NewDedupProvider() DedupProviderInterface {

	return &DedupProvider{}
}

// GetDedupService returns the identity resolver implementation.
func (p *DedupProvider) GetDedupService() service.DedupServiceInterface {

	return service.NewDedupService()
}

// GetConflictService returns the conflict read service implementation.
func (p *DedupProvider) GetConflictService() service.ConflictServiceInterface {

	return service.NewConflictService()
}
