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
	"github.com/wso2/entity-tokenization-service/internal/tokenization/service"
)

// TokenizationProviderInterface provides access to the tokenization service.
type TokenizationProviderInterface interface {
	GetTokenizationService() service.TokenizationServiceInterface
}

// TokenizationProvider is the default implementation of TokenizationProviderInterface.
type TokenizationProvider struct{}

// NewTokenizationProvider creates a new instance of TokenizationProvider.
func NewTokenizationProvider() TokenizationProviderInterface {

	return &TokenizationProvider{}
}

// GetTokenizationService returns the tokenization service implementation.
func (p *TokenizationProvider) GetTokenizationService() service.TokenizationServiceInterface {

	return service.NewTokenizationService()
}
