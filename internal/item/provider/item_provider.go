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
	"github.com/wso2/entity-tokenization-service/internal/item/service"
)

// ItemProviderInterface provides access to the item service.
type ItemProviderInterface interface {
	GetItemService() service.ItemServiceInterface
}

// ItemProvider is the default implementation of ItemProviderInterface.
type ItemProvider struct{}

// NewItemProvider creates a new instance of ItemProvider.
func NewItemProvider() ItemProviderInterface {

	return &ItemProvider{}
}

// GetItemService returns the item service implementation.
func (p *ItemProvider) GetItemService() service.ItemServiceInterface {

	return service.NewItemService()
}
