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
	"github.com/wso2/entity-tokenization-service/internal/merkle/service"
)

// MerkleProviderInterface provides access to the merkle service.
type MerkleProviderInterface interface {
	GetMerkleService() service.MerkleServiceInterface
}

// MerkleProvider is the default implementation of MerkleProviderInterface.
type MerkleProvider struct{}

// NewMerkleProvider creates a new instance of MerkleProvider.
func NewMerkleProvider() MerkleProviderInterface {

	return &MerkleProvider{}
}

// GetMerkleService returns the merkle service implementation.
func (p *MerkleProvider) GetMerkleService() service.MerkleServiceInterface {

	return service.NewMerkleService()
}
