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

package adapter

import (
	"context"
	"fmt"
	"net/http"

	"github.com/wso2/entity-tokenization-service/internal/adapter/model"
	"github.com/wso2/entity-tokenization-service/internal/system/constants"
	errors2 "github.com/wso2/entity-tokenization-service/internal/system/errors"
)

// StorageAdapter is the uniform contract over the storage backend families.
// Store persists the full snapshot and returns where it landed together
// with the content hash of the payload. Adapters are stateless; callers own
// timeouts through the context.
type StorageAdapter interface {
	Type() string
	Store(ctx context.Context, snapshot model.ItemSnapshot) (model.AdapterLocation, string, error)
	HealthCheck(ctx context.Context) error
}

// ForType returns the adapter implementation for the configured type.
func ForType(adapterType string) (StorageAdapter, error) {

	switch adapterType {
	case constants.AdapterTypeLocal:
		return NewLocalAdapter(), nil
	case constants.AdapterTypeCAS:
		return NewCASAdapter(), nil
	case constants.AdapterTypeLedger:
		return NewLedgerAdapter(), nil
	default:
		return nil, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.BAD_REQUEST.Code,
			Message:     errors2.BAD_REQUEST.Message,
			Description: fmt.Sprintf("Unknown adapter type: %s", adapterType),
		}, http.StatusBadRequest)
	}
}
