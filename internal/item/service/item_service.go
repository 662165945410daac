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

package service

import (
	"fmt"
	"net/http"

	"github.com/wso2/entity-tokenization-service/internal/adapter/history"
	adaptermodel "github.com/wso2/entity-tokenization-service/internal/adapter/model"
	"github.com/wso2/entity-tokenization-service/internal/item/model"
	"github.com/wso2/entity-tokenization-service/internal/item/store"
	"github.com/wso2/entity-tokenization-service/internal/system/constants"
	errors2 "github.com/wso2/entity-tokenization-service/internal/system/errors"
)

// ItemServiceInterface exposes read access to deduplicated items and
// their storage history.
type ItemServiceInterface interface {
	GetItem(dfid string) (*model.Item, error)
	GetStorageHistory(dfid string) ([]adaptermodel.StorageRecord, error)
	GetActiveStorageRecord(dfid, adapterType string) (*adaptermodel.StorageRecord, error)
}

// ItemService is the default implementation of ItemServiceInterface.
type ItemService struct{}

func NewItemService() *ItemService {

	return &ItemService{}
}

// GetItem fetches an item by DFID.
func (s *ItemService) GetItem(dfid string) (*model.Item, error) {

	item, err := store.GetItem(dfid)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, itemNotFound(dfid)
	}
	return item, nil
}

// GetStorageHistory returns the append-only adapter write history of an item.
func (s *ItemService) GetStorageHistory(dfid string) ([]adaptermodel.StorageRecord, error) {

	if _, err := s.GetItem(dfid); err != nil {
		return nil, err
	}
	return history.GetHistory(dfid)
}

// GetActiveStorageRecord returns the single active record for an item and
// adapter type.
func (s *ItemService) GetActiveStorageRecord(dfid, adapterType string) (*adaptermodel.StorageRecord, error) {

	if !constants.AllowedAdapterTypes[adapterType] {
		return nil, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.BAD_REQUEST.Code,
			Message:     errors2.BAD_REQUEST.Message,
			Description: fmt.Sprintf("Unknown adapter type: %s", adapterType),
		}, http.StatusBadRequest)
	}
	if _, err := s.GetItem(dfid); err != nil {
		return nil, err
	}

	record, err := history.GetActiveRecord(dfid, adapterType)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.STORAGE_RECORD_NOT_FOUND.Code,
			Message:     errors2.STORAGE_RECORD_NOT_FOUND.Message,
			Description: fmt.Sprintf("No %s storage record exists for item: %s", adapterType, dfid),
		}, http.StatusNotFound)
	}
	return record, nil
}

func itemNotFound(dfid string) error {

	return errors2.NewClientError(errors2.ErrorMessage{
		Code:        errors2.ITEM_NOT_FOUND.Code,
		Message:     errors2.ITEM_NOT_FOUND.Message,
		Description: "No item exists for dfid: " + dfid,
	}, http.StatusNotFound)
}
