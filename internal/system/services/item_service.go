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

	eventhandler "github.com/wso2/entity-tokenization-service/internal/events/handler"
	itemhandler "github.com/wso2/entity-tokenization-service/internal/item/handler"
	tokenizationhandler "github.com/wso2/entity-tokenization-service/internal/tokenization/handler"
)

// ItemService handles routing for deduplicated items, their events and
// storage history, and the LID mapping query.
type ItemService struct {
	itemHandler         *itemhandler.ItemHandler
	eventHandler        *eventhandler.EventHandler
	tokenizationHandler *tokenizationhandler.TokenizationHandler
}

// NewItemService creates a new ItemService instance.
func NewItemService() *ItemService {
	return &ItemService{
		itemHandler:         itemhandler.NewItemHandler(),
		eventHandler:        eventhandler.NewEventHandler(),
		tokenizationHandler: tokenizationhandler.NewTokenizationHandler(),
	}
}

// Route dispatches item requests under /items, excluding /items/local.
func (s *ItemService) Route(w http.ResponseWriter, r *http.Request) {

	path := strings.TrimSuffix(r.URL.Path, "/")
	method := r.Method

	switch {
	case method == http.MethodGet && strings.HasPrefix(path, "/items/mapping/"):
		s.tokenizationHandler.GetMapping(w, r)

	case method == http.MethodPost && strings.HasSuffix(path, "/events"):
		s.eventHandler.AppendEvent(w, r)

	case method == http.MethodGet && strings.HasSuffix(path, "/events"):
		s.eventHandler.GetEvents(w, r)

	case method == http.MethodGet && strings.HasSuffix(path, "/storage-records"):
		s.itemHandler.GetStorageHistory(w, r)

	case method == http.MethodGet && strings.HasPrefix(path, "/items/"):
		s.itemHandler.GetItem(w, r)

	default:
		http.NotFound(w, r)
	}
}
