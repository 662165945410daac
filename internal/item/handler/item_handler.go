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

package handler

import (
	"net/http"
	"strings"

	"github.com/wso2/entity-tokenization-service/internal/item/provider"
	"github.com/wso2/entity-tokenization-service/internal/system/constants"
	"github.com/wso2/entity-tokenization-service/internal/system/utils"
)

// ItemHandler handles HTTP requests for items and their storage history.
type ItemHandler struct{}

func NewItemHandler() *ItemHandler {
	return &ItemHandler{}
}

// GetItem handles GET /items/{dfid}.
func (h *ItemHandler) GetItem(w http.ResponseWriter, r *http.Request) {

	dfid := dfidFromPath(r.URL.Path)
	itemService := provider.NewItemProvider().GetItemService()
	item, err := itemService.GetItem(dfid)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, item)
}

// GetStorageHistory handles GET /items/{dfid}/storage-records.
func (h *ItemHandler) GetStorageHistory(w http.ResponseWriter, r *http.Request) {

	dfid := dfidFromPath(r.URL.Path)
	itemService := provider.NewItemProvider().GetItemService()

	// ?adapter_type= narrows the answer to the single active record.
	if adapterType := r.URL.Query().Get("adapter_type"); adapterType != "" {
		record, err := itemService.GetActiveStorageRecord(dfid, adapterType)
		if err != nil {
			utils.HandleError(w, err)
			return
		}
		utils.RespondJSON(w, http.StatusOK, record)
		return
	}

	records, err := itemService.GetStorageHistory(dfid)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"dfid":    dfid,
		"records": records,
	})
}

func dfidFromPath(path string) string {

	rest := strings.TrimPrefix(path, "/"+constants.ItemsApiPath+"/")
	if idx := strings.Index(rest, "/"); idx >= 0 {
		return rest[:idx]
	}
	return rest
}
