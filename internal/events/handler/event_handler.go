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
	"encoding/json"
	"net/http"
	"strings"

	"github.com/wso2/entity-tokenization-service/internal/events/model"
	"github.com/wso2/entity-tokenization-service/internal/events/provider"
	"github.com/wso2/entity-tokenization-service/internal/system/constants"
	errors2 "github.com/wso2/entity-tokenization-service/internal/system/errors"
	"github.com/wso2/entity-tokenization-service/internal/system/utils"
)

// EventHandler handles HTTP requests for item event history.
type EventHandler struct{}

func NewEventHandler() *EventHandler {
	return &EventHandler{}
}

// AppendEvent handles POST /items/{dfid}/events.
func (h *EventHandler) AppendEvent(w http.ResponseWriter, r *http.Request) {

	var req model.AppendEventRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		utils.HandleError(w, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.BAD_REQUEST.Code,
			Message:     errors2.BAD_REQUEST.Message,
			Description: utils.HandleDecodeError(err, "event"),
		}, http.StatusBadRequest))
		return
	}

	dfid := dfidFromEventPath(r.URL.Path)
	actor, _ := r.Context().Value(constants.SubjectContextKey).(string)
	eventService := provider.NewEventProvider().GetEventService()
	event, err := eventService.AppendEvent(dfid, actor, req)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusAccepted, event)
}

// GetEvents handles GET /items/{dfid}/events.
func (h *EventHandler) GetEvents(w http.ResponseWriter, r *http.Request) {

	dfid := dfidFromEventPath(r.URL.Path)
	eventService := provider.NewEventProvider().GetEventService()
	events, err := eventService.GetEvents(dfid)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	if events == nil {
		events = []model.Event{}
	}
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"dfid":   dfid,
		"events": events,
	})
}

func dfidFromEventPath(path string) string {

	rest := strings.TrimPrefix(path, "/"+constants.ItemsApiPath+"/")
	if idx := strings.Index(rest, "/"); idx >= 0 {
		return rest[:idx]
	}
	return rest
}
