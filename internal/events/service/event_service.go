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
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/wso2/entity-tokenization-service/internal/events/model"
	"github.com/wso2/entity-tokenization-service/internal/events/store"
	itemstore "github.com/wso2/entity-tokenization-service/internal/item/store"
	errors2 "github.com/wso2/entity-tokenization-service/internal/system/errors"
	"github.com/wso2/entity-tokenization-service/internal/system/log"
	"github.com/wso2/entity-tokenization-service/internal/system/workers"
)

// EventServiceInterface manages the append-only event history of items.
type EventServiceInterface interface {
	AppendEvent(dfid, actor string, request model.AppendEventRequest) (*model.Event, error)
	GetEvents(dfid string) ([]model.Event, error)
	GetEvent(eventID string) (*model.Event, error)
}

// EventService is the default implementation of EventServiceInterface.
type EventService struct{}

func NewEventService() *EventService {

	return &EventService{}
}

// AppendEvent records an external event against an item. The write goes
// through the background queue; the returned event carries the id the
// caller can later prove inclusion with.
func (s *EventService) AppendEvent(dfid, actor string, request model.AppendEventRequest) (*model.Event, error) {

	if request.EventType == "" {
		return nil, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.BAD_REQUEST.Code,
			Message:     errors2.BAD_REQUEST.Message,
			Description: "event_type is required",
		}, http.StatusBadRequest)
	}

	item, err := itemstore.GetItem(dfid)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.ITEM_NOT_FOUND.Code,
			Message:     errors2.ITEM_NOT_FOUND.Message,
			Description: "No item exists for dfid: " + dfid,
		}, http.StatusNotFound)
	}

	source := request.Source
	if source == "" {
		source = actor
	}
	event := model.Event{
		EventID:   uuid.New().String(),
		DFID:      dfid,
		EventType: request.EventType,
		Source:    source,
		Timestamp: time.Now().UTC(),
		Metadata:  request.Metadata,
	}
	workers.EnqueueEvent(event)

	log.GetLogger().Audit(log.AuditEvent{
		InitiatorID:   actor,
		InitiatorType: log.InitiatorTypeUser,
		TargetID:      event.EventID,
		TargetType:    log.TargetTypeEvent,
		ActionID:      log.ActionAppendEvent,
		Data:          map[string]string{"dfid": dfid, "event_type": event.EventType},
	})
	return &event, nil
}

// GetEvents returns an item's event history in proof order.
func (s *EventService) GetEvents(dfid string) ([]model.Event, error) {

	return store.GetEventsByDfid(dfid)
}

// GetEvent fetches a single event.
func (s *EventService) GetEvent(eventID string) (*model.Event, error) {

	event, err := store.GetEvent(eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.EVENT_NOT_FOUND.Code,
			Message:     errors2.EVENT_NOT_FOUND.Message,
			Description: "No event exists for id: " + eventID,
		}, http.StatusNotFound)
	}
	return event, nil
}
