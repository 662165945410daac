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

package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/wso2/entity-tokenization-service/internal/events/model"
	"github.com/wso2/entity-tokenization-service/internal/system/database/provider"
	"github.com/wso2/entity-tokenization-service/internal/system/database/scripts"
	errors2 "github.com/wso2/entity-tokenization-service/internal/system/errors"
	"github.com/wso2/entity-tokenization-service/internal/system/log"
)

// InsertEvent appends an event to an item's history.
func InsertEvent(event model.Event) error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		return dbClientError(fmt.Sprintf("adding event for item: %s", event.DFID), err)
	}
	defer dbClient.Close()

	metadata, err := json.Marshal(event.Metadata)
	if err != nil {
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.MARSHAL_JSON.Code,
			Message:     errors2.MARSHAL_JSON.Message,
			Description: fmt.Sprintf("Failed to marshal event metadata for item: %s", event.DFID),
		}, err)
	}

	query := scripts.InsertEvent[provider.NewDBProvider().GetDBType()]
	_, err = dbClient.ExecuteQuery(query, event.EventID, event.DFID, event.EventType, event.Source,
		event.Timestamp, string(metadata))
	if err != nil {
		errorMsg := fmt.Sprintf("Error occurred while adding event for item: %s", event.DFID)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.ADD_EVENT.Code,
			Message:     errors2.ADD_EVENT.Message,
			Description: errorMsg,
		}, err)
	}
	return nil
}

// GetEventsByDfid returns an item's events in timestamp order, ties broken
// by event id. The audit proof layer depends on this ordering.
func GetEventsByDfid(dfid string) ([]model.Event, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		return nil, dbClientError(fmt.Sprintf("fetching events for item: %s", dfid), err)
	}
	defer dbClient.Close()

	query := scripts.GetEventsByDfid[provider.NewDBProvider().GetDBType()]
	results, err := dbClient.ExecuteQuery(query, dfid)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed in fetching events for item: %s", dfid)
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.GET_EVENTS.Code,
			Message:     errors2.GET_EVENTS.Message,
			Description: errorMsg,
		}, err)
	}

	events := make([]model.Event, 0, len(results))
	for _, row := range results {
		events = append(events, rowToEvent(row))
	}
	return events, nil
}

// GetEvent fetches a single event by id. Returns nil when absent.
func GetEvent(eventID string) (*model.Event, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		return nil, dbClientError(fmt.Sprintf("fetching event: %s", eventID), err)
	}
	defer dbClient.Close()

	query := scripts.GetEventByID[provider.NewDBProvider().GetDBType()]
	results, err := dbClient.ExecuteQuery(query, eventID)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed in fetching event: %s", eventID)
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.GET_EVENTS.Code,
			Message:     errors2.GET_EVENTS.Message,
			Description: errorMsg,
		}, err)
	}
	if len(results) == 0 {
		return nil, nil
	}

	event := rowToEvent(results[0])
	return &event, nil
}

func rowToEvent(row map[string]interface{}) model.Event {

	event := model.Event{
		EventID:   row["event_id"].(string),
		DFID:      row["dfid"].(string),
		EventType: row["event_type"].(string),
	}
	if v, ok := row["source"].(string); ok {
		event.Source = v
	}
	if v, ok := row["event_timestamp"].(time.Time); ok {
		event.Timestamp = v
	}
	if v, ok := row["metadata"].(string); ok && v != "" && v != "null" {
		_ = json.Unmarshal([]byte(v), &event.Metadata)
	}
	return event
}

func dbClientError(context string, err error) error {

	errorMsg := fmt.Sprintf("Failed to get database client for %s", context)
	log.GetLogger().Debug(errorMsg, log.Error(err))
	return errors2.NewServerError(errors2.ErrorMessage{
		Code:        errors2.DB_CLIENT_INIT.Code,
		Message:     errors2.DB_CLIENT_INIT.Message,
		Description: errorMsg,
	}, err)
}
