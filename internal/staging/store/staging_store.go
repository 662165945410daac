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
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	mongodriver "go.mongodb.org/mongo-driver/mongo"

	"github.com/wso2/entity-tokenization-service/internal/staging/model"
	"github.com/wso2/entity-tokenization-service/internal/system/constants"
	errors2 "github.com/wso2/entity-tokenization-service/internal/system/errors"
	"github.com/wso2/entity-tokenization-service/internal/system/log"
	"github.com/wso2/entity-tokenization-service/internal/system/mongo"
)

const storeTimeout = 5 * time.Second

func collection() (*mongodriver.Collection, error) {

	db, err := mongo.GetDatabase()
	if err != nil {
		return nil, err
	}
	return db.Collection(constants.StagingCollection), nil
}

// InsertLocalRecord persists a newly staged record.
func InsertLocalRecord(record model.LocalRecord) error {

	logger := log.GetLogger()
	coll, err := collection()
	if err != nil {
		return addRecordError(fmt.Sprintf("Failed to get staging collection for LID: %s", record.LID), err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	if _, err := coll.InsertOne(ctx, record); err != nil {
		return addRecordError(fmt.Sprintf("Error occurred while inserting local record: %s", record.LID), err)
	}

	logger.Info(fmt.Sprintf("Local record %s staged successfully", record.LID))
	return nil
}

// GetLocalRecord fetches a staged record by LID. Returns nil when absent.
func GetLocalRecord(lid string) (*model.LocalRecord, error) {

	coll, err := collection()
	if err != nil {
		return nil, getRecordError(fmt.Sprintf("Failed to get staging collection for LID: %s", lid), err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	var record model.LocalRecord
	err = coll.FindOne(ctx, bson.M{"lid": lid}).Decode(&record)
	if err == mongodriver.ErrNoDocuments {
		log.GetLogger().Debug(fmt.Sprintf("No local record found for LID: %s", lid))
		return nil, nil
	}
	if err != nil {
		return nil, getRecordError(fmt.Sprintf("Error occurred while fetching local record: %s", lid), err)
	}
	return &record, nil
}

// UpdateLocalRecord replaces the identifiers, data and status of a staged record.
func UpdateLocalRecord(record model.LocalRecord) error {

	coll, err := collection()
	if err != nil {
		return addRecordError(fmt.Sprintf("Failed to get staging collection for LID: %s", record.LID), err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"identifiers": record.Identifiers,
		"data":        record.Data,
		"status":      record.Status,
		"merged_into": record.MergedInto,
		"merged_lids": record.MergedLids,
		"updated_at":  record.UpdatedAt,
	}}
	if _, err := coll.UpdateOne(ctx, bson.M{"lid": record.LID}, update); err != nil {
		return addRecordError(fmt.Sprintf("Error occurred while updating local record: %s", record.LID), err)
	}
	return nil
}

// UpdateStatus transitions a staged record to the given status.
func UpdateStatus(lid, status string) error {

	coll, err := collection()
	if err != nil {
		return addRecordError(fmt.Sprintf("Failed to get staging collection for LID: %s", lid), err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{"status": status, "updated_at": time.Now().UTC()}}
	if _, err := coll.UpdateOne(ctx, bson.M{"lid": lid}, update); err != nil {
		return addRecordError(fmt.Sprintf("Error occurred while updating status of local record: %s", lid), err)
	}
	return nil
}

func addRecordError(description string, err error) error {

	log.GetLogger().Debug(description, log.Error(err))
	return errors2.NewServerError(errors2.ErrorMessage{
		Code:        errors2.ADD_LOCAL_RECORD.Code,
		Message:     errors2.ADD_LOCAL_RECORD.Message,
		Description: description,
	}, err)
}

func getRecordError(description string, err error) error {

	log.GetLogger().Debug(description, log.Error(err))
	return errors2.NewServerError(errors2.ErrorMessage{
		Code:        errors2.GET_LOCAL_RECORD.Code,
		Message:     errors2.GET_LOCAL_RECORD.Message,
		Description: description,
	}, err)
}
