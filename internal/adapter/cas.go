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
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/wso2/entity-tokenization-service/internal/adapter/model"
	"github.com/wso2/entity-tokenization-service/internal/system/constants"
	errors2 "github.com/wso2/entity-tokenization-service/internal/system/errors"
	"github.com/wso2/entity-tokenization-service/internal/system/log"
	"github.com/wso2/entity-tokenization-service/internal/system/objectstore"
)

const snapshotKeyPrefix = "snapshots/"

// CASAdapter stores snapshots in the object store keyed by their SHA-256
// hash. Identical payloads share the same object, so the write is skipped
// when the content already exists.
type CASAdapter struct{}

func NewCASAdapter() *CASAdapter {

	return &CASAdapter{}
}

func (a *CASAdapter) Type() string {

	return constants.AdapterTypeCAS
}

// Store uploads the snapshot under its content hash. The CID in the
// returned location is the hash itself.
func (a *CASAdapter) Store(ctx context.Context, snapshot model.ItemSnapshot) (model.AdapterLocation, string, error) {

	store, err := objectstore.GetStore()
	if err != nil {
		return model.AdapterLocation{}, "", adapterStoreError(snapshot.DFID, err)
	}

	sum := sha256.Sum256(snapshot.Payload)
	contentHash := hex.EncodeToString(sum[:])
	key := snapshotKeyPrefix + contentHash

	exists, err := store.Exists(ctx, key)
	if err != nil {
		return model.AdapterLocation{}, "", adapterStoreError(snapshot.DFID, err)
	}
	if !exists {
		if err := store.Put(ctx, key, snapshot.Payload, "application/json"); err != nil {
			return model.AdapterLocation{}, "", adapterStoreError(snapshot.DFID, err)
		}
	}

	return model.AdapterLocation{CID: contentHash}, contentHash, nil
}

// HealthCheck verifies object store connectivity.
func (a *CASAdapter) HealthCheck(ctx context.Context) error {

	store, err := objectstore.GetStore()
	if err != nil {
		return err
	}
	return store.Healthy(ctx)
}

func adapterStoreError(dfid string, err error) error {

	errorMsg := fmt.Sprintf("Content-addressed store write failed for item: %s", dfid)
	log.GetLogger().Debug(errorMsg, log.Error(err))
	return errors2.NewServerError(errors2.ErrorMessage{
		Code:        errors2.ADAPTER_STORE.Code,
		Message:     errors2.ADAPTER_STORE.Message,
		Description: errorMsg,
	}, err)
}
