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
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/wso2/entity-tokenization-service/internal/adapter"
	"github.com/wso2/entity-tokenization-service/internal/adapter/history"
	adaptermodel "github.com/wso2/entity-tokenization-service/internal/adapter/model"
	circuitmodel "github.com/wso2/entity-tokenization-service/internal/circuit/model"
	"github.com/wso2/entity-tokenization-service/internal/circuit/policy"
	circuitprovider "github.com/wso2/entity-tokenization-service/internal/circuit/provider"
	circuitstore "github.com/wso2/entity-tokenization-service/internal/circuit/store"
	dedupmodel "github.com/wso2/entity-tokenization-service/internal/dedup/model"
	dedupservice "github.com/wso2/entity-tokenization-service/internal/dedup/service"
	dedupstore "github.com/wso2/entity-tokenization-service/internal/dedup/store"
	eventmodel "github.com/wso2/entity-tokenization-service/internal/events/model"
	eventstore "github.com/wso2/entity-tokenization-service/internal/events/store"
	"github.com/wso2/entity-tokenization-service/internal/identifier"
	itemmodel "github.com/wso2/entity-tokenization-service/internal/item/model"
	itemstore "github.com/wso2/entity-tokenization-service/internal/item/store"
	stagingmodel "github.com/wso2/entity-tokenization-service/internal/staging/model"
	stagingstore "github.com/wso2/entity-tokenization-service/internal/staging/store"
	"github.com/wso2/entity-tokenization-service/internal/system/constants"
	errors2 "github.com/wso2/entity-tokenization-service/internal/system/errors"
	"github.com/wso2/entity-tokenization-service/internal/system/lock"
	"github.com/wso2/entity-tokenization-service/internal/system/log"
	"github.com/wso2/entity-tokenization-service/internal/system/metrics"
	"github.com/wso2/entity-tokenization-service/internal/tokenization/dfid"
	"github.com/wso2/entity-tokenization-service/internal/tokenization/model"
	"github.com/wso2/entity-tokenization-service/internal/tokenization/store"
)

const (
	lockRetryBaseDelay  = 50 * time.Millisecond
	adapterStoreTimeout = 30 * time.Second
	adapterRetryDelay   = 500 * time.Millisecond
)

// TokenizationServiceInterface is the coordinator driving a push from a
// staged local record to a stored, optionally approval-gated item.
type TokenizationServiceInterface interface {
	Push(circuitID, workspaceID, requester string, request model.PushRequest) (*model.PushResponse, error)
	GetMappingStatus(workspaceID, lid string) (*model.MappingResponse, error)
	GetOperation(operationID string) (*model.PushOperation, error)
	ApproveOperation(operationID, actor string) (*model.PushOperation, error)
	RejectOperation(operationID, actor string) (*model.PushOperation, error)
	ResolveConflict(conflictID, actor, chosenDFID string) (*dedupmodel.Conflict, error)
}

// TokenizationService is the default implementation of TokenizationServiceInterface.
type TokenizationService struct{}

func NewTokenizationService() *TokenizationService {

	return &TokenizationService{}
}

// resolutionResult is what the locked section hands back to the unlocked
// adapter phase.
type resolutionResult struct {
	dfid   string
	status string
}

// Push runs the tokenization state machine. Identity resolution and item
// mutation happen under the identity lock; the adapter write runs outside
// any lock with its own timeout, and only after it succeeds are the
// storage record, operation and lifecycle events persisted.
func (s *TokenizationService) Push(circuitID, workspaceID, requester string,
	request model.PushRequest) (*model.PushResponse, error) {

	logger := log.GetLogger()

	if request.LID == "" {
		return nil, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.BAD_REQUEST.Code,
			Message:     errors2.BAD_REQUEST.Message,
			Description: "lid is required",
		}, http.StatusBadRequest)
	}

	record, err := loadLocalRecord(request.LID, workspaceID)
	if err != nil {
		return nil, err
	}
	if record.Status == constants.LocalRecordStatusRetired {
		return nil, errors2.NewClientErrorWithContext(errors2.ErrorMessage{
			Code:        errors2.BAD_REQUEST.Code,
			Message:     errors2.BAD_REQUEST.Message,
			Description: "Local record was merged away and cannot be pushed: " + request.LID,
		}, http.StatusConflict, map[string]interface{}{
			"merged_into": record.MergedInto,
		})
	}

	circuit, err := circuitprovider.NewCircuitProvider().GetCircuitService().GetCircuit(circuitID)
	if err != nil {
		return nil, err
	}

	identifiers := identifier.Union(record.Identifiers, request.Identifiers)
	data := mergeData(record.Data, request.Data)

	validated, err := policy.Validate(circuit.Config, identifiers)
	if err != nil {
		return nil, err
	}

	// Steps 4-6 run under the identity lock so two pushes carrying the same
	// canonical evidence cannot both mint a DFID.
	lockKey := identifier.LockKey(validated)
	identityLock := lock.NewDistributedLock()
	if err := acquireWithRetry(identityLock, lockKey); err != nil {
		return nil, err
	}

	result, err := s.resolveAndMutate(circuitID, workspaceID, circuit.Config, record, validated, data)
	if releaseErr := identityLock.Release(lockKey); releaseErr != nil {
		logger.Warn("Failed to release identity lock", log.String("lock_key", lockKey), log.Error(releaseErr))
	}
	if err != nil {
		return nil, err
	}

	// Step 7: the adapter write, outside any lock. On failure nothing
	// further is persisted; steps 1-6 are idempotent and the push can be
	// retried as a whole.
	storageRecord, err := s.storeSnapshot(circuit.Config.AdapterType, result.dfid, request.LID)
	if err != nil {
		metrics.PushesTotal.WithLabelValues("adapter_failure").Inc()
		return nil, err
	}

	operation, err := s.recordOutcome(circuitID, requester, request.LID, result, circuit.Config.RequireApproval)
	if err != nil {
		return nil, err
	}

	appendLifecycleEvents(result, storageRecord, operation)

	outcome := "new_item"
	if result.status == constants.PushResultExistingItemEnriched {
		outcome = "enriched"
	}
	metrics.PushesTotal.WithLabelValues(outcome).Inc()

	logger.Audit(log.AuditEvent{
		InitiatorID:   requester,
		InitiatorType: log.InitiatorTypeUser,
		TargetID:      result.dfid,
		TargetType:    log.TargetTypeItem,
		ActionID:      log.ActionPushItem,
		Data: map[string]string{
			"circuit_id":   circuitID,
			"lid":          request.LID,
			"status":       result.status,
			"operation_id": operation.OperationID,
		},
	})

	return &model.PushResponse{
		DFID:        result.dfid,
		Status:      result.status,
		OperationID: operation.OperationID,
		LID:         request.LID,
	}, nil
}

// resolveAndMutate performs steps 4-6: resolve the identity, create or
// enrich the item, and pin the LID. Caller holds the identity lock.
func (s *TokenizationService) resolveAndMutate(circuitID, workspaceID string, config circuitmodel.CircuitAliasConfig,
	record *stagingmodel.LocalRecord, validated []identifier.Identifier,
	data map[string]interface{}) (*resolutionResult, error) {

	logger := log.GetLogger()

	// A mapped LID is pinned: later pushes enrich its DFID, never re-resolve.
	mapping, err := itemstore.GetMapping(record.LID)
	if err != nil {
		return nil, err
	}
	if mapping != nil {
		if err := enrichItem(mapping.DFID, validated, data); err != nil {
			return nil, err
		}
		if config.UseFingerprint {
			if err := itemstore.AddCircuitFingerprint(circuitID, identifier.Fingerprint(validated), mapping.DFID); err != nil {
				return nil, err
			}
		}
		return &resolutionResult{dfid: mapping.DFID, status: constants.PushResultExistingItemEnriched}, nil
	}

	resolution, err := dedupservice.NewDedupService().Resolve(circuitID, config, validated)
	if err != nil {
		return nil, err
	}

	var result resolutionResult
	switch resolution.Kind {
	case dedupmodel.ResolutionAmbiguousMatch:
		return nil, persistConflict(circuitID, workspaceID, record.LID, resolution.Candidates)

	case dedupmodel.ResolutionExistingIdentity:
		if err := enrichItem(resolution.DFID, validated, data); err != nil {
			return nil, err
		}
		result = resolutionResult{dfid: resolution.DFID, status: constants.PushResultExistingItemEnriched}

	case dedupmodel.ResolutionNewIdentity:
		newDFID, err := dfid.Mint()
		if err != nil {
			return nil, err
		}
		now := time.Now().UTC()
		item := itemmodel.Item{
			DFID:        newDFID,
			Identifiers: validated,
			Data:        data,
			Confidence:  1.0,
			Status:      constants.ItemStatusActive,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if config.UseFingerprint {
			item.Fingerprint = identifier.Fingerprint(validated)
		}
		if err := itemstore.InsertItem(item); err != nil {
			return nil, err
		}
		logger.Info(fmt.Sprintf("Minted new item %s for LID: %s", newDFID, record.LID),
			log.Bool("fingerprinted", config.UseFingerprint))
		result = resolutionResult{dfid: newDFID, status: constants.PushResultNewItemCreated}
	}

	if config.UseFingerprint {
		if err := itemstore.AddCircuitFingerprint(circuitID, identifier.Fingerprint(validated), result.dfid); err != nil {
			return nil, err
		}
	}

	// First tokenization pins the LID.
	err = itemstore.AddMapping(itemmodel.Mapping{
		LID:         record.LID,
		DFID:        result.dfid,
		WorkspaceID: workspaceID,
		CreatedAt:   time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}
	if err := stagingstore.UpdateStatus(record.LID, constants.LocalRecordStatusTokenized); err != nil {
		return nil, err
	}

	return &result, nil
}

// storeSnapshot serializes the item's current state and writes it through
// the circuit's adapter, retrying transient failures with backoff. The
// storage record is appended only after the write succeeds.
func (s *TokenizationService) storeSnapshot(adapterType, itemDFID, lid string) (*adaptermodel.StorageRecord, error) {

	logger := log.GetLogger()

	item, err := itemstore.GetItem(itemDFID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.GET_ITEM.Code,
			Message:     errors2.GET_ITEM.Message,
			Description: fmt.Sprintf("Item vanished before snapshot: %s", itemDFID),
		}, nil)
	}
	payload, err := json.Marshal(item)
	if err != nil {
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.MARSHAL_JSON.Code,
			Message:     errors2.MARSHAL_JSON.Message,
			Description: fmt.Sprintf("Failed to marshal snapshot of item: %s", itemDFID),
		}, err)
	}
	snapshot := adaptermodel.ItemSnapshot{DFID: itemDFID, Payload: payload}

	adapterImpl, err := adapter.ForType(adapterType)
	if err != nil {
		return nil, err
	}

	var location adaptermodel.AdapterLocation
	var contentHash string
	var storeErr error
	for attempt := 1; attempt <= constants.MaxAdapterStoreAttempts; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), adapterStoreTimeout)
		started := time.Now()
		location, contentHash, storeErr = adapterImpl.Store(ctx, snapshot)
		metrics.AdapterStoreDuration.WithLabelValues(adapterType).Observe(time.Since(started).Seconds())
		cancel()
		if storeErr == nil {
			break
		}
		metrics.AdapterStoreFailures.WithLabelValues(adapterType).Inc()
		logger.Warn(fmt.Sprintf("Adapter store attempt %d failed for item: %s", attempt, itemDFID),
			log.Duration("elapsed", time.Since(started)), log.Error(storeErr))
		if attempt < constants.MaxAdapterStoreAttempts {
			time.Sleep(adapterRetryDelay * time.Duration(1<<(attempt-1)))
		}
	}
	if storeErr != nil {
		return nil, storeErr
	}

	return history.RecordWrite(itemDFID, adapterType, location, contentHash, "push", lid)
}

// recordOutcome creates the push operation and the circuit membership row.
// Approval-gated pushes start PENDING and invisible.
func (s *TokenizationService) recordOutcome(circuitID, requester, lid string, result *resolutionResult,
	requireApproval bool) (*model.PushOperation, error) {

	status := constants.OperationStatusCompleted
	if requireApproval {
		status = constants.OperationStatusPending
	}
	operation := model.PushOperation{
		OperationID: uuid.New().String(),
		CircuitID:   circuitID,
		DFID:        result.dfid,
		LID:         lid,
		RequesterID: requester,
		Status:      status,
		CreatedAt:   time.Now().UTC(),
	}
	if err := store.InsertOperation(operation); err != nil {
		return nil, err
	}

	visible := !requireApproval
	if err := circuitstore.UpsertCircuitItem(circuitID, result.dfid, visible, operation.OperationID); err != nil {
		return nil, err
	}
	return &operation, nil
}

// GetMappingStatus answers the LID mapping query without touching items.
func (s *TokenizationService) GetMappingStatus(workspaceID, lid string) (*model.MappingResponse, error) {

	mapping, err := itemstore.GetMapping(lid)
	if err != nil {
		return nil, err
	}
	if mapping != nil {
		return &model.MappingResponse{
			LID:    lid,
			DFID:   mapping.DFID,
			Status: constants.LocalRecordStatusTokenized,
		}, nil
	}

	record, err := loadLocalRecord(lid, workspaceID)
	if err != nil {
		return nil, err
	}
	return &model.MappingResponse{LID: lid, Status: record.Status}, nil
}

// GetOperation fetches a push operation.
func (s *TokenizationService) GetOperation(operationID string) (*model.PushOperation, error) {

	operation, err := store.GetOperation(operationID)
	if err != nil {
		return nil, err
	}
	if operation == nil {
		return nil, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.OPERATION_NOT_FOUND.Code,
			Message:     errors2.OPERATION_NOT_FOUND.Message,
			Description: "No push operation exists for id: " + operationID,
		}, http.StatusNotFound)
	}
	return operation, nil
}

// ApproveOperation completes a pending operation and makes the item
// visible in the circuit listing.
func (s *TokenizationService) ApproveOperation(operationID, actor string) (*model.PushOperation, error) {

	return s.decideOperation(operationID, actor, constants.OperationStatusCompleted)
}

// RejectOperation rejects a pending operation. The stored snapshot stays
// durable; the item just never becomes visible in this circuit.
func (s *TokenizationService) RejectOperation(operationID, actor string) (*model.PushOperation, error) {

	return s.decideOperation(operationID, actor, constants.OperationStatusRejected)
}

func (s *TokenizationService) decideOperation(operationID, actor, status string) (*model.PushOperation, error) {

	operation, err := s.GetOperation(operationID)
	if err != nil {
		return nil, err
	}

	decided, err := store.DecideOperation(operationID, status, actor)
	if err != nil {
		return nil, err
	}
	if !decided {
		return nil, errors2.NewClientErrorWithContext(errors2.ErrorMessage{
			Code:        errors2.OPERATION_ALREADY_DECIDED.Code,
			Message:     errors2.OPERATION_ALREADY_DECIDED.Message,
			Description: fmt.Sprintf("Operation %s is already in status %s.", operationID, operation.Status),
		}, http.StatusConflict, map[string]interface{}{
			"operation_id": operationID,
			"status":       operation.Status,
		})
	}

	actionID := log.ActionRejectPush
	eventType := constants.EventPushRejected
	if status == constants.OperationStatusCompleted {
		actionID = log.ActionApprovePush
		eventType = constants.EventPushApproved
		if err := circuitstore.SetCircuitItemVisible(operation.CircuitID, operation.DFID, true); err != nil {
			return nil, err
		}
	}

	insertEvent(operation.DFID, eventType, actor, map[string]interface{}{
		"operation_id": operationID,
		"circuit_id":   operation.CircuitID,
	})

	log.GetLogger().Audit(log.AuditEvent{
		InitiatorID:   actor,
		InitiatorType: log.InitiatorTypeAdmin,
		TargetID:      operationID,
		TargetType:    log.TargetTypeOperation,
		ActionID:      actionID,
		Data:          map[string]string{"dfid": operation.DFID, "circuit_id": operation.CircuitID},
	})

	return s.GetOperation(operationID)
}

// ResolveConflict executes a manual deduplication decision: the chosen
// item absorbs the conflicted record's evidence and the LID is pinned to
// it. The conflict closes exactly once.
func (s *TokenizationService) ResolveConflict(conflictID, actor, chosenDFID string) (*dedupmodel.Conflict, error) {

	conflict, err := dedupstore.GetConflict(conflictID)
	if err != nil {
		return nil, err
	}
	if conflict == nil {
		return nil, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.CONFLICT_NOT_FOUND.Code,
			Message:     errors2.CONFLICT_NOT_FOUND.Message,
			Description: "No deduplication conflict exists for id: " + conflictID,
		}, http.StatusNotFound)
	}
	if conflict.Status != constants.ConflictStatusOpen {
		return nil, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.CONFLICT_ALREADY_RESOLVED.Code,
			Message:     errors2.CONFLICT_ALREADY_RESOLVED.Message,
			Description: fmt.Sprintf("Conflict %s was already resolved in favor of %s.", conflictID, conflict.ResolvedDFID),
		}, http.StatusConflict)
	}
	if !containsString(conflict.Candidates, chosenDFID) {
		return nil, errors2.NewClientErrorWithContext(errors2.ErrorMessage{
			Code:        errors2.BAD_REQUEST.Code,
			Message:     errors2.BAD_REQUEST.Message,
			Description: fmt.Sprintf("DFID %s is not a candidate of conflict %s.", chosenDFID, conflictID),
		}, http.StatusBadRequest, map[string]interface{}{
			"candidates": conflict.Candidates,
		})
	}

	record, err := loadLocalRecord(conflict.LID, conflict.WorkspaceID)
	if err != nil {
		return nil, err
	}
	circuit, err := circuitprovider.NewCircuitProvider().GetCircuitService().GetCircuit(conflict.CircuitID)
	if err != nil {
		return nil, err
	}

	// The identifiers go through the same policy stamping as Push, so a
	// resolution and a concurrent push for the same entity contend on one key.
	validated, err := policy.Validate(circuit.Config, record.Identifiers)
	if err != nil {
		return nil, err
	}

	lockKey := identifier.LockKey(validated)
	identityLock := lock.NewDistributedLock()
	if err := acquireWithRetry(identityLock, lockKey); err != nil {
		return nil, err
	}
	err = func() error {
		if err := enrichItem(chosenDFID, validated, record.Data); err != nil {
			return err
		}
		err := itemstore.AddMapping(itemmodel.Mapping{
			LID:         conflict.LID,
			DFID:        chosenDFID,
			WorkspaceID: conflict.WorkspaceID,
			CreatedAt:   time.Now().UTC(),
		})
		if err != nil {
			return err
		}
		return stagingstore.UpdateStatus(conflict.LID, constants.LocalRecordStatusTokenized)
	}()
	if releaseErr := identityLock.Release(lockKey); releaseErr != nil {
		log.GetLogger().Warn("Failed to release identity lock", log.String("lock_key", lockKey), log.Error(releaseErr))
	}
	if err != nil {
		return nil, err
	}

	resolved, err := dedupstore.ResolveConflict(conflictID, actor, chosenDFID)
	if err != nil {
		return nil, err
	}
	if !resolved {
		return nil, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.CONFLICT_ALREADY_RESOLVED.Code,
			Message:     errors2.CONFLICT_ALREADY_RESOLVED.Message,
			Description: fmt.Sprintf("Conflict %s was resolved concurrently.", conflictID),
		}, http.StatusConflict)
	}

	insertEvent(chosenDFID, constants.EventItemEnriched, actor, map[string]interface{}{
		"conflict_id": conflictID,
		"lid":         conflict.LID,
	})

	log.GetLogger().Audit(log.AuditEvent{
		InitiatorID:   actor,
		InitiatorType: log.InitiatorTypeAdmin,
		TargetID:      conflictID,
		TargetType:    log.TargetTypeConflict,
		ActionID:      log.ActionResolveMerge,
		Data:          map[string]string{"dfid": chosenDFID, "lid": conflict.LID},
	})

	return dedupstore.GetConflict(conflictID)
}

// loadLocalRecord fetches a local record and enforces workspace scoping.
func loadLocalRecord(lid, workspaceID string) (*stagingmodel.LocalRecord, error) {

	record, err := stagingstore.GetLocalRecord(lid)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.LOCAL_RECORD_NOT_FOUND.Code,
			Message:     errors2.LOCAL_RECORD_NOT_FOUND.Message,
			Description: "No local record exists for LID: " + lid,
		}, http.StatusNotFound)
	}
	if workspaceID != "" && record.WorkspaceID != workspaceID {
		return nil, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.WORKSPACE_MISMATCH.Code,
			Message:     errors2.WORKSPACE_MISMATCH.Message,
			Description: "Local record belongs to a different workspace: " + lid,
		}, http.StatusForbidden)
	}
	return record, nil
}

// enrichItem appends identifiers and merges data into an existing item.
// Identifier enrichment is append-only; data merges last-write-wins per
// key with no key removal.
func enrichItem(itemDFID string, identifiers []identifier.Identifier, data map[string]interface{}) error {

	item, err := itemstore.GetItem(itemDFID)
	if err != nil {
		return err
	}
	if item == nil {
		return errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.ITEM_NOT_FOUND.Code,
			Message:     errors2.ITEM_NOT_FOUND.Message,
			Description: "No item exists for dfid: " + itemDFID,
		}, http.StatusNotFound)
	}

	if err := itemstore.AddIdentifiers(itemDFID, identifiers); err != nil {
		return err
	}
	return itemstore.UpdateItemData(itemDFID, mergeData(item.Data, data))
}

// mergeData overlays incoming keys on the base map. Existing keys absent
// from incoming are kept; keys present in both take the incoming value.
func mergeData(base, incoming map[string]interface{}) map[string]interface{} {

	merged := make(map[string]interface{}, len(base)+len(incoming))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range incoming {
		merged[k] = v
	}
	return merged
}

// acquireWithRetry acquires the identity lock with bounded retries.
func acquireWithRetry(identityLock lock.DistributedLock, key string) error {

	for attempt := 1; attempt <= constants.MaxLockRetryAttempts; attempt++ {
		acquired, err := identityLock.Acquire(key)
		if err != nil {
			return err
		}
		if acquired {
			return nil
		}
		metrics.LockContention.Inc()
		time.Sleep(lockRetryBaseDelay * time.Duration(attempt))
	}
	return errors2.NewServerError(errors2.ErrorMessage{
		Code:        errors2.LOCK_ACQUIRE.Code,
		Message:     errors2.LOCK_ACQUIRE.Message,
		Description: "Identity lock is contended for key: " + key,
	}, nil)
}

// persistConflict stores the ambiguous match and returns the client error
// surfacing the candidates for manual resolution.
func persistConflict(circuitID, workspaceID, lid string, candidates []string) error {

	conflict := dedupmodel.Conflict{
		ConflictID:  uuid.New().String(),
		CircuitID:   circuitID,
		LID:         lid,
		WorkspaceID: workspaceID,
		Candidates:  candidates,
		Status:      constants.ConflictStatusOpen,
		CreatedAt:   time.Now().UTC(),
	}
	if err := dedupstore.InsertConflict(conflict); err != nil {
		return err
	}

	metrics.PushesTotal.WithLabelValues("conflict").Inc()
	return errors2.NewClientErrorWithContext(errors2.ErrorMessage{
		Code:        errors2.DEDUPLICATION_CONFLICT.Code,
		Message:     errors2.DEDUPLICATION_CONFLICT.Message,
		Description: "Canonical evidence links multiple existing items; resolve the conflict manually.",
	}, http.StatusConflict, map[string]interface{}{
		"conflict_id": conflict.ConflictID,
		"candidates":  candidates,
	})
}

// appendLifecycleEvents records the synchronous lifecycle events of a push.
func appendLifecycleEvents(result *resolutionResult, storageRecord *adaptermodel.StorageRecord,
	operation *model.PushOperation) {

	eventType := constants.EventItemCreated
	if result.status == constants.PushResultExistingItemEnriched {
		eventType = constants.EventItemEnriched
	}
	insertEvent(result.dfid, eventType, "coordinator", map[string]interface{}{
		"operation_id": operation.OperationID,
		"circuit_id":   operation.CircuitID,
	})
	insertEvent(result.dfid, constants.EventStorageWritten, "coordinator", map[string]interface{}{
		"adapter_type": storageRecord.AdapterType,
		"record_id":    storageRecord.RecordID,
		"content_hash": storageRecord.ContentHash,
	})
}

func insertEvent(itemDFID, eventType, source string, metadata map[string]interface{}) {

	event := eventmodel.Event{
		EventID:   uuid.New().String(),
		DFID:      itemDFID,
		EventType: eventType,
		Source:    source,
		Timestamp: time.Now().UTC(),
		Metadata:  metadata,
	}
	if err := eventstore.InsertEvent(event); err != nil {
		log.GetLogger().Error(fmt.Sprintf("Failed to append %s event for item: %s", eventType, itemDFID),
			log.Error(err))
	}
}

func containsString(values []string, target string) bool {

	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
