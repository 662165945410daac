/*
 * Copyright (c) 2026, WSO2 LLC. (http://www.wso2.com).
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

package integration

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wso2/entity-tokenization-service/internal/adapter/history"
	circuitmodel "github.com/wso2/entity-tokenization-service/internal/circuit/model"
	circuitservice "github.com/wso2/entity-tokenization-service/internal/circuit/service"
	circuitstore "github.com/wso2/entity-tokenization-service/internal/circuit/store"
	"github.com/wso2/entity-tokenization-service/internal/identifier"
	itemstore "github.com/wso2/entity-tokenization-service/internal/item/store"
	stagingmodel "github.com/wso2/entity-tokenization-service/internal/staging/model"
	stagingservice "github.com/wso2/entity-tokenization-service/internal/staging/service"
	"github.com/wso2/entity-tokenization-service/internal/system/constants"
	errors2 "github.com/wso2/entity-tokenization-service/internal/system/errors"
	"github.com/wso2/entity-tokenization-service/internal/system/lock"
	tokenizationmodel "github.com/wso2/entity-tokenization-service/internal/tokenization/model"
	tokenizationservice "github.com/wso2/entity-tokenization-service/internal/tokenization/service"
)

func addTestCircuit(t *testing.T, config circuitmodel.CircuitAliasConfig) *circuitmodel.Circuit {

	t.Helper()
	circuit, err := circuitservice.NewCircuitService().AddCircuit("owner-1", circuitmodel.CreateCircuitRequest{
		CircuitName: "flow-" + uuid.New().String(),
		Config:      config,
	})
	require.NoError(t, err)
	return circuit
}

func stageRecord(t *testing.T, workspaceID string, identifiers []identifier.Identifier,
	data map[string]interface{}) string {

	t.Helper()
	record, err := stagingservice.NewStagingService().CreateLocalRecord(workspaceID, "user-1",
		stagingmodel.CreateLocalRecordRequest{Identifiers: identifiers, Data: data})
	require.NoError(t, err)
	return record.LID
}

func TestAdvisoryLockSerializesHolders(t *testing.T) {
	requireDocker(t)

	key := "lock-" + uuid.New().String()
	first := lock.NewPostgresLock()
	acquired, err := first.Acquire(key)
	require.NoError(t, err)
	require.True(t, acquired)

	// The key must stay held between calls: a second holder on its own
	// session cannot take it until the first releases.
	second := lock.NewPostgresLock()
	acquired, err = second.Acquire(key)
	require.NoError(t, err)
	assert.False(t, acquired)

	require.NoError(t, first.Release(key))

	acquired, err = second.Acquire(key)
	require.NoError(t, err)
	assert.True(t, acquired)
	require.NoError(t, second.Release(key))
}

func TestRepushKeepsApprovedItemVisible(t *testing.T) {
	requireDocker(t)

	circuit := addTestCircuit(t, circuitmodel.CircuitAliasConfig{AdapterType: constants.AdapterTypeLocal})
	minted := insertTestItem(t, canonicalID("gln", "gln", uuid.New().String()))

	require.NoError(t, circuitstore.UpsertCircuitItem(circuit.CircuitID, minted, true, uuid.New().String()))
	// A later approval-gated push must not hide the already approved item.
	require.NoError(t, circuitstore.UpsertCircuitItem(circuit.CircuitID, minted, false, uuid.New().String()))

	visible, err := circuitstore.ListVisibleItems(circuit.CircuitID)
	require.NoError(t, err)
	assert.Contains(t, visible, minted)
}

func TestPushMintsOnceForSameCanonicalEvidence(t *testing.T) {
	requireMongo(t)

	circuit := addTestCircuit(t, circuitmodel.CircuitAliasConfig{AdapterType: constants.AdapterTypeLocal})
	shared := canonicalID("gln", "gln", uuid.New().String())
	svc := tokenizationservice.NewTokenizationService()

	lid1 := stageRecord(t, "default", []identifier.Identifier{shared},
		map[string]interface{}{"name": "Entity A"})
	resp1, err := svc.Push(circuit.CircuitID, "default", "user-1", tokenizationmodel.PushRequest{LID: lid1})
	require.NoError(t, err)
	assert.Equal(t, constants.PushResultNewItemCreated, resp1.Status)

	// A second record carrying the same canonical evidence enriches the
	// existing item instead of minting a new one.
	lid2 := stageRecord(t, "default", []identifier.Identifier{shared},
		map[string]interface{}{"sector": "beef"})
	resp2, err := svc.Push(circuit.CircuitID, "default", "user-1", tokenizationmodel.PushRequest{LID: lid2})
	require.NoError(t, err)
	assert.Equal(t, constants.PushResultExistingItemEnriched, resp2.Status)
	assert.Equal(t, resp1.DFID, resp2.DFID)

	// The pinned LID keeps resolving to its DFID on re-push.
	resp3, err := svc.Push(circuit.CircuitID, "default", "user-1", tokenizationmodel.PushRequest{
		LID:  lid1,
		Data: map[string]interface{}{"name": "Entity A1"},
	})
	require.NoError(t, err)
	assert.Equal(t, constants.PushResultExistingItemEnriched, resp3.Status)
	assert.Equal(t, resp1.DFID, resp3.DFID)

	mapping, err := svc.GetMappingStatus("default", lid1)
	require.NoError(t, err)
	assert.Equal(t, resp1.DFID, mapping.DFID)
	assert.Equal(t, constants.LocalRecordStatusTokenized, mapping.Status)

	item, err := itemstore.GetItem(resp1.DFID)
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Equal(t, "Entity A1", item.Data["name"])
	assert.Equal(t, "beef", item.Data["sector"])
}

func TestPushApprovalGatesVisibilityNotDurability(t *testing.T) {
	requireMongo(t)

	circuit := addTestCircuit(t, circuitmodel.CircuitAliasConfig{
		AdapterType:     constants.AdapterTypeLocal,
		RequireApproval: true,
	})
	shared := canonicalID("gln", "gln", uuid.New().String())
	svc := tokenizationservice.NewTokenizationService()

	lid := stageRecord(t, "default", []identifier.Identifier{shared}, nil)
	resp, err := svc.Push(circuit.CircuitID, "default", "user-1", tokenizationmodel.PushRequest{LID: lid})
	require.NoError(t, err)

	operation, err := svc.GetOperation(resp.OperationID)
	require.NoError(t, err)
	assert.Equal(t, constants.OperationStatusPending, operation.Status)

	// The snapshot is durable before any decision; only visibility waits.
	records, err := history.GetHistory(resp.DFID)
	require.NoError(t, err)
	require.NotEmpty(t, records)

	visible, err := circuitstore.ListVisibleItems(circuit.CircuitID)
	require.NoError(t, err)
	assert.NotContains(t, visible, resp.DFID)

	rejected, err := svc.RejectOperation(resp.OperationID, "admin-1")
	require.NoError(t, err)
	assert.Equal(t, constants.OperationStatusRejected, rejected.Status)

	visible, err = circuitstore.ListVisibleItems(circuit.CircuitID)
	require.NoError(t, err)
	assert.NotContains(t, visible, resp.DFID)

	// The decision is terminal.
	_, err = svc.ApproveOperation(resp.OperationID, "admin-1")
	require.Error(t, err)

	// A fresh push of the same entity can then be approved.
	lid2 := stageRecord(t, "default", []identifier.Identifier{shared}, nil)
	resp2, err := svc.Push(circuit.CircuitID, "default", "user-1", tokenizationmodel.PushRequest{LID: lid2})
	require.NoError(t, err)
	assert.Equal(t, resp.DFID, resp2.DFID)

	approved, err := svc.ApproveOperation(resp2.OperationID, "admin-1")
	require.NoError(t, err)
	assert.Equal(t, constants.OperationStatusCompleted, approved.Status)

	visible, err = circuitstore.ListVisibleItems(circuit.CircuitID)
	require.NoError(t, err)
	assert.Contains(t, visible, resp.DFID)

	// Another pending push must not retract the granted visibility.
	lid3 := stageRecord(t, "default", []identifier.Identifier{shared}, nil)
	_, err = svc.Push(circuit.CircuitID, "default", "user-1", tokenizationmodel.PushRequest{LID: lid3})
	require.NoError(t, err)

	visible, err = circuitstore.ListVisibleItems(circuit.CircuitID)
	require.NoError(t, err)
	assert.Contains(t, visible, resp.DFID)
}

func TestPushRejectedByPolicyPersistsNothing(t *testing.T) {
	requireMongo(t)

	circuit := addTestCircuit(t, circuitmodel.CircuitAliasConfig{
		AdapterType:       constants.AdapterTypeLocal,
		RequiredCanonical: []string{"gln"},
	})
	svc := tokenizationservice.NewTokenizationService()

	lid := stageRecord(t, "default", []identifier.Identifier{
		{Namespace: "bovino", Key: "herd", Value: uuid.New().String(), Kind: constants.KindContextual},
	}, nil)

	_, err := svc.Push(circuit.CircuitID, "default", "user-1", tokenizationmodel.PushRequest{LID: lid})
	require.Error(t, err)
	clientErr, ok := err.(*errors2.ClientError)
	require.True(t, ok, "expected a ClientError")
	assert.Equal(t, errors2.REQUIRED_IDENTIFIER_MISSING.Code, clientErr.ErrorMessage.Code)

	// Nothing was pinned or tokenized.
	mapping, err := itemstore.GetMapping(lid)
	require.NoError(t, err)
	assert.Nil(t, mapping)

	status, err := svc.GetMappingStatus("default", lid)
	require.NoError(t, err)
	assert.Empty(t, status.DFID)
	assert.Equal(t, constants.LocalRecordStatusLocalOnly, status.Status)
}
