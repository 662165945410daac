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
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wso2/entity-tokenization-service/internal/adapter/history"
	adaptermodel "github.com/wso2/entity-tokenization-service/internal/adapter/model"
	circuitmodel "github.com/wso2/entity-tokenization-service/internal/circuit/model"
	circuitservice "github.com/wso2/entity-tokenization-service/internal/circuit/service"
	dedupmodel "github.com/wso2/entity-tokenization-service/internal/dedup/model"
	dedupservice "github.com/wso2/entity-tokenization-service/internal/dedup/service"
	dedupstore "github.com/wso2/entity-tokenization-service/internal/dedup/store"
	eventmodel "github.com/wso2/entity-tokenization-service/internal/events/model"
	eventstore "github.com/wso2/entity-tokenization-service/internal/events/store"
	"github.com/wso2/entity-tokenization-service/internal/identifier"
	itemmodel "github.com/wso2/entity-tokenization-service/internal/item/model"
	itemstore "github.com/wso2/entity-tokenization-service/internal/item/store"
	merklemodel "github.com/wso2/entity-tokenization-service/internal/merkle/model"
	merkleservice "github.com/wso2/entity-tokenization-service/internal/merkle/service"
	"github.com/wso2/entity-tokenization-service/internal/system/constants"
	"github.com/wso2/entity-tokenization-service/internal/tokenization/dfid"
	tokenizationmodel "github.com/wso2/entity-tokenization-service/internal/tokenization/model"
	tokenizationstore "github.com/wso2/entity-tokenization-service/internal/tokenization/store"
)

func canonicalID(ns, key, value string) identifier.Identifier {

	return identifier.Identifier{Namespace: ns, Key: key, Value: value, Kind: constants.KindCanonical}
}

func insertTestItem(t *testing.T, identifiers ...identifier.Identifier) string {

	t.Helper()
	minted, err := dfid.Mint()
	require.NoError(t, err)

	now := time.Now().UTC()
	require.NoError(t, itemstore.InsertItem(itemmodel.Item{
		DFID:        minted,
		Identifiers: identifiers,
		Data:        map[string]interface{}{"name": "Test Entity"},
		Confidence:  1.0,
		Status:      constants.ItemStatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}))
	return minted
}

func TestItemRoundTripWithIdentifiers(t *testing.T) {
	requireDocker(t)

	id := canonicalID("gln", "gln", uuid.New().String())
	minted := insertTestItem(t, id)

	item, err := itemstore.GetItem(minted)
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Equal(t, minted, item.DFID)
	assert.Equal(t, constants.ItemStatusActive, item.Status)
	assert.Equal(t, "Test Entity", item.Data["name"])
	require.Len(t, item.Identifiers, 1)
	assert.True(t, item.Identifiers[0].Equal(id))

	dfids, err := itemstore.FindDfidsByIdentifier(id)
	require.NoError(t, err)
	assert.Equal(t, []string{minted}, dfids)
}

func TestAddIdentifiersIsAppendOnly(t *testing.T) {
	requireDocker(t)

	first := canonicalID("lei", "lei", uuid.New().String())
	minted := insertTestItem(t, first)

	// Re-adding the same tuple is a no-op, not an error.
	require.NoError(t, itemstore.AddIdentifiers(minted, []identifier.Identifier{first}))

	second := canonicalID("duns", "duns", uuid.New().String())
	require.NoError(t, itemstore.AddIdentifiers(minted, []identifier.Identifier{first, second}))

	item, err := itemstore.GetItem(minted)
	require.NoError(t, err)
	assert.Len(t, item.Identifiers, 2)
}

func TestDedupResolveAgainstStore(t *testing.T) {
	requireDocker(t)

	shared := canonicalID("gln", "gln", uuid.New().String())
	config := circuitmodel.CircuitAliasConfig{}

	resolution, err := dedupservice.NewDedupService().Resolve("circuit-int", config,
		[]identifier.Identifier{shared})
	require.NoError(t, err)
	assert.Equal(t, dedupmodel.ResolutionNewIdentity, resolution.Kind)

	first := insertTestItem(t, shared)
	resolution, err = dedupservice.NewDedupService().Resolve("circuit-int", config,
		[]identifier.Identifier{shared})
	require.NoError(t, err)
	assert.Equal(t, dedupmodel.ResolutionExistingIdentity, resolution.Kind)
	assert.Equal(t, first, resolution.DFID)

	second := insertTestItem(t, shared)
	resolution, err = dedupservice.NewDedupService().Resolve("circuit-int", config,
		[]identifier.Identifier{shared})
	require.NoError(t, err)
	assert.Equal(t, dedupmodel.ResolutionAmbiguousMatch, resolution.Kind)
	assert.ElementsMatch(t, []string{first, second}, resolution.Candidates)
}

func TestMintProducesValidDistinctDFIDs(t *testing.T) {
	requireDocker(t)

	seen := map[string]bool{}
	for i := 0; i < 5; i++ {
		minted, err := dfid.Mint()
		require.NoError(t, err)
		assert.True(t, dfid.Validate(minted), minted)
		assert.False(t, seen[minted], "duplicate DFID: %s", minted)
		seen[minted] = true
	}
}

func TestOperationIsDecidedExactlyOnce(t *testing.T) {
	requireDocker(t)

	circuit, err := circuitservice.NewCircuitService().AddCircuit("owner-1", circuitmodel.CreateCircuitRequest{
		CircuitName: "decide-once",
		Config:      circuitmodel.CircuitAliasConfig{AdapterType: constants.AdapterTypeLocal, RequireApproval: true},
	})
	require.NoError(t, err)
	minted := insertTestItem(t, canonicalID("gln", "gln", uuid.New().String()))

	operation := tokenizationmodel.PushOperation{
		OperationID: uuid.New().String(),
		CircuitID:   circuit.CircuitID,
		DFID:        minted,
		LID:         "lid-" + uuid.New().String(),
		RequesterID: "user-1",
		Status:      constants.OperationStatusPending,
		CreatedAt:   time.Now().UTC(),
	}
	require.NoError(t, tokenizationstore.InsertOperation(operation))

	decided, err := tokenizationstore.DecideOperation(operation.OperationID, constants.OperationStatusCompleted, "admin-1")
	require.NoError(t, err)
	assert.True(t, decided)

	decided, err = tokenizationstore.DecideOperation(operation.OperationID, constants.OperationStatusRejected, "admin-2")
	require.NoError(t, err)
	assert.False(t, decided)

	fetched, err := tokenizationstore.GetOperation(operation.OperationID)
	require.NoError(t, err)
	require.NotNil(t, fetched)
	assert.Equal(t, constants.OperationStatusCompleted, fetched.Status)
	assert.Equal(t, "admin-1", fetched.DecidedBy)
}

func TestConflictLifecycle(t *testing.T) {
	requireDocker(t)

	first := insertTestItem(t, canonicalID("gln", "gln", uuid.New().String()))
	second := insertTestItem(t, canonicalID("gln", "gln", uuid.New().String()))

	conflict := dedupmodel.Conflict{
		ConflictID:  uuid.New().String(),
		CircuitID:   "circuit-int",
		LID:         "lid-" + uuid.New().String(),
		WorkspaceID: "default",
		Candidates:  []string{first, second},
		Status:      constants.ConflictStatusOpen,
		CreatedAt:   time.Now().UTC(),
	}
	require.NoError(t, dedupstore.InsertConflict(conflict))

	open, err := dedupstore.GetOpenConflicts()
	require.NoError(t, err)
	found := false
	for _, c := range open {
		if c.ConflictID == conflict.ConflictID {
			found = true
		}
	}
	assert.True(t, found)

	resolved, err := dedupstore.ResolveConflict(conflict.ConflictID, "admin-1", first)
	require.NoError(t, err)
	assert.True(t, resolved)

	resolved, err = dedupstore.ResolveConflict(conflict.ConflictID, "admin-2", second)
	require.NoError(t, err)
	assert.False(t, resolved)

	fetched, err := dedupstore.GetConflict(conflict.ConflictID)
	require.NoError(t, err)
	require.NotNil(t, fetched)
	assert.Equal(t, constants.ConflictStatusResolved, fetched.Status)
	assert.Equal(t, first, fetched.ResolvedDFID)
	assert.ElementsMatch(t, []string{first, second}, fetched.Candidates)
}

func TestEventHistoryBacksVerifiableProofs(t *testing.T) {
	requireDocker(t)

	minted := insertTestItem(t, canonicalID("gln", "gln", uuid.New().String()))

	base := time.Now().UTC().Add(-time.Minute)
	eventIDs := make([]string, 0, 3)
	for i, eventType := range []string{constants.EventItemCreated, constants.EventStorageWritten, constants.EventItemEnriched} {
		event := eventmodel.Event{
			EventID:   uuid.New().String(),
			DFID:      minted,
			EventType: eventType,
			Source:    "coordinator",
			Timestamp: base.Add(time.Duration(i) * time.Second),
			Metadata:  map[string]interface{}{"seq": i},
		}
		require.NoError(t, eventstore.InsertEvent(event))
		eventIDs = append(eventIDs, event.EventID)
	}

	merkle := merkleservice.NewMerkleService()
	root, err := merkle.GetItemRoot(minted)
	require.NoError(t, err)
	assert.Equal(t, 3, root.LeafCount)
	assert.NotEmpty(t, root.Root)

	for _, eventID := range eventIDs {
		proof, err := merkle.ProveEventInItem(minted, eventID)
		require.NoError(t, err)
		assert.Equal(t, root.Root, proof.Root)
		assert.True(t, merkle.VerifyProof(merklemodel.VerifyProofRequest{
			LeafHash: proof.LeafHash,
			Steps:    proof.Steps,
			Root:     proof.Root,
		}))
	}
}

func TestStorageHistoryKeepsOneActiveRecord(t *testing.T) {
	requireDocker(t)

	minted := insertTestItem(t, canonicalID("gln", "gln", uuid.New().String()))

	first, err := history.RecordWrite(minted, constants.AdapterTypeLocal,
		adaptermodel.AdapterLocation{ID: uuid.New().String()}, "hash-1", "push", "lid-1")
	require.NoError(t, err)

	second, err := history.RecordWrite(minted, constants.AdapterTypeLocal,
		adaptermodel.AdapterLocation{ID: uuid.New().String()}, "hash-2", "push", "lid-1")
	require.NoError(t, err)

	records, err := history.GetHistory(minted)
	require.NoError(t, err)
	require.Len(t, records, 2)

	active, err := history.GetActiveRecord(minted, constants.AdapterTypeLocal)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, second.RecordID, active.RecordID)
	assert.NotEqual(t, first.RecordID, active.RecordID)

	activeCount := 0
	for _, record := range records {
		if record.IsActive {
			activeCount++
		}
	}
	assert.Equal(t, 1, activeCount)
}
