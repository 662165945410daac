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
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"time"

	circuitprovider "github.com/wso2/entity-tokenization-service/internal/circuit/provider"
	circuitstore "github.com/wso2/entity-tokenization-service/internal/circuit/store"
	eventmodel "github.com/wso2/entity-tokenization-service/internal/events/model"
	eventstore "github.com/wso2/entity-tokenization-service/internal/events/store"
	itemstore "github.com/wso2/entity-tokenization-service/internal/item/store"
	"github.com/wso2/entity-tokenization-service/internal/merkle/model"
	"github.com/wso2/entity-tokenization-service/internal/merkle/tree"
	errors2 "github.com/wso2/entity-tokenization-service/internal/system/errors"
)

// MerkleServiceInterface computes audit roots and inclusion proofs over
// item event histories and circuit memberships.
type MerkleServiceInterface interface {
	GetItemRoot(dfid string) (*model.RootResponse, error)
	GetCircuitRoot(circuitID string) (*model.RootResponse, error)
	ProveEventInItem(dfid, eventID string) (*model.Proof, error)
	ProveItemInCircuit(circuitID, dfid string) (*model.Proof, error)
	VerifyProof(request model.VerifyProofRequest) bool
}

// MerkleService is the default implementation of MerkleServiceInterface.
type MerkleService struct{}

func NewMerkleService() *MerkleService {

	return &MerkleService{}
}

// eventLeaf is the canonical leaf serialization of an event. Field order
// is fixed and the timestamp is normalized to UTC nanoseconds so the same
// event always hashes identically.
type eventLeaf struct {
	EventID   string                 `json:"event_id"`
	DFID      string                 `json:"dfid"`
	EventType string                 `json:"event_type"`
	Source    string                 `json:"source"`
	Timestamp string                 `json:"timestamp"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// GetItemRoot computes the Merkle root over an item's event history.
func (s *MerkleService) GetItemRoot(dfid string) (*model.RootResponse, error) {

	leaves, err := itemLeaves(dfid)
	if err != nil {
		return nil, err
	}
	return &model.RootResponse{
		DFID:      dfid,
		Root:      tree.BuildRoot(leaves),
		LeafCount: len(leaves),
	}, nil
}

// GetCircuitRoot computes the Merkle root over the item roots of a
// circuit's visible members, ordered by DFID.
func (s *MerkleService) GetCircuitRoot(circuitID string) (*model.RootResponse, error) {

	leaves, _, err := circuitLeaves(circuitID)
	if err != nil {
		return nil, err
	}
	return &model.RootResponse{
		CircuitID: circuitID,
		Root:      tree.BuildRoot(leaves),
		LeafCount: len(leaves),
	}, nil
}

// ProveEventInItem proves that an event belongs to an item's history.
func (s *MerkleService) ProveEventInItem(dfid, eventID string) (*model.Proof, error) {

	event, err := eventstore.GetEvent(eventID)
	if err != nil {
		return nil, err
	}
	if event == nil || event.DFID != dfid {
		return nil, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.EVENT_NOT_FOUND.Code,
			Message:     errors2.EVENT_NOT_FOUND.Message,
			Description: fmt.Sprintf("No event %s exists for item: %s", eventID, dfid),
		}, http.StatusNotFound)
	}

	leaves, err := itemLeaves(dfid)
	if err != nil {
		return nil, err
	}
	return buildProof(leaves, leafHash(*event))
}

// ProveItemInCircuit proves that an item's event root is covered by the
// circuit root.
func (s *MerkleService) ProveItemInCircuit(circuitID, dfid string) (*model.Proof, error) {

	leaves, roots, err := circuitLeaves(circuitID)
	if err != nil {
		return nil, err
	}
	itemRoot, ok := roots[dfid]
	if !ok {
		return nil, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.ITEM_NOT_FOUND.Code,
			Message:     errors2.ITEM_NOT_FOUND.Message,
			Description: fmt.Sprintf("Item %s is not a visible member of circuit: %s", dfid, circuitID),
		}, http.StatusNotFound)
	}
	return buildProof(leaves, itemRoot)
}

// VerifyProof checks a proof offline; no storage access.
func (s *MerkleService) VerifyProof(request model.VerifyProofRequest) bool {

	return tree.Verify(request.LeafHash, request.Steps, request.Root)
}

// itemLeaves hashes an item's events in history order.
func itemLeaves(dfid string) ([]string, error) {

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

	events, err := eventstore.GetEventsByDfid(dfid)
	if err != nil {
		return nil, err
	}
	leaves := make([]string, 0, len(events))
	for _, event := range events {
		leaves = append(leaves, leafHash(event))
	}
	return leaves, nil
}

// circuitLeaves computes per-item event roots for a circuit's visible
// members, DFID-ordered, and returns both the leaf list and the dfid to
// root index.
func circuitLeaves(circuitID string) ([]string, map[string]string, error) {

	// Existence check; visibility comes from the membership table.
	if _, err := circuitprovider.NewCircuitProvider().GetCircuitService().GetCircuit(circuitID); err != nil {
		return nil, nil, err
	}

	dfids, err := circuitstore.ListVisibleItems(circuitID)
	if err != nil {
		return nil, nil, err
	}
	sort.Strings(dfids)

	leaves := make([]string, 0, len(dfids))
	roots := make(map[string]string, len(dfids))
	for _, dfid := range dfids {
		itemLeafSet, err := itemLeaves(dfid)
		if err != nil {
			return nil, nil, err
		}
		root := tree.BuildRoot(itemLeafSet)
		leaves = append(leaves, root)
		roots[dfid] = root
	}
	return leaves, roots, nil
}

func buildProof(leaves []string, leaf string) (*model.Proof, error) {

	steps, err := tree.Prove(leaves, leaf)
	if err != nil {
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.MERKLE_BUILD.Code,
			Message:     errors2.MERKLE_BUILD.Message,
			Description: "Leaf disappeared while building proof",
		}, err)
	}
	return &model.Proof{
		LeafHash: leaf,
		Steps:    steps,
		Root:     tree.BuildRoot(leaves),
	}, nil
}

// leafHash canonicalizes an event and hashes it. json.Marshal sorts map
// keys, so metadata serialization is deterministic.
func leafHash(event eventmodel.Event) string {

	leaf := eventLeaf{
		EventID:   event.EventID,
		DFID:      event.DFID,
		EventType: event.EventType,
		Source:    event.Source,
		Timestamp: event.Timestamp.UTC().Format(time.RFC3339Nano),
		Metadata:  event.Metadata,
	}
	content, err := json.Marshal(leaf)
	if err != nil {
		// Only unmarshalable metadata values can land here, and events are
		// written from JSON in the first place.
		content = []byte(event.EventID)
	}
	return tree.HashLeaf(content)
}
