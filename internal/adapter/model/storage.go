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

package model

import "time"

// AdapterLocation is a discriminated union over the backend families.
// Exactly one shape is populated per record; callers branch on the
// adapter type of the owning record to know which fields to read.
type AdapterLocation struct {
	// Local backend.
	ID string `json:"id,omitempty"`

	// Content-addressed backend.
	CID string `json:"cid,omitempty"`

	// Ledger-anchored backend.
	TransactionID   string `json:"transaction_id,omitempty"`
	ContractAddress string `json:"contract_address,omitempty"`
	AssetID         string `json:"asset_id,omitempty"`
}

// ItemSnapshot is the complete serialized state of an item handed to a
// storage adapter. Always the full merged payload, never a delta.
type ItemSnapshot struct {
	DFID    string `json:"dfid"`
	Payload []byte `json:"payload"`
}

// StorageRecord is one entry in an item's storage history. At most one
// record per (dfid, adapter_type) carries IsActive=true.
type StorageRecord struct {
	RecordID      string          `json:"record_id"`
	DFID          string          `json:"dfid"`
	AdapterType   string          `json:"adapter_type"`
	Location      AdapterLocation `json:"location"`
	ContentHash   string          `json:"content_hash"`
	TriggeredBy   string          `json:"triggered_by"`
	TriggeredByID string          `json:"triggered_by_id"`
	IsActive      bool            `json:"is_active"`
	StoredAt      time.Time       `json:"stored_at"`
}
