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

package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalLocationSerializesOnlyID(t *testing.T) {

	data, err := json.Marshal(AdapterLocation{ID: "snap-1"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"snap-1"}`, string(data))
}

func TestCASLocationSerializesOnlyCID(t *testing.T) {

	data, err := json.Marshal(AdapterLocation{CID: "abc123"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"cid":"abc123"}`, string(data))
}

func TestLedgerLocationSerializesLedgerFields(t *testing.T) {

	location := AdapterLocation{
		TransactionID:   "tx-9",
		ContractAddress: "0xCAFE",
		AssetID:         "asset-4",
	}
	data, err := json.Marshal(location)
	require.NoError(t, err)
	assert.JSONEq(t, `{"transaction_id":"tx-9","contract_address":"0xCAFE","asset_id":"asset-4"}`, string(data))
}

func TestLocationRoundTrip(t *testing.T) {

	original := AdapterLocation{TransactionID: "tx-1", ContractAddress: "0x01", AssetID: "a-1"}
	data, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded AdapterLocation
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, original, decoded)
	assert.Empty(t, decoded.ID)
	assert.Empty(t, decoded.CID)
}
