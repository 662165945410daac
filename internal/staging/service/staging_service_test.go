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

package service

import (
	"net/http"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wso2/entity-tokenization-service/internal/identifier"
	"github.com/wso2/entity-tokenization-service/internal/staging/model"
	"github.com/wso2/entity-tokenization-service/internal/system/constants"
	"github.com/wso2/entity-tokenization-service/internal/system/errors"
	"github.com/wso2/entity-tokenization-service/internal/system/log"
)

func TestMain(m *testing.M) {
	_ = log.Init("ERROR")
	os.Exit(m.Run())
}

// ---------------------------------------------------------------------------
// CreateLocalRecord – early-return validation (no DB required)
// ---------------------------------------------------------------------------

func TestCreateLocalRecord_NoIdentifiers_Rejected(t *testing.T) {
	svc := &StagingService{}
	_, err := svc.CreateLocalRecord("ws1", "user1", model.CreateLocalRecordRequest{})
	require.Error(t, err)

	clientErr, ok := err.(*errors.ClientError)
	require.True(t, ok, "expected a ClientError")
	assert.Equal(t, http.StatusBadRequest, clientErr.StatusCode)
	assert.Equal(t, errors.IDENTIFIERS_REQUIRED.Code, clientErr.ErrorMessage.Code)
}

func TestCreateLocalRecord_EmptyIdentifierValue_Rejected(t *testing.T) {
	svc := &StagingService{}
	req := model.CreateLocalRecordRequest{
		Identifiers: []identifier.Identifier{
			{Namespace: "bovino", Key: "sisbov", Value: "", Kind: constants.KindCanonical},
		},
	}
	_, err := svc.CreateLocalRecord("ws1", "user1", req)
	require.Error(t, err)

	clientErr, ok := err.(*errors.ClientError)
	require.True(t, ok, "expected a ClientError")
	assert.Equal(t, http.StatusBadRequest, clientErr.StatusCode)
}

// ---------------------------------------------------------------------------
// Merge helpers
// ---------------------------------------------------------------------------

func TestMergeDataPreferTarget(t *testing.T) {
	target := map[string]interface{}{"breed": "nelore", "weight": 410}
	source := map[string]interface{}{"weight": 395, "farm": "sao-joao"}

	merged := mergeDataPreferTarget(target, source)
	assert.Equal(t, "nelore", merged["breed"])
	assert.Equal(t, 410, merged["weight"], "target value must win on shared keys")
	assert.Equal(t, "sao-joao", merged["farm"])
}

func TestWithdrawIdentifiers(t *testing.T) {
	shared := identifier.Identifier{Namespace: "bovino", Key: "sisbov", Value: "BR1234567890123"}
	own := identifier.Identifier{Namespace: "bovino", Key: "ear_tag", Value: "A-17"}
	contributed := identifier.Identifier{Namespace: "bovino", Key: "farm_code", Value: "F-9"}

	target := []identifier.Identifier{shared, own, contributed}
	source := []identifier.Identifier{contributed}

	kept := withdrawIdentifiers(target, source)
	require.Len(t, kept, 2)
	assert.True(t, kept[0].Equal(shared))
	assert.True(t, kept[1].Equal(own))
}

func TestWithdrawData_RemovesOnlyMatchingValues(t *testing.T) {
	target := map[string]interface{}{"breed": "nelore", "farm": "sao-joao"}
	source := map[string]interface{}{"farm": "sao-joao", "breed": "angus"}

	kept := withdrawData(target, source)
	assert.Equal(t, "nelore", kept["breed"], "differing value means the target did not take it from the source")
	_, hasFarm := kept["farm"]
	assert.False(t, hasFarm)
}

func TestWithdrawData_ComparesValuesStructurally(t *testing.T) {
	// A string "12" and the number 12 render identically but are different
	// values; only the structurally equal key is withdrawn.
	target := map[string]interface{}{"weight": "12", "farm": "sao-joao"}
	source := map[string]interface{}{"weight": 12, "farm": "sao-joao"}

	kept := withdrawData(target, source)
	assert.Equal(t, "12", kept["weight"])
	_, hasFarm := kept["farm"]
	assert.False(t, hasFarm)
}

func TestRemoveString(t *testing.T) {
	assert.Equal(t, []string{"a", "c"}, removeString([]string{"a", "b", "c"}, "b"))
	assert.Empty(t, removeString([]string{"x"}, "x"))
}
