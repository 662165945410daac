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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	circuitmodel "github.com/wso2/entity-tokenization-service/internal/circuit/model"
	"github.com/wso2/entity-tokenization-service/internal/circuit/policy"
	"github.com/wso2/entity-tokenization-service/internal/identifier"
	"github.com/wso2/entity-tokenization-service/internal/system/constants"
	"github.com/wso2/entity-tokenization-service/internal/system/log"
)

func TestMain(m *testing.M) {

	_ = log.Init("ERROR")
	m.Run()
}

func TestMergeDataOverlaysIncomingKeys(t *testing.T) {

	base := map[string]interface{}{"name": "Acme", "country": "LK"}
	incoming := map[string]interface{}{"name": "Acme Corp", "sector": "retail"}

	merged := mergeData(base, incoming)

	assert.Equal(t, "Acme Corp", merged["name"])
	assert.Equal(t, "LK", merged["country"])
	assert.Equal(t, "retail", merged["sector"])
}

func TestMergeDataNeverRemovesKeys(t *testing.T) {

	base := map[string]interface{}{"name": "Acme", "country": "LK"}

	merged := mergeData(base, map[string]interface{}{})
	assert.Len(t, merged, 2)

	merged = mergeData(base, nil)
	assert.Len(t, merged, 2)
}

func TestMergeDataDoesNotMutateInputs(t *testing.T) {

	base := map[string]interface{}{"name": "Acme"}
	incoming := map[string]interface{}{"name": "Acme Corp"}

	_ = mergeData(base, incoming)

	assert.Equal(t, "Acme", base["name"])
}

func TestMergeDataHandlesNilBase(t *testing.T) {

	merged := mergeData(nil, map[string]interface{}{"name": "Acme"})
	assert.Equal(t, "Acme", merged["name"])
}

func TestIdentityLockKeyUsesStampedIdentifiers(t *testing.T) {

	config := circuitmodel.CircuitAliasConfig{
		DefaultNamespace:   "bovino",
		AutoApplyNamespace: true,
	}
	raw := []identifier.Identifier{
		{Key: "sisbov", Value: "BR1234567890123", Kind: constants.KindCanonical},
	}

	stamped, err := policy.Validate(config, raw)
	require.NoError(t, err)

	// Namespace stamping changes the lock key, so pushes and conflict
	// resolutions must both derive it from the policy-stamped set.
	assert.NotEqual(t, identifier.LockKey(raw), identifier.LockKey(stamped))

	// Stamping is idempotent: re-validating yields the same key.
	again, err := policy.Validate(config, stamped)
	require.NoError(t, err)
	assert.Equal(t, identifier.LockKey(stamped), identifier.LockKey(again))
}

func TestContainsString(t *testing.T) {

	candidates := []string{"DFID-20260101-000001-AB12", "DFID-20260101-000002-CD34"}

	assert.True(t, containsString(candidates, "DFID-20260101-000002-CD34"))
	assert.False(t, containsString(candidates, "DFID-20260101-000003-EF56"))
	assert.False(t, containsString(nil, "DFID-20260101-000001-AB12"))
}
