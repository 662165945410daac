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

package identifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wso2/entity-tokenization-service/internal/system/constants"
)

func TestUnion_AppendOnly(t *testing.T) {
	existing := []Identifier{
		{Namespace: "bovino", Key: "sisbov", Value: "BR1234567890123", Kind: constants.KindCanonical},
		{Namespace: "bovino", Key: "ear_tag", Value: "A-17", Kind: constants.KindContextual},
	}
	incoming := []Identifier{
		{Namespace: "bovino", Key: "sisbov", Value: "BR1234567890123", Kind: constants.KindCanonical},
		{Namespace: "bovino", Key: "farm_code", Value: "F-9", Kind: constants.KindContextual},
	}

	merged := Union(existing, incoming)
	require.Len(t, merged, 3)

	// Every pre-existing tuple survives the union.
	for _, id := range existing {
		found := false
		for _, m := range merged {
			if m.Equal(id) {
				found = true
			}
		}
		assert.True(t, found, "identifier %s missing after union", id.Tuple())
	}
}

func TestUnion_DuplicateTuplesCollapse(t *testing.T) {
	a := Identifier{Namespace: "soja", Key: "lot", Value: "L-1", Kind: constants.KindContextual}
	merged := Union([]Identifier{a}, []Identifier{a, a})
	assert.Len(t, merged, 1)
}

func TestFingerprint_OrderIndependent(t *testing.T) {
	a := Identifier{Namespace: "bovino", Key: "sisbov", Value: "BR1234567890123", Kind: constants.KindCanonical}
	b := Identifier{Namespace: "bovino", Key: "ear_tag", Value: "A-17", Kind: constants.KindContextual}

	assert.Equal(t, Fingerprint([]Identifier{a, b}), Fingerprint([]Identifier{b, a}))
}

func TestFingerprint_Deterministic(t *testing.T) {
	ids := []Identifier{
		{Namespace: "bovino", Key: "ear_tag", Value: "A-17", Kind: constants.KindContextual},
	}
	first := Fingerprint(ids)
	second := Fingerprint(ids)
	assert.Equal(t, first, second)
	assert.Len(t, first, 64)
}

func TestFingerprint_SensitiveToValue(t *testing.T) {
	a := []Identifier{{Namespace: "bovino", Key: "ear_tag", Value: "A-17"}}
	b := []Identifier{{Namespace: "bovino", Key: "ear_tag", Value: "A-18"}}
	assert.NotEqual(t, Fingerprint(a), Fingerprint(b))
}

func TestLockKey_CanonicalOnly(t *testing.T) {
	canonical := Identifier{Namespace: "bovino", Key: "sisbov", Value: "BR1234567890123", Kind: constants.KindCanonical}
	contextual := Identifier{Namespace: "bovino", Key: "ear_tag", Value: "A-17", Kind: constants.KindContextual}

	// Contextual identifiers do not influence the key when a canonical one exists.
	withBoth := LockKey([]Identifier{canonical, contextual})
	canonicalOnly := LockKey([]Identifier{canonical})
	assert.Equal(t, canonicalOnly, withBoth)

	// Without canonical evidence the full set is used.
	contextualOnly := LockKey([]Identifier{contextual})
	assert.NotEqual(t, canonicalOnly, contextualOnly)
}

func TestValidateFormat(t *testing.T) {
	assert.True(t, ValidateFormat("sisbov", "BR1234567890123"))
	assert.False(t, ValidateFormat("sisbov", "XX123"))

	// Unknown keys pass without a registered validator.
	assert.True(t, ValidateFormat("unknown_key", "anything"))
	assert.False(t, HasFormat("unknown_key"))
	assert.NotEmpty(t, FormatPattern("sisbov"))
}
