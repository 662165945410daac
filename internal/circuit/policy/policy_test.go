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

package policy

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wso2/entity-tokenization-service/internal/circuit/model"
	"github.com/wso2/entity-tokenization-service/internal/identifier"
	"github.com/wso2/entity-tokenization-service/internal/system/constants"
	"github.com/wso2/entity-tokenization-service/internal/system/errors"
	"github.com/wso2/entity-tokenization-service/internal/system/log"
)

func TestMain(m *testing.M) {
	_ = log.Init("ERROR")
	os.Exit(m.Run())
}

func sisbov(value string) identifier.Identifier {
	return identifier.Identifier{Namespace: "bovino", Key: "sisbov", Value: value, Kind: constants.KindCanonical}
}

func TestValidate_NamespaceStamping(t *testing.T) {
	config := model.CircuitAliasConfig{
		AutoApplyNamespace: true,
		DefaultNamespace:   "bovino",
	}
	ids := []identifier.Identifier{
		{Key: "ear_tag", Value: "A-17", Kind: constants.KindContextual},
	}

	stamped, err := Validate(config, ids)
	require.NoError(t, err)
	assert.Equal(t, "bovino", stamped[0].Namespace)

	// The input slice is not mutated.
	assert.Empty(t, ids[0].Namespace)
}

func TestValidate_NamespaceNotAllowed(t *testing.T) {
	config := model.CircuitAliasConfig{
		AllowedNamespaces: []string{"bovino"},
	}
	ids := []identifier.Identifier{
		{Namespace: "soja", Key: "lot", Value: "L-1", Kind: constants.KindContextual},
	}

	_, err := Validate(config, ids)
	require.Error(t, err)
	clientErr, ok := err.(*errors.ClientError)
	require.True(t, ok)
	assert.Equal(t, errors.NAMESPACE_NOT_ALLOWED.Code, clientErr.ErrorMessage.Code)
	assert.Equal(t, "soja", clientErr.Context["namespace"])
}

func TestValidate_RequiredCanonicalMissing(t *testing.T) {
	config := model.CircuitAliasConfig{
		RequiredCanonical: []string{"sisbov"},
	}
	ids := []identifier.Identifier{
		{Namespace: "bovino", Key: "ear_tag", Value: "A-17", Kind: constants.KindContextual},
	}

	_, err := Validate(config, ids)
	require.Error(t, err)
	clientErr, ok := err.(*errors.ClientError)
	require.True(t, ok)
	assert.Equal(t, errors.REQUIRED_IDENTIFIER_MISSING.Code, clientErr.ErrorMessage.Code)
	assert.Equal(t, "sisbov", clientErr.Context["missing_key"])
}

func TestValidate_RequiredKeyWrongKind(t *testing.T) {
	// A contextual identifier with the right key does not satisfy a
	// required canonical key.
	config := model.CircuitAliasConfig{
		RequiredCanonical: []string{"sisbov"},
	}
	ids := []identifier.Identifier{
		{Namespace: "bovino", Key: "sisbov", Value: "BR1234567890123", Kind: constants.KindContextual},
	}

	_, err := Validate(config, ids)
	require.Error(t, err)
}

func TestValidate_FormatViolation(t *testing.T) {
	config := model.CircuitAliasConfig{
		RequiredCanonical: []string{"sisbov"},
	}
	ids := []identifier.Identifier{sisbov("NOT-A-SISBOV")}

	_, err := Validate(config, ids)
	require.Error(t, err)
	clientErr, ok := err.(*errors.ClientError)
	require.True(t, ok)
	assert.Equal(t, errors.IDENTIFIER_FORMAT_INVALID.Code, clientErr.ErrorMessage.Code)
	assert.NotEmpty(t, clientErr.Context["expected_pattern"])
}

func TestValidate_StrictFormatRejectsUnknownCanonicalKey(t *testing.T) {
	config := model.CircuitAliasConfig{StrictFormat: true}
	ids := []identifier.Identifier{
		{Namespace: "bovino", Key: "mystery_registry", Value: "X1", Kind: constants.KindCanonical},
	}

	_, err := Validate(config, ids)
	require.Error(t, err)

	// Without strict mode the unknown key passes.
	config.StrictFormat = false
	_, err = Validate(config, ids)
	assert.NoError(t, err)
}

func TestValidate_HappyPath(t *testing.T) {
	config := model.CircuitAliasConfig{
		RequiredCanonical:  []string{"sisbov"},
		RequiredContextual: []string{"ear_tag"},
		AllowedNamespaces:  []string{"bovino"},
		UseFingerprint:     true,
	}
	ids := []identifier.Identifier{
		sisbov("BR1234567890123"),
		{Namespace: "bovino", Key: "ear_tag", Value: "A-17", Kind: constants.KindContextual},
	}

	stamped, err := Validate(config, ids)
	require.NoError(t, err)
	assert.Len(t, stamped, 2)
}

func TestValidate_Idempotent(t *testing.T) {
	config := model.CircuitAliasConfig{
		AutoApplyNamespace: true,
		DefaultNamespace:   "bovino",
		RequiredCanonical:  []string{"sisbov"},
	}
	ids := []identifier.Identifier{sisbov("BR1234567890123")}

	first, err := Validate(config, ids)
	require.NoError(t, err)
	second, err := Validate(config, first)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
