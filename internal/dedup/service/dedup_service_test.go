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
	"github.com/wso2/entity-tokenization-service/internal/circuit/model"
	dedupmodel "github.com/wso2/entity-tokenization-service/internal/dedup/model"
	"github.com/wso2/entity-tokenization-service/internal/identifier"
	"github.com/wso2/entity-tokenization-service/internal/system/constants"
	"github.com/wso2/entity-tokenization-service/internal/system/log"
)

func TestMain(m *testing.M) {

	_ = log.Init("ERROR")
	m.Run()
}

func newTestService(byIdentifier map[string][]string, byFingerprint map[string]string) *DedupService {

	return &DedupService{
		findByIdentifier: func(id identifier.Identifier) ([]string, error) {
			return byIdentifier[id.Tuple()], nil
		},
		findByFingerprint: func(circuitID, fingerprint string) (string, error) {
			return byFingerprint[fingerprint], nil
		},
	}
}

func canonical(ns, key, value string) identifier.Identifier {

	return identifier.Identifier{Namespace: ns, Key: key, Value: value, Kind: constants.KindCanonical}
}

func contextual(ns, key, value string) identifier.Identifier {

	return identifier.Identifier{Namespace: ns, Key: key, Value: value, Kind: constants.KindContextual}
}

func TestResolveCanonicalMatch(t *testing.T) {

	ids := []identifier.Identifier{canonical("gov.br", "sisbov", "BR1234567890123")}
	svc := newTestService(map[string][]string{
		ids[0].Tuple(): {"DFID-20260101-000001-AB12"},
	}, nil)

	resolution, err := svc.Resolve("circuit-1", model.CircuitAliasConfig{}, ids)
	require.NoError(t, err)
	assert.Equal(t, dedupmodel.ResolutionExistingIdentity, resolution.Kind)
	assert.Equal(t, "DFID-20260101-000001-AB12", resolution.DFID)
	assert.Equal(t, dedupmodel.MatchSourceCanonical, resolution.Source)
}

func TestResolveSameDfidAcrossIdentifiersIsNotAmbiguous(t *testing.T) {

	ids := []identifier.Identifier{
		canonical("gov.br", "sisbov", "BR1234567890123"),
		canonical("coop", "ear_tag", "ET-42"),
	}
	svc := newTestService(map[string][]string{
		ids[0].Tuple(): {"DFID-20260101-000001-AB12"},
		ids[1].Tuple(): {"DFID-20260101-000001-AB12"},
	}, nil)

	resolution, err := svc.Resolve("circuit-1", model.CircuitAliasConfig{}, ids)
	require.NoError(t, err)
	assert.Equal(t, dedupmodel.ResolutionExistingIdentity, resolution.Kind)
	assert.Equal(t, "DFID-20260101-000001-AB12", resolution.DFID)
}

func TestResolveAmbiguousMatch(t *testing.T) {

	ids := []identifier.Identifier{
		canonical("gov.br", "sisbov", "BR1234567890123"),
		canonical("coop", "ear_tag", "ET-42"),
	}
	svc := newTestService(map[string][]string{
		ids[0].Tuple(): {"DFID-20260101-000002-CD34"},
		ids[1].Tuple(): {"DFID-20260101-000001-AB12"},
	}, nil)

	resolution, err := svc.Resolve("circuit-1", model.CircuitAliasConfig{}, ids)
	require.NoError(t, err)
	assert.Equal(t, dedupmodel.ResolutionAmbiguousMatch, resolution.Kind)
	assert.Empty(t, resolution.DFID)
	assert.Equal(t, []string{"DFID-20260101-000001-AB12", "DFID-20260101-000002-CD34"}, resolution.Candidates)
}

func TestResolveContextualIdentifiersNeverMatchDirectly(t *testing.T) {

	ids := []identifier.Identifier{contextual("farm-9", "internal_id", "row-17")}
	svc := newTestService(map[string][]string{
		ids[0].Tuple(): {"DFID-20260101-000001-AB12"},
	}, nil)

	resolution, err := svc.Resolve("circuit-1", model.CircuitAliasConfig{}, ids)
	require.NoError(t, err)
	assert.Equal(t, dedupmodel.ResolutionNewIdentity, resolution.Kind)
}

func TestResolveFingerprintFallback(t *testing.T) {

	ids := []identifier.Identifier{contextual("farm-9", "internal_id", "row-17")}
	svc := newTestService(nil, map[string]string{
		identifier.Fingerprint(ids): "DFID-20260101-000003-EF56",
	})

	resolution, err := svc.Resolve("circuit-1", model.CircuitAliasConfig{UseFingerprint: true}, ids)
	require.NoError(t, err)
	assert.Equal(t, dedupmodel.ResolutionExistingIdentity, resolution.Kind)
	assert.Equal(t, "DFID-20260101-000003-EF56", resolution.DFID)
	assert.Equal(t, dedupmodel.MatchSourceFingerprint, resolution.Source)
}

func TestResolveFingerprintDisabledByDefault(t *testing.T) {

	ids := []identifier.Identifier{contextual("farm-9", "internal_id", "row-17")}
	svc := newTestService(nil, map[string]string{
		identifier.Fingerprint(ids): "DFID-20260101-000003-EF56",
	})

	resolution, err := svc.Resolve("circuit-1", model.CircuitAliasConfig{}, ids)
	require.NoError(t, err)
	assert.Equal(t, dedupmodel.ResolutionNewIdentity, resolution.Kind)
	assert.Equal(t, dedupmodel.MatchSourceNone, resolution.Source)
}

func TestResolveCanonicalMatchShadowsFingerprint(t *testing.T) {

	ids := []identifier.Identifier{canonical("gov.br", "sisbov", "BR1234567890123")}
	svc := newTestService(map[string][]string{
		ids[0].Tuple(): {"DFID-20260101-000001-AB12"},
	}, map[string]string{
		identifier.Fingerprint(ids): "DFID-20260101-000009-ZZ99",
	})

	resolution, err := svc.Resolve("circuit-1", model.CircuitAliasConfig{UseFingerprint: true}, ids)
	require.NoError(t, err)
	assert.Equal(t, "DFID-20260101-000001-AB12", resolution.DFID)
	assert.Equal(t, dedupmodel.MatchSourceCanonical, resolution.Source)
}

func TestResolveNoMatch(t *testing.T) {

	ids := []identifier.Identifier{canonical("gov.br", "sisbov", "BR1234567890123")}
	svc := newTestService(nil, nil)

	resolution, err := svc.Resolve("circuit-1", model.CircuitAliasConfig{UseFingerprint: true}, ids)
	require.NoError(t, err)
	assert.Equal(t, dedupmodel.ResolutionNewIdentity, resolution.Kind)
	assert.Empty(t, resolution.DFID)
}
