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
	"sort"

	"github.com/wso2/entity-tokenization-service/internal/circuit/model"
	dedupmodel "github.com/wso2/entity-tokenization-service/internal/dedup/model"
	"github.com/wso2/entity-tokenization-service/internal/identifier"
	itemstore "github.com/wso2/entity-tokenization-service/internal/item/store"
	"github.com/wso2/entity-tokenization-service/internal/system/log"
	"github.com/wso2/entity-tokenization-service/internal/system/metrics"
)

// DedupServiceInterface resolves an identifier set to an identity decision.
type DedupServiceInterface interface {
	Resolve(circuitID string, config model.CircuitAliasConfig, identifiers []identifier.Identifier) (*dedupmodel.Resolution, error)
}

// DedupService is the default implementation. The lookup functions default
// to the item store and are replaceable in tests.
type DedupService struct {
	findByIdentifier  func(id identifier.Identifier) ([]string, error)
	findByFingerprint func(circuitID, fingerprint string) (string, error)
}

func NewDedupService() *DedupService {
	return &DedupService{
		findByIdentifier:  itemstore.FindDfidsByIdentifier,
		findByFingerprint: itemstore.FindDfidByCircuitFingerprint,
	}
}

// Resolve applies the matching rules in strict priority order: canonical
// match, then circuit-scoped fingerprint match, then new identity. It is
// read-only and safe to call speculatively from retries.
func (s *DedupService) Resolve(circuitID string, config model.CircuitAliasConfig,
	identifiers []identifier.Identifier) (*dedupmodel.Resolution, error) {

	logger := log.GetLogger()

	// Canonical match across all canonical identifiers in the input.
	matched := map[string]bool{}
	for _, id := range identifiers {
		if !id.IsCanonical() {
			continue
		}
		dfids, err := s.findByIdentifier(id)
		if err != nil {
			return nil, err
		}
		for _, dfid := range dfids {
			matched[dfid] = true
		}
	}

	if len(matched) == 1 {
		for dfid := range matched {
			metrics.DedupResolutionsTotal.WithLabelValues(dedupmodel.MatchSourceCanonical).Inc()
			return &dedupmodel.Resolution{
				Kind:   dedupmodel.ResolutionExistingIdentity,
				DFID:   dfid,
				Source: dedupmodel.MatchSourceCanonical,
			}, nil
		}
	}
	if len(matched) > 1 {
		candidates := make([]string, 0, len(matched))
		for dfid := range matched {
			candidates = append(candidates, dfid)
		}
		sort.Strings(candidates)
		logger.Warn("Canonical evidence links multiple existing items",
			log.String("circuit_id", circuitID), log.Any("candidates", candidates))
		return &dedupmodel.Resolution{
			Kind:       dedupmodel.ResolutionAmbiguousMatch,
			Source:     dedupmodel.MatchSourceCanonical,
			Candidates: candidates,
		}, nil
	}

	// Circuit-scoped fingerprint match.
	if config.UseFingerprint {
		fingerprint := identifier.Fingerprint(identifiers)
		dfid, err := s.findByFingerprint(circuitID, fingerprint)
		if err != nil {
			return nil, err
		}
		if dfid != "" {
			metrics.DedupResolutionsTotal.WithLabelValues(dedupmodel.MatchSourceFingerprint).Inc()
			return &dedupmodel.Resolution{
				Kind:   dedupmodel.ResolutionExistingIdentity,
				DFID:   dfid,
				Source: dedupmodel.MatchSourceFingerprint,
			}, nil
		}
	}

	metrics.DedupResolutionsTotal.WithLabelValues(dedupmodel.MatchSourceNone).Inc()
	return &dedupmodel.Resolution{
		Kind:   dedupmodel.ResolutionNewIdentity,
		Source: dedupmodel.MatchSourceNone,
	}, nil
}
