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

package identifier

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"

	"github.com/wso2/entity-tokenization-service/internal/system/constants"
)

// Identifier is a typed key/value descriptor for an entity. The comparison
// unit for matching is the exact (namespace, key, value) triple; identifiers
// are immutable once accepted.
type Identifier struct {
	Namespace string                 `json:"namespace" bson:"namespace"`
	Key       string                 `json:"key" bson:"key"`
	Value     string                 `json:"value" bson:"value"`
	Kind      string                 `json:"kind" bson:"kind"`
	Metadata  map[string]interface{} `json:"metadata,omitempty" bson:"metadata,omitempty"`
}

// IsCanonical reports whether the identifier is registry-unique.
func (i Identifier) IsCanonical() bool {
	return i.Kind == constants.KindCanonical
}

// Tuple returns the (namespace, key, value) comparison unit.
func (i Identifier) Tuple() string {
	return i.Namespace + "|" + i.Key + "|" + i.Value
}

// Equal reports whether two identifiers denote the same tuple. Kind and
// metadata do not participate in matching.
func (i Identifier) Equal(other Identifier) bool {
	return i.Namespace == other.Namespace && i.Key == other.Key && i.Value == other.Value
}

// Union returns the append-only set union of two identifier slices, keyed by
// tuple. Identifiers from the first slice are never dropped or modified.
func Union(existing, incoming []Identifier) []Identifier {

	seen := make(map[string]bool, len(existing))
	merged := make([]Identifier, 0, len(existing)+len(incoming))
	for _, id := range existing {
		seen[id.Tuple()] = true
		merged = append(merged, id)
	}
	for _, id := range incoming {
		if !seen[id.Tuple()] {
			seen[id.Tuple()] = true
			merged = append(merged, id)
		}
	}
	return merged
}

// Fingerprint computes the deterministic hash over the sorted tuples of the
// identifier set. It is a pure function of the identifiers so that the same
// set always yields the same fingerprint across requests.
func Fingerprint(identifiers []Identifier) string {

	tuples := make([]string, 0, len(identifiers))
	for _, id := range identifiers {
		tuples = append(tuples, id.Tuple())
	}
	sort.Strings(tuples)

	sum := sha256.Sum256([]byte(strings.Join(tuples, "\n")))
	return hex.EncodeToString(sum[:])
}

// LockKey derives the serialization key for identity resolution from the
// canonical tuples of the set, falling back to all tuples when no canonical
// identifier is present. Two pushes describing the same entity produce the
// same key and are serialized against each other.
func LockKey(identifiers []Identifier) string {

	var tuples []string
	for _, id := range identifiers {
		if id.IsCanonical() {
			tuples = append(tuples, id.Tuple())
		}
	}
	if len(tuples) == 0 {
		for _, id := range identifiers {
			tuples = append(tuples, id.Tuple())
		}
	}
	sort.Strings(tuples)

	sum := sha256.Sum256([]byte(strings.Join(tuples, "\n")))
	return hex.EncodeToString(sum[:16])
}
