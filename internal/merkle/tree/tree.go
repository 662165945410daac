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

// Package tree implements the binary SHA-256 Merkle tree used for audit
// proofs. An odd node at any level is promoted unchanged to the level
// above, so a single-leaf tree's root equals its leaf hash.
package tree

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
)

// Step positions, from the verifier's point of view: the sibling hash sits
// to the left or right of the running hash.
const (
	PositionLeft  = "left"
	PositionRight = "right"
)

// Step is one level of an inclusion proof.
type Step struct {
	Hash     string `json:"hash"`
	Position string `json:"position"`
}

var errLeafNotFound = errors.New("leaf not present in tree")

// HashLeaf hashes raw leaf content into the hex form stored at level zero.
func HashLeaf(content []byte) string {

	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// BuildRoot computes the root over the given leaf hashes. The empty tree
// has an empty root.
func BuildRoot(leaves []string) string {

	if len(leaves) == 0 {
		return ""
	}
	level := append([]string(nil), leaves...)
	for len(level) > 1 {
		level = nextLevel(level)
	}
	return level[0]
}

// Prove builds the inclusion proof for the given leaf hash. The proof
// lists sibling hashes bottom-up.
func Prove(leaves []string, leafHash string) ([]Step, error) {

	index := -1
	for i, leaf := range leaves {
		if leaf == leafHash {
			index = i
			break
		}
	}
	if index < 0 {
		return nil, errLeafNotFound
	}

	steps := []Step{}
	level := append([]string(nil), leaves...)
	for len(level) > 1 {
		if index%2 == 0 {
			if index+1 < len(level) {
				steps = append(steps, Step{Hash: level[index+1], Position: PositionRight})
			}
			// Odd node with no sibling is promoted; no step recorded.
		} else {
			steps = append(steps, Step{Hash: level[index-1], Position: PositionLeft})
		}
		index /= 2
		level = nextLevel(level)
	}
	return steps, nil
}

// Verify recomputes the root from a leaf hash and proof steps and compares
// it against the expected root.
func Verify(leafHash string, steps []Step, root string) bool {

	if leafHash == "" || root == "" {
		return false
	}
	current := leafHash
	for _, step := range steps {
		switch step.Position {
		case PositionLeft:
			current = hashPair(step.Hash, current)
		case PositionRight:
			current = hashPair(current, step.Hash)
		default:
			return false
		}
	}
	return current == root
}

func nextLevel(level []string) []string {

	next := make([]string, 0, (len(level)+1)/2)
	for i := 0; i < len(level); i += 2 {
		if i+1 < len(level) {
			next = append(next, hashPair(level[i], level[i+1]))
		} else {
			next = append(next, level[i])
		}
	}
	return next
}

func hashPair(left, right string) string {

	sum := sha256.Sum256([]byte(left + right))
	return hex.EncodeToString(sum[:])
}
