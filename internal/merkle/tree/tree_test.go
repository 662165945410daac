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

package tree

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeLeaves(count int) []string {

	leaves := make([]string, count)
	for i := range leaves {
		leaves[i] = HashLeaf([]byte(fmt.Sprintf("leaf-%d", i)))
	}
	return leaves
}

func TestBuildRootEmptyTree(t *testing.T) {

	assert.Equal(t, "", BuildRoot(nil))
}

func TestBuildRootSingleLeafEqualsLeaf(t *testing.T) {

	leaf := HashLeaf([]byte("only"))
	assert.Equal(t, leaf, BuildRoot([]string{leaf}))
}

func TestBuildRootIsDeterministic(t *testing.T) {

	leaves := makeLeaves(5)
	assert.Equal(t, BuildRoot(leaves), BuildRoot(leaves))
}

func TestBuildRootIsOrderSensitive(t *testing.T) {

	leaves := makeLeaves(4)
	swapped := []string{leaves[1], leaves[0], leaves[2], leaves[3]}
	assert.NotEqual(t, BuildRoot(leaves), BuildRoot(swapped))
}

func TestProveAndVerifyEveryLeaf(t *testing.T) {

	for _, count := range []int{1, 2, 3, 4, 5, 8, 13} {
		leaves := makeLeaves(count)
		root := BuildRoot(leaves)
		for _, leaf := range leaves {
			steps, err := Prove(leaves, leaf)
			require.NoError(t, err, "count=%d", count)
			assert.True(t, Verify(leaf, steps, root), "count=%d leaf=%s", count, leaf)
		}
	}
}

func TestProveUnknownLeaf(t *testing.T) {

	leaves := makeLeaves(4)
	_, err := Prove(leaves, HashLeaf([]byte("stranger")))
	assert.Error(t, err)
}

func TestVerifyRejectsTamperedLeaf(t *testing.T) {

	leaves := makeLeaves(6)
	root := BuildRoot(leaves)
	steps, err := Prove(leaves, leaves[2])
	require.NoError(t, err)

	assert.False(t, Verify(leaves[3], steps, root))
	assert.False(t, Verify(HashLeaf([]byte("forged")), steps, root))
}

func TestVerifyRejectsTamperedStep(t *testing.T) {

	leaves := makeLeaves(6)
	root := BuildRoot(leaves)
	steps, err := Prove(leaves, leaves[0])
	require.NoError(t, err)
	require.NotEmpty(t, steps)

	steps[0].Hash = HashLeaf([]byte("forged"))
	assert.False(t, Verify(leaves[0], steps, root))
}

func TestVerifyRejectsWrongRoot(t *testing.T) {

	leaves := makeLeaves(3)
	steps, err := Prove(leaves, leaves[1])
	require.NoError(t, err)

	assert.False(t, Verify(leaves[1], steps, HashLeaf([]byte("other-root"))))
}

func TestVerifyRejectsInvalidPosition(t *testing.T) {

	leaves := makeLeaves(2)
	root := BuildRoot(leaves)
	steps := []Step{{Hash: leaves[1], Position: "up"}}
	assert.False(t, Verify(leaves[0], steps, root))
}

func TestVerifyRejectsEmptyInputs(t *testing.T) {

	assert.False(t, Verify("", nil, "root"))
	assert.False(t, Verify("leaf", nil, ""))
}
