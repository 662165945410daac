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

package model

import "time"

// CircuitAliasConfig governs matching and validation for pushes into a circuit.
type CircuitAliasConfig struct {
	AdapterType        string   `json:"adapter_type"`
	RequireApproval    bool     `json:"require_approval"`
	RequiredCanonical  []string `json:"required_canonical"`
	RequiredContextual []string `json:"required_contextual"`
	AllowedNamespaces  []string `json:"allowed_namespaces,omitempty"`
	DefaultNamespace   string   `json:"default_namespace,omitempty"`
	AutoApplyNamespace bool     `json:"auto_apply_namespace"`
	UseFingerprint     bool     `json:"use_fingerprint"`
	StrictFormat       bool     `json:"strict_format"`
}

// Circuit is a permissioned namespace with its own matching policy and
// adapter configuration.
type Circuit struct {
	CircuitID   string             `json:"circuit_id"`
	CircuitName string             `json:"circuit_name"`
	OwnerID     string             `json:"owner_id"`
	Config      CircuitAliasConfig `json:"config"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// CreateCircuitRequest is the request body for creating a circuit.
type CreateCircuitRequest struct {
	CircuitName string             `json:"circuit_name"`
	Config      CircuitAliasConfig `json:"config"`
}
