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

package policy

import (
	"fmt"
	"net/http"

	"github.com/wso2/entity-tokenization-service/internal/circuit/model"
	"github.com/wso2/entity-tokenization-service/internal/identifier"
	errors2 "github.com/wso2/entity-tokenization-service/internal/system/errors"
)

// Validate checks a candidate identifier set against a circuit's alias
// configuration and returns the namespace-stamped set. It runs before any
// mutation, has no side effects, and is idempotent.
func Validate(config model.CircuitAliasConfig, identifiers []identifier.Identifier) ([]identifier.Identifier, error) {

	stamped := make([]identifier.Identifier, len(identifiers))
	copy(stamped, identifiers)

	// Stamp missing namespaces with the circuit default.
	if config.AutoApplyNamespace && config.DefaultNamespace != "" {
		for i := range stamped {
			if stamped[i].Namespace == "" {
				stamped[i].Namespace = config.DefaultNamespace
			}
		}
	}

	// Namespace allow-list.
	if len(config.AllowedNamespaces) > 0 {
		allowed := make(map[string]bool, len(config.AllowedNamespaces))
		for _, ns := range config.AllowedNamespaces {
			allowed[ns] = true
		}
		for _, id := range stamped {
			if !allowed[id.Namespace] {
				return nil, errors2.NewClientErrorWithContext(errors2.ErrorMessage{
					Code:        errors2.NAMESPACE_NOT_ALLOWED.Code,
					Message:     errors2.NAMESPACE_NOT_ALLOWED.Message,
					Description: fmt.Sprintf("Namespace %q is not allowed in this circuit.", id.Namespace),
				}, http.StatusBadRequest, map[string]interface{}{
					"namespace":          id.Namespace,
					"allowed_namespaces": config.AllowedNamespaces,
				})
			}
		}
	}

	// Required canonical and contextual keys.
	if err := checkRequiredKeys(stamped, config.RequiredCanonical, true); err != nil {
		return nil, err
	}
	if err := checkRequiredKeys(stamped, config.RequiredContextual, false); err != nil {
		return nil, err
	}

	// Registry format validation for canonical identifiers. Strict mode
	// additionally rejects canonical keys without a registered validator.
	for _, id := range stamped {
		if !id.IsCanonical() {
			continue
		}
		if !identifier.HasFormat(id.Key) {
			if config.StrictFormat {
				return nil, errors2.NewClientErrorWithContext(errors2.ErrorMessage{
					Code:        errors2.IDENTIFIER_FORMAT_INVALID.Code,
					Message:     errors2.IDENTIFIER_FORMAT_INVALID.Message,
					Description: fmt.Sprintf("No registry format is known for canonical key %q and the circuit requires strict format checking.", id.Key),
				}, http.StatusBadRequest, map[string]interface{}{"key": id.Key})
			}
			continue
		}
		if !identifier.ValidateFormat(id.Key, id.Value) {
			return nil, errors2.NewClientErrorWithContext(errors2.ErrorMessage{
				Code:        errors2.IDENTIFIER_FORMAT_INVALID.Code,
				Message:     errors2.IDENTIFIER_FORMAT_INVALID.Message,
				Description: fmt.Sprintf("Value %q for key %q does not match the registry format.", id.Value, id.Key),
			}, http.StatusBadRequest, map[string]interface{}{
				"key":              id.Key,
				"value":            id.Value,
				"expected_pattern": identifier.FormatPattern(id.Key),
			})
		}
	}

	return stamped, nil
}

func checkRequiredKeys(identifiers []identifier.Identifier, required []string, canonical bool) error {

	for _, key := range required {
		found := false
		for _, id := range identifiers {
			if id.Key == key && id.IsCanonical() == canonical {
				found = true
				break
			}
		}
		if !found {
			kind := "contextual"
			if canonical {
				kind = "canonical"
			}
			return errors2.NewClientErrorWithContext(errors2.ErrorMessage{
				Code:        errors2.REQUIRED_IDENTIFIER_MISSING.Code,
				Message:     errors2.REQUIRED_IDENTIFIER_MISSING.Message,
				Description: fmt.Sprintf("Required %s identifier %q is missing.", kind, key),
			}, http.StatusBadRequest, map[string]interface{}{
				"missing_key": key,
				"kind":        kind,
			})
		}
	}
	return nil
}
