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
	"regexp"
	"sync"
)

// Format validators are registered per canonical key name. Unknown canonical
// keys are accepted without format checking unless the circuit opts into
// strict mode.

var (
	formatRegistry   = make(map[string]*regexp.Regexp)
	formatRegistryMu sync.RWMutex
)

func init() {
	// Registries known out of the box.
	MustRegisterFormat("sisbov", `^BR\d{13}$`)
	MustRegisterFormat("devon", `^[A-Z]{2}\d{9}$`)
}

// RegisterFormat registers a format validator for a canonical key.
func RegisterFormat(key, pattern string) error {

	re, err := regexp.Compile(pattern)
	if err != nil {
		return err
	}
	formatRegistryMu.Lock()
	defer formatRegistryMu.Unlock()
	formatRegistry[key] = re
	return nil
}

// MustRegisterFormat registers a format validator and panics on an invalid pattern.
func MustRegisterFormat(key, pattern string) {

	if err := RegisterFormat(key, pattern); err != nil {
		panic(err)
	}
}

// HasFormat reports whether a validator is registered for the key.
func HasFormat(key string) bool {

	formatRegistryMu.RLock()
	defer formatRegistryMu.RUnlock()
	_, ok := formatRegistry[key]
	return ok
}

// ValidateFormat checks a value against the registered pattern for the key.
// Keys without a registered validator pass.
func ValidateFormat(key, value string) bool {

	formatRegistryMu.RLock()
	re, ok := formatRegistry[key]
	formatRegistryMu.RUnlock()
	if !ok {
		return true
	}
	return re.MatchString(value)
}

// FormatPattern returns the registered pattern for the key, for echoing back
// in validation errors.
func FormatPattern(key string) string {

	formatRegistryMu.RLock()
	defer formatRegistryMu.RUnlock()
	if re, ok := formatRegistry[key]; ok {
		return re.String()
	}
	return ""
}
