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

package config

import "sync"

// ETSRuntime holds the runtime configuration for the tokenization server.
type ETSRuntime struct {
	ETSHome string `yaml:"ets_home"`
	Config  Config `yaml:"config"`
}

var (
	runtimeConfig *ETSRuntime
	once          sync.Once
)

// InitializeETSRuntime initializes the ETSRuntime configuration.
func InitializeETSRuntime(etsHome string, config *Config) error {

	once.Do(func() {
		runtimeConfig = &ETSRuntime{
			ETSHome: etsHome,
			Config:  *config,
		}
	})

	return nil
}

// GetETSRuntime returns the ETSRuntime configuration.
func GetETSRuntime() *ETSRuntime {

	if runtimeConfig == nil {
		panic("ETSRuntime is not initialized")
	}
	return runtimeConfig
}

// OverrideETSRuntime replaces the runtime configuration. Intended for tests.
func OverrideETSRuntime(config Config) {

	runtimeConfig = &ETSRuntime{Config: config}
}
