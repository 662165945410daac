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

package lock

import (
	"github.com/wso2/entity-tokenization-service/internal/system/config"
)

// DistributedLock guards identity-key resolution so that two concurrent pushes
// carrying the same canonical identifiers cannot both mint a DFID.
type DistributedLock interface {
	Acquire(key string) (bool, error)
	Release(key string) error
}

// NewDistributedLock selects the lock backend from the deployment configuration.
// Postgres advisory locks are the default; Redis is available for deployments
// that already run one.
func NewDistributedLock() DistributedLock {

	if config.GetETSRuntime().Config.Lock.Provider == "redis" {
		return NewRedisLock()
	}
	return NewPostgresLock()
}
