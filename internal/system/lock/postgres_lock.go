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
	"context"
	"database/sql"
	"hash/fnv"
	"os"
	"sync"

	"github.com/wso2/entity-tokenization-service/internal/system/database/provider"
	"github.com/wso2/entity-tokenization-service/internal/system/errors"
	"github.com/wso2/entity-tokenization-service/internal/system/log"
)

// PostgresLock implements DistributedLock using PostgreSQL advisory locks.
// Advisory locks are session-scoped, so every acquired key pins a dedicated
// connection that stays open until Release runs on that same session.
type PostgresLock struct {
	mu       sync.Mutex
	sessions map[string]*lockSession
}

// lockSession is the pinned connection holding one advisory lock.
type lockSession struct {
	db   *sql.DB
	conn *sql.Conn
}

// close returns the pinned connection to its pool. The pool is shared in
// TEST_MODE and must stay open.
func (s *lockSession) close() {
	_ = s.conn.Close()
	if os.Getenv("TEST_MODE") != "true" {
		_ = s.db.Close()
	}
}

func NewPostgresLock() *PostgresLock {
	return &PostgresLock{sessions: make(map[string]*lockSession)}
}

// Advisory locks take a bigint, so string keys are hashed down with FNV-1a.
func (l *PostgresLock) generateLockID(key string) int64 {

	h := fnv.New64a()
	_, _ = h.Write([]byte(key))
	return int64(h.Sum64())
}

func (l *PostgresLock) Acquire(key string) (bool, error) {

	logger := log.GetLogger()
	db, err := provider.NewDBProvider().GetRawDB()
	if err != nil {
		errorMsg := "Failed during DB pool creation for advisory lock acquiring."
		logger.Error(errorMsg, log.Error(err))
		return false, errors.NewServerError(errors.ErrorMessage{
			Code:        errors.DB_CLIENT_INIT.Code,
			Message:     errors.DB_CLIENT_INIT.Message,
			Description: errorMsg,
		}, err)
	}

	ctx := context.Background()
	conn, err := db.Conn(ctx)
	if err != nil {
		if os.Getenv("TEST_MODE") != "true" {
			_ = db.Close()
		}
		errorMsg := "Failed to pin a connection for advisory lock acquiring."
		logger.Error(errorMsg, log.Error(err))
		return false, errors.NewServerError(errors.ErrorMessage{
			Code:        errors.LOCK_ACQUIRE.Code,
			Message:     errors.LOCK_ACQUIRE.Message,
			Description: errorMsg,
		}, err)
	}
	session := &lockSession{db: db, conn: conn}

	lockID := l.generateLockID(key)
	var acquired bool
	if err := conn.QueryRowContext(ctx, "SELECT pg_try_advisory_lock($1)", lockID).Scan(&acquired); err != nil {
		session.close()
		errorMsg := "Failed to execute pg_try_advisory_lock."
		logger.Error(errorMsg, log.Error(err))
		return false, errors.NewServerError(errors.ErrorMessage{
			Code:        errors.LOCK_ACQUIRE.Code,
			Message:     errors.LOCK_ACQUIRE.Message,
			Description: errorMsg,
		}, err)
	}
	if !acquired {
		session.close()
		return false, nil
	}

	l.mu.Lock()
	l.sessions[key] = session
	l.mu.Unlock()
	return true, nil
}

func (l *PostgresLock) Release(key string) error {

	logger := log.GetLogger()
	l.mu.Lock()
	session, held := l.sessions[key]
	delete(l.sessions, key)
	l.mu.Unlock()
	if !held {
		errorMsg := "No acquired advisory lock session exists for key: " + key
		logger.Error(errorMsg)
		return errors.NewServerError(errors.ErrorMessage{
			Code:        errors.LOCK_RELEASE.Code,
			Message:     errors.LOCK_RELEASE.Message,
			Description: errorMsg,
		}, nil)
	}
	// Closing the session drops the lock even when the unlock call fails.
	defer session.close()

	lockID := l.generateLockID(key)
	var released bool
	err := session.conn.QueryRowContext(context.Background(), "SELECT pg_advisory_unlock($1)", lockID).Scan(&released)
	if err != nil {
		errorMsg := "pg_advisory_unlock failed."
		logger.Error(errorMsg, log.Error(err))
		return errors.NewServerError(errors.ErrorMessage{
			Code:        errors.LOCK_RELEASE.Code,
			Message:     errors.LOCK_RELEASE.Message,
			Description: errorMsg,
		}, err)
	}
	if !released {
		logger.Warn("Advisory lock was not held at release time", log.String("key", key))
	}
	return nil
}
