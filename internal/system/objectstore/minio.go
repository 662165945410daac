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

package objectstore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/wso2/entity-tokenization-service/internal/system/config"
)

// Store is a thin wrapper over the S3-compatible object store used by the
// content-addressed storage adapter.
type Store struct {
	client *minio.Client
	bucket string
}

var (
	store *Store
	mu    sync.Mutex
)

// GetStore returns the shared object store, connecting on first use and
// creating the bucket when it does not exist.
func GetStore() (*Store, error) {

	mu.Lock()
	defer mu.Unlock()

	if store != nil {
		return store, nil
	}

	osConfig := config.GetETSRuntime().Config.ObjectStore
	client, err := minio.New(osConfig.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(osConfig.AccessKey, osConfig.SecretKey, ""),
		Secure: osConfig.UseSSL,
		Region: osConfig.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create object store client: %w", err)
	}

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, osConfig.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %q: %w", osConfig.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, osConfig.Bucket, minio.MakeBucketOptions{Region: osConfig.Region}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %q: %w", osConfig.Bucket, err)
		}
	}

	store = &Store{client: client, bucket: osConfig.Bucket}
	return store, nil
}

// SetTestStore installs a shared object store used by integration tests.
func SetTestStore(s *Store) {

	mu.Lock()
	defer mu.Unlock()
	store = s
}

// NewStore wraps an existing client. Used by tests.
func NewStore(client *minio.Client, bucket string) *Store {
	return &Store{client: client, bucket: bucket}
}

// Put uploads an object under the given key.
func (s *Store) Put(ctx context.Context, key string, data []byte, contentType string) error {

	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return fmt.Errorf("failed to put object %q: %w", key, err)
	}
	return nil
}

// Get downloads the object stored under the given key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {

	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object %q: %w", key, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("failed to read object %q: %w", key, err)
	}
	return data, nil
}

// Healthy verifies that the backing bucket is reachable.
func (s *Store) Healthy(ctx context.Context) error {

	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("object store unreachable: %w", err)
	}
	if !exists {
		return fmt.Errorf("bucket %q does not exist", s.bucket)
	}
	return nil
}

// Exists reports whether an object is stored under the given key.
func (s *Store) Exists(ctx context.Context, key string) (bool, error) {

	_, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		resp := minio.ToErrorResponse(err)
		if resp.Code == "NoSuchKey" {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat object %q: %w", key, err)
	}
	return true, nil
}
