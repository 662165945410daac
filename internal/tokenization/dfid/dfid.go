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

// Package dfid mints and validates the stable identifiers assigned to
// deduplicated items. The format DFID-YYYYMMDD-NNNNNN-CCCC sorts
// chronologically as plain text and survives string storage unchanged.
package dfid

import (
	"crypto/sha256"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/wso2/entity-tokenization-service/internal/system/database/provider"
	"github.com/wso2/entity-tokenization-service/internal/system/database/scripts"
	errors2 "github.com/wso2/entity-tokenization-service/internal/system/errors"
	"github.com/wso2/entity-tokenization-service/internal/system/log"
)

var dfidPattern = regexp.MustCompile(`^DFID-\d{8}-\d{6}-[A-F0-9]{4}$`)

// Mint reserves the next sequence number for today and assembles a DFID.
// The per-day counter lives in the database so concurrent mints never
// collide, even across instances.
func Mint() (string, error) {

	day := time.Now().UTC().Format("20060102")
	seq, err := nextSequence(day)
	if err != nil {
		return "", err
	}
	body := fmt.Sprintf("DFID-%s-%06d", day, seq)
	return body + "-" + checksum(body), nil
}

// Validate reports whether the value is a well-formed DFID with a
// matching checksum.
func Validate(value string) bool {

	if !dfidPattern.MatchString(value) {
		return false
	}
	body := value[:strings.LastIndex(value, "-")]
	return checksum(body) == value[len(value)-4:]
}

// checksum derives the 4-character suffix from the date and sequence part.
func checksum(body string) string {

	sum := sha256.Sum256([]byte(body))
	return strings.ToUpper(fmt.Sprintf("%x", sum[:2]))
}

func nextSequence(day string) (int64, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		return 0, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DB_CLIENT_INIT.Code,
			Message:     errors2.DB_CLIENT_INIT.Message,
			Description: "Failed to get database client for minting DFID",
		}, err)
	}
	defer dbClient.Close()

	query := scripts.NextDfidSequence[provider.NewDBProvider().GetDBType()]
	results, err := dbClient.ExecuteQuery(query, day)
	if err != nil || len(results) == 0 {
		errorMsg := fmt.Sprintf("Failed to reserve DFID sequence for day: %s", day)
		logger.Debug(errorMsg, log.Error(err))
		return 0, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.NEXT_DFID_SEQUENCE.Code,
			Message:     errors2.NEXT_DFID_SEQUENCE.Message,
			Description: errorMsg,
		}, err)
	}

	switch seq := results[0]["seq"].(type) {
	case int64:
		return seq, nil
	case int:
		return int64(seq), nil
	case float64:
		return int64(seq), nil
	default:
		return 0, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.NEXT_DFID_SEQUENCE.Code,
			Message:     errors2.NEXT_DFID_SEQUENCE.Message,
			Description: fmt.Sprintf("Unexpected sequence column type for day: %s", day),
		}, nil)
	}
}
