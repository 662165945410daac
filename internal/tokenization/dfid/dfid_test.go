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

package dfid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validDFID(day string, seq int) string {

	body := "DFID-" + day + "-" + padSeq(seq)
	return body + "-" + checksum(body)
}

func padSeq(seq int) string {

	digits := []byte("000000")
	for i := 5; i >= 0 && seq > 0; i-- {
		digits[i] = byte('0' + seq%10)
		seq /= 10
	}
	return string(digits)
}

func TestValidateAcceptsWellFormedDFID(t *testing.T) {

	assert.True(t, Validate(validDFID("20260101", 1)))
	assert.True(t, Validate(validDFID("20261231", 999999)))
}

func TestValidateRejectsTamperedChecksum(t *testing.T) {

	value := validDFID("20260101", 1)
	tampered := value[:len(value)-4] + "0000"
	if tampered == value {
		tampered = value[:len(value)-4] + "1111"
	}
	assert.False(t, Validate(tampered))
}

func TestValidateRejectsTamperedSequence(t *testing.T) {

	value := validDFID("20260101", 1)
	tampered := "DFID-20260101-000002-" + value[len(value)-4:]
	assert.False(t, Validate(tampered))
}

func TestValidateRejectsMalformedValues(t *testing.T) {

	assert.False(t, Validate(""))
	assert.False(t, Validate("DFID-2026011-000001-AB12"))
	assert.False(t, Validate("DFID-20260101-00001-AB12"))
	assert.False(t, Validate("dfid-20260101-000001-AB12"))
	assert.False(t, Validate("DFID-20260101-000001-ab12"))
	assert.False(t, Validate("DFID-20260101-000001-AB1"))
}

func TestDFIDsSortChronologicallyAsText(t *testing.T) {

	earlier := validDFID("20260101", 999999)
	later := validDFID("20260102", 1)
	assert.Less(t, earlier, later)

	first := validDFID("20260101", 1)
	second := validDFID("20260101", 2)
	assert.Less(t, first, second)
}
