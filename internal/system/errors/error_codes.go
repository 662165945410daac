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

package errors

const errorPrefix = "ETS-"

var (
	// Server error codes

	DB_CLIENT_INIT = ErrorMessage{
		Code:    errorPrefix + "15001",
		Message: "Unable to initialize database client.",
	}

	EXECUTE_QUERY = ErrorMessage{
		Code:    errorPrefix + "15002",
		Message: "Error while executing database query.",
	}

	MARSHAL_JSON = ErrorMessage{
		Code:    errorPrefix + "15003",
		Message: "Error while marshalling JSON.",
	}

	UNMARSHAL_JSON = ErrorMessage{
		Code:    errorPrefix + "15004",
		Message: "Error while un-marshalling JSON.",
	}

	LOCK_ACQUIRE = ErrorMessage{
		Code:    errorPrefix + "15005",
		Message: "Identity lock acquisition failed.",
	}

	LOCK_RELEASE = ErrorMessage{
		Code:    errorPrefix + "15006",
		Message: "Error while releasing the identity lock.",
	}

	ADD_LOCAL_RECORD = ErrorMessage{
		Code:    errorPrefix + "15007",
		Message: "Error while adding local record.",
	}

	GET_LOCAL_RECORD = ErrorMessage{
		Code:    errorPrefix + "15008",
		Message: "Error while fetching local record.",
	}

	ADD_ITEM = ErrorMessage{
		Code:    errorPrefix + "15009",
		Message: "Error while adding item.",
	}

	GET_ITEM = ErrorMessage{
		Code:    errorPrefix + "15010",
		Message: "Error while fetching item.",
	}

	UPDATE_ITEM = ErrorMessage{
		Code:    errorPrefix + "15011",
		Message: "Error while updating item.",
	}

	ADD_MAPPING = ErrorMessage{
		Code:    errorPrefix + "15012",
		Message: "Error while adding LID to DFID mapping.",
	}

	GET_MAPPING = ErrorMessage{
		Code:    errorPrefix + "15013",
		Message: "Error while fetching LID to DFID mapping.",
	}

	ADD_EVENT = ErrorMessage{
		Code:    errorPrefix + "15014",
		Message: "Error while adding event.",
	}

	GET_EVENTS = ErrorMessage{
		Code:    errorPrefix + "15015",
		Message: "Error while fetching events.",
	}

	ADAPTER_STORE = ErrorMessage{
		Code:    errorPrefix + "15016",
		Message: "Storage adapter write failed.",
	}

	ADD_STORAGE_RECORD = ErrorMessage{
		Code:    errorPrefix + "15017",
		Message: "Error while recording storage history.",
	}

	GET_STORAGE_RECORDS = ErrorMessage{
		Code:    errorPrefix + "15018",
		Message: "Error while fetching storage history.",
	}

	ADD_CIRCUIT = ErrorMessage{
		Code:    errorPrefix + "15019",
		Message: "Error while adding circuit.",
	}

	GET_CIRCUIT = ErrorMessage{
		Code:    errorPrefix + "15020",
		Message: "Error while fetching circuit.",
	}

	UPDATE_CIRCUIT = ErrorMessage{
		Code:    errorPrefix + "15021",
		Message: "Error while updating circuit configuration.",
	}

	ADD_OPERATION = ErrorMessage{
		Code:    errorPrefix + "15022",
		Message: "Error while adding push operation.",
	}

	GET_OPERATION = ErrorMessage{
		Code:    errorPrefix + "15023",
		Message: "Error while fetching push operation.",
	}

	UPDATE_OPERATION = ErrorMessage{
		Code:    errorPrefix + "15024",
		Message: "Error while updating push operation.",
	}

	NEXT_DFID_SEQUENCE = ErrorMessage{
		Code:    errorPrefix + "15025",
		Message: "Error while reserving the next DFID sequence number.",
	}

	ADD_CONFLICT = ErrorMessage{
		Code:    errorPrefix + "15026",
		Message: "Error while persisting deduplication conflict.",
	}

	GET_CONFLICTS = ErrorMessage{
		Code:    errorPrefix + "15027",
		Message: "Error while fetching deduplication conflicts.",
	}

	MERKLE_BUILD = ErrorMessage{
		Code:    errorPrefix + "15028",
		Message: "Error while computing merkle tree.",
	}

	// Client error codes

	BAD_REQUEST = ErrorMessage{
		Code:    errorPrefix + "16001",
		Message: "Invalid request payload.",
	}

	IDENTIFIERS_REQUIRED = ErrorMessage{
		Code:    errorPrefix + "16002",
		Message: "At least one identifier is required.",
	}

	NAMESPACE_NOT_ALLOWED = ErrorMessage{
		Code:    errorPrefix + "16003",
		Message: "Identifier namespace is not allowed in this circuit.",
	}

	REQUIRED_IDENTIFIER_MISSING = ErrorMessage{
		Code:    errorPrefix + "16004",
		Message: "A required identifier is missing.",
	}

	IDENTIFIER_FORMAT_INVALID = ErrorMessage{
		Code:    errorPrefix + "16005",
		Message: "Identifier value does not match the registry format.",
	}

	LOCAL_RECORD_NOT_FOUND = ErrorMessage{
		Code:    errorPrefix + "16006",
		Message: "Local record not found.",
	}

	CIRCUIT_NOT_FOUND = ErrorMessage{
		Code:    errorPrefix + "16007",
		Message: "Circuit not found.",
	}

	ITEM_NOT_FOUND = ErrorMessage{
		Code:    errorPrefix + "16008",
		Message: "Item not found.",
	}

	OPERATION_NOT_FOUND = ErrorMessage{
		Code:    errorPrefix + "16009",
		Message: "Push operation not found.",
	}

	OPERATION_ALREADY_DECIDED = ErrorMessage{
		Code:    errorPrefix + "16010",
		Message: "Push operation has already been decided.",
	}

	DEDUPLICATION_CONFLICT = ErrorMessage{
		Code:    errorPrefix + "16011",
		Message: "Ambiguous canonical match across existing items.",
	}

	LID_ALREADY_PINNED = ErrorMessage{
		Code:    errorPrefix + "16012",
		Message: "Local record is already mapped to a different DFID.",
	}

	CONFLICT_NOT_FOUND = ErrorMessage{
		Code:    errorPrefix + "16013",
		Message: "Deduplication conflict not found.",
	}

	CONFLICT_ALREADY_RESOLVED = ErrorMessage{
		Code:    errorPrefix + "16014",
		Message: "Deduplication conflict has already been resolved.",
	}

	PERMISSION_DENIED = ErrorMessage{
		Code:    errorPrefix + "16015",
		Message: "Not permitted to perform this operation.",
	}

	UNAUTHORIZED = ErrorMessage{
		Code:    errorPrefix + "16016",
		Message: "Authentication failed.",
	}

	EVENT_NOT_FOUND = ErrorMessage{
		Code:    errorPrefix + "16017",
		Message: "Event not found.",
	}

	PROOF_INVALID = ErrorMessage{
		Code:    errorPrefix + "16018",
		Message: "Merkle proof request is invalid.",
	}

	WORKSPACE_MISMATCH = ErrorMessage{
		Code:    errorPrefix + "16019",
		Message: "Local record belongs to a different workspace.",
	}

	RECORD_ALREADY_TOKENIZED = ErrorMessage{
		Code:    errorPrefix + "16020",
		Message: "Local record has already been tokenized and cannot be merged locally.",
	}

	STORAGE_RECORD_NOT_FOUND = ErrorMessage{
		Code:    errorPrefix + "16021",
		Message: "No storage record exists for the item and adapter type.",
	}
)
