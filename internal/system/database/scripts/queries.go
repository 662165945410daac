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

package scripts

// Item queries

var InsertItem = map[string]string{
	"postgres": `INSERT INTO items (dfid, status, data, fingerprint, confidence, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
}

var GetItemByDfid = map[string]string{
	"postgres": `SELECT dfid, status, data::text, fingerprint, confidence, created_at, updated_at
		FROM items WHERE dfid = $1`,
}

var UpdateItemData = map[string]string{
	"postgres": `UPDATE items SET data = $2, updated_at = $3 WHERE dfid = $1`,
}

var InsertItemIdentifier = map[string]string{
	"postgres": `INSERT INTO item_identifiers (dfid, namespace, id_key, id_value, kind, metadata, added_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (dfid, namespace, id_key, id_value) DO NOTHING`,
}

var GetItemIdentifiers = map[string]string{
	"postgres": `SELECT namespace, id_key, id_value, kind, metadata::text
		FROM item_identifiers WHERE dfid = $1 ORDER BY namespace, id_key, id_value`,
}

var FindDfidsByIdentifier = map[string]string{
	"postgres": `SELECT DISTINCT dfid FROM item_identifiers
		WHERE namespace = $1 AND id_key = $2 AND id_value = $3`,
}

var InsertItemAlias = map[string]string{
	"postgres": `INSERT INTO item_aliases (dfid, scheme, alias_value, issuer, asserted_at, evidence_hash)
		VALUES ($1, $2, $3, $4, $5, $6)`,
}

var GetItemAliases = map[string]string{
	"postgres": `SELECT scheme, alias_value, issuer, asserted_at, evidence_hash
		FROM item_aliases WHERE dfid = $1 ORDER BY asserted_at`,
}

// Circuit fingerprint queries

var InsertCircuitFingerprint = map[string]string{
	"postgres": `INSERT INTO circuit_fingerprints (circuit_id, fingerprint, dfid)
		VALUES ($1, $2, $3) ON CONFLICT (circuit_id, fingerprint) DO NOTHING`,
}

var GetDfidByCircuitFingerprint = map[string]string{
	"postgres": `SELECT dfid FROM circuit_fingerprints WHERE circuit_id = $1 AND fingerprint = $2`,
}

// LID to DFID mapping queries

var InsertMapping = map[string]string{
	"postgres": `INSERT INTO lid_dfid_mappings (lid, dfid, workspace_id, created_at)
		VALUES ($1, $2, $3, $4) ON CONFLICT (lid) DO NOTHING`,
}

var GetMappingByLid = map[string]string{
	"postgres": `SELECT lid, dfid, workspace_id, created_at FROM lid_dfid_mappings WHERE lid = $1`,
}

// Circuit queries

var InsertCircuit = map[string]string{
	"postgres": `INSERT INTO circuits (circuit_id, circuit_name, owner_id, adapter_type, require_approval,
		required_canonical, required_contextual, allowed_namespaces, default_namespace,
		auto_apply_namespace, use_fingerprint, strict_format, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
}

var GetCircuit = map[string]string{
	"postgres": `SELECT circuit_id, circuit_name, owner_id, adapter_type, require_approval,
		required_canonical::text, required_contextual::text, allowed_namespaces::text,
		default_namespace, auto_apply_namespace, use_fingerprint, strict_format, created_at, updated_at
		FROM circuits WHERE circuit_id = $1`,
}

var UpdateCircuitAdapter = map[string]string{
	"postgres": `UPDATE circuits SET adapter_type = $2, require_approval = $3, required_canonical = $4,
		required_contextual = $5, allowed_namespaces = $6, default_namespace = $7,
		auto_apply_namespace = $8, use_fingerprint = $9, strict_format = $10, updated_at = $11
		WHERE circuit_id = $1`,
}

// A pending re-push must not retract visibility an earlier approval granted,
// so the upsert only ever widens it.
var UpsertCircuitItem = map[string]string{
	"postgres": `INSERT INTO circuit_items (circuit_id, dfid, visible, operation_id, added_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (circuit_id, dfid) DO UPDATE
		SET visible = circuit_items.visible OR EXCLUDED.visible, operation_id = EXCLUDED.operation_id`,
}

var SetCircuitItemVisible = map[string]string{
	"postgres": `UPDATE circuit_items SET visible = $3 WHERE circuit_id = $1 AND dfid = $2`,
}

var ListVisibleCircuitItems = map[string]string{
	"postgres": `SELECT dfid FROM circuit_items WHERE circuit_id = $1 AND visible = TRUE ORDER BY dfid`,
}

// Push operation queries

var InsertOperation = map[string]string{
	"postgres": `INSERT INTO push_operations (operation_id, circuit_id, dfid, lid, requester_id, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
}

var GetOperation = map[string]string{
	"postgres": `SELECT operation_id, circuit_id, dfid, lid, requester_id, status, created_at, decided_at, decided_by
		FROM push_operations WHERE operation_id = $1`,
}

var DecideOperation = map[string]string{
	"postgres": `UPDATE push_operations SET status = $2, decided_at = $3, decided_by = $4
		WHERE operation_id = $1 AND status = 'PENDING'`,
}

// Storage history queries

var DeactivateStorageRecords = map[string]string{
	"postgres": `UPDATE storage_records SET is_active = FALSE
		WHERE dfid = $1 AND adapter_type = $2 AND is_active = TRUE`,
}

var InsertStorageRecord = map[string]string{
	"postgres": `INSERT INTO storage_records (record_id, dfid, adapter_type, location, content_hash,
		triggered_by, triggered_by_id, is_active, stored_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
}

var GetStorageRecordsByDfid = map[string]string{
	"postgres": `SELECT record_id, dfid, adapter_type, location::text, content_hash,
		triggered_by, triggered_by_id, is_active, stored_at
		FROM storage_records WHERE dfid = $1 ORDER BY stored_at`,
}

var GetActiveStorageRecord = map[string]string{
	"postgres": `SELECT record_id, dfid, adapter_type, location::text, content_hash,
		triggered_by, triggered_by_id, is_active, stored_at
		FROM storage_records WHERE dfid = $1 AND adapter_type = $2 AND is_active = TRUE`,
}

// Item snapshot queries (local adapter)

var InsertItemSnapshot = map[string]string{
	"postgres": `INSERT INTO item_snapshots (snapshot_id, dfid, payload, content_hash, stored_at)
		VALUES ($1, $2, $3, $4, $5)`,
}

var GetItemSnapshot = map[string]string{
	"postgres": `SELECT snapshot_id, dfid, payload::text, content_hash, stored_at
		FROM item_snapshots WHERE snapshot_id = $1`,
}

// Event queries

var InsertEvent = map[string]string{
	"postgres": `INSERT INTO item_events (event_id, dfid, event_type, source, event_timestamp, metadata)
		VALUES ($1, $2, $3, $4, $5, $6)`,
}

var GetEventsByDfid = map[string]string{
	"postgres": `SELECT event_id, dfid, event_type, source, event_timestamp, metadata::text
		FROM item_events WHERE dfid = $1 ORDER BY event_timestamp, event_id`,
}

var GetEventByID = map[string]string{
	"postgres": `SELECT event_id, dfid, event_type, source, event_timestamp, metadata::text
		FROM item_events WHERE event_id = $1`,
}

// Deduplication conflict queries

var InsertConflict = map[string]string{
	"postgres": `INSERT INTO dedup_conflicts (conflict_id, circuit_id, lid, workspace_id, candidates, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
}

var GetOpenConflicts = map[string]string{
	"postgres": `SELECT conflict_id, circuit_id, lid, workspace_id, candidates::text, status, created_at,
		resolved_at, resolved_by, resolved_dfid
		FROM dedup_conflicts WHERE status = 'OPEN' ORDER BY created_at`,
}

var GetConflict = map[string]string{
	"postgres": `SELECT conflict_id, circuit_id, lid, workspace_id, candidates::text, status, created_at,
		resolved_at, resolved_by, resolved_dfid
		FROM dedup_conflicts WHERE conflict_id = $1`,
}

var ResolveConflict = map[string]string{
	"postgres": `UPDATE dedup_conflicts SET status = 'RESOLVED', resolved_at = $2, resolved_by = $3, resolved_dfid = $4
		WHERE conflict_id = $1 AND status = 'OPEN'`,
}

// DFID sequence queries

var NextDfidSequence = map[string]string{
	"postgres": `INSERT INTO dfid_counters (day, seq) VALUES ($1, 1)
		ON CONFLICT (day) DO UPDATE SET seq = dfid_counters.seq + 1
		RETURNING seq`,
}
