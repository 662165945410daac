package constants

const ApiBasePath = "/api/v1"
const ItemsApiPath = "items"
const CircuitsApiPath = "circuits"
const OperationsApiPath = "operations"
const ConflictsApiPath = "conflicts"
const MerkleApiPath = "merkle"

type contextKey string

const WorkspaceContextKey contextKey = "workspace"
const SubjectContextKey contextKey = "subject"

// Identifier kinds
const (
	KindCanonical  = "CANONICAL"
	KindContextual = "CONTEXTUAL"
)

// Item statuses
const (
	ItemStatusActive     = "ACTIVE"
	ItemStatusMerged     = "MERGED"
	ItemStatusSplit      = "SPLIT"
	ItemStatusDeprecated = "DEPRECATED"
)

// Local record statuses
const (
	LocalRecordStatusLocalOnly = "LOCAL_ONLY"
	LocalRecordStatusTokenized = "TOKENIZED"
	LocalRecordStatusRetired   = "RETIRED"
)

// Push operation statuses
const (
	OperationStatusPending   = "PENDING"
	OperationStatusCompleted = "COMPLETED"
	OperationStatusRejected  = "REJECTED"
)

// Push result statuses
const (
	PushResultNewItemCreated       = "NEW_ITEM_CREATED"
	PushResultExistingItemEnriched = "EXISTING_ITEM_ENRICHED"
)

// Adapter types
const (
	AdapterTypeLocal  = "local"
	AdapterTypeCAS    = "cas"
	AdapterTypeLedger = "ledger"
)

var AllowedAdapterTypes = map[string]bool{
	AdapterTypeLocal:  true,
	AdapterTypeCAS:    true,
	AdapterTypeLedger: true,
}

// Lifecycle event types appended by the tokenization coordinator.
const (
	EventItemCreated    = "item_created"
	EventItemEnriched   = "item_enriched"
	EventPushApproved   = "push_approved"
	EventPushRejected   = "push_rejected"
	EventStorageWritten = "storage_written"
)

// Conflict statuses
const (
	ConflictStatusOpen     = "OPEN"
	ConflictStatusResolved = "RESOLVED"
)

// Table names
const (
	ItemTable           = "items"
	ItemIdentifierTable = "item_identifiers"
	ItemSnapshotTable   = "item_snapshots"
	FingerprintTable    = "circuit_fingerprints"
	MappingTable        = "lid_dfid_mappings"
	CircuitTable        = "circuits"
	CircuitItemTable    = "circuit_items"
	OperationTable      = "push_operations"
	StorageRecordTable  = "storage_records"
	EventTable          = "item_events"
	ConflictTable       = "dedup_conflicts"
	DfidCounterTable    = "dfid_counters"
	StagingCollection   = "local_records"
)

// Lock and retry tuning for the tokenization coordinator.
const (
	MaxLockRetryAttempts    = 10
	MaxAdapterStoreAttempts = 3
	DefaultQueueSize        = 1000
)
