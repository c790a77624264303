package log

// Common field names for structured logging.
const (
	FieldComponent   = "component"
	FieldOwnerID     = "owner_id"
	FieldOperation   = "operation"
	FieldWalletID    = "wallet_id"
	FieldTxID        = "transaction_id"
	FieldKind        = "kind"
	FieldAmountUnits = "amount_units"
	FieldCategory    = "category"
	FieldBatchSize   = "batch_size"
	FieldBackend     = "backend"
	FieldDuration    = "duration_ms"
	FieldStatusCode  = "status_code"
	FieldMethod      = "method"
	FieldPath        = "path"
	FieldError       = "error"
)

// Standard component names.
const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentLedger  = "ledger"
	ComponentTracker = "tracker"
	ComponentStorage = "storage"
	ComponentEvents  = "events"
	ComponentMirror  = "mirror"
	ComponentSmart   = "smart"
)

// Standard operation names.
const (
	OpApply    = "apply"
	OpEdit     = "edit"
	OpDelete   = "delete"
	OpBatch    = "batch_apply"
	OpFlush    = "flush"
	OpParse    = "parse"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)
