package logging

// Field names shared by every component that logs ledger activity.
const (
	FieldOperation     = "operation"
	FieldTransactionID = "transaction_id"
	FieldCategoryType  = "category_type"
	FieldCategory      = "category"
	FieldMonth         = "month"
	FieldCount         = "count"
	FieldStoreDriver   = "store_driver"
	FieldFile          = "file_path"
	FieldFormat        = "format"
	FieldField         = "field"
	FieldError         = "error"
	FieldDuration      = "duration_ms"
	FieldStatus        = "status"
	FieldMethod        = "method"
	FieldPath          = "path"
	FieldRequestID     = "request_id"
)
