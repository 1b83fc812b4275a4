package shared

// Asynq task types
const (
	TypeCatalogExport = "catalog:export"
)

// Asynq queues
const (
	QueueCatalog = "catalog"
)

// CatalogExportPayload là payload của task catalog:export.
// Trạng thái chi tiết của job nằm trong Redis, payload chỉ mang job id.
type CatalogExportPayload struct {
	JobID string `json:"job_id"`
}
