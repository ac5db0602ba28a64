// Package transport defines request/response DTOs for the settings HTTP API.
package transport

// PipelineStageResponse reports the currently configured CRM placement.
// Fields are null when no value has been stored and no default applies.
type PipelineStageResponse struct {
	PipelineID *int64 `json:"pipelineId"`
	StatusID   *int64 `json:"statusId"`
}

// UpdatePipelineStageRequest updates the CRM placement. Both fields are
// optional; an omitted field leaves the stored value untouched.
type UpdatePipelineStageRequest struct {
	PipelineID *int64 `json:"pipelineId" validate:"omitempty,gt=0"`
	StatusID   *int64 `json:"statusId" validate:"omitempty,gt=0"`
}

// UpdatePipelineStageResponse confirms the update and echoes the resulting
// placement.
type UpdatePipelineStageResponse struct {
	Success    bool   `json:"success"`
	PipelineID *int64 `json:"pipelineId"`
	StatusID   *int64 `json:"statusId"`
}
