package crm

import (
	"context"

	"oratoria_backend/platform/apperr"
	"oratoria_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

// PlacementReader exposes the stored pipeline/stage selection so the
// pipelines endpoint can report which stage new leads currently land in.
type PlacementReader interface {
	PipelineStage(ctx context.Context) (pipelineID, statusID *int64, err error)
}

// PipelinesResponse lists the account's pipelines together with the
// currently selected placement for new leads.
type PipelinesResponse struct {
	Pipelines          []Pipeline `json:"pipelines"`
	SelectedPipelineID *int64     `json:"selectedPipelineId"`
	SelectedStatusID   *int64     `json:"selectedStatusId"`
}

// Handler handles HTTP requests for CRM account metadata.
type Handler struct {
	client    *Client
	placement PlacementReader
}

// NewHandler creates a new CRM handler. client may be nil when the CRM
// integration is not configured.
func NewHandler(client *Client, placement PlacementReader) *Handler {
	return &Handler{client: client, placement: placement}
}

// ListPipelines returns the account's pipelines and the current placement.
// GET /api/v1/crm/pipelines
func (h *Handler) ListPipelines(c *gin.Context) {
	if h.client == nil {
		httpkit.HandleError(c, apperr.Unavailable("amocrm is not configured"))
		return
	}

	var (
		pipelines  []Pipeline
		pipelineID *int64
		statusID   *int64
	)

	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() error {
		var err error
		pipelines, err = h.client.ListPipelines(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		pipelineID, statusID, err = h.placement.PipelineStage(ctx)
		return err
	})

	if err := g.Wait(); err != nil {
		httpkit.HandleError(c, apperr.Wrap(apperr.KindUnavailable, "failed to load pipelines from amocrm", err))
		return
	}

	if pipelines == nil {
		pipelines = []Pipeline{}
	}

	httpkit.OK(c, PipelinesResponse{
		Pipelines:          pipelines,
		SelectedPipelineID: pipelineID,
		SelectedStatusID:   statusID,
	})
}
