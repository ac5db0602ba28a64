// Package service exposes the configured CRM pipeline/stage selection on top
// of the key/value settings store.
package service

import (
	"context"
	"strconv"

	"oratoria_backend/platform/config"
)

// Well-known settings keys holding the default CRM placement as decimal strings.
const (
	KeyPipelineID = "amocrm_pipeline_id"
	KeyStatusID   = "amocrm_status_id"
)

// Store is the persistence surface the service needs.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

type Service struct {
	store    Store
	defaults config.PlacementDefaultsConfig
}

func New(store Store, defaults config.PlacementDefaultsConfig) *Service {
	return &Service{store: store, defaults: defaults}
}

// PipelineStage returns the pipeline/status ids a new lead should be placed
// under. The settings store wins; environment defaults fill in keys that were
// never set. A nil id means "let the CRM pick its own default". An
// unparseable stored value is treated as absent rather than failing the
// submission.
func (s *Service) PipelineStage(ctx context.Context) (*int64, *int64, error) {
	pipelineID, err := s.lookupID(ctx, KeyPipelineID)
	if err != nil {
		return nil, nil, err
	}
	if pipelineID == nil {
		pipelineID = s.defaults.GetDefaultPipelineID()
	}

	statusID, err := s.lookupID(ctx, KeyStatusID)
	if err != nil {
		return nil, nil, err
	}
	if statusID == nil {
		statusID = s.defaults.GetDefaultStatusID()
	}

	return pipelineID, statusID, nil
}

// SetPipelineStage upserts the provided ids; a nil argument leaves the
// corresponding key untouched so partial updates work.
func (s *Service) SetPipelineStage(ctx context.Context, pipelineID, statusID *int64) error {
	if pipelineID != nil {
		if err := s.store.Set(ctx, KeyPipelineID, strconv.FormatInt(*pipelineID, 10)); err != nil {
			return err
		}
	}
	if statusID != nil {
		if err := s.store.Set(ctx, KeyStatusID, strconv.FormatInt(*statusID, 10)); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) lookupID(ctx context.Context, key string) (*int64, error) {
	raw, exists, err := s.store.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, nil
	}

	parsed, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, nil
	}
	return &parsed, nil
}
