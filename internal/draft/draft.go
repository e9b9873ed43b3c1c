// Package draft keeps the working log form between screens and commands:
// the profile and load a diagnosis reads, and the code selection it
// writes back.
package draft

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kokeshes/wxk-check/internal/diagnosis"
	"github.com/kokeshes/wxk-check/internal/store"
)

// DefaultKeep is how many drafts survive pruning.
const DefaultKeep = 20

// Service loads and saves the working draft.
type Service struct {
	repo           store.DraftRepo
	keep           int
	defaultProfile diagnosis.Profile
	logger         *zap.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithKeep sets how many drafts survive pruning.
func WithKeep(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.keep = n
		}
	}
}

// WithDefaultProfile sets the profile of an empty draft.
func WithDefaultProfile(p diagnosis.Profile) Option {
	return func(s *Service) { s.defaultProfile = p }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewService creates a Service over repo.
func NewService(repo store.DraftRepo, opts ...Option) *Service {
	s := &Service{
		repo:           repo,
		keep:           DefaultKeep,
		defaultProfile: diagnosis.ProfileOther,
		logger:         zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load returns the latest draft, or an empty one with the default profile.
func (s *Service) Load(ctx context.Context) (store.DraftData, error) {
	d, err := s.repo.Latest(ctx)
	if err != nil {
		return store.DraftData{}, fmt.Errorf("load draft: %w", err)
	}
	if d == nil {
		return store.DraftData{
			Version: store.DraftVersion,
			Profile: string(s.defaultProfile),
			Codes:   []string{},
		}, nil
	}
	data := d.Data
	if data.Profile == "" {
		data.Profile = string(s.defaultProfile)
	}
	if data.Codes == nil {
		data.Codes = []string{}
	}
	return data, nil
}

// Save stores data as the new draft and prunes old ones.
func (s *Service) Save(ctx context.Context, data store.DraftData) error {
	data.Version = store.DraftVersion
	data.Overload = diagnosis.ClampLoad(data.Overload)
	if err := s.repo.Save(ctx, &store.Draft{Data: data}); err != nil {
		return err
	}
	if err := s.repo.Prune(ctx, s.keep); err != nil {
		// A failed prune leaves extra rows behind; the draft itself is saved.
		s.logger.Warn("prune drafts", zap.Error(err))
	}
	return nil
}

// Context returns the session context carried by the draft.
func (s *Service) Context(ctx context.Context) (diagnosis.SessionContext, error) {
	data, err := s.Load(ctx)
	if err != nil {
		return diagnosis.SessionContext{}, err
	}
	return ContextOf(data), nil
}

// ContextOf converts draft data into a normalized session context.
func ContextOf(data store.DraftData) diagnosis.SessionContext {
	return diagnosis.SessionContext{
		Profile:   diagnosis.Profile(data.Profile),
		LoadLevel: data.Overload,
	}.Normalize()
}

// ApplyCodes overwrites the draft's selected codes with codes and saves.
func (s *Service) ApplyCodes(ctx context.Context, codes []string) (store.DraftData, error) {
	data, err := s.Load(ctx)
	if err != nil {
		return store.DraftData{}, err
	}
	sel := diagnosis.NewSelection()
	sel.Replace(codes)
	data.Codes = sel.Codes()
	if err := s.Save(ctx, data); err != nil {
		return store.DraftData{}, err
	}
	s.logger.Debug("applied codes to draft", zap.Strings("codes", data.Codes))
	return data, nil
}

// Entry builds a log entry from the draft.
func Entry(data store.DraftData) *store.Entry {
	codes := make([]string, len(data.Codes))
	copy(codes, data.Codes)
	return &store.Entry{
		Profile:          data.Profile,
		Overload:         data.Overload,
		Codes:            codes,
		Note:             data.Note,
		Actions:          data.Actions,
		BoundaryTemplate: data.BoundaryTemplate,
		BoundaryNote:     data.BoundaryNote,
	}
}
