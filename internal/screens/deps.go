// Package screens holds what the interactive screens share.
package screens

import (
	"go.uber.org/zap"

	"github.com/kokeshes/wxk-check/internal/diagnosis"
	"github.com/kokeshes/wxk-check/internal/draft"
	"github.com/kokeshes/wxk-check/internal/store"
)

// Deps are the services screens are built from. Any repo may be nil, in
// which case the screen works without persisting.
type Deps struct {
	Engine  *diagnosis.Engine
	Entries store.EntryRepo
	Runs    store.RunRepo
	Drafts  *draft.Service
	Logger  *zap.Logger
}

// Log returns the logger, never nil.
func (d Deps) Log() *zap.Logger {
	if d.Logger == nil {
		return zap.NewNop()
	}
	return d.Logger
}
