package diagnose

import (
	"github.com/kokeshes/wxk-check/internal/diagnosis"
	"github.com/kokeshes/wxk-check/internal/store"
)

// contextLoadedMsg carries the session context read from the draft.
type contextLoadedMsg struct {
	Ctx diagnosis.SessionContext
	Err error
}

// runRecordedMsg is sent once the finished run has been stored.
type runRecordedMsg struct {
	Run *store.Run
	Err error
}

// appliedMsg is sent after the result codes were written to the draft.
type appliedMsg struct {
	Err error
}
