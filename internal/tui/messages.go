package tui

import (
	"github.com/Veraticus/mathnote/internal/ledger"
	"github.com/Veraticus/mathnote/internal/model"
)

// recordedMsg reports a note saved to the ledger.
type recordedMsg struct {
	parsed *model.ParsedTransaction
	entry  ledger.Entry
}

// errorMsg reports a failed save.
type errorMsg struct {
	err error
}
