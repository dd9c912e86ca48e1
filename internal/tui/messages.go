package tui

import "github.com/rgehrsitz/headroom/internal/domain"

// SummaryLoadedMsg carries a year's ledger summary into the model.
type SummaryLoadedMsg struct {
	Summary domain.IncomeSummary
	Err     error
}
