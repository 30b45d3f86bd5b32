package service

import (
	"context"
	"fmt"
)

// Resetter is the part of the state manager a reset needs.
type Resetter interface {
	ResetAllData()
	Flush(ctx context.Context) error
}

// MaintenanceService houses destructive actions surfaced through the CLI
// and TUI.
type MaintenanceService struct {
	Ledger Resetter
}

// Reset wipes all user data and waits until the removal is persisted.
func (s *MaintenanceService) Reset(ctx context.Context) error {
	if s.Ledger == nil {
		return fmt.Errorf("maintenance: ledger not configured")
	}
	s.Ledger.ResetAllData()
	if err := s.Ledger.Flush(ctx); err != nil {
		return fmt.Errorf("maintenance: persist reset: %w", err)
	}
	return nil
}
