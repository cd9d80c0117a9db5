package service

import (
	"coa-backend/internal/models"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

var (
	ErrLedgerNotFound = errors.New("ledger not found")
	ErrLinkNotFound   = errors.New("consolidation record not found")
)

// ConsolidationStore is the storage the consolidation state manager needs.
type ConsolidationStore interface {
	LedgerExists(ctx context.Context, ledgerCode string) (bool, error)
	SubGroupName(ctx context.Context, code string) (*string, error)
	MainGroupName(ctx context.Context, code string) (*string, error)
	ApplyMerge(ctx context.Context, m *models.MergeResult) (int64, error)
	ApplyDemerge(ctx context.Context, ledgerCode string) (int64, error)

	View(ctx context.Context, ledgerCode string) ([]models.ConsolidatedRow, error)
	ActiveLedgers(ctx context.Context) ([]models.LedgerLink, error)
	InactiveLedgers(ctx context.Context) ([]models.LedgerLink, error)
	UpdateLink(ctx context.Context, link *models.ConsolidationLink) (int64, error)
	DeleteLink(ctx context.Context, id int64) (int64, error)
}

// ConsolidationService attaches ledgers to and detaches them from their
// consolidating sub and main groups.
//
// A linked ledger carries link_status and consolidation_status "active" plus a
// copy of the group codes and names; an unlinked one carries "inactive" and
// NULLs. Group names are copied at merge time and are not refreshed when a
// group is renamed later.
type ConsolidationService struct {
	store  ConsolidationStore
	logger *logrus.Logger
}

func NewConsolidationService(store ConsolidationStore, logger *logrus.Logger) *ConsolidationService {
	return &ConsolidationService{store: store, logger: logger}
}

// Merge links the ledger to the given groups. An unknown group code is kept
// with a NULL name; an unknown ledger code yields ErrLedgerNotFound.
func (s *ConsolidationService) Merge(ctx context.Context, req models.MergeRequest) (*models.MergeResult, error) {
	ledgerCode := strings.TrimSpace(req.LedgerCode)
	if err := s.requireLedger(ctx, ledgerCode); err != nil {
		return nil, err
	}

	result := &models.MergeResult{
		LedgerCode:    ledgerCode,
		SubGroupCode:  normalizeCode(req.SubGroupCode),
		MainGroupCode: normalizeCode(req.MainGroupCode),
	}

	var err error
	if result.SubGroupCode != nil {
		if result.SubGroupName, err = s.store.SubGroupName(ctx, *result.SubGroupCode); err != nil {
			return nil, fmt.Errorf("failed to resolve sub group %s: %w", *result.SubGroupCode, err)
		}
	}
	if result.MainGroupCode != nil {
		if result.MainGroupName, err = s.store.MainGroupName(ctx, *result.MainGroupCode); err != nil {
			return nil, fmt.Errorf("failed to resolve main group %s: %w", *result.MainGroupCode, err)
		}
	}

	if _, err := s.store.ApplyMerge(ctx, result); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"ledger_code":     result.LedgerCode,
		"sub_group_code":  deref(result.SubGroupCode),
		"main_group_code": deref(result.MainGroupCode),
	}).Info("Ledger merged")

	return result, nil
}

// Demerge clears the ledger's consolidation link. Demerging an unlinked
// ledger leaves it unchanged.
func (s *ConsolidationService) Demerge(ctx context.Context, ledgerCode string) error {
	ledgerCode = strings.TrimSpace(ledgerCode)
	if err := s.requireLedger(ctx, ledgerCode); err != nil {
		return err
	}

	if _, err := s.store.ApplyDemerge(ctx, ledgerCode); err != nil {
		return err
	}

	s.logger.WithField("ledger_code", ledgerCode).Info("Ledger demerged")
	return nil
}

func (s *ConsolidationService) View(ctx context.Context, ledgerCode string) ([]models.ConsolidatedRow, error) {
	return s.store.View(ctx, strings.TrimSpace(ledgerCode))
}

func (s *ConsolidationService) ActiveLedgers(ctx context.Context) ([]models.LedgerLink, error) {
	return s.store.ActiveLedgers(ctx)
}

func (s *ConsolidationService) InactiveLedgers(ctx context.Context) ([]models.LedgerLink, error) {
	return s.store.InactiveLedgers(ctx)
}

// UpdateLink replaces every field of the connect_consolidates row with the given id.
func (s *ConsolidationService) UpdateLink(ctx context.Context, link *models.ConsolidationLink) error {
	n, err := s.store.UpdateLink(ctx, link)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrLinkNotFound
	}
	return nil
}

func (s *ConsolidationService) DeleteLink(ctx context.Context, id int64) error {
	n, err := s.store.DeleteLink(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrLinkNotFound
	}
	s.logger.WithField("id", id).Info("Consolidation record deleted")
	return nil
}

func (s *ConsolidationService) requireLedger(ctx context.Context, ledgerCode string) error {
	if ledgerCode == "" {
		return ErrLedgerNotFound
	}
	exists, err := s.store.LedgerExists(ctx, ledgerCode)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: %s", ErrLedgerNotFound, ledgerCode)
	}
	return nil
}

func normalizeCode(code *string) *string {
	if code == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*code)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
