package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"boutiqueos/internal/adapters/persistence/models"
	"boutiqueos/internal/adapters/persistence/repositories"
	"boutiqueos/internal/core/domain"
	"boutiqueos/internal/pkg/money"

	"gorm.io/gorm"
)

// CashService handles the register session lifecycle. Totals are
// computed on read; nothing is frozen until the session closes.
type CashService struct {
	cashRepo repositories.CashRepository
}

// NewCashService creates a new cash service
func NewCashService(cashRepo repositories.CashRepository) *CashService {
	return &CashService{cashRepo: cashRepo}
}

// CloseResult is the reconciliation snapshot returned when a session
// closes
type CloseResult struct {
	Session         *models.CashSession `json:"session"`
	SalesByMethod   map[string]float64  `json:"sales_by_method"`
	SalesTotal      float64             `json:"sales_total"`
	WithdrawalTotal float64             `json:"withdrawal_total"`
	Expected        float64             `json:"expected"`
	Counted         float64             `json:"counted"`
	Difference      float64             `json:"difference"`
}

// Open opens a register session. One OPEN session per tenant.
func (s *CashService) Open(ctx context.Context, tenantID, userID uint, openingAmount float64) (*models.CashSession, error) {
	if openingAmount < 0 {
		return nil, domain.ErrInvalidInput
	}

	_, err := s.cashRepo.GetOpenByTenant(ctx, tenantID)
	if err == nil {
		return nil, domain.ErrCashAlreadyOpen
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	session := &models.CashSession{
		TenantID:       tenantID,
		OpenedByUserID: userID,
		OpeningAmount:  money.Round(openingAmount),
		Status:         string(domain.CashOpen),
	}
	if err := s.cashRepo.Create(ctx, session); err != nil {
		return nil, err
	}

	log.Printf("✅ Cash session opened: %d (tenant: %d, opening: %.2f)", session.ID, tenantID, session.OpeningAmount)
	return session, nil
}

// Current returns the tenant's open session, or nil when the register
// is closed
func (s *CashService) Current(ctx context.Context, tenantID uint) (*models.CashSession, error) {
	session, err := s.cashRepo.GetOpenByTenant(ctx, tenantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return session, nil
}

// Withdraw takes cash out of an open session
func (s *CashService) Withdraw(ctx context.Context, tenantID, sessionID, userID uint, amount float64, notes string) (*models.CashWithdrawal, error) {
	if amount <= 0 {
		return nil, domain.ErrInvalidInput
	}

	session, err := s.cashRepo.GetByID(ctx, tenantID, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCashSessionNotFound
		}
		return nil, err
	}
	if !session.IsOpen() {
		return nil, domain.ErrCashAlreadyClosed
	}

	withdrawal := &models.CashWithdrawal{
		TenantID:        tenantID,
		CashSessionID:   session.ID,
		CreatedByUserID: userID,
		Amount:          money.Round(amount),
		Notes:           strings.TrimSpace(notes),
	}
	if err := s.cashRepo.CreateWithdrawal(ctx, withdrawal); err != nil {
		return nil, err
	}

	log.Printf("✅ Cash withdrawal: %.2f from session %d (tenant: %d)", withdrawal.Amount, session.ID, tenantID)
	return withdrawal, nil
}

// ListWithdrawals lists a session's withdrawals
func (s *CashService) ListWithdrawals(ctx context.Context, tenantID, sessionID uint) ([]*models.CashWithdrawal, error) {
	if _, err := s.cashRepo.GetByID(ctx, tenantID, sessionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCashSessionNotFound
		}
		return nil, err
	}
	return s.cashRepo.ListWithdrawals(ctx, tenantID, sessionID)
}

// Close reconciles and freezes a session. Expected cash is
// opening + sales − withdrawals; counted defaults to expected, so an
// uncounted close records a zero difference.
func (s *CashService) Close(ctx context.Context, tenantID, sessionID, userID uint, counted *float64, notes string) (*CloseResult, error) {
	session, err := s.cashRepo.GetByID(ctx, tenantID, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCashSessionNotFound
		}
		return nil, err
	}
	if !session.IsOpen() {
		return nil, domain.ErrCashAlreadyClosed
	}

	byMethod, err := s.cashRepo.SalesByPaymentMethod(ctx, session.ID)
	if err != nil {
		return nil, err
	}
	salesTotal := 0.0
	for _, v := range byMethod {
		salesTotal = money.Add(salesTotal, v)
	}

	withdrawalTotal, err := s.cashRepo.SumWithdrawals(ctx, session.ID)
	if err != nil {
		return nil, err
	}

	expected := money.Sub(money.Add(session.OpeningAmount, salesTotal), withdrawalTotal)
	countedAmount := expected
	if counted != nil {
		countedAmount = money.Round(*counted)
	}
	difference := money.Sub(countedAmount, expected)

	now := nowFunc()
	session.Status = string(domain.CashClosed)
	session.ClosedAt = &now
	session.ClosedByUserID = &userID
	session.WithdrawalAmount = withdrawalTotal
	session.WithdrawalNotes = strings.TrimSpace(notes)
	session.ExpectedAmount = &expected
	session.CountedAmount = &countedAmount
	session.DifferenceAmount = &difference

	if err := s.cashRepo.Update(ctx, session); err != nil {
		return nil, err
	}

	log.Printf("✅ Cash session closed: %d (expected: %.2f, counted: %.2f, diff: %.2f)", session.ID, expected, countedAmount, difference)

	return &CloseResult{
		Session:         session,
		SalesByMethod:   byMethod,
		SalesTotal:      salesTotal,
		WithdrawalTotal: withdrawalTotal,
		Expected:        expected,
		Counted:         countedAmount,
		Difference:      difference,
	}, nil
}
