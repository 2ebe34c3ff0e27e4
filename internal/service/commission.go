package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"enrolpay/internal/domain"
	"enrolpay/internal/port"
)

// CommissionBreakdown is the commission position of a single payment plan.
type CommissionBreakdown struct {
	PlanID                uuid.UUID       `json:"plan_id"`
	TotalAmount           decimal.Decimal `json:"total_amount"`
	ExpectedCommission    decimal.Decimal `json:"expected_commission"`
	EarnedCommission      decimal.Decimal `json:"earned_commission"`
	OutstandingCommission decimal.Decimal `json:"outstanding_commission"`
}

// EarnedCommission allocates commission proportionally to what has been paid:
// the paid share of the plan total, applied to the expected commission. A
// partially paid plan therefore yields a proportionally partial commission.
// Rounding to 2 decimals happens once, at the final aggregation, never per
// row. Earned commission never exceeds expected commission.
func EarnedCommission(plan *domain.PaymentPlan, installments []domain.Installment) decimal.Decimal {
	if plan.TotalAmount.IsZero() {
		return decimal.Zero
	}

	paid := decimal.Zero
	for i := range installments {
		inst := &installments[i]
		if !inst.GeneratesCommission || inst.PaidDate == nil {
			continue
		}
		paid = paid.Add(inst.PaidAmount)
	}

	return paid.Div(plan.TotalAmount).Mul(plan.ExpectedCommission).Round(2)
}

// OutstandingCommission is a forward-looking estimate over the unpaid
// commissionable installments: each row's amount at the plan's rate. It is
// computed independently of EarnedCommission, so earned plus outstanding is
// not guaranteed to equal the expected commission; that asymmetry is
// deliberate.
func OutstandingCommission(plan *domain.PaymentPlan, installments []domain.Installment) decimal.Decimal {
	rate := plan.CommissionRatePercent.Div(decimal.NewFromInt(100))

	total := decimal.Zero
	for i := range installments {
		inst := &installments[i]
		if !inst.GeneratesCommission {
			continue
		}
		switch inst.Status {
		case domain.InstallmentStatusPending, domain.InstallmentStatusPartial, domain.InstallmentStatusOverdue:
			total = total.Add(inst.Amount.Mul(rate))
		}
	}
	return total.Round(2)
}

// CommissionService exposes plan commission positions to reporting
// collaborators.
type CommissionService interface {
	PlanCommission(ctx context.Context, planID uuid.UUID) (*CommissionBreakdown, error)
}

type commissionService struct {
	plans        port.PaymentPlanRepository
	installments port.InstallmentRepository
}

// NewCommissionService creates a new CommissionService.
func NewCommissionService(plans port.PaymentPlanRepository, installments port.InstallmentRepository) CommissionService {
	return &commissionService{plans: plans, installments: installments}
}

func (s *commissionService) PlanCommission(ctx context.Context, planID uuid.UUID) (*CommissionBreakdown, error) {
	plan, err := s.plans.GetByIDAnyAgency(ctx, planID)
	if err != nil {
		return nil, err
	}
	installments, err := s.installments.ListByPlan(ctx, plan.AgencyID, plan.ID)
	if err != nil {
		return nil, err
	}

	return &CommissionBreakdown{
		PlanID:                plan.ID,
		TotalAmount:           plan.TotalAmount,
		ExpectedCommission:    plan.ExpectedCommission,
		EarnedCommission:      EarnedCommission(plan, installments),
		OutstandingCommission: OutstandingCommission(plan, installments),
	}, nil
}
