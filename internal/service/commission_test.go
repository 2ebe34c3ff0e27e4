package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"enrolpay/internal/domain"
	"enrolpay/internal/service"
	"enrolpay/mocks"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func plan(total, rate, expected string) *domain.PaymentPlan {
	return &domain.PaymentPlan{
		ID:                    uuid.New(),
		AgencyID:              uuid.New(),
		TotalAmount:           dec(total),
		CommissionRatePercent: dec(rate),
		ExpectedCommission:    dec(expected),
		Status:                domain.PlanStatusActive,
	}
}

func paidInstallment(amount, paid string, commissionable bool) domain.Installment {
	paidDate := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	return domain.Installment{
		ID:                  uuid.New(),
		Amount:              dec(amount),
		PaidAmount:          dec(paid),
		PaidDate:            &paidDate,
		Status:              domain.InstallmentStatusPaid,
		GeneratesCommission: commissionable,
	}
}

func unpaidInstallment(amount string, status domain.InstallmentStatus, commissionable bool) domain.Installment {
	return domain.Installment{
		ID:                  uuid.New(),
		Amount:              dec(amount),
		PaidAmount:          decimal.Zero,
		Status:              status,
		GeneratesCommission: commissionable,
	}
}

func TestEarnedCommission_ProportionalAllocation(t *testing.T) {
	// Half the plan paid yields half the expected commission.
	p := plan("10000", "15", "1500")
	installments := []domain.Installment{
		paidInstallment("5000", "5000", true),
		unpaidInstallment("5000", domain.InstallmentStatusPending, true),
	}

	earned := service.EarnedCommission(p, installments)
	assert.Equal(t, "750.00", earned.StringFixed(2))
}

func TestEarnedCommission_IgnoresNonCommissionable(t *testing.T) {
	p := plan("10000", "15", "1500")
	installments := []domain.Installment{
		paidInstallment("5000", "5000", false),
	}

	earned := service.EarnedCommission(p, installments)
	assert.True(t, earned.IsZero())
}

func TestEarnedCommission_IgnoresUnpaid(t *testing.T) {
	p := plan("10000", "15", "1500")
	installments := []domain.Installment{
		unpaidInstallment("5000", domain.InstallmentStatusOverdue, true),
	}

	earned := service.EarnedCommission(p, installments)
	assert.True(t, earned.IsZero())
}

func TestEarnedCommission_ZeroTotalAmount(t *testing.T) {
	p := plan("0", "15", "1500")
	installments := []domain.Installment{
		paidInstallment("5000", "5000", true),
	}

	earned := service.EarnedCommission(p, installments)
	assert.True(t, earned.IsZero())
}

func TestEarnedCommission_FullPaymentEqualsExpected(t *testing.T) {
	p := plan("10000", "15", "1500")
	installments := []domain.Installment{
		paidInstallment("4000", "4000", true),
		paidInstallment("6000", "6000", true),
	}

	earned := service.EarnedCommission(p, installments)
	assert.Equal(t, "1500.00", earned.StringFixed(2))
}

func TestEarnedCommission_Monotonic(t *testing.T) {
	// More paid never yields less commission on the same plan.
	p := plan("9000", "12.5", "1125")
	prev := decimal.Zero
	for _, paid := range []string{"1000", "2500", "4000", "7000", "9000"} {
		installments := []domain.Installment{paidInstallment("9000", paid, true)}
		earned := service.EarnedCommission(p, installments)
		assert.True(t, earned.GreaterThanOrEqual(prev), "earned(%s)=%s < previous %s", paid, earned, prev)
		assert.True(t, earned.LessThanOrEqual(p.ExpectedCommission))
		prev = earned
	}
}

func TestEarnedCommission_RoundsOnceAtAggregation(t *testing.T) {
	// Three thirds of 100 at a 10% expected commission: rounding per row
	// would give 3 x 3.33 = 9.99; one final rounding gives 10.00.
	p := plan("100", "10", "10")
	installments := []domain.Installment{
		paidInstallment("33.333333", "33.333333", true),
		paidInstallment("33.333333", "33.333333", true),
		paidInstallment("33.333334", "33.333334", true),
	}

	earned := service.EarnedCommission(p, installments)
	assert.Equal(t, "10.00", earned.StringFixed(2))
}

func TestOutstandingCommission_UnpaidCommissionableOnly(t *testing.T) {
	p := plan("10000", "15", "1500")
	installments := []domain.Installment{
		unpaidInstallment("2000", domain.InstallmentStatusPending, true),
		unpaidInstallment("3000", domain.InstallmentStatusOverdue, true),
		unpaidInstallment("1000", domain.InstallmentStatusPartial, true),
		unpaidInstallment("4000", domain.InstallmentStatusPending, false),
		paidInstallment("1000", "1000", true),
		unpaidInstallment("500", domain.InstallmentStatusCancelled, true),
	}

	// (2000 + 3000 + 1000) * 15% = 900
	outstanding := service.OutstandingCommission(p, installments)
	assert.Equal(t, "900.00", outstanding.StringFixed(2))
}

func TestCommission_EarnedPlusOutstandingNeedNotEqualExpected(t *testing.T) {
	// The two figures use different formulas; their sum is not reconciled
	// against expected_commission and that is intentional.
	p := plan("10000", "20", "1500")
	installments := []domain.Installment{
		paidInstallment("5000", "5000", true),
		unpaidInstallment("5000", domain.InstallmentStatusOverdue, true),
	}

	earned := service.EarnedCommission(p, installments)
	outstanding := service.OutstandingCommission(p, installments)
	assert.Equal(t, "750.00", earned.StringFixed(2))
	assert.Equal(t, "1000.00", outstanding.StringFixed(2))
	assert.NotEqual(t, p.ExpectedCommission.StringFixed(2), earned.Add(outstanding).StringFixed(2))
}

func TestCommissionService_PlanCommission(t *testing.T) {
	planRepo := new(mocks.MockPaymentPlanRepo)
	instRepo := new(mocks.MockInstallmentRepo)
	svc := service.NewCommissionService(planRepo, instRepo)

	p := plan("10000", "15", "1500")
	installments := []domain.Installment{
		paidInstallment("5000", "5000", true),
		unpaidInstallment("5000", domain.InstallmentStatusOverdue, true),
	}
	planRepo.On("GetByIDAnyAgency", mock.Anything, p.ID).Return(p, nil)
	instRepo.On("ListByPlan", mock.Anything, p.AgencyID, p.ID).Return(installments, nil)

	breakdown, err := svc.PlanCommission(context.Background(), p.ID)

	assert.NoError(t, err)
	assert.Equal(t, p.ID, breakdown.PlanID)
	assert.Equal(t, "750.00", breakdown.EarnedCommission.StringFixed(2))
	assert.Equal(t, "750.00", breakdown.OutstandingCommission.StringFixed(2))
	planRepo.AssertExpectations(t)
	instRepo.AssertExpectations(t)
}

func TestCommissionService_PlanNotFound(t *testing.T) {
	planRepo := new(mocks.MockPaymentPlanRepo)
	instRepo := new(mocks.MockInstallmentRepo)
	svc := service.NewCommissionService(planRepo, instRepo)

	planID := uuid.New()
	planRepo.On("GetByIDAnyAgency", mock.Anything, planID).Return(nil, domain.ErrNotFound)

	breakdown, err := svc.PlanCommission(context.Background(), planID)

	assert.Nil(t, breakdown)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
