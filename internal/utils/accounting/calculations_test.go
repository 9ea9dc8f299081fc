package accounting_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/stayfolio/pms_backend/internal/core/domain"
	"github.com/stayfolio/pms_backend/internal/utils/accounting"
)

func TestComputeAggregates_BalanceInvariant(t *testing.T) {
	txns := []domain.FolioTransaction{
		{Type: domain.TransactionCharge, Amount: decimal.NewFromInt(300), TaxAmount: decimal.NewFromInt(30)},
		{Type: domain.TransactionTax, Amount: decimal.NewFromInt(15)},
		{Type: domain.TransactionPayment, Amount: decimal.NewFromInt(200)},
		{Type: domain.TransactionRefund, Amount: decimal.NewFromInt(50)},
		{Type: domain.TransactionAdjustment, Amount: decimal.NewFromInt(-25)},
		{Type: domain.TransactionCorrection, Amount: decimal.NewFromInt(10)},
	}

	agg := accounting.ComputeAggregates(txns)

	// charges: 300 + 15 (standalone tax is charge-like)
	assert.True(t, agg.TotalCharges.Equal(decimal.NewFromInt(315)), "charges: %s", agg.TotalCharges)
	// payments: 200 - 50 refund
	assert.True(t, agg.TotalPayments.Equal(decimal.NewFromInt(150)), "payments: %s", agg.TotalPayments)
	// adjustments: -25 + 10
	assert.True(t, agg.TotalAdjustments.Equal(decimal.NewFromInt(-15)), "adjustments: %s", agg.TotalAdjustments)
	// taxes: embedded 30 + standalone 15
	assert.True(t, agg.TotalTaxes.Equal(decimal.NewFromInt(45)), "taxes: %s", agg.TotalTaxes)

	expected := agg.TotalCharges.Sub(agg.TotalPayments).Add(agg.TotalAdjustments)
	assert.True(t, agg.Balance.Equal(expected), "balance %s != charges - payments + adjustments %s", agg.Balance, expected)
	assert.True(t, agg.Balance.Equal(decimal.NewFromInt(150)))
}

func TestComputeAggregates_VoidedExcluded(t *testing.T) {
	txns := []domain.FolioTransaction{
		{Type: domain.TransactionCharge, Amount: decimal.NewFromInt(100)},
		{Type: domain.TransactionCharge, Amount: decimal.NewFromInt(999), IsVoided: true},
		{Type: domain.TransactionPayment, Amount: decimal.NewFromInt(500), IsVoided: true},
	}

	agg := accounting.ComputeAggregates(txns)

	assert.True(t, agg.TotalCharges.Equal(decimal.NewFromInt(100)))
	assert.True(t, agg.TotalPayments.IsZero())
	assert.True(t, agg.Balance.Equal(decimal.NewFromInt(100)))
}

func TestComputeAggregates_TransferPairNetsToZero(t *testing.T) {
	amount := decimal.NewFromInt(80)
	source := accounting.ComputeAggregates([]domain.FolioTransaction{
		{Type: domain.TransactionCharge, Amount: decimal.NewFromInt(80)},
		{Type: domain.TransactionTransfer, Amount: amount.Neg()},
	})
	target := accounting.ComputeAggregates([]domain.FolioTransaction{
		{Type: domain.TransactionTransfer, Amount: amount},
	})

	assert.True(t, source.Balance.IsZero(), "source balance: %s", source.Balance)
	assert.True(t, target.Balance.Equal(amount))
	// the pair moves the balance without creating or destroying money
	assert.True(t, source.Balance.Add(target.Balance).Equal(decimal.NewFromInt(80)))
}

func TestComputeAggregates_Empty(t *testing.T) {
	agg := accounting.ComputeAggregates(nil)

	assert.True(t, agg.Balance.IsZero())
	assert.True(t, agg.TotalCharges.IsZero())
	assert.True(t, agg.TotalPayments.IsZero())
}

func TestChargeBreakdown(t *testing.T) {
	net, gross := accounting.ChargeBreakdown(
		decimal.NewFromInt(200),
		decimal.NewFromInt(20),
		decimal.NewFromInt(10),
		decimal.NewFromInt(30),
	)

	assert.True(t, net.Equal(decimal.NewFromInt(170)))
	assert.True(t, gross.Equal(decimal.NewFromInt(200)))
}

func TestIsSettled(t *testing.T) {
	tests := []struct {
		name        string
		outstanding decimal.Decimal
		want        bool
	}{
		{"exact zero", decimal.Zero, true},
		{"within tolerance positive", decimal.NewFromFloat(0.01), true},
		{"within tolerance negative", decimal.NewFromFloat(-0.01), true},
		{"just over tolerance", decimal.NewFromFloat(0.011), false},
		{"outstanding balance", decimal.NewFromInt(50), false},
		{"credit balance", decimal.NewFromInt(-50), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, accounting.IsSettled(tt.outstanding))
		})
	}
}

func TestRequiresPayment(t *testing.T) {
	tests := []struct {
		name        string
		outstanding decimal.Decimal
		want        bool
	}{
		{"zero balance", decimal.Zero, false},
		{"sub-cent remainder", decimal.NewFromFloat(0.005), false},
		{"outstanding balance", decimal.NewFromFloat(0.02), true},
		{"credit balance", decimal.NewFromInt(-10), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, accounting.RequiresPayment(tt.outstanding))
		})
	}
}

func TestValidateAssignment(t *testing.T) {
	valid := &domain.FolioTransaction{
		Type:             domain.TransactionPayment,
		Amount:           decimal.NewFromInt(500),
		AssignedAmount:   decimal.NewFromInt(200),
		UnassignedAmount: decimal.NewFromInt(300),
	}
	assert.NoError(t, accounting.ValidateAssignment(valid))

	broken := &domain.FolioTransaction{
		TransactionID:    "txn-1",
		Type:             domain.TransactionPayment,
		Amount:           decimal.NewFromInt(500),
		AssignedAmount:   decimal.NewFromInt(200),
		UnassignedAmount: decimal.NewFromInt(200),
	}
	assert.Error(t, accounting.ValidateAssignment(broken))

	// non-payments carry no assignment invariant
	charge := &domain.FolioTransaction{
		Type:   domain.TransactionCharge,
		Amount: decimal.NewFromInt(100),
	}
	assert.NoError(t, accounting.ValidateAssignment(charge))
}
