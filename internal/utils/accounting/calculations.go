package accounting

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/stayfolio/pms_backend/internal/core/domain"
)

// Aggregates is the recomputed monetary projection of a folio's non-voided
// transactions. It is written back to the folio row inside the same database
// transaction that changed the underlying entries.
type Aggregates struct {
	TotalCharges        decimal.Decimal
	TotalPayments       decimal.Decimal
	TotalAdjustments    decimal.Decimal
	TotalTaxes          decimal.Decimal
	TotalServiceCharges decimal.Decimal
	TotalDiscounts      decimal.Decimal
	Balance             decimal.Decimal
}

// ComputeAggregates folds a folio's transactions into its aggregate totals.
// Voided entries contribute nothing. Sign conventions:
// charges/taxes/transfers add to TotalCharges (transfer-out carries a negative
// amount), payments add their absolute value to TotalPayments, refunds
// subtract from it, adjustments and corrections add signed amounts to
// TotalAdjustments. Balance = charges - payments + adjustments.
func ComputeAggregates(transactions []domain.FolioTransaction) Aggregates {
	agg := Aggregates{
		TotalCharges:        decimal.Zero,
		TotalPayments:       decimal.Zero,
		TotalAdjustments:    decimal.Zero,
		TotalTaxes:          decimal.Zero,
		TotalServiceCharges: decimal.Zero,
		TotalDiscounts:      decimal.Zero,
		Balance:             decimal.Zero,
	}

	for i := range transactions {
		txn := &transactions[i]
		if txn.IsVoided {
			continue
		}
		switch {
		case txn.IsChargeLike():
			agg.TotalCharges = agg.TotalCharges.Add(txn.Amount)
			if txn.Type == domain.TransactionTax {
				// Standalone tax posting: the amount itself is the tax.
				agg.TotalTaxes = agg.TotalTaxes.Add(txn.Amount)
			} else {
				agg.TotalTaxes = agg.TotalTaxes.Add(txn.TaxAmount)
			}
			agg.TotalServiceCharges = agg.TotalServiceCharges.Add(txn.ServiceChargeAmount)
			agg.TotalDiscounts = agg.TotalDiscounts.Add(txn.DiscountAmount)
		case txn.Type == domain.TransactionPayment:
			agg.TotalPayments = agg.TotalPayments.Add(txn.Amount.Abs())
		case txn.Type == domain.TransactionRefund:
			agg.TotalPayments = agg.TotalPayments.Sub(txn.Amount.Abs())
		case txn.IsAdjustmentLike():
			agg.TotalAdjustments = agg.TotalAdjustments.Add(txn.Amount)
		}
	}

	agg.Balance = agg.TotalCharges.Sub(agg.TotalPayments).Add(agg.TotalAdjustments)
	return agg
}

// ChargeBreakdown derives net and gross amounts for a charge-like posting.
// Net is the amount less any discount; gross adds tax and service charge on
// top of net.
func ChargeBreakdown(amount, tax, serviceCharge, discount decimal.Decimal) (net, gross decimal.Decimal) {
	net = amount.Sub(discount)
	gross = net.Add(tax).Add(serviceCharge)
	return net, gross
}

// IsSettled reports whether an outstanding balance is zero within the 0.01
// settlement tolerance.
func IsSettled(outstanding decimal.Decimal) bool {
	return outstanding.Abs().LessThanOrEqual(domain.BalanceEpsilon)
}

// RequiresPayment reports whether an outstanding balance still needs money
// collected (a credit balance does not).
func RequiresPayment(outstanding decimal.Decimal) bool {
	return outstanding.GreaterThan(domain.BalanceEpsilon)
}

// ValidateAssignment checks the payment-assignment invariant for a stored
// transaction: assigned + unassigned must equal the absolute amount.
func ValidateAssignment(txn *domain.FolioTransaction) error {
	if txn.Type != domain.TransactionPayment {
		return nil
	}
	sum := txn.AssignedAmount.Add(txn.UnassignedAmount)
	if !sum.Equal(txn.Amount.Abs()) {
		return fmt.Errorf("payment %s assignment mismatch: assigned %s + unassigned %s != amount %s",
			txn.TransactionID, txn.AssignedAmount.String(), txn.UnassignedAmount.String(), txn.Amount.Abs().String())
	}
	return nil
}
