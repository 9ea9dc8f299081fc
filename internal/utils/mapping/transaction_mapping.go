package mapping

import (
	"github.com/stayfolio/pms_backend/internal/core/domain"
	"github.com/stayfolio/pms_backend/internal/models"
)

// ToModelTransaction converts a domain FolioTransaction to its row shape.
func ToModelTransaction(d domain.FolioTransaction) models.FolioTransaction {
	return models.FolioTransaction{
		TransactionID:       d.TransactionID,
		FolioID:             d.FolioID,
		HotelID:             d.HotelID,
		TransactionNumber:   d.TransactionNumber,
		Type:                string(d.Type),
		Category:            string(d.Category),
		Status:              string(d.Status),
		Amount:              d.Amount,
		TaxAmount:           d.TaxAmount,
		ServiceChargeAmount: d.ServiceChargeAmount,
		DiscountAmount:      d.DiscountAmount,
		NetAmount:           d.NetAmount,
		GrossAmount:         d.GrossAmount,
		CurrencyCode:        d.CurrencyCode,
		IsVoided:            d.IsVoided,
		VoidedAt:            d.VoidedAt,
		VoidedBy:            d.VoidedBy,
		VoidReason:          d.VoidReason,
		IsRefund:            d.IsRefund,
		CorrectionOf:        d.CorrectionOf,
		TransferFolioID:     d.TransferFolioID,
		AssignedAmount:      d.AssignedAmount,
		UnassignedAmount:    d.UnassignedAmount,
		AssignmentHistory:   ToModelAssignmentEntries(d.AssignmentHistory),
		TransactionDate:     d.TransactionDate,
		PostingDate:         d.PostingDate,
		WorkingDate:         d.WorkingDate,
		PaymentMethodID:     d.PaymentMethodID,
		ReservationID:       d.ReservationID,
		GuestID:             d.GuestID,
		RoomID:              d.RoomID,
		Description:         d.Description,
		AuditFields:         ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransaction converts a database row to a domain FolioTransaction.
func ToDomainTransaction(m models.FolioTransaction) domain.FolioTransaction {
	return domain.FolioTransaction{
		TransactionID:       m.TransactionID,
		FolioID:             m.FolioID,
		HotelID:             m.HotelID,
		TransactionNumber:   m.TransactionNumber,
		Type:                domain.TransactionType(m.Type),
		Category:            domain.TransactionCategory(m.Category),
		Status:              domain.TransactionStatus(m.Status),
		Amount:              m.Amount,
		TaxAmount:           m.TaxAmount,
		ServiceChargeAmount: m.ServiceChargeAmount,
		DiscountAmount:      m.DiscountAmount,
		NetAmount:           m.NetAmount,
		GrossAmount:         m.GrossAmount,
		CurrencyCode:        m.CurrencyCode,
		IsVoided:            m.IsVoided,
		VoidedAt:            m.VoidedAt,
		VoidedBy:            m.VoidedBy,
		VoidReason:          m.VoidReason,
		IsRefund:            m.IsRefund,
		CorrectionOf:        m.CorrectionOf,
		TransferFolioID:     m.TransferFolioID,
		AssignedAmount:      m.AssignedAmount,
		UnassignedAmount:    m.UnassignedAmount,
		AssignmentHistory:   ToDomainAssignmentEntries(m.AssignmentHistory),
		TransactionDate:     m.TransactionDate,
		PostingDate:         m.PostingDate,
		WorkingDate:         m.WorkingDate,
		PaymentMethodID:     m.PaymentMethodID,
		ReservationID:       m.ReservationID,
		GuestID:             m.GuestID,
		RoomID:              m.RoomID,
		Description:         m.Description,
		AuditFields:         ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTransactionSlice converts a slice of rows to domain transactions.
func ToDomainTransactionSlice(ms []models.FolioTransaction) []domain.FolioTransaction {
	ds := make([]domain.FolioTransaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}

// ToModelAssignmentEntries converts assignment history to the stored shape.
func ToModelAssignmentEntries(ds []domain.AssignmentEntry) []models.AssignmentEntry {
	if ds == nil {
		return nil
	}
	ms := make([]models.AssignmentEntry, len(ds))
	for i, d := range ds {
		ms[i] = models.AssignmentEntry{
			Timestamp:      d.Timestamp,
			ActorID:        d.ActorID,
			PreviousAmount: d.PreviousAmount,
			NewAmount:      d.NewAmount,
			Notes:          d.Notes,
		}
	}
	return ms
}

// ToDomainAssignmentEntries converts stored assignment history to domain form.
func ToDomainAssignmentEntries(ms []models.AssignmentEntry) []domain.AssignmentEntry {
	if ms == nil {
		return nil
	}
	ds := make([]domain.AssignmentEntry, len(ms))
	for i, m := range ms {
		ds[i] = domain.AssignmentEntry{
			Timestamp:      m.Timestamp,
			ActorID:        m.ActorID,
			PreviousAmount: m.PreviousAmount,
			NewAmount:      m.NewAmount,
			Notes:          m.Notes,
		}
	}
	return ds
}
