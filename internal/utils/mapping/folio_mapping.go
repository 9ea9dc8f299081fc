package mapping

import (
	"github.com/stayfolio/pms_backend/internal/core/domain"
	"github.com/stayfolio/pms_backend/internal/models"
)

// ToModelFolio converts a domain Folio to its database row shape.
func ToModelFolio(d domain.Folio) models.Folio {
	return models.Folio{
		FolioID:             d.FolioID,
		HotelID:             d.HotelID,
		FolioNumber:         d.FolioNumber,
		FolioType:           string(d.FolioType),
		Status:              string(d.Status),
		Settlement:          string(d.Settlement),
		Workflow:            string(d.Workflow),
		GuestID:             d.GuestID,
		CompanyID:           d.CompanyID,
		GroupID:             d.GroupID,
		ReservationID:       d.ReservationID,
		TotalCharges:        d.TotalCharges,
		TotalPayments:       d.TotalPayments,
		TotalAdjustments:    d.TotalAdjustments,
		TotalTaxes:          d.TotalTaxes,
		TotalServiceCharges: d.TotalServiceCharges,
		TotalDiscounts:      d.TotalDiscounts,
		Balance:             d.Balance,
		CreditLimit:         d.CreditLimit,
		CurrencyCode:        d.CurrencyCode,
		OpenedAt:            d.OpenedAt,
		ClosedAt:            d.ClosedAt,
		ClosedBy:            d.ClosedBy,
		AuditFields:         ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainFolio converts a database row to a domain Folio.
func ToDomainFolio(m models.Folio) domain.Folio {
	return domain.Folio{
		FolioID:             m.FolioID,
		HotelID:             m.HotelID,
		FolioNumber:         m.FolioNumber,
		FolioType:           domain.FolioType(m.FolioType),
		Status:              domain.FolioStatus(m.Status),
		Settlement:          domain.SettlementStatus(m.Settlement),
		Workflow:            domain.WorkflowStatus(m.Workflow),
		GuestID:             m.GuestID,
		CompanyID:           m.CompanyID,
		GroupID:             m.GroupID,
		ReservationID:       m.ReservationID,
		TotalCharges:        m.TotalCharges,
		TotalPayments:       m.TotalPayments,
		TotalAdjustments:    m.TotalAdjustments,
		TotalTaxes:          m.TotalTaxes,
		TotalServiceCharges: m.TotalServiceCharges,
		TotalDiscounts:      m.TotalDiscounts,
		Balance:             m.Balance,
		CreditLimit:         m.CreditLimit,
		CurrencyCode:        m.CurrencyCode,
		OpenedAt:            m.OpenedAt,
		ClosedAt:            m.ClosedAt,
		ClosedBy:            m.ClosedBy,
		AuditFields:         ToDomainAuditFields(m.AuditFields),
	}
}
