package mapping

import (
	"github.com/stayfolio/pms_backend/internal/core/domain"
	"github.com/stayfolio/pms_backend/internal/models"
)

// ToModelSnapshot converts a domain snapshot to its row shape.
func ToModelSnapshot(d domain.DailyLedgerSnapshot) models.DailyLedgerSnapshot {
	return models.DailyLedgerSnapshot{
		SnapshotID:     d.SnapshotID,
		HotelID:        d.HotelID,
		BusinessDate:   d.BusinessDate,
		LedgerKind:     string(d.LedgerKind),
		OpeningBalance: d.OpeningBalance,
		TotalInflow:    d.TotalInflow,
		TotalOutflow:   d.TotalOutflow,
		ClosingBalance: d.ClosingBalance,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainSnapshot converts a database row to a domain snapshot.
func ToDomainSnapshot(m models.DailyLedgerSnapshot) domain.DailyLedgerSnapshot {
	return domain.DailyLedgerSnapshot{
		SnapshotID:     m.SnapshotID,
		HotelID:        m.HotelID,
		BusinessDate:   m.BusinessDate,
		LedgerKind:     domain.LedgerKind(m.LedgerKind),
		OpeningBalance: m.OpeningBalance,
		TotalInflow:    m.TotalInflow,
		TotalOutflow:   m.TotalOutflow,
		ClosingBalance: m.ClosingBalance,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}
