package mapping

import (
	"github.com/opspay/payroll_backend/internal/core/domain"
	"github.com/opspay/payroll_backend/internal/models"
)

// ToModelPaySchedule converts a domain schedule to its model form.
func ToModelPaySchedule(d domain.PaySchedule) models.PaySchedule {
	return models.PaySchedule{
		ScheduleID:  d.ScheduleID,
		Name:        d.Name,
		CycleDays:   d.CycleDays,
		LastRunDate: d.LastRunDate,
		NextRunDate: d.NextRunDate,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPaySchedule converts a model schedule to its domain form.
func ToDomainPaySchedule(m models.PaySchedule) domain.PaySchedule {
	return domain.PaySchedule{
		ScheduleID:  m.ScheduleID,
		Name:        m.Name,
		CycleDays:   m.CycleDays,
		LastRunDate: m.LastRunDate,
		NextRunDate: m.NextRunDate,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
