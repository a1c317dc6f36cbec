// file: internals/features/gym/members/service/eligibility.go
package service

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"gymku_backend/internals/features/gym/members/model"
	"gymku_backend/internals/helpers/apperr"
	"gymku_backend/internals/helpers/tenant"
)

// EligibilityChecker dipanggil di dalam transaksi enroll/attendance (tx yang sama).
type EligibilityChecker interface {
	// CheckEligible: member boleh booking kejadian pada tanggal occurrence (00:00 lokal gym).
	CheckEligible(tx *gorm.DB, t tenant.Tenant, memberID uuid.UUID, occurrence time.Time) error
	// ConsumeClass: kurangi saldo kelas (kalau dilacak) saat hadir.
	ConsumeClass(tx *gorm.DB, t tenant.Tenant, memberID uuid.UUID) error
}

// MembershipEligibility membaca gym_members.
type MembershipEligibility struct{}

func (MembershipEligibility) CheckEligible(tx *gorm.DB, t tenant.Tenant, memberID uuid.UUID, occurrence time.Time) error {
	m, err := findMember(tx, t, memberID)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			return apperr.InvalidState("member is not registered at this gym")
		}
		return err
	}
	return checkMembership(m, occurrence)
}

func (MembershipEligibility) ConsumeClass(tx *gorm.DB, t tenant.Tenant, memberID uuid.UUID) error {
	return tx.Model(&model.GymMemberModel{}).
		Where("gym_member_id = ? AND gym_member_gym_id = ?", memberID, t.GymID).
		Where("gym_member_remaining_classes IS NOT NULL AND gym_member_remaining_classes > 0").
		UpdateColumn("gym_member_remaining_classes", gorm.Expr("gym_member_remaining_classes - 1")).
		Error
}

// Tanggal membership disimpan sebagai tanggal kalender; bandingkan sebagai "YYYY-MM-DD".
func checkMembership(m *model.GymMemberModel, occurrence time.Time) error {
	day := occurrence.Format(dateLayout)

	if m.GymMemberMembershipStart != nil && day < m.GymMemberMembershipStart.UTC().Format(dateLayout) {
		return apperr.InvalidState("membership is not active yet on %s", day)
	}
	if m.GymMemberMembershipExpiry != nil && day > m.GymMemberMembershipExpiry.UTC().Format(dateLayout) {
		return apperr.InvalidState("membership expired before %s", day)
	}
	if m.GymMemberRemainingClasses != nil && *m.GymMemberRemainingClasses <= 0 {
		return apperr.InvalidState("no remaining classes on membership plan")
	}
	return nil
}

// AllowAll: tanpa pengecekan membership (mis. gym yang belum pakai modul membership).
type AllowAll struct{}

func (AllowAll) CheckEligible(*gorm.DB, tenant.Tenant, uuid.UUID, time.Time) error { return nil }
func (AllowAll) ConsumeClass(*gorm.DB, tenant.Tenant, uuid.UUID) error           { return nil }
