package constants

import "fmt"

const (
	RoleOwner  = "owner"
	RoleStaff  = "staff"
	RoleMember = "member"
)

const (
	ErrOnlyStaffCanAccess = "❌ Hanya staff atau owner gym yang boleh mengakses fitur %s."
	ErrOnlySelfOrStaff    = "❌ Hanya member yang bersangkutan atau staff yang boleh mengakses %s."
)

func RoleErrorStaff(feature string) string {
	return fmt.Sprintf(ErrOnlyStaffCanAccess, feature)
}

func RoleErrorSelfOrStaff(feature string) string {
	return fmt.Sprintf(ErrOnlySelfOrStaff, feature)
}

var (
	AllRoles   = []string{RoleOwner, RoleStaff, RoleMember}
	StaffRoles = []string{RoleOwner, RoleStaff}
)
