package booking

import "beyondborders/internal/models"

// Permissions is the capability set a viewer gets for one booking. It is the
// single source of truth for UI affordances; nothing else re-derives
// role/status checks.
type Permissions struct {
	CanPay          bool `json:"canPay"`
	CanCancel       bool `json:"canCancel"`
	CanEdit         bool `json:"canEdit"`
	CanChangeStatus bool `json:"canChangeStatus"`
	CanRefund       bool `json:"canRefund"`
	CanUploadDocs   bool `json:"canUploadDocs"`
}

// ResolvePermissions maps (role, status, ownership) to the capability set.
// Pure: no persistence, no side effects.
func ResolvePermissions(role models.Role, status models.Status, isOwner bool) Permissions {
	owner := role == models.RoleCustomer && isOwner
	admin := role == models.RoleAdmin

	return Permissions{
		CanPay:          owner && status == models.StatusPending,
		CanCancel:       owner && status != models.StatusCancelled,
		CanEdit:         admin,
		CanChangeStatus: admin,
		CanRefund:       admin && status == models.StatusConfirmed,
		CanUploadDocs:   owner && status != models.StatusCancelled,
	}
}
