package domain

// Role is the caller's resolved role within a company. Resolution happens in
// the request layer; the core only consumes it.
type Role string

const (
	RoleAdmin      Role = "ADMIN"
	RoleAccountant Role = "ACCOUNTANT"
	RoleClerk      Role = "CLERK"
	RoleViewer     Role = "VIEWER"
)

// Capability names a guarded action on the accounting core.
type Capability string

const (
	CapJournalCreate  Capability = "journal:create"
	CapJournalPost    Capability = "journal:post"
	CapJournalReverse Capability = "journal:reverse"
	CapJournalDelete  Capability = "journal:delete"
	CapAccountManage  Capability = "account:manage"
	CapReconSave      Capability = "recon:save"
	CapReconAuthorize Capability = "recon:authorize"
	CapReconApprove   Capability = "recon:approve"
	CapReconSubmit    Capability = "recon:submit"
)

// Actor is the already-resolved identity a request arrives with. Resolution
// (token verification, role lookup) happens upstream of the core.
type Actor struct {
	UserID string
	Role   Role
	Type   ActorType
}

// CapabilityChecker decides whether a role may perform an action. Injected into
// services so no role literals leak into workflow logic.
type CapabilityChecker func(role Role, action Capability) bool

// DefaultCapabilityChecker implements the shipped policy: admin and accountant
// hold every capability, a clerk may create and delete draft journals, every
// other role is read-only.
func DefaultCapabilityChecker(role Role, action Capability) bool {
	switch role {
	case RoleAdmin, RoleAccountant:
		return true
	case RoleClerk:
		return action == CapJournalCreate || action == CapJournalDelete
	default:
		return false
	}
}
