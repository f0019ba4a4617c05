package authorize

import (
	"fmt"
	"regexp"
)

type Action string
type Resource string
type Role string
type Domain string

// ----------------------------
// Actions
// ----------------------------

const (
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
	ActionList   Action = "list"

	// ActionManage covers CRUD plus list.
	ActionManage Action = "manage"

	// RBAC-specific actions
	ActionGrant  Action = "grant"
	ActionRevoke Action = "revoke"
)

const (
	WildcardAction Action = "*"
)

var KnownActions = map[Action]struct{}{
	ActionCreate: {}, ActionRead: {}, ActionUpdate: {}, ActionDelete: {}, ActionList: {},
	ActionManage: {},
	ActionGrant:  {}, ActionRevoke: {},
}

// ----------------------------
// Resources
// ----------------------------

const (
	WildcardResource Resource = "*"

	// Identity / auth
	ResourceUser        Resource = "user"
	ResourceAuthSession Resource = "auth_session"

	// Care delivery
	ResourceDoctorProfile Resource = "doctor_profile"
	ResourceAvailability  Resource = "availability"
	ResourceAppointment   Resource = "appointment"

	// Communication
	ResourceConversation Resource = "conversation"
	ResourceMessage      Resource = "message"
	ResourceNotification Resource = "notification"

	// Assessments and files
	ResourcePsychTest Resource = "psych_test"
	ResourceFile      Resource = "file"

	// System / platform admin
	ResourceAudit Resource = "audit"
	ResourceRBAC  Resource = "rbac"
)

var KnownResources = map[Resource]struct{}{
	ResourceUser: {}, ResourceAuthSession: {},
	ResourceDoctorProfile: {}, ResourceAvailability: {}, ResourceAppointment: {},
	ResourceConversation: {}, ResourceMessage: {}, ResourceNotification: {},
	ResourcePsychTest: {}, ResourceFile: {},
	ResourceAudit: {}, ResourceRBAC: {},
}

// ----------------------------
// Roles
// ----------------------------
//
// Policy subjects assigned to users via grouping policies.

const (
	WildcardRole Role = "*"

	// Platform role (domain = sys)
	RolePlatformAdmin Role = "role:platform:admin"

	// Account roles (domain = *)
	RoleDoctor  Role = "role:doctor"
	RolePatient Role = "role:patient"

	// Private user scope (domain = user:<uuid>)
	RoleUserSelf Role = "role:user:self"
)

var KnownRoles = map[Role]struct{}{
	RolePlatformAdmin: {},
	RoleDoctor:        {},
	RolePatient:       {},
	RoleUserSelf:      {},
}

// Arabic display names
var RoleDisplayNamesAR = map[Role]string{
	RolePlatformAdmin: "مشرف المنصة",
	RoleDoctor:        "معالج",
	RolePatient:       "مستفيد",
	RoleUserSelf:      "المستخدم نفسه",
}

// Account role strings as stored in the users.role column.
const (
	AccountRolePatient = "patient"
	AccountRoleDoctor  = "doctor"
	AccountRoleAdmin   = "admin"
)

// AccountRoleToRBACRole maps DB role values to Casbin roles.
var AccountRoleToRBACRole = map[string]Role{
	AccountRolePatient: RolePatient,
	AccountRoleDoctor:  RoleDoctor,
	AccountRoleAdmin:   RolePlatformAdmin,
}

// ----------------------------
// Domains
// ----------------------------

const (
	DomainSys Domain = "sys"

	DomainPrefixUser Domain = "user:"

	WildcardDomain Domain = "*"
)

var reUUID = regexp.MustCompile(`^[0-9a-fA-F-]{36}$`)

// UserDomain returns the private domain for a user's own resources.
func UserDomain(userID string) Domain {
	return Domain(fmt.Sprintf("%s%s", DomainPrefixUser, userID))
}

// IsValidDomain checks whether d is a recognised domain string.
func IsValidDomain(d Domain) bool {
	if d == DomainSys || d == WildcardDomain {
		return true
	}

	s := string(d)
	if len(s) > len(DomainPrefixUser) && s[:len(DomainPrefixUser)] == string(DomainPrefixUser) {
		return reUUID.MatchString(s[len(DomainPrefixUser):])
	}
	return false
}

// ----------------------------
// Casbin tuple helpers
// ----------------------------

type PolicyEffect string

const (
	EffectAllow PolicyEffect = "allow"
	EffectDeny  PolicyEffect = "deny"
)

// GroupSubject is the g.sub in Casbin: a concrete principal id.
type GroupSubject string

// Grouping rows: g, user_id, role, domain
type GroupingPolicy struct {
	Subject GroupSubject
	Role    Role
	Domain  Domain
}

// Permission rows: p, role, domain, resource, action, eft
type PermissionPolicy struct {
	Subject Role
	Domain  Domain
	Object  Resource
	Action  Action
	Effect  PolicyEffect
}
