package authorize

import (
	"context"
	"fmt"
	"log/slog"
)

// SeedDefaultPolicies installs the baseline RBAC policies. Re-running is
// safe; already-present rules are skipped by Casbin.
func SeedDefaultPolicies(ctx context.Context, auth IAuthorization) error {
	logger := slog.Default()

	policies := []PermissionPolicy{
		// Platform admin: everything, everywhere.
		{RolePlatformAdmin, DomainSys, WildcardResource, WildcardAction, EffectAllow},

		// Doctors run their own practice surface.
		{RoleDoctor, WildcardDomain, ResourceAvailability, ActionManage, EffectAllow},
		{RoleDoctor, WildcardDomain, ResourceAppointment, ActionManage, EffectAllow},
		{RoleDoctor, WildcardDomain, ResourceDoctorProfile, ActionUpdate, EffectAllow},
		{RoleDoctor, WildcardDomain, ResourceDoctorProfile, ActionRead, EffectAllow},
		{RoleDoctor, WildcardDomain, ResourceConversation, ActionManage, EffectAllow},
		{RoleDoctor, WildcardDomain, ResourceMessage, ActionManage, EffectAllow},
		{RoleDoctor, WildcardDomain, ResourcePsychTest, ActionRead, EffectAllow},
		{RoleDoctor, WildcardDomain, ResourcePsychTest, ActionList, EffectAllow},
		{RoleDoctor, WildcardDomain, ResourceNotification, ActionRead, EffectAllow},
		{RoleDoctor, WildcardDomain, ResourceNotification, ActionList, EffectAllow},
		{RoleDoctor, WildcardDomain, ResourceNotification, ActionUpdate, EffectAllow},
		{RoleDoctor, WildcardDomain, ResourceFile, ActionCreate, EffectAllow},
		{RoleDoctor, WildcardDomain, ResourceFile, ActionRead, EffectAllow},
		{RoleDoctor, WildcardDomain, ResourceUser, ActionRead, EffectAllow},

		// Patients book, talk, and take assessments.
		{RolePatient, WildcardDomain, ResourceAppointment, ActionCreate, EffectAllow},
		{RolePatient, WildcardDomain, ResourceAppointment, ActionRead, EffectAllow},
		{RolePatient, WildcardDomain, ResourceAppointment, ActionList, EffectAllow},
		{RolePatient, WildcardDomain, ResourceAppointment, ActionUpdate, EffectAllow},
		{RolePatient, WildcardDomain, ResourceDoctorProfile, ActionRead, EffectAllow},
		{RolePatient, WildcardDomain, ResourceDoctorProfile, ActionList, EffectAllow},
		{RolePatient, WildcardDomain, ResourceAvailability, ActionRead, EffectAllow},
		{RolePatient, WildcardDomain, ResourceConversation, ActionCreate, EffectAllow},
		{RolePatient, WildcardDomain, ResourceConversation, ActionRead, EffectAllow},
		{RolePatient, WildcardDomain, ResourceConversation, ActionList, EffectAllow},
		{RolePatient, WildcardDomain, ResourceMessage, ActionCreate, EffectAllow},
		{RolePatient, WildcardDomain, ResourceMessage, ActionRead, EffectAllow},
		{RolePatient, WildcardDomain, ResourceMessage, ActionList, EffectAllow},
		{RolePatient, WildcardDomain, ResourceMessage, ActionDelete, EffectAllow},
		{RolePatient, WildcardDomain, ResourcePsychTest, ActionCreate, EffectAllow},
		{RolePatient, WildcardDomain, ResourcePsychTest, ActionRead, EffectAllow},
		{RolePatient, WildcardDomain, ResourcePsychTest, ActionList, EffectAllow},
		{RolePatient, WildcardDomain, ResourceNotification, ActionRead, EffectAllow},
		{RolePatient, WildcardDomain, ResourceNotification, ActionList, EffectAllow},
		{RolePatient, WildcardDomain, ResourceNotification, ActionUpdate, EffectAllow},
		{RolePatient, WildcardDomain, ResourceFile, ActionCreate, EffectAllow},
		{RolePatient, WildcardDomain, ResourceFile, ActionRead, EffectAllow},

		// Every user owns their account surface.
		{RoleUserSelf, WildcardDomain, ResourceUser, ActionManage, EffectAllow},
		{RoleUserSelf, WildcardDomain, ResourceAuthSession, ActionManage, EffectAllow},
		{RoleUserSelf, WildcardDomain, ResourceFile, ActionManage, EffectAllow},
	}

	for _, p := range policies {
		added, err := auth.AddPermission(ctx, p.Subject, p.Domain, p.Object, p.Action, p.Effect)
		if err != nil {
			logger.Error("failed to add policy", "policy", p, "error", err)
			return err
		}
		if added {
			logger.Debug("added policy", "role", p.Subject, "domain", p.Domain, "resource", p.Object, "action", p.Action)
		}
	}

	logger.Info("seeded default RBAC policies", "count", len(policies))
	return nil
}

// AssignUserSelfRole grants the user:self role in the user's private domain.
// Call this when creating a new user.
func AssignUserSelfRole(ctx context.Context, auth IAuthorization, userID string) error {
	_, err := auth.AddRoleForUserInDomain(ctx, GroupSubject(userID), RoleUserSelf, UserDomain(userID))
	return err
}

// AssignAccountRole maps the users.role column value to its Casbin role and
// grants it. The platform admin role lives in the sys domain; patient and
// doctor roles apply across domains.
func AssignAccountRole(ctx context.Context, auth IAuthorization, userID, accountRole string) error {
	role, ok := AccountRoleToRBACRole[accountRole]
	if !ok {
		return fmt.Errorf("%w: unknown account role: %q", ErrInvalidArgs, accountRole)
	}

	domain := WildcardDomain
	if role == RolePlatformAdmin {
		domain = DomainSys
	}

	_, err := auth.AddRoleForUserInDomain(ctx, GroupSubject(userID), role, domain)
	return err
}

// RemoveAccountRole revokes the Casbin role derived from a users.role value.
func RemoveAccountRole(ctx context.Context, auth IAuthorization, userID, accountRole string) error {
	role, ok := AccountRoleToRBACRole[accountRole]
	if !ok {
		return fmt.Errorf("%w: unknown account role: %q", ErrInvalidArgs, accountRole)
	}

	domain := WildcardDomain
	if role == RolePlatformAdmin {
		domain = DomainSys
	}

	_, err := auth.RemoveRoleForUserInDomain(ctx, GroupSubject(userID), role, domain)
	return err
}
