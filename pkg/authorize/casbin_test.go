package authorize

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	casbin "github.com/casbin/casbin/v2"
	fileadapter "github.com/casbin/casbin/v2/persist/file-adapter"
)

// createTestEnforcer builds an in-memory enforcer mirroring the production
// model file.
func createTestEnforcer(t *testing.T) *casbin.DistributedEnforcer {
	t.Helper()

	tmpDir := t.TempDir()

	modelPath := filepath.Join(tmpDir, "model.conf")
	modelContent := `[request_definition]
r = sub, dom, obj, act

[policy_definition]
p = sub, dom, obj, act, eft

[role_definition]
g = _, _, _

[policy_effect]
e = some(where (p.eft == allow)) && !some(where (p.eft == deny))

[matchers]
m = (g(r.sub, p.sub, r.dom) || g(r.sub, p.sub, "*") || g(r.sub, p.sub, "sys")) && (p.dom == "*" || p.dom == r.dom) && (p.obj == "*" || p.obj == r.obj) && (p.act == "*" || p.act == r.act || (p.act == "manage" && (r.act == "create" || r.act == "read" || r.act == "update" || r.act == "delete" || r.act == "list")))
`
	if err := os.WriteFile(modelPath, []byte(modelContent), 0644); err != nil {
		t.Fatalf("failed to write model file: %v", err)
	}

	policyPath := filepath.Join(tmpDir, "policy.csv")
	if err := os.WriteFile(policyPath, []byte(""), 0644); err != nil {
		t.Fatalf("failed to write policy file: %v", err)
	}

	e, err := casbin.NewDistributedEnforcer(modelPath, fileadapter.NewAdapter(policyPath))
	if err != nil {
		t.Fatalf("failed to create enforcer: %v", err)
	}

	e.EnableAutoSave(false)
	e.EnableEnforce(true)

	return e
}

func TestNewAuthorization(t *testing.T) {
	t.Run("nil enforcer", func(t *testing.T) {
		if _, err := NewAuthorization(nil, false); err == nil {
			t.Error("expected error for nil enforcer")
		}
	})

	t.Run("valid enforcer", func(t *testing.T) {
		auth, err := NewAuthorization(createTestEnforcer(t), false)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if auth == nil {
			t.Fatal("expected non-nil authorization")
		}
	})
}

func TestEnforce(t *testing.T) {
	auth, _ := NewAuthorization(createTestEnforcer(t), false)
	ctx := context.Background()

	patientID := "550e8400-e29b-41d4-a716-446655440000"
	otherID := "550e8400-e29b-41d4-a716-446655440001"

	if _, err := auth.AddRoleForUserInDomain(ctx, GroupSubject(patientID), RolePatient, WildcardDomain); err != nil {
		t.Fatalf("failed to add role: %v", err)
	}
	if _, err := auth.AddPermission(ctx, RolePatient, WildcardDomain, ResourceAppointment, ActionCreate, EffectAllow); err != nil {
		t.Fatalf("failed to add permission: %v", err)
	}

	tests := []struct {
		name     string
		subject  GroupSubject
		domain   Domain
		resource Resource
		action   Action
		want     bool
		wantErr  bool
	}{
		{
			name:     "allowed when permission exists",
			subject:  GroupSubject(patientID),
			domain:   UserDomain(patientID),
			resource: ResourceAppointment,
			action:   ActionCreate,
			want:     true,
		},
		{
			name:     "denied without role",
			subject:  GroupSubject(otherID),
			domain:   UserDomain(otherID),
			resource: ResourceAppointment,
			action:   ActionCreate,
			want:     false,
		},
		{
			name:     "denied for unpermitted action",
			subject:  GroupSubject(patientID),
			domain:   UserDomain(patientID),
			resource: ResourceAvailability,
			action:   ActionDelete,
			want:     false,
		},
		{
			name:     "empty subject",
			subject:  "",
			domain:   UserDomain(patientID),
			resource: ResourceAppointment,
			action:   ActionCreate,
			wantErr:  true,
		},
		{
			name:     "invalid domain",
			subject:  GroupSubject(patientID),
			domain:   "bogus",
			resource: ResourceAppointment,
			action:   ActionCreate,
			wantErr:  true,
		},
		{
			name:     "unknown resource",
			subject:  GroupSubject(patientID),
			domain:   UserDomain(patientID),
			resource: "spaceship",
			action:   ActionCreate,
			wantErr:  true,
		},
		{
			name:     "unknown action",
			subject:  GroupSubject(patientID),
			domain:   UserDomain(patientID),
			resource: ResourceAppointment,
			action:   "teleport",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := auth.Enforce(ctx, tt.subject, tt.domain, tt.resource, tt.action)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error but got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Enforce() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEnforce_ManageCoversCRUD(t *testing.T) {
	auth, _ := NewAuthorization(createTestEnforcer(t), false)
	ctx := context.Background()

	doctorID := "550e8400-e29b-41d4-a716-446655440002"

	if _, err := auth.AddRoleForUserInDomain(ctx, GroupSubject(doctorID), RoleDoctor, WildcardDomain); err != nil {
		t.Fatalf("failed to add role: %v", err)
	}
	if _, err := auth.AddPermission(ctx, RoleDoctor, WildcardDomain, ResourceAvailability, ActionManage, EffectAllow); err != nil {
		t.Fatalf("failed to add permission: %v", err)
	}

	for _, action := range []Action{ActionCreate, ActionRead, ActionUpdate, ActionDelete, ActionList} {
		ok, err := auth.Enforce(ctx, GroupSubject(doctorID), UserDomain(doctorID), ResourceAvailability, action)
		if err != nil {
			t.Fatalf("Enforce(%s): %v", action, err)
		}
		if !ok {
			t.Errorf("expected manage to cover %s", action)
		}
	}

	// manage must not imply RBAC actions
	ok, err := auth.Enforce(ctx, GroupSubject(doctorID), UserDomain(doctorID), ResourceAvailability, ActionGrant)
	if err != nil {
		t.Fatalf("Enforce(grant): %v", err)
	}
	if ok {
		t.Error("manage should not cover grant")
	}
}

func TestEnforce_AdminBypass(t *testing.T) {
	auth, _ := NewAuthorization(createTestEnforcer(t), true)
	ctx := context.Background()

	adminID := "550e8400-e29b-41d4-a716-446655440003"

	if _, err := auth.AddRoleForUserInDomain(ctx, GroupSubject(adminID), RolePlatformAdmin, DomainSys); err != nil {
		t.Fatalf("failed to add role: %v", err)
	}

	ok, err := auth.Enforce(ctx, GroupSubject(adminID), UserDomain(adminID), ResourceAppointment, ActionDelete)
	if err != nil {
		t.Fatalf("Enforce: %v", err)
	}
	if !ok {
		t.Error("expected admin bypass to allow")
	}
}

func TestMustEnforce(t *testing.T) {
	auth, _ := NewAuthorization(createTestEnforcer(t), false)
	ctx := context.Background()

	userID := "550e8400-e29b-41d4-a716-446655440004"

	err := auth.MustEnforce(ctx, GroupSubject(userID), UserDomain(userID), ResourceAppointment, ActionDelete)
	if !errors.Is(err, ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
}

func TestRoleLifecycle(t *testing.T) {
	auth, _ := NewAuthorization(createTestEnforcer(t), false)
	ctx := context.Background()

	userID := "550e8400-e29b-41d4-a716-446655440005"
	domain := UserDomain(userID)

	added, err := auth.AddRoleForUserInDomain(ctx, GroupSubject(userID), RoleUserSelf, domain)
	if err != nil {
		t.Fatalf("AddRoleForUserInDomain: %v", err)
	}
	if !added {
		t.Error("expected role to be added")
	}

	roles, err := auth.GetRolesForUserInDomain(ctx, GroupSubject(userID), domain)
	if err != nil {
		t.Fatalf("GetRolesForUserInDomain: %v", err)
	}
	if len(roles) != 1 || roles[0] != RoleUserSelf {
		t.Errorf("unexpected roles: %v", roles)
	}

	removed, err := auth.RemoveRoleForUserInDomain(ctx, GroupSubject(userID), RoleUserSelf, domain)
	if err != nil {
		t.Fatalf("RemoveRoleForUserInDomain: %v", err)
	}
	if !removed {
		t.Error("expected role to be removed")
	}

	if _, err := auth.AddRoleForUserInDomain(ctx, GroupSubject(userID), "role:made-up", domain); err == nil {
		t.Error("expected error for unknown role")
	}
}

func TestAddPermission_Validation(t *testing.T) {
	auth, _ := NewAuthorization(createTestEnforcer(t), false)
	ctx := context.Background()

	tests := []struct {
		name     string
		role     Role
		domain   Domain
		resource Resource
		action   Action
		effect   PolicyEffect
	}{
		{"unknown role", "role:made-up", WildcardDomain, ResourceAppointment, ActionRead, EffectAllow},
		{"invalid domain", RolePatient, "bogus", ResourceAppointment, ActionRead, EffectAllow},
		{"unknown resource", RolePatient, WildcardDomain, "spaceship", ActionRead, EffectAllow},
		{"unknown action", RolePatient, WildcardDomain, ResourceAppointment, "teleport", EffectAllow},
		{"invalid effect", RolePatient, WildcardDomain, ResourceAppointment, ActionRead, "maybe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := auth.AddPermission(ctx, tt.role, tt.domain, tt.resource, tt.action, tt.effect); err == nil {
				t.Error("expected error but got nil")
			}
		})
	}
}

func TestSeedDefaultPolicies(t *testing.T) {
	auth, _ := NewAuthorization(createTestEnforcer(t), false)
	ctx := context.Background()

	if err := SeedDefaultPolicies(ctx, auth); err != nil {
		t.Fatalf("SeedDefaultPolicies: %v", err)
	}

	patientID := "550e8400-e29b-41d4-a716-446655440006"
	if err := AssignAccountRole(ctx, auth, patientID, AccountRolePatient); err != nil {
		t.Fatalf("AssignAccountRole: %v", err)
	}

	ok, err := auth.Enforce(ctx, GroupSubject(patientID), UserDomain(patientID), ResourceAppointment, ActionCreate)
	if err != nil {
		t.Fatalf("Enforce: %v", err)
	}
	if !ok {
		t.Error("expected seeded policies to let a patient book")
	}

	ok, err = auth.Enforce(ctx, GroupSubject(patientID), UserDomain(patientID), ResourceAvailability, ActionUpdate)
	if err != nil {
		t.Fatalf("Enforce: %v", err)
	}
	if ok {
		t.Error("patients must not edit availability")
	}
}

func TestAssignAccountRole_Unknown(t *testing.T) {
	auth, _ := NewAuthorization(createTestEnforcer(t), false)

	err := AssignAccountRole(context.Background(), auth, "550e8400-e29b-41d4-a716-446655440007", "janitor")
	if !errors.Is(err, ErrInvalidArgs) {
		t.Errorf("expected ErrInvalidArgs, got %v", err)
	}
}
