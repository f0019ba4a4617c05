package authorize

import "testing"

func TestIsValidDomain(t *testing.T) {
	tests := []struct {
		name   string
		domain Domain
		want   bool
	}{
		{"sys", DomainSys, true},
		{"wildcard", WildcardDomain, true},
		{"user domain", UserDomain("550e8400-e29b-41d4-a716-446655440000"), true},
		{"user prefix without uuid", Domain("user:"), false},
		{"user prefix with garbage", Domain("user:not-a-uuid"), false},
		{"empty", Domain(""), false},
		{"arbitrary", Domain("clinic:550e8400-e29b-41d4-a716-446655440000"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidDomain(tt.domain); got != tt.want {
				t.Errorf("IsValidDomain(%q) = %v, want %v", tt.domain, got, tt.want)
			}
		})
	}
}

func TestAccountRoleToRBACRole(t *testing.T) {
	if AccountRoleToRBACRole[AccountRolePatient] != RolePatient {
		t.Error("patient mapping broken")
	}
	if AccountRoleToRBACRole[AccountRoleDoctor] != RoleDoctor {
		t.Error("doctor mapping broken")
	}
	if AccountRoleToRBACRole[AccountRoleAdmin] != RolePlatformAdmin {
		t.Error("admin mapping broken")
	}

	for dbRole, role := range AccountRoleToRBACRole {
		if _, ok := KnownRoles[role]; !ok {
			t.Errorf("mapped role %q for %q is not a known role", role, dbRole)
		}
	}
}

func TestKnownRolesHaveDisplayNames(t *testing.T) {
	for role := range KnownRoles {
		if RoleDisplayNamesAR[role] == "" {
			t.Errorf("role %q has no Arabic display name", role)
		}
	}
}
