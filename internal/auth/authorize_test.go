package auth

import "testing"

func TestPrincipalPermissions(t *testing.T) {
	principal := NewPrincipal(User{ID: 3, Email: "hr@example.com"}, []string{PermAttendanceMark})

	if !principal.HasPermission(PermAttendanceMark) {
		t.Fatalf("expected permission")
	}
	if principal.HasPermission(PermRoleManage) {
		t.Fatalf("unexpected permission")
	}
}

func TestSuperuserHoldsEveryPermission(t *testing.T) {
	principal := NewPrincipal(User{ID: 1, IsSuperuser: true}, nil)
	for _, p := range BuiltinPermissions {
		if !principal.HasPermission(p.Code) {
			t.Fatalf("superuser missing %s", p.Code)
		}
	}
}
