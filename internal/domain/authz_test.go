package domain

import "testing"

func TestAuthorize(t *testing.T) {
	tests := []struct {
		name      string
		userRoles []string
		required  []string
		want      bool
	}{
		{"no requirement admits anyone", []string{RoleCustomer}, nil, true},
		{"empty requirement admits anyone", nil, []string{}, true},
		{"customer denied staff page", []string{RoleCustomer}, []string{RoleStaff}, false},
		{"staff passes staff page", []string{RoleStaff, RoleCustomer}, []string{RoleStaff}, true},
		{"any overlap passes", []string{RoleOwner}, []string{RoleSystemAdmin, RoleOwner}, true},
		{"no roles denied", nil, []string{RoleCustomer}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Authorize(tt.userRoles, tt.required); got != tt.want {
				t.Fatalf("Authorize(%v, %v) = %v, want %v", tt.userRoles, tt.required, got, tt.want)
			}
		})
	}
}

func TestUserRoleHelpers(t *testing.T) {
	u := &User{Roles: []Role{{Type: RoleStaff}, {Type: RoleCustomer}}}

	if !u.HasRole(RoleStaff) {
		t.Fatalf("expected user to hold staff role")
	}
	if u.HasRole(RoleSystemAdmin) {
		t.Fatalf("did not expect admin role")
	}

	types := u.RoleTypes()
	if len(types) != 2 || types[0] != RoleStaff || types[1] != RoleCustomer {
		t.Fatalf("unexpected role types: %v", types)
	}
}
