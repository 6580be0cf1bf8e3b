package auth

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	inErrors "github.com/Alturino/journey/internal/errors"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		name        string
		role        string
		managerType string
		expected    Role
		wantErr     bool
	}{
		{name: "given member should parse member", role: "member", expected: Member},
		{name: "given guide should parse guide", role: "guide", expected: Guide},
		{name: "given admin should parse admin", role: "admin", expected: Admin},
		{name: "given stay manager should parse stay manager", role: "manager", managerType: "stay", expected: Manager(ManagerStay)},
		{name: "given manager without type should fail", role: "manager", wantErr: true},
		{name: "given unknown role should fail instead of defaulting", role: "superuser", wantErr: true},
		{name: "given empty role should fail", role: "", wantErr: true},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			role, err := ParseRole(test.role, test.managerType)
			if test.wantErr {
				assert.True(t, errors.Is(err, inErrors.ErrUnknownRole), "got %v", err)
				assert.False(t, role.Valid())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.expected, role)
			assert.True(t, role.Valid())
		})
	}
}

func TestRoleDashboard(t *testing.T) {
	tests := []struct {
		role     Role
		expected Dashboard
	}{
		{role: Member, expected: DashboardMember},
		{role: Guide, expected: DashboardGuide},
		{role: Admin, expected: DashboardAdmin},
		{role: Manager(ManagerExperience), expected: DashboardExperienceManager},
		{role: Manager(ManagerStay), expected: DashboardStayManager},
		{role: Manager(ManagerDelicious), expected: DashboardDeliciousManager},
	}
	for _, test := range tests {
		t.Run("given "+test.role.String()+" should route to its dashboard", func(t *testing.T) {
			dashboard, err := test.role.Dashboard()
			require.NoError(t, err)
			assert.Equal(t, test.expected, dashboard)
		})
	}

	_, err := Role{}.Dashboard()
	assert.True(t, errors.Is(err, inErrors.ErrUnknownRole))
}

func TestRoleCanManage(t *testing.T) {
	resources := []Resource{ResourceExperience, ResourceAccommodation, ResourceMenuItem}
	tests := []struct {
		name     string
		role     Role
		expected map[Resource]bool
	}{
		{name: "given admin should manage everything", role: Admin, expected: map[Resource]bool{ResourceExperience: true, ResourceAccommodation: true, ResourceMenuItem: true}},
		{name: "given experience manager should manage experiences", role: Manager(ManagerExperience), expected: map[Resource]bool{ResourceExperience: true}},
		{name: "given stay manager should manage accommodations", role: Manager(ManagerStay), expected: map[Resource]bool{ResourceAccommodation: true}},
		{name: "given delicious manager should manage menu items", role: Manager(ManagerDelicious), expected: map[Resource]bool{ResourceMenuItem: true}},
		{name: "given member should manage nothing", role: Member, expected: map[Resource]bool{}},
		{name: "given guide should manage nothing", role: Guide, expected: map[Resource]bool{}},
		{name: "given zero role should manage nothing", role: Role{}, expected: map[Resource]bool{}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			for _, resource := range resources {
				assert.Equal(t, test.expected[resource], test.role.CanManage(resource), resource.String())
			}
		})
	}
}
