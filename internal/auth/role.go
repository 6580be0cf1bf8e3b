// Package auth models the roles carried by access tokens and what each role
// may see and manage.
package auth

import (
	"fmt"

	inErrors "github.com/Alturino/journey/internal/errors"
)

type ManagerKind int

const (
	ManagerExperience ManagerKind = iota + 1
	ManagerStay
	ManagerDelicious
)

func (k ManagerKind) String() string {
	switch k {
	case ManagerExperience:
		return "experience"
	case ManagerStay:
		return "stay"
	case ManagerDelicious:
		return "delicious"
	default:
		return "unknown"
	}
}

type roleKind int

const (
	roleMember roleKind = iota + 1
	roleGuide
	roleManager
	roleAdmin
)

// Role is one of Member, Guide, Manager(kind) or Admin. The zero Role is
// invalid and is never returned by ParseRole.
type Role struct {
	kind    roleKind
	manager ManagerKind
}

var (
	Member = Role{kind: roleMember}
	Guide  = Role{kind: roleGuide}
	Admin  = Role{kind: roleAdmin}
)

func Manager(kind ManagerKind) Role {
	return Role{kind: roleManager, manager: kind}
}

func ParseRole(role string, managerType string) (Role, error) {
	switch role {
	case "member":
		return Member, nil
	case "guide":
		return Guide, nil
	case "admin":
		return Admin, nil
	case "manager":
		switch managerType {
		case "experience":
			return Manager(ManagerExperience), nil
		case "stay":
			return Manager(ManagerStay), nil
		case "delicious":
			return Manager(ManagerDelicious), nil
		default:
			return Role{}, fmt.Errorf("%w: manager type=%q", inErrors.ErrUnknownRole, managerType)
		}
	default:
		return Role{}, fmt.Errorf("%w: role=%q", inErrors.ErrUnknownRole, role)
	}
}

func (r Role) Valid() bool {
	switch r.kind {
	case roleMember, roleGuide, roleAdmin:
		return true
	case roleManager:
		return r.manager >= ManagerExperience && r.manager <= ManagerDelicious
	default:
		return false
	}
}

func (r Role) IsAdmin() bool {
	return r.kind == roleAdmin
}

func (r Role) String() string {
	switch r.kind {
	case roleMember:
		return "member"
	case roleGuide:
		return "guide"
	case roleManager:
		return "manager:" + r.manager.String()
	case roleAdmin:
		return "admin"
	default:
		return "invalid"
	}
}

type Dashboard string

const (
	DashboardMember            Dashboard = "member"
	DashboardGuide             Dashboard = "guide"
	DashboardExperienceManager Dashboard = "experience-manager"
	DashboardStayManager       Dashboard = "stay-manager"
	DashboardDeliciousManager  Dashboard = "delicious-manager"
	DashboardAdmin             Dashboard = "admin"
)

func (r Role) Dashboard() (Dashboard, error) {
	switch r.kind {
	case roleMember:
		return DashboardMember, nil
	case roleGuide:
		return DashboardGuide, nil
	case roleAdmin:
		return DashboardAdmin, nil
	case roleManager:
		switch r.manager {
		case ManagerExperience:
			return DashboardExperienceManager, nil
		case ManagerStay:
			return DashboardStayManager, nil
		case ManagerDelicious:
			return DashboardDeliciousManager, nil
		}
	}
	return "", fmt.Errorf("%w: %s", inErrors.ErrUnknownRole, r)
}

type Resource int

const (
	ResourceExperience Resource = iota + 1
	ResourceAccommodation
	ResourceMenuItem
)

func (r Resource) String() string {
	switch r {
	case ResourceExperience:
		return "experience"
	case ResourceAccommodation:
		return "accommodation"
	case ResourceMenuItem:
		return "menu-item"
	default:
		return "unknown"
	}
}

// CanManage reports whether the role may create or delete catalog entries
// of the given resource. Admins manage everything, each manager kind manages
// its own resource, members and guides manage nothing.
func (r Role) CanManage(resource Resource) bool {
	switch r.kind {
	case roleAdmin:
		return true
	case roleManager:
		switch r.manager {
		case ManagerExperience:
			return resource == ResourceExperience
		case ManagerStay:
			return resource == ResourceAccommodation
		case ManagerDelicious:
			return resource == ResourceMenuItem
		}
		return false
	case roleMember, roleGuide:
		return false
	default:
		return false
	}
}
