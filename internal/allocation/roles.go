package allocation

import "github.com/jonathan/style-remixer/internal/types"

// AssignRoles maps count segments to structural roles.
//
// Four or more segments are all development except the first (opening), the last
// (closing) and the one at count/2 (turn). Assignment runs opening, closing, turn,
// so turn overwrites either end if the midpoint lands there.
func AssignRoles(count int) []types.Role {
	switch {
	case count <= 1:
		return []types.Role{types.RoleOpening}
	case count == 2:
		return []types.Role{types.RoleOpening, types.RoleClosing}
	case count == 3:
		return []types.Role{types.RoleOpening, types.RoleTurn, types.RoleClosing}
	}

	roles := make([]types.Role, count)
	for i := range roles {
		roles[i] = types.RoleDevelopment
	}
	roles[0] = types.RoleOpening
	roles[count-1] = types.RoleClosing
	roles[count/2] = types.RoleTurn
	return roles
}
