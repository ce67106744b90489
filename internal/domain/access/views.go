// Package access decides which dashboard views a role may see. It drives
// navigation only; request authorization is done by middleware.RequireRole.
package access

import "strings"

type SidebarItem struct {
	Path  string `json:"path"`
	Label string `json:"label"`
	Icon  string `json:"icon"`
}

type view struct {
	item  SidebarItem
	roles []Role
}

var views = []view{
	{SidebarItem{"/dashboard", "Inicio", "home"}, []Role{RoleAdmin, RoleIT, RoleCliente}},
	{SidebarItem{"/dashboard/reservas", "Reservas", "calendar"}, []Role{RoleAdmin, RoleIT}},
	{SidebarItem{"/dashboard/mis-reservas", "Mis reservas", "calendar"}, []Role{RoleCliente}},
	{SidebarItem{"/dashboard/sellos", "Sellos", "stamp"}, []Role{RoleAdmin, RoleIT}},
	{SidebarItem{"/dashboard/mis-sellos", "Mis sellos", "stamp"}, []Role{RoleCliente}},
	{SidebarItem{"/dashboard/planes", "Planes", "tag"}, []Role{RoleAdmin, RoleIT}},
	{SidebarItem{"/dashboard/usuarios", "Usuarios", "users"}, []Role{RoleAdmin}},
	{SidebarItem{"/dashboard/auditoria", "Auditoría", "list"}, []Role{RoleAdmin}},
	{SidebarItem{"/dashboard/perfil", "Perfil", "user"}, []Role{RoleAdmin, RoleIT, RoleCliente}},
}

// CanAccess matches path against the view table. Nested paths inherit the
// rule of their closest listed parent; unknown paths are denied.
func CanAccess(role Role, path string) bool {
	path = strings.TrimRight(path, "/")
	if path == "" {
		return false
	}

	var best *view
	for i := range views {
		p := views[i].item.Path
		if path == p || strings.HasPrefix(path, p+"/") {
			if best == nil || len(p) > len(best.item.Path) {
				best = &views[i]
			}
		}
	}
	if best == nil {
		return false
	}
	return hasRole(best.roles, role)
}

func SidebarFor(role Role) []SidebarItem {
	items := []SidebarItem{}
	for _, v := range views {
		if hasRole(v.roles, role) {
			items = append(items, v.item)
		}
	}
	return items
}

func hasRole(roles []Role, role Role) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
