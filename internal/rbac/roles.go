package rbac

// Role names. Keep these stable; they are part of auth contracts and are
// embedded into issued tokens.
const (
	RoleAdmin        = "ADMIN"
	RoleManager      = "MANAGER"
	RoleWarehouseman = "WAREHOUSEMAN"
	RoleDriver       = "DRIVER"
	RoleUser         = "USER"
)

// Permission strings. Each is a fine-grained capability checked per endpoint.
const (
	PermUserRead       = "user:read"
	PermUserManage     = "user:manage"
	PermItemRead       = "item:read"
	PermItemWrite      = "item:write"
	PermWarehouseRead  = "warehouse:read"
	PermWarehouseWrite = "warehouse:write"
	PermDeliveryRead   = "delivery:read"
	PermDeliveryWrite  = "delivery:write"
	PermDeliveryDrive  = "delivery:drive"
)

// rolePermissions is the static role -> permission mapping.
// Roles are pure data lookups; no role carries behavior.
var rolePermissions = map[string][]string{
	RoleAdmin: {
		PermUserRead, PermUserManage,
		PermItemRead, PermItemWrite,
		PermWarehouseRead, PermWarehouseWrite,
		PermDeliveryRead, PermDeliveryWrite, PermDeliveryDrive,
	},
	RoleManager: {
		PermUserRead,
		PermItemRead, PermItemWrite,
		PermWarehouseRead, PermWarehouseWrite,
		PermDeliveryRead, PermDeliveryWrite,
	},
	RoleWarehouseman: {
		PermItemRead, PermItemWrite,
		PermWarehouseRead,
		PermDeliveryRead,
	},
	RoleDriver: {
		PermDeliveryRead, PermDeliveryDrive,
	},
	RoleUser: {
		PermItemRead,
	},
}

// Valid reports whether the role name is one of the fixed set.
func Valid(role string) bool {
	_, ok := rolePermissions[role]
	return ok
}

// Permissions returns the permission strings granted to a role.
// Unknown roles get nothing.
func Permissions(role string) []string {
	perms, ok := rolePermissions[role]
	if !ok {
		return nil
	}
	out := make([]string, len(perms))
	copy(out, perms)
	return out
}

// Authorities returns the full authority set embedded into access tokens:
// the role-membership marker followed by the role's permissions.
func Authorities(role string) []string {
	if !Valid(role) {
		return nil
	}
	return append([]string{"role:" + role}, Permissions(role)...)
}

func IsAdmin(role string) bool { return role == RoleAdmin }
