package entity

// Permission identificador de permiso del conjunto cerrado conocido en
// compilación. Los tokens JWT transportan los permisos como strings; el
// tipo evita typos al chequearlos en el código.
type Permission string

const (
	PermReceiptsEdit   Permission = "receipts.edit"
	PermReceiptsPost   Permission = "receipts.post"
	PermDispatchesEdit Permission = "dispatches.edit"
	PermDispatchesPost Permission = "dispatches.post"
	PermStocktakesEdit Permission = "stocktakes.edit"
	PermStocktakesPost Permission = "stocktakes.post"
	PermItemsEdit      Permission = "items.edit"
	PermLocationsEdit  Permission = "locations.edit"
)

// AllPermissions conjunto completo, útil para seeds y validación de entrada.
func AllPermissions() []Permission {
	return []Permission{
		PermReceiptsEdit, PermReceiptsPost,
		PermDispatchesEdit, PermDispatchesPost,
		PermStocktakesEdit, PermStocktakesPost,
		PermItemsEdit, PermLocationsEdit,
	}
}

// ValidPermission indica si el string corresponde a un permiso conocido.
func ValidPermission(s string) bool {
	for _, p := range AllPermissions() {
		if string(p) == s {
			return true
		}
	}
	return false
}

// Roles de usuario. El rol admin omite todos los chequeos de permisos.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)
