package domain

// Action is an operation a role may or may not perform on reconciliations.
type Action string

const (
	ActionCreate   Action = "create"
	ActionComplete Action = "complete"
	ActionReset    Action = "reset"
	ActionEdit     Action = "edit"
	ActionDelete   Action = "delete"
	ActionView     Action = "view"
)

// rolePermissions is the single permission table consulted by every
// lifecycle transition. Unlisted role/action pairs are denied.
var rolePermissions = map[Role]map[Action]bool{
	RoleAdmin: {
		ActionCreate:   true,
		ActionComplete: true,
		ActionReset:    true,
		ActionEdit:     true,
		ActionDelete:   true,
		ActionView:     true,
	},
	RoleUser: {
		ActionComplete: true,
		ActionView:     true,
	},
}

// Can reports whether role may perform action. Fails closed.
func Can(role Role, action Action) bool {
	perms, ok := rolePermissions[role]
	if !ok {
		return false
	}
	return perms[action]
}

// authorize maps a denied action to the core error taxonomy.
func authorize(role Role, action Action) error {
	if !Can(role, action) {
		return ErrPermissionDenied
	}
	return nil
}
