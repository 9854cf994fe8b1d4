package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCan(t *testing.T) {
	tests := []struct {
		name    string
		role    Role
		action  Action
		allowed bool
	}{
		{"admin create", RoleAdmin, ActionCreate, true},
		{"admin complete", RoleAdmin, ActionComplete, true},
		{"admin reset", RoleAdmin, ActionReset, true},
		{"admin edit", RoleAdmin, ActionEdit, true},
		{"admin delete", RoleAdmin, ActionDelete, true},
		{"admin view", RoleAdmin, ActionView, true},
		{"user complete", RoleUser, ActionComplete, true},
		{"user view", RoleUser, ActionView, true},
		{"user create", RoleUser, ActionCreate, false},
		{"user reset", RoleUser, ActionReset, false},
		{"user edit", RoleUser, ActionEdit, false},
		{"user delete", RoleUser, ActionDelete, false},
		{"unknown role", Role("AUDITOR"), ActionView, false},
		{"unknown action", RoleAdmin, Action("approve"), false},
		{"empty role", Role(""), ActionComplete, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, Can(tt.role, tt.action))
		})
	}
}
