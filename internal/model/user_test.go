package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRole_Meets(t *testing.T) {
	tests := []struct {
		name     string
		role     Role
		required Role
		expected bool
	}{
		{name: "member meets member", role: RoleMember, required: RoleMember, expected: true},
		{name: "member does not meet admin", role: RoleMember, required: RoleAdmin, expected: false},
		{name: "admin meets member", role: RoleAdmin, required: RoleMember, expected: true},
		{name: "admin meets admin", role: RoleAdmin, required: RoleAdmin, expected: true},
		{name: "unknown role meets nothing", role: Role("superuser"), required: RoleMember, expected: false},
		{name: "unknown requirement denies everyone", role: RoleAdmin, required: Role("owner"), expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.role.Meets(tt.required))
		})
	}
}
