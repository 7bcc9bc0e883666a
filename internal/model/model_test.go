package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name  string
		page  int
		limit int
		total int
		want  int
	}{
		{"empty", 1, 20, 0, 0},
		{"exact", 1, 20, 40, 2},
		{"partial last page", 2, 20, 41, 3},
		{"no limit", 1, 0, 5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPagination(tt.page, tt.limit, tt.total)
			assert.Equal(t, tt.want, p.Pages)
			assert.Equal(t, tt.page, p.Page)
			assert.Equal(t, tt.limit, p.Limit)
		})
	}
}

func TestStatusValid(t *testing.T) {
	assert.True(t, StatusInProgress.Valid())
	assert.True(t, StatusCompleted.Valid())
	assert.False(t, Status("InProgress").Valid())
	assert.False(t, Status("").Valid())
}

func TestRoleCanHoldTasks(t *testing.T) {
	assert.True(t, RoleAssociate.CanHoldTasks())
	for _, r := range []Role{RoleAdmin, RoleSubAdmin, RoleClient} {
		assert.False(t, r.CanHoldTasks(), r)
	}
}

func TestUserFullName(t *testing.T) {
	assert.Equal(t, "Ana Lima", User{FirstName: "Ana", LastName: "Lima"}.FullName())
	assert.Equal(t, "Ana", User{FirstName: "Ana"}.FullName())
	assert.Equal(t, "Lima", User{LastName: "Lima"}.FullName())
	assert.Equal(t, "", User{}.FullName())
}
