package rbac_test

import (
	"testing"

	"go-leave/internal/rbac"

	"github.com/stretchr/testify/assert"
)

func TestCheckPermission(t *testing.T) {
	svc, err := rbac.NewService()
	assert.NoError(t, err)

	cases := []struct {
		name     string
		role     string
		resource string
		action   string
		allowed  bool
	}{
		{"employee creates requests", "employee", "leave_request", "create", true},
		{"employee cannot decide", "employee", "leave_request", "decide", false},
		{"employee cannot see team", "employee", "team", "read", false},
		{"manager inherits employee create", "manager", "leave_request", "create", true},
		{"manager decides", "manager", "leave_request", "decide", true},
		{"manager reads team", "manager", "team", "read", true},
		{"manager cannot approve adjustments", "manager", "adjustment", "approve", false},
		{"hr_admin wildcard on adjustments", "hr_admin", "adjustment", "approve", true},
		{"hr_admin inherits manager decide", "hr_admin", "leave_request", "decide", true},
		{"unknown role denied", "intern", "leave_request", "read", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			allowed, err := svc.CheckPermission(tc.role, tc.resource, tc.action)
			assert.NoError(t, err)
			assert.Equal(t, tc.allowed, allowed)
		})
	}
}

func TestCheckPermission_EmptyRole(t *testing.T) {
	svc, err := rbac.NewService()
	assert.NoError(t, err)

	allowed, err := svc.CheckPermission("", "leave_request", "read")
	assert.NoError(t, err)
	assert.False(t, allowed)
}
