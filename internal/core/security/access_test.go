package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessPolicy_DefaultAllowsEveryone(t *testing.T) {
	policy, err := NewAccessPolicy("")
	require.NoError(t, err)

	assert.Equal(t, DefaultAccessRule, policy.Expression())

	ok, err := policy.Allow(AccessRequest{UserID: "u1"})
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestAccessPolicy_CompanyScope(t *testing.T) {
	policy, err := NewAccessPolicy(`user.is_admin || request.company == "" || request.company in user.org_ids`)
	require.NoError(t, err)

	tests := []struct {
		name string
		req  AccessRequest
		want bool
	}{
		{
			name: "admin sees any company",
			req:  AccessRequest{IsAdmin: true, Company: "Globex"},
			want: true,
		},
		{
			name: "company the user belongs to",
			req:  AccessRequest{OrgIDs: []string{"Acme", "Initech"}, Company: "Initech"},
			want: true,
		},
		{
			name: "foreign company",
			req:  AccessRequest{OrgIDs: []string{"Acme"}, Company: "Globex"},
			want: false,
		},
		{
			name: "no company filter",
			req:  AccessRequest{},
			want: true,
		},
		{
			name: "nil org list",
			req:  AccessRequest{Company: "Acme"},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := policy.Allow(tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAccessPolicy_RolesAndPermissions(t *testing.T) {
	policy, err := NewAccessPolicy(`"auditor" in user.roles && "report:serial_batch:export" in user.permissions`)
	require.NoError(t, err)

	ok, err := policy.Allow(AccessRequest{
		Roles:       []string{"auditor"},
		Permissions: []string{"report:serial_batch:export"},
	})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = policy.Allow(AccessRequest{Roles: []string{"auditor"}})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNewAccessPolicy_Rejects(t *testing.T) {
	_, err := NewAccessPolicy(`user.id +`)
	assert.Error(t, err, "syntax error")

	_, err = NewAccessPolicy(`1 + 2`)
	assert.Error(t, err, "non-boolean rule")

	_, err = NewAccessPolicy(`unknown_var == 1`)
	assert.Error(t, err, "undeclared variable")
}
