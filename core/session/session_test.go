package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	tests := []struct {
		name    string
		req     LoginRequest
		wantErr error
		want    Profile
	}{
		{"ok", LoginRequest{Email: "priya@spms.io", Password: "x"}, nil, Profile{Name: "priya", Email: "priya@spms.io"}},
		{"no at sign", LoginRequest{Email: "admin", Password: "x"}, nil, Profile{Name: "admin", Email: "admin"}},
		{"leading at sign", LoginRequest{Email: "@host", Password: "x"}, nil, Profile{Name: "", Email: "@host"}},
		{"trimmed email", LoginRequest{Email: "  priya@spms.io ", Password: "x"}, nil, Profile{Name: "priya", Email: "priya@spms.io"}},
		{"missing email", LoginRequest{Password: "x"}, ErrMissingCredentials, Profile{}},
		{"blank email", LoginRequest{Email: "   ", Password: "x"}, ErrMissingCredentials, Profile{}},
		{"missing password", LoginRequest{Email: "a@b.c"}, ErrMissingCredentials, Profile{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sess, err := Login(tc.req)
			if tc.wantErr != nil {
				assert.Equal(t, tc.wantErr, err)
				assert.False(t, sess.Authenticated)
				return
			}
			require.NoError(t, err)
			assert.True(t, sess.Authenticated)
			assert.Equal(t, tc.want, sess.Profile)
		})
	}
}

func TestProfile_Initial(t *testing.T) {
	assert.Equal(t, "P", NewProfile("priya@spms.io").Initial())
	assert.Equal(t, "É", Profile{Name: "élodie"}.Initial())
	assert.Equal(t, "U", Profile{}.Initial())
}
