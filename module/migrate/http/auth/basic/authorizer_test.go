package basic

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModify(t *testing.T) {
	req, err := http.NewRequest(http.MethodGet, "http://nexus.local/repository/x/", nil)
	require.NoError(t, err)

	require.NoError(t, NewAuthorizer("admin", "secret").Modify(req))
	user, pass, ok := req.BasicAuth()
	assert.True(t, ok)
	assert.Equal(t, "admin", user)
	assert.Equal(t, "secret", pass)
	assert.Equal(t, "Basic YWRtaW46c2VjcmV0", req.Header.Get("Authorization"))
}

func TestModifyAnonymous(t *testing.T) {
	req, err := http.NewRequest(http.MethodGet, "http://nexus.local/", nil)
	require.NoError(t, err)

	require.NoError(t, NewAuthorizer("", "").Modify(req))
	assert.Empty(t, req.Header.Get("Authorization"))
}
