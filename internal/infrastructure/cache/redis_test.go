package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildUniversalOptions(t *testing.T) {
	opts, err := buildUniversalOptions("redis://user:pw@cache:6379/3")
	require.NoError(t, err)
	assert.Equal(t, []string{"cache:6379"}, opts.Addrs)
	assert.Equal(t, "user", opts.Username)
	assert.Equal(t, "pw", opts.Password)
	assert.Equal(t, 3, opts.DB)

	opts, err = buildUniversalOptions("node-a:6379, node-b:6379 ,")
	require.NoError(t, err)
	assert.Equal(t, []string{"node-a:6379", "node-b:6379"}, opts.Addrs)

	_, err = buildUniversalOptions(" , ")
	assert.Error(t, err)

	_, err = buildUniversalOptions("http://[::1")
	assert.Error(t, err)
}
