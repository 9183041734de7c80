package redis

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL is not set")
	}
	ctx := context.Background()
	s, err := Open(ctx, url, "flowtest:"+uuid.NewString()+":")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	v, err := s.Get(ctx, "flow-data")
	require.NoError(t, err)
	assert.Nil(t, v)

	require.NoError(t, s.Put(ctx, "flow-data", []byte(`{"nodes":[]}`)))
	v, err = s.Get(ctx, "flow-data")
	require.NoError(t, err)
	assert.Equal(t, `{"nodes":[]}`, string(v))

	require.NoError(t, s.Delete(ctx, "flow-data"))
	v, err = s.Get(ctx, "flow-data")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestNew_DefaultPrefix(t *testing.T) {
	s := New(nil, "")
	assert.Equal(t, DefaultPrefix, s.prefix)
}
