package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedProfile struct {
	Username string `json:"username"`
	Bio      string `json:"bio"`
}

// Without an initialized client every helper is a no-op; callers must not
// notice whether a cache exists.
func TestHelpersWithoutRedis(t *testing.T) {
	client = nil
	ctx := context.Background()

	var out cachedProfile
	found, err := GetJSON(ctx, "post:1", &out)
	assert.NoError(t, err)
	assert.False(t, found)

	assert.NoError(t, SetJSON(ctx, "post:1", cachedProfile{Username: "a"}, time.Minute))

	calls := 0
	err = Aside(ctx, "post:1", &out, time.Minute, func() error {
		calls++
		out = cachedProfile{Username: "alice", Bio: "hi"}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, "alice", out.Username)

	// No cache, so a second Aside fetches again.
	err = Aside(ctx, "post:1", &out, time.Minute, func() error {
		calls++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestRoundTripWithRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	InitRedis(mr.Addr())
	t.Cleanup(func() { client = nil })
	require.NotNil(t, GetClient())

	ctx := context.Background()
	in := cachedProfile{Username: "alice", Bio: "hello"}
	require.NoError(t, SetJSON(ctx, ProfileKey("alice"), in, ProfileTTL))

	var out cachedProfile
	found, err := GetJSON(ctx, ProfileKey("alice"), &out)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, in, out)

	// Missing key reports a miss, not an error.
	found, err = GetJSON(ctx, ProfileKey("bob"), &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestAsideFetchesOnce(t *testing.T) {
	mr := miniredis.RunT(t)
	InitRedis(mr.Addr())
	t.Cleanup(func() { client = nil })

	ctx := context.Background()
	calls := 0
	fetch := func(dest *cachedProfile) func() error {
		return func() error {
			calls++
			*dest = cachedProfile{Username: "alice", Bio: "from db"}
			return nil
		}
	}

	var first cachedProfile
	require.NoError(t, Aside(ctx, PostKey(7), &first, PostTTL, fetch(&first)))
	assert.Equal(t, 1, calls)

	var second cachedProfile
	require.NoError(t, Aside(ctx, PostKey(7), &second, PostTTL, fetch(&second)))
	assert.Equal(t, 1, calls, "second read should be served from cache")
	assert.Equal(t, first, second)
}

func TestInvalidatePost(t *testing.T) {
	mr := miniredis.RunT(t)
	InitRedis(mr.Addr())
	t.Cleanup(func() { client = nil })

	ctx := context.Background()
	require.NoError(t, SetJSON(ctx, PostKey(3), cachedProfile{Username: "x"}, PostTTL))

	InvalidatePost(ctx, 3)

	var out cachedProfile
	found, err := GetJSON(ctx, PostKey(3), &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestInitRedisBadURL(t *testing.T) {
	InitRedis("redis://[broken")
	assert.Nil(t, GetClient())
}
