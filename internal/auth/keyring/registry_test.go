package keyring

import (
	"encoding/hex"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssue_ReturnsHexKeyMaterial(t *testing.T) {
	r := NewRegistry(5 * time.Minute)

	key, err := r.Issue("u1")
	require.NoError(t, err)

	assert.Len(t, key, KeySize*2)
	_, err = hex.DecodeString(key)
	assert.NoError(t, err)
}

func TestResolve_LiveKeyIsRepeatable(t *testing.T) {
	r := NewRegistry(5 * time.Minute)

	key, err := r.Issue("u1")
	require.NoError(t, err)

	// Resolution does not consume the grant.
	for i := 0; i < 3; i++ {
		got, ok := r.Resolve("u1")
		require.True(t, ok)
		assert.Equal(t, key, got)
	}
}

func TestResolve_UnknownOwner(t *testing.T) {
	r := NewRegistry(5 * time.Minute)

	_, ok := r.Resolve("nobody")
	assert.False(t, ok)
}

func TestIssue_OverwritesPriorGrant(t *testing.T) {
	r := NewRegistry(5 * time.Minute)

	first, err := r.Issue("u1")
	require.NoError(t, err)
	second, err := r.Issue("u1")
	require.NoError(t, err)
	require.NotEqual(t, first, second)

	got, ok := r.Resolve("u1")
	require.True(t, ok)
	assert.Equal(t, second, got)
}

func TestResolve_ExpiredGrant(t *testing.T) {
	r := NewRegistry(5 * time.Minute)

	now := time.Now()
	r.now = func() time.Time { return now }

	_, err := r.Issue("u1")
	require.NoError(t, err)

	_, ok := r.Resolve("u1")
	require.True(t, ok)

	r.now = func() time.Time { return now.Add(5*time.Minute + time.Second) }

	_, ok = r.Resolve("u1")
	assert.False(t, ok)

	// The expired entry is gone even if the clock moves back.
	r.now = func() time.Time { return now }
	_, ok = r.Resolve("u1")
	assert.False(t, ok)
}

func TestTimerEviction(t *testing.T) {
	r := NewRegistry(20 * time.Millisecond)

	_, err := r.Issue("u1")
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		_, ok := r.Resolve("u1")
		return !ok
	}, time.Second, 10*time.Millisecond)
}

func TestReissueSurvivesStaleTimer(t *testing.T) {
	r := NewRegistry(20 * time.Millisecond)

	_, err := r.Issue("u1")
	require.NoError(t, err)

	time.Sleep(30 * time.Millisecond)

	key, err := r.Issue("u1")
	require.NoError(t, err)

	got, ok := r.Resolve("u1")
	require.True(t, ok)
	assert.Equal(t, key, got)
}

func TestConcurrentIssueAndResolve(t *testing.T) {
	r := NewRegistry(time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := r.Issue("shared")
			assert.NoError(t, err)
		}()
		go func() {
			defer wg.Done()
			r.Resolve("shared")
		}()
	}
	wg.Wait()

	_, ok := r.Resolve("shared")
	assert.True(t, ok)
}
