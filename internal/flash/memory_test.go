package flash

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoryStorePopIsOneShot(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Push(ctx, "visitor-1", Notice{Level: "success", Message: "Account created!"}))
	require.NoError(t, s.Push(ctx, "visitor-1", Notice{Level: "danger", Message: "Something else"}))

	notices, err := s.Pop(ctx, "visitor-1")
	require.NoError(t, err)
	require.Equal(t, []Notice{
		{Level: "success", Message: "Account created!"},
		{Level: "danger", Message: "Something else"},
	}, notices)

	notices, err = s.Pop(ctx, "visitor-1")
	require.NoError(t, err)
	require.Empty(t, notices)
}

func TestMemoryStoreKeysAreIsolated(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Push(ctx, "a", Notice{Level: "success", Message: "for a"}))

	notices, err := s.Pop(ctx, "b")
	require.NoError(t, err)
	require.Empty(t, notices)

	notices, err = s.Pop(ctx, "a")
	require.NoError(t, err)
	require.Len(t, notices, 1)
}
