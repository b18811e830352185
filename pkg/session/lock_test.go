package session

import (
	"context"
	"fmt"
	"testing"

	"github.com/aretw0/glyphgrid/pkg/adapters/memory"
	"github.com/aretw0/glyphgrid/pkg/workspace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_LockLifecycle(t *testing.T) {
	mgr := NewManager(memory.NewStore())
	ctx := context.Background()
	state := workspace.New(fixedNow)

	for i := range 1000 {
		sid := fmt.Sprintf("session-%d", i)
		require.NoError(t, mgr.Save(ctx, sid, state))
		require.NoError(t, mgr.Delete(ctx, sid))
	}

	assert.Empty(t, mgr.locks, "locks must be released once no caller holds them")
	assert.Empty(t, mgr.live, "deleted sessions must not keep ephemeral state")
}
