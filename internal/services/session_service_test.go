package services

import (
	"testing"
	"time"

	"plmc/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrCreateReturnsSameSessionPerPrincipal(t *testing.T) {
	sessions := NewSessionService(time.Hour)

	first := sessions.GetOrCreate(models.AuthContext{Role: "tenant", Username: "alice"})
	second := sessions.GetOrCreate(models.AuthContext{Role: "tenant", Username: "alice"})

	assert.Same(t, first, second)
	assert.NotEmpty(t, first.ID)
}

func TestGetOrCreateSeparatesRoles(t *testing.T) {
	sessions := NewSessionService(time.Hour)

	tenant := sessions.GetOrCreate(models.AuthContext{Role: "tenant", Username: "alice"})
	owner := sessions.GetOrCreate(models.AuthContext{Role: "owner", Username: "alice"})

	assert.NotSame(t, tenant, owner, "同名用户不同角色是不同会话")
}

func TestSweepRemovesIdleSessions(t *testing.T) {
	sessions := NewSessionService(10 * time.Millisecond)

	sessions.GetOrCreate(models.AuthContext{Role: "tenant", Username: "alice"})
	sessions.GetOrCreate(models.AuthContext{Role: "owner", Username: "bob"})
	require.Len(t, sessions.Active(), 2)

	time.Sleep(20 * time.Millisecond)
	// bob保持活跃
	sessions.GetOrCreate(models.AuthContext{Role: "owner", Username: "bob"})

	removed := sessions.Sweep()
	assert.Equal(t, 1, removed)

	active := sessions.Active()
	require.Len(t, active, 1)
	assert.Equal(t, "bob", active[0].Auth.Username)
}
