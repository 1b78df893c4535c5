package postgres_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/aussiebroadwan/myskills/internal/skills/domain"
	"github.com/aussiebroadwan/myskills/internal/skills/store"
	"github.com/aussiebroadwan/myskills/internal/skills/store/drivers/postgres"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// startPostgres runs a throwaway postgres container and returns its DSN.
func startPostgres(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("postgres integration test skipped in -short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "skills",
				"POSTGRES_PASSWORD": "skills",
				"POSTGRES_DB":       "skills",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	return fmt.Sprintf("postgres://skills:skills@%s:%s/skills?sslmode=disable", host, port.Port())
}

func TestPostgresStore(t *testing.T) {
	ctx := context.Background()

	s, err := postgres.NewStore(startPostgres(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	require.NoError(t, s.Ping(ctx))

	target, err := domain.ParseDate("2026-04-01")
	require.NoError(t, err)

	t.Run("skills", func(t *testing.T) {
		a, err := s.Skills().SaveSkill(ctx, domain.Skill{Owner: "Lia", Description: "Learn Go", TargetDate: target})
		require.NoError(t, err)
		require.NotZero(t, a.ID)

		a.Done = true
		a.Description = "Learn more Go"
		b, err := s.Skills().SaveSkill(ctx, a)
		require.NoError(t, err)
		require.Equal(t, a, b)

		ghost, err := s.Skills().SaveSkill(ctx, domain.Skill{ID: 100, Owner: "Leo", Description: "Explicit id", TargetDate: target})
		require.NoError(t, err)
		require.EqualValues(t, 100, ghost.ID)

		next, err := s.Skills().CreateSkill(ctx, domain.Skill{Owner: "Leo", Description: "After explicit", TargetDate: target})
		require.NoError(t, err)
		require.Greater(t, next.ID, ghost.ID)

		list, err := s.Skills().ListSkillsByOwner(ctx, "Lia")
		require.NoError(t, err)
		require.Equal(t, []domain.Skill{b}, list)

		require.NoError(t, s.Skills().DeleteSkill(ctx, a.ID))
		_, err = s.Skills().GetSkillByID(ctx, a.ID)
		require.ErrorIs(t, err, store.ErrNotFound)

		n, err := s.Skills().CountSkillsByOwner(ctx, "Leo")
		require.NoError(t, err)
		require.EqualValues(t, 2, n)
	})

	t.Run("deleted ids are not reissued", func(t *testing.T) {
		low, err := s.Skills().CreateSkill(ctx, domain.Skill{Owner: "Lia", Description: "Lower id", TargetDate: target})
		require.NoError(t, err)
		high, err := s.Skills().CreateSkill(ctx, domain.Skill{Owner: "Lia", Description: "Highest id", TargetDate: target})
		require.NoError(t, err)

		require.NoError(t, s.Skills().DeleteSkill(ctx, high.ID))

		low.Done = true
		_, err = s.Skills().SaveSkill(ctx, low)
		require.NoError(t, err)

		next, err := s.Skills().CreateSkill(ctx, domain.Skill{Owner: "Lia", Description: "After delete", TargetDate: target})
		require.NoError(t, err)
		require.Greater(t, next.ID, high.ID)
	})

	t.Run("sessions", func(t *testing.T) {
		now := time.Now().UTC().Truncate(time.Second)
		sess := domain.Session{ID: "s1", Username: "Lia", CreatedAt: now, ExpiresAt: now.Add(time.Hour)}
		require.NoError(t, s.Sessions().CreateSession(ctx, sess))

		got, err := s.Sessions().GetSessionByID(ctx, "s1")
		require.NoError(t, err)
		require.Equal(t, sess, got)

		n, err := s.Sessions().DeleteExpiredSessions(ctx, now.Add(2*time.Hour))
		require.NoError(t, err)
		require.EqualValues(t, 1, n)
	})
}
