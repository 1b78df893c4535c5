package service_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/aussiebroadwan/myskills/internal/skills/domain"
	"github.com/aussiebroadwan/myskills/internal/skills/identity"
	"github.com/aussiebroadwan/myskills/internal/skills/service"
	"github.com/aussiebroadwan/myskills/internal/skills/store"
	"github.com/aussiebroadwan/myskills/pkg/cryptox"
	"github.com/aussiebroadwan/myskills/pkg/jwtx"
	"github.com/aussiebroadwan/myskills/pkg/slogx"
	"github.com/stretchr/testify/require"
)

func newSessionService(t *testing.T) *service.SessionService {
	t.Helper()

	dir, err := identity.Load("")
	require.NoError(t, err)

	pemKey, err := cryptox.GenerateEd25519Key()
	require.NoError(t, err)
	signer, err := jwtx.NewSignerEdDSA("test-key", pemKey)
	require.NoError(t, err)
	keys := jwtx.NewKeySet()
	require.NoError(t, keys.AddSigner(signer))

	return &service.SessionService{
		Store:     newStore(t),
		Directory: dir,
		Signer:    signer,
		Verifier:  jwtx.NewVerifierEdDSA(keys, service.Issuer),
		TTL:       time.Hour,
	}
}

func TestLoginResolveLogout(t *testing.T) {
	ctx := context.Background()
	svc := newSessionService(t)

	token, sess, err := svc.Login(ctx, service.LoginRequest{
		Username:  "Lia",
		Password:  "pass",
		UserAgent: "test-agent",
		IPAddress: "127.0.0.1",
	})
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.Equal(t, "Lia", sess.Username)
	require.Equal(t, "test-agent", sess.UserAgent)

	got, err := svc.Resolve(ctx, token)
	require.NoError(t, err)
	require.Equal(t, sess, got)

	require.NoError(t, svc.Logout(ctx, token))

	_, err = svc.Resolve(ctx, token)
	require.ErrorIs(t, err, service.ErrNoSession)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	ctx := context.Background()
	svc := newSessionService(t)

	for _, req := range []service.LoginRequest{
		{Username: "Lia", Password: "wrong"},
		{Username: "lia", Password: "pass"},
		{Username: "Nobody", Password: "pass"},
	} {
		_, _, err := svc.Login(ctx, req)
		require.ErrorIs(t, err, service.ErrInvalidCredentials, "user %q", req.Username)
	}
}

func TestResolveRejects(t *testing.T) {
	ctx := context.Background()
	svc := newSessionService(t)

	_, err := svc.Resolve(ctx, "")
	require.ErrorIs(t, err, service.ErrNoSession)

	_, err = svc.Resolve(ctx, "garbage")
	require.ErrorIs(t, err, service.ErrNoSession)

	t.Run("session row expired", func(t *testing.T) {
		token, _, err := svc.Login(ctx, service.LoginRequest{Username: "Leo", Password: "pass"})
		require.NoError(t, err)

		later := *svc
		later.Now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		_, err = later.Resolve(ctx, token)
		require.ErrorIs(t, err, service.ErrNoSession)
	})

	t.Run("session row deleted", func(t *testing.T) {
		token, sess, err := svc.Login(ctx, service.LoginRequest{Username: "Leo", Password: "pass"})
		require.NoError(t, err)

		require.NoError(t, svc.Store.Sessions().DeleteSession(ctx, sess.ID))
		_, err = svc.Resolve(ctx, token)
		require.ErrorIs(t, err, service.ErrNoSession)
	})

	t.Run("session owned by someone else", func(t *testing.T) {
		token, sess, err := svc.Login(ctx, service.LoginRequest{Username: "Leo", Password: "pass"})
		require.NoError(t, err)

		require.NoError(t, svc.Store.WithTx(ctx, func(tx store.Tx) error {
			if err := tx.Sessions().DeleteSession(ctx, sess.ID); err != nil {
				return err
			}
			sess.Username = "Lia"
			return tx.Sessions().CreateSession(ctx, sess)
		}))

		_, err = svc.Resolve(ctx, token)
		require.ErrorIs(t, err, service.ErrNoSession)
	})
}

func TestLogoutIgnoresInvalidToken(t *testing.T) {
	require.NoError(t, newSessionService(t).Logout(context.Background(), "not-a-token"))
}

func TestHousekeepingSweep(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	now := time.Now().UTC().Truncate(time.Second)

	require.NoError(t, st.Sessions().CreateSession(ctx, domain.Session{ID: "old", Username: "Lia", CreatedAt: now.Add(-time.Hour), ExpiresAt: now.Add(-time.Minute)}))
	require.NoError(t, st.Sessions().CreateSession(ctx, domain.Session{ID: "new", Username: "Lia", CreatedAt: now, ExpiresAt: now.Add(time.Hour)}))

	hk := service.NewHousekeepingService(st, slogx.Discard(), time.Hour)
	require.EqualValues(t, 1, hk.Sweep(ctx, now))

	_, err := st.Sessions().GetSessionByID(ctx, "new")
	require.NoError(t, err)
}

func TestHousekeepingStartStop(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	now := time.Now().UTC()

	require.NoError(t, st.Sessions().CreateSession(ctx, domain.Session{ID: "old", Username: "Leo", CreatedAt: now.Add(-time.Hour), ExpiresAt: now.Add(-time.Minute)}))

	hk := service.NewHousekeepingService(st, slog.New(slog.DiscardHandler), 0)
	require.Equal(t, time.Hour, hk.Interval)

	hk.Start()
	require.Eventually(t, func() bool {
		_, err := st.Sessions().GetSessionByID(ctx, "old")
		return err != nil
	}, 2*time.Second, 10*time.Millisecond)
	hk.Stop()
}
