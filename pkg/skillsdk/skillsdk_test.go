package skillsdk_test

import (
	"errors"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	skillshttp "github.com/aussiebroadwan/myskills/internal/skills/http"
	"github.com/aussiebroadwan/myskills/internal/skills/identity"
	"github.com/aussiebroadwan/myskills/internal/skills/service"
	"github.com/aussiebroadwan/myskills/internal/skills/store/drivers/sqlite"
	"github.com/aussiebroadwan/myskills/pkg/cryptox"
	"github.com/aussiebroadwan/myskills/pkg/jwtx"
	"github.com/aussiebroadwan/myskills/pkg/skillsdk"
	"github.com/aussiebroadwan/myskills/pkg/slogx"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	cryptox.SetPepper("skillsdk-test-pepper")
	os.Exit(m.Run())
}

// newServer runs the full application handler over an in-memory store.
func newServer(t *testing.T) *skillsdk.SDKClient {
	t.Helper()
	client, _ := newServerWithStore(t)
	return client
}

func newServerWithStore(t *testing.T) (*skillsdk.SDKClient, *sqlite.Store) {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	dir, err := identity.Load("")
	require.NoError(t, err)

	pemKey, err := cryptox.GenerateEd25519Key()
	require.NoError(t, err)
	signer, err := jwtx.NewSignerEdDSA("sdk-test", pemKey)
	require.NoError(t, err)
	keys := jwtx.NewKeySet()
	require.NoError(t, keys.AddSigner(signer))

	views, err := skillshttp.NewViews()
	require.NoError(t, err)

	r := skillshttp.NewRouter(views, keys, skillshttp.CookieConfig{}, "sdk-test", st, slogx.Discard())
	r.SkillService = &service.SkillService{Store: st}
	r.SessionService = &service.SessionService{
		Store:     st,
		Directory: dir,
		Signer:    signer,
		Verifier:  jwtx.NewVerifierEdDSA(keys, service.Issuer),
		TTL:       time.Hour,
	}
	r.ApplyRoutes()

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return skillsdk.NewSDKClient(srv.URL + "/"), st
}

func TestHealth(t *testing.T) {
	client := newServer(t)

	live, err := client.GetLiveness(t.Context())
	require.NoError(t, err)
	require.Equal(t, "ok", live.Status)
	require.Equal(t, "sdk-test", live.Version)
	require.Nil(t, live.Checks)

	ready, err := client.GetReadiness(t.Context())
	require.NoError(t, err)
	require.Equal(t, "ok", ready.Status)
	require.Equal(t, &skillsdk.HealthChecks{Database: "ok", Signer: "ok"}, ready.Checks)
	require.Empty(t, ready.Checks.Failing())
}

func TestReadinessDegraded(t *testing.T) {
	client, st := newServerWithStore(t)
	require.NoError(t, st.Close())

	ready, err := client.GetReadiness(t.Context())
	require.ErrorIs(t, err, skillsdk.ErrNotReady)

	var notReady *skillsdk.NotReadyError
	require.ErrorAs(t, err, &notReady)
	require.Equal(t, []string{"database"}, notReady.Failing)

	require.NotNil(t, ready)
	require.Equal(t, "degraded", ready.Status)
	require.Equal(t, "ok", ready.Checks.Signer)
	require.True(t, strings.HasPrefix(ready.Checks.Database, "error: "))

	live, err := client.GetLiveness(t.Context())
	require.NoError(t, err)
	require.Equal(t, "ok", live.Status)
}

func TestLoginRejected(t *testing.T) {
	client := newServer(t)

	_, err := client.Login(t.Context(), "Lia", "wrong", "")
	require.ErrorIs(t, err, skillsdk.ErrBadCredentials)

	_, err = client.Login(t.Context(), "lia", "pass", "")
	require.ErrorIs(t, err, skillsdk.ErrBadCredentials, "usernames are case sensitive")
}

func TestSkillLifecycle(t *testing.T) {
	ctx := t.Context()
	client := newServer(t)

	lia, err := client.Login(ctx, "Lia", "pass", "")
	require.NoError(t, err)
	leo, err := client.Login(ctx, "Leo", "pass", "")
	require.NoError(t, err)

	blank, err := lia.NewSkillForm(ctx)
	require.NoError(t, err)
	require.Zero(t, blank.ID)
	require.Empty(t, blank.Description)
	require.False(t, blank.Done)
	require.Equal(t, time.Now().AddDate(1, 0, 0).Format(time.DateOnly), blank.TargetDate)

	require.NoError(t, lia.CreateSkill(ctx, skillsdk.SkillInput{Description: "Learn Go", TargetDate: "2026-01-01"}))
	require.NoError(t, lia.CreateSkill(ctx, skillsdk.SkillInput{Description: "Learn SQL", TargetDate: "2026-03-01", Done: true}))

	skills, err := lia.ListSkills(ctx)
	require.NoError(t, err)
	require.Len(t, skills, 2)
	require.Equal(t, "Learn Go", skills[0].Description)
	require.Equal(t, "2026-01-01", skills[0].TargetDate)
	require.False(t, skills[0].Done)
	require.Equal(t, "Learn SQL", skills[1].Description)
	require.True(t, skills[1].Done)
	require.Less(t, skills[0].ID, skills[1].ID)

	leoSkills, err := leo.ListSkills(ctx)
	require.NoError(t, err)
	require.Empty(t, leoSkills)

	id := skills[0].ID
	require.NoError(t, lia.UpdateSkill(ctx, id, skillsdk.SkillInput{Description: "Learn Go well", TargetDate: "2026-06-30", Done: true}))

	got, err := lia.GetSkill(ctx, id)
	require.NoError(t, err)
	require.Equal(t, &skillsdk.Skill{ID: id, Description: "Learn Go well", TargetDate: "2026-06-30", Done: true}, got)

	require.NoError(t, lia.DeleteSkill(ctx, id))
	require.NoError(t, lia.DeleteSkill(ctx, id), "deleting twice is fine")

	skills, err = lia.ListSkills(ctx)
	require.NoError(t, err)
	require.Len(t, skills, 1)
	require.Equal(t, "Learn SQL", skills[0].Description)
}

func TestValidationErrors(t *testing.T) {
	ctx := t.Context()
	client := newServer(t)

	leo, err := client.Login(ctx, "Leo", "pass", "")
	require.NoError(t, err)

	err = leo.CreateSkill(ctx, skillsdk.SkillInput{Description: "Go", TargetDate: "2026-07-01"})
	var verr *skillsdk.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, map[string]string{"description": "Enter at least 5 characters"}, verr.Fields)

	err = leo.CreateSkill(ctx, skillsdk.SkillInput{Description: "Go", TargetDate: "soon"})
	require.ErrorAs(t, err, &verr)
	require.Equal(t, map[string]string{
		"description": "Enter at least 5 characters",
		"targetDate":  "Enter a valid date",
	}, verr.Fields)

	skills, err := leo.ListSkills(ctx)
	require.NoError(t, err)
	require.Empty(t, skills)
}

func TestSkillNotFound(t *testing.T) {
	ctx := t.Context()
	client := newServer(t)

	lia, err := client.Login(ctx, "Lia", "pass", "")
	require.NoError(t, err)

	_, err = lia.GetSkill(ctx, 404)
	require.ErrorIs(t, err, skillsdk.ErrSkillNotFound)
	require.Contains(t, err.Error(), "Skill 404 does not exist.")
}

func TestLogout(t *testing.T) {
	ctx := t.Context()
	client := newServer(t)

	lia, err := client.Login(ctx, "Lia", "pass", "")
	require.NoError(t, err)
	require.NoError(t, lia.Logout(ctx))

	_, err = lia.ListSkills(ctx)
	require.ErrorIs(t, err, skillsdk.ErrNotSignedIn)

	err = lia.CreateSkill(ctx, skillsdk.SkillInput{Description: "Learn Go", TargetDate: "2026-01-01"})
	require.ErrorIs(t, err, skillsdk.ErrNotSignedIn)
}

func TestLoginRateLimited(t *testing.T) {
	ctx := t.Context()
	client := newServer(t)

	var err error
	for range 10 {
		_, err = client.Login(ctx, "Leo", "wrong", "")
		if !errors.Is(err, skillsdk.ErrBadCredentials) {
			break
		}
	}
	require.ErrorIs(t, err, skillsdk.ErrRateLimited)
}
