package skills_test

import (
	"testing"

	"github.com/aussiebroadwan/myskills/pkg/skillsdk"
	"github.com/stretchr/testify/require"
)

// TestSkillsAreScopedToOwner walks the Lia and Leo scenario against the
// container.
func TestSkillsAreScopedToOwner(t *testing.T) {
	ctx := t.Context()
	client := setupSkillsContainer(t, relaxedRateLimits())

	lia := performLogin(t, client, "Lia")
	leo := performLogin(t, client, "Leo")

	require.NoError(t, lia.CreateSkill(ctx, skillsdk.SkillInput{Description: "Learn Go", TargetDate: "2026-01-01"}))

	liaSkills, err := lia.ListSkills(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"Learn Go"}, descriptions(liaSkills))

	leoSkills, err := leo.ListSkills(ctx)
	require.NoError(t, err)
	require.Empty(t, leoSkills)

	err = leo.CreateSkill(ctx, skillsdk.SkillInput{Description: "Go", TargetDate: "2026-07-01"})
	var verr *skillsdk.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "Enter at least 5 characters", verr.Fields["description"])

	leoSkills, err = leo.ListSkills(ctx)
	require.NoError(t, err)
	require.Empty(t, leoSkills, "rejected skill must not be stored")
}

// TestUpdateAndDelete edits a skill in place and removes it.
func TestUpdateAndDelete(t *testing.T) {
	ctx := t.Context()
	client := setupSkillsContainer(t, relaxedRateLimits())

	lia := performLogin(t, client, "Lia")
	require.NoError(t, lia.CreateSkill(ctx, skillsdk.SkillInput{Description: "Learn Go", TargetDate: "2026-01-01"}))

	skills, err := lia.ListSkills(ctx)
	require.NoError(t, err)
	require.Len(t, skills, 1)
	id := skills[0].ID

	require.NoError(t, lia.UpdateSkill(ctx, id, skillsdk.SkillInput{Description: "Learn Go deeply", TargetDate: "2026-12-31", Done: true}))

	skills, err = lia.ListSkills(ctx)
	require.NoError(t, err)
	require.Equal(t, []skillsdk.Skill{{ID: id, Description: "Learn Go deeply", TargetDate: "2026-12-31", Done: true}}, skills)

	require.NoError(t, lia.DeleteSkill(ctx, id))

	_, err = lia.GetSkill(ctx, id)
	require.ErrorIs(t, err, skillsdk.ErrSkillNotFound)
}

// TestEnforcedOwnership checks that other users' skills are hidden when
// ownership is enforced.
func TestEnforcedOwnership(t *testing.T) {
	ctx := t.Context()

	env := relaxedRateLimits()
	env["SKILLS_ENFORCE_OWNERSHIP"] = "true"
	client := setupSkillsContainer(t, env)

	lia := performLogin(t, client, "Lia")
	leo := performLogin(t, client, "Leo")

	require.NoError(t, lia.CreateSkill(ctx, skillsdk.SkillInput{Description: "Learn Go", TargetDate: "2026-01-01"}))
	skills, err := lia.ListSkills(ctx)
	require.NoError(t, err)
	require.Len(t, skills, 1)
	id := skills[0].ID

	_, err = leo.GetSkill(ctx, id)
	require.ErrorIs(t, err, skillsdk.ErrSkillNotFound)

	require.NoError(t, leo.DeleteSkill(ctx, id))

	skills, err = lia.ListSkills(ctx)
	require.NoError(t, err)
	require.Len(t, skills, 1, "Leo's delete must not touch Lia's skill")
}

// TestLogoutEndsSession verifies the cookie stops working after logout.
func TestLogoutEndsSession(t *testing.T) {
	ctx := t.Context()
	client := setupSkillsContainer(t, relaxedRateLimits())

	_, err := client.Login(ctx, "Lia", "not-the-password", "")
	require.ErrorIs(t, err, skillsdk.ErrBadCredentials)

	lia := performLogin(t, client, "Lia")
	require.NoError(t, lia.Logout(ctx))

	_, err = lia.ListSkills(ctx)
	require.ErrorIs(t, err, skillsdk.ErrNotSignedIn)
}
