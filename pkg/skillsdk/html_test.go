package skillsdk

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseSkillTable(t *testing.T) {
	t.Parallel()

	doc, err := parseHTML([]byte(`<main><table>
<thead><tr><th>Description</th><th>Target Date</th><th>Done?</th><th></th><th></th></tr></thead>
<tbody>
<tr><td>Learn  Go</td><td>2026-01-01</td><td>No</td><td><a href="/delete-skill?id=3">Delete</a></td><td><a href="/update-skill?id=3">Update</a></td></tr>
<tr><td>Learn &amp; teach</td><td>2026-02-01</td><td>Yes</td><td><a href="/delete-skill?id=9">Delete</a></td><td></td></tr>
</tbody></table></main>`))
	require.NoError(t, err)

	require.Equal(t, []Skill{
		{ID: 3, Description: "Learn Go", TargetDate: "2026-01-01"},
		{ID: 9, Description: "Learn & teach", TargetDate: "2026-02-01", Done: true},
	}, parseSkillTable(doc))
}

func TestParseSkillTableEmpty(t *testing.T) {
	t.Parallel()

	doc, err := parseHTML([]byte(`<table><tbody><tr><td colspan="5">No skills yet.</td></tr></tbody></table>`))
	require.NoError(t, err)

	skills := parseSkillTable(doc)
	require.NotNil(t, skills)
	require.Empty(t, skills)
}

func TestParseSkillForm(t *testing.T) {
	t.Parallel()

	doc, err := parseHTML([]byte(`<form method="post" action="/update-skill">
<input type="hidden" name="id" value="7">
<input id="description" name="description" type="text" value="Go">
<div class="error">Enter at least 5 characters</div>
<input id="targetDate" name="targetDate" type="date" value="2026-07-01">
<label><input name="done" type="checkbox" value="true" checked> Done</label>
</form>`))
	require.NoError(t, err)

	s, errs := parseSkillForm(doc)
	require.Equal(t, Skill{ID: 7, Description: "Go", TargetDate: "2026-07-01", Done: true}, s)
	require.Equal(t, map[string]string{"description": "Enter at least 5 characters"}, errs)
}

func TestErrorPageMessage(t *testing.T) {
	t.Parallel()

	doc, err := parseHTML([]byte(`<nav><a href="/">Home</a></nav><main><h1>404 Not Found</h1><p>Skill 5 does not exist.</p><p><a href="/">Back</a></p></main>`))
	require.NoError(t, err)
	require.Equal(t, "Skill 5 does not exist.", errorPageMessage(doc))
}

func TestValidationErrorMessage(t *testing.T) {
	t.Parallel()

	err := &ValidationError{Fields: map[string]string{"targetDate": "Enter a valid date", "description": "Enter at least 5 characters"}}
	require.Equal(t, "skillsdk: invalid skill: description: Enter at least 5 characters; targetDate: Enter a valid date", err.Error())
}
