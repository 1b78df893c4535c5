/*
Package skillsdk is a client for the My Skills web application.

The application serves HTML pages behind a cookie session, so the client
behaves like a browser: it keeps the session cookie in a jar, does not
follow redirects, and reads results back out of the rendered pages.

# SDKClient vs Session

SDKClient covers the public endpoints and signs users in:

	client := skillsdk.NewSDKClient("http://localhost:8080")

	health, err := client.GetReadiness(ctx)

	session, err := client.Login(ctx, "Lia", "pass", "")

A Session carries one user's cookie and covers the skill pages:

	err = session.CreateSkill(ctx, skillsdk.SkillInput{
		Description: "Learn Go",
		TargetDate:  "2026-01-01",
	})

	skills, err := session.ListSkills(ctx)

	err = session.Logout(ctx)

# Errors

Failed form submissions return a *ValidationError with one message per
field. Other failures map to the sentinel errors ErrBadCredentials,
ErrNotSignedIn, ErrSkillNotFound and ErrRateLimited, or to a *StatusError
for anything unexpected. A degraded /readyz returns its report along with
a *NotReadyError that matches ErrNotReady.
*/
package skillsdk
