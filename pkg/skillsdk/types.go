package skillsdk

import (
	"net/url"
	"strconv"
)

// HealthResponse is the body of /livez and /readyz.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports the individual readiness checks.
type HealthChecks struct {
	Database string `json:"database"`
	Signer   string `json:"signer"`
}

// Failing names the checks that did not report "ok". A nil receiver has
// no failing checks.
func (c *HealthChecks) Failing() []string {
	if c == nil {
		return nil
	}
	var out []string
	if c.Database != "ok" {
		out = append(out, "database")
	}
	if c.Signer != "ok" {
		out = append(out, "signer")
	}
	return out
}

// Skill is a skill as shown to its owner.
type Skill struct {
	ID          int64
	Description string
	TargetDate  string // YYYY-MM-DD
	Done        bool
}

// SkillInput is the editable part of a skill.
type SkillInput struct {
	Description string
	TargetDate  string // YYYY-MM-DD
	Done        bool
}

func (in SkillInput) form(id int64) url.Values {
	v := url.Values{
		"description": {in.Description},
		"targetDate":  {in.TargetDate},
	}
	if id != 0 {
		v.Set("id", strconv.FormatInt(id, 10))
	}
	if in.Done {
		v.Set("done", "true")
	}
	return v
}
