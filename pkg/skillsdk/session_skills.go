package skillsdk

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// ListSkills returns the user's skills in list order.
func (s *Session) ListSkills(ctx context.Context) ([]Skill, error) {
	resp, err := s.client.doRequest(ctx, s.http, http.MethodGet, "/list-skills", nil)
	if err != nil {
		return nil, err
	}

	doc, err := readPage(resp, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return parseSkillTable(doc), nil
}

// NewSkillForm returns the prefilled values of a blank skill form.
func (s *Session) NewSkillForm(ctx context.Context) (*Skill, error) {
	return s.getForm(ctx, "/add-skill")
}

// GetSkill returns the skill with id as shown on its edit form.
func (s *Session) GetSkill(ctx context.Context, id int64) (*Skill, error) {
	return s.getForm(ctx, "/update-skill?id="+strconv.FormatInt(id, 10))
}

func (s *Session) getForm(ctx context.Context, path string) (*Skill, error) {
	resp, err := s.client.doRequest(ctx, s.http, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	doc, err := readPage(resp, http.StatusOK)
	if err != nil {
		return nil, err
	}

	skill, _ := parseSkillForm(doc)
	return &skill, nil
}

// CreateSkill adds a skill for the user.
func (s *Session) CreateSkill(ctx context.Context, in SkillInput) error {
	return s.submit(ctx, "/add-skill", in.form(0))
}

// UpdateSkill replaces every field of the skill with id.
func (s *Session) UpdateSkill(ctx context.Context, id int64, in SkillInput) error {
	return s.submit(ctx, "/update-skill", in.form(id))
}

// submit posts a skill form. The service redirects on success and shows
// the form again when it rejects the input.
func (s *Session) submit(ctx context.Context, path string, form url.Values) error {
	resp, err := s.client.doRequest(ctx, s.http, http.MethodPost, path, form)
	if err != nil {
		return err
	}

	if resp.StatusCode == http.StatusOK {
		doc, err := readPage(resp, http.StatusOK)
		if err != nil {
			return err
		}
		_, fields := parseSkillForm(doc)
		return &ValidationError{Fields: fields}
	}

	_, err = expectRedirect(resp, http.StatusSeeOther)
	return err
}

// DeleteSkill removes the skill with id. Deleting a missing skill succeeds.
func (s *Session) DeleteSkill(ctx context.Context, id int64) error {
	resp, err := s.client.doRequest(ctx, s.http, http.MethodGet, "/delete-skill?id="+strconv.FormatInt(id, 10), nil)
	if err != nil {
		return err
	}

	_, err = expectRedirect(resp, http.StatusFound)
	return err
}
