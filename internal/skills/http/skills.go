package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/aussiebroadwan/myskills/internal/skills/domain"
	"github.com/aussiebroadwan/myskills/internal/skills/service"
	"github.com/aussiebroadwan/myskills/pkg/httpx"
)

var errBadID = errors.New("invalid skill id")

// SkillsHandler serves the welcome page and the skill pages.
type SkillsHandler struct {
	Skills *service.SkillService
	Views  *Views
}

type welcomeView struct {
	page
	Count int64
}

type listView struct {
	page
	Skills []domain.Skill
}

// skillFormView backs both the create and the edit form. TargetDate is the
// raw text so a rejected value is shown back as typed.
type skillFormView struct {
	page
	Action      string
	ID          int64
	Description string
	TargetDate  string
	Done        bool
	Errors      map[string]string
}

func (v skillFormView) IsNew() bool { return v.ID == 0 }

func newSkillFormView(user, action string, s domain.Skill, rawDate string, verr *service.ValidationError) skillFormView {
	title := "Update Skill"
	if s.ID == 0 {
		title = "Add Skill"
	}
	if rawDate == "" {
		rawDate = s.TargetDate.String()
	}

	v := skillFormView{
		page:        page{Title: title, Username: user},
		Action:      action,
		ID:          s.ID,
		Description: s.Description,
		TargetDate:  rawDate,
		Done:        s.Done,
	}
	if verr != nil {
		v.Errors = verr.Fields
	}
	return v
}

// parseID reads a positive skill id. Empty means a new record.
func parseID(raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 0 {
		return 0, fmt.Errorf("%w: %q", errBadID, raw)
	}
	return id, nil
}

// parseSkillForm binds the posted form to a candidate record. Any owner
// field is ignored; an unparsable date leaves TargetDate zero so
// validation reports it.
func parseSkillForm(r *http.Request) (domain.Skill, string, error) {
	if err := r.ParseForm(); err != nil {
		return domain.Skill{}, "", err
	}

	id, err := parseID(r.PostForm.Get("id"))
	if err != nil {
		return domain.Skill{}, "", err
	}

	rawDate := strings.TrimSpace(r.PostForm.Get("targetDate"))
	target, _ := domain.ParseDate(rawDate)

	done := false
	switch strings.ToLower(r.PostForm.Get("done")) {
	case "on", "true":
		done = true
	}

	return domain.Skill{
		ID:          id,
		Description: r.PostForm.Get("description"),
		TargetDate:  target,
		Done:        done,
	}, rawDate, nil
}

// HandleWelcome godoc
//
//	@Summary		Welcome page
//	@Description	Greets the signed-in user and shows how many skills they track.
//	@Tags			Pages
//	@Produce		html
//	@Success		200	{string}	string	"HTML page"
//	@Failure		302	{string}	string	"Redirect to /login when not signed in"
//	@Router			/ [get]
func (h *SkillsHandler) HandleWelcome(w http.ResponseWriter, r *http.Request) {
	user := httpx.UsernameFromContext(r.Context())

	n, err := h.Skills.Count(r.Context(), user)
	if err != nil {
		h.Views.ServerError(w, r, err)
		return
	}

	h.Views.Render(w, r, http.StatusOK, viewWelcome, welcomeView{
		page:  page{Title: "Welcome", Username: user},
		Count: n,
	})
}

// HandleList godoc
//
//	@Summary		List skills
//	@Description	Lists every skill owned by the signed-in user, ordered by id.
//	@Tags			Skills
//	@Produce		html
//	@Success		200	{string}	string	"HTML page"
//	@Failure		302	{string}	string	"Redirect to /login when not signed in"
//	@Router			/list-skills [get]
func (h *SkillsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	user := httpx.UsernameFromContext(r.Context())

	skills, err := h.Skills.List(r.Context(), user)
	if err != nil {
		h.Views.ServerError(w, r, err)
		return
	}

	h.Views.Render(w, r, http.StatusOK, viewListSkills, listView{
		page:   page{Title: "Your Skills", Username: user},
		Skills: skills,
	})
}

// HandleNewForm godoc
//
//	@Summary		New skill form
//	@Description	Shows a blank skill due one year from today. Nothing is stored.
//	@Tags			Skills
//	@Produce		html
//	@Success		200	{string}	string	"HTML form"
//	@Router			/add-skill [get]
func (h *SkillsHandler) HandleNewForm(w http.ResponseWriter, r *http.Request) {
	user := httpx.UsernameFromContext(r.Context())
	h.Views.Render(w, r, http.StatusOK, viewSkill,
		newSkillFormView(user, "/add-skill", h.Skills.NewForm(user), "", nil))
}

// HandleCreate godoc
//
//	@Summary		Create skill
//	@Description	Stores a new skill owned by the signed-in user and redirects to the list.
//	@Description	An invalid form is shown again with the submitted values and inline errors.
//	@Tags			Skills
//	@Accept			x-www-form-urlencoded
//	@Produce		html
//	@Param			description	formData	string	true	"At least 5 characters"
//	@Param			targetDate	formData	string	true	"YYYY-MM-DD"
//	@Param			done		formData	bool	false	"on or true when done"
//	@Success		303			{string}	string	"Redirect to /list-skills"
//	@Success		200			{string}	string	"Form with validation errors"
//	@Router			/add-skill [post]
func (h *SkillsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user := httpx.UsernameFromContext(r.Context())

	candidate, rawDate, err := parseSkillForm(r)
	if err != nil {
		h.Views.RenderError(w, r, http.StatusBadRequest, "The submitted form could not be read.")
		return
	}
	candidate.ID = 0

	out, err := h.Skills.Create(r.Context(), user, candidate)
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		h.Views.Render(w, r, http.StatusOK, viewSkill, newSkillFormView(user, "/add-skill", out, rawDate, verr))
	case err != nil:
		h.Views.ServerError(w, r, err)
	default:
		httpx.SeeOther(w, r, "/list-skills")
	}
}

// HandleEditForm godoc
//
//	@Summary		Edit skill form
//	@Description	Shows the skill with the given id for editing.
//	@Tags			Skills
//	@Produce		html
//	@Param			id	query		int		true	"Skill id"
//	@Success		200	{string}	string	"HTML form"
//	@Failure		400	{string}	string	"Missing or malformed id"
//	@Failure		404	{string}	string	"No skill with this id"
//	@Router			/update-skill [get]
func (h *SkillsHandler) HandleEditForm(w http.ResponseWriter, r *http.Request) {
	user := httpx.UsernameFromContext(r.Context())

	id, err := parseID(r.URL.Query().Get("id"))
	if err != nil || id == 0 {
		h.Views.RenderError(w, r, http.StatusBadRequest, "A valid skill id is required.")
		return
	}

	s, err := h.Skills.Get(r.Context(), user, id)
	if errors.Is(err, service.ErrSkillNotFound) {
		h.Views.RenderError(w, r, http.StatusNotFound, fmt.Sprintf("Skill %d does not exist.", id))
		return
	}
	if err != nil {
		h.Views.ServerError(w, r, err)
		return
	}

	h.Views.Render(w, r, http.StatusOK, viewSkill, newSkillFormView(user, "/update-skill", s, "", nil))
}

// HandleUpdate godoc
//
//	@Summary		Update skill
//	@Description	Replaces every field of the skill with the posted id and redirects to the list.
//	@Description	An invalid form is shown again with the submitted values and inline errors.
//	@Tags			Skills
//	@Accept			x-www-form-urlencoded
//	@Produce		html
//	@Param			id			formData	int		true	"Skill id"
//	@Param			description	formData	string	true	"At least 5 characters"
//	@Param			targetDate	formData	string	true	"YYYY-MM-DD"
//	@Param			done		formData	bool	false	"on or true when done"
//	@Success		303			{string}	string	"Redirect to /list-skills"
//	@Success		200			{string}	string	"Form with validation errors"
//	@Failure		400			{string}	string	"Malformed id"
//	@Failure		404			{string}	string	"Skill belongs to another user (ownership enforced)"
//	@Router			/update-skill [post]
func (h *SkillsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	user := httpx.UsernameFromContext(r.Context())

	candidate, rawDate, err := parseSkillForm(r)
	if err != nil {
		h.Views.RenderError(w, r, http.StatusBadRequest, "A valid skill id is required.")
		return
	}

	out, err := h.Skills.Update(r.Context(), user, candidate)
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		h.Views.Render(w, r, http.StatusOK, viewSkill, newSkillFormView(user, "/update-skill", out, rawDate, verr))
	case errors.Is(err, service.ErrSkillNotFound):
		h.Views.RenderError(w, r, http.StatusNotFound, fmt.Sprintf("Skill %d does not exist.", candidate.ID))
	case err != nil:
		h.Views.ServerError(w, r, err)
	default:
		httpx.SeeOther(w, r, "/list-skills")
	}
}

// HandleDelete godoc
//
//	@Summary		Delete skill
//	@Description	Deletes the skill with the given id and redirects to the list, whether or not it existed.
//	@Tags			Skills
//	@Produce		html
//	@Param			id	query		int		true	"Skill id"
//	@Success		302	{string}	string	"Redirect to /list-skills"
//	@Failure		400	{string}	string	"Missing or malformed id"
//	@Router			/delete-skill [get]
func (h *SkillsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	user := httpx.UsernameFromContext(r.Context())

	id, err := parseID(r.URL.Query().Get("id"))
	if err != nil || id == 0 {
		h.Views.RenderError(w, r, http.StatusBadRequest, "A valid skill id is required.")
		return
	}

	if err := h.Skills.Delete(r.Context(), user, id); err != nil {
		h.Views.ServerError(w, r, err)
		return
	}

	http.Redirect(w, r, "/list-skills", http.StatusFound)
}
