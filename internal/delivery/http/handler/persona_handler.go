package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"pathmatch/internal/delivery/http/dto"
	"pathmatch/internal/delivery/http/middleware"
	"pathmatch/internal/domain/persona"
	"pathmatch/internal/pkg/response"
	"pathmatch/internal/usecase"
)

type PersonaHandler struct {
	uc usecase.PersonaUsecase
}

func NewPersonaHandler(uc usecase.PersonaUsecase) *PersonaHandler {
	return &PersonaHandler{uc: uc}
}

type skillRequest struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Proficiency string `json:"proficiency"`
	YearsUsed   int    `json:"years_used"`
}

type nonNegotiablesRequest struct {
	MinSalary          *int     `json:"min_salary"`
	SalaryCurrency     string   `json:"salary_currency"`
	CommutableCities   []string `json:"commutable_cities"`
	ExcludedIndustries []string `json:"excluded_industries"`
	RequiresVisa       bool     `json:"requires_visa"`
}

type personaRequest struct {
	Skills           []skillRequest        `json:"skills"`
	YearsExperience  int                   `json:"years_experience"`
	CurrentRole      string                `json:"current_role"`
	CurrentCompany   string                `json:"current_company"`
	TargetRoles      []string              `json:"target_roles"`
	TargetSkills     []string              `json:"target_skills"`
	Location         string                `json:"location"`
	RemotePreference string                `json:"remote_preference"`
	NonNegotiables   nonNegotiablesRequest `json:"non_negotiables"`
}

func (h *PersonaHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/:id", h.Get)
	r.Put("/:id", h.Update)
}

func (h *PersonaHandler) Create(c fiber.Ctx) error {
	userID, ok := userIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req personaRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	profile, err := req.toDomain()
	if err != nil {
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, err.Error(), nil, err)
	}
	profile.ID = uuid.New()
	profile.UserID = userID

	created, err := h.uc.Create(c.Context(), profile)
	if err != nil {
		return mapPersonaError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewPersonaResponse(created))
}

func (h *PersonaHandler) Update(c fiber.Ctx) error {
	userID, ok := userIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	existing, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return mapPersonaError(err)
	}
	if existing.UserID != userID {
		return middleware.NewAppError(fiber.StatusForbidden, "Forbidden", nil, nil)
	}

	var req personaRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	profile, err := req.toDomain()
	if err != nil {
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, err.Error(), nil, err)
	}
	profile.ID = id
	profile.UserID = userID
	profile.CreatedAt = existing.CreatedAt

	updated, err := h.uc.Update(c.Context(), profile)
	if err != nil {
		return mapPersonaError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewPersonaResponse(updated))
}

func (h *PersonaHandler) Get(c fiber.Ctx) error {
	userID, ok := userIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	p, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return mapPersonaError(err)
	}
	if p.UserID != userID {
		return middleware.NewAppError(fiber.StatusForbidden, "Forbidden", nil, nil)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewPersonaResponse(p))
}

func (h *PersonaHandler) List(c fiber.Ctx) error {
	userID, ok := userIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	out, err := h.uc.ListByUser(c.Context(), userID)
	if err != nil {
		return mapPersonaError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewPersonaListResponse(out))
}

func (r personaRequest) toDomain() (persona.Profile, error) {
	skills := make([]persona.Skill, 0, len(r.Skills))
	for _, s := range r.Skills {
		st := persona.SkillType(s.Type)
		if st != persona.SkillTypeHard && st != persona.SkillTypeSoft {
			return persona.Profile{}, errors.New("invalid skill type: " + s.Type)
		}
		prof := persona.Proficiency(s.Proficiency)
		switch prof {
		case persona.ProficiencyLearning, persona.ProficiencyFamiliar,
			persona.ProficiencyProficient, persona.ProficiencyExpert:
		default:
			return persona.Profile{}, errors.New("invalid proficiency: " + s.Proficiency)
		}
		skills = append(skills, persona.Skill{
			Name:        s.Name,
			Type:        st,
			Proficiency: prof,
			YearsUsed:   s.YearsUsed,
		})
	}

	pref := persona.RemotePreference(r.RemotePreference)
	switch pref {
	case persona.RemoteOnly, persona.HybridOK, persona.OnsiteOK:
	default:
		return persona.Profile{}, errors.New("invalid remote preference: " + r.RemotePreference)
	}

	return persona.Profile{
		Skills:           skills,
		YearsExperience:  r.YearsExperience,
		CurrentRole:      r.CurrentRole,
		CurrentCompany:   r.CurrentCompany,
		TargetRoles:      r.TargetRoles,
		TargetSkills:     r.TargetSkills,
		Location:         r.Location,
		RemotePreference: pref,
		NonNegotiables: persona.NonNegotiables{
			MinSalary:          r.NonNegotiables.MinSalary,
			SalaryCurrency:     r.NonNegotiables.SalaryCurrency,
			CommutableCities:   r.NonNegotiables.CommutableCities,
			ExcludedIndustries: r.NonNegotiables.ExcludedIndustries,
			RequiresVisa:       r.NonNegotiables.RequiresVisa,
		},
	}, nil
}

func mapPersonaError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrPersonaNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Persona not found", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}

func userIDFromCtx(c fiber.Ctx) (uuid.UUID, bool) {
	id, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}
