package pets

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"pets-api/internal/platform/logger"
	"pets-api/internal/platform/pagination"

	"github.com/cockroachdb/errors"
	"github.com/go-chi/chi/v5"
)

type RouteOptions struct {
	Paginator pagination.Paginator
	Logger    logger.Logger
}

func RegisterRoutes(r chi.Router, svc *Service, opts RouteOptions) {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	if opts.Paginator.PageSize <= 0 {
		opts.Paginator = pagination.New(pagination.DefaultPageSize, pagination.DefaultMaxPageSize)
	}

	r.Route("/pets", func(pr chi.Router) {
		pr.Post("/", createPetHandler(svc, log))
		pr.Get("/", listPetsHandler(svc, opts.Paginator, log))

		pr.Get("/{petID}", getPetHandler(svc, log))
		pr.Patch("/{petID}", updatePetHandler(svc, log))
		pr.Delete("/{petID}", deletePetHandler(svc, log))
	})
}

// groupPayload es la representación anidada del group en requests.
type groupPayload struct {
	ScientificName string `json:"scientific_name" validate:"required,max=50"`
}

type traitPayload struct {
	Name string `json:"name" validate:"required,max=20"`
}

// createPetRequest es el cuerpo del POST /pets/.
type createPetRequest struct {
	Name   string         `json:"name" validate:"required,max=50"`
	Age    *int           `json:"age" validate:"required,gte=0"`
	Weight *float64       `json:"weight" validate:"required,gte=0"`
	Sex    string         `json:"sex" validate:"omitempty,pet_sex" enums:"Male,Female,Not Informed"`
	Group  *groupPayload  `json:"group" validate:"required"`
	Traits []traitPayload `json:"traits" validate:"omitempty,dive"`
}

// updatePetRequest es el cuerpo del PATCH. Punteros: nil = no enviado.
type updatePetRequest struct {
	Name   *string         `json:"name" validate:"omitnil,min=1,max=50"`
	Age    *int            `json:"age" validate:"omitnil,gte=0"`
	Weight *float64        `json:"weight" validate:"omitnil,gte=0"`
	Sex    *string         `json:"sex" validate:"omitnil,pet_sex" enums:"Male,Female,Not Informed"`
	Group  *groupPayload   `json:"group"`
	Traits *[]traitPayload `json:"traits" validate:"omitnil,dive"`
}

type groupResponse struct {
	ID             string    `json:"id"`
	ScientificName string    `json:"scientific_name"`
	CreatedAt      time.Time `json:"created_at"`
}

type traitResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// petResponse representa una mascota devuelta por la API.
type petResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Age         int             `json:"age"`
	Weight      float64         `json:"weight"`
	Sex         Sex             `json:"sex"`
	Group       groupResponse   `json:"group"`
	Traits      []traitResponse `json:"traits"`
	TraitsCount int             `json:"traits_count"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// petPage es el sobre paginado del listado (solo para la documentación).
type petPage struct {
	Count    int           `json:"count"`
	Next     *string       `json:"next"`
	Previous *string       `json:"previous"`
	Results  []petResponse `json:"results"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

// createPetHandler godoc
// @Summary Crear mascota
// @Description Crea una mascota. El group se busca por scientific_name (sin distinguir mayúsculas) y se crea si no existe; lo mismo con cada trait.
// @Tags pets
// @Accept json
// @Produce json
// @Param payload body createPetRequest true "Datos de la mascota"
// @Success 201 {object} petResponse
// @Failure 400 {object} map[string][]string "Errores de validación por campo"
// @Router /pets/ [post]
func createPetHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createPetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "JSON parse error")
			return
		}
		req.normalize()

		if err := validateRequest(req); err != nil {
			writeServiceError(w, log, err)
			return
		}

		in := CreateInput{
			Name:   req.Name,
			Age:    *req.Age,
			Weight: *req.Weight,
			Sex:    Sex(req.Sex),
			Group:  GroupInput{ScientificName: req.Group.ScientificName},
			Traits: toTraitInputs(req.Traits),
		}

		p, err := svc.Create(r.Context(), in)
		if err != nil {
			writeServiceError(w, log, err)
			return
		}

		writeJSON(w, http.StatusCreated, toPetResponse(p))
	}
}

// listPetsHandler godoc
// @Summary Listar mascotas
// @Description Lista paginada. Filtros opcionales y combinables (AND): scientific_name del group y nombre de trait, sin distinguir mayúsculas.
// @Tags pets
// @Produce json
// @Param scientific_name query string false "Nombre científico del group"
// @Param trait query string false "Nombre del trait"
// @Param page query int false "Página (desde 1)"
// @Param page_size query int false "Tamaño de página"
// @Success 200 {object} petPage
// @Failure 404 {object} errorResponse "Invalid page."
// @Router /pets/ [get]
func listPetsHandler(svc *Service, pg pagination.Paginator, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := pg.Params(r)
		if err != nil {
			writeError(w, http.StatusNotFound, "Invalid page.")
			return
		}

		q := r.URL.Query()
		items, total, err := svc.List(r.Context(), ListFilter{
			ScientificName: q.Get("scientific_name"),
			Trait:          q.Get("trait"),
			Limit:          params.Limit(),
			Offset:         params.Offset(),
		})
		if err != nil {
			writeServiceError(w, log, err)
			return
		}

		out := make([]petResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPetResponse(p))
		}

		page, err := pagination.NewPage(r, params, total, out)
		if err != nil {
			writeError(w, http.StatusNotFound, "Invalid page.")
			return
		}

		writeJSON(w, http.StatusOK, page)
	}
}

// getPetHandler godoc
// @Summary Obtener mascota
// @Tags pets
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Success 200 {object} petResponse
// @Failure 404 {object} errorResponse
// @Router /pets/{petID}/ [get]
func getPetHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.GetByID(r.Context(), chi.URLParam(r, "petID"))
		if err != nil {
			writeServiceError(w, log, err)
			return
		}
		writeJSON(w, http.StatusOK, toPetResponse(p))
	}
}

// deletePetHandler godoc
// @Summary Borrar mascota
// @Tags pets
// @Param petID path string true "ID de la mascota"
// @Success 204
// @Failure 404 {object} errorResponse
// @Router /pets/{petID}/ [delete]
func deletePetHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "petID")); err != nil {
			writeServiceError(w, log, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// updatePetHandler godoc
// @Summary Actualizar mascota (parcial)
// @Description Solo se tocan los campos enviados. Si viene traits, el set se reemplaza completo; si viene group, se reasigna.
// @Tags pets
// @Accept json
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Param payload body updatePetRequest true "Campos a modificar"
// @Success 200 {object} petResponse
// @Failure 400 {object} map[string][]string "Errores de validación por campo"
// @Failure 404 {object} errorResponse
// @Router /pets/{petID}/ [patch]
func updatePetHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID := chi.URLParam(r, "petID")

		// 404 antes que 400: primero existe, después se valida el cuerpo.
		if _, err := svc.GetByID(r.Context(), petID); err != nil {
			writeServiceError(w, log, err)
			return
		}

		var req updatePetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "JSON parse error")
			return
		}
		req.normalize()

		if err := validateRequest(req); err != nil {
			writeServiceError(w, log, err)
			return
		}

		in := UpdateInput{
			Name:   req.Name,
			Age:    req.Age,
			Weight: req.Weight,
		}
		if req.Sex != nil {
			sex := Sex(*req.Sex)
			in.Sex = &sex
		}
		if req.Group != nil {
			in.Group = &GroupInput{ScientificName: req.Group.ScientificName}
		}
		if req.Traits != nil {
			ts := toTraitInputs(*req.Traits)
			in.Traits = &ts
		}

		updated, err := svc.Update(r.Context(), petID, in)
		if err != nil {
			writeServiceError(w, log, err)
			return
		}

		writeJSON(w, http.StatusOK, toPetResponse(updated))
	}
}

func (req *createPetRequest) normalize() {
	req.Name = strings.TrimSpace(req.Name)
	req.Sex = strings.TrimSpace(req.Sex)
	if req.Group != nil {
		req.Group.ScientificName = strings.TrimSpace(req.Group.ScientificName)
	}
	for i := range req.Traits {
		req.Traits[i].Name = strings.TrimSpace(req.Traits[i].Name)
	}
}

func (req *updatePetRequest) normalize() {
	if req.Name != nil {
		v := strings.TrimSpace(*req.Name)
		req.Name = &v
	}
	if req.Sex != nil {
		v := strings.TrimSpace(*req.Sex)
		req.Sex = &v
	}
	if req.Group != nil {
		req.Group.ScientificName = strings.TrimSpace(req.Group.ScientificName)
	}
	if req.Traits != nil {
		for i := range *req.Traits {
			(*req.Traits)[i].Name = strings.TrimSpace((*req.Traits)[i].Name)
		}
	}
}

func toTraitInputs(in []traitPayload) []TraitInput {
	out := make([]TraitInput, 0, len(in))
	for _, t := range in {
		out = append(out, TraitInput{Name: t.Name})
	}
	return out
}

func toPetResponse(p Pet) petResponse {
	ts := make([]traitResponse, 0, len(p.Traits))
	for _, t := range p.Traits {
		ts = append(ts, traitResponse{
			ID:        t.ID,
			Name:      t.Name,
			CreatedAt: t.CreatedAt,
		})
	}

	return petResponse{
		ID:     p.ID,
		Name:   p.Name,
		Age:    p.Age,
		Weight: p.Weight,
		Sex:    p.Sex,
		Group: groupResponse{
			ID:             p.Group.ID,
			ScientificName: p.Group.ScientificName,
			CreatedAt:      p.Group.CreatedAt,
		},
		Traits:      ts,
		TraitsCount: len(ts),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// writeServiceError traduce errores del dominio a status HTTP.
func writeServiceError(w http.ResponseWriter, log logger.Logger, err error) {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, verr.Fields)
	case errors.Is(err, ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "invalid input")
	case errors.Is(err, ErrNotFound):
		writeError(w, http.StatusNotFound, "Not found.")
	default:
		log.Error("request failed", map[string]any{"err": err})
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorResponse{Detail: detail})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
