package recipes

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"safeplate/apperr"
	"safeplate/middleware"
	"safeplate/models"
	"safeplate/utils"

	"github.com/julienschmidt/httprouter"
)

const requestTimeout = 5 * time.Second

// HandleSearch serves GET /api/recipes. Query params: id, search, tags,
// safes, allergens, flexibility, prefix, unapproved, all, from, seed.
func (s *Service) HandleSearch(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	p, err := parseSearchParams(r)
	if err != nil {
		utils.RespondAppError(w, err)
		return
	}
	if (p.Unapproved || p.All) && !middleware.IsAdmin(r.Context()) {
		utils.RespondAppError(w, apperr.ErrUnauthorized)
		return
	}

	total, recipes, err := s.Search(ctx, p)
	if err != nil {
		utils.RespondAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"status":  "success",
		"total":   total,
		"recipes": recipes,
	})
}

// HandleGet serves GET /api/recipes/:id.
func (s *Service) HandleGet(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	recipe, err := s.GetByID(ctx, ps.ByName("id"))
	if err != nil {
		utils.RespondAppError(w, err)
		return
	}
	if !recipe.Approved && !middleware.IsAdmin(r.Context()) {
		// An unapproved recipe does not exist for normal users.
		utils.RespondAppError(w, apperr.NotFound("recipe %q", recipe.ID))
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"status": "success", "recipe": recipe})
}

// HandleIndex serves PUT /api/recipes: strict-decode, then create or
// replace. Anyone may submit a new unapproved recipe; everything else needs
// the admin token.
func (s *Service) HandleIndex(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	payload, err := models.DecodeRecipePayload(r.Body)
	if err != nil {
		utils.RespondAppError(w, err)
		return
	}

	id, err := s.Index(ctx, payload, middleware.IsAdmin(r.Context()))
	if err != nil {
		utils.RespondAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"status": "success", "id": id})
}

// HandleDelete serves DELETE /api/recipes/:id. Routes wrap this in the
// admin requirement already; the service checks again regardless.
func (s *Service) HandleDelete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	if err := s.Delete(ctx, ps.ByName("id"), middleware.IsAdmin(r.Context())); err != nil {
		utils.RespondAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"status": "success"})
}

func parseSearchParams(r *http.Request) (SearchParams, error) {
	q := r.URL.Query()
	p := SearchParams{
		ID:         q.Get("id"),
		Search:     q.Get("search"),
		Tags:       splitCSV(q.Get("tags")),
		Safes:      splitCSV(q.Get("safes")),
		Allergens:  splitCSV(q.Get("allergens")),
		Prefix:     q.Get("prefix") != "",
		Unapproved: q.Get("unapproved") != "",
		All:        q.Get("all") != "",
	}

	var err error
	if p.Flexibility, err = intParam(q.Get("flexibility")); err != nil {
		return p, apperr.Validation("flexibility must be an integer")
	}
	if p.From, err = intParam(q.Get("from")); err != nil {
		return p, apperr.Validation("from must be an integer")
	}
	if p.Size, err = intParam(q.Get("size")); err != nil {
		return p, apperr.Validation("size must be an integer")
	}
	if raw := q.Get("seed"); raw != "" {
		seed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return p, apperr.Validation("seed must be an integer")
		}
		p.Seed = &seed
	}
	return p, nil
}

func intParam(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	return out
}
