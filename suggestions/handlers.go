package suggestions

import (
	"context"
	"net/http"
	"time"

	"safeplate/utils"

	"github.com/julienschmidt/httprouter"
)

const requestTimeout = 5 * time.Second

func (s *Service) HandleSuggestTags(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	s.respond(w, r, "tags", s.SuggestTags)
}

func (s *Service) HandleSuggestOptions(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	s.respond(w, r, "options", s.SuggestOptions)
}

func (s *Service) HandleSuggestAllergens(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	s.respond(w, r, "allergens", s.SuggestAllergens)
}

// HandleOptionAllergens serves GET /api/suggest/option-allergens?option=:
// the allergen prefill when an author picks a known ingredient.
func (s *Service) HandleOptionAllergens(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	allergens, err := s.AllergensForOption(ctx, r.URL.Query().Get("option"))
	if err != nil {
		utils.RespondAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"status": "success", "allergens": allergens})
}

func (s *Service) respond(w http.ResponseWriter, r *http.Request, key string, fn func(context.Context, string) ([]string, error)) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	terms, err := fn(ctx, r.URL.Query().Get("search"))
	if err != nil {
		utils.RespondAppError(w, err)
		return
	}
	if terms == nil {
		terms = []string{}
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"status": "success", key: terms})
}
