package recipes

import (
	"context"
	"errors"
	"time"

	"safeplate/apperr"
	"safeplate/config"
	"safeplate/db"
	"safeplate/models"
	"safeplate/mq"
	"safeplate/textnorm"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Service owns the recipe collection: search, lookup, write and delete.
// It is stateless apart from its immutable collaborators and safe for
// concurrent use.
type Service struct {
	col       *mongo.Collection
	norm      *textnorm.Normalizer
	events    *mq.Emitter
	sanitizer *stepsSanitizer
	cfg       config.Config
}

func New(store *db.Store, norm *textnorm.Normalizer, events *mq.Emitter, cfg config.Config) *Service {
	return &Service{
		col:       store.RecipeCollection,
		norm:      norm,
		events:    events,
		sanitizer: newStepsSanitizer(cfg.S3Bucket),
		cfg:       cfg,
	}
}

type searchPage struct {
	Results []models.Recipe `bson:"results"`
	Total   []struct {
		Count int64 `bson:"count"`
	} `bson:"total"`
}

// Search validates parameters, canonicalizes the raw terms, and runs the
// aggregation pipeline. Badness filtering happens in the store; nothing is
// fetched beyond the requested page.
func (s *Service) Search(ctx context.Context, p SearchParams) (int64, []models.Recipe, error) {
	if err := p.Validate(); err != nil {
		return 0, nil, err
	}

	tags := make([]string, 0, len(p.Tags))
	for _, t := range p.Tags {
		tags = append(tags, s.norm.Canonicalize(t))
	}
	safes := canonicalAll(s.norm, p.Safes)
	allergens := canonicalAll(s.norm, p.Allergens)
	c := constraint(p, safes, allergens)

	pipe := BuildPipeline(p, tags, c, s.norm.Canonicalize(p.Search))

	cursor, err := s.col.Aggregate(ctx, pipe)
	if err != nil {
		return 0, nil, apperr.Store(err)
	}
	defer cursor.Close(ctx)

	var pages []searchPage
	if err := cursor.All(ctx, &pages); err != nil {
		return 0, nil, apperr.Store(err)
	}
	if len(pages) == 0 {
		return 0, []models.Recipe{}, nil
	}

	page := pages[0]
	var total int64
	if len(page.Total) > 0 {
		total = page.Total[0].Count
	}
	if page.Results == nil {
		page.Results = []models.Recipe{}
	}
	return total, page.Results, nil
}

// GetByID fetches one recipe regardless of approval; callers decide whether
// an unapproved document may be shown.
func (s *Service) GetByID(ctx context.Context, id string) (*models.Recipe, error) {
	var recipe models.Recipe
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&recipe)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFound("recipe %q", id)
	}
	if err != nil {
		return nil, apperr.Store(err)
	}
	return &recipe, nil
}

// Index creates or fully replaces a recipe. All canonical fields are
// recomputed here, the steps HTML is sanitized, a slug is assigned when the
// payload carries no id, and createdAt is stamped the first time a recipe
// becomes approved. Non-admins may only create new unapproved recipes.
func (s *Service) Index(ctx context.Context, p *models.RecipePayload, admin bool) (string, error) {
	hasID := p.ID != nil && textnorm.StripTags(*p.ID) != ""
	if !admin && (*p.Approved || hasID) {
		return "", apperr.ErrUnauthorized
	}

	steps, err := s.sanitizer.Sanitize(*p.Steps)
	if err != nil {
		return "", err
	}

	recipe := models.Recipe{
		Name:     textnorm.StripTags(*p.Name),
		Steps:    steps,
		Approved: *p.Approved,
	}
	if recipe.Name == "" {
		return "", apperr.Validation("recipe name is empty after markup stripping")
	}

	// Tags are stored canonical; case and plural duplicates collapse.
	seen := map[string]bool{}
	recipe.Tags = []models.Tag{}
	for _, t := range *p.Tags {
		name := s.norm.Canonicalize(*t.Name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		recipe.Tags = append(recipe.Tags, models.Tag{Name: name})
	}

	for _, ing := range p.Ingredients {
		out := models.Ingredient{Options: make([]models.Option, 0, len(ing.Options))}
		for _, opt := range ing.Options {
			o := models.Option{
				Name:            textnorm.StripTags(*opt.Name),
				Quantity:        textnorm.StripTags(*opt.Quantity),
				NameSuggestable: s.norm.Canonicalize(*opt.Name),
				Allergens:       make([]models.Allergen, 0, len(opt.Allergens)),
			}
			for _, a := range opt.Allergens {
				o.Allergens = append(o.Allergens, models.Allergen{
					Name:            textnorm.StripTags(*a.Name),
					NameSuggestable: s.norm.Canonicalize(*a.Name),
				})
			}
			out.Options = append(out.Options, o)
		}
		recipe.Ingredients = append(recipe.Ingredients, out)
	}

	if p.Credit != nil {
		credit := &models.Credit{Name: textnorm.StripTags(*p.Credit.Name)}
		if p.Credit.Link != nil {
			credit.Link = NormalizeCreditLink(textnorm.StripTags(*p.Credit.Link))
		}
		recipe.Credit = credit
	}

	if hasID {
		recipe.ID = textnorm.StripTags(*p.ID)
	} else {
		recipe.ID, err = s.generateSlug(ctx, recipe.Name)
		if err != nil {
			return "", err
		}
	}

	if err := s.stampCreatedAt(ctx, &recipe); err != nil {
		return "", err
	}

	opts := options.Replace().SetUpsert(true)
	if _, err := s.col.ReplaceOne(ctx, bson.M{"_id": recipe.ID}, recipe, opts); err != nil {
		return "", apperr.Store(err)
	}

	s.events.Emit(ctx, mq.ActionIndex, recipe.ID)
	return recipe.ID, nil
}

// stampCreatedAt sets createdAt when an approved write lands on a document
// that was not approved before (or did not exist); otherwise the existing
// timestamp is carried over, so re-approving edits keeps the original date.
func (s *Service) stampCreatedAt(ctx context.Context, recipe *models.Recipe) error {
	var existing models.Recipe
	err := s.col.FindOne(ctx, bson.M{"_id": recipe.ID}).Decode(&existing)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		if recipe.Approved {
			recipe.CreatedAt = time.Now().Unix()
		}
	case err != nil:
		return apperr.Store(err)
	default:
		recipe.CreatedAt = existing.CreatedAt
		if recipe.Approved && !existing.Approved {
			recipe.CreatedAt = time.Now().Unix()
		}
	}
	return nil
}

// Delete removes a recipe permanently. Admin only.
func (s *Service) Delete(ctx context.Context, id string, admin bool) error {
	if !admin {
		return apperr.ErrUnauthorized
	}
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return apperr.Store(err)
	}
	if res.DeletedCount == 0 {
		return apperr.NotFound("recipe %q", id)
	}
	s.events.Emit(ctx, mq.ActionDelete, id)
	return nil
}

// generateSlug walks name-slug, name-slug-2, ... until an unused id turns
// up. Check-then-set; two simultaneous submissions of the same name can
// race, which is accepted (single store, no locking exposed).
func (s *Service) generateSlug(ctx context.Context, name string) (string, error) {
	base := Slugify(name)
	if base == "" {
		return "", apperr.Validation("recipe name produces an empty slug")
	}
	for n := 1; ; n++ {
		candidate := slugCandidate(base, n)
		count, err := s.col.CountDocuments(ctx, bson.M{"_id": candidate})
		if err != nil {
			return "", apperr.Store(err)
		}
		if count == 0 {
			return candidate, nil
		}
	}
}

func canonicalAll(norm *textnorm.Normalizer, items []string) []string {
	if items == nil {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, norm.Canonicalize(it))
	}
	return out
}
