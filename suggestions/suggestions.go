// Package suggestions answers prefix queries over approved recipes: which
// tags, ingredient options, or allergens should autocomplete offer. Terms
// are deduplicated by canonical form and ranked by best match quality seen
// anywhere in the corpus.
package suggestions

import (
	"context"
	"errors"
	"regexp"
	"sort"
	"strings"

	"safeplate/apperr"
	"safeplate/db"
	"safeplate/models"
	"safeplate/rdx"
	"safeplate/textnorm"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// MaxSuggestions caps every suggestion list.
const MaxSuggestions = 7

type Service struct {
	col   *mongo.Collection
	norm  *textnorm.Normalizer
	cache *rdx.Cache
}

func New(store *db.Store, norm *textnorm.Normalizer, cache *rdx.Cache) *Service {
	return &Service{col: store.RecipeCollection, norm: norm, cache: cache}
}

// bucket is one canonical term with its number of occurrences across the
// approved corpus.
type bucket struct {
	Name  string `bson:"_id"`
	Count int    `bson:"count"`
}

// SuggestTags returns canonical tag names matching the prefix.
func (s *Service) SuggestTags(ctx context.Context, prefix string) ([]string, error) {
	return s.suggest(ctx, "tag", prefix, func(canon string) mongo.Pipeline {
		return mongo.Pipeline{
			bson.D{{Key: "$match", Value: bson.M{"approved": true}}},
			bson.D{{Key: "$unwind", Value: "$tags"}},
			bson.D{{Key: "$match", Value: bson.M{"tags.name": containsRegex(canon)}}},
			bson.D{{Key: "$group", Value: bson.M{"_id": "$tags.name", "count": bson.M{"$sum": 1}}}},
		}
	})
}

// SuggestOptions returns canonical option names matching the prefix.
// Bucketing happens below the recipe level: every occurrence of an option
// counts, not every recipe.
func (s *Service) SuggestOptions(ctx context.Context, prefix string) ([]string, error) {
	return s.suggest(ctx, "option", prefix, func(canon string) mongo.Pipeline {
		return mongo.Pipeline{
			bson.D{{Key: "$match", Value: bson.M{"approved": true}}},
			bson.D{{Key: "$unwind", Value: "$ingredients"}},
			bson.D{{Key: "$unwind", Value: "$ingredients.options"}},
			bson.D{{Key: "$match", Value: bson.M{
				"ingredients.options.name_suggestable": containsRegex(canon),
			}}},
			bson.D{{Key: "$group", Value: bson.M{
				"_id":   "$ingredients.options.name_suggestable",
				"count": bson.M{"$sum": 1},
			}}},
		}
	})
}

// SuggestAllergens returns canonical allergen names matching the prefix.
func (s *Service) SuggestAllergens(ctx context.Context, prefix string) ([]string, error) {
	return s.suggest(ctx, "allergen", prefix, func(canon string) mongo.Pipeline {
		return mongo.Pipeline{
			bson.D{{Key: "$match", Value: bson.M{"approved": true}}},
			bson.D{{Key: "$unwind", Value: "$ingredients"}},
			bson.D{{Key: "$unwind", Value: "$ingredients.options"}},
			bson.D{{Key: "$unwind", Value: "$ingredients.options.allergens"}},
			bson.D{{Key: "$match", Value: bson.M{
				"ingredients.options.allergens.name_suggestable": containsRegex(canon),
			}}},
			bson.D{{Key: "$group", Value: bson.M{
				"_id":   "$ingredients.options.allergens.name_suggestable",
				"count": bson.M{"$sum": 1},
			}}},
		}
	})
}

func (s *Service) suggest(ctx context.Context, field, prefix string, build func(string) mongo.Pipeline) ([]string, error) {
	if strings.TrimSpace(prefix) == "" {
		return nil, apperr.Validation("search prefix is required")
	}
	canon := s.norm.Canonicalize(prefix)

	cacheKey := "suggest:" + field + ":" + canon
	var cached []string
	if s.cache.GetJSON(ctx, cacheKey, &cached) {
		return cached, nil
	}

	cursor, err := s.col.Aggregate(ctx, build(canon))
	if err != nil {
		return nil, apperr.Store(err)
	}
	defer cursor.Close(ctx)

	var buckets []bucket
	if err := cursor.All(ctx, &buckets); err != nil {
		return nil, apperr.Store(err)
	}

	ranked := Rank(canon, buckets)
	s.cache.SetJSON(ctx, cacheKey, ranked)
	return ranked, nil
}

// AllergensForOption returns the allergens of the first approved option
// whose raw name matches. Absence is an empty list, not an error — this
// prefills the submission form and nothing hangs on a miss.
func (s *Service) AllergensForOption(ctx context.Context, option string) ([]string, error) {
	if strings.TrimSpace(option) == "" {
		return nil, apperr.Validation("option name is required")
	}

	exact := primitive.Regex{Pattern: "^" + regexp.QuoteMeta(option) + "$", Options: "i"}
	var recipe models.Recipe
	err := s.col.FindOne(ctx, bson.M{
		"approved":                 true,
		"ingredients.options.name": exact,
	}).Decode(&recipe)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return []string{}, nil
	}
	if err != nil {
		return nil, apperr.Store(err)
	}

	for _, ing := range recipe.Ingredients {
		for _, opt := range ing.Options {
			if strings.EqualFold(opt.Name, option) {
				names := make([]string, 0, len(opt.Allergens))
				for _, a := range opt.Allergens {
					names = append(names, a.Name)
				}
				return names, nil
			}
		}
	}
	return []string{}, nil
}

// Rank orders buckets by match quality (exact > prefix > in-word), then by
// occurrence count, then lexically, and truncates to MaxSuggestions. The
// order is fully deterministic for a fixed corpus.
func Rank(canon string, buckets []bucket) []string {
	type scored struct {
		name    string
		quality int
		count   int
	}
	all := make([]scored, 0, len(buckets))
	for _, b := range buckets {
		q := matchQuality(canon, b.Name)
		if q == 0 {
			continue
		}
		all = append(all, scored{name: b.Name, quality: q, count: b.Count})
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].quality != all[j].quality {
			return all[i].quality > all[j].quality
		}
		if all[i].count != all[j].count {
			return all[i].count > all[j].count
		}
		return all[i].name < all[j].name
	})
	out := make([]string, 0, MaxSuggestions)
	for _, s := range all {
		if len(out) == MaxSuggestions {
			break
		}
		out = append(out, s.name)
	}
	return out
}

func matchQuality(canon, name string) int {
	switch {
	case name == canon:
		return 3
	case strings.HasPrefix(name, canon):
		return 2
	case strings.Contains(name, canon):
		return 1
	default:
		return 0
	}
}

func containsRegex(term string) bson.M {
	return bson.M{"$regex": regexp.QuoteMeta(term), "$options": "i"}
}
