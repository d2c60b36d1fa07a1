package recipes

import (
	"regexp"
	"strconv"

	"safeplate/apperr"
	"safeplate/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// DefaultPageSize matches the number of results shown per page.
const DefaultPageSize = 10

const maxPageSize = 100

// SearchParams is the request shape for recipe search. Safes and Allergens
// are mutually exclusive; terms arrive raw and are canonicalized by the
// service before the pipeline is built.
type SearchParams struct {
	ID          string
	Search      string
	Tags        []string
	Safes       []string
	Allergens   []string
	Flexibility int
	Prefix      bool
	Unapproved  bool
	All         bool
	From        int
	Size        int
	Seed        *int64
}

// Validate rejects malformed parameters before any store call.
func (p *SearchParams) Validate() error {
	if p.Flexibility < 0 {
		return apperr.Validation("flexibility must be non-negative")
	}
	if p.From < 0 {
		return apperr.Validation("from must be non-negative")
	}
	if p.Size < 0 || p.Size > maxPageSize {
		return apperr.Validation("page size out of range")
	}
	if len(p.Safes) > 0 && len(p.Allergens) > 0 {
		return apperr.Validation("safes and allergens are mutually exclusive")
	}
	for _, t := range p.Tags {
		if t == "" {
			return apperr.Validation("empty tag")
		}
	}
	for _, s := range p.Safes {
		if s == "" {
			return apperr.Validation("empty safe item")
		}
	}
	for _, a := range p.Allergens {
		if a == "" {
			return apperr.Validation("empty allergen item")
		}
	}
	return nil
}

// constraint builds the matcher-level constraint from the canonicalized
// item set, or nil when neither list was supplied.
func constraint(p SearchParams, safes, allergens []string) *models.Constraint {
	switch {
	case p.Safes != nil:
		return &models.Constraint{Mode: models.ModeSafes, Items: safes, Flexibility: p.Flexibility}
	case p.Allergens != nil:
		return &models.Constraint{Mode: models.ModeAllergens, Items: allergens, Flexibility: p.Flexibility}
	default:
		return nil
	}
}

// BuildPipeline translates search parameters into one aggregation pipeline:
// filter, server-side badness scoring, deterministic ordering, and a $facet
// carrying both the page and the total count. tags and the constraint items
// must already be canonical.
func BuildPipeline(p SearchParams, tags []string, c *models.Constraint, canonicalSearch string) mongo.Pipeline {
	match := bson.M{}
	if p.ID != "" {
		match["_id"] = p.ID
	}
	// Approval is an XOR, not an OR: admins asking for unapproved recipes
	// see only unapproved ones.
	if !p.All {
		match["approved"] = !p.Unapproved
	}
	if len(tags) > 0 {
		match["tags.name"] = bson.M{"$in": tags}
	}
	if p.Search != "" {
		if p.Prefix {
			match["name"] = bson.M{"$regex": "^" + regexp.QuoteMeta(p.Search), "$options": "i"}
		} else {
			match["$or"] = []bson.M{
				{"name": bson.M{"$regex": regexp.QuoteMeta(p.Search), "$options": "i"}},
				{"tags.name": canonicalSearch},
			}
		}
	}

	pipe := mongo.Pipeline{bson.D{{Key: "$match", Value: match}}}

	if c != nil {
		pipe = append(pipe,
			bson.D{{Key: "$addFields", Value: bson.M{"badness": BadnessExpr(c)}}},
			bson.D{{Key: "$match", Value: bson.M{"badness": bson.M{"$lte": c.Flexibility}}}},
		)
	}

	if p.Search == "" && len(tags) == 0 {
		pipe = append(pipe, rankStages(p.Seed)...)
	} else {
		pipe = append(pipe,
			bson.D{{Key: "$addFields", Value: bson.M{"_score": scoreExpr(p.Search, canonicalSearch, tags)}}},
			bson.D{{Key: "$sort", Value: bson.D{{Key: "_score", Value: -1}, {Key: "_id", Value: 1}}}},
		)
	}

	size := p.Size
	if size == 0 {
		size = DefaultPageSize
	}
	pipe = append(pipe, bson.D{{Key: "$facet", Value: bson.M{
		"results": []bson.M{
			{"$skip": p.From},
			{"$limit": size},
			{"$project": bson.M{"badness": 0, "_rank": 0, "_score": 0}},
		},
		"total": []bson.M{{"$count": "count"}},
	}}})

	return pipe
}

// BadnessExpr counts ingredients with no fully satisfying option, entirely
// inside the store. It mirrors matcher.Match: an option passes a Safes
// constraint when its allergen set is a subset of the safe items, and an
// Allergens constraint when the intersection is empty. This is an exact
// integer count, not a relevance score.
func BadnessExpr(c *models.Constraint) bson.M {
	items := c.Items
	if items == nil {
		items = []string{}
	}
	allergenNames := bson.M{"$ifNull": bson.A{"$$opt.allergens.name_suggestable", bson.A{}}}

	var optionOK bson.M
	if c.Mode == models.ModeSafes {
		optionOK = bson.M{"$setIsSubset": bson.A{allergenNames, items}}
	} else {
		optionOK = bson.M{"$eq": bson.A{
			bson.M{"$size": bson.M{"$setIntersection": bson.A{allergenNames, items}}},
			0,
		}}
	}

	return bson.M{"$size": bson.M{"$filter": bson.M{
		"input": "$ingredients",
		"as":    "ing",
		"cond": bson.M{"$not": bson.A{
			bson.M{"$anyElementTrue": bson.A{
				bson.M{"$map": bson.M{
					"input": "$$ing.options",
					"as":    "opt",
					"in":    optionOK,
				}},
			}},
		}},
	}}}
}

// rankStages orders a browse query (no text, no tags) pseudo-randomly but
// deterministically: the rank key is a hash of the id and the seed, so the
// same seed plus increasing offsets walk one stable total order.
func rankStages(seed *int64) []bson.D {
	var s int64
	if seed != nil {
		s = *seed
	}
	return []bson.D{
		{{Key: "$addFields", Value: bson.M{"_rank": bson.M{
			"$toHashedIndexKey": bson.M{"$concat": bson.A{"$_id", ":", strconv.FormatInt(s, 10)}},
		}}}},
		{{Key: "$sort", Value: bson.D{{Key: "_rank", Value: 1}, {Key: "_id", Value: 1}}}},
	}
}

// scoreExpr ranks relevance searches: name prefix hit outranks an in-name
// hit, which outranks tag-only matches. Ties break on id for determinism.
func scoreExpr(search, canonicalSearch string, tags []string) bson.M {
	terms := bson.A{}
	if search != "" {
		quoted := regexp.QuoteMeta(search)
		terms = append(terms,
			bson.M{"$cond": bson.A{
				bson.M{"$regexMatch": bson.M{"input": "$name", "regex": "^" + quoted, "options": "i"}},
				4, 0,
			}},
			bson.M{"$cond": bson.A{
				bson.M{"$regexMatch": bson.M{"input": "$name", "regex": quoted, "options": "i"}},
				2, 0,
			}},
			bson.M{"$cond": bson.A{
				bson.M{"$in": bson.A{canonicalSearch, bson.M{"$ifNull": bson.A{"$tags.name", bson.A{}}}}},
				1, 0,
			}},
		)
	}
	if len(tags) > 0 {
		terms = append(terms, bson.M{"$size": bson.M{"$setIntersection": bson.A{
			bson.M{"$ifNull": bson.A{"$tags.name", bson.A{}}},
			tags,
		}}})
	}
	return bson.M{"$add": terms}
}
