package postgres

import (
	"fmt"
	"strings"

	"foodgram/internal/repository"
)

// RecipeQueryBuilder builds the WHERE clause shared by the recipe COUNT and SELECT queries.
// Conditions reference the recipes table through the alias "r".
type RecipeQueryBuilder struct{}

func NewRecipeQueryBuilder() *RecipeQueryBuilder {
	return &RecipeQueryBuilder{}
}

// BuildWhereClause returns "WHERE ..." and its arguments, numbered from $startIndex.
// An empty filter yields an empty clause.
func (qb *RecipeQueryBuilder) BuildWhereClause(filter repository.RecipeFilter, startIndex int) (clause string, args []interface{}) {
	var conditions []string
	paramIndex := startIndex

	if filter.AuthorID != nil {
		conditions = append(conditions, fmt.Sprintf("r.author_id = $%d", paramIndex))
		args = append(args, *filter.AuthorID)
		paramIndex++
	}

	// タグは OR 条件 (いずれかのタグを持つレシピ)
	if slugs := uniqueStrings(filter.TagSlugs); len(slugs) > 0 {
		conditions = append(conditions, `EXISTS (
    SELECT 1 FROM recipe_tags rt JOIN tags t ON t.id = rt.tag_id
    WHERE rt.recipe_id = r.id AND t.slug IN (`+inPlaceholders(paramIndex, len(slugs))+`))`)
		for _, s := range slugs {
			args = append(args, s)
		}
		paramIndex += len(slugs)
	}

	if filter.FavoritedBy != nil {
		conditions = append(conditions, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM favorites f WHERE f.recipe_id = r.id AND f.user_id = $%d)", paramIndex))
		args = append(args, *filter.FavoritedBy)
		paramIndex++
	}

	if filter.InCartOf != nil {
		conditions = append(conditions, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM shopping_cart sc WHERE sc.recipe_id = r.id AND sc.user_id = $%d)", paramIndex))
		args = append(args, *filter.InCartOf)
	}

	if len(conditions) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(conditions, " AND "), args
}

func uniqueStrings(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
