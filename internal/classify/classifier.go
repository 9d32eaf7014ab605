// Package classify assigns invoices to operating-cost categories.
package classify

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"umlage/internal/domain"
	"umlage/internal/port"
)

type classifier struct {
	oracle     port.Oracle
	categories []domain.CostCategory
	names      []string
	log        zerolog.Logger
}

// NewClassifier returns a CostClassifier over the known categories in their
// declared order.
func NewClassifier(oracle port.Oracle, log zerolog.Logger) port.CostClassifier {
	categories := domain.KnownCategories()
	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = string(c)
	}
	return &classifier{
		oracle:     oracle,
		categories: categories,
		names:      names,
		log:        log,
	}
}

func (c *classifier) Classify(ctx context.Context, text string) (domain.CostCategory, error) {
	reply, err := c.oracle.ClassifyCategory(ctx, text, c.names)
	if err != nil {
		return domain.CategoryOther, err
	}
	category := MatchCategory(reply, c.categories)
	c.log.Debug().Str("category", string(category)).Str("reply", reply).Msg("cost category classified")
	return category, nil
}

// MatchCategory returns the first category, in the given order, whose name
// occurs case-insensitively in reply. It returns CategoryOther if none does.
func MatchCategory(reply string, categories []domain.CostCategory) domain.CostCategory {
	lower := strings.ToLower(reply)
	for _, c := range categories {
		if strings.Contains(lower, strings.ToLower(string(c))) {
			return c
		}
	}
	return domain.CategoryOther
}
