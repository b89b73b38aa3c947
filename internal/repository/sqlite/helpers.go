package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/vocadeck/server/internal/models"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

// effectiveOrderExpr sends unranked cards (sort_order <= 0) after every
// explicitly ranked card. The sentinel is larger than any realistic rank.
const effectiveOrderExpr = "CASE WHEN sort_order > 0 THEN sort_order ELSE 999999999 END"

var cardColumns = []string{
	"id", "english", "spanish", "image_url", "group_id",
	"sort_order", "enabled", "tags", "created_at", "updated_at",
}

var groupColumns = []string{
	"id", "name", "slug", "description", "icon_url",
	"sort_order", "enabled", "fav", "created_at", "updated_at",
}

// cardFilterWhere applies a CardFilter to a select. List, Count and Sample
// share it so their notions of "matching" can never drift apart.
func cardFilterWhere(q squirrel.SelectBuilder, f models.CardFilter) squirrel.SelectBuilder {
	if f.GroupID != 0 {
		q = q.Where(squirrel.Eq{"group_id": f.GroupID})
	}
	if f.Enabled != nil {
		q = q.Where(squirrel.Eq{"enabled": *f.Enabled})
	}
	if terms := searchTerms(f.Search); len(terms) > 0 {
		or := squirrel.Or{}
		for _, t := range terms {
			pattern := "%" + t + "%"
			or = append(or,
				squirrel.Like{"english": pattern},
				squirrel.Like{"spanish": pattern},
				squirrel.Like{"tags": pattern},
			)
		}
		q = q.Where(or)
	}
	return q
}

// searchTerms tokenizes a free-text query. Terms match OR-wise and
// case-insensitively over english, spanish and tags.
func searchTerms(q string) []string {
	return strings.Fields(strings.ToLower(strings.TrimSpace(q)))
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCard(row rowScanner) (models.Card, error) {
	var c models.Card
	var imageURL sql.NullString
	var tags string
	if err := row.Scan(&c.ID, &c.English, &c.Spanish, &imageURL, &c.GroupID,
		&c.Order, &c.Enabled, &tags, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return c, err
	}
	if imageURL.Valid {
		s := imageURL.String
		c.ImageURL = &s
	}
	c.Tags = []string{}
	if tags != "" {
		if err := json.Unmarshal([]byte(tags), &c.Tags); err != nil {
			return c, fmt.Errorf("decode tags for card %d: %w", c.ID, err)
		}
	}
	if c.Tags == nil {
		c.Tags = []string{}
	}
	return c, nil
}

func scanGroup(row rowScanner) (models.Group, error) {
	var g models.Group
	var iconURL sql.NullString
	if err := row.Scan(&g.ID, &g.Name, &g.Slug, &g.Description, &iconURL,
		&g.Order, &g.Enabled, &g.Fav, &g.CreatedAt, &g.UpdatedAt); err != nil {
		return g, err
	}
	if iconURL.Valid {
		s := iconURL.String
		g.IconURL = &s
	}
	return g, nil
}

func encodeTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("encode tags: %w", err)
	}
	return string(b), nil
}
