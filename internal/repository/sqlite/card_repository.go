package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/vocadeck/server/internal/logger"
	"github.com/vocadeck/server/internal/models"
	"github.com/vocadeck/server/internal/repository"
)

type cardRepository struct {
	db *sql.DB
}

// NewCardRepository creates a new CardRepository implementation
func NewCardRepository(db *sql.DB) repository.CardRepository {
	return &cardRepository{db: db}
}

func (r *cardRepository) Get(ctx context.Context, id int64) (*models.Card, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")

	query, args, err := sqlBuilder.Select(cardColumns...).From("cards").
		Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, err
	}

	c, err := scanCard(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("card not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get card: %v", err)
		return nil, err
	}
	return &c, nil
}

func (r *cardRepository) List(ctx context.Context, filter models.CardFilter, order repository.CardOrder, skip, take int) ([]models.Card, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("listing cards: group_id=%d, search=%q, skip=%d, take=%d",
		filter.GroupID, filter.Search, skip, take)

	query := cardFilterWhere(sqlBuilder.Select(cardColumns...).From("cards"), filter)

	switch order {
	case repository.OrderShuffled:
		// Fresh uniform random key per request, no cross-request consistency.
		query = query.OrderBy("RANDOM()")
	default:
		query = query.OrderBy(effectiveOrderExpr+" ASC", "spanish ASC")
	}

	if skip > 0 {
		query = query.Offset(uint64(skip))
	}
	query = query.Limit(uint64(take))

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to list cards: %v", err)
		return nil, err
	}
	defer rows.Close()

	var cards []models.Card
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			log.Error("failed to scan card row: %v", err)
			return nil, err
		}
		cards = append(cards, c)
	}
	log.Debug("found %d cards", len(cards))
	return cards, rows.Err()
}

func (r *cardRepository) Count(ctx context.Context, filter models.CardFilter) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")

	query := cardFilterWhere(sqlBuilder.Select("COUNT(*)").From("cards"), filter)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return 0, err
	}

	var count int
	if err := r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&count); err != nil {
		log.Error("failed to count cards: %v", err)
		return 0, err
	}
	return count, nil
}

func (r *cardRepository) Sample(ctx context.Context, filter models.CardFilter, size int) ([]models.Card, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("sampling cards: group_id=%d, size=%d", filter.GroupID, size)

	query := cardFilterWhere(sqlBuilder.Select(cardColumns...).From("cards"), filter).
		OrderBy("RANDOM()").
		Limit(uint64(size))

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to sample cards: %v", err)
		return nil, err
	}
	defer rows.Close()

	var cards []models.Card
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			log.Error("failed to scan card row: %v", err)
			return nil, err
		}
		cards = append(cards, c)
	}
	log.Debug("sampled %d cards", len(cards))
	return cards, rows.Err()
}

func (r *cardRepository) Insert(ctx context.Context, c models.Card) (*models.Card, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("inserting card: english=%q, group_id=%d", c.English, c.GroupID)

	tags, err := encodeTags(c.Tags)
	if err != nil {
		return nil, err
	}

	res, err := r.db.ExecContext(ctx, `
INSERT INTO cards (english, spanish, image_url, group_id, sort_order, enabled, tags)
VALUES (?, ?, ?, ?, ?, ?, ?)
`, c.English, c.Spanish, c.ImageURL, c.GroupID, c.Order, c.Enabled, tags)
	if err != nil {
		log.Error("failed to insert card: %v", err)
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get card id: %v", err)
		return nil, err
	}
	log.Debug("card inserted: id=%d", id)
	return r.Get(ctx, id)
}

func (r *cardRepository) Update(ctx context.Context, id int64, upd models.CardUpdate) (*models.Card, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("updating card: id=%d", id)

	query := sqlBuilder.Update("cards").
		Set("updated_at", squirrel.Expr("CURRENT_TIMESTAMP")).
		Where(squirrel.Eq{"id": id})

	changed := false
	if upd.English != nil {
		query = query.Set("english", *upd.English)
		changed = true
	}
	if upd.Spanish != nil {
		query = query.Set("spanish", *upd.Spanish)
		changed = true
	}
	if upd.ImageURL != nil {
		// Empty string clears the illustration.
		if *upd.ImageURL == "" {
			query = query.Set("image_url", nil)
		} else {
			query = query.Set("image_url", *upd.ImageURL)
		}
		changed = true
	}
	if upd.GroupID != nil {
		query = query.Set("group_id", *upd.GroupID)
		changed = true
	}
	if upd.Order != nil {
		query = query.Set("sort_order", *upd.Order)
		changed = true
	}
	if upd.Enabled != nil {
		query = query.Set("enabled", *upd.Enabled)
		changed = true
	}
	if upd.Tags != nil {
		tags, err := encodeTags(*upd.Tags)
		if err != nil {
			return nil, err
		}
		query = query.Set("tags", tags)
		changed = true
	}

	if !changed {
		return r.Get(ctx, id)
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}
	if _, err := r.db.ExecContext(ctx, sqlStr, args...); err != nil {
		log.Error("failed to update card: %v", err)
		return nil, err
	}
	return r.Get(ctx, id)
}

func (r *cardRepository) SetEnabled(ctx context.Context, id int64, enabled bool) (*models.Card, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("setting card enabled: id=%d, enabled=%v", id, enabled)

	_, err := r.db.ExecContext(ctx, `
UPDATE cards SET enabled = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?
`, enabled, id)
	if err != nil {
		log.Error("failed to set card enabled: %v", err)
		return nil, err
	}
	return r.Get(ctx, id)
}

func (r *cardRepository) CountByGroup(ctx context.Context) (map[int64]int, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")

	rows, err := r.db.QueryContext(ctx, `
SELECT group_id, COUNT(*) FROM cards GROUP BY group_id
`)
	if err != nil {
		log.Error("failed to count cards by group: %v", err)
		return nil, err
	}
	defer rows.Close()

	counts := make(map[int64]int)
	for rows.Next() {
		var groupID int64
		var count int
		if err := rows.Scan(&groupID, &count); err != nil {
			log.Error("failed to scan count row: %v", err)
			return nil, err
		}
		counts[groupID] = count
	}
	log.Debug("counted cards for %d groups", len(counts))
	return counts, rows.Err()
}
