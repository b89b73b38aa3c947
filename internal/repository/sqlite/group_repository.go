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

type groupRepository struct {
	db *sql.DB
}

// NewGroupRepository creates a new GroupRepository implementation
func NewGroupRepository(db *sql.DB) repository.GroupRepository {
	return &groupRepository{db: db}
}

func (r *groupRepository) Get(ctx context.Context, id int64) (*models.Group, error) {
	log := logger.FromContext(ctx).WithPrefix("group_repo")

	query, args, err := sqlBuilder.Select(groupColumns...).From("groups").
		Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, err
	}

	g, err := scanGroup(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("group not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get group: %v", err)
		return nil, err
	}
	return &g, nil
}

func (r *groupRepository) List(ctx context.Context, enabled *bool) ([]models.Group, error) {
	log := logger.FromContext(ctx).WithPrefix("group_repo")

	query := sqlBuilder.Select(groupColumns...).From("groups").
		OrderBy("sort_order ASC", "name ASC")
	if enabled != nil {
		query = query.Where(squirrel.Eq{"enabled": *enabled})
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to list groups: %v", err)
		return nil, err
	}
	defer rows.Close()

	var groups []models.Group
	for rows.Next() {
		g, err := scanGroup(rows)
		if err != nil {
			log.Error("failed to scan group row: %v", err)
			return nil, err
		}
		groups = append(groups, g)
	}
	log.Debug("found %d groups", len(groups))
	return groups, rows.Err()
}

func (r *groupRepository) FindBySlug(ctx context.Context, slug string) (*models.Group, error) {
	log := logger.FromContext(ctx).WithPrefix("group_repo")

	query, args, err := sqlBuilder.Select(groupColumns...).From("groups").
		Where(squirrel.Eq{"slug": slug}).ToSql()
	if err != nil {
		return nil, err
	}

	g, err := scanGroup(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("group not found: slug=%s", slug)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to find group by slug: %v", err)
		return nil, err
	}
	return &g, nil
}

func (r *groupRepository) Insert(ctx context.Context, g models.Group) (*models.Group, error) {
	log := logger.FromContext(ctx).WithPrefix("group_repo")
	log.Debug("inserting group: name=%q, slug=%s", g.Name, g.Slug)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO groups (name, slug, description, icon_url, sort_order, enabled, fav)
VALUES (?, ?, ?, ?, ?, ?, ?)
`, g.Name, g.Slug, g.Description, g.IconURL, g.Order, g.Enabled, g.Fav)
	if err != nil {
		log.Error("failed to insert group: %v", err)
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get group id: %v", err)
		return nil, err
	}
	log.Debug("group inserted: id=%d", id)
	return r.Get(ctx, id)
}

func (r *groupRepository) Update(ctx context.Context, id int64, upd models.GroupUpdate) (*models.Group, error) {
	log := logger.FromContext(ctx).WithPrefix("group_repo")
	log.Debug("updating group: id=%d", id)

	query := sqlBuilder.Update("groups").
		Set("updated_at", squirrel.Expr("CURRENT_TIMESTAMP")).
		Where(squirrel.Eq{"id": id})

	changed := false
	if upd.Name != nil {
		query = query.Set("name", *upd.Name)
		changed = true
	}
	if upd.Description != nil {
		query = query.Set("description", *upd.Description)
		changed = true
	}
	if upd.Fav != nil {
		query = query.Set("fav", *upd.Fav)
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
		log.Error("failed to update group: %v", err)
		return nil, err
	}
	return r.Get(ctx, id)
}

func (r *groupRepository) SetEnabled(ctx context.Context, id int64, enabled bool) (*models.Group, error) {
	log := logger.FromContext(ctx).WithPrefix("group_repo")
	log.Debug("setting group enabled: id=%d, enabled=%v", id, enabled)

	_, err := r.db.ExecContext(ctx, `
UPDATE groups SET enabled = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?
`, enabled, id)
	if err != nil {
		log.Error("failed to set group enabled: %v", err)
		return nil, err
	}
	return r.Get(ctx, id)
}
