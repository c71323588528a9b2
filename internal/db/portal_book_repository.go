package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/portalgate/internal/model"
)

// BookedPortalRow — строка character_portals.
type BookedPortalRow struct {
	Portal    model.BookedPortal
	IsPrivate bool
}

// PortalBookRepository stores characters' booked portals.
type PortalBookRepository struct {
	db *pgxpool.Pool
}

// NewPortalBookRepository создаёт новый PortalBookRepository.
func NewPortalBookRepository(db *pgxpool.Pool) *PortalBookRepository {
	return &PortalBookRepository{db: db}
}

// LoadByCharacterID загружает обе книги персонажа (private first, then by id).
func (r *PortalBookRepository) LoadByCharacterID(ctx context.Context, charID int64) ([]BookedPortalRow, error) {
	query := `
		SELECT portal_id, is_private, name, zone_id, sub_zone_id, x, y, z, zrot
		FROM character_portals
		WHERE character_id = $1
		ORDER BY is_private DESC, portal_id
	`

	rows, err := r.db.Query(ctx, query, charID)
	if err != nil {
		return nil, fmt.Errorf("querying portals for character %d: %w", charID, err)
	}
	defer rows.Close()

	out := make([]BookedPortalRow, 0, 16)
	for rows.Next() {
		var (
			row                      BookedPortalRow
			portalID, zoneID, subZID int64
		)
		if err := rows.Scan(&portalID, &row.IsPrivate, &row.Portal.Name, &zoneID, &subZID,
			&row.Portal.X, &row.Portal.Y, &row.Portal.Z, &row.Portal.ZRot); err != nil {
			return nil, fmt.Errorf("scanning portal row: %w", err)
		}
		row.Portal.ID = uint32(portalID)
		row.Portal.ZoneID = uint32(zoneID)
		row.Portal.SubZoneID = uint32(subZID)
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating portal rows: %w", err)
	}

	return out, nil
}

// LoadInto fills book from the database. Returns number of entries loaded.
func (r *PortalBookRepository) LoadInto(ctx context.Context, charID int64, book *model.PortalBook) (int, error) {
	rows, err := r.LoadByCharacterID(ctx, charID)
	if err != nil {
		return 0, err
	}
	for _, row := range rows {
		book.Add(row.Portal, row.IsPrivate)
	}
	return len(rows), nil
}

// Add inserts or replaces a booked portal.
func (r *PortalBookRepository) Add(ctx context.Context, charID int64, p model.BookedPortal, isPrivate bool) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO character_portals
			(character_id, portal_id, is_private, name, zone_id, sub_zone_id, x, y, z, zrot)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (character_id, is_private, portal_id) DO UPDATE SET
			name = EXCLUDED.name,
			zone_id = EXCLUDED.zone_id,
			sub_zone_id = EXCLUDED.sub_zone_id,
			x = EXCLUDED.x, y = EXCLUDED.y, z = EXCLUDED.z,
			zrot = EXCLUDED.zrot`,
		charID, int64(p.ID), isPrivate, p.Name, int64(p.ZoneID), int64(p.SubZoneID),
		p.X, p.Y, p.Z, p.ZRot,
	)
	if err != nil {
		return fmt.Errorf("saving portal %d for character %d: %w", p.ID, charID, err)
	}
	return nil
}

// Delete removes a booked portal. Returns false if there was nothing to delete.
func (r *PortalBookRepository) Delete(ctx context.Context, charID int64, portalID uint32, isPrivate bool) (bool, error) {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM character_portals WHERE character_id = $1 AND is_private = $2 AND portal_id = $3`,
		charID, isPrivate, int64(portalID),
	)
	if err != nil {
		return false, fmt.Errorf("deleting portal %d for character %d: %w", portalID, charID, err)
	}
	return tag.RowsAffected() > 0, nil
}
