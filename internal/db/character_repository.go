package db

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/portalgate/internal/model"
)

// ErrCharacterNotFound is returned by LoadPlayer for an unknown character ID.
var ErrCharacterNotFound = errors.New("character not found")

// ObjectIDs allocates runtime object IDs for loaded characters and items.
type ObjectIDs interface {
	NextPlayerID() uint32
	NextItemID() uint32
}

// CharacterRepository loads and saves the parts of a character the portal
// server works with: position and inventory stacks.
type CharacterRepository struct {
	db  *pgxpool.Pool
	ids ObjectIDs
}

// NewCharacterRepository создаёт новый CharacterRepository.
func NewCharacterRepository(db *pgxpool.Pool, ids ObjectIDs) *CharacterRepository {
	return &CharacterRepository{db: db, ids: ids}
}

// LoadPlayer загружает персонажа с инвентарём под новым objectID.
func (r *CharacterRepository) LoadPlayer(ctx context.Context, charID int64) (*model.Player, error) {
	var (
		name      string
		factionID int64
		zoneID    int64
		x, y, z   float32
		rotation  int16
	)
	err := r.db.QueryRow(ctx, `
		SELECT name, faction_id, zone_id, x, y, z, rotation
		FROM characters
		WHERE character_id = $1`, charID,
	).Scan(&name, &factionID, &zoneID, &x, &y, &z, &rotation)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("loading character %d: %w", charID, ErrCharacterNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying character %d: %w", charID, err)
	}

	loc := model.NewLocation(x, y, z, uint32(zoneID)).WithRotation(int8(rotation))
	player := model.NewPlayer(r.ids.NextPlayerID(), charID, name, loc, uint32(factionID))

	rows, err := r.db.Query(ctx, `
		SELECT item_id, count
		FROM character_items
		WHERE character_id = $1
		ORDER BY item_id`, charID)
	if err != nil {
		return nil, fmt.Errorf("querying inventory of character %d: %w", charID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			itemID int64
			count  int32
		)
		if err := rows.Scan(&itemID, &count); err != nil {
			return nil, fmt.Errorf("scanning item row: %w", err)
		}
		item, err := model.NewItem(r.ids.NextItemID(), uint32(itemID), charID, count)
		if err != nil {
			return nil, fmt.Errorf("creating item model: %w", err)
		}
		if err := player.Inventory().AddItem(item); err != nil {
			return nil, fmt.Errorf("adding item %d: %w", itemID, err)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating item rows: %w", err)
	}

	return player, nil
}

// Create inserts a new character row with its current inventory.
func (r *CharacterRepository) Create(ctx context.Context, p *model.Player) error {
	loc := p.Location()
	_, err := r.db.Exec(ctx, `
		INSERT INTO characters (character_id, name, faction_id, zone_id, x, y, z, rotation)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		p.CharacterID(), p.Name(), int64(p.FactionID()), int64(loc.ZoneID),
		loc.X, loc.Y, loc.Z, int16(loc.RotationZ),
	)
	if err != nil {
		return fmt.Errorf("creating character %d: %w", p.CharacterID(), err)
	}
	return r.saveItems(ctx, r.db, p)
}

// Save writes position and inventory in one transaction. Stacks of the same
// item are stored as one row.
func (r *CharacterRepository) Save(ctx context.Context, p *model.Player) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	loc := p.Location()
	tag, err := tx.Exec(ctx, `
		UPDATE characters
		SET zone_id = $2, x = $3, y = $4, z = $5, rotation = $6
		WHERE character_id = $1`,
		p.CharacterID(), int64(loc.ZoneID), loc.X, loc.Y, loc.Z, int16(loc.RotationZ),
	)
	if err != nil {
		return fmt.Errorf("updating character %d: %w", p.CharacterID(), err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("saving character %d: %w", p.CharacterID(), ErrCharacterNotFound)
	}

	if err := r.saveItems(ctx, tx, p); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing character %d: %w", p.CharacterID(), err)
	}
	return nil
}

type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func (r *CharacterRepository) saveItems(ctx context.Context, q execer, p *model.Player) error {
	if _, err := q.Exec(ctx, `DELETE FROM character_items WHERE character_id = $1`, p.CharacterID()); err != nil {
		return fmt.Errorf("clearing inventory of character %d: %w", p.CharacterID(), err)
	}

	totals := make(map[uint32]int64)
	for _, item := range p.Inventory().GetItems() {
		totals[item.ItemID()] += int64(item.Count())
	}
	itemIDs := make([]uint32, 0, len(totals))
	for id := range totals {
		itemIDs = append(itemIDs, id)
	}
	slices.Sort(itemIDs)

	for _, id := range itemIDs {
		if totals[id] <= 0 {
			continue
		}
		if _, err := q.Exec(ctx, `
			INSERT INTO character_items (character_id, item_id, count)
			VALUES ($1, $2, $3)`,
			p.CharacterID(), int64(id), totals[id],
		); err != nil {
			return fmt.Errorf("saving item %d of character %d: %w", id, p.CharacterID(), err)
		}
	}
	return nil
}
