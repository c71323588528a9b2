package data

import (
	"cmp"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"

	"github.com/samber/oops"
	_ "modernc.org/sqlite"
)

// ErrReagentSource is returned when the reagent database cannot be read.
var ErrReagentSource = errors.New("reagent source unavailable")

// ReagentClass selects the reagent list of a portal.
type ReagentClass uint8

const (
	// ReagentInland — destination on the owner's continent.
	ReagentInland ReagentClass = iota
	// ReagentOutland — destination on another continent.
	ReagentOutland
)

// String returns class name for logs and metric labels.
func (c ReagentClass) String() string {
	switch c {
	case ReagentInland:
		return "inland"
	case ReagentOutland:
		return "outland"
	default:
		return "unknown"
	}
}

// ReagentCost — one alternative price for opening a portal.
type ReagentCost struct {
	ID       uint32
	EffectID uint32 // open_portal_effect_id
	ItemID   uint32
	Amount   int32
	Priority int32
}

// ReagentTable — immutable inland/outland reagent lists.
// Each list is ordered by priority, then ID (lower first).
type ReagentTable struct {
	inland  []ReagentCost
	outland []ReagentCost
}

// NewReagentTable builds a table from raw rows.
func NewReagentTable(inland, outland []ReagentCost) (*ReagentTable, error) {
	in, err := normalizeReagents(ReagentInland, inland)
	if err != nil {
		return nil, err
	}
	out, err := normalizeReagents(ReagentOutland, outland)
	if err != nil {
		return nil, err
	}
	return &ReagentTable{inland: in, outland: out}, nil
}

func normalizeReagents(class ReagentClass, rows []ReagentCost) ([]ReagentCost, error) {
	seen := make(map[uint32]struct{}, len(rows))
	out := make([]ReagentCost, 0, len(rows))
	for _, r := range rows {
		if r.Amount <= 0 {
			return nil, oops.Code("reagent_invalid").
				With("class", class.String()).
				With("id", r.ID).
				With("amount", r.Amount).
				Errorf("reagent amount must be > 0")
		}
		if _, dup := seen[r.ID]; dup {
			return nil, oops.Code("reagent_duplicate").
				With("class", class.String()).
				With("id", r.ID).
				Errorf("duplicate reagent id")
		}
		seen[r.ID] = struct{}{}
		out = append(out, r)
	}
	slices.SortFunc(out, func(a, b ReagentCost) int {
		if c := cmp.Compare(a.Priority, b.Priority); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out, nil
}

// Costs returns a copy of the ordered list for class.
func (t *ReagentTable) Costs(class ReagentClass) []ReagentCost {
	return slices.Clone(t.list(class))
}

func (t *ReagentTable) list(class ReagentClass) []ReagentCost {
	if class == ReagentOutland {
		return t.outland
	}
	return t.inland
}

// TryAfford offers the class costs to pay in order and accepts the first one
// pay succeeds on. pay must check and consume atomically; it is never called
// again after a success. ok is false when no cost could be paid.
func (t *ReagentTable) TryAfford(class ReagentClass, pay func(itemID uint32, amount int32) bool) (cost ReagentCost, ok bool) {
	for _, c := range t.list(class) {
		if pay(c.ItemID, c.Amount) {
			return c, true
		}
	}
	return ReagentCost{}, false
}

// OpenReagentTable opens the SQLite reagent database read-only and loads it.
func OpenReagentTable(ctx context.Context, path string) (*ReagentTable, error) {
	db, err := OpenGameDB(path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	return LoadReagentTable(ctx, db)
}

// OpenGameDB opens the SQLite game database read-only.
// A missing file is an error (sqlite would silently create it otherwise).
func OpenGameDB(path string) (*sql.DB, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, oops.Code("reagent_source_missing").With("path", path).Wrap(errors.Join(ErrReagentSource, err))
	}
	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?mode=ro", path))
	if err != nil {
		return nil, oops.Code("reagent_source_open").With("path", path).Wrap(errors.Join(ErrReagentSource, err))
	}
	return db, nil
}

// LoadReagentTable reads open_portal_inland_reagents and open_portal_outland_reagents.
func LoadReagentTable(ctx context.Context, db *sql.DB) (*ReagentTable, error) {
	inland, err := queryReagents(ctx, db, "open_portal_inland_reagents")
	if err != nil {
		return nil, err
	}
	outland, err := queryReagents(ctx, db, "open_portal_outland_reagents")
	if err != nil {
		return nil, err
	}

	table, err := NewReagentTable(inland, outland)
	if err != nil {
		return nil, err
	}

	slog.Info("loaded portal reagents", "inland", len(table.inland), "outland", len(table.outland))
	return table, nil
}

func queryReagents(ctx context.Context, db *sql.DB, table string) ([]ReagentCost, error) {
	// table is one of two constants above, never user input
	query := "SELECT id, open_portal_effect_id, item_id, amount, priority FROM " + table

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, oops.Code("reagent_source_query").With("table", table).Wrap(errors.Join(ErrReagentSource, err))
	}
	defer rows.Close()

	out := make([]ReagentCost, 0, 8)
	for rows.Next() {
		var r ReagentCost
		if err := rows.Scan(&r.ID, &r.EffectID, &r.ItemID, &r.Amount, &r.Priority); err != nil {
			return nil, oops.Code("reagent_source_scan").With("table", table).Wrap(errors.Join(ErrReagentSource, err))
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code("reagent_source_query").With("table", table).Wrap(errors.Join(ErrReagentSource, err))
	}
	return out, nil
}
