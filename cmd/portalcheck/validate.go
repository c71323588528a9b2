package main

import (
	"context"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/udisondev/portalgate/internal/config"
	"github.com/udisondev/portalgate/internal/data"
)

type validateOptions struct {
	configPath string
	catalog    string
	schema     string
	gameDB     string
}

// NewValidateCmd creates the validate subcommand.
func NewValidateCmd() *cobra.Command {
	opts := &validateOptions{}

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the portal catalog and the SQLite game database",
		Long: `Loads the portal catalog JSON and the reagent, fake-use, doodad func and
skill effect tables exactly like the server does at startup, then checks that
they reference each other consistently.

Does NOT connect to Postgres. Exits non-zero on the first load error or on any
broken reference.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runValidate(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.configPath, "config", "", "server config file (defaults to $"+config.EnvPortalServerConfig+")")
	cmd.Flags().StringVar(&opts.catalog, "catalog", "", "portal catalog JSON (overrides config)")
	cmd.Flags().StringVar(&opts.schema, "schema", "", "portal catalog JSON schema (overrides config)")
	cmd.Flags().StringVar(&opts.gameDB, "game-db", "", "SQLite game database (overrides config)")

	return cmd
}

func runValidate(cmd *cobra.Command, opts *validateOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	path := opts.configPath
	if path == "" {
		path = config.PortalServerPath()
	}
	cfg, err := config.LoadPortalServer(path)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if opts.catalog != "" {
		cfg.Data.PortalCatalog = opts.catalog
	}
	if opts.schema != "" {
		cfg.Data.PortalSchema = opts.schema
	}
	if opts.gameDB != "" {
		cfg.Data.ReagentDB = opts.gameDB
	}

	catalog, err := data.LoadPortalCatalog(cfg.Data.PortalCatalog, cfg.Data.PortalSchema)
	if err != nil {
		return fmt.Errorf("portal catalog: %w", err)
	}

	gameDB, err := data.OpenGameDB(cfg.Data.ReagentDB)
	if err != nil {
		return fmt.Errorf("game db: %w", err)
	}
	defer gameDB.Close()

	reagents, err := data.LoadReagentTable(ctx, gameDB)
	if err != nil {
		return fmt.Errorf("reagents: %w", err)
	}
	fakeUses, err := data.LoadFakeUseDefs(ctx, gameDB)
	if err != nil {
		return fmt.Errorf("fake uses: %w", err)
	}
	doodadFuncs, err := data.LoadDoodadFuncs(ctx, gameDB)
	if err != nil {
		return fmt.Errorf("doodad funcs: %w", err)
	}
	skillEffects, err := data.LoadSkillEffects(ctx, gameDB)
	if err != nil {
		return fmt.Errorf("skill effects: %w", err)
	}

	problems := crossCheck(reagents, fakeUses, doodadFuncs, skillEffects)
	for _, p := range problems {
		cmd.PrintErrln("  " + p)
	}
	if len(problems) > 0 {
		return fmt.Errorf("validation failed: %d problem(s)", len(problems))
	}

	cmd.Printf("ok: %d portals, %d inland + %d outland reagents, %d fake uses, %d doodad templates, %d skills\n",
		catalog.Len(),
		len(reagents.Costs(data.ReagentInland)),
		len(reagents.Costs(data.ReagentOutland)),
		len(fakeUses),
		len(doodadFuncs),
		len(skillEffects))
	return nil
}

// crossCheck reports references between the game tables that point nowhere.
func crossCheck(
	reagents *data.ReagentTable,
	fakeUses []data.FakeUseDef,
	doodadFuncs map[uint32][]uint32,
	skillEffects map[uint32][]uint32,
) []string {
	var problems []string

	funcIDs := make(map[uint32]struct{}, len(fakeUses))
	for _, f := range fakeUses {
		funcIDs[f.ID] = struct{}{}
	}
	for templateID, ids := range doodadFuncs {
		for _, id := range ids {
			if _, ok := funcIDs[id]; !ok {
				problems = append(problems, fmt.Sprintf("doodad template %d: unknown func %d", templateID, id))
			}
		}
	}

	bound := make(map[uint32]struct{})
	for _, effects := range skillEffects {
		for _, e := range effects {
			bound[e] = struct{}{}
		}
	}
	for _, effectID := range reagents.EffectIDs() {
		if _, ok := bound[effectID]; !ok {
			problems = append(problems, fmt.Sprintf("open portal effect %d: no skill casts it", effectID))
		}
	}

	slices.Sort(problems)
	return problems
}
