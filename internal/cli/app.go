// internal/cli/app.go
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/ctfops/gzctf-clone/internal/archive"
	"github.com/ctfops/gzctf-clone/internal/clone"
	"github.com/ctfops/gzctf-clone/internal/gzapi"
)

// App wires the configured source/destination clients to one of the
// tool's modes. An error returned from Run is unrecoverable and should
// exit non-zero; per-challenge failures are logged, counted and do not
// bubble up.
type App struct {
	cfg     *Config
	log     *logrus.Logger
	p       *prompter
	src     *gzapi.Client
	dst     *gzapi.Client
	catalog *clone.Catalog
}

// Run executes the mode selected by cfg, reading interactive answers
// from in and writing menus to out.
func Run(ctx context.Context, cfg *Config, in io.Reader, out io.Writer, log *logrus.Logger) error {
	src, err := gzapi.NewClient(cfg.SourceURL, cfg.SourceToken, log)
	if err != nil {
		return fmt.Errorf("source instance: %w", err)
	}
	dst, err := gzapi.NewClient(cfg.DestURL, cfg.DestToken, log)
	if err != nil {
		return fmt.Errorf("destination instance: %w", err)
	}

	app := &App{
		cfg:     cfg,
		log:     log,
		p:       newPrompter(in, out),
		src:     src,
		dst:     dst,
		catalog: &clone.Catalog{Client: src, Log: log},
	}

	switch {
	case cfg.Export:
		return app.runExport(ctx)
	case cfg.ImportPath != "":
		return app.runImport(ctx)
	case cfg.NewGame:
		return app.runNewGame(ctx)
	default:
		return app.runCloneGame(ctx)
	}
}

// runCloneGame duplicates one source game (all or selected challenges)
// into a fresh hidden game on the destination.
func (a *App) runCloneGame(ctx context.Context) error {
	games, err := a.catalog.Games(ctx)
	if err != nil {
		return fmt.Errorf("fetch games: %w", err)
	}
	if len(games) == 0 {
		a.p.printf("No games available.\n")
		return nil
	}

	a.p.printGames(games)
	game := findGame(games, parseIDList(a.p.ask("\nEnter game ID to duplicate: ")))
	if game == nil {
		a.p.printf("Invalid game ID.\n")
		return nil
	}

	chs := a.catalog.Challenges(ctx, game.ID)
	a.enrichScores(ctx, chs)
	if len(chs) == 0 {
		a.p.printf("No challenges found in the selected game.\n")
		return nil
	}

	a.p.printf("\nFound %d challenges.\n", len(chs))
	if answer := a.p.ask("Duplicate all? (y/n): "); answer != "y" && answer != "Y" {
		a.p.printChallenges(chs, nil)
		chs = filterByID(chs, parseIDList(a.p.ask("\nChallenge IDs to copy (comma-separated): ")))
		if len(chs) == 0 {
			a.p.printf("No valid challenges selected.\n")
			return nil
		}
	}

	return a.provisionAndClone(ctx, game.Title+" (Copy)", chs)
}

// runNewGame assembles a destination game from challenges hand-picked
// across every game on the source instance. Identically titled
// challenges from different games are cloned as-is; nothing is merged
// or renamed.
func (a *App) runNewGame(ctx context.Context) error {
	games, err := a.catalog.Games(ctx)
	if err != nil {
		return fmt.Errorf("fetch games: %w", err)
	}

	all := a.catalog.ScanAll(ctx, games)
	if len(all) == 0 {
		a.p.printf("No challenges available in any games.\n")
		return nil
	}

	titles := make(map[int]string, len(games))
	for _, g := range games {
		titles[g.ID] = g.Title
	}
	a.p.printChallenges(all, titles)

	selected := all
	if input := a.p.ask("\nChallenge IDs to copy (comma-separated), or press Enter for all: "); input != "" {
		selected = filterByID(all, parseIDList(input))
		if len(selected) == 0 {
			a.p.printf("No valid challenges selected.\n")
			return nil
		}
	}

	title := a.p.ask("\nNew game title: ")
	if title == "" {
		a.p.printf("A game title is required.\n")
		return nil
	}
	return a.provisionAndClone(ctx, title, selected)
}

// runExport snapshots one game (all or selected challenges) into an
// archive folder under the current directory.
func (a *App) runExport(ctx context.Context) error {
	games, err := a.catalog.Games(ctx)
	if err != nil {
		return fmt.Errorf("fetch games: %w", err)
	}
	if len(games) == 0 {
		a.p.printf("No games available.\n")
		return nil
	}

	a.p.printGames(games)
	game := findGame(games, parseIDList(a.p.ask("\nEnter game ID to export: ")))
	if game == nil {
		a.p.printf("Invalid game ID.\n")
		return nil
	}

	chs := a.catalog.Challenges(ctx, game.ID)
	records := make([]clone.Record, 0, len(chs))
	for i, ch := range chs {
		full, err := a.catalog.FullChallenge(ctx, game.ID, ch.ID)
		if err != nil {
			a.log.WithField("challenge_id", ch.ID).WithError(err).Warn("failed to fetch full record, skipping challenge")
			continue
		}
		if full.OriginalScore != nil {
			chs[i].OriginalScore = *full.OriginalScore
		}
		records = append(records, clone.FromChallenge(full, ch))
	}
	if len(records) == 0 {
		a.p.printf("No challenges found.\n")
		return nil
	}

	a.p.printChallenges(chs, nil)
	if input := a.p.ask("\nChallenge IDs to export (comma-separated), or press Enter for all: "); input != "" {
		records = filterRecords(records, parseIDList(input))
		if len(records) == 0 {
			a.p.printf("No valid challenges selected.\n")
			return nil
		}
	}

	codec := &archive.Codec{Log: a.log}
	dir, err := codec.Export(ctx, a.src, *game, records, ".")
	if err != nil {
		return fmt.Errorf("export game %d: %w", game.ID, err)
	}
	a.p.printf("\nExported backup to %s\n", dir)
	return nil
}

// runImport restores an archive into a fresh game on the destination
// instance.
func (a *App) runImport(ctx context.Context) error {
	codec := &archive.Codec{Log: a.log}
	game, outcomes, err := codec.Import(ctx, a.dst, a.cfg.ImportPath)
	if err != nil {
		return fmt.Errorf("import %s: %w", a.cfg.ImportPath, err)
	}
	a.p.printf("\nImported into game %q (ID %d).\n", game.Title, game.ID)
	a.report(outcomes)
	return nil
}

// provisionAndClone creates the destination game shell and replays the
// selection into it, then prints the batch result.
func (a *App) provisionAndClone(ctx context.Context, title string, selected []gzapi.ChallengeSummary) error {
	game, err := clone.ProvisionGame(ctx, a.dst, title, a.cfg.InviteCode)
	if err != nil {
		return fmt.Errorf("create game: %w", err)
	}
	a.p.printf("\nCreated new hidden game %q (ID %d, invite code %s).\n", game.Title, game.ID, game.InviteCode)

	engine := clone.NewEngine(a.src, a.dst, a.log)
	a.report(engine.Duplicate(ctx, game.ID, selected))
	return nil
}

// report prints the final success/failure count; failed outcomes keep
// enough context in the logs to redo single challenges by hand.
func (a *App) report(outcomes []clone.Outcome) {
	ok, failed := clone.Tally(outcomes)
	a.p.printf("\nDone: %d succeeded, %d failed.\n", ok, failed)
}

// enrichScores fills in originalScore from the full record where the
// list view lacks it, purely for menu display. Fetch failures fall back
// to the summary score.
func (a *App) enrichScores(ctx context.Context, chs []gzapi.ChallengeSummary) {
	for i := range chs {
		if full, err := a.catalog.FullChallenge(ctx, chs[i].GameID, chs[i].ID); err == nil && full.OriginalScore != nil {
			chs[i].OriginalScore = *full.OriginalScore
		} else if chs[i].OriginalScore == 0 {
			chs[i].OriginalScore = chs[i].Score
		}
	}
}

// findGame returns the single game matching the selection, or nil.
func findGame(games []gzapi.GameSummary, ids map[int]bool) *gzapi.GameSummary {
	for i := range games {
		if ids[games[i].ID] {
			return &games[i]
		}
	}
	return nil
}

// filterRecords keeps records whose source challenge id is selected,
// preserving order.
func filterRecords(records []clone.Record, ids map[int]bool) []clone.Record {
	var selected []clone.Record
	for _, rec := range records {
		if ids[rec.SourceID] {
			selected = append(selected, rec)
		}
	}
	return selected
}
