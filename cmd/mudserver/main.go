// Command mudserver is the composition root: it loads configuration,
// builds the simulation world, registers every standard parser and
// notification handler, and drives the session manager until
// interrupted. Wire transport is explicitly out of this module's scope —
// stdinSession below is a minimal local REPL good enough to drive the
// simulation by hand, not a production listener.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/udisondev/la2go/internal/action"
	"github.com/udisondev/la2go/internal/clock"
	"github.com/udisondev/la2go/internal/config"
	"github.com/udisondev/la2go/internal/message"
	"github.com/udisondev/la2go/internal/model"
	"github.com/udisondev/la2go/internal/session"
	"github.com/udisondev/la2go/internal/world"
)

const configEnv = "LA2GO_SIM_CONFIG"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg := config.Default()
	if path := os.Getenv(configEnv); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return fmt.Errorf("loading simulation config: %w", err)
		}
		cfg = loaded
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: parseLogLevel(cfg.LogLevel)})))

	store := world.NewStore()
	clk := clock.New(cfg.TickQuantumSeconds)
	w := action.NewWorld(store, clk, cfg, slog.Default())

	action.RegisterStandardHandlers(w)
	registerParsers(w)

	room := spawnStartingRoom(store)
	mgr := session.NewManager(w, slog.Default())

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("starting round loop", "tick_quantum_seconds", cfg.TickQuantumSeconds)
		return mgr.Run(gctx, time.Duration(cfg.TickQuantumSeconds)*time.Second)
	})

	g.Go(func() error {
		slog.Info("attaching local console session")
		return runStdinSession(gctx, w, mgr, room)
	})

	if err := g.Wait(); err != nil && gctx.Err() == nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// registerParsers wires every standard verb into w.Parsers, in the fixed
// order the driver tries them: standard parsers before contributed ones,
// in registration order.
func registerParsers(w *action.World) {
	register := w.Parsers.Register
	register(action.LookParser)
	register(action.MoveParser)
	register(action.WearParser)
	register(action.RemoveParser)
	register(action.EquipParser)
	register(action.PourParser)
	register(action.DrinkParser)
	register(action.EatParser)
	register(action.WaitParser)
	register(action.SleepParser)
	register(action.SayParser)
	register(action.AttackParser)
	register(action.ChangeRangeParser)
	register(action.PutParser)
	register(action.OpenParser)
	register(action.SlamParser)
	register(action.LockParser)
	register(action.StopParser)
	register(action.InventoryParser)
	register(action.StatsParser)
	register(action.VitalsParser)
	register(action.RangesParser)
	register(action.PlayersParser)
	register(action.ThrowParser)
	register(action.CheatParser)
	register(action.SpendAdvancementPointParser)
	register(action.RespawnParser)
	register(action.UppercutParser)
	register(action.HaymakerParser)
}

// spawnStartingRoom creates the one room every new session's character
// starts in — a stand-in for a content/world-loading layer this module
// doesn't own.
func spawnStartingRoom(s *world.Store) world.EntityID {
	room := s.Create()
	world.Attach(s, room, model.Container{MaxVolume: 1_000_000, MaxWeight: 1_000_000})
	world.Attach(s, room, model.Description{Name: "the starting room", RoomName: "Starting Room", Long: "A plain room with bare stone walls."})
	return room
}

// runStdinSession reads lines from the process's own stdin as a single
// local player, printing rendered messages to stdout, until ctx is
// canceled. Good enough to exercise the simulation by hand; a real
// transport replaces this entirely.
func runStdinSession(ctx context.Context, w *action.World, mgr *session.Manager, room world.EntityID) error {
	entity := spawnConsolePlayer(w, room)

	in := make(chan string)
	out := make(chan any, 64)
	mgr.Attach(ctx, &session.Session{ID: "console", Entity: entity, In: in, Out: out})

	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			select {
			case in <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		close(in)
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case env := <-out:
			printEnvelope(env)
		}
	}
}

func printEnvelope(v any) {
	env, ok := v.(message.Envelope)
	if !ok {
		return
	}
	fmt.Println(env.Text)
}

func spawnConsolePlayer(w *action.World, room world.EntityID) world.EntityID {
	entity := w.Store.Create()
	world.Attach(w.Store, entity, model.Player{ID: uuid.NewString()})
	world.Attach(w.Store, entity, model.Description{Name: "you", Aliases: []string{"self"}})
	world.Attach(w.Store, entity, model.Vitals{Values: map[model.VitalKind]model.Vital{
		model.Health:    {Current: 100, Max: 100},
		model.Satiety:   {Current: 100, Max: 100},
		model.Hydration: {Current: 100, Max: 100},
		model.Energy:    {Current: 100, Max: 100},
	}})
	world.Attach(w.Store, entity, model.Stats{
		Attributes: map[model.Stat]int{
			model.StatStrength: 10, model.StatAgility: 10, model.StatIntelligence: 10,
			model.StatPerception: 10, model.StatEndurance: 10,
		},
		Skills: map[model.Skill]int{},
	})
	world.Attach(w.Store, entity, model.Container{MaxVolume: 50, MaxWeight: 50})
	world.Attach(w.Store, entity, model.EquippedItems{Hands: 2})
	world.Attach(w.Store, entity, model.DefaultBodyPartProfile())
	_ = model.MoveToContainer(w.Store, entity, room)
	return entity
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
