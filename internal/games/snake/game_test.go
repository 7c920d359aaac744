package snake

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/vovakirdan/tui-snake/internal/core"
)

func testConfig(seed int64) core.RuntimeConfig {
	cfg := core.DefaultConfig()
	cfg.Board = core.Board{Cols: 10, Rows: 10}
	cfg.Seed = seed
	return cfg
}

func variant(id string) Variant {
	for _, v := range Variants {
		if v.ID == id {
			return v
		}
	}
	panic("unknown variant " + id)
}

// load replaces the running state with a hand-built position.
func load(g *Game, body []core.Cell, dir core.Direction, food core.Cell) {
	g.snake = append([]core.Cell(nil), body...)
	g.occupied = make(map[core.Cell]struct{}, len(body))
	for _, c := range body {
		g.occupied[c] = struct{}{}
	}
	g.direction = dir
	g.nextDir = dir
	g.food = food
	g.hasFood = true
}

func newRunning(t *testing.T, id string, seed int64) *Game {
	t.Helper()
	g := New(variant(id))
	if err := g.Reset(testConfig(seed)); err != nil {
		t.Fatalf("Reset() failed: %v", err)
	}
	return g
}

func assertDistinct(t *testing.T, snake []core.Cell) {
	t.Helper()
	seen := make(map[core.Cell]bool, len(snake))
	for _, c := range snake {
		if seen[c] {
			t.Fatalf("Snake cell %+v appears twice in %v", c, snake)
		}
		seen[c] = true
	}
}

func TestNewIsNotStarted(t *testing.T) {
	g := New(variant("classic"))

	snap := g.Snapshot()
	if snap.Status != core.StatusNotStarted || snap.Running {
		t.Errorf("New game should not be started, got %s", snap.Status)
	}
	if res := g.Tick(); res.Outcome != core.OutcomeIdle {
		t.Errorf("Tick before Reset should be idle, got %v", res.Outcome)
	}
	if g.PlaceFood() {
		t.Error("PlaceFood before Reset should do nothing")
	}
}

func TestResetCentersSnake(t *testing.T) {
	g := newRunning(t, "classic", 1)
	snap := g.Snapshot()

	expected := []core.Cell{{X: 5, Y: 5}, {X: 4, Y: 5}, {X: 3, Y: 5}}
	if len(snap.Snake) != len(expected) {
		t.Fatalf("Snake length = %d, expected %d", len(snap.Snake), len(expected))
	}
	for i := range expected {
		if snap.Snake[i] != expected[i] {
			t.Errorf("Snake[%d] = %+v, expected %+v", i, snap.Snake[i], expected[i])
		}
	}
	if snap.Score != 0 || !snap.Running || snap.Direction != core.DirRight {
		t.Errorf("Unexpected reset state: %+v", snap)
	}
	if snap.TickInterval != 100*time.Millisecond {
		t.Errorf("TickInterval = %s, expected 100ms", snap.TickInterval)
	}
}

func TestResetStartDirections(t *testing.T) {
	for _, dir := range []core.Direction{core.DirUp, core.DirDown, core.DirLeft, core.DirRight} {
		t.Run(dir.String(), func(t *testing.T) {
			cfg := testConfig(3)
			cfg.StartDirection = dir
			cfg.InitialLength = 4

			g := New(variant("classic"))
			if err := g.Reset(cfg); err != nil {
				t.Fatalf("Reset() failed: %v", err)
			}
			snap := g.Snapshot()
			assertDistinct(t, snap.Snake)

			if len(snap.Snake) != 4 {
				t.Fatalf("Snake length = %d, expected 4", len(snap.Snake))
			}
			for i := 1; i < len(snap.Snake); i++ {
				if snap.Snake[i-1] != snap.Snake[i].Add(dir.Delta()) {
					t.Errorf("Segment %d is not behind segment %d for direction %s", i, i-1, dir)
				}
			}
			for _, c := range snap.Snake {
				if !snap.Board.Contains(c) {
					t.Errorf("Segment %+v is off the board", c)
				}
			}
		})
	}
}

func TestResetRejectsBadConfig(t *testing.T) {
	g := newRunning(t, "classic", 1)
	before := g.Snapshot()

	cfg := testConfig(1)
	cfg.Board = core.Board{Cols: 2, Rows: 2}
	err := g.Reset(cfg)

	var cfgErr *core.ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("Reset() error = %v, expected *core.ConfigurationError", err)
	}

	cfg = testConfig(1)
	cfg.CellSize = 0
	if err := g.Reset(cfg); !errors.Is(err, core.ErrInvalidConfig) {
		t.Errorf("Reset() with zero cell size = %v, expected ErrInvalidConfig", err)
	}

	after := g.Snapshot()
	if after.Head() != before.Head() || after.Status != before.Status {
		t.Error("A failed Reset should leave the game untouched")
	}
}

// Snake eats food straight ahead on a 10x10 board.
func TestTickEatsFood(t *testing.T) {
	g := newRunning(t, "classic", 7)
	load(g, []core.Cell{{X: 5, Y: 5}, {X: 4, Y: 5}, {X: 3, Y: 5}}, core.DirRight, core.Cell{X: 6, Y: 5})

	res := g.Tick()
	if res.Outcome != core.OutcomeContinue || !res.Ate {
		t.Fatalf("Tick() = %v ate=%v, expected continue with food eaten", res.Outcome, res.Ate)
	}

	snap := res.Snapshot
	expected := []core.Cell{{X: 6, Y: 5}, {X: 5, Y: 5}, {X: 4, Y: 5}, {X: 3, Y: 5}}
	if len(snap.Snake) != len(expected) {
		t.Fatalf("Snake = %v, expected %v", snap.Snake, expected)
	}
	for i := range expected {
		if snap.Snake[i] != expected[i] {
			t.Errorf("Snake[%d] = %+v, expected %+v", i, snap.Snake[i], expected[i])
		}
	}
	if snap.Score != 1 {
		t.Errorf("Score = %d, expected 1", snap.Score)
	}
	for _, c := range snap.Snake {
		if c == snap.Food {
			t.Errorf("New food %+v was placed on the snake", snap.Food)
		}
	}
}

// Moving left off column 0 ends a clamped game with the score unchanged.
func TestTickClampWallCollision(t *testing.T) {
	g := newRunning(t, "classic", 7)
	load(g, []core.Cell{{X: 0, Y: 5}, {X: 1, Y: 5}, {X: 2, Y: 5}}, core.DirLeft, core.Cell{X: 8, Y: 8})

	res := g.Tick()
	if res.Outcome != core.OutcomeGameOver {
		t.Fatalf("Tick() = %v, expected game over", res.Outcome)
	}
	if res.Snapshot.Cause != core.CauseWall {
		t.Errorf("Cause = %q, expected wall", res.Snapshot.Cause)
	}
	if res.Score() != 0 || res.Snapshot.Running {
		t.Errorf("Unexpected state after wall hit: %+v", res.Snapshot)
	}
	if res.Snapshot.Head() != (core.Cell{X: 0, Y: 5}) {
		t.Errorf("Snake should not move on collision, head = %+v", res.Snapshot.Head())
	}
}

// The same move wraps to the far column under the wrap policy.
func TestTickWrap(t *testing.T) {
	g := newRunning(t, "wrap", 7)
	load(g, []core.Cell{{X: 0, Y: 5}, {X: 1, Y: 5}, {X: 2, Y: 5}}, core.DirLeft, core.Cell{X: 8, Y: 8})

	res := g.Tick()
	if res.Outcome != core.OutcomeContinue {
		t.Fatalf("Tick() = %v, expected continue", res.Outcome)
	}
	if res.Snapshot.Head() != (core.Cell{X: 9, Y: 5}) {
		t.Errorf("Head = %+v, expected (9,5)", res.Snapshot.Head())
	}
	if !res.Snapshot.Running {
		t.Error("Game should still be running after wrapping")
	}
}

// A two-cell snake may move onto the cell its tail is vacating.
func TestTickFollowsVacatingTail(t *testing.T) {
	g := newRunning(t, "classic", 7)
	load(g, []core.Cell{{X: 4, Y: 5}, {X: 3, Y: 5}}, core.DirRight, core.Cell{X: 9, Y: 9})

	res := g.Tick()
	if res.Outcome != core.OutcomeContinue {
		t.Fatalf("Tick() = %v, expected continue", res.Outcome)
	}
	snap := res.Snapshot
	if len(snap.Snake) != 2 || snap.Snake[0] != (core.Cell{X: 5, Y: 5}) || snap.Snake[1] != (core.Cell{X: 4, Y: 5}) {
		t.Errorf("Snake = %v, expected [(5,5) (4,5)]", snap.Snake)
	}
}

func TestTickIntoVacatingTailOfLoop(t *testing.T) {
	g := newRunning(t, "classic", 7)
	// A 2x2 loop: head (5,5) moving up onto tail (5,4).
	load(g, []core.Cell{{X: 5, Y: 5}, {X: 6, Y: 5}, {X: 6, Y: 4}, {X: 5, Y: 4}}, core.DirLeft, core.Cell{X: 0, Y: 0})
	g.SetDirection(core.DirUp)

	res := g.Tick()
	if res.Outcome != core.OutcomeContinue {
		t.Fatalf("Moving onto the vacating tail should be legal, got %v", res.Outcome)
	}
	assertDistinct(t, res.Snapshot.Snake)
}

func TestTickIntoTailWhileEatingCollides(t *testing.T) {
	g := newRunning(t, "classic", 7)
	// Food sits on the tail cell: growing keeps the tail, so the head hits it.
	load(g, []core.Cell{{X: 5, Y: 5}, {X: 6, Y: 5}, {X: 6, Y: 4}, {X: 5, Y: 4}}, core.DirLeft, core.Cell{X: 5, Y: 4})
	g.SetDirection(core.DirUp)

	res := g.Tick()
	if res.Outcome != core.OutcomeGameOver || res.Snapshot.Cause != core.CauseSelf {
		t.Errorf("Tick() = %v (%q), expected self collision", res.Outcome, res.Snapshot.Cause)
	}
}

func TestTickSelfCollision(t *testing.T) {
	g := newRunning(t, "classic", 7)
	load(g, []core.Cell{
		{X: 5, Y: 5},
		{X: 5, Y: 6},
		{X: 6, Y: 6},
		{X: 6, Y: 5},
		{X: 6, Y: 4},
	}, core.DirUp, core.Cell{X: 0, Y: 0})
	g.SetDirection(core.DirRight)

	res := g.Tick()
	if res.Outcome != core.OutcomeGameOver {
		t.Fatalf("Tick() = %v, expected game over", res.Outcome)
	}
	if res.Snapshot.Cause != core.CauseSelf {
		t.Errorf("Cause = %q, expected self", res.Snapshot.Cause)
	}
}

// Up then Down before a tick while travelling Right: both are accepted
// because only the travel direction gates reversal.
func TestSetDirectionGatesOnTravelDirection(t *testing.T) {
	g := newRunning(t, "classic", 7)

	g.SetDirection(core.DirUp)
	if g.nextDir != core.DirUp {
		t.Fatalf("nextDir = %v, expected up", g.nextDir)
	}
	g.SetDirection(core.DirDown)
	if g.nextDir != core.DirDown {
		t.Fatalf("nextDir = %v, expected down (travel is still right)", g.nextDir)
	}

	res := g.Tick()
	if res.Snapshot.Direction != core.DirDown {
		t.Errorf("Travel direction = %v, expected down", res.Snapshot.Direction)
	}
	if res.Snapshot.Head() != (core.Cell{X: 5, Y: 6}) {
		t.Errorf("Head = %+v, expected (5,6)", res.Snapshot.Head())
	}
}

func TestSetDirectionRejectsReversal(t *testing.T) {
	g := newRunning(t, "classic", 7)

	g.SetDirection(core.DirLeft)
	if g.nextDir != core.DirRight {
		t.Error("Should not allow immediate reversal from right to left")
	}

	g.SetDirection(core.DirUp)
	g.Tick()

	g.SetDirection(core.DirDown)
	if g.nextDir != core.DirUp {
		t.Errorf("Reversal of the new travel direction should be rejected, nextDir = %v", g.nextDir)
	}
}

func TestSetDirectionIgnoredWhenNotRunning(t *testing.T) {
	g := New(variant("classic"))
	g.SetDirection(core.DirUp)
	if g.nextDir != core.DirRight {
		t.Error("SetDirection before Reset should be ignored")
	}

	g = newRunning(t, "classic", 7)
	load(g, []core.Cell{{X: 0, Y: 5}, {X: 1, Y: 5}, {X: 2, Y: 5}}, core.DirLeft, core.Cell{X: 8, Y: 8})
	g.Tick()

	g.SetDirection(core.DirUp)
	if g.nextDir != core.DirLeft {
		t.Error("SetDirection after game over should be ignored")
	}
	if res := g.Tick(); res.Outcome != core.OutcomeIdle {
		t.Errorf("Tick after game over = %v, expected idle", res.Outcome)
	}
}

func TestSetDirectionInvalidEnumerant(t *testing.T) {
	g := newRunning(t, "classic", 7)
	g.SetDirection(core.Direction(-1))
	if g.nextDir != core.DirRight {
		t.Errorf("Invalid direction should be ignored, nextDir = %v", g.nextDir)
	}
}

func TestSetDirectionIdempotent(t *testing.T) {
	once := newRunning(t, "classic", 11)
	many := newRunning(t, "classic", 11)

	once.SetDirection(core.DirDown)
	for range 5 {
		many.SetDirection(core.DirDown)
	}

	a, b := once.Tick().Snapshot, many.Tick().Snapshot
	if a.Head() != b.Head() || a.Direction != b.Direction {
		t.Errorf("Repeated SetDirection changed the outcome: %+v vs %+v", a.Head(), b.Head())
	}
}

func TestResetAfterGameOver(t *testing.T) {
	g := newRunning(t, "classic", 7)
	load(g, []core.Cell{{X: 0, Y: 5}, {X: 1, Y: 5}, {X: 2, Y: 5}}, core.DirLeft, core.Cell{X: 8, Y: 8})
	g.Tick()

	if err := g.Reset(testConfig(8)); err != nil {
		t.Fatalf("Reset() failed: %v", err)
	}
	snap := g.Snapshot()
	if !snap.Running || snap.Score != 0 || snap.Cause != core.CauseNone || snap.Tick != 0 {
		t.Errorf("Reset should start a fresh game, got %+v", snap)
	}
}

func TestSpeedScaling(t *testing.T) {
	cfg := testConfig(5)
	cfg.Board = core.Board{Cols: 30, Rows: 3}
	cfg.Speed.Every = 2
	cfg.Speed.Step = 20 * time.Millisecond
	cfg.Speed.Floor = 70 * time.Millisecond

	g := New(variant("speedy"))
	if err := g.Reset(cfg); err != nil {
		t.Fatalf("Reset() failed: %v", err)
	}

	expected := []time.Duration{100, 80, 80, 70, 70, 70}
	for i, want := range expected {
		want *= time.Millisecond
		head := g.Snapshot().Head()
		g.mu.Lock()
		g.food = head.Add(core.DirRight.Delta())
		g.mu.Unlock()

		res := g.Tick()
		if !res.Ate {
			t.Fatalf("Tick %d should eat", i)
		}
		changed := i == 1 || i == 3
		if res.IntervalChanged != changed {
			t.Errorf("Tick %d: IntervalChanged = %v, expected %v", i, res.IntervalChanged, changed)
		}
		if res.Snapshot.TickInterval != want {
			t.Errorf("After %d points interval = %s, expected %s", i+1, res.Snapshot.TickInterval, want)
		}
	}
}

func TestClassicIgnoresSpeedScaling(t *testing.T) {
	cfg := testConfig(5)
	cfg.Speed.Enabled = true
	cfg.Speed.Every = 1

	g := New(variant("classic"))
	if err := g.Reset(cfg); err != nil {
		t.Fatalf("Reset() failed: %v", err)
	}
	head := g.Snapshot().Head()
	load(g, g.Snapshot().Snake, core.DirRight, head.Add(core.DirRight.Delta()))

	res := g.Tick()
	if res.IntervalChanged || res.Snapshot.TickInterval != cfg.TickInterval {
		t.Error("Classic variant should never change the interval")
	}
}

func TestBoardFull(t *testing.T) {
	cfg := testConfig(1)
	cfg.Board = core.Board{Cols: 4, Rows: 1}

	g := New(variant("classic"))
	if err := g.Reset(cfg); err != nil {
		t.Fatalf("Reset() failed: %v", err)
	}
	snap := g.Snapshot()
	if !snap.HasFood || snap.Food != (core.Cell{X: 3, Y: 0}) {
		t.Fatalf("The only free cell should hold food, got %+v", snap.Food)
	}

	res := g.Tick()
	if res.Outcome != core.OutcomeBoardFull {
		t.Fatalf("Tick() = %v, expected board full", res.Outcome)
	}
	if res.Snapshot.Status != core.StatusBoardFull || res.Snapshot.Running {
		t.Errorf("Status = %s, expected board_full", res.Snapshot.Status)
	}
	if res.Snapshot.HasFood {
		t.Error("A full board should have no food")
	}
	if res.Score() != 1 || len(res.Snapshot.Snake) != 4 {
		t.Errorf("Score = %d, length = %d, expected 1 and 4", res.Score(), len(res.Snapshot.Snake))
	}
}

func TestFoodSpawnValidity(t *testing.T) {
	g := newRunning(t, "classic", 999)

	for i := 0; i < 100; i++ {
		if !g.PlaceFood() {
			t.Fatal("PlaceFood should succeed on a mostly empty board")
		}
		snap := g.Snapshot()
		if !snap.Board.Contains(snap.Food) {
			t.Errorf("Food spawned out of bounds at %+v", snap.Food)
		}
		for _, c := range snap.Snake {
			if c == snap.Food {
				t.Errorf("Food spawned on snake at %+v", snap.Food)
			}
		}
	}
}

func TestFoodOnCrowdedBoard(t *testing.T) {
	g := newRunning(t, "classic", 4)

	// Fill every cell except (9,9) with a boustrophedon snake.
	var body []core.Cell
	for y := 0; y < 10; y++ {
		for i := 0; i < 10; i++ {
			x := i
			if y%2 == 1 {
				x = 9 - i
			}
			if x == 9 && y == 9 {
				continue
			}
			body = append(body, core.Cell{X: x, Y: y})
		}
	}
	load(g, body, core.DirRight, core.Cell{})

	if !g.PlaceFood() {
		t.Fatal("PlaceFood should find the last free cell")
	}
	if food := g.Snapshot().Food; food != (core.Cell{X: 9, Y: 9}) {
		t.Errorf("Food = %+v, expected (9,9)", food)
	}
}

func TestDeterminism(t *testing.T) {
	g1 := newRunning(t, "marathon", 12345)
	g2 := newRunning(t, "marathon", 12345)

	for i := 0; i < 200; i++ {
		switch i % 7 {
		case 2:
			g1.SetDirection(core.DirDown)
			g2.SetDirection(core.DirDown)
		case 5:
			g1.SetDirection(core.DirRight)
			g2.SetDirection(core.DirRight)
		}
		g1.Tick()
		g2.Tick()
	}

	s1, s2 := g1.Snapshot(), g2.Snapshot()
	if s1.Tick != s2.Tick || s1.Score != s2.Score || s1.Head() != s2.Head() || s1.Food != s2.Food {
		t.Errorf("Same seed diverged: %+v vs %+v", s1, s2)
	}
}

// Random walks must keep every invariant while the game runs.
func TestInvariantsUnderRandomPlay(t *testing.T) {
	dirs := []core.Direction{core.DirUp, core.DirDown, core.DirLeft, core.DirRight}

	for _, id := range []string{"classic", "wrap", "marathon"} {
		t.Run(id, func(t *testing.T) {
			for seed := int64(1); seed <= 20; seed++ {
				g := newRunning(t, id, seed)
				for step := 0; step < 500; step++ {
					before := g.Snapshot()
					if !before.Running {
						break
					}
					g.SetDirection(dirs[(int(seed)*31+step*7)%len(dirs)])

					res := g.Tick()
					after := res.Snapshot

					if after.Direction.IsOpposite(before.Direction) {
						t.Fatalf("Travel reversed from %v to %v", before.Direction, after.Direction)
					}
					grow := len(after.Snake) - len(before.Snake)
					if grow != 0 && grow != 1 {
						t.Fatalf("Length changed by %d in one tick", grow)
					}
					if after.Running {
						assertDistinct(t, after.Snake)
						for _, c := range after.Snake {
							if c == after.Food {
								t.Fatalf("Food %+v overlaps the snake", c)
							}
							if !after.Board.Contains(c) {
								t.Fatalf("Cell %+v is off the board", c)
							}
						}
					}
				}
			}
		})
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	g := newRunning(t, "classic", 1)
	snap := g.Snapshot()
	snap.Snake[0] = core.Cell{X: -5, Y: -5}

	if g.Snapshot().Head() == (core.Cell{X: -5, Y: -5}) {
		t.Error("Mutating a snapshot should not affect the game")
	}
}

func TestVariantApply(t *testing.T) {
	cfg := core.DefaultConfig()
	cfg.Boundary = core.BoundaryWrap
	cfg.Speed.Enabled = true

	if got := variant("classic").Apply(cfg); got.Boundary != core.BoundaryClamp || got.Speed.Enabled {
		t.Errorf("classic should force clamp without speed-up, got %+v", got)
	}
	if got := variant("custom").Apply(cfg); got.Boundary != core.BoundaryWrap || !got.Speed.Enabled {
		t.Errorf("custom should keep the config, got %+v", got)
	}
}

func TestGameIDs(t *testing.T) {
	g := New(variant("wrap"))
	if g.ID() != "wrap" {
		t.Errorf("ID should be 'wrap', got %s", g.ID())
	}
	if g.Title() != "Wraparound" {
		t.Errorf("Title should be 'Wraparound', got %s", g.Title())
	}
}

// Hosts may steer from an input goroutine while a timer goroutine ticks.
func TestConcurrentSteeringAndTicks(t *testing.T) {
	g := newRunning(t, "wrap", 99)
	dirs := []core.Direction{core.DirUp, core.DirLeft, core.DirDown, core.DirRight}

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		for i := range 500 {
			g.SetDirection(dirs[i%len(dirs)])
		}
	}()
	go func() {
		defer wg.Done()
		for range 200 {
			g.Tick()
		}
	}()
	go func() {
		defer wg.Done()
		for range 200 {
			snake := g.Snapshot().Snake
			seen := make(map[core.Cell]bool, len(snake))
			for _, c := range snake {
				if seen[c] {
					t.Errorf("Snake cell %+v appears twice in %v", c, snake)
					return
				}
				seen[c] = true
			}
		}
	}()
	wg.Wait()

	if tick := g.Snapshot().Tick; tick == 0 || tick > 200 {
		t.Errorf("Tick counter = %d, expected 1..200", tick)
	}
}
