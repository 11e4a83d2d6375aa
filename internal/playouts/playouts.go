// Package playouts plays random games on the board, checking after every move that the
// rules engine keeps its invariants.
//
// It is used to stress the engine, by the tests and by the cmd/playouts tool, which runs
// many games in parallel.
package playouts

import (
	"context"
	"fmt"
	"github.com/LanMao8866/hexjump/internal/generics"
	"github.com/LanMao8866/hexjump/internal/parameters"
	"github.com/LanMao8866/hexjump/internal/state"
	"github.com/gomlx/exceptions"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
	"math/rand/v2"
	"slices"
)

// Config of the random playouts.
type Config struct {
	// MaxMoves is the number of turns after which a game is abandoned as unfinished.
	MaxMoves int

	// StopProb is the probability of voluntarily stopping a jump sequence that could continue.
	StopProb float64

	// InvalidProb is the probability, before each move, of first trying a random invalid move,
	// which must be rejected without changing the board.
	InvalidProb float64
}

// DefaultConfig used if no configuration is given.
func DefaultConfig() Config {
	return Config{
		MaxMoves:    400,
		StopProb:    0.25,
		InvalidProb: 0.2,
	}
}

// NewConfig parses a configuration string like "max_moves=400,stop_prob=0.25,invalid_prob=0.2".
// Keys not given take the DefaultConfig values, and unknown keys are an error.
func NewConfig(config string) (cfg Config, err error) {
	cfg = DefaultConfig()
	params := parameters.NewFromConfigString(config)
	cfg.MaxMoves, err = parameters.PopParamOr(params, "max_moves", cfg.MaxMoves)
	if err != nil {
		return
	}
	cfg.StopProb, err = parameters.PopParamOr(params, "stop_prob", cfg.StopProb)
	if err != nil {
		return
	}
	cfg.InvalidProb, err = parameters.PopParamOr(params, "invalid_prob", cfg.InvalidProb)
	if err != nil {
		return
	}
	if err = parameters.CheckAllUsed(params); err != nil {
		return
	}
	if cfg.MaxMoves <= 0 {
		return cfg, errors.Errorf("max_moves must be > 0, got %d", cfg.MaxMoves)
	}
	for name, prob := range map[string]float64{"stop_prob": cfg.StopProb, "invalid_prob": cfg.InvalidProb} {
		if prob < 0 || prob > 1 {
			return cfg, errors.Errorf("%s must be in [0, 1], got %g", name, prob)
		}
	}
	return
}

// Result of one random game.
type Result struct {
	Seed uint64

	// Winner is TeamInvalid if the game didn't finish.
	Winner state.Team

	// Blocked is set if the game ended because the current team had no valid move.
	Blocked bool

	// Turns completed, and counts of each kind of action taken.
	Turns, Steps, Jumps, Stops, Rejected int

	// LongestChain is the largest number of jumps in a single jump sequence.
	LongestChain int
}

// Finished returns whether the game ended with a winner.
func (r Result) Finished() bool {
	return r.Winner != state.TeamInvalid
}

func (r Result) String() string {
	outcome := "unfinished"
	if r.Finished() {
		outcome = fmt.Sprintf("%s wins", r.Winner)
	} else if r.Blocked {
		outcome = "blocked"
	}
	return fmt.Sprintf("seed=%d: %s after %d turns (%d steps, %d jumps, %d stops, %d rejected, longest chain %d)",
		r.Seed, outcome, r.Turns, r.Steps, r.Jumps, r.Stops, r.Rejected, r.LongestChain)
}

// playout holds the state of one game being played.
type playout struct {
	cfg       Config
	rng       *rand.Rand
	board     *state.Board
	positions []state.Pos
	counts    [state.NumTeams]int
	chain     int
	result    *Result
}

// Run plays one random game from the initial board, seeded with seed, until some team wins,
// the current team is blocked, MaxMoves turns were played or ctx is cancelled.
//
// It returns an error if any of the engine invariants is broken, with the details of the move.
func Run(ctx context.Context, cfg Config, seed uint64) (Result, error) {
	_, result, err := Play(ctx, cfg, seed)
	return result, err
}

// Play is like Run, but it also returns the final board.
func Play(ctx context.Context, cfg Config, seed uint64) (board *state.Board, result Result, err error) {
	result = Result{Seed: seed, Winner: state.TeamInvalid}
	p := &playout{
		cfg:    cfg,
		rng:    rand.New(rand.NewPCG(seed, seed^0x5DEECE66D)),
		board:  state.NewBoard(),
		result: &result,
	}
	board = p.board
	p.positions = p.board.Positions()
	for _, team := range state.Teams {
		p.counts[team] = p.board.CountPieces(team)
	}
	err = exceptions.TryCatch[error](func() { p.play(ctx) })
	if err != nil {
		err = errors.WithMessagef(err, "playout with seed=%d, move #%d, %s to play:\n%s",
			seed, p.board.MoveNumber, p.board.CurrentPlayer(), p.board)
	}
	result.Turns = p.board.MoveNumber - 1
	return
}

func (p *playout) play(ctx context.Context) {
	for p.board.MoveNumber <= p.cfg.MaxMoves {
		if ctx.Err() != nil {
			klog.V(1).Infof("Playout seed=%d interrupted: %v", p.result.Seed, ctx.Err())
			return
		}
		if winner, won := p.board.CheckWin(); won {
			p.result.Winner = winner
			return
		}
		if p.rng.Float64() < p.cfg.InvalidProb {
			p.tryInvalidMove()
		}
		if !p.move() {
			p.result.Blocked = true
			return
		}
		p.checkInvariants()
	}
}

// move plays one random valid move, or stops the jump sequence. It returns false if there
// were no valid moves.
func (p *playout) move() bool {
	b := p.board
	if b.IsInJumpSequence() && p.rng.Float64() < p.cfg.StopProb {
		if err := b.StopJumpSequence(); err != nil {
			exceptions.Panicf("failed to stop jump sequence: %+v", err)
		}
		p.result.Stops++
		p.endChain()
		return true
	}

	moves := b.ValidMoves()
	if len(moves) == 0 {
		if b.IsInJumpSequence() {
			exceptions.Panicf("jump sequence in progress, but no valid moves")
		}
		return false
	}
	sources := generics.KeysSlice(moves)
	state.SortPositions(sources) // Deterministic for a given seed.
	from := sources[p.rng.IntN(len(sources))]
	targets := moves[from]
	to := targets[p.rng.IntN(len(targets))]

	wasChaining := b.IsInJumpSequence()
	jump := wasChaining || !state.IsValidConnection(from, to)
	prevVisited := b.Visited()
	player := b.CurrentPlayer()
	if err := b.Move(from, to); err != nil {
		exceptions.Panicf("valid move %s->%s rejected: %+v", from, to, err)
	}
	if b.TeamAt(to) != player || !b.IsEmptySlot(from) {
		exceptions.Panicf("move %s->%s didn't move the %s piece", from, to, player)
	}
	if !jump {
		p.result.Steps++
		if b.IsInJumpSequence() {
			exceptions.Panicf("step %s->%s started a jump sequence", from, to)
		}
		return true
	}

	p.result.Jumps++
	p.chain++
	p.result.LongestChain = max(p.result.LongestChain, p.chain)
	if !b.IsInJumpSequence() {
		p.endChain()
		return true
	}

	// Jump sequence continues: the visited cells only grow by the landing position.
	if b.CurrentPlayer() != player {
		exceptions.Panicf("jump sequence continues, but turn passed from %s to %s", player, b.CurrentPlayer())
	}
	if mustMoveFrom, _ := b.MustMoveFrom(); mustMoveFrom != to {
		exceptions.Panicf("jump sequence must continue from %s, but piece landed at %s", mustMoveFrom, to)
	}
	visited := generics.SetWith(b.Visited()...)
	want := generics.SetWith(prevVisited...)
	if !wasChaining {
		want.Insert(from)
	}
	want.Insert(to)
	if len(visited) != len(b.Visited()) || !visited.Equal(want) {
		exceptions.Panicf("after jump %s->%s visited is %v, wanted %v",
			from, to, b.Visited(), state.PosStrings(slices.Collect(want.Iter())))
	}
	return true
}

func (p *playout) endChain() {
	p.chain = 0
	if len(p.board.Visited()) != 0 {
		exceptions.Panicf("jump sequence ended, but visited cells are still set: %v", p.board.Visited())
	}
}

// tryInvalidMove picks random endpoints until it finds an invalid move, and checks that
// it is rejected without changing the board.
func (p *playout) tryInvalidMove() {
	b := p.board
	for range 10 {
		from := p.positions[p.rng.IntN(len(p.positions))]
		to := p.positions[p.rng.IntN(len(p.positions))]
		if b.IsValidMove(from, to) {
			continue
		}
		before := b.Clone()
		if err := b.Move(from, to); err == nil {
			exceptions.Panicf("invalid move %s->%s was accepted", from, to)
		}
		if !b.Equal(before) {
			exceptions.Panicf("rejected move %s->%s changed the board", from, to)
		}
		p.result.Rejected++
		return
	}
}

// checkInvariants that must hold after every move.
func (p *playout) checkInvariants() {
	b := p.board
	for _, team := range state.Teams {
		if count := b.CountPieces(team); count != p.counts[team] {
			exceptions.Panicf("%s has %d pieces, it started with %d", team, count, p.counts[team])
		}
	}
	if b.IsInJumpSequence() {
		from, _ := b.MustMoveFrom()
		if b.TeamAt(from) != b.CurrentPlayer() {
			exceptions.Panicf("jumping piece at %s is not from %s", from, b.CurrentPlayer())
		}
	}
}
