package playouts

import (
	"fmt"
	"github.com/LanMao8866/hexjump/internal/state"
	"strings"
	"sync"
	"time"
)

// Summary aggregates the results of many playouts. It is safe for concurrent use.
type Summary struct {
	mu            sync.Mutex
	start         time.Time
	total, played int
	wins          [state.NumTeams]int
	blocked       int
	turns         int
	longestChain  int
	longestSeed   uint64
}

// NewSummary for the given total number of playouts to run.
func NewSummary(total int) *Summary {
	return &Summary{start: time.Now(), total: total}
}

// Add the result of one playout.
func (s *Summary) Add(r Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.played++
	s.turns += r.Turns
	if r.Finished() {
		s.wins[r.Winner]++
	} else if r.Blocked {
		s.blocked++
	}
	if r.LongestChain > s.longestChain {
		s.longestChain = r.LongestChain
		s.longestSeed = r.Seed
	}
}

// Played returns the number of playouts added so far.
func (s *Summary) Played() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.played
}

// Wins returns the number of wins of the team so far.
func (s *Summary) Wins(team state.Team) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wins[team]
}

// Unfinished returns the number of playouts without a winner, including the blocked ones.
func (s *Summary) Unfinished() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	unfinished := s.played
	for _, wins := range s.wins {
		unfinished -= wins
	}
	return unfinished
}

// String implements fmt.Stringer, with a one-line summary.
func (s *Summary) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var parts []string
	parts = append(parts, fmt.Sprintf("Played %d of %d", s.played, s.total))
	finished := 0
	for _, team := range state.Teams {
		parts = append(parts, fmt.Sprintf("%s: %d wins", team, s.wins[team]))
		finished += s.wins[team]
	}
	parts = append(parts, fmt.Sprintf("%d unfinished (%d blocked)", s.played-finished, s.blocked))
	if s.played > 0 {
		parts = append(parts, fmt.Sprintf("%.1f turns/game", float64(s.turns)/float64(s.played)))
	}
	if s.longestChain > 0 {
		parts = append(parts, fmt.Sprintf("longest chain %d jumps (seed=%d)", s.longestChain, s.longestSeed))
	}
	parts = append(parts, time.Since(s.start).Round(time.Millisecond).String())
	return strings.Join(parts, " / ")
}
