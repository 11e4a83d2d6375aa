// playouts plays many random games in parallel, checking after every move that the rules engine
// keeps its invariants, and prints a summary of the results.
package main

import (
	"context"
	"flag"
	"fmt"
	"github.com/LanMao8866/hexjump/internal/playouts"
	"github.com/LanMao8866/hexjump/internal/profilers"
	"github.com/LanMao8866/hexjump/internal/state"
	"github.com/LanMao8866/hexjump/internal/ui/cli"
	"github.com/LanMao8866/hexjump/internal/ui/terminal"
	"github.com/gomlx/exceptions"
	"github.com/janpfeifer/must"
	"golang.org/x/sync/errgroup"
	"k8s.io/klog/v2"
	"runtime"
	"sync"
	"time"
)

var (
	flagNumGames    = flag.Int("num_games", 1000, "Number of random games to play.")
	flagParallelism = flag.Int("parallelism", 0, "If > 0 ignore GOMAXPROCS and play "+
		"these many games simultaneously.")
	flagConfig = flag.String("config", "",
		"Playouts configuration, comma-separated \"key=value\" pairs. Keys: max_moves (turns before a game is "+
			"abandoned), stop_prob (probability of stopping a jump sequence that could continue), "+
			"invalid_prob (probability of also trying an invalid move before each move).")
	flagSeed = flag.Uint64("seed", 0, "Seed of the first game, game i uses seed+i. "+
		"Use it with --num_games=1 to replay a game.")
	flagPrintFinal = flag.Bool("print_final", false, "Print the final board of each game. "+
		"Very verbose, and you probably want to set --parallelism=1.")
)

// Globals
var (
	// globalCtx used everywhere. It is cancelled when the program is about to exit either by
	// an interrupt (ctrl+C) or by reaching the end.
	globalCtx = context.Background()
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()
	if *flagNumGames <= 0 {
		exceptions.Panicf("invalid --num_games=%d, it must be > 0", *flagNumGames)
	}
	cfg := must.M1(playouts.NewConfig(*flagConfig))
	klog.V(1).Infof("Playouts configuration: %+v", cfg)

	// Capture Control+C
	var globalCancel func()
	globalCtx, globalCancel = context.WithCancel(context.Background())
	terminal.SafeInterrupt(globalCancel, 5*time.Second)
	defer globalCancel()

	// Profilers: HTTP profiler server and CPU profile.
	profilers.Setup(globalCtx)
	defer profilers.OnQuit()

	must.M(runPlayouts(globalCtx, cfg))
}

func runPlayouts(ctx context.Context, cfg playouts.Config) error {
	summary := playouts.NewSummary(*flagNumGames)
	var wg errgroup.Group
	wg.SetLimit(getParallelism())
	fmt.Printf("\r%s\033[0K", summary)

	for gameIdx := range *flagNumGames {
		seed := *flagSeed + uint64(gameIdx)
		wg.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			board, result, err := playouts.Play(ctx, cfg, seed)
			if err != nil {
				return err
			}
			if ctx.Err() != nil {
				// Interrupted games are not counted.
				return nil
			}
			klog.V(1).Infof("Game %d: %s", gameIdx, result)
			summary.Add(result)
			if *flagPrintFinal {
				printFinal(board, result)
			}
			fmt.Printf("\r%s\033[0K", summary)
			return nil
		})
	}
	err := wg.Wait()
	fmt.Printf("\r%s\033[0K\n", summary)
	if ctx.Err() != nil {
		fmt.Printf("Interrupted: %s\n", ctx.Err())
		return nil
	}
	return err
}

var (
	printUI = cli.New(true, false)
	muPrint sync.Mutex
)

// printFinal prints the result and the final board of a game.
func printFinal(board *state.Board, result playouts.Result) {
	muPrint.Lock()
	defer muPrint.Unlock()
	fmt.Printf("\n\n%s\n", result)
	printUI.PrintBoard(board)
	printUI.PrintWinner(board)
}

// getParallelism returns the parallelism.
func getParallelism() (parallelism int) {
	parallelism = runtime.GOMAXPROCS(0)
	if *flagParallelism > 0 {
		parallelism = *flagParallelism
	}
	return
}
