// Package profilers sets up profiling for the long-running tools, like cmd/playouts.
//
// Linking it installs the profiler flags: -prof for the HTTP pprof server, -cpu_profile and
// -mem_profile for profile files.
package profilers

import (
	"context"
	"flag"
	"fmt"
	"k8s.io/klog/v2"
	"net/http"
	_ "net/http/pprof"
	"os"
	"runtime"
	"runtime/pprof"
)

var (
	flagProfiler   = flag.Int("prof", -1, "If set, runs the HTTP profiler at the given port.")
	flagCPUProfile = flag.String("cpu_profile", "", "write cpu profile to `file`")
	flagMemProfile = flag.String("mem_profile", "", "write heap profile to `file` at exit")
	profilerAddr   string

	// globalCtx is set on the call to Setup.
	globalCtx context.Context
)

// Setup starts the HTTP (flag -prof) and CPU profilers (flag -cpu_profile), if they were configured.
// You should follow with a deferred call to OnQuit.
func Setup(ctx context.Context) {
	globalCtx = ctx
	if *flagProfiler >= 0 {
		setupHTTPProfiler()
	}
	if *flagCPUProfile != "" {
		startCPUProfile()
	}
}

// OnQuit should be called before the exit of the main() function, typically as a deferred call
// just after Setup.
func OnQuit() {
	if *flagCPUProfile != "" {
		pprof.StopCPUProfile()
		klog.V(1).Infof("CPU profile saved to %q", *flagCPUProfile)
	}
	if *flagMemProfile != "" {
		writeHeapProfile()
	}
	if *flagProfiler >= 0 {
		httpProfilerOnQuit()
	}
}

// startCPUProfile creates the file pointed by *flagCPUProfile and starts the CPU profiling there.
func startCPUProfile() {
	f, err := os.Create(*flagCPUProfile)
	if err != nil {
		klog.Fatalf("could not create CPU profile: %+v", err)
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		klog.Fatalf("could not start CPU profile: %+v", err)
	}
}

func writeHeapProfile() {
	f, err := os.Create(*flagMemProfile)
	if err != nil {
		klog.Errorf("could not create heap profile: %+v", err)
		return
	}
	defer func() { _ = f.Close() }()
	runtime.GC() // Up-to-date statistics.
	if err := pprof.WriteHeapProfile(f); err != nil {
		klog.Errorf("could not write heap profile: %+v", err)
		return
	}
	klog.V(1).Infof("Heap profile saved to %q", *flagMemProfile)
}

// setupHTTPProfiler starts the profiler server in the background.
func setupHTTPProfiler() {
	profilerAddr = fmt.Sprintf("localhost:%d", *flagProfiler)
	fmt.Printf("Starting profiler on %s/debug/pprof\n", profilerAddr)
	fmt.Printf("- You can access it with: $ go tool pprof %s/debug/pprof/heap\n", profilerAddr)
	fmt.Printf("- Program will be kept alive on end, you will have to interrupt it (Ctrl+C) to exit\n")
	go func() {
		klog.Fatal(http.ListenAndServe(profilerAddr, nil))
	}()
}

// httpProfilerOnQuit keeps the program alive, so the profile can still be read, until it
// is interrupted.
func httpProfilerOnQuit() {
	// Don't freeze on panic.
	if err := recover(); err != nil {
		panic(err)
	}
	if globalCtx.Err() != nil {
		// Already interrupted.
		return
	}

	// Garbage collect, to see if there is anything leaking.
	for range 10 {
		runtime.GC()
	}
	fmt.Printf("- Program finished: kept alive with profiler opened at %s/debug/pprof\n", profilerAddr)
	fmt.Printf("- Interrupt (Ctrl+C) to exit\n")
	<-globalCtx.Done()
	fmt.Printf("... exiting ...\n")
}
