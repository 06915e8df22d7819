// agent runs the cooperative grid-world planner against a connected
// game server.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/pflow-xyz/gridrunner/config"
)

func main() {
	cfg, err := config.Parse(flag.NewFlagSet("agent", flag.ExitOnError), os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger := log.New(os.Stdout, "", log.LstdFlags)
	logger.Printf("agent: configured level=%d seed=%d two-player=%v planner-depth=%d planner-timeout-ms=%d observer=%s",
		cfg.Level, cfg.Seed, cfg.TwoPlayer, cfg.PlannerDepthCap, cfg.PlannerTimeoutMS, cfg.Observer)

	// Connecting driver.New to a live game server means supplying a
	// transport.Transport implementation; network transport is outside
	// this module's scope (see transport.Transport's doc comment), so this
	// entrypoint stops after configuration is resolved. Embedders wire
	// driver.New(cfg, theirTransport, driver.WithObserver(...)) and call
	// Run from here.
	fmt.Fprintln(os.Stderr, "agent: no transport.Transport wired; see transport package doc comment")
	os.Exit(2)
}
