// Command meshbbs-demo wires the BBS and TinyMUSH processors to a
// simulated radio for manual testing without real mesh hardware: each
// line on stdin is read as "node_id text" and treated as if it had
// arrived over the air; rendered responses are written to stdout
// prefixed with their destination node.
//
// Usage:
//
//	go run ./cmd/meshbbs-demo -config bbs.yaml
//	!ab12cd34 LOOK
//	!ab12cd34 HELP
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/smartyhall/meshbbs/pkg/bbs"
	"github.com/smartyhall/meshbbs/pkg/bbsconfig"
	"github.com/smartyhall/meshbbs/pkg/bbslog"
	"github.com/smartyhall/meshbbs/pkg/command"
	"github.com/smartyhall/meshbbs/pkg/metrics"
	"github.com/smartyhall/meshbbs/pkg/mush"
	"github.com/smartyhall/meshbbs/pkg/session"
	"github.com/smartyhall/meshbbs/pkg/transport"
	"github.com/smartyhall/meshbbs/pkg/world"
)

func main() {
	configPath := flag.String("config", "", "path to a bbsconfig YAML file (defaults apply if unset or missing)")
	flag.Parse()

	logger := bbslog.New(nil)

	cfg := bbsconfig.Default()
	if *configPath != "" {
		loaded, err := bbsconfig.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "meshbbs-demo: loading config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	bbsStore, err := bbs.New(cfg.Storage.DataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "meshbbs-demo: opening BBS store: %v\n", err)
		os.Exit(1)
	}

	var mushProc *mush.Processor
	if cfg.Games.TinymushEnabled {
		worldStore := world.New(cfg.Games.TinymushDBPath)
		if err := worldStore.Seed(time.Now().UTC()); err != nil {
			fmt.Fprintf(os.Stderr, "meshbbs-demo: seeding TinyMUSH world: %v\n", err)
			os.Exit(1)
		}
		mushProc = mush.NewProcessor(mush.Deps{Store: worldStore, Metrics: metrics.NewRegistry(), Logger: logger})
	}

	cmdProc := command.NewProcessor(command.Deps{
		Store:   bbsStore,
		Config:  &cfg,
		Metrics: metrics.NewRegistry(),
		Logger:  logger,
		Uptime:  time.Now().UTC(),
	})

	sessions := session.NewManager()
	inbound := transport.NewStdioInbound(os.Stdin)
	outbound := transport.NewStdioOutbound(os.Stdout)
	router := transport.NewRouter(inbound, outbound, sessions, cmdProc, mushProc, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	runDone := make(chan error, 1)
	go func() { runDone <- router.Run() }()

	select {
	case <-ctx.Done():
		inbound.Close()
		<-router.Done()
	case err := <-runDone:
		if err != nil {
			fmt.Fprintf(os.Stderr, "meshbbs-demo: router: %v\n", err)
			os.Exit(1)
		}
	}
}
