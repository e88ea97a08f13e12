// Command stupidchessd wires rule configuration, the match service, and the
// protocol gateway together. Wire transport (accepting connections, framing
// envelopes off a socket) is out of scope for this core, per spec; this
// binary constructs the core and exits on SIGINT/SIGTERM, giving an
// embedding transport a concrete wiring example to follow.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/MotionlessPeri/StupidChess/internal/config"
	"github.com/MotionlessPeri/StupidChess/internal/gateway"
	"github.com/MotionlessPeri/StupidChess/internal/service"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:           "stupidchessd",
		Short:         "Concealed-role Xiangqi match core daemon",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(v)
		},
	}

	if err := config.BindFlags(cmd.Flags(), v); err != nil {
		panic(err)
	}

	return cmd
}

func run(v *viper.Viper) error {
	cfg, err := config.Load(v)
	if err != nil {
		return errors.Wrap(err, "load config")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return errors.Wrap(err, "parse log-level")
	}
	log := zerolog.New(zerolog.NewConsoleWriter()).Level(level).With().Timestamp().Logger()

	svc := service.New(cfg.Rules)
	sink := &gateway.InMemorySink{}
	_ = gateway.NewAdapter(svc, sink, log)

	log.Info().Str("listenAddr", cfg.ListenAddr).Msg("match core wired, awaiting transport integration")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	log.Info().Msg("shutting down")
	return nil
}
