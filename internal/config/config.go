// Package config loads the daemon's rule configuration and listen settings
// from flags, environment variables, and an optional config file, via
// viper.
package config

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/MotionlessPeri/StupidChess/internal/referee"
)

// EnvPrefix namespaces every environment variable this binary reads, e.g.
// STUPIDCHESS_LISTEN_ADDR.
const EnvPrefix = "STUPIDCHESS"

// Config is the daemon's fully resolved configuration.
type Config struct {
	ListenAddr string
	LogLevel   string
	Rules      referee.RuleConfig
}

// BindFlags registers every config flag on fs and binds it into v, so
// flags, STUPIDCHESS_*-prefixed environment variables, and a loaded config
// file all resolve through the same keys with flags taking precedence.
func BindFlags(fs *pflag.FlagSet, v *viper.Viper) error {
	fs.String("listen-addr", ":7900", "address the gateway's transport listens on")
	fs.String("log-level", "info", "zerolog level: debug, info, warn, error")
	fs.Bool("reveal-on-first-capture", true, "reveal a piece's actual role the first time it captures")
	fs.Bool("reveal-captured-role", true, "reveal a captured piece's actual role in viewer projections")
	fs.Bool("freeze-if-illegal-after-reveal", true, "freeze a revealed piece whose actual role is illegal at its position")
	fs.Bool("allow-pass-when-no-legal-move", true, "allow a side with no legal move and not in check to pass")
	fs.Bool("double-pass-is-draw", true, "end the match as a draw on its second accepted pass")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	return v.BindPFlags(fs)
}

// Load resolves v's bound keys into a Config.
func Load(v *viper.Viper) (Config, error) {
	cfg := Config{
		ListenAddr: v.GetString("listen-addr"),
		LogLevel:   v.GetString("log-level"),
		Rules: referee.RuleConfig{
			RevealOnFirstCapture:       v.GetBool("reveal-on-first-capture"),
			RevealCapturedRole:         v.GetBool("reveal-captured-role"),
			FreezeIfIllegalAfterReveal: v.GetBool("freeze-if-illegal-after-reveal"),
			AllowPassWhenNoLegalMove:   v.GetBool("allow-pass-when-no-legal-move"),
			DoublePassIsDraw:           v.GetBool("double-pass-is-draw"),
		},
	}
	if cfg.ListenAddr == "" {
		return Config{}, errors.New("listen-addr must not be empty")
	}
	return cfg, nil
}
