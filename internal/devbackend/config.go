package devbackend

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/nearbyconnect/internal/cryptox"
	"github.com/dmitrijs2005/nearbyconnect/internal/flagx"
)

// Config holds runtime settings for the backend double.
type Config struct {
	ListenAddr          string
	SecretKey           string
	TokenValidity       time.Duration
	ActiveWindow        time.Duration
	MessageListLimit    int
	ShutdownGracePeriod time.Duration
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.ListenAddr = ":8001"
	c.SecretKey = "nearby-connect-secret-key-12345"
	c.TokenValidity = 24 * time.Hour
	c.ActiveWindow = 30 * time.Minute
	c.MessageListLimit = 100
	c.ShutdownGracePeriod = 5 * time.Second
}

// LoadConfig applies defaults and then the -a (listen address), -s (JWT
// secret) and -t (token validity, hours) flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFlags(cfg)
	return cfg
}

func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-s", "-t"})

	fs := flag.NewFlagSet("devbackend", flag.ContinueOnError)
	fs.StringVar(&cfg.ListenAddr, "a", cfg.ListenAddr, "listen address")
	fs.StringVar(&cfg.SecretKey, "s", cfg.SecretKey, "JWT secret key")
	validity := fs.Int("t", int(cfg.TokenValidity.Hours()), "token validity (in hours)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.TokenValidity = time.Duration(*validity) * time.Hour

	// -s "" asks for a throwaway secret
	if cfg.SecretKey == "" {
		secret, err := cryptox.RandomHex(32)
		if err != nil {
			panic(err)
		}
		cfg.SecretKey = secret
	}
}
