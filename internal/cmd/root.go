// Package cmd implements the storefrontctl commands.
package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/MikeMC777/stylehub-storefront/internal/config"
	"github.com/MikeMC777/stylehub-storefront/internal/services"
	"github.com/MikeMC777/stylehub-storefront/internal/session"
)

var (
	v         = viper.New()
	sessionID string
	verbose   bool

	// openServices is replaced in tests.
	openServices = func(ctx context.Context) (*services.ServiceOptions, error) {
		return services.NewServiceOptions(ctx, config.LoadWith(v))
	}
)

var rootCmd = &cobra.Command{
	Use:   "storefrontctl",
	Short: "Browse the StyleHub catalog and manage a cart from the terminal",
	Long: `storefrontctl talks to the configured StyleHub data source (static dataset,
records API or postgres) and keeps cart and wishlist state in the local state store,
under the session given by --session.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if !verbose {
			log.SetOutput(io.Discard)
		}
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("data-source", config.SourceStatic, "catalog source: static, records or postgres")
	pf.String("state-path", "./data/state", "leveldb directory for cart and wishlist state")
	pf.String("records-baseurl", "http://localhost:8081", "records API base URL")
	pf.Duration("mock-latency", 300*time.Millisecond, "simulated latency of the static dataset")
	pf.StringVar(&sessionID, "session", "cli", "session id owning the cart and wishlist")
	pf.BoolVarP(&verbose, "verbose", "v", false, "print service logs")

	for flag, key := range map[string]string{
		"data-source":     "data_source",
		"state-path":      "state_path",
		"records-baseurl": "records_baseurl",
		"mock-latency":    "mock_latency",
	} {
		_ = v.BindPFlag(key, pf.Lookup(flag))
	}
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// withSession opens the services and the --session session around fn.
func withSession(cmd *cobra.Command, fn func(opts *services.ServiceOptions, s *session.Session) error) error {
	opts, err := openServices(cmd.Context())
	if err != nil {
		return err
	}
	defer opts.Close()

	s, err := opts.Sessions.Get(sessionID)
	if err != nil {
		return err
	}
	return fn(opts, s)
}
