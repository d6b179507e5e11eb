package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"food-delivery/internal/notifier"
	"food-delivery/internal/order"
	"food-delivery/internal/restaurant"
	"food-delivery/internal/shipper"
	"food-delivery/internal/user"
	"food-delivery/internal/xpkg/config"
	"food-delivery/internal/xpkg/logger"
	"food-delivery/internal/xpkg/server"
)

// runFunc starts one service and blocks until ctx is done.
type runFunc func(ctx context.Context, cfg *config.Config, mylog logger.Logger) error

var services = []struct {
	name  string
	short string
	run   runFunc
}{
	{"order-service", "Order API with enrichment from the peer services", order.Execute},
	{"user-service", "User and address API", user.Execute},
	{"restaurant-service", "Restaurant and menu API", restaurant.Execute},
	{"shipper-service", "Shipper availability API", shipper.Execute},
	{"order-notifier", "Prints a notification for every published order event", notifier.Execute},
}

func newRootCmd(run map[string]runFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "food-delivery",
		Short:         "Food delivery services",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	for _, svc := range services {
		fn := svc.run
		if override, ok := run[svc.name]; ok {
			fn = override
		}
		cmd.AddCommand(newServiceCmd(svc.name, svc.short, fn))
	}
	return cmd
}

func newServiceCmd(name, short string, run runFunc) *cobra.Command {
	var (
		port       int
		configPath string
	)

	cmd := &cobra.Command{
		Use:   name,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath, name)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			// The flag wins over file and env only when given explicitly.
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}

			mylog, err := logger.New(cfg.LogLevel)
			if err != nil {
				return fmt.Errorf("create logger: %w", err)
			}

			ctx, stop := server.NotifyContext(cmd.Context())
			defer stop()

			return run(ctx, cfg, mylog)
		},
	}
	cmd.Flags().IntVar(&port, "port", 8000, "HTTP port to listen on")
	cmd.Flags().StringVar(&configPath, "config-path", "", "optional YAML config file")
	return cmd
}

func Execute(ctx context.Context) error {
	return newRootCmd(nil).ExecuteContext(ctx)
}
