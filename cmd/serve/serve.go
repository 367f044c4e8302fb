package serve

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"

	"minisocial/internal/config"
	transporthttp "minisocial/internal/transport/http"
)

const portFlag = "port"

var serveFlags = map[string]cobraflags.Flag{
	portFlag: &cobraflags.StringFlag{
		Name:  portFlag,
		Value: "",
		Usage: "Port to listen on (overrides SERVER_PORT)",
	},
}

func NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Long: `Run the HTTP server with the JSON API under /api and the HTML pages at /.

The schema is created on start-up if it is missing. Configuration comes from the
environment or a .env file; see DATABASE_URL, JWT_SECRET and SERVER_PORT.`,
		RunE: serveCommand,
	}
	cobraflags.RegisterMap(cmd, serveFlags)
	return cmd
}

func serveCommand(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if port := serveFlags[portFlag].GetString(); port != "" {
		cfg.ServerPort = port
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return transporthttp.Run(ctx, cfg)
}
