package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/teachme/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the lesson API over HTTP",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		d, err := buildDeps(ctx, cmd, false)
		if err != nil {
			return err
		}
		defer d.Close()

		addr := d.cfg.Server.Addr
		if a, _ := cmd.Flags().GetString("addr"); a != "" {
			addr = a
		}

		h := server.NewHandler(d.lessons, d.planner, d.assessor, d.extractor, d.cfg.Server.UploadMaxBytes)
		srv := server.New(addr, server.NewRouter(h, d.log, d.cfg.Server.RequestTimeout), d.log)

		d.log.Info("starting server", zap.String("addr", addr), zap.String("llm_provider", d.cfg.LLM.Provider))
		return srv.Run(ctx)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides SERVER_ADDR)")
}
