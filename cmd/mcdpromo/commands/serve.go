package commands

import (
	"log/slog"
	"net/http"
	"path/filepath"

	"github.com/spf13/cobra"

	"mcdpromo-backend/lib/serviceutil"
	"mcdpromo-backend/lib/telemetry"
)

var servePort *int

func init() {
	servePort = serveCmd.Flags().IntP("port", "p", 8218, "Port to listen on.")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve [--port <port>]",
	Short: "Serves the generated report page over http.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		config := readConfig()

		telemetry.InstrumentPerfStats(ctx)

		dir := filepath.Dir(config.PagePath)
		slog.Info("serving report", "dir", dir, "port", *servePort)

		mux := http.NewServeMux()
		mux.Handle("/", http.FileServer(http.Dir(dir)))
		go serviceutil.StartHttpServer(*servePort, mux)

		<-ctx.Done()
	},
}
