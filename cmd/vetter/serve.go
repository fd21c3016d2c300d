package main

import (
	"net"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"vetter/internal/browser"
	"vetter/internal/server"
)

func newServeCmd() *cobra.Command {
	var addrFlag string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			addr := listenAddr(cfg.Server.Addr, addrFlag)

			scfg := server.DefaultConfig()
			scfg.MaxBodyBytes = cfg.Server.MaxBodyBytes
			scfg.ProbeTimeout = cfg.Probe.Timeout
			scfg.Logger = logger
			if cfg.Probe.Enabled {
				prober := browser.New(browser.WithLogger(logger), browser.WithTimeout(cfg.Probe.Timeout))
				defer prober.Close()
				scfg.Prober = prober
			}

			errLog, err := zap.NewStdLogAt(logger.Named("http"), zap.ErrorLevel)
			if err != nil {
				return err
			}
			srv := &http.Server{
				Addr:              addr,
				Handler:           server.New(scfg),
				ReadHeaderTimeout: 5 * time.Second,
				ReadTimeout:       30 * time.Second,
				WriteTimeout:      2 * time.Minute,
				IdleTimeout:       60 * time.Second,
				ErrorLog:          errLog,
				ConnState: func(c net.Conn, s http.ConnState) {
					logger.Debug("conn", zap.String("state", s.String()), zap.String("remote", c.RemoteAddr().String()))
				},
			}

			ln, err := net.Listen("tcp", addr)
			if err != nil {
				return err
			}
			logger.Info("listening", zap.String("addr", addr), zap.Bool("probe", cfg.Probe.Enabled))
			return srv.Serve(ln)
		},
	}
	cmd.Flags().StringVar(&addrFlag, "addr", "", "listen address, e.g. :81 or 0.0.0.0:8081")
	return cmd
}

// listenAddr picks the configured address, then the --addr flag, then $PORT.
func listenAddr(configured, flag string) string {
	addr := configured
	if flag != "" {
		addr = flag
	}
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}
	return addr
}
