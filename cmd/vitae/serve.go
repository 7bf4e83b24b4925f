package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vanderheijden86/vitae/pkg/config"
	"github.com/vanderheijden86/vitae/pkg/server"
)

func serveCmd() *cobra.Command {
	var addr string
	var title string

	cmd := &cobra.Command{
		Use:   "serve [cv.yaml]",
		Short: "Serve the rendered CV with live reload on file change",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			path := cfg.CVPath
			if len(args) > 0 {
				path = args[0]
			}
			if path == "" {
				return errors.New("no cv file: pass a path or set cv_path in the config")
			}

			if !cmd.Flags().Changed("addr") && cfg.Serve.Addr != "" {
				addr = cfg.Serve.Addr
			}

			opts := []server.Option{server.WithAddr(addr), server.WithTitle(title)}
			if cfg.Export.Width > 0 && cfg.Export.Height > 0 {
				opts = append(opts, server.WithViewport(cfg.Export.Width, cfg.Export.Height))
			}

			s, err := server.New(path, opts...)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			good.Printf("serving %s at http://%s\n", path, s.Addr())
			subtle.Println("edit the file and the page reloads; ctrl-c to stop")
			return s.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", server.DefaultAddr, "Listen address")
	cmd.Flags().StringVar(&title, "title", "Curriculum Vitae", "Page title")
	return cmd
}
