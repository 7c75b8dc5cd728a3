package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/gnana997/widgetspec/pkg/api"
	mcpserver "github.com/gnana997/widgetspec/pkg/mcp"
	"github.com/gnana997/widgetspec/pkg/mcplog"
	"github.com/gnana997/widgetspec/pkg/syntax"
)

type serveOptions struct {
	watch   bool
	logFile string
}

func newServeCmd(env *environment) *cobra.Command {
	opts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the MCP tools on stdin/stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(env, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.watch, "watch", false, "Reload the catalog file when it changes")
	cmd.Flags().StringVar(&opts.logFile, "log-file", "", "Append one JSONL line per tool call to this file")

	return cmd
}

func runServe(env *environment, opts *serveOptions) error {
	qs, err := env.loadCatalog()
	if err != nil {
		return err
	}

	checker, err := syntax.NewChecker(syntax.Options{Logger: env.logger})
	if err != nil {
		return err
	}
	defer checker.Close()

	callLog, err := mcplog.Open(pick(opts.logFile, env.cfg.LogFile, ""))
	if err != nil {
		return err
	}
	defer callLog.Close()

	srv := mcpserver.NewServer(qs, checker, callLog)

	if opts.watch {
		stop, err := env.startWatcher(srv.SetQuery)
		if err != nil {
			return err
		}
		defer stop()
	}

	env.logger.Info("Serving MCP on stdio",
		"catalog", qs.Catalog.Name,
		"version", qs.Catalog.Version,
		"widgets", len(qs.Catalog.Widgets))
	return srv.ServeStdio()
}

type httpOptions struct {
	addr    string
	baseURL string
	watch   bool
}

func newHTTPCmd(env *environment) *cobra.Command {
	opts := &httpOptions{}

	cmd := &cobra.Command{
		Use:   "http",
		Short: "Serve the catalog over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHTTP(cmd.Context(), env, opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "Listen address (default "+defaultHTTPAddr+")")
	cmd.Flags().StringVar(&opts.baseURL, "base-url", "", "Public site URL used in sitemap.xml")
	cmd.Flags().BoolVar(&opts.watch, "watch", false, "Reload the catalog file when it changes")

	return cmd
}

func runHTTP(ctx context.Context, env *environment, opts *httpOptions) error {
	qs, err := env.loadCatalog()
	if err != nil {
		return err
	}

	handler := api.NewServer(qs, api.Options{
		BaseURL: pick(opts.baseURL, env.cfg.BaseURL, ""),
		Logger:  env.logger,
	})

	if opts.watch {
		stop, err := env.startWatcher(handler.SetQuery)
		if err != nil {
			return err
		}
		defer stop()
	}

	srv := &http.Server{
		Addr:              pick(opts.addr, env.cfg.HTTPAddr, defaultHTTPAddr),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		env.logger.Info("Serving HTTP", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	env.logger.Info("HTTP server stopped")
	return nil
}
