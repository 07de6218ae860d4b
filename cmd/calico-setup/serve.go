package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/kalambet/calico/internal/api"
	"github.com/kalambet/calico/internal/storage"
)

const defaultAddr = "127.0.0.1:7300"

const shutdownTimeout = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the configuration over HTTP (and MCP on stdio)",
	Long: `Serve the configuration over a local REST API.

With --mcp the same session is also exposed as an MCP server on stdin and
stdout, so an assistant and a browser can edit it together. Changes stay in
memory until POST /save or the save tool.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		token, _ := cmd.Flags().GetString("token")
		withMCP, _ := cmd.Flags().GetBool("mcp")

		if v := os.Getenv("CALICO_ADDR"); v != "" && !cmd.Flags().Changed("addr") {
			addr = v
		}
		ln, err := net.Listen("tcp", addr)
		if err != nil {
			return fmt.Errorf("listening: %w", err)
		}
		return runServer(cmd.Context(), ln, serveOptions{
			token: envDefault(token, "CALICO_API_TOKEN"),
			mcp:   withMCP,
		})
	},
}

type serveOptions struct {
	token string
	mcp   bool
}

// runServer serves the API on ln until ctx is cancelled or a server fails.
func runServer(ctx context.Context, ln net.Listener, opts serveOptions) error {
	s := openSession()
	store, err := openStore(s.Paths)
	if err != nil {
		ln.Close()
		return err
	}
	defer store.Close()

	ed := api.NewEditor(s, store)
	if opts.token == "" {
		slog.Warn("no API token set, every route is open", "addr", ln.Addr().String())
	}
	srv := &http.Server{
		Handler:           api.NewHandler(api.Deps{Editor: ed, Token: opts.token}),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("calico-setup listening", "addr", ln.Addr().String(), "dir", s.Paths.Dir)
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	if opts.mcp {
		g.Go(func() error {
			stdio := server.NewStdioServer(api.NewMCPServer(ed, version))
			slog.Info("MCP server started (stdio transport)")
			if err := stdio.Listen(gctx, os.Stdin, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("MCP stdio server error: %w", err)
			}
			return nil
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the configuration as an MCP server on stdio",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s := openSession()
		var store *storage.Store
		if st, err := openStore(s.Paths); err != nil {
			printWarning("profiles disabled: %v", err)
		} else {
			store = st
			defer store.Close()
		}

		stdio := server.NewStdioServer(api.NewMCPServer(api.NewEditor(s, store), version))
		err := stdio.Listen(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().String("addr", defaultAddr, "listen address ($CALICO_ADDR)")
	serveCmd.Flags().String("token", "", "bearer token required on every route but /health (default $CALICO_API_TOKEN)")
	serveCmd.Flags().Bool("mcp", false, "also serve MCP on stdin/stdout")
}
