package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/pthm/hxmdx"
	"github.com/pthm/hxmdx/internal/config"
	"github.com/pthm/hxmdx/internal/ctxlog"
	"github.com/pthm/hxmdx/internal/docs"
	"github.com/pthm/hxmdx/internal/overrides"
	"github.com/pthm/hxmdx/lib/encoding"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage(os.Stdout)
		os.Exit(1)
	}

	cmd := os.Args[1]
	switch cmd {
	case "render", "tree", "serve":
		if err := run(cmd, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	case "version":
		fmt.Printf("hxmdx version %s\n", version)
	case "help", "-h", "--help":
		printUsage(os.Stdout)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", cmd)
		printUsage(os.Stderr)
		os.Exit(1)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `hxmdx - render the documentation page through a component registry

Usage:
  hxmdx <command>

Commands:
  render    Write the page as HTML to stdout
  tree      Write the resolved element tree as msgpack to stdout
  serve     Serve the page over HTTP
  version   Print version
  help      Show this help

Environment:
  HXMDX_ADDR        Listen address for serve (default :8080)
  HXMDX_OVERRIDES   Comma-separated HCL files declaring the root registry
  HXMDX_LOG_LEVEL   debug, info, warn or error (default info)`)
}

func run(cmd string, stdout io.Writer) error {
	cfg, err := config.ParseEnv()
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Level()}))
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = ctxlog.WithLogger(ctx, logger)

	root, err := loadRoot(ctx, cfg.Overrides)
	if err != nil {
		return err
	}

	switch cmd {
	case "render":
		return docs.Page(root).Render(ctx, stdout)
	case "tree":
		return writeTree(ctx, stdout, root)
	case "serve":
		return serve(ctx, cfg.Addr, root)
	}
	return fmt.Errorf("unknown command: %s", cmd)
}

func loadRoot(ctx context.Context, paths []string) (hxmdx.Registry, error) {
	var files []string
	for _, p := range paths {
		if p = strings.TrimSpace(p); p != "" {
			files = append(files, p)
		}
	}
	if len(files) == 0 {
		return nil, nil
	}
	return overrides.Load(ctx, files...)
}

func writeTree(ctx context.Context, w io.Writer, root hxmdx.Registry) error {
	tree, err := encoding.Snapshot(hxmdx.WithComponents(ctx, root), docs.Content(nil))
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	data, err := encoding.Marshal(tree)
	if err != nil {
		return fmt.Errorf("encode tree: %w", err)
	}
	_, err = w.Write(data)
	return err
}

func newHandler(root hxmdx.Registry) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, docs.Slug, http.StatusFound)
	})

	mux.HandleFunc("GET "+docs.Slug, func(w http.ResponseWriter, r *http.Request) {
		page := docs.Page(root)
		if hxmdx.IsHTMX(r) && !hxmdx.IsBoosted(r) {
			page = docs.Fragment(root)
		}
		if err := hxmdx.Render(w, r, page); err != nil {
			ctxlog.FromContext(r.Context()).Error("Render failed.", "path", r.URL.Path, "error", err)
		}
	})

	mux.HandleFunc("GET "+docs.Slug+"/tree", treeHandler(func(ctx context.Context, w io.Writer) error {
		return writeTree(ctx, w, root)
	}))

	return mux
}

// treeHandler buffers the export so a failure never leaves a partial body.
func treeHandler(export func(ctx context.Context, w io.Writer) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var buf bytes.Buffer
		if err := export(r.Context(), &buf); err != nil {
			ctxlog.FromContext(r.Context()).Error("Tree export failed.", "path", r.URL.Path, "error", err)
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/vnd.msgpack")
		if _, err := w.Write(buf.Bytes()); err != nil {
			ctxlog.FromContext(r.Context()).Error("Tree write failed.", "path", r.URL.Path, "error", err)
		}
	}
}

func serve(ctx context.Context, addr string, root hxmdx.Registry) error {
	logger := ctxlog.FromContext(ctx)

	srv := &http.Server{
		Addr:              addr,
		Handler:           newHandler(root),
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Serving documentation.", "addr", addr, "path", docs.Slug)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down.")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
