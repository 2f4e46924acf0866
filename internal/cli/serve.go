package cli

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"netconfig/internal/handler"
	"netconfig/internal/hub"
	"netconfig/internal/watcher"
)

// NewServeCommand creates the serve command
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the network API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, rootOpts, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "HTTP listen address (overrides config)")
	return cmd
}

func runServe(ctx context.Context, opts *RootOptions, addr string) error {
	log.Println("Starting netconfigd...")

	a, err := openApp(ctx, opts)
	if err != nil {
		return err
	}
	defer a.Close()

	if addr == "" {
		addr = a.cfg.Server.Addr
	}
	log.Printf("Config: %s", a.cfg.Summary())

	// Networks file, when configured, is the source of saved networks
	if file := a.cfg.Networks.File; file != "" {
		if _, err := a.svc.ImportFile(ctx, file, a.cfg.NetworksFormat()); err != nil {
			return err
		}
		if a.cfg.Networks.Watch {
			w := watcher.New(file, a.cfg.NetworksFormat(), a.svc).WithDebounce(a.cfg.WatchDebounce())
			go func() {
				if err := w.Watch(ctx); err != nil && !errors.Is(err, context.Canceled) {
					log.Printf("Networks watcher stopped: %v", err)
				}
			}()
		}
	}

	sseHub := hub.New()
	sseHub.Subscribe(a.eventBus)
	go sseHub.Run(ctx)

	mux := http.NewServeMux()
	handler.NewNetworkHandler(a.svc).Routes(mux)
	mux.Handle("GET /events", sseHub)

	server := &http.Server{
		Addr: addr,
		Handler: handler.Chain(mux,
			handler.Recover,
			handler.CORS,
			handler.Logger,
		),
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server listening on %s", addr)
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server stopped")
	return nil
}
