package viewer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	coreviewer "github.com/kilianp07/fleetsoc/core/viewer"
	"github.com/kilianp07/fleetsoc/infra/logger"
)

// DefaultAddr is where the HTTP viewer listens when unset.
const DefaultAddr = "127.0.0.1:8050"

// HTTPConfig configures the HTTP viewer.
type HTTPConfig struct {
	Addr string `json:"addr"`
}

// HTTPViewer serves the page until its context is cancelled.
type HTTPViewer struct {
	addr     string
	handlers map[string]http.Handler
	log      logger.Logger
	// onListen is called with the bound address once the server accepts
	// connections.
	onListen func(addr string)
}

// NewHTTPViewer returns a viewer listening on cfg.Addr.
func NewHTTPViewer(cfg HTTPConfig, log logger.Logger) *HTTPViewer {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	return &HTTPViewer{addr: cfg.Addr, handlers: map[string]http.Handler{}, log: log}
}

// Handle serves an extra handler next to the page, e.g. /metrics.
func (v *HTTPViewer) Handle(pattern string, h http.Handler) {
	v.handlers[pattern] = h
}

// Show renders page once and serves it at / until ctx is done.
func (v *HTTPViewer) Show(ctx context.Context, page coreviewer.Page) error {
	var buf bytes.Buffer
	if err := page.Render(&buf); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	body := buf.Bytes()

	mux := http.NewServeMux()
	for p, h := range v.handlers {
		mux.Handle(p, h)
	}
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(body)
	})

	ln, err := net.Listen("tcp", v.addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", v.addr, err)
	}
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
		case <-done:
			return
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			v.log.Errorf("viewer shutdown: %v", err)
		}
	}()

	v.log.Infof("figure available at http://%s/ (press Ctrl-C to exit)", ln.Addr())
	if v.onListen != nil {
		v.onListen(ln.Addr().String())
	}
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
