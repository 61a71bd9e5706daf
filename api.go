// ABOUTME: HTTP server exposing the dyndns2 update endpoint plus health and metrics.
// ABOUTME: The update route is a catch-all so path-embedded client dialects keep working.

package dyndns53

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// maxBodyBytes caps how much of a request body is read before normalization.
const maxBodyBytes = 1 << 20

// APIServer serves the dyndns2 update endpoint.
type APIServer struct {
	updater *Updater
	listen  string
	tls     *tlsSettings
	ln      net.Listener
	server  *http.Server
}

// NewAPIServer creates an API server (not yet started).
func NewAPIServer(updater *Updater, listen string, tls *tlsSettings) *APIServer {
	return &APIServer{updater: updater, listen: listen, tls: tls}
}

// handler builds the http.Handler with routing. Every path and method not
// claimed by health or metrics is protocol traffic: dyndns2 clients disagree
// about paths (/nic/update, /update/<hostname>, ...) and method errors must
// carry the protocol body, so discrimination happens in the normalizer.
func (a *APIServer) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", a.handleHealthz)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("/", a.handleUpdate)

	return mux
}

// Start begins serving in a background goroutine.
func (a *APIServer) Start() error {
	ln, err := net.Listen("tcp", a.listen)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", a.listen, err)
	}

	if a.tls != nil {
		cfg, err := buildTLSConfig(a.tls)
		if err != nil {
			ln.Close()
			return fmt.Errorf("configuring TLS: %w", err)
		}
		ln = tls.NewListener(ln, cfg)
	}
	a.ln = ln

	a.server = &http.Server{
		Handler:           a.handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := a.server.Serve(ln); err != nil && err != http.ErrServerClosed {
			log.Errorf("API server error: %v", err)
		}
	}()

	return nil
}

// Addr reports the bound listen address. Before Start it returns the
// configured address, which may name port 0.
func (a *APIServer) Addr() string {
	if a.ln == nil {
		return a.listen
	}
	return a.ln.Addr().String()
}

// Stop gracefully shuts down the server.
func (a *APIServer) Stop() {
	if a.server == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = a.server.Shutdown(ctx)
}

func (a *APIServer) handleUpdate(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		log.Warnf("reading request body: %v", err)
	}

	resp := a.updater.Handle(r.Context(), Request{
		Method:   r.Method,
		Path:     r.URL.Path,
		Query:    r.URL.Query(),
		Header:   r.Header,
		Body:     body,
		SourceIP: sourceIP(r),
	})

	writePlain(w, resp)
}

func (a *APIServer) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	if !a.updater.Ready() {
		writePlain(w, Response{Code: http.StatusServiceUnavailable, Body: "unavailable"})
		return
	}
	writePlain(w, Response{Code: http.StatusOK, Body: "ok"})
}

// sourceIP recovers the client address: the first X-Forwarded-For entry when
// a proxy added one, otherwise the connection's remote host.
func sourceIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func writePlain(w http.ResponseWriter, resp Response) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(resp.Code)
	_, _ = io.WriteString(w, resp.Body)
}
