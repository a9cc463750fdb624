package wallet

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/proofmine/proofmine-console/pkg/logging"
)

const callbackPath = "/callback"

// callbackResult is what the auth page delivers back to the console
type callbackResult struct {
	token string
}

// CallbackServer is the loopback HTTP server that receives the session
// token from the provider's connect page. It binds an ephemeral port on
// 127.0.0.1 and accepts exactly one token.
type CallbackServer struct {
	logger     logging.Logger
	listener   net.Listener
	httpServer *http.Server
	state      string
	resultCh   chan callbackResult
	once       sync.Once
}

// NewCallbackServer creates a callback server bound to an ephemeral
// loopback port. allowedOrigin is the provider origin the browser page
// posts from.
func NewCallbackServer(logger logging.Logger, allowedOrigin, state string) (*CallbackServer, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}
	if state == "" {
		return nil, fmt.Errorf("state cannot be empty")
	}

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, fmt.Errorf("failed to bind callback listener: %w", err)
	}

	s := &CallbackServer{
		logger:   logger,
		listener: listener,
		state:    state,
		resultCh: make(chan callbackResult, 1),
	}

	router := mux.NewRouter()
	router.HandleFunc(callbackPath, s.handleCallback).Methods(http.MethodGet, http.MethodPost)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{allowedOrigin},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	})

	s.httpServer = &http.Server{
		Handler:           corsHandler.Handler(router),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s, nil
}

// Start begins serving in the background
func (s *CallbackServer) Start() {
	go func() {
		if err := s.httpServer.Serve(s.listener); err != nil && err != http.ErrServerClosed {
			s.logger.Errorf("Callback server failed: %v", err)
		}
	}()
}

// Shutdown stops the server
func (s *CallbackServer) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// RedirectURI is the loopback URL the connect page posts the token to
func (s *CallbackServer) RedirectURI() string {
	return fmt.Sprintf("http://127.0.0.1:%d%s", s.Port(), callbackPath)
}

// Port returns the bound port
func (s *CallbackServer) Port() int {
	return s.listener.Addr().(*net.TCPAddr).Port
}

// WaitForToken blocks until the connect page delivers a token or the
// context ends
func (s *CallbackServer) WaitForToken(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("no wallet connection received: %w", ctx.Err())
	case result := <-s.resultCh:
		return result.token, nil
	}
}

// handleCallback accepts the token via JSON body (browser POST) or query
// parameters (redirect flow)
func (s *CallbackServer) handleCallback(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	state := r.URL.Query().Get("state")

	if r.Method == http.MethodPost && token == "" {
		var payload struct {
			Token string `json:"token"`
			State string `json:"state"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, "malformed callback payload", http.StatusBadRequest)
			return
		}
		token = payload.Token
		state = payload.State
	}

	if state != s.state {
		s.logger.Warnf("Callback with mismatched state rejected")
		http.Error(w, "state mismatch", http.StatusForbidden)
		return
	}
	if token == "" {
		http.Error(w, "missing token", http.StatusBadRequest)
		return
	}

	delivered := false
	s.once.Do(func() {
		s.resultCh <- callbackResult{token: token}
		delivered = true
	})
	if !delivered {
		http.Error(w, "token already received", http.StatusConflict)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = fmt.Fprint(w, "<html><body><p>Wallet connected. You can close this tab and return to the terminal.</p></body></html>")
}
