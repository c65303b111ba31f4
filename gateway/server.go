package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"quick-translate/translator"

	"go.uber.org/zap"
)

const (
	maxBatchSize    = 100
	maxRequestBytes = 1 << 20
	shutdownTimeout = 5 * time.Second
)

type TranslateRequest struct {
	Text string `json:"text"`
	From string `json:"from,omitzero"`
	To   string `json:"to,omitzero"`
}

type BatchRequest struct {
	Texts   []string `json:"texts"`
	From    string   `json:"from,omitzero"`
	To      string   `json:"to,omitzero"`
	Threads int      `json:"threads,omitzero"`
}

type BatchItem struct {
	Index   int    `json:"index"`
	Source  string `json:"source"`
	Content string `json:"content,omitzero"`
	Error   string `json:"error,omitzero"`
}

type TranslateResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitzero"`
	Content string      `json:"content,omitzero"`
	From    string      `json:"from,omitzero"`
	To      string      `json:"to,omitzero"`
	Results []BatchItem `json:"results,omitzero"`
}

// Server exposes a translator.Client over HTTP.
type Server struct {
	client *translator.Client
	from   string
	to     string
	logger *zap.Logger
}

func NewServer(client *translator.Client, from, to string, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		client: client,
		from:   from,
		to:     to,
		logger: logger,
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/translate", s.handleTranslate)
	mux.HandleFunc("/api/translate/batch", s.handleBatch)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	return mux
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("gateway listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down gateway: %w", err)
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) handleTranslate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req TranslateRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, TranslateResponse{Success: false, Message: "Invalid request"})
		return
	}

	from, to, err := s.languages(req.From, req.To)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, TranslateResponse{Success: false, Message: err.Error()})
		return
	}

	if req.Text == "" {
		writeJSON(w, http.StatusOK, TranslateResponse{Success: true, Content: "", From: from, To: to})
		return
	}

	translated, err := s.client.Translate(r.Context(), req.Text, from, to)
	if err != nil {
		s.logger.Warn("gateway translation failed", zap.Error(err))
		writeJSON(w, statusFor(err), TranslateResponse{
			Success: false,
			Message: "Translation failed: " + err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, TranslateResponse{Success: true, Content: translated, From: from, To: to})
}

func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req BatchRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, TranslateResponse{Success: false, Message: "Invalid request"})
		return
	}
	switch {
	case len(req.Texts) == 0:
		writeJSON(w, http.StatusBadRequest, TranslateResponse{Success: false, Message: "No texts provided"})
		return
	case len(req.Texts) > maxBatchSize:
		writeJSON(w, http.StatusBadRequest, TranslateResponse{
			Success: false,
			Message: fmt.Sprintf("Too many texts: %d (max %d)", len(req.Texts), maxBatchSize),
		})
		return
	}

	from, to, err := s.languages(req.From, req.To)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, TranslateResponse{Success: false, Message: err.Error()})
		return
	}

	var results []translator.Result
	if req.Threads > 0 {
		results = s.client.TranslateAllWithWorkers(r.Context(), req.Texts, from, to, req.Threads)
	} else {
		results = s.client.TranslateAll(r.Context(), req.Texts, from, to)
	}

	items := make([]BatchItem, len(results))
	failed := 0
	for i, res := range results {
		items[i] = BatchItem{Index: res.Index, Source: req.Texts[res.Index], Content: res.Text}
		if res.Err != nil {
			items[i].Error = res.Err.Error()
			failed++
		}
	}

	resp := TranslateResponse{Success: true, From: from, To: to, Results: items}
	if failed > 0 {
		resp.Message = fmt.Sprintf("%d of %d translations failed", failed, len(items))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) languages(from, to string) (string, string, error) {
	if from == "" {
		from = s.from
	}
	if to == "" {
		to = s.to
	}
	from, err := translator.ParseSourceLanguage(from)
	if err != nil {
		return "", "", err
	}
	to, err = translator.ParseTargetLanguage(to)
	if err != nil {
		return "", "", err
	}
	return from, to, nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, translator.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
