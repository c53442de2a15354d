package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"newsvis-go-audit/internal/audit"
	"newsvis-go-audit/internal/config"
	"newsvis-go-audit/internal/models"
	"newsvis-go-audit/internal/report"
	"newsvis-go-audit/internal/urlx"
	"newsvis-go-audit/pkg/logger"
)

type auditReq struct {
	Site       string `json:"site"`
	SampleSize int    `json:"sample_size,omitempty"`
}

func main() {
	cfg := config.Default()
	if path := os.Getenv("NEWSVIS_CONFIG"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			panic(err)
		}
		cfg = loaded
	}
	if err := logger.Init(cfg.LogLevel); err != nil {
		panic(err)
	}

	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// POST /audit  { "site": "https://...", "sample_size": 10 }
	mux.HandleFunc("/audit", func(w http.ResponseWriter, r *http.Request) {
		res, ok := runAudit(w, r, cfg)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, res)
	})

	// POST /report  { "site": "https://..." } -> issues + full audit
	mux.HandleFunc("/report", func(w http.ResponseWriter, r *http.Request) {
		res, ok := runAudit(w, r, cfg)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, report.BuildPayload(res))
	})

	addr := ":8080"
	if v := os.Getenv("NEWSVIS_ADDR"); v != "" {
		addr = v
	}
	srv := &http.Server{
		Addr:         addr,
		Handler:      logRequest(mux),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Log.Info("server listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Error("server error", zap.Error(err))
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	logger.Log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
}

// runAudit decodes the request, runs the pipeline and handles the error
// responses shared by the audit and report endpoints.
func runAudit(w http.ResponseWriter, r *http.Request, base *config.Config) (*models.AuditResult, bool) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return nil, false
	}
	var req auditReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Site == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return nil, false
	}

	cfg := *base
	if req.SampleSize > 0 {
		cfg.SampleSize = req.SampleSize
	}

	ctx, cancel := context.WithTimeout(r.Context(), 100*time.Second)
	defer cancel()

	res, err := audit.New(&cfg).Run(ctx, req.Site)
	if err != nil {
		code := http.StatusBadGateway
		if errors.Is(err, urlx.ErrInvalidSite) {
			code = http.StatusBadRequest
		}
		writeJSON(w, code, map[string]string{"error": err.Error()})
		return nil, false
	}
	return res, true
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func logRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logger.Log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("took", time.Since(start)))
	})
}
