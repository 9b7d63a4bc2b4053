// Package http exposes the project tracker over JSON HTTP.
package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"papertrack/app/core/assistant"
	"papertrack/app/core/directive"
	"papertrack/app/core/project"
	"papertrack/app/core/schedule"
	"papertrack/app/pkg/logger"
)

type Server struct {
	port            int
	staticDir       string
	shutdownTimeout time.Duration

	store     *project.Store
	assistant *assistant.Assistant

	server      *http.Server
	startedUnix atomic.Int64

	now func() time.Time
}

func NewServer(port int, staticDir string, store *project.Store, asst *assistant.Assistant) *Server {
	return &Server{
		port:            port,
		staticDir:       staticDir,
		shutdownTimeout: 5 * time.Second,
		store:           store,
		assistant:       asst,
		now:             time.Now,
	}
}

func (s *Server) SetShutdownTimeout(timeout time.Duration) {
	if timeout <= 0 {
		return
	}
	s.shutdownTimeout = timeout
}

func (s *Server) Start(ctx context.Context) error {
	s.startedUnix.Store(time.Now().Unix())

	mux := http.NewServeMux()
	mux.HandleFunc("/api/data", s.handleData)
	mux.HandleFunc("/api/task/", s.handleTask)
	mux.HandleFunc("/api/auto-adjust", s.handleAutoAdjust)
	mux.HandleFunc("/api/chat", s.handleChat)
	mux.HandleFunc("/api/result", s.handleResult)
	mux.HandleFunc("/api/status", s.handleStatus)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	fs := http.FileServer(http.Dir(s.staticDir))
	mux.Handle("/", fs)

	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", s.port),
		Handler: mux,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		if err := s.server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http: shutdown error: %v", err)
		}
	}()

	logger.Info("http: listening on port %d", s.port)
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

type saveResponse struct {
	Status string `json:"status"`
}

type taskResponse struct {
	Status string        `json:"status"`
	Task   *project.Task `json:"task"`
}

type adjustResponse struct {
	Status      string         `json:"status"`
	CurrentWeek int            `json:"current_week"`
	Data        *project.State `json:"data"`
}

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Response    string              `json:"response"`
	TaskUpdates []directive.Outcome `json:"task_updates"`
	Error       bool                `json:"error"`
}

type resultResponse struct {
	Status string         `json:"status"`
	Result project.Result `json:"result"`
}

type statusResponse struct {
	Status      string `json:"status"`
	StartedAt   string `json:"started_at,omitempty"`
	UptimeSec   int64  `json:"uptime_sec"`
	CurrentWeek int    `json:"current_week"`
	TotalWeeks  int    `json:"total_weeks"`
	Tasks       int    `json:"tasks"`
	Completed   int    `json:"completed"`
}

func (s *Server) handleData(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		st, err := s.store.Load()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, st)
	case http.MethodPost:
		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "Bad request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()
		var st project.State
		if err := json.Unmarshal(body, &st); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if err := s.store.Save(&st); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, saveResponse{Status: "saved"})
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleTask(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPatch {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	taskID, ok := parseTaskPath(r.URL.Path)
	if !ok {
		http.NotFound(w, r)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()
	if !gjson.ValidBytes(body) || !gjson.ParseBytes(body).IsObject() {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	st, err := s.store.Load()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	task := st.FindTask(taskID)
	if task == nil {
		// Unknown ids leave the store untouched.
		writeJSON(w, http.StatusOK, taskResponse{Status: "updated", Task: nil})
		return
	}

	merged, err := mergeTaskFields(task, body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	*task = *merged

	if err := s.store.Save(st); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, taskResponse{Status: "updated", Task: task})
}

// mergeTaskFields overlays the patch fields onto the stored task. The
// id is immutable and ignored if supplied.
func mergeTaskFields(task *project.Task, patch []byte) (*project.Task, error) {
	current, err := json.Marshal(task)
	if err != nil {
		return nil, err
	}
	merged := string(current)
	var setErr error
	gjson.ParseBytes(patch).ForEach(func(key, value gjson.Result) bool {
		if key.String() == "id" {
			return true
		}
		merged, setErr = sjson.SetRaw(merged, key.String(), value.Raw)
		return setErr == nil
	})
	if setErr != nil {
		return nil, setErr
	}
	var out project.Task
	if err := json.Unmarshal([]byte(merged), &out); err != nil {
		return nil, fmt.Errorf("invalid task fields: %w", err)
	}
	out.ID = task.ID
	return &out, nil
}

func (s *Server) handleAutoAdjust(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	st, err := s.store.Load()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	week := schedule.AutoAdjust(s.now(), st, s.assistant.TotalWeeks())
	if err := s.store.Save(st); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, adjustResponse{Status: "adjusted", CurrentWeek: week, Data: st})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()
	var req chatRequest
	if err := json.Unmarshal(body, &req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	requestID := uuid.NewString()
	logger.Info("chat: request %s (%d chars)", requestID, len(req.Message))

	st, err := s.store.Load()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	result := s.assistant.Converse(r.Context(), st, req.Message, s.now())
	if !result.Err {
		if err := s.store.Save(st); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}
	logger.Info("chat: request %s done (error=%v, updates=%d)", requestID, result.Err, len(result.Updates))

	writeJSON(w, http.StatusOK, chatResponse{
		Response:    result.Response,
		TaskUpdates: result.Updates,
		Error:       result.Err,
	})
}

func (s *Server) handleResult(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()
	var payload project.Result
	if err := json.Unmarshal(body, &payload); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	st, err := s.store.Load()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	logged := st.AppendResult(payload, s.now())
	if err := s.store.Save(st); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, resultResponse{Status: "logged", Result: logged})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	st, err := s.store.Load()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := statusResponse{
		Status:     "ok",
		TotalWeeks: s.assistant.TotalWeeks(),
		Tasks:      len(st.Tasks),
		Completed:  st.CompletedCount(),
	}
	if start, err := st.StartDate(); err == nil {
		resp.CurrentWeek = schedule.CurrentWeek(s.now(), start, s.assistant.TotalWeeks())
	}
	if started := s.startedUnix.Load(); started > 0 {
		startAt := time.Unix(started, 0).UTC()
		resp.StartedAt = startAt.Format(time.RFC3339)
		resp.UptimeSec = int64(time.Since(startAt).Seconds())
		if resp.UptimeSec < 0 {
			resp.UptimeSec = 0
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func parseTaskPath(path string) (string, bool) {
	if !strings.HasPrefix(path, "/api/task/") {
		return "", false
	}
	id := strings.Trim(strings.TrimPrefix(path, "/api/task/"), "/")
	if id == "" || strings.Contains(id, "/") {
		return "", false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
