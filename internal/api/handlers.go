package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/reelpick/reelpick/internal/agent"
)

// sessionHeader carries the conversation id. The server echoes it on every
// response; a missing or unknown id starts a fresh conversation.
const sessionHeader = "X-Session-ID"

func PingHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong"))
}

func HomeHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ReelPick movie assistant. POST {\"input\": \"...\"} to /api/message.\n"))
}

type App struct {
	Sessions *agent.Manager
	Logger   *slog.Logger
}

type messageRequest struct {
	Input string `json:"input"`
}

type errorResponse struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}

func (app *App) MessageHandler(w http.ResponseWriter, r *http.Request) {
	var req messageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Status: "error", Error: "invalid JSON body"})
		return
	}

	id, ag := app.Sessions.GetOrCreate(r.Header.Get(sessionHeader))
	w.Header().Set(sessionHeader, id)

	resp, err := ag.Message(r.Context(), req.Input)
	if err != nil {
		if agent.IsUserError(err) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Status: "error", Error: err.Error()})
			return
		}
		app.logger().Error("message turn failed", "session", id, "err", err)
		writeJSON(w, http.StatusBadGateway, errorResponse{Status: "error", Error: "a backing service failed; please try again"})
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (app *App) logger() *slog.Logger {
	if app.Logger != nil {
		return app.Logger
	}
	return slog.Default()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Default().Error("encoding response", "err", err)
	}
}
