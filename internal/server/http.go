package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"wildroot-server/internal/engine"
	"wildroot-server/internal/version"
	"wildroot-server/pkg/logger"
)

type Server struct {
	Game *engine.GameService
	Port string
}

func New(game *engine.GameService, port string) *Server {
	return &Server{
		Game: game,
		Port: port,
	}
}

// Run запускает HTTP сервер
func (s *Server) Run() error {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(enableCORS)

	r.Get("/ws", s.handleWS)
	r.Get("/health", s.handleHealth)
	r.Get("/version", s.handleVersion)
	r.Get("/state", s.handleState)
	r.Post("/save", s.handleSave)

	logger.Log.Infof("🌿 Wildroot Server running on :%s", s.Port)
	return http.ListenAndServe(":"+s.Port, r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Разрешаем запросы с фронтенда
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		next.ServeHTTP(w, r)
	})
}

// handleWS обрабатывает подключение по WebSocket
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.Error("Upgrade error:", err)
		return
	}

	client := NewClient(s.Game, conn)

	go client.writePump()
	go client.readPump()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(version.Info())
}

// handleState отдает текущий снимок мира без подписки (отладка)
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.Game.BuildView(engine.Events{}))
}

// handleSave принудительно сохраняет партию
func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	s.Game.ProcessCommand(apiSaveCommand())
	w.WriteHeader(http.StatusAccepted)
	w.Write([]byte("save queued"))
}
