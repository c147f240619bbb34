package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gabbers81/realtor-dario-velez-sub000/internal/entity"
	"github.com/gabbers81/realtor-dario-velez-sub000/internal/infra/http/middleware"
	"github.com/gabbers81/realtor-dario-velez-sub000/internal/usecase"
)

type ContactHandler struct {
	CreateLeadUC *usecase.CreateLeadUseCase
	LeadRepo     entity.LeadRepositoryInterface
	rateLimiter  *RateLimiter
}

func NewContactHandler(uc *usecase.CreateLeadUseCase, repo entity.LeadRepositoryInterface) *ContactHandler {
	return &ContactHandler{
		CreateLeadUC: uc,
		LeadRepo:     repo,
		rateLimiter:  NewRateLimiter(10, time.Minute), // 10 req/min por IP
	}
}

type fieldError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// HandleCreate: POST /api/contacts
func (h *ContactHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	clientIP := getClientIP(r)
	if !h.rateLimiter.Allow(clientIP) {
		writeJSON(w, http.StatusTooManyRequests, map[string]string{
			"message": "Demasiadas solicitudes, intenta de nuevo en un minuto",
		})
		return
	}

	var input usecase.CreateLeadInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "JSON inválido"})
		return
	}

	lead, err := h.CreateLeadUC.Execute(r.Context(), input)
	if err != nil {
		var validationErrs usecase.ValidationErrors
		if errors.As(err, &validationErrs) {
			items := make([]fieldError, len(validationErrs))
			for i, v := range validationErrs {
				items[i] = fieldError{Path: v.Field, Message: v.Message}
			}
			writeJSON(w, http.StatusBadRequest, map[string]any{
				"message": "Datos de contacto inválidos",
				"errors":  items,
			})
			return
		}

		log.Printf("❌ Error guardando contacto: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"message": "No se pudo guardar el contacto",
			"error":   err.Error(),
		})
		return
	}

	middleware.RecordLeadCaptured()
	writeJSON(w, http.StatusCreated, lead)
}

// HandleList: GET /api/contacts (uso administrativo)
func (h *ContactHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	leads, err := h.LeadRepo.FindAll(r.Context())
	if err != nil {
		log.Printf("❌ Error listando contactos: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"message": "No se pudieron leer los contactos",
			"error":   err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, leads)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return xff
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	return r.RemoteAddr
}

// RateLimiter: ventana fija por IP, en memoria. El sitio corre en una sola
// instancia, no hace falta un limitador distribuido.
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    int
	window   time.Duration
}

type visitor struct {
	count     int
	lastReset time.Time
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
		limit:    limit,
		window:   window,
	}

	go rl.cleanup()
	return rl
}

func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, exists := rl.visitors[ip]
	now := time.Now()

	if !exists {
		rl.visitors[ip] = &visitor{count: 1, lastReset: now}
		return true
	}

	if now.Sub(v.lastReset) > rl.window {
		v.count = 1
		v.lastReset = now
		return true
	}

	v.count++
	return v.count <= rl.limit
}

func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		now := time.Now()
		for ip, v := range rl.visitors {
			if now.Sub(v.lastReset) > rl.window*2 {
				delete(rl.visitors, ip)
			}
		}
		rl.mu.Unlock()
	}
}
