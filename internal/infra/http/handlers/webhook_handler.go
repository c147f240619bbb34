package handlers

import (
	"io"
	"log"
	"net/http"

	"github.com/gabbers81/realtor-dario-velez-sub000/internal/infra/http/middleware"
	"github.com/gabbers81/realtor-dario-velez-sub000/internal/infra/integration/calendly"
	"github.com/gabbers81/realtor-dario-velez-sub000/internal/usecase"
)

type CalendlyWebhookHandler struct {
	Reconciler *usecase.ReconcileAppointmentUseCase
	SigningKey string
}

func NewCalendlyWebhookHandler(reconciler *usecase.ReconcileAppointmentUseCase, signingKey string) *CalendlyWebhookHandler {
	return &CalendlyWebhookHandler{
		Reconciler: reconciler,
		SigningKey: signingKey,
	}
}

// Handle: POST /api/webhooks/calendly
//
// Una vez autenticada la llamada, la respuesta es siempre 200: Calendly
// reintenta indefinidamente ante cualquier fallo y cada reintento llega
// firmado de nuevo. Los problemas internos quedan solo en los logs.
func (h *CalendlyWebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	if h.SigningKey == "" {
		// Error de configuración del deployment, no de la petición
		log.Printf("❌ CALENDLY_WEBHOOK_SIGNING_KEY no está configurada")
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"message": "webhook signing key no configurada",
		})
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "no se pudo leer el body"})
		return
	}

	signature := r.Header.Get(calendly.SignatureHeader)
	if signature == "" || !calendly.VerifySignature(body, signature, h.SigningKey) {
		middleware.RecordWebhookEvent("unknown", "invalid_signature")
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "invalid_signature"})
		return
	}

	event, err := calendly.ParseEvent(body)
	if err != nil {
		// Firmado pero no parseable: se reconoce recibido y se deja en logs
		log.Printf("⚠️ Webhook Calendly firmado pero con JSON inválido: %v", err)
		middleware.RecordWebhookEvent("unknown", "bad_json")
		writeJSON(w, http.StatusOK, map[string]bool{"received": true})
		return
	}

	outcome := h.Reconciler.Execute(r.Context(), calendly.ToSchedulingEvent(event, body))
	middleware.RecordWebhookEvent(event.Event, string(outcome))

	writeJSON(w, http.StatusOK, map[string]bool{"received": true})
}
