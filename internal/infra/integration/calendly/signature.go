package calendly

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Header que manda Calendly con cada webhook: "t=<unix-ts>,s=<hex-hmac>"
const SignatureHeader = "Calendly-Webhook-Signature"

// VerifySignature valida la autenticidad del webhook. El HMAC-SHA256 se
// calcula sobre "<timestamp>.<body crudo>": hay que verificar los bytes
// exactos recibidos, re-serializar el JSON cambiaría el whitespace y
// rompería la firma. Header malformado devuelve false, nunca panic.
func VerifySignature(body []byte, header, signingKey string) bool {
	parts := strings.Split(header, ",")
	if len(parts) != 2 {
		return false
	}

	var timestamp, signature string
	for _, part := range parts {
		kv := strings.SplitN(strings.TrimSpace(part), "=", 2)
		if len(kv) != 2 {
			return false
		}
		switch kv[0] {
		case "t":
			timestamp = kv[1]
		case "s":
			signature = kv[1]
		}
	}

	if timestamp == "" || signature == "" {
		return false
	}

	mac := hmac.New(sha256.New, []byte(signingKey))
	mac.Write([]byte(timestamp))
	mac.Write([]byte("."))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))

	// Comparación en tiempo constante: la firma no debe filtrarse por timing
	return hmac.Equal([]byte(expected), []byte(strings.ToLower(signature)))
}
