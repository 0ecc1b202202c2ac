package middleware

import (
	"net/http"

	"github.com/bytedance/sonic"
)

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(map[string]string{"error": msg})
}
