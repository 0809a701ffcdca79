package utils

import (
	"encoding/json"
	"net/http"
)

// RespondJSON serializa payload como JSON com o status informado
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

// RespondErro devolve um erro estruturado no formato {"erro": mensagem}
func RespondErro(w http.ResponseWriter, status int, mensagem string) {
	RespondJSON(w, status, map[string]string{"erro": mensagem})
}
