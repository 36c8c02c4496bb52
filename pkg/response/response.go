// Package response writes the JSON envelope every storefront endpoint
// answers with.
package response

import (
	"encoding/json"
	"net/http"
)

type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// JSON marshals env before touching w, so a marshal failure still yields a
// clean 500.
func JSON(w http.ResponseWriter, status int, env Envelope) error {
	body, err := json.Marshal(env)
	if err != nil {
		Error(w, http.StatusInternalServerError, "Internal server error")
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(body)
	return err
}

func Data(w http.ResponseWriter, status int, data any) error {
	return JSON(w, status, Envelope{Success: true, Data: data})
}

func Message(w http.ResponseWriter, status int, msg string) error {
	return JSON(w, status, Envelope{Success: true, Message: msg})
}

func Error(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(Envelope{Error: msg})
}
