package main

import (
	"encoding/json"
	"net/http"
)

// sendJSON marshals v before touching the response, so an encoding failure
// can still turn into a 500 instead of a truncated body.
func sendJSON(w http.ResponseWriter, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return err
	}
	w.Header().Set("Content-Type", "application/json")
	_, err = w.Write(payload)
	return err
}
