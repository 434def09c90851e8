package main

import "net/http"

func buildHandler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /v1/register", handleRegister)
	mux.HandleFunc("POST /v1/login", handleLogin)
	mux.HandleFunc("POST /v1/logout", handleLogout)

	mux.HandleFunc("GET /v1/status", handleStatus)
	mux.HandleFunc("GET /v1/records", handleGetRecords)
	mux.HandleFunc("GET /v1/myrecords", handleGetOwnRecords)

	mux.HandleFunc("POST /v1/maze", handleNewMaze)
	mux.HandleFunc("GET /v1/maze/{id}", handleGetMaze)
	mux.HandleFunc("POST /v1/maze/{id}/solve", handleSolve)
	mux.HandleFunc("POST /v1/maze/{id}/regenerate", handleRegenerate)
	mux.HandleFunc("POST /v1/maze/{id}/reset", handleReset)
	mux.HandleFunc("DELETE /v1/maze/{id}", handleDeleteMaze)
	mux.HandleFunc("GET /v1/maze/{id}/image", handleMazeImage)

	mux.HandleFunc("/v1/maze/{id}/watch", handleWatchWs)

	handler := useMiddleware(mux,
		corsMiddleware,
		authMiddleware,
		loggingMiddleware,
	)

	return handler
}
