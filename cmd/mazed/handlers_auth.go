package main

import (
	"errors"
	"net/http"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// bcrypt hashes at most 72 bytes of input, so longer passwords are rejected
// up front instead of being truncated.
const maxPasswordBytes = 72

// formCredentials pulls the url-encoded username/password pair out of the
// request body. It writes the 400 itself and reports ok=false when either
// field is missing.
func formCredentials(w http.ResponseWriter, r *http.Request) (username, password string, ok bool) {
	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return "", "", false
	}
	username = r.FormValue("username")
	password = r.FormValue("password")
	if username == "" || password == "" {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("body must contain url-encoded username and password"))
		return "", "", false
	}
	return username, password, true
}

// issuePlayerCookies signs a fresh token for the player and sets the cookie
// pair on the response.
func issuePlayerCookies(w http.ResponseWriter, player *Player) {
	token, err := createPlayerToken(player.PlayerId, player.Username)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		log.WithFields(logrus.Fields{
			"username":  player.Username,
			"player_id": player.PlayerId,
		}).Error("unable to sign jwt token: ", err)
		return
	}
	setPlayerCookies(w, token)
}

func handleRegister(w http.ResponseWriter, r *http.Request) {
	username, password, ok := formCredentials(w, r)
	if !ok {
		return
	}
	if len(password) > maxPasswordBytes {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("password must not exceed 72 bytes"))
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		log.WithField("username", username).Error("unable to hash password: ", err)
		return
	}
	player, err := pg.CreatePlayer(r.Context(), username, hash)
	var pgErr *pgconn.PgError
	switch {
	case errors.As(err, &pgErr) && pgerrcode.IsIntegrityConstraintViolation(pgErr.Code):
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte("username taken"))
		return
	case err != nil:
		w.WriteHeader(http.StatusInternalServerError)
		log.WithField("username", username).Error("unable to insert player: ", err)
		return
	}
	issuePlayerCookies(w, player)
}

func handleLogin(w http.ResponseWriter, r *http.Request) {
	username, password, ok := formCredentials(w, r)
	if !ok {
		return
	}
	player, err := pg.GetPlayer(r.Context(), username)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("username unknown"))
		return
	case err != nil:
		w.WriteHeader(http.StatusInternalServerError)
		log.WithField("username", username).Error("unable to look up player: ", err)
		return
	}
	if err := bcrypt.CompareHashAndPassword(
		player.PasswordHash, []byte(password),
	); err != nil {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	issuePlayerCookies(w, player)
}

func handleLogout(w http.ResponseWriter, r *http.Request) {
	clearPlayerCookies(w)
}

func handleStatus(w http.ResponseWriter, r *http.Request) {
	payload := map[string]any{"status": "ok"}
	if claims, ok := r.Context().Value(ctxPlayerClaims).(*PlayerClaims); ok {
		payload["username"] = claims.Username
	}
	if err := sendJSON(w, payload); err != nil {
		log.Error(err)
	}
}
