package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandler signs in the single back office account.
type AuthHandler struct {
	username      string
	passwordHash  string
	jwtSecret     string
	tokenDuration time.Duration
}

func NewAuthHandler(username, passwordHash, jwtSecret string, tokenDuration time.Duration) *AuthHandler {
	return &AuthHandler{username: username, passwordHash: passwordHash, jwtSecret: jwtSecret, tokenDuration: tokenDuration}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string `json:"token"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request")
		return
	}
	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Missing fields")
		return
	}

	if req.Username != h.username || bcrypt.CompareHashAndPassword([]byte(h.passwordHash), []byte(req.Password)) != nil {
		logger.Warn("login rejected", slog.String("username", req.Username))
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := IssueToken(h.jwtSecret, h.username, h.tokenDuration)
	if err != nil {
		logger.Error("sign token", slog.Any("err", err))
		writeError(w, http.StatusInternalServerError, "Error signing token")
		return
	}
	writeData(w, http.StatusOK, "Login successful", authResponse{Token: token})
}

// IssueToken signs an admin token for subject valid for d.
func IssueToken(secret, subject string, d time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  subject,
		"role": "admin",
		"exp":  time.Now().Add(d).Unix(),
	})
	return token.SignedString([]byte(secret))
}
