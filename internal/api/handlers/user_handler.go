package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/isdelr/blogit-be/internal/auth"
	"github.com/isdelr/blogit-be/internal/services"
	"github.com/rs/zerolog/log"
)

// UserHandler handles HTTP requests for registration and authentication.
type UserHandler struct {
	service  services.UserServiceProvider
	tokens   *auth.TokenService
	eventSvc services.EventServiceProvider
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service services.UserServiceProvider, tokens *auth.TokenService, eventSvc services.EventServiceProvider) *UserHandler {
	return &UserHandler{service: service, tokens: tokens, eventSvc: eventSvc}
}

// RegisterPayload defines the structure for registration requests.
type RegisterPayload struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthPayload defines the structure for login requests.
type AuthPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles new user registration.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload RegisterPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeEnvelope(w, http.StatusBadRequest, false, "Invalid request body")
		return
	}

	user, err := h.service.CreateUser(payload.Name, payload.Email, payload.Password)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			writeEnvelope(w, http.StatusBadRequest, false, "All fields are required")
			return
		}
		log.Error().Err(err).Str("email", payload.Email).Msg("Failed to register user")
		writeEnvelope(w, http.StatusInternalServerError, false, "Failed to register user")
		return
	}

	if err := h.eventSvc.CreateEvent("user.register", "info", "New author registered", user.Email, nil); err != nil {
		log.Error().Err(err).Msg("Failed to record register event")
	}

	writeEnvelope(w, http.StatusOK, true, "User registered successfully")
}

// Login handles user authentication and token issuance. Bad credentials
// produce a 200 with success=false, matching the client contract.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload AuthPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeEnvelope(w, http.StatusBadRequest, false, "Invalid request body")
		return
	}

	user, err := h.service.AuthenticateUser(payload.Email, payload.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			log.Warn().Str("email", payload.Email).Msg("Failed authentication attempt")
			writeEnvelope(w, http.StatusOK, false, "Invalid email or password")
			return
		}
		log.Error().Err(err).Str("email", payload.Email).Msg("Login failed")
		writeEnvelope(w, http.StatusInternalServerError, false, "Login failed")
		return
	}

	token, err := h.tokens.Issue(user)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to issue token")
		writeEnvelope(w, http.StatusInternalServerError, false, "Failed to issue token")
		return
	}

	if err := h.eventSvc.CreateEvent("user.login", "info", "Author logged in", user.Email, nil); err != nil {
		log.Error().Err(err).Msg("Failed to record login event")
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Login successful",
		"token":   token,
	})
}

// ValidateUser resolves the bearer token presented by the client back to
// its user record. A valid signature whose subject no longer exists is
// still a failure.
func (h *UserHandler) ValidateUser(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		log.Error().Msg("Could not retrieve user claims from context")
		writeEnvelope(w, http.StatusInternalServerError, false, "Could not retrieve user from token")
		return
	}

	user, err := h.service.GetUserByID(claims.UserID)
	if err != nil {
		log.Warn().Err(err).Str("user_id", claims.UserID).Msg("User from token not found")
		writeEnvelope(w, http.StatusUnauthorized, false, "Authentication failed")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"data":    user,
	})
}

// writeEnvelope writes the {success, message} response shape used by the
// user routes.
func writeEnvelope(w http.ResponseWriter, status int, success bool, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": success,
		"message": message,
	})
}
