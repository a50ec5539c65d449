package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pawhome/service/internal/identity"
	"github.com/pawhome/service/internal/response"
	"github.com/pawhome/service/internal/user"
)

// Handler holds HTTP handlers for auth endpoints.
type Handler struct {
	svc *Service
}

// NewHandler creates a new auth Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type registerRequest struct {
	Email     string `json:"email"     example:"a@x.com"`
	Password  string `json:"password"  example:"secret"`
	FirstName string `json:"firstName" example:"Ana"`
}

type loginRequest struct {
	Email    string `json:"email"    example:"a@x.com"`
	Password string `json:"password" example:"secret"`
}

type registerData struct {
	UID   string `json:"uid"   example:"e7eedc79-0707-4fe4-8734-526b7ef13a7b"`
	Email string `json:"email" example:"a@x.com"`
	Name  string `json:"name"  example:"Ana"`
}

type loginData struct {
	User  *user.User `json:"user"`
	Token string     `json:"token" example:"eyJhbGci..."`
}

// Register godoc
//
//	@Summary		Register
//	@Description	Create an identity-provider account and the matching user record.
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		registerRequest	true	"Registration details"
//	@Success		200		{object}	response.Envelope{data=registerData}
//	@Failure		500		{object}	response.Envelope
//	@Router			/register [post]
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Validation Error", "invalid request body")
		return
	}

	u, err := h.svc.Register(r.Context(), req.Email, req.Password, req.FirstName)
	if err != nil {
		response.InternalError(w, "Error creating user", err)
		return
	}

	response.OK(w, "user created successfully", registerData{
		UID:   u.UID,
		Email: u.Email,
		Name:  u.FirstName,
	})
}

// Login godoc
//
//	@Summary		Login
//	@Description	Verify email and password, returning the user record and a bearer token. A verified identity with no user record answers 403 and the orphaned account is removed.
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		loginRequest	true	"Credentials"
//	@Success		200		{object}	response.Envelope{data=loginData}
//	@Failure		400		{object}	response.Envelope
//	@Failure		401		{object}	response.Envelope
//	@Failure		403		{object}	response.Envelope
//	@Failure		500		{object}	response.Envelope
//	@Router			/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Validation Error", "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		response.BadRequest(w, "Validation Error", "Email and password are required")
		return
	}

	result, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if errors.Is(err, identity.ErrInvalidCredentials) {
		response.Unauthorized(w, "Authentication Error", "Invalid email or password")
		return
	}
	if errors.Is(err, ErrNotRegistered) {
		response.Forbidden(w, "Authorization Error", "User is not authorized to access this resource")
		return
	}
	if err != nil {
		response.InternalError(w, "Login Error", err)
		return
	}

	response.OK(w, "Login successful", loginData{
		User:  result.User,
		Token: result.Token,
	})
}
