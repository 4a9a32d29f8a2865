package auth

import (
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/Troubladore/silent-auction-sub001/pkg/httpx"
	"github.com/Troubladore/silent-auction-sub001/pkg/logger"
	pkgvalidator "github.com/Troubladore/silent-auction-sub001/pkg/validator"
)

// LoginRequest is the request body for POST /api/login.
type LoginRequest struct {
	Username string `json:"username" validate:"required,max=255" example:"admin"`
	Password string `json:"password" validate:"required,max=72"  example:"auction"`
} // @name LoginRequest

// LoginResponse is returned on a successful login.
type LoginResponse struct {
	Success  bool   `json:"success"  example:"true"`
	Operator string `json:"operator" example:"admin"`
} // @name LoginResponse

// Handlers serves login and logout against a session store.
type Handlers struct {
	store sessions.Store
	creds *Credentials
	log   logger.Logger
}

// NewHandlers returns login/logout handlers.
func NewHandlers(store sessions.Store, creds *Credentials, log logger.Logger) *Handlers {
	return &Handlers{store: store, creds: creds, log: log}
}

// Login starts an operator session.
//
//	@Summary		Log in
//	@Description	Starts a session for the shared bid-entry operator account
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		LoginRequest	true	"Operator credentials"
//	@Success		200		{object}	LoginResponse
//	@Failure		400		{object}	httpx.ErrorResponse
//	@Failure		401		{object}	httpx.ErrorResponse
//	@Router			/login [post]
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[LoginRequest](w, r)
	if !ok {
		return
	}

	if err := h.creds.Verify(req.Username, req.Password); err != nil {
		h.log.WarnContext(r.Context(), "login rejected", "username", req.Username)
		httpx.JSONError(w, http.StatusUnauthorized, err.Error())
		return
	}

	session, err := h.store.Get(r, sessionName)
	if err != nil {
		// A stale or tampered cookie still yields a usable fresh session.
		h.log.WarnContext(r.Context(), "discarding unreadable session", "error", err)
	}
	if session == nil {
		httpx.JSONError(w, http.StatusInternalServerError, "Failed to start session")
		return
	}
	session.Values[sessionOperatorKey] = req.Username
	if err := session.Save(r, w); err != nil {
		h.log.ErrorContext(r.Context(), "save session", "error", err)
		httpx.JSONError(w, http.StatusInternalServerError, "Failed to start session")
		return
	}

	h.log.InfoContext(r.Context(), "operator logged in", "username", req.Username)
	httpx.JSON(w, http.StatusOK, LoginResponse{Success: true, Operator: req.Username})
}

// Logout ends the current session. Logging out without a session succeeds.
//
//	@Summary	Log out
//	@Tags		auth
//	@Produce	json
//	@Success	200	{object}	map[string]bool
//	@Router		/logout [post]
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	session, err := h.store.Get(r, sessionName)
	if err == nil {
		session.Options.MaxAge = -1
		if err := session.Save(r, w); err != nil {
			h.log.ErrorContext(r.Context(), "delete session", "error", err)
		}
	}
	httpx.JSON(w, http.StatusOK, map[string]bool{"success": true})
}
