package handlers

import (
	"crypto/subtle"
	"net/http"

	"github.com/kozaktomas/face-gallery/internal/config"
	"github.com/kozaktomas/face-gallery/internal/web/middleware"
)

// AuthHandler handles admin login and logout.
type AuthHandler struct {
	admin          config.AdminConfig
	sessionManager *middleware.SessionManager
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(admin config.AdminConfig, sm *middleware.SessionManager) *AuthHandler {
	return &AuthHandler{
		admin:          admin,
		sessionManager: sm,
	}
}

// checkCredentials compares submitted credentials against the configured
// admin account. An empty configured password disables admin login entirely.
func (h *AuthHandler) checkCredentials(username, password string) bool {
	if h.admin.Password == "" {
		return false
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(h.admin.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(h.admin.Password)) == 1
	return userOK && passOK
}

// LoginPage serves the login form.
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	renderPage(w, http.StatusOK, "admin_login.html", pageData{})
}

// Login handles a login form submission. On success the admin gets a signed
// session cookie and lands on the dashboard.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondError(w, http.StatusBadRequest, "invalid form data")
		return
	}
	username := r.FormValue("username")
	password := r.FormValue("password")

	if !h.checkCredentials(username, password) {
		if wantsHTML(r) {
			renderPage(w, http.StatusUnauthorized, "admin_login.html", pageData{Error: "Invalid credentials"})
			return
		}
		respondError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	session, err := h.sessionManager.CreateSession(username)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to create session")
		return
	}
	h.sessionManager.SetSessionCookie(w, session)

	if wantsHTML(r) {
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"session_id": session.ID})
}

// Logout clears the admin session.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if session := h.sessionManager.GetSessionFromRequest(r); session != nil {
		h.sessionManager.DeleteSession(session.ID)
	}
	h.sessionManager.ClearSessionCookie(w)

	if wantsHTML(r) {
		http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}
