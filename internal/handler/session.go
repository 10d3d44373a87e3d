package handler

import (
	"net/http"

	"github.com/google/uuid"
)

// sessionCookie identifies a browser session. The id is opaque to the domain
// layer; the Cart Store only ever sees the string.
const sessionCookie = "catdist_session"

// sessionID returns the caller's session id, or "" when no cookie is set.
// Read-only endpoints use this: a missing session simply means an empty cart.
func sessionID(r *http.Request) string {
	c, err := r.Cookie(sessionCookie)
	if err != nil {
		return ""
	}
	return c.Value
}

// ensureSession returns the caller's session id, issuing a new one on its
// first cart mutation.
func (h *Handler) ensureSession(w http.ResponseWriter, r *http.Request) string {
	if id := sessionID(r); id != "" {
		return id
	}
	id := uuid.New().String()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}
