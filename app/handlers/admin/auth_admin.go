package admin

import (
	"errors"
	"log"
	"net/http"

	"github.com/Rakhulsr/go-catalog-admin/app/helpers"
	"github.com/Rakhulsr/go-catalog-admin/app/services"
)

const (
	loginURL     = "/admin/login"
	dashboardURL = "/admin/"
)

type LoginPageData struct {
	BasePageData
	Email string
}

func (h *AdminHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if _, ok := r.Context().Value(helpers.ContextKeyUserID).(uint); ok {
		http.Redirect(w, r, dashboardURL, http.StatusSeeOther)
		return
	}

	data := &LoginPageData{BasePageData: h.baseData(w, r, "Login")}
	h.render.HTML(w, http.StatusOK, "auth/login", data)
}

func (h *AdminHandler) LoginPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		log.Printf("LoginPost: error parsing form: %v", err)
		h.redirectWithFlash(w, r, loginURL, "error", "Something went wrong. Please try again.")
		return
	}

	email := formValue(r, "email")
	user, err := h.authSvc.Authenticate(r.Context(), email, r.PostFormValue("password"))
	if err != nil {
		if !errors.Is(err, services.ErrInvalidCredentials) {
			log.Printf("LoginPost: error authenticating %s: %v", email, err)
		}
		h.redirectWithFlash(w, r, loginURL, "error", "Either email or password is incorrect.")
		return
	}

	if err := h.sessionStore.SetUserID(w, r, user.ID); err != nil {
		log.Printf("LoginPost: error setting user session: %v", err)
		h.redirectWithFlash(w, r, loginURL, "error", "Failed to start session.")
		return
	}

	log.Printf("LoginPost: admin %s logged in", user.Email)
	http.Redirect(w, r, dashboardURL, http.StatusSeeOther)
}

func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessionStore.ClearUserID(w, r); err != nil {
		log.Printf("Logout: error clearing user session: %v", err)
	}
	h.redirectWithFlash(w, r, loginURL, "success", "You have been logged out.")
}
