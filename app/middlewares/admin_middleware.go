package middlewares

import (
	"log"
	"net/http"
	"strings"

	"github.com/Rakhulsr/go-catalog-admin/app/helpers"
	"github.com/Rakhulsr/go-catalog-admin/app/models"
	"github.com/unrolled/render"
)

// AdminAuthMiddleware expects AuthMiddleware to run first. HTML requests are redirected to the
// login page, AJAX requests get a 401 JSON body.
func AdminAuthMiddleware(rnd *render.Render) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := r.Context().Value(helpers.ContextKeyUser).(*models.User)
			if ok && user != nil && user.Role == models.RoleAdmin {
				next.ServeHTTP(w, r)
				return
			}

			if ok && user != nil {
				log.Printf("AdminAuthMiddleware: user %d (%s) attempted to access admin panel without admin role", user.ID, user.Email)
			}

			if isAJAX(r) {
				rnd.JSON(w, http.StatusUnauthorized, map[string]interface{}{
					"status":  false,
					"message": "Unauthenticated.",
				})
				return
			}
			http.Redirect(w, r, "/admin/login", http.StatusFound)
		})
	}
}

func isAJAX(r *http.Request) bool {
	return r.Header.Get("X-Requested-With") == "XMLHttpRequest" ||
		strings.Contains(r.Header.Get("Accept"), "application/json")
}
