package controllers

import (
	"net/http"

	"github.com/audirhq/audir-backend/api/responses"
	"github.com/audirhq/audir-backend/api/validators"
	"github.com/audirhq/audir-backend/internal/auth"
	"github.com/audirhq/audir-backend/pkg/logger"
)

// Login authenticates credentials and issues a bearer token.
func Login(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input auth.LoginInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		resp, err := svc.Login(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, resp)
	}
}
