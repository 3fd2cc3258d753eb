package controllers

import (
	"net/http"
	"strconv"

	"github.com/audirhq/audir-backend/api/middleware"
	"github.com/audirhq/audir-backend/pkg/db/models"
	pkgerrors "github.com/audirhq/audir-backend/pkg/errors"
	"github.com/go-chi/chi/v5"
)

func currentUser(r *http.Request) (*models.User, error) {
	user := middleware.CurrentUserFromContext(r.Context())
	if user == nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing")
	}
	return user, nil
}

func idParam(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "invalid id")
	}
	return id, nil
}
