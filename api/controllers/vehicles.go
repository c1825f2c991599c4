package controllers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/borrago/dropentregas/api/responses"
	"github.com/borrago/dropentregas/internal/catalog"
	pkgerrors "github.com/borrago/dropentregas/pkg/errors"
	"github.com/borrago/dropentregas/pkg/logger"
)

// VehicleList returns the full catalog with its count.
func VehicleList(repo catalog.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if repo == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}

		vehicles, err := repo.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing vehicles"))
			return
		}

		dtos := catalog.VehiclesFromModels(vehicles)
		responses.WriteList(w, dtos, len(dtos))
	}
}

// VehicleDetail returns one vehicle by id.
func VehicleDetail(repo catalog.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if repo == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}

		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid vehicle id"))
			return
		}

		vehicle, err := repo.FindByID(r.Context(), id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "vehicle not found"))
				return
			}
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "finding vehicle"))
			return
		}

		responses.WriteSuccess(w, catalog.VehicleFromModel(vehicle))
	}
}
