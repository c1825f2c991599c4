package controllers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"

	"github.com/borrago/dropentregas/api/responses"
	"github.com/borrago/dropentregas/internal/coupons"
	pkgerrors "github.com/borrago/dropentregas/pkg/errors"
	"github.com/borrago/dropentregas/pkg/logger"
)

// CouponList returns all coupon rules with their count.
func CouponList(repo coupons.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if repo == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "coupons unavailable"))
			return
		}

		records, err := repo.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing coupons"))
			return
		}

		dtos := coupons.FromModels(records)
		responses.WriteList(w, dtos, len(dtos))
	}
}

// CouponDetail returns one coupon by code, matched case-insensitively.
func CouponDetail(repo coupons.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if repo == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "coupons unavailable"))
			return
		}

		code := chi.URLParam(r, "code")
		coupon, err := repo.FindByCode(r.Context(), code)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "coupon not found"))
				return
			}
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "finding coupon"))
			return
		}

		responses.WriteSuccess(w, coupons.FromModel(coupon))
	}
}
