package catalog

import (
	"time"

	"github.com/borrago/dropentregas/pkg/db/models"
	"github.com/shopspring/decimal"
)

// VehicleDTO is the wire representation of a catalog vehicle.
type VehicleDTO struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	BasePrice     decimal.Decimal `json:"basePrice"`
	DefaultCoupon *string         `json:"defaultCoupon,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

func VehicleFromModel(m *models.Vehicle) VehicleDTO {
	return VehicleDTO{
		ID:            m.ID.String(),
		Name:          m.Name,
		BasePrice:     m.BasePrice,
		DefaultCoupon: m.DefaultCoupon,
		CreatedAt:     m.CreatedAt,
	}
}

func VehiclesFromModels(ms []models.Vehicle) []VehicleDTO {
	out := make([]VehicleDTO, 0, len(ms))
	for i := range ms {
		out = append(out, VehicleFromModel(&ms[i]))
	}
	return out
}
