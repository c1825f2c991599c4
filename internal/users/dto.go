package users

import (
	"time"

	"github.com/borrago/dropentregas/pkg/db/models"
)

// UserDTO is the public representation of an account. The password hash
// never leaves the persistence layer.
type UserDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

func FromModel(m *models.User) UserDTO {
	return UserDTO{
		ID:        m.ID.String(),
		Name:      m.Name,
		Email:     m.Email,
		Role:      m.Role,
		CreatedAt: m.CreatedAt,
	}
}
