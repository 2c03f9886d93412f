package mapper

import (
	"booking/internal/api/handler/response"
	"booking/internal/api/models"
)

type UserMapper struct{}

func (UserMapper) EntityToUserResponse(user models.User) response.UserResponseDTO {
	return response.UserResponseDTO{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Role:      string(user.Role),
		Active:    user.Active,
	}
}
