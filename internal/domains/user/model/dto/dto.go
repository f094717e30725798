package dto

import (
	"atithi/internal/domains/user/model"
	"atithi/shared"
	"atithi/shared/constant"
	gDto "atithi/shared/dto"
	gModel "atithi/shared/model"
	"atithi/shared/timezone"

	"github.com/google/uuid"
)

type CreateUserRequest struct {
	FullName string `json:"full_name" validate:"required,min=3,max=100"`
	Email    string `json:"email"     validate:"required,email,max=100"`
	Phone    string `json:"phone"     validate:"required,max=20"`
	Password string `json:"password"  validate:"required,min=8,max=72"`
	Role     string `json:"role"      validate:"required,oneof=admin manager staff"`
	Status   string `json:"status"    validate:"omitempty,oneof=active inactive suspended"`
}

func (c *CreateUserRequest) ToModel(user, hashedPassword string) model.User {
	status := c.Status
	if status == constant.Empty {
		status = constant.UserStatusActive
	}

	return model.User{
		ID:       uuid.NewString(),
		FullName: c.FullName,
		Email:    c.Email,
		Phone:    c.Phone,
		Password: hashedPassword,
		Role:     c.Role,
		Status:   status,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

// UpdateUserRequest is a partial update. Passwords change through the auth
// endpoints, not here.
type UpdateUserRequest struct {
	FullName *string `db:"full_name" json:"full_name" validate:"omitempty,min=3,max=100"`
	Phone    *string `db:"phone"     json:"phone"     validate:"omitempty,max=20"`
	Role     *string `db:"role"      json:"role"      validate:"omitempty,oneof=admin manager staff"`
	Status   *string `db:"status"    json:"status"    validate:"omitempty,oneof=active inactive suspended"`
}

type UserResponse struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
	Status   string `json:"status"`
	gDto.Metadata
}

func (r *UserResponse) FromModel(model model.User) {
	r.ID = model.ID
	r.FullName = model.FullName
	r.Email = model.Email
	r.Phone = model.Phone
	r.Role = model.Role
	r.Status = model.Status
	r.Metadata.FromModel(model.Metadata)
}

type GetUsersResponse struct {
	Users     []UserResponse `json:"users"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetUsersResponse) FromModels(models []model.User, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Users = make([]UserResponse, len(models))
	for i, m := range models {
		r.Users[i].FromModel(m)
	}
}
