package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"atithi/config"
	"atithi/infras/jwt"
	otelMocks "atithi/infras/otel/mocks"
	"atithi/internal/domains/auth/model/dto"
	"atithi/internal/domains/auth/service"
	userMocks "atithi/internal/domains/user/mocks"
	userModel "atithi/internal/domains/user/model"
	"atithi/shared/constant"
	gDto "atithi/shared/dto"
	"atithi/shared/failure"
	"atithi/shared/password"
)

func newService(t *testing.T) (service.Auth, *userMocks.MockUser, jwt.JWT) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockRepo := userMocks.NewMockUser(ctrl)

	cfg := &config.Config{}
	cfg.App.Name = "atithi-test"
	cfg.JWT.AccessSecret = "access-secret"
	cfg.JWT.RefreshSecret = "refresh-secret"
	cfg.JWT.AccessExpireMin = 15
	cfg.JWT.RefreshExpireMin = 60

	jwtService := jwt.New(cfg)

	return service.New(mockRepo, otelMocks.NewOtel(), jwtService), mockRepo, jwtService
}

func activeUser(t *testing.T) userModel.User {
	t.Helper()

	hash, err := password.Hash("s3cret-pass")
	assert.NoError(t, err)

	return userModel.User{
		ID:       "user-1",
		FullName: "Asha Patel",
		Email:    "asha@example.com",
		Password: hash,
		Role:     constant.RoleAdmin,
		Status:   constant.UserStatusActive,
	}
}

func TestAuthService_Login(t *testing.T) {
	t.Run("successful login returns a token pair", func(t *testing.T) {
		svc, mockRepo, jwtService := newService(t)

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, filter gDto.FilterGroup, _ ...string) (userModel.User, error) {
				assert.Len(t, filter.Filters, 1)

				return activeUser(t), nil
			})

		res, err := svc.Login(context.Background(), dto.LoginRequest{
			Email:    "asha@example.com",
			Password: "s3cret-pass",
		})

		assert.NoError(t, err)
		assert.NotEmpty(t, res.AccessToken)
		assert.NotEmpty(t, res.RefreshToken)
		assert.Equal(t, int64(15*60), res.ExpiresIn)
		assert.Equal(t, "asha@example.com", res.User.Email)

		claims, err := jwtService.ValidateToken(res.AccessToken, jwt.AccessToken)
		assert.NoError(t, err)
		assert.Equal(t, "user-1", claims.UserID)
		assert.Equal(t, constant.RoleAdmin, claims.Role)
	})

	t.Run("unknown email reads like a wrong password", func(t *testing.T) {
		svc, mockRepo, _ := newService(t)

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(userModel.User{}, nil)

		_, err := svc.Login(context.Background(), dto.LoginRequest{
			Email:    "nobody@example.com",
			Password: "whatever",
		})

		assert.Error(t, err)
		assert.Equal(t, 401, failure.GetCode(err))
		assert.Equal(t, "invalid email or password", err.Error())
	})

	t.Run("wrong password reads like an unknown email", func(t *testing.T) {
		svc, mockRepo, _ := newService(t)

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(activeUser(t), nil)

		_, err := svc.Login(context.Background(), dto.LoginRequest{
			Email:    "asha@example.com",
			Password: "wrong-pass",
		})

		assert.Error(t, err)
		assert.Equal(t, 401, failure.GetCode(err))
		assert.Equal(t, "invalid email or password", err.Error())
	})

	t.Run("suspended account is forbidden", func(t *testing.T) {
		svc, mockRepo, _ := newService(t)

		user := activeUser(t)
		user.Status = constant.UserStatusSuspended

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(user, nil)

		_, err := svc.Login(context.Background(), dto.LoginRequest{
			Email:    "asha@example.com",
			Password: "s3cret-pass",
		})

		assert.Error(t, err)
		assert.Equal(t, 403, failure.GetCode(err))
		assert.Contains(t, err.Error(), constant.UserStatusSuspended)
	})
}

func TestAuthService_RefreshToken(t *testing.T) {
	t.Run("valid refresh token yields a fresh pair", func(t *testing.T) {
		svc, _, jwtService := newService(t)

		pair, err := jwtService.GenerateTokenPair("user-1", "asha@example.com", constant.RoleAdmin)
		assert.NoError(t, err)

		res, err := svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{
			RefreshToken: pair.RefreshToken,
		})

		assert.NoError(t, err)
		assert.NotEmpty(t, res.AccessToken)
		assert.NotEmpty(t, res.RefreshToken)
	})

	t.Run("garbage token is unauthorized", func(t *testing.T) {
		svc, _, _ := newService(t)

		_, err := svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{
			RefreshToken: "not-a-token",
		})

		assert.Error(t, err)
		assert.Equal(t, 401, failure.GetCode(err))
	})

	t.Run("access token cannot be used as a refresh token", func(t *testing.T) {
		svc, _, jwtService := newService(t)

		pair, err := jwtService.GenerateTokenPair("user-1", "asha@example.com", constant.RoleAdmin)
		assert.NoError(t, err)

		_, err = svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{
			RefreshToken: pair.AccessToken,
		})

		assert.Error(t, err)
		assert.Equal(t, 401, failure.GetCode(err))
	})
}

func TestAuthService_ChangePassword(t *testing.T) {
	t.Run("changes password when current one matches", func(t *testing.T) {
		svc, mockRepo, _ := newService(t)

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(activeUser(t), nil)

		mockRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				hash, ok := fields[userModel.FieldPassword].(string)
				assert.True(t, ok)
				assert.NoError(t, password.Verify("n3w-pass-word", hash))

				return nil
			})

		err := svc.ChangePassword(context.Background(), dto.ChangePasswordRequest{
			CurrentPassword: "s3cret-pass",
			NewPassword:     "n3w-pass-word",
		}, "user-1")

		assert.NoError(t, err)
	})

	t.Run("wrong current password is rejected", func(t *testing.T) {
		svc, mockRepo, _ := newService(t)

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(activeUser(t), nil)

		err := svc.ChangePassword(context.Background(), dto.ChangePasswordRequest{
			CurrentPassword: "wrong-pass",
			NewPassword:     "n3w-pass-word",
		}, "user-1")

		assert.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("unknown user is not found", func(t *testing.T) {
		svc, mockRepo, _ := newService(t)

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(userModel.User{}, nil)

		err := svc.ChangePassword(context.Background(), dto.ChangePasswordRequest{
			CurrentPassword: "s3cret-pass",
			NewPassword:     "n3w-pass-word",
		}, "user-missing")

		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})
}
