package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/shopswift/storefront/apperrors"
	"github.com/shopswift/storefront/models"
	"github.com/shopswift/storefront/repository"
)

func TestRegister_HashesPasswordAndAssignsUserRole(t *testing.T) {
	userRepo := new(MockUserRepo)
	svc := NewAuthService(userRepo, "test-secret")

	var created *models.User
	userRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*models.User)
		}).Return(nil)

	response, err := svc.Register(context.Background(), &RegisterRequest{
		Name:     "Sam",
		Email:    "sam@example.com",
		Password: "hunter22",
	})
	assert.NoError(t, err)
	assert.NotEmpty(t, response.Token)
	assert.Equal(t, models.RoleUser, created.Role)
	assert.NotEqual(t, "hunter22", created.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("hunter22")))
}

func TestRegister_DuplicateEmailIsConflict(t *testing.T) {
	userRepo := new(MockUserRepo)
	svc := NewAuthService(userRepo, "test-secret")

	userRepo.On("Create", mock.Anything, mock.Anything).Return(repository.ErrDuplicate)

	_, err := svc.Register(context.Background(), &RegisterRequest{
		Name:     "Sam",
		Email:    "sam@example.com",
		Password: "hunter22",
	})
	var appErr *apperrors.Error
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, 409, appErr.Code)
}

func TestLogin_WrongPassword(t *testing.T) {
	userRepo := new(MockUserRepo)
	svc := NewAuthService(userRepo, "test-secret")

	hashed, _ := bcrypt.GenerateFromPassword([]byte("correct"), bcrypt.DefaultCost)
	userRepo.On("FindByEmail", mock.Anything, "sam@example.com").Return(&models.User{
		ID:       primitive.NewObjectID(),
		Email:    "sam@example.com",
		Password: string(hashed),
		Role:     models.RoleUser,
	}, nil)

	_, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "sam@example.com",
		Password: "wrong",
	})
	var appErr *apperrors.Error
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, 401, appErr.Code)
}

func TestLogin_UnknownEmailGetsSameError(t *testing.T) {
	userRepo := new(MockUserRepo)
	svc := NewAuthService(userRepo, "test-secret")

	userRepo.On("FindByEmail", mock.Anything, "nobody@example.com").
		Return(nil, repository.ErrNotFound)

	_, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	var appErr *apperrors.Error
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, 401, appErr.Code)
	assert.Equal(t, "Invalid email or password", appErr.Message)
}

func TestLogin_Success(t *testing.T) {
	userRepo := new(MockUserRepo)
	svc := NewAuthService(userRepo, "test-secret")

	hashed, _ := bcrypt.GenerateFromPassword([]byte("correct"), bcrypt.DefaultCost)
	user := &models.User{
		ID:       primitive.NewObjectID(),
		Email:    "sam@example.com",
		Password: string(hashed),
		Role:     models.RoleAdmin,
	}
	userRepo.On("FindByEmail", mock.Anything, "sam@example.com").Return(user, nil)

	response, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "sam@example.com",
		Password: "correct",
	})
	assert.NoError(t, err)
	assert.NotEmpty(t, response.Token)
	assert.Equal(t, models.RoleAdmin, response.User.Role)
}
