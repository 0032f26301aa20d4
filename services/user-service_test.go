package services

import (
	"context"
	"testing"

	"lce-project/backend/models"
	"lce-project/backend/repositories"
	"lce-project/backend/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterDerivesLevelAndGrade(t *testing.T) {
	ctx := context.Background()
	userRepo := repositories.NewInMemoryUserRepository()
	svc := NewUserService(userRepo)

	user, err := svc.Register(ctx, RegisterInput{
		Name:        "Ana Petrov",
		Designation: "Deputy Manager",
		Dept:        "Civil & Structural",
		Group:       "GROUP-1",
		EmpID:       "EMP100",
		Email:       "Ana.Petrov@lloyds.in",
		Passcode:    "2468",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, models.LevelL2, user.Level)
	assert.Equal(t, "E3", user.Grade)
	// Email se normalizuje na mala slova
	assert.Equal(t, "ana.petrov@lloyds.in", user.Email)
	// Pristupni kod se čuva heširan
	assert.NotEqual(t, "2468", user.Passcode)
	assert.True(t, utils.CheckPasscode(user.Passcode, "2468"))
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	ctx := context.Background()
	userRepo := repositories.NewInMemoryUserRepository()
	svc := NewUserService(userRepo)

	input := RegisterInput{
		Name:        "First",
		Designation: "Manager",
		EmpID:       "EMP200",
		Email:       "first@lloyds.in",
		Passcode:    "1111",
	}
	_, err := svc.Register(ctx, input)
	require.NoError(t, err)

	t.Run("DuplicateEmail", func(t *testing.T) {
		dup := input
		dup.EmpID = "EMP201"
		_, err := svc.Register(ctx, dup)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "email already registered")
	})

	t.Run("DuplicateEmpID", func(t *testing.T) {
		dup := input
		dup.Email = "second@lloyds.in"
		_, err := svc.Register(ctx, dup)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "employee ID already registered")
	})
}

func TestRegisterRejectsUnknownDesignationAndGroup(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(repositories.NewInMemoryUserRepository())

	_, err := svc.Register(ctx, RegisterInput{
		Name:        "Bogus",
		Designation: "Wizard",
		EmpID:       "EMP300",
		Email:       "bogus@lloyds.in",
		Passcode:    "1111",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid designation")

	_, err = svc.Register(ctx, RegisterInput{
		Name:        "Bogus",
		Designation: "Manager",
		Group:       "GROUP-99",
		EmpID:       "EMP300",
		Email:       "bogus@lloyds.in",
		Passcode:    "1111",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid group")
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(repositories.NewInMemoryUserRepository())

	registered, err := svc.Register(ctx, RegisterInput{
		Name:        "Login User",
		Designation: "Manager",
		EmpID:       "EMP400",
		Email:       "login@lloyds.in",
		Passcode:    "7777",
	})
	require.NoError(t, err)

	user, token, err := svc.Login(ctx, "login@lloyds.in", "7777")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	require.NotEmpty(t, token)

	claims, err := utils.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, claims.UserID)
	assert.Equal(t, models.LevelL1, claims.Level)

	_, _, err = svc.Login(ctx, "login@lloyds.in", "wrong")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid passcode")

	_, _, err = svc.Login(ctx, "nobody@lloyds.in", "7777")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "user not found")
}

func TestChangePasscode(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(repositories.NewInMemoryUserRepository())

	user, err := svc.Register(ctx, RegisterInput{
		Name:        "Change",
		Designation: "Manager",
		EmpID:       "EMP500",
		Email:       "change@lloyds.in",
		Passcode:    "0000",
	})
	require.NoError(t, err)

	err = svc.ChangePasscode(ctx, user.ID, "0000", "9999", "8888")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "do not match")

	err = svc.ChangePasscode(ctx, user.ID, "bad", "9999", "9999")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "old passcode is incorrect")

	require.NoError(t, svc.ChangePasscode(ctx, user.ID, "0000", "9999", "9999"))
	_, _, err = svc.Login(ctx, "change@lloyds.in", "9999")
	require.NoError(t, err)
}

func TestGetUserName(t *testing.T) {
	ctx := context.Background()
	userRepo := repositories.NewInMemoryUserRepository()
	svc := NewUserService(userRepo)

	require.NoError(t, userRepo.Insert(ctx, &models.User{ID: "u1", Name: "Marko"}))

	assert.Equal(t, "Marko", svc.GetUserName(ctx, "u1"))
	assert.Equal(t, "—", svc.GetUserName(ctx, "ghost"))
	assert.Equal(t, "—", svc.GetUserName(ctx, ""))
}

func TestGetUserForCurrentSessionBlanksPasscode(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(repositories.NewInMemoryUserRepository())

	user, err := svc.Register(ctx, RegisterInput{
		Name:        "Session",
		Designation: "Manager",
		EmpID:       "EMP600",
		Email:       "session@lloyds.in",
		Passcode:    "4321",
	})
	require.NoError(t, err)

	got, err := svc.GetUserForCurrentSession(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Passcode)
}
