package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"lce-project/backend/logging"
	"lce-project/backend/models"
	"lce-project/backend/repositories"
	"lce-project/backend/utils"

	"github.com/google/uuid"
	"golang.org/x/exp/rand"
)

type UserService struct {
	users repositories.UserRepository
}

func NewUserService(users repositories.UserRepository) *UserService {
	return &UserService{users: users}
}

// RegisterInput nosi podatke iz registracione forme.
type RegisterInput struct {
	Name        string `json:"name"`
	Designation string `json:"designation"`
	Dept        string `json:"dept"`
	Group       string `json:"group"`
	EmpID       string `json:"empId"`
	Email       string `json:"email"`
	Passcode    string `json:"passcode"`
}

// Register pravi novog korisnika. Email i empId moraju biti jedinstveni, a
// zvanje mora postojati u tabeli zvanja; nivo i gradus se izvode iz zvanja.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	empID := strings.TrimSpace(input.EmpID)

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("email already registered")
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}
	if _, err := s.users.FindByEmpID(ctx, empID); err == nil {
		return nil, fmt.Errorf("employee ID already registered")
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	desig, ok := models.DesignationInfo(input.Designation)
	if !ok {
		return nil, fmt.Errorf("invalid designation selected")
	}
	if input.Group != "" && !models.ValidGroup(input.Group) {
		return nil, fmt.Errorf("invalid group selected")
	}

	hashed, err := utils.HashPasscode(input.Passcode)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(input.Name),
		Designation: input.Designation,
		Level:       desig.Level,
		Grade:       desig.Grade,
		Dept:        input.Dept,
		Group:       input.Group,
		EmpID:       empID,
		Email:       email,
		Passcode:    hashed,
		CreatedAt:   time.Now(),
	}

	if err := s.users.Insert(ctx, user); err != nil {
		return nil, err
	}

	logging.Logger.Infof("Event ID: USER_REGISTERED, Description: Registered user %s (%s, %s)", user.EmpID, user.Designation, user.Level)
	return user, nil
}

// Login proverava email i pristupni kod i vraća korisnika sa JWT tokenom.
func (s *UserService) Login(ctx context.Context, email, passcode string) (*models.User, string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, "", fmt.Errorf("user not found")
		}
		return nil, "", err
	}

	if !utils.CheckPasscode(user.Passcode, passcode) {
		return nil, "", fmt.Errorf("invalid passcode")
	}

	token, err := utils.GenerateToken(user.ID, user.Email, user.Level)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %v", err)
	}

	return user, token, nil
}

func (s *UserService) GetAll(ctx context.Context) ([]models.User, error) {
	return s.users.GetAll(ctx)
}

func (s *UserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	return s.users.GetByID(ctx, id)
}

// GetUserForCurrentSession vraća korisnika bez pristupnog koda.
func (s *UserService) GetUserForCurrentSession(ctx context.Context, id string) (*models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("user not found")
	}
	user.Passcode = ""
	return user, nil
}

// GetUserName vraća ime korisnika ili crtu kada korisnik ne postoji.
func (s *UserService) GetUserName(ctx context.Context, id string) string {
	if id == "" {
		return "—"
	}
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return "—"
	}
	return user.Name
}

// ChangePasscode menja pristupni kod korisniku.
func (s *UserService) ChangePasscode(ctx context.Context, id, oldPasscode, newPasscode, confirmPasscode string) error {
	if newPasscode != confirmPasscode {
		return fmt.Errorf("new passcode and confirmation do not match")
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("user not found")
	}

	if !utils.CheckPasscode(user.Passcode, oldPasscode) {
		return fmt.Errorf("old passcode is incorrect")
	}

	hashed, err := utils.HashPasscode(newPasscode)
	if err != nil {
		return err
	}
	return s.users.UpdatePasscode(ctx, id, hashed)
}

// ResetPasscode generiše privremeni kod, šalje ga mejlom i čuva njegov hash.
func (s *UserService) ResetPasscode(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("user not found")
	}

	tempCode := fmt.Sprintf("%06d", rand.Intn(1000000))
	hashed, err := utils.HashPasscode(tempCode)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePasscode(ctx, user.ID, hashed); err != nil {
		return err
	}

	subject := "Your Temporary Passcode"
	body := fmt.Sprintf("Your temporary passcode is %s. Please change it after signing in.", tempCode)
	if err := utils.SendEmail(user.Email, subject, body); err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}

	logging.Logger.Infof("Event ID: PASSCODE_RESET, Description: Temporary passcode sent to %s", user.Email)
	return nil
}
