package services

import (
	"context"
	"fmt"

	"lce-project/backend/models"
	"lce-project/backend/repositories"
)

// AccessService sadrži pravila pristupa nad hijerarhijom zvanja i grupama.
// Svi predikati za nil korisnika vraćaju najmanje privilegovan odgovor.
type AccessService struct {
	users repositories.UserRepository
}

func NewAccessService(users repositories.UserRepository) *AccessService {
	return &AccessService{users: users}
}

func (s *AccessService) IsAdmin(u *models.User) bool {
	return u != nil && (u.Level == models.LevelL || u.Level == models.LevelL0)
}

func (s *AccessService) CanCreateProjects(u *models.User) bool {
	return s.IsAdmin(u)
}

func (s *AccessService) CanCreateSubprojects(u *models.User) bool {
	return u != nil && (u.Level == models.LevelL1 || s.IsAdmin(u))
}

func (s *AccessService) CanCreateTasks(u *models.User) bool {
	if u == nil {
		return false
	}
	if s.IsAdmin(u) {
		return true
	}
	return u.Level != models.LevelL4 && u.Level != models.LevelT2
}

func (s *AccessService) CanCreateConcurrence(u *models.User) bool {
	return u != nil && (u.Level == models.LevelL1 || s.IsAdmin(u))
}

func (s *AccessService) CanCreateSubtasks(u *models.User) bool {
	if u == nil {
		return false
	}
	switch u.Level {
	case models.LevelL, models.LevelL0, models.LevelL1, models.LevelL2:
		return true
	}
	return false
}

// GetAssignableUsers vraća korisnike kojima zadati korisnik sme da dodeljuje
// posao. Admini mogu svima; ostali samo naniže po autoritetu, a između dve
// ne-MANAGEMENT grupe dodela ostaje unutar iste grupe. Samododela je posao
// pozivaoca, ne ove funkcije.
func (s *AccessService) GetAssignableUsers(ctx context.Context, user *models.User) ([]models.User, error) {
	if user == nil {
		return nil, nil
	}
	allUsers, err := s.users.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch users: %v", err)
	}

	if s.IsAdmin(user) {
		var out []models.User
		for _, u := range allUsers {
			if u.ID != user.ID {
				out = append(out, u)
			}
		}
		return out, nil
	}

	myPower := models.LevelPower(user.Level)
	var out []models.User
	for _, u := range allUsers {
		if u.ID == user.ID {
			continue
		}
		if models.LevelPower(u.Level) >= myPower {
			continue
		}
		// Grupni filter: dve popunjene ne-MANAGEMENT grupe moraju biti iste
		myGroup, theirGroup := user.Group, u.Group
		if myGroup != "" && theirGroup != "" &&
			myGroup != models.GroupManagement && theirGroup != models.GroupManagement &&
			myGroup != theirGroup {
			continue
		}
		out = append(out, u)
	}
	return out, nil
}
