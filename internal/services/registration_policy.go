package services

import (
	"errors"
	"strings"
	"sync"

	"github.com/terraincognita07/healthdash/internal/models"
)

type RegistrationMode string

const (
	RegistrationOpen RegistrationMode = "open"
	// RegistrationInitial admits self-registration only while no account
	// exists.
	RegistrationInitial RegistrationMode = "initial"
	RegistrationClosed  RegistrationMode = "closed"
)

var ErrRegistrationDisabled = errors.New("registration disabled")

func ParseRegistrationMode(raw string) (RegistrationMode, bool) {
	mode := RegistrationMode(strings.ToLower(strings.TrimSpace(raw)))
	switch mode {
	case RegistrationOpen, RegistrationInitial, RegistrationClosed:
		return mode, true
	default:
		return "", false
	}
}

type RegistrationUserCounter interface {
	CountUsers() (int64, error)
}

// RegistrationService decides whether a new account may sign itself up.
type RegistrationService struct {
	users RegistrationUserCounter
	mode  RegistrationMode
	mu    sync.Mutex
}

func NewRegistrationService(users RegistrationUserCounter, mode RegistrationMode) *RegistrationService {
	if _, ok := ParseRegistrationMode(string(mode)); !ok {
		mode = RegistrationOpen
	}
	return &RegistrationService{users: users, mode: mode}
}

func (service *RegistrationService) Mode() RegistrationMode {
	return service.mode
}

func (service *RegistrationService) RequiresInitialSetup() (bool, error) {
	usersCount, err := service.users.CountUsers()
	if err != nil {
		return false, err
	}
	return usersCount == 0, nil
}

// Register runs create when the mode admits a new account. In initial mode
// the user count check and create run under one lock so two concurrent
// sign-ups cannot both become the first account.
func (service *RegistrationService) Register(create func() (models.User, error)) (models.User, error) {
	switch service.mode {
	case RegistrationOpen:
		return create()
	case RegistrationInitial:
		service.mu.Lock()
		defer service.mu.Unlock()

		initial, err := service.RequiresInitialSetup()
		if err != nil {
			return models.User{}, err
		}
		if !initial {
			return models.User{}, ErrRegistrationDisabled
		}
		return create()
	default:
		return models.User{}, ErrRegistrationDisabled
	}
}
