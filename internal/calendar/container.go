package calendar

import (
	"github.com/volition-os/volition-api/internal/user"
	"golang.org/x/oauth2"
)

type CalendarContainer struct {
	Service CalendarService
	Manager *Manager
}

func NewCalendarContainer(userRepo user.UserRepository, oauthConfig *oauth2.Config) *CalendarContainer {
	service := NewCalendarService(userRepo, oauthConfig)
	return &CalendarContainer{
		Service: service,
		Manager: NewManager(service),
	}
}
