package calendar

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volition-os/volition-api/internal/config"
	"github.com/volition-os/volition-api/internal/user"
	"golang.org/x/oauth2"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

var (
	ErrUserNotFound  = errors.New("user not found for calendar integration")
	ErrDecryptFailed = errors.New("failed to decrypt user's google token")
	ErrMissingTokens = errors.New("user has no google access token")
	ErrNoDeadline    = errors.New("job has no deadline for a calendar event")
)

type CalendarService interface {
	AddEvent(ctx context.Context, userID uuid.UUID, job *CalendarJob) (string, error)
	UpdateEvent(ctx context.Context, userID uuid.UUID, job *CalendarJob) error
	DeleteEvent(ctx context.Context, userID uuid.UUID, eventID string) error
}

type calendarService struct {
	userRepo    user.UserRepository
	oauthConfig *oauth2.Config
}

func NewCalendarService(userRepo user.UserRepository, oauthConfig *oauth2.Config) CalendarService {
	return &calendarService{
		userRepo:    userRepo,
		oauthConfig: oauthConfig,
	}
}

func (s *calendarService) getCalendarClient(ctx context.Context, userID uuid.UUID) (*gcal.Service, error) {
	log := config.WithContext(ctx)

	u, err := s.userRepo.GetByID(userID.String())
	if err != nil {
		log.WithError(err).Error("Failed to retrieve user for calendar client")
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}

	if u.EncryptedGoogleAccessToken == "" {
		return nil, ErrMissingTokens
	}

	accessToken, err := config.Decrypt(u.EncryptedGoogleAccessToken)
	if err != nil {
		log.WithError(err).Error("Failed to decrypt access token")
		return nil, ErrDecryptFailed
	}

	refreshToken := ""
	if u.EncryptedGoogleRefreshToken != "" {
		refreshToken, err = config.Decrypt(u.EncryptedGoogleRefreshToken)
		if err != nil {
			log.WithError(err).Error("Failed to decrypt refresh token")
			return nil, ErrDecryptFailed
		}
	}

	token := &oauth2.Token{
		AccessToken:  accessToken,
		TokenType:    "Bearer",
		RefreshToken: refreshToken,
		Expiry:       time.Now().Add(-time.Hour),
	}

	tokenSource := s.oauthConfig.TokenSource(ctx, token)
	if _, err := tokenSource.Token(); err != nil {
		log.WithError(err).Error("Failed to refresh Google token")
		return nil, err
	}

	client := oauth2.NewClient(ctx, tokenSource)
	srv, err := gcal.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		log.WithError(err).Error("Failed to create Calendar service client")
		return nil, err
	}
	return srv, nil
}

func buildEvent(job *CalendarJob) *gcal.Event {
	if job.Deadline == nil {
		return nil
	}
	return &gcal.Event{
		Summary:     job.Title,
		Description: job.Note,
		Start: &gcal.EventDateTime{
			DateTime: job.Deadline.Add(-time.Hour).Format(time.RFC3339),
		},
		End: &gcal.EventDateTime{
			DateTime: job.Deadline.Format(time.RFC3339),
		},
		Reminders: &gcal.EventReminders{
			UseDefault: false,
			Overrides: []*gcal.EventReminder{
				{Method: "popup", Minutes: 60},
			},
			ForceSendFields: []string{"UseDefault"},
		},
	}
}

func (s *calendarService) AddEvent(ctx context.Context, userID uuid.UUID, job *CalendarJob) (string, error) {
	srv, err := s.getCalendarClient(ctx, userID)
	if err != nil {
		return "", err
	}

	event := buildEvent(job)
	if event == nil {
		return "", ErrNoDeadline
	}

	created, err := srv.Events.Insert("primary", event).Context(ctx).Do()
	if err != nil {
		return "", err
	}
	return created.Id, nil
}

func (s *calendarService) UpdateEvent(ctx context.Context, userID uuid.UUID, job *CalendarJob) error {
	if job.CalendarEventID == nil || *job.CalendarEventID == "" {
		return ErrNoDeadline
	}

	srv, err := s.getCalendarClient(ctx, userID)
	if err != nil {
		return err
	}

	event := buildEvent(job)
	if event == nil {
		return ErrNoDeadline
	}

	_, err = srv.Events.Update("primary", *job.CalendarEventID, event).Context(ctx).Do()
	return err
}

func (s *calendarService) DeleteEvent(ctx context.Context, userID uuid.UUID, eventID string) error {
	srv, err := s.getCalendarClient(ctx, userID)
	if err != nil {
		return err
	}

	err = srv.Events.Delete("primary", eventID).Context(ctx).Do()
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && (apiErr.Code == 404 || apiErr.Code == 410) {
		// Already gone upstream; nothing to clean up.
		return nil
	}
	return err
}
