package user

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/volition-os/volition-api/internal/auth"
	"github.com/volition-os/volition-api/internal/config"
	"golang.org/x/oauth2"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrCodeExchange  = errors.New("failed to exchange authorization code")
	ErrUserInfoFetch = errors.New("failed to fetch google user info")
)

const (
	AccessTokenTTL  = 15 * time.Minute
	RefreshTokenTTL = 30 * 24 * time.Hour

	userInfoEndpoint = "https://www.googleapis.com/oauth2/v2/userinfo"
)

type googleUserInfo struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type UserService interface {
	LoginWithGoogle(ctx context.Context, code string) (*User, *TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	GetByID(ctx context.Context, id string) (*User, error)
}

type userService struct {
	repo        UserRepository
	oauthConfig *oauth2.Config
}

func NewService(repo UserRepository, oauthConfig *oauth2.Config) UserService {
	return &userService{repo: repo, oauthConfig: oauthConfig}
}

func (s *userService) LoginWithGoogle(ctx context.Context, code string) (*User, *TokenPair, error) {
	log := config.WithContext(ctx)

	token, err := s.oauthConfig.Exchange(ctx, code)
	if err != nil {
		log.WithError(err).Error("Google code exchange failed")
		return nil, nil, ErrCodeExchange
	}

	info, err := s.fetchUserInfo(ctx, token)
	if err != nil {
		log.WithError(err).Error("Failed to fetch Google user info")
		return nil, nil, ErrUserInfoFetch
	}

	u, err := s.repo.GetByEmail(info.Email)
	if err != nil {
		return nil, nil, err
	}

	encAccess, err := config.Encrypt(token.AccessToken)
	if err != nil {
		return nil, nil, err
	}

	if u == nil {
		u = &User{
			Email:     info.Email,
			Name:      info.Name,
			AvatarURL: info.Picture,
			Role:      "user",
		}
		u.EncryptedGoogleAccessToken = encAccess
		if token.RefreshToken != "" {
			if u.EncryptedGoogleRefreshToken, err = config.Encrypt(token.RefreshToken); err != nil {
				return nil, nil, err
			}
		}
		if err := s.repo.Create(u); err != nil {
			log.WithError(err).Error("Failed to create user")
			return nil, nil, err
		}
		log.WithField("user_id", u.ID).Info("New user registered via Google")
	} else {
		u.Name = info.Name
		u.AvatarURL = info.Picture
		u.EncryptedGoogleAccessToken = encAccess
		if token.RefreshToken != "" {
			if u.EncryptedGoogleRefreshToken, err = config.Encrypt(token.RefreshToken); err != nil {
				return nil, nil, err
			}
		}
		if err := s.repo.Update(u); err != nil {
			log.WithError(err).Error("Failed to update user on login")
			return nil, nil, err
		}
	}

	pair, err := s.issueTokens(u)
	if err != nil {
		return nil, nil, err
	}
	return u, pair, nil
}

func (s *userService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := auth.ValidateJWT(refreshToken)
	if err != nil {
		return nil, err
	}

	u, err := s.repo.GetByID(claims.UserID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}

	return s.issueTokens(u)
}

func (s *userService) GetByID(ctx context.Context, id string) (*User, error) {
	u, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (s *userService) issueTokens(u *User) (*TokenPair, error) {
	access, err := auth.GenerateJWT(u.ID.String(), u.Role, AccessTokenTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := auth.GenerateJWT(u.ID.String(), u.Role, RefreshTokenTTL)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *userService) fetchUserInfo(ctx context.Context, token *oauth2.Token) (*googleUserInfo, error) {
	client := s.oauthConfig.Client(ctx, token)
	resp, err := client.Get(userInfoEndpoint)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, ErrUserInfoFetch
	}

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, err
	}
	if info.Email == "" {
		return nil, ErrUserInfoFetch
	}
	return &info, nil
}
