package service

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	googleoauth "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"

	config "github.com/maheshrc27/postcal/configs"
	"github.com/maheshrc27/postcal/internal/apperror"
	"github.com/maheshrc27/postcal/internal/models"
	"github.com/maheshrc27/postcal/internal/repository"
)

type AuthService interface {
	AuthCodeURL(state string) string
	LoginCallback(ctx context.Context, code string) (int64, error)
}

type authService struct {
	oauth *oauth2.Config
	u     repository.UserRepository
}

func NewAuthService(cfg config.Config, u repository.UserRepository) AuthService {
	return &authService{
		oauth: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURI,
			Scopes:       []string{googleoauth.UserinfoEmailScope, googleoauth.UserinfoProfileScope},
			Endpoint:     google.Endpoint,
		},
		u: u,
	}
}

func (s *authService) AuthCodeURL(state string) string {
	return s.oauth.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// LoginCallback exchanges the authorization code, then finds or creates the
// user by email.
func (s *authService) LoginCallback(ctx context.Context, code string) (int64, error) {
	if code == "" {
		return 0, apperror.New(apperror.InvalidArgument, "code is empty")
	}

	if s.oauth.ClientID == "" || s.oauth.ClientSecret == "" || s.oauth.RedirectURL == "" {
		err := errors.New("OAuth2 configuration is incomplete")
		slog.Info(err.Error())
		return 0, apperror.Wrap(apperror.FailedPrecondition, "Login is not configured", err)
	}

	token, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		slog.Info(err.Error())
		return 0, apperror.Wrap(apperror.Unauthenticated, "Login failed", err)
	}

	svc, err := googleoauth.NewService(ctx, option.WithTokenSource(s.oauth.TokenSource(ctx, token)))
	if err != nil {
		return 0, internalError("Error reading Google profile", err)
	}
	info, err := svc.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		return 0, internalError("Error reading Google profile", err)
	}

	user, isExist, err := s.u.GetByEmail(ctx, info.Email)
	if err != nil {
		return 0, internalError("Error getting user info", err)
	}

	if !isExist {
		userID, err := s.u.Create(ctx, &models.User{
			GoogleID:       info.Id,
			Email:          info.Email,
			Name:           info.Name,
			ProfilePicture: info.Picture,
		})
		if err != nil {
			return 0, internalError("Error creating user", err)
		}
		return userID, nil
	}

	if user.GoogleID == "" || user.Name != info.Name || user.ProfilePicture != info.Picture {
		user.GoogleID = info.Id
		user.Name = info.Name
		user.ProfilePicture = info.Picture
		if err := s.u.Update(ctx, user); err != nil {
			return 0, internalError("Error updating user", err)
		}
	}

	return user.ID, nil
}
