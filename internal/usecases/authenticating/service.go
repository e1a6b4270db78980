package authenticating

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/rylessKechit/salesup/infrastructure/mailer"
	"github.com/rylessKechit/salesup/infrastructure/repository"
	"github.com/rylessKechit/salesup/internal/config"
	"github.com/rylessKechit/salesup/internal/domain"
	"github.com/rylessKechit/salesup/pkg/apiErrors"
)

const (
	minPasswordLength = 8
	bcryptCost        = 12
)

type Authenticator interface {
	Login(email, password string) (string, *domain.User, error)
	SignupWithInvitation(input *SignupInput) (*domain.User, error)
	GetUserProfile(userID string) (*domain.User, error)
	ChangePassword(userID, currentPassword, newPassword string) error
	ValidateToken(tokenString string) (*domain.Claims, error)
}

// SignupInput is the payload for creating an account from an invitation
type SignupInput struct {
	Email           string `json:"email"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Password        string `json:"password"`
	InvitationToken string `json:"invitation_token"`
}

type Service struct {
	userRepo       repository.UserRepository
	invitationRepo repository.InvitationRepository
	mailSender     mailer.Mailer
	cfg            *config.Config
	now            func() time.Time
}

func NewService(
	userRepo repository.UserRepository,
	invitationRepo repository.InvitationRepository,
	mailSender mailer.Mailer,
	cfg *config.Config,
) Authenticator {
	return &Service{
		userRepo:       userRepo,
		invitationRepo: invitationRepo,
		mailSender:     mailSender,
		cfg:            cfg,
		now:            time.Now,
	}
}

// Login verifies the credentials and returns a signed JWT plus the
// authenticated user.
func (s *Service) Login(email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, NewAuthError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "email and password are required")
	}

	email = normalizeEmail(email)

	user, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		return "", nil, NewAuthError(err, apiErrors.ErrDatabaseOperation, "looking up user")
	}
	if user == nil {
		return "", nil, NewAuthError(ErrUserNotFound, apiErrors.ErrUserNotFound, "no account for this email")
	}
	if !user.Active {
		return "", nil, NewUserAuthError(ErrUserDisabled, apiErrors.ErrUserDisabled, user.ID, "account is disabled")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, NewUserAuthError(ErrInvalidCredentials, apiErrors.ErrInvalidCredentials, user.ID, "wrong password")
	}

	token, err := s.generateJWT(user)
	if err != nil {
		return "", nil, NewAuthError(err, apiErrors.ErrInternalServer, "signing token")
	}

	if err := s.userRepo.TouchLastLogin(user.ID, s.now()); err != nil {
		logrus.WithError(err).WithField("user_id", user.ID).Warn("recording last login")
	}

	user.PasswordHash = ""
	return token, user, nil
}

// SignupWithInvitation creates an agent account from a pending
// invitation. The invitation is consumed on success and the new agent
// receives a welcome email.
func (s *Service) SignupWithInvitation(input *SignupInput) (*domain.User, error) {
	if input.Email == "" || input.FirstName == "" || input.LastName == "" || input.Password == "" || input.InvitationToken == "" {
		return nil, NewAuthError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "all fields are required")
	}
	if len(input.Password) < minPasswordLength {
		return nil, NewAuthError(ErrWeakPassword, apiErrors.ErrInvalidFormat, fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}

	email := normalizeEmail(input.Email)

	invitation, err := s.invitationRepo.GetByToken(input.InvitationToken)
	if err != nil {
		return nil, NewAuthError(err, apiErrors.ErrDatabaseOperation, "looking up invitation")
	}
	if invitation == nil || invitation.Email != email {
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvitationNotFound, "invalid or expired invitation")
	}
	if invitation.Expired(s.now()) {
		if err := s.invitationRepo.UpdateStatus(invitation.ID, domain.InvitationExpired, nil); err != nil {
			logrus.WithError(err).WithField("invitation_id", invitation.ID).Warn("marking invitation expired")
		}
		return nil, NewAuthError(ErrExpiredToken, apiErrors.ErrInvitationExpired, "invitation has expired")
	}

	existing, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		return nil, NewAuthError(err, apiErrors.ErrDatabaseOperation, "looking up user")
	}
	if existing != nil {
		return nil, NewAuthError(ErrUserAlreadyExists, apiErrors.ErrUserAlreadyExists, "an account with this email already exists")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, NewAuthError(err, apiErrors.ErrInternalServer, "hashing password")
	}

	invitedBy := invitation.InvitedBy
	user := &domain.User{
		ID:           uuid.NewString(),
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		Email:        email,
		PasswordHash: string(hashed),
		Role:         domain.RoleAgent,
		Active:       true,
		InvitedBy:    &invitedBy,
	}

	user, err = s.userRepo.CreateUser(user)
	if err != nil {
		return nil, NewAuthError(err, apiErrors.ErrDatabaseOperation, "creating user")
	}

	if err := s.invitationRepo.UpdateStatus(invitation.ID, domain.InvitationAccepted, &user.ID); err != nil {
		logrus.WithError(err).WithField("invitation_id", invitation.ID).Warn("marking invitation accepted")
	}

	if err := s.mailSender.SendWelcomeEmail(mailer.WelcomeEmailData{
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}); err != nil {
		logrus.WithError(err).WithField("user_id", user.ID).Warn("sending welcome email")
	}

	logrus.WithFields(logrus.Fields{
		"user_id":    user.ID,
		"invited_by": invitedBy,
	}).Info("agent account created from invitation")

	user.PasswordHash = ""
	return user, nil
}

func (s *Service) GetUserProfile(userID string) (*domain.User, error) {
	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		return nil, NewAuthError(err, apiErrors.ErrDatabaseOperation, "looking up user")
	}
	if user == nil {
		return nil, NewAuthError(ErrUserNotFound, apiErrors.ErrUserNotFound, "user not found")
	}

	user.PasswordHash = ""
	return user, nil
}

func (s *Service) ChangePassword(userID, currentPassword, newPassword string) error {
	if currentPassword == "" || newPassword == "" {
		return NewAuthError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "current and new passwords are required")
	}
	if len(newPassword) < minPasswordLength {
		return NewAuthError(ErrWeakPassword, apiErrors.ErrInvalidFormat, fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}
	if currentPassword == newPassword {
		return NewAuthError(ErrSamePassword, apiErrors.ErrInvalidRequest, "new password must differ from the current one")
	}

	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		return NewAuthError(err, apiErrors.ErrDatabaseOperation, "looking up user")
	}
	if user == nil {
		return NewAuthError(ErrUserNotFound, apiErrors.ErrUserNotFound, "user not found")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return NewUserAuthError(ErrPasswordMismatch, apiErrors.ErrInvalidCredentials, user.ID, "current password is incorrect")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return NewAuthError(err, apiErrors.ErrInternalServer, "hashing password")
	}

	user.PasswordHash = string(hashed)
	if err := s.userRepo.UpdateUser(user); err != nil {
		return NewAuthError(err, apiErrors.ErrDatabaseOperation, "updating user")
	}

	return nil
}

func (s *Service) generateJWT(user *domain.User) (string, error) {
	claims := domain.Claims{
		UserID:        user.ID,
		UserFirstName: user.FirstName,
		UserLastName:  user.LastName,
		UserEmail:     user.Email,
		UserActive:    user.Active,
		UserRole:      user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(s.now().Add(s.cfg.Auth.TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(s.now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.Auth.Secret))
}

// ValidateToken parses and verifies a JWT issued by Login
func (s *Service) ValidateToken(tokenString string) (*domain.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &domain.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.Auth.Secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*domain.Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

func normalizeEmail(s string) string {
	email := strings.ToLower(s)
	email = strings.TrimSpace(email)
	email = strings.ReplaceAll(email, " ", "")
	return email
}
