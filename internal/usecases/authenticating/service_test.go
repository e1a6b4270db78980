package authenticating

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/rylessKechit/salesup/infrastructure/mailer"
	mailermocks "github.com/rylessKechit/salesup/infrastructure/mailer/mocks"
	"github.com/rylessKechit/salesup/infrastructure/repository/mocks"
	"github.com/rylessKechit/salesup/internal/config"
	"github.com/rylessKechit/salesup/internal/domain"
	"github.com/rylessKechit/salesup/pkg/apiErrors"
)

// testNow stays relative to the wall clock because jwt validates
// expiry against time.Now.
var testNow = time.Now().Truncate(time.Second)

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.Auth{
			Secret:   "test-secret",
			TokenTTL: 24 * time.Hour,
		},
		Invitation: config.Invitation{ExpiryDays: 7},
	}
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hashed)
}

func newTestService(t *testing.T) (*Service, *mocks.MockUserRepository, *mocks.MockInvitationRepository, *mailermocks.MockMailer) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	userRepo := mocks.NewMockUserRepository(ctrl)
	invitationRepo := mocks.NewMockInvitationRepository(ctrl)
	mailSender := mailermocks.NewMockMailer(ctrl)

	service := &Service{
		userRepo:       userRepo,
		invitationRepo: invitationRepo,
		mailSender:     mailSender,
		cfg:            testConfig(),
		now:            func() time.Time { return testNow },
	}

	return service, userRepo, invitationRepo, mailSender
}

func assertAuthCode(t *testing.T, err error, code string) {
	t.Helper()
	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, code, authErr.Code)
}

func TestService_Login(t *testing.T) {
	activeUser := func() *domain.User {
		return &domain.User{
			ID:           "user-1",
			Email:        "agent@salesup.app",
			FirstName:    "Jane",
			LastName:     "Doe",
			PasswordHash: "",
			Role:         domain.RoleAgent,
			Active:       true,
		}
	}

	t.Run("returns a token and the user on valid credentials", func(t *testing.T) {
		service, userRepo, _, _ := newTestService(t)

		user := activeUser()
		user.PasswordHash = hashPassword(t, "secret-pass")

		userRepo.EXPECT().GetUserByEmail("agent@salesup.app").Return(user, nil)
		userRepo.EXPECT().TouchLastLogin("user-1", testNow).Return(nil)

		token, loggedIn, err := service.Login("Agent@SalesUp.app", "secret-pass")

		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, "user-1", loggedIn.ID)
		assert.Empty(t, loggedIn.PasswordHash)

		// The issued token round-trips through ValidateToken
		claims, err := service.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, "user-1", claims.UserID)
		assert.Equal(t, domain.RoleAgent, claims.UserRole)
	})

	t.Run("rejects a wrong password", func(t *testing.T) {
		service, userRepo, _, _ := newTestService(t)

		user := activeUser()
		user.PasswordHash = hashPassword(t, "secret-pass")

		userRepo.EXPECT().GetUserByEmail("agent@salesup.app").Return(user, nil)

		_, _, err := service.Login("agent@salesup.app", "wrong-pass")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
		assertAuthCode(t, err, apiErrors.ErrInvalidCredentials)
	})

	t.Run("rejects a disabled account", func(t *testing.T) {
		service, userRepo, _, _ := newTestService(t)

		user := activeUser()
		user.Active = false
		user.PasswordHash = hashPassword(t, "secret-pass")

		userRepo.EXPECT().GetUserByEmail("agent@salesup.app").Return(user, nil)

		_, _, err := service.Login("agent@salesup.app", "secret-pass")

		assert.ErrorIs(t, err, ErrUserDisabled)
	})

	t.Run("rejects an unknown email", func(t *testing.T) {
		service, userRepo, _, _ := newTestService(t)

		userRepo.EXPECT().GetUserByEmail("nobody@salesup.app").Return(nil, nil)

		_, _, err := service.Login("nobody@salesup.app", "secret-pass")

		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("rejects missing credentials", func(t *testing.T) {
		service, _, _, _ := newTestService(t)

		_, _, err := service.Login("", "")

		assert.ErrorIs(t, err, ErrMissingRequiredData)
	})

	t.Run("tolerates a failed last-login update", func(t *testing.T) {
		service, userRepo, _, _ := newTestService(t)

		user := activeUser()
		user.PasswordHash = hashPassword(t, "secret-pass")

		userRepo.EXPECT().GetUserByEmail("agent@salesup.app").Return(user, nil)
		userRepo.EXPECT().TouchLastLogin("user-1", testNow).Return(assert.AnError)

		token, _, err := service.Login("agent@salesup.app", "secret-pass")

		assert.NoError(t, err)
		assert.NotEmpty(t, token)
	})
}

func TestService_SignupWithInvitation(t *testing.T) {
	validSignup := func() *SignupInput {
		return &SignupInput{
			Email:           "new.agent@salesup.app",
			FirstName:       "New",
			LastName:        "Agent",
			Password:        "long-enough-pass",
			InvitationToken: "valid-token",
		}
	}

	pendingInvitation := func() *domain.Invitation {
		return &domain.Invitation{
			ID:        "inv-1",
			Email:     "new.agent@salesup.app",
			Token:     "valid-token",
			Status:    domain.InvitationPending,
			InvitedBy: "manager-1",
			ExpiresAt: testNow.AddDate(0, 0, 3),
		}
	}

	t.Run("creates the agent and consumes the invitation", func(t *testing.T) {
		service, userRepo, invitationRepo, mailSender := newTestService(t)

		invitationRepo.EXPECT().GetByToken("valid-token").Return(pendingInvitation(), nil)
		userRepo.EXPECT().GetUserByEmail("new.agent@salesup.app").Return(nil, nil)
		userRepo.EXPECT().
			CreateUser(gomock.Any()).
			DoAndReturn(func(user *domain.User) (*domain.User, error) {
				return user, nil
			})
		invitationRepo.EXPECT().UpdateStatus("inv-1", domain.InvitationAccepted, gomock.Any()).Return(nil)
		mailSender.EXPECT().
			SendWelcomeEmail(mailer.WelcomeEmailData{
				Email:     "new.agent@salesup.app",
				FirstName: "New",
				LastName:  "Agent",
			}).
			Return(nil)

		user, err := service.SignupWithInvitation(validSignup())

		require.NoError(t, err)
		assert.NotEmpty(t, user.ID)
		assert.Equal(t, domain.RoleAgent, user.Role)
		assert.True(t, user.Active)
		require.NotNil(t, user.InvitedBy)
		assert.Equal(t, "manager-1", *user.InvitedBy)
		assert.Empty(t, user.PasswordHash)
	})

	t.Run("rejects an expired invitation and marks it", func(t *testing.T) {
		service, _, invitationRepo, _ := newTestService(t)

		invitation := pendingInvitation()
		invitation.ExpiresAt = testNow.AddDate(0, 0, -1)

		invitationRepo.EXPECT().GetByToken("valid-token").Return(invitation, nil)
		invitationRepo.EXPECT().UpdateStatus("inv-1", domain.InvitationExpired, nil).Return(nil)

		user, err := service.SignupWithInvitation(validSignup())

		assert.ErrorIs(t, err, ErrExpiredToken)
		assertAuthCode(t, err, apiErrors.ErrInvitationExpired)
		assert.Nil(t, user)
	})

	t.Run("rejects an invitation issued for another email", func(t *testing.T) {
		service, _, invitationRepo, _ := newTestService(t)

		invitation := pendingInvitation()
		invitation.Email = "someone.else@salesup.app"

		invitationRepo.EXPECT().GetByToken("valid-token").Return(invitation, nil)

		user, err := service.SignupWithInvitation(validSignup())

		assert.ErrorIs(t, err, ErrInvalidToken)
		assert.Nil(t, user)
	})

	t.Run("rejects an unknown token", func(t *testing.T) {
		service, _, invitationRepo, _ := newTestService(t)

		invitationRepo.EXPECT().GetByToken("valid-token").Return(nil, nil)

		user, err := service.SignupWithInvitation(validSignup())

		assert.ErrorIs(t, err, ErrInvalidToken)
		assert.Nil(t, user)
	})

	t.Run("rejects an email that already has an account", func(t *testing.T) {
		service, userRepo, invitationRepo, _ := newTestService(t)

		invitationRepo.EXPECT().GetByToken("valid-token").Return(pendingInvitation(), nil)
		userRepo.EXPECT().GetUserByEmail("new.agent@salesup.app").Return(&domain.User{ID: "user-9"}, nil)

		user, err := service.SignupWithInvitation(validSignup())

		assert.ErrorIs(t, err, ErrUserAlreadyExists)
		assert.Nil(t, user)
	})

	t.Run("rejects a short password", func(t *testing.T) {
		service, _, _, _ := newTestService(t)

		input := validSignup()
		input.Password = "short"

		user, err := service.SignupWithInvitation(input)

		assert.ErrorIs(t, err, ErrWeakPassword)
		assert.Nil(t, user)
	})

	t.Run("rejects missing fields", func(t *testing.T) {
		service, _, _, _ := newTestService(t)

		input := validSignup()
		input.FirstName = ""

		user, err := service.SignupWithInvitation(input)

		assert.ErrorIs(t, err, ErrMissingRequiredData)
		assert.Nil(t, user)
	})
}

func TestService_ChangePassword(t *testing.T) {
	userWithPassword := func(t *testing.T, password string) *domain.User {
		return &domain.User{
			ID:           "user-1",
			Email:        "agent@salesup.app",
			PasswordHash: hashPassword(t, password),
			Active:       true,
		}
	}

	t.Run("rehashes and stores the new password", func(t *testing.T) {
		service, userRepo, _, _ := newTestService(t)

		userRepo.EXPECT().GetUserByID("user-1").Return(userWithPassword(t, "old-password"), nil)
		userRepo.EXPECT().
			UpdateUser(gomock.Any()).
			DoAndReturn(func(user *domain.User) error {
				err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("new-password-123"))
				assert.NoError(t, err)
				return nil
			})

		err := service.ChangePassword("user-1", "old-password", "new-password-123")

		assert.NoError(t, err)
	})

	t.Run("rejects a wrong current password", func(t *testing.T) {
		service, userRepo, _, _ := newTestService(t)

		userRepo.EXPECT().GetUserByID("user-1").Return(userWithPassword(t, "old-password"), nil)

		err := service.ChangePassword("user-1", "not-the-password", "new-password-123")

		assert.ErrorIs(t, err, ErrPasswordMismatch)
	})

	t.Run("rejects reusing the current password", func(t *testing.T) {
		service, _, _, _ := newTestService(t)

		err := service.ChangePassword("user-1", "same-password", "same-password")

		assert.ErrorIs(t, err, ErrSamePassword)
	})

	t.Run("rejects a short new password", func(t *testing.T) {
		service, _, _, _ := newTestService(t)

		err := service.ChangePassword("user-1", "old-password", "short")

		assert.ErrorIs(t, err, ErrWeakPassword)
	})
}

func TestService_ValidateToken(t *testing.T) {
	t.Run("rejects garbage", func(t *testing.T) {
		service, _, _, _ := newTestService(t)

		claims, err := service.ValidateToken("not-a-jwt")

		assert.Error(t, err)
		assert.Nil(t, claims)
	})

	t.Run("rejects a token signed with another secret", func(t *testing.T) {
		service, _, _, _ := newTestService(t)

		other := &Service{
			cfg: &config.Config{Auth: config.Auth{Secret: "other-secret", TokenTTL: time.Hour}},
			now: func() time.Time { return testNow },
		}
		token, err := other.generateJWT(&domain.User{ID: "user-1", Role: domain.RoleAgent})
		require.NoError(t, err)

		claims, err := service.ValidateToken(token)

		assert.Error(t, err)
		assert.Nil(t, claims)
	})

	t.Run("rejects an expired token", func(t *testing.T) {
		service, _, _, _ := newTestService(t)

		expired := &Service{
			cfg: service.cfg,
			now: func() time.Time { return testNow.Add(-48 * time.Hour) },
		}
		token, err := expired.generateJWT(&domain.User{ID: "user-1", Role: domain.RoleAgent})
		require.NoError(t, err)

		claims, err := service.ValidateToken(token)

		assert.Error(t, err)
		assert.Nil(t, claims)
	})
}

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Agent@SalesUp.app", "agent@salesup.app"},
		{"  agent@salesup.app  ", "agent@salesup.app"},
		{"agent @salesup.app", "agent@salesup.app"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, normalizeEmail(tt.input))
	}
}
