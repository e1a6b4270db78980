package inviting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/rylessKechit/salesup/infrastructure/mailer"
	mailermocks "github.com/rylessKechit/salesup/infrastructure/mailer/mocks"
	"github.com/rylessKechit/salesup/infrastructure/repository/mocks"
	"github.com/rylessKechit/salesup/internal/config"
	"github.com/rylessKechit/salesup/internal/domain"
)

var testNow = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (*Service, *mocks.MockInvitationRepository, *mocks.MockUserRepository, *mailermocks.MockMailer) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	invitationRepo := mocks.NewMockInvitationRepository(ctrl)
	userRepo := mocks.NewMockUserRepository(ctrl)
	mailSender := mailermocks.NewMockMailer(ctrl)

	service := &Service{
		invitationRepo: invitationRepo,
		userRepo:       userRepo,
		mailSender:     mailSender,
		cfg: &config.Config{
			App:        config.App{BaseURL: "http://localhost:3000"},
			Invitation: config.Invitation{ExpiryDays: 7},
		},
		now: func() time.Time { return testNow },
	}

	return service, invitationRepo, userRepo, mailSender
}

func manager() *domain.User {
	return &domain.User{
		ID:        "manager-1",
		FirstName: "Marc",
		LastName:  "Dupont",
		Role:      domain.RoleManager,
	}
}

func TestService_Create(t *testing.T) {
	input := func() *CreateInput {
		return &CreateInput{
			Email:     "New.Agent@salesup.app",
			FirstName: "New",
			LastName:  "Agent",
		}
	}

	t.Run("creates the invitation and sends the invite email", func(t *testing.T) {
		service, invitationRepo, userRepo, mailSender := newTestService(t)

		userRepo.EXPECT().GetUserByEmail("new.agent@salesup.app").Return(nil, nil)
		invitationRepo.EXPECT().GetPendingByEmail("new.agent@salesup.app").Return(nil, nil)
		invitationRepo.EXPECT().
			Create(gomock.Any()).
			DoAndReturn(func(invitation *domain.Invitation) (*domain.Invitation, error) {
				return invitation, nil
			})

		var sent mailer.InvitationEmailData
		mailSender.EXPECT().
			SendInvitationEmail(gomock.Any()).
			DoAndReturn(func(data mailer.InvitationEmailData) error {
				sent = data
				return nil
			})

		invitation, err := service.Create(manager(), input())

		require.NoError(t, err)
		assert.NotEmpty(t, invitation.ID)
		assert.NotEmpty(t, invitation.Token)
		assert.Equal(t, "new.agent@salesup.app", invitation.Email)
		assert.Equal(t, domain.InvitationPending, invitation.Status)
		assert.Equal(t, "manager-1", invitation.InvitedBy)
		assert.Equal(t, "Marc Dupont", invitation.InvitedByName)
		assert.Equal(t, testNow.AddDate(0, 0, 7), invitation.ExpiresAt)

		assert.Equal(t, "new.agent@salesup.app", sent.Email)
		assert.Equal(t, "Marc Dupont", sent.InvitedByName)
		assert.Equal(t, "http://localhost:3000/invite/"+invitation.Token, sent.InviteURL)
	})

	t.Run("tolerates a failed invite email", func(t *testing.T) {
		service, invitationRepo, userRepo, mailSender := newTestService(t)

		userRepo.EXPECT().GetUserByEmail(gomock.Any()).Return(nil, nil)
		invitationRepo.EXPECT().GetPendingByEmail(gomock.Any()).Return(nil, nil)
		invitationRepo.EXPECT().
			Create(gomock.Any()).
			DoAndReturn(func(invitation *domain.Invitation) (*domain.Invitation, error) {
				return invitation, nil
			})
		mailSender.EXPECT().SendInvitationEmail(gomock.Any()).Return(assert.AnError)

		invitation, err := service.Create(manager(), input())

		assert.NoError(t, err)
		assert.NotNil(t, invitation)
	})

	t.Run("rejects an email that already has an account", func(t *testing.T) {
		service, _, userRepo, _ := newTestService(t)

		userRepo.EXPECT().GetUserByEmail("new.agent@salesup.app").Return(&domain.User{ID: "user-9"}, nil)

		invitation, err := service.Create(manager(), input())

		assert.ErrorIs(t, err, ErrAlreadyRegistered)
		assert.Nil(t, invitation)
	})

	t.Run("rejects an email with a pending invitation", func(t *testing.T) {
		service, invitationRepo, userRepo, _ := newTestService(t)

		userRepo.EXPECT().GetUserByEmail("new.agent@salesup.app").Return(nil, nil)
		invitationRepo.EXPECT().GetPendingByEmail("new.agent@salesup.app").Return(&domain.Invitation{ID: "inv-9"}, nil)

		invitation, err := service.Create(manager(), input())

		assert.ErrorIs(t, err, ErrAlreadyInvited)
		assert.Nil(t, invitation)
	})

	t.Run("rejects a malformed email", func(t *testing.T) {
		service, _, _, _ := newTestService(t)

		bad := input()
		bad.Email = "not-an-email"

		invitation, err := service.Create(manager(), bad)

		assert.ErrorIs(t, err, ErrInvalidEmail)
		assert.Nil(t, invitation)
	})

	t.Run("rejects missing fields", func(t *testing.T) {
		service, _, _, _ := newTestService(t)

		bad := input()
		bad.FirstName = ""

		invitation, err := service.Create(manager(), bad)

		assert.ErrorIs(t, err, ErrMissingFields)
		assert.Nil(t, invitation)
	})
}

func TestService_Cancel(t *testing.T) {
	pending := func() *domain.Invitation {
		return &domain.Invitation{
			ID:        "inv-1",
			Status:    domain.InvitationPending,
			InvitedBy: "manager-1",
		}
	}

	t.Run("cancels a pending invitation", func(t *testing.T) {
		service, invitationRepo, _, _ := newTestService(t)

		invitationRepo.EXPECT().GetByID("inv-1").Return(pending(), nil)
		invitationRepo.EXPECT().UpdateStatus("inv-1", domain.InvitationCancelled, nil).Return(nil)

		err := service.Cancel("manager-1", "inv-1")

		assert.NoError(t, err)
	})

	t.Run("rejects another manager's invitation", func(t *testing.T) {
		service, invitationRepo, _, _ := newTestService(t)

		invitationRepo.EXPECT().GetByID("inv-1").Return(pending(), nil)

		err := service.Cancel("manager-2", "inv-1")

		assert.ErrorIs(t, err, ErrNotOwner)
	})

	t.Run("rejects a non-pending invitation", func(t *testing.T) {
		service, invitationRepo, _, _ := newTestService(t)

		accepted := pending()
		accepted.Status = domain.InvitationAccepted
		invitationRepo.EXPECT().GetByID("inv-1").Return(accepted, nil)

		err := service.Cancel("manager-1", "inv-1")

		assert.ErrorIs(t, err, ErrNotPending)
	})

	t.Run("rejects an unknown invitation", func(t *testing.T) {
		service, invitationRepo, _, _ := newTestService(t)

		invitationRepo.EXPECT().GetByID("missing").Return(nil, nil)

		err := service.Cancel("manager-1", "missing")

		assert.ErrorIs(t, err, ErrInvitationNotFound)
	})
}

func TestService_ValidateToken(t *testing.T) {
	valid := func() *domain.Invitation {
		return &domain.Invitation{
			ID:        "inv-1",
			Email:     "new.agent@salesup.app",
			Token:     "token-1",
			Status:    domain.InvitationPending,
			ExpiresAt: testNow.AddDate(0, 0, 3),
		}
	}

	t.Run("returns the invitation for a valid token", func(t *testing.T) {
		service, invitationRepo, userRepo, _ := newTestService(t)

		invitationRepo.EXPECT().GetByToken("token-1").Return(valid(), nil)
		userRepo.EXPECT().GetUserByEmail("new.agent@salesup.app").Return(nil, nil)

		invitation, err := service.ValidateToken("token-1")

		require.NoError(t, err)
		assert.Equal(t, "inv-1", invitation.ID)
	})

	t.Run("marks an expired invitation on the way out", func(t *testing.T) {
		service, invitationRepo, _, _ := newTestService(t)

		expired := valid()
		expired.ExpiresAt = testNow.AddDate(0, 0, -1)

		invitationRepo.EXPECT().GetByToken("token-1").Return(expired, nil)
		invitationRepo.EXPECT().UpdateStatus("inv-1", domain.InvitationExpired, nil).Return(nil)

		invitation, err := service.ValidateToken("token-1")

		assert.ErrorIs(t, err, ErrInvitationExpired)
		assert.Nil(t, invitation)
	})

	t.Run("closes the invitation when the email already has an account", func(t *testing.T) {
		service, invitationRepo, userRepo, _ := newTestService(t)

		existing := &domain.User{ID: "user-9"}
		invitationRepo.EXPECT().GetByToken("token-1").Return(valid(), nil)
		userRepo.EXPECT().GetUserByEmail("new.agent@salesup.app").Return(existing, nil)
		invitationRepo.EXPECT().UpdateStatus("inv-1", domain.InvitationAccepted, &existing.ID).Return(nil)

		invitation, err := service.ValidateToken("token-1")

		assert.ErrorIs(t, err, ErrAlreadyRegistered)
		assert.Nil(t, invitation)
	})

	t.Run("rejects an unknown token", func(t *testing.T) {
		service, invitationRepo, _, _ := newTestService(t)

		invitationRepo.EXPECT().GetByToken("nope").Return(nil, nil)

		invitation, err := service.ValidateToken("nope")

		assert.ErrorIs(t, err, ErrInvitationNotFound)
		assert.Nil(t, invitation)
	})
}
