package inviting

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/rylessKechit/salesup/infrastructure/mailer"
	"github.com/rylessKechit/salesup/infrastructure/repository"
	"github.com/rylessKechit/salesup/internal/config"
	"github.com/rylessKechit/salesup/internal/domain"
	"github.com/rylessKechit/salesup/pkg/utils"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var (
	ErrMissingFields      = errors.New("email, first name and last name are required")
	ErrInvalidEmail       = errors.New("invalid email format")
	ErrAlreadyRegistered  = errors.New("a user with this email already exists")
	ErrAlreadyInvited     = errors.New("a pending invitation already exists for this email")
	ErrInvitationNotFound = errors.New("invitation not found")
	ErrInvitationExpired  = errors.New("invitation has expired")
	ErrNotOwner           = errors.New("invitation belongs to another manager")
	ErrNotPending         = errors.New("only pending invitations can be cancelled")
)

// Inviter manages the invitation lifecycle for managers building
// their teams.
type Inviter interface {
	Create(manager *domain.User, input *CreateInput) (*domain.Invitation, error)
	List(managerID string) ([]*domain.Invitation, error)
	Cancel(managerID, invitationID string) error
	ValidateToken(token string) (*domain.Invitation, error)
}

// CreateInput is the payload for inviting a new agent
type CreateInput struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type Service struct {
	invitationRepo repository.InvitationRepository
	userRepo       repository.UserRepository
	mailSender     mailer.Mailer
	cfg            *config.Config
	now            func() time.Time
}

func NewService(
	invitationRepo repository.InvitationRepository,
	userRepo repository.UserRepository,
	mailSender mailer.Mailer,
	cfg *config.Config,
) Inviter {
	return &Service{
		invitationRepo: invitationRepo,
		userRepo:       userRepo,
		mailSender:     mailSender,
		cfg:            cfg,
		now:            time.Now,
	}
}

// Create issues a new invitation and emails the invite link. The email
// must not belong to an existing user or another pending invitation.
func (s *Service) Create(manager *domain.User, input *CreateInput) (*domain.Invitation, error) {
	if input.Email == "" || input.FirstName == "" || input.LastName == "" {
		return nil, ErrMissingFields
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if !emailPattern.MatchString(email) {
		return nil, ErrInvalidEmail
	}

	existingUser, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		return nil, errors.Wrap(err, "looking up user")
	}
	if existingUser != nil {
		return nil, ErrAlreadyRegistered
	}

	pending, err := s.invitationRepo.GetPendingByEmail(email)
	if err != nil {
		return nil, errors.Wrap(err, "looking up pending invitation")
	}
	if pending != nil {
		return nil, ErrAlreadyInvited
	}

	token, err := utils.GenerateInviteToken()
	if err != nil {
		return nil, errors.Wrap(err, "generating invite token")
	}

	now := s.now()
	invitation := &domain.Invitation{
		ID:            uuid.NewString(),
		Email:         email,
		FirstName:     strings.TrimSpace(input.FirstName),
		LastName:      strings.TrimSpace(input.LastName),
		Token:         token,
		Status:        domain.InvitationPending,
		InvitedBy:     manager.ID,
		InvitedByName: fmt.Sprintf("%s %s", manager.FirstName, manager.LastName),
		ExpiresAt:     now.AddDate(0, 0, s.cfg.Invitation.ExpiryDays),
	}

	invitation, err = s.invitationRepo.Create(invitation)
	if err != nil {
		return nil, errors.Wrap(err, "creating invitation")
	}

	if err := s.mailSender.SendInvitationEmail(mailer.InvitationEmailData{
		Email:         invitation.Email,
		FirstName:     invitation.FirstName,
		LastName:      invitation.LastName,
		InvitedByName: invitation.InvitedByName,
		InviteURL:     fmt.Sprintf("%s/invite/%s", s.cfg.App.BaseURL, token),
	}); err != nil {
		logrus.WithError(err).WithField("invitation_id", invitation.ID).Warn("sending invitation email")
	}

	logrus.WithFields(logrus.Fields{
		"invitation_id": invitation.ID,
		"invited_by":    manager.ID,
	}).Info("invitation created")

	return invitation, nil
}

func (s *Service) List(managerID string) ([]*domain.Invitation, error) {
	return s.invitationRepo.ListByManager(managerID)
}

// Cancel withdraws a pending invitation. Only the manager who created
// it can cancel it.
func (s *Service) Cancel(managerID, invitationID string) error {
	invitation, err := s.invitationRepo.GetByID(invitationID)
	if err != nil {
		return errors.Wrap(err, "looking up invitation")
	}
	if invitation == nil {
		return ErrInvitationNotFound
	}
	if invitation.InvitedBy != managerID {
		return ErrNotOwner
	}
	if invitation.Status != domain.InvitationPending {
		return ErrNotPending
	}

	return s.invitationRepo.UpdateStatus(invitationID, domain.InvitationCancelled, nil)
}

// ValidateToken resolves an invite link to its invitation. Expired
// invitations are marked as such on the way out, and invitations whose
// email already belongs to a user are closed as accepted.
func (s *Service) ValidateToken(token string) (*domain.Invitation, error) {
	invitation, err := s.invitationRepo.GetByToken(token)
	if err != nil {
		return nil, errors.Wrap(err, "looking up invitation")
	}
	if invitation == nil {
		return nil, ErrInvitationNotFound
	}

	if invitation.Expired(s.now()) {
		if err := s.invitationRepo.UpdateStatus(invitation.ID, domain.InvitationExpired, nil); err != nil {
			logrus.WithError(err).WithField("invitation_id", invitation.ID).Warn("marking invitation expired")
		}
		return nil, ErrInvitationExpired
	}

	existingUser, err := s.userRepo.GetUserByEmail(invitation.Email)
	if err != nil {
		return nil, errors.Wrap(err, "looking up user")
	}
	if existingUser != nil {
		if err := s.invitationRepo.UpdateStatus(invitation.ID, domain.InvitationAccepted, &existingUser.ID); err != nil {
			logrus.WithError(err).WithField("invitation_id", invitation.ID).Warn("closing invitation for existing user")
		}
		return nil, ErrAlreadyRegistered
	}

	return invitation, nil
}
