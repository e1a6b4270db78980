package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	repomocks "github.com/rylessKechit/salesup/infrastructure/repository/mocks"
)

func TestInvitationExpiryService_ExpireInvitations(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockInvitationRepo := repomocks.NewMockInvitationRepository(ctrl)

	service := &InvitationExpiryService{
		invitationRepo: mockInvitationRepo,
		enabled:        true,
	}

	t.Run("expires overdue pending invitations", func(t *testing.T) {
		mockInvitationRepo.EXPECT().ExpirePending(gomock.Any()).Return(int64(3), nil)

		err := service.ExpireInvitations()

		assert.NoError(t, err)
	})

	t.Run("fails when the sweep fails", func(t *testing.T) {
		mockInvitationRepo.EXPECT().ExpirePending(gomock.Any()).Return(int64(0), assert.AnError)

		err := service.ExpireInvitations()

		assert.Error(t, err)
	})

	t.Run("records the run in the status", func(t *testing.T) {
		mockInvitationRepo.EXPECT().ExpirePending(gomock.Any()).Return(int64(0), nil)

		require.NoError(t, service.ExpireInvitations())

		status := service.Status()
		assert.False(t, status.Running)
		assert.NotNil(t, status.LastStartedAt)
		assert.NotNil(t, status.LastCompletedAt)
	})
}
