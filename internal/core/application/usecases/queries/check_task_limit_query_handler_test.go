package queries_test

import (
	"testing"

	"aidmatch/internal/core/application/usecases/queries"
	"aidmatch/internal/core/domain/model/kernel"
	"aidmatch/internal/core/domain/model/volunteer"
	"aidmatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckTaskLimitQueryHandler_Handle(t *testing.T) {
	ctx := t.Context()

	t.Run("should report below limit", func(t *testing.T) {
		volunteerID := kernel.NewUUID()
		seeker, err := volunteer.RestoreVolunteer(volunteerID, "Asha", kernel.NewUUID(), 3)
		require.NoError(t, err)

		volunteerRepo := new(MockVolunteerRepository)
		volunteerRepo.On("Get", ctx, volunteerID).Return(seeker, nil).Once()

		query, err := queries.NewCheckTaskLimitQuery(volunteerID)
		require.NoError(t, err)

		handler := queries.NewCheckTaskLimitQueryHandler(volunteerRepo, volunteer.DefaultTaskCeiling)
		atLimit, err := handler.Handle(ctx, query)

		require.NoError(t, err)
		assert.False(t, atLimit)
		volunteerRepo.AssertExpectations(t)
	})

	t.Run("should report at limit", func(t *testing.T) {
		volunteerID := kernel.NewUUID()
		seeker, err := volunteer.RestoreVolunteer(volunteerID, "Asha", kernel.NewUUID(), volunteer.DefaultTaskCeiling)
		require.NoError(t, err)

		volunteerRepo := new(MockVolunteerRepository)
		volunteerRepo.On("Get", ctx, volunteerID).Return(seeker, nil).Once()

		query, err := queries.NewCheckTaskLimitQuery(volunteerID)
		require.NoError(t, err)

		handler := queries.NewCheckTaskLimitQueryHandler(volunteerRepo, volunteer.DefaultTaskCeiling)
		atLimit, err := handler.Handle(ctx, query)

		require.NoError(t, err)
		assert.True(t, atLimit)
	})

	t.Run("should respect a custom ceiling", func(t *testing.T) {
		volunteerID := kernel.NewUUID()
		seeker, err := volunteer.RestoreVolunteer(volunteerID, "Asha", kernel.NewUUID(), 2)
		require.NoError(t, err)

		volunteerRepo := new(MockVolunteerRepository)
		volunteerRepo.On("Get", ctx, volunteerID).Return(seeker, nil).Once()

		query, err := queries.NewCheckTaskLimitQuery(volunteerID)
		require.NoError(t, err)

		handler := queries.NewCheckTaskLimitQueryHandler(volunteerRepo, 2)
		atLimit, err := handler.Handle(ctx, query)

		require.NoError(t, err)
		assert.True(t, atLimit)
	})

	t.Run("should propagate unknown volunteer", func(t *testing.T) {
		volunteerID := kernel.NewUUID()

		volunteerRepo := new(MockVolunteerRepository)
		volunteerRepo.On("Get", ctx, volunteerID).
			Return(nil, errs.NewObjectNotFoundError("volunteer", volunteerID.String())).Once()

		query, err := queries.NewCheckTaskLimitQuery(volunteerID)
		require.NoError(t, err)

		handler := queries.NewCheckTaskLimitQueryHandler(volunteerRepo, volunteer.DefaultTaskCeiling)
		_, err = handler.Handle(ctx, query)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("should fail validation for zero value query", func(t *testing.T) {
		volunteerRepo := new(MockVolunteerRepository)

		handler := queries.NewCheckTaskLimitQueryHandler(volunteerRepo, volunteer.DefaultTaskCeiling)
		_, err := handler.Handle(ctx, queries.CheckTaskLimitQuery{})

		require.ErrorIs(t, err, queries.ErrCheckTaskLimitQueryIsNotConstructed)
		volunteerRepo.AssertNotCalled(t, "Get")
	})
}

func TestNewCheckTaskLimitQuery_InvalidVolunteerID(t *testing.T) {
	_, err := queries.NewCheckTaskLimitQuery(kernel.UUID{})

	require.Error(t, err)
}
