package commands_test

import (
	"testing"
	"time"

	"aidmatch/internal/core/application/usecases/commands"
	"aidmatch/internal/core/domain/model/kernel"
	"aidmatch/internal/core/domain/model/request"
	"aidmatch/internal/core/domain/model/volunteer"
	"aidmatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCompleteRequestCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	requestID := kernel.NewUUID()
	volunteerID := kernel.NewUUID()

	cmd, err := commands.NewCompleteRequestCommand(requestID, volunteerID)
	require.NoError(t, err)

	aggregate := createApprovedRequest(t, requestID, volunteerID)
	assignee, err := volunteer.RestoreVolunteer(volunteerID, "Asha", kernel.NewUUID(), 2)
	require.NoError(t, err)

	requestRepo := new(MockRequestRepository)
	volunteerRepo := new(MockVolunteerRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("RequestRepository").Return(requestRepo).Once(),
		uow.On("VolunteerRepository").Return(volunteerRepo).Once(),
		volunteerRepo.On("GetForUpdate", ctx, volunteerID).Return(assignee, nil).Once(),
		requestRepo.On("Get", ctx, requestID).Return(aggregate, nil).Once(),
		requestRepo.On("Update", ctx, mock.AnythingOfType("*request.AssistanceRequest")).Return(nil).Once(),
		volunteerRepo.On("Update", ctx, mock.AnythingOfType("*volunteer.Volunteer")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCompleteRequestCommandHandler(factory)
	result, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, request.Completed, result.Status())
	assert.Equal(t, 1, assignee.TaskCount(), "completion should free one capacity slot")
	requestRepo.AssertExpectations(t)
	volunteerRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCompleteRequestCommandHandler_Handle_NotOwner(t *testing.T) {
	ctx := t.Context()

	requestID := kernel.NewUUID()
	assigneeID := kernel.NewUUID()
	intruderID := kernel.NewUUID()

	cmd, err := commands.NewCompleteRequestCommand(requestID, intruderID)
	require.NoError(t, err)

	aggregate := createApprovedRequest(t, requestID, assigneeID)
	intruder, err := volunteer.RestoreVolunteer(intruderID, "Mira", kernel.NewUUID(), 1)
	require.NoError(t, err)

	requestRepo := new(MockRequestRepository)
	volunteerRepo := new(MockVolunteerRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("RequestRepository").Return(requestRepo).Once(),
		uow.On("VolunteerRepository").Return(volunteerRepo).Once(),
		volunteerRepo.On("GetForUpdate", ctx, intruderID).Return(intruder, nil).Once(),
		requestRepo.On("Get", ctx, requestID).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCompleteRequestCommandHandler(factory)
	result, err := handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, request.ErrNotOwner)
	assert.Nil(t, result)
	assert.Equal(t, request.Approved, aggregate.Status(), "failed completion must not change status")
	assert.Equal(t, 1, intruder.TaskCount(), "failed completion must not release capacity")
	requestRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	volunteerRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestCompleteRequestCommandHandler_Handle_AlreadyCompleted(t *testing.T) {
	ctx := t.Context()

	requestID := kernel.NewUUID()
	volunteerID := kernel.NewUUID()

	cmd, err := commands.NewCompleteRequestCommand(requestID, volunteerID)
	require.NoError(t, err)

	// The request was completed by a transaction that committed while this
	// one waited on the assignee's row lock; the fresh read must stop the
	// second completion before it decrements the counter again.
	now := time.Now().UTC()
	aggregate, err := request.RestoreAssistanceRequest(
		requestID, kernel.NewUUID(), kernel.NewUUID(),
		request.KindVolunteerAssistance, request.CategoryMedical, request.PriorityNormal,
		"", request.Schedule{}, request.Completed,
		&volunteerID, nil, now, now,
	)
	require.NoError(t, err)

	assignee, err := volunteer.RestoreVolunteer(volunteerID, "Asha", kernel.NewUUID(), 1)
	require.NoError(t, err)

	requestRepo := new(MockRequestRepository)
	volunteerRepo := new(MockVolunteerRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("RequestRepository").Return(requestRepo).Once(),
		uow.On("VolunteerRepository").Return(volunteerRepo).Once(),
		volunteerRepo.On("GetForUpdate", ctx, volunteerID).Return(assignee, nil).Once(),
		requestRepo.On("Get", ctx, requestID).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCompleteRequestCommandHandler(factory)
	result, err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.Nil(t, result)
	assert.Equal(t, 1, assignee.TaskCount(), "repeated completion must not release capacity twice")
	requestRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	volunteerRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestCompleteRequestCommandHandler_Handle_RequestNotFound(t *testing.T) {
	ctx := t.Context()

	volunteerID := kernel.NewUUID()
	cmd, err := commands.NewCompleteRequestCommand(kernel.NewUUID(), volunteerID)
	require.NoError(t, err)

	assignee, err := volunteer.RestoreVolunteer(volunteerID, "Asha", kernel.NewUUID(), 1)
	require.NoError(t, err)

	requestRepo := new(MockRequestRepository)
	volunteerRepo := new(MockVolunteerRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("RequestRepository").Return(requestRepo).Once(),
		uow.On("VolunteerRepository").Return(volunteerRepo).Once(),
		volunteerRepo.On("GetForUpdate", ctx, volunteerID).Return(assignee, nil).Once(),
		requestRepo.On("Get", ctx, mock.AnythingOfType("kernel.UUID")).Return(nil, errs.ErrObjectNotFound).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCompleteRequestCommandHandler(factory)
	result, err := handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	assert.Nil(t, result)
}

func TestCompleteRequestCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.CompleteRequestCommand{} // not constructed properly

	factory := new(MockUoWFactory)
	handler := commands.NewCompleteRequestCommandHandler(factory)
	result, err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.Nil(t, result)
	factory.AssertNotCalled(t, "Create")
}
