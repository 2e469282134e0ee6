package commands_test

import (
	"errors"
	"testing"

	"aidmatch/internal/core/application/usecases/commands"
	"aidmatch/internal/core/domain/model/kernel"
	"aidmatch/internal/core/domain/model/request"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSubmitRequestCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	requestID := kernel.NewUUID()
	cmd, err := commands.NewSubmitRequestCommand(
		requestID, kernel.NewUUID(), kernel.NewUUID(),
		request.KindVolunteerAssistance, request.CategoryMedical, request.PriorityNormal,
		"pick up prescription", request.Schedule{Date: "2026-09-05", Time: "10:00"},
	)
	require.NoError(t, err)

	requestRepo := new(MockRequestRepository)
	uow := new(MockRequestUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("RequestRepository").Return(requestRepo).Once(),
		requestRepo.On("Add", ctx, mock.MatchedBy(func(r *request.AssistanceRequest) bool {
			return r.ID().IsEqual(requestID) && r.Status() == request.Pending
		})).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockRequestUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewSubmitRequestCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	requestRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestSubmitRequestCommandHandler_Handle_AddError(t *testing.T) {
	ctx := t.Context()

	cmd, err := commands.NewSubmitRequestCommand(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		request.KindAmbulance, request.CategoryNone, request.PriorityUrgent,
		"", request.Schedule{},
	)
	require.NoError(t, err)

	requestRepo := new(MockRequestRepository)
	uow := new(MockRequestUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("RequestRepository").Return(requestRepo).Once(),
		requestRepo.On("Add", ctx, mock.AnythingOfType("*request.AssistanceRequest")).
			Return(errors.New("database error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockRequestUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewSubmitRequestCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.EqualError(t, err, "database error")
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestSubmitRequestCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.SubmitRequestCommand{} // not constructed properly

	factory := new(MockRequestUoWFactory)
	handler := commands.NewSubmitRequestCommandHandler(factory)
	err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrSubmitRequestCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}
