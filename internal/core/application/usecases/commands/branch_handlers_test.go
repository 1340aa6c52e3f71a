package commands_test

import (
	"testing"

	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/domain/model/branch"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateBranchCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	limit := 40
	cmd, err := commands.NewCreateBranchCommand(kernel.NewUUID(), kernel.NewUUID(), " Rosario Centro ", &limit)
	require.NoError(t, err)
	limit = 1

	branches := new(MockBranchRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("BranchRepository").Return(branches).Once(),
		branches.On("Add", ctx, mock.AnythingOfType("*branch.Branch")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockBranchUoWFactory)
	factory.On("Create").Return(uow).Once()

	require.NoError(t, commands.NewCreateBranchCommandHandler(factory, nil).Handle(ctx, cmd))

	stored := branches.Calls[0].Arguments[1].(*branch.Branch)
	assert.Equal(t, "Rosario Centro", stored.Name())
	assert.Equal(t, branch.Active, stored.Status())
	assert.Equal(t, 0, stored.CurrentLoad())
	require.NotNil(t, stored.CapacityLimit())
	assert.Equal(t, 40, *stored.CapacityLimit())
	uow.AssertExpectations(t)
}

func TestUpdateBranchCapacityCommandHandler_Handle_BelowLoad(t *testing.T) {
	ctx := t.Context()
	branchID := kernel.NewUUID()
	limit := 2
	cmd, err := commands.NewUpdateBranchCapacityCommand(branchID, &limit)
	require.NoError(t, err)

	branches := new(MockBranchRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("BranchRepository").Return(branches).Once(),
		branches.On("UpdateCapacity", ctx, branchID, &limit).Return(branch.ErrCapacityBelowLoad).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockBranchUoWFactory)
	factory.On("Create").Return(uow).Once()

	err = commands.NewUpdateBranchCapacityCommandHandler(factory, nil).Handle(ctx, cmd)

	require.ErrorIs(t, err, branch.ErrCapacityBelowLoad)
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestUpdateBranchCapacityCommandHandler_Handle_RemoveLimit(t *testing.T) {
	ctx := t.Context()
	branchID := kernel.NewUUID()
	cmd, err := commands.NewUpdateBranchCapacityCommand(branchID, nil)
	require.NoError(t, err)

	branches := new(MockBranchRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("BranchRepository").Return(branches).Once(),
		branches.On("UpdateCapacity", ctx, branchID, (*int)(nil)).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockBranchUoWFactory)
	factory.On("Create").Return(uow).Once()

	require.NoError(t, commands.NewUpdateBranchCapacityCommandHandler(factory, nil).Handle(ctx, cmd))
	branches.AssertExpectations(t)
}

func TestNewCreateBranchCommand_InvalidInput(t *testing.T) {
	negative := -5
	_, err := commands.NewCreateBranchCommand(kernel.UUID{}, kernel.NewUUID(), "", &negative)

	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}
