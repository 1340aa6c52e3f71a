package commands_test

import (
	"errors"
	"testing"

	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/domain/model/branch"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/parcel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreatePackageCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	clientID, originID := kernel.NewUUID(), kernel.NewUUID()
	cmd, err := commands.NewCreatePackageCommand(kernel.NewUUID(), testIntake(clientID, originID), nil)
	require.NoError(t, err)

	branches := new(MockBranchRepository)
	users := new(MockUserRepository)
	parcels := new(MockParcelRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("BranchRepository").Return(branches).Once(),
		branches.On("TryAdmit", ctx, originID).Return(nil).Once(),
		uow.On("UserRepository").Return(users).Once(),
		users.On("RecordShipment", ctx, clientID, mock.AnythingOfType("time.Time")).Return(nil).Once(),
		uow.On("ParcelRepository").Return(parcels).Once(),
		parcels.On("Add", ctx, mock.AnythingOfType("*parcel.Parcel")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockIntakeUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreatePackageCommandHandler(factory, nil)
	result, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, cmd.PackageID(), result.PackageID)
	assert.Regexp(t, `^PKG-[A-Z0-9]{10}$`, result.TrackingID)

	stored := parcels.Calls[0].Arguments[1].(*parcel.Parcel)
	assert.Equal(t, parcel.Pending, stored.Status())
	assert.Equal(t, originID, *stored.CurrentBranchID())
	assert.Len(t, stored.TrackingHistory(), 1)

	branches.AssertExpectations(t)
	users.AssertExpectations(t)
	parcels.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestCreatePackageCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.CreatePackageCommand{}

	factory := new(MockIntakeUoWFactory)
	handler := commands.NewCreatePackageCommandHandler(factory, nil)
	_, err := handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrCreatePackageCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestCreatePackageCommandHandler_Handle_InvalidIntakeNeverAdmits(t *testing.T) {
	ctx := t.Context()
	intake := testIntake(kernel.NewUUID(), kernel.NewUUID())
	intake.RecipientName = ""
	cmd, err := commands.NewCreatePackageCommand(kernel.NewUUID(), intake, nil)
	require.NoError(t, err)

	factory := new(MockIntakeUoWFactory)
	handler := commands.NewCreatePackageCommandHandler(factory, nil)
	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	factory.AssertNotCalled(t, "Create")
}

func TestCreatePackageCommandHandler_Handle_BranchFull(t *testing.T) {
	ctx := t.Context()
	originID := kernel.NewUUID()
	cmd, err := commands.NewCreatePackageCommand(kernel.NewUUID(), testIntake(kernel.NewUUID(), originID), nil)
	require.NoError(t, err)

	branches := new(MockBranchRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("BranchRepository").Return(branches).Once(),
		branches.On("TryAdmit", ctx, originID).Return(branch.ErrBranchAtCapacity).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockIntakeUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreatePackageCommandHandler(factory, nil)
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, branch.ErrBranchAtCapacity)
	uow.AssertNotCalled(t, "Commit", ctx)
	uow.AssertNotCalled(t, "UserRepository")
	uow.AssertExpectations(t)
}

func TestCreatePackageCommandHandler_Handle_UnknownClientRollsBack(t *testing.T) {
	ctx := t.Context()
	clientID, originID := kernel.NewUUID(), kernel.NewUUID()
	cmd, err := commands.NewCreatePackageCommand(kernel.NewUUID(), testIntake(clientID, originID), nil)
	require.NoError(t, err)

	branches := new(MockBranchRepository)
	users := new(MockUserRepository)
	uow := new(MockUoW)
	userErr := errors.New("user not found")

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("BranchRepository").Return(branches).Once(),
		branches.On("TryAdmit", ctx, originID).Return(nil).Once(),
		uow.On("UserRepository").Return(users).Once(),
		users.On("RecordShipment", ctx, clientID, mock.AnythingOfType("time.Time")).Return(userErr).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockIntakeUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreatePackageCommandHandler(factory, nil)
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, userErr)
	uow.AssertNotCalled(t, "ParcelRepository")
	uow.AssertNotCalled(t, "Commit", ctx)
	uow.AssertExpectations(t)
}

func TestCreatePackageCommandHandler_Handle_CommitError(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreatePackageCommand(kernel.NewUUID(), testIntake(kernel.NewUUID(), kernel.NewUUID()), nil)
	require.NoError(t, err)

	branches := new(MockBranchRepository)
	users := new(MockUserRepository)
	parcels := new(MockParcelRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("BranchRepository").Return(branches).Once(),
		branches.On("TryAdmit", ctx, mock.Anything).Return(nil).Once(),
		uow.On("UserRepository").Return(users).Once(),
		users.On("RecordShipment", ctx, mock.Anything, mock.Anything).Return(nil).Once(),
		uow.On("ParcelRepository").Return(parcels).Once(),
		parcels.On("Add", ctx, mock.Anything).Return(nil).Once(),
		uow.On("Commit", ctx).Return(errors.New("commit error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockIntakeUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreatePackageCommandHandler(factory, nil)
	_, err = handler.Handle(ctx, cmd)

	require.EqualError(t, err, "commit error")
}
