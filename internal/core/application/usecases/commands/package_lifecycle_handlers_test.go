package commands_test

import (
	"testing"

	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/parcel"
	"shipping/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// expectParcelRoundTrip wires Begin, Get and Update for p and returns the
// unit of work so callers can add what follows.
func expectParcelRoundTrip(t *testing.T, p *parcel.Parcel) (*MockUoW, *MockParcelRepository, *MockParcelUoWFactory) {
	t.Helper()
	ctx := t.Context()

	parcels := new(MockParcelRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ParcelRepository").Return(parcels).Once()
	parcels.On("Get", ctx, p.ID()).Return(p, nil).Once()
	parcels.On("Update", ctx, p).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockParcelUoWFactory)
	factory.On("Create").Return(uow).Once()
	return uow, parcels, factory
}

func TestToggleCancelCommandHandler_Handle_CancelThenReactivate(t *testing.T) {
	ctx := t.Context()
	p := newStoredParcel(t)
	actor := kernel.NewUUID()

	uow, _, factory := expectParcelRoundTrip(t, p)
	branches := new(MockBranchRepository)
	uow.On("BranchRepository").Return(branches).Once()
	branches.On("Release", ctx, p.OriginBranchID()).Return(nil).Once()

	cmd, err := commands.NewToggleCancelCommand(p.ID(), &actor, "client changed their mind")
	require.NoError(t, err)
	handler := commands.NewToggleCancelCommandHandler(factory, nil)
	require.NoError(t, handler.Handle(ctx, cmd))
	assert.Equal(t, parcel.Cancelled, p.Status())
	branches.AssertExpectations(t)

	uow2, _, factory2 := expectParcelRoundTrip(t, p)
	handler = commands.NewToggleCancelCommandHandler(factory2, nil)
	require.NoError(t, handler.Handle(ctx, cmd))

	assert.Equal(t, parcel.Pending, p.Status())
	assert.Nil(t, p.AdmittedBranchID())
	uow2.AssertNotCalled(t, "BranchRepository")
}

func TestReportIssueCommandHandler_Handle_ForcesHoldingStatus(t *testing.T) {
	ctx := t.Context()
	p := newStoredParcel(t)
	_, _, factory := expectParcelRoundTrip(t, p)

	cmd, err := commands.NewReportIssueCommand(p.ID(), parcel.IssueDamage, "  box crushed  ", "", nil)
	require.NoError(t, err)
	assert.Equal(t, parcel.PriorityMedium, cmd.Priority())
	assert.Equal(t, "box crushed", cmd.Description())

	handler := commands.NewReportIssueCommandHandler(factory, nil)
	issueID, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NoError(t, issueID.Validate())
	assert.Equal(t, parcel.Damaged, p.Status())
	require.Len(t, p.OpenIssues(), 1)
	assert.Equal(t, issueID, p.OpenIssues()[0].ID())
}

func TestResolveIssueCommandHandler_Handle_LastIssueMovesToDestination(t *testing.T) {
	ctx := t.Context()
	p := newStoredParcel(t)
	issue, err := p.ReportIssue(parcel.IssueDelay, "weather", parcel.PriorityHigh, nil)
	require.NoError(t, err)
	p.ClearDomainEvents()
	require.Equal(t, parcel.OnHold, p.Status())

	_, _, factory := expectParcelRoundTrip(t, p)
	cmd, err := commands.NewResolveIssueCommand(p.ID(), issue.ID(), "road reopened", nil)
	require.NoError(t, err)

	handler := commands.NewResolveIssueCommandHandler(factory, nil)
	require.NoError(t, handler.Handle(ctx, cmd))

	assert.Equal(t, parcel.AtDestinationBranch, p.Status())
	assert.False(t, p.HasOpenIssues())
}

func TestResolveIssueCommandHandler_Handle_UnknownIssue(t *testing.T) {
	ctx := t.Context()
	p := newStoredParcel(t)

	parcels := new(MockParcelRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ParcelRepository").Return(parcels).Once(),
		parcels.On("Get", ctx, p.ID()).Return(p, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockParcelUoWFactory)
	factory.On("Create").Return(uow).Once()

	cmd, err := commands.NewResolveIssueCommand(p.ID(), kernel.NewUUID(), "n/a", nil)
	require.NoError(t, err)

	err = commands.NewResolveIssueCommandHandler(factory, nil).Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	uow.AssertExpectations(t)
}

func TestReturnAndRefund(t *testing.T) {
	ctx := t.Context()
	p := newStoredParcel(t)

	pay, err := commands.NewRecordPaymentCommand(p.ID(), parcel.PaymentCard)
	require.NoError(t, err)
	_, _, payFactory := expectParcelRoundTrip(t, p)
	require.NoError(t, commands.NewRecordPaymentCommandHandler(payFactory, nil).Handle(ctx, pay))
	assert.Equal(t, parcel.PaymentPaid, p.PaymentStatus())

	uow, _, factory := expectParcelRoundTrip(t, p)
	uow.On("BranchRepository").Return(new(MockBranchRepository).withRelease(ctx, p.OriginBranchID())).Once()
	ret, err := commands.NewRequestReturnCommand(p.ID(), "wrong item", nil)
	require.NoError(t, err)
	require.NoError(t, commands.NewRequestReturnCommandHandler(factory, nil).Handle(ctx, ret))
	assert.Equal(t, parcel.Returned, p.Status())
	assert.Equal(t, parcel.RefundPending, p.ReturnInfo().RefundStatus)

	_, _, refundFactory := expectParcelRoundTrip(t, p)
	refund, err := commands.NewProcessRefundCommand(p.ID(), decimal.RequireFromString("1500"), nil)
	require.NoError(t, err)
	require.NoError(t, commands.NewProcessRefundCommandHandler(refundFactory, nil).Handle(ctx, refund))

	assert.Equal(t, parcel.RefundProcessed, p.ReturnInfo().RefundStatus)
	assert.True(t, decimal.RequireFromString("1500").Equal(p.ReturnInfo().RefundAmount))
	assert.Equal(t, parcel.PaymentRefunded, p.PaymentStatus())
}
