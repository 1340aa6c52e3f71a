package parcel

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

const (
	// DefaultMaxAttempts is used when an intake does not set MaxAttempts.
	DefaultMaxAttempts = 3

	// DefaultRetryDelay is added to the failure time when no next attempt date is given.
	DefaultRetryDelay = 24 * time.Hour

	trackingIDPrefix = "PKG-"
	trackingIDLength = 10
)

// ErrParcelIsNotConstructed is returned for a Parcel not built by NewParcel or RestoreParcel.
var ErrParcelIsNotConstructed = errors.New("Parcel must be created via NewParcel constructor")

// Intake carries everything a branch actor provides when a package enters the network.
type Intake struct {
	ClientID            kernel.UUID
	OriginBranchID      kernel.UUID
	DestinationBranchID *kernel.UUID
	RecipientName       string
	RecipientPhone      string
	Destination         kernel.Address
	DeliveryType        DeliveryType
	Description         string
	Weight              decimal.Decimal
	TotalPrice          decimal.Decimal
	PaymentMethod       PaymentMethod
	MaxAttempts         int
}

// TransitionOptions are the optional arguments of TransitionStatus.
type TransitionOptions struct {
	BranchID        *kernel.UUID
	Notes           string
	NextAttemptDate *time.Time
}

// Parcel is a shipment unit travelling through the branch network.
//
// Parcel follows these invariants:
//   - the tracking id never changes once assigned
//   - attemptCount never exceeds maxAttempts
//   - a delivered, cancelled or returned parcel accepts no status transition
//   - a branch_pickup parcel always has a destination branch
//   - the tracking history only grows
type Parcel struct {
	id                  kernel.UUID
	trackingID          string
	clientID            kernel.UUID
	originBranchID      kernel.UUID
	currentBranchID     *kernel.UUID
	destinationBranchID *kernel.UUID
	admittedBranchID    *kernel.UUID
	recipientName       string
	recipientPhone      string
	destination         kernel.Address
	deliveryType        DeliveryType
	description         string
	weight              decimal.Decimal
	totalPrice          decimal.Decimal
	paymentMethod       PaymentMethod
	paymentStatus       PaymentStatus
	status              Status
	attemptCount        int
	maxAttempts         int
	nextAttemptDate     *time.Time
	deliveredAt         *time.Time
	returnInfo          ReturnInfo
	issues              []*Issue
	history             []TrackingEvent
	createdAt           time.Time
	updatedAt           time.Time
	version             int

	domainEvents []DomainEvent
	guard        guard.ConstructorGuard
}

// NewParcel creates a pending parcel at its origin branch. The caller is
// expected to have admitted it to the origin branch already; the parcel holds
// that admission until it is delivered, returned or cancelled.
func NewParcel(id kernel.UUID, in Intake, actor *kernel.UUID) (*Parcel, error) {
	if in.DeliveryType == "" {
		in.DeliveryType = DeliveryHome
	}
	if in.MaxAttempts == 0 {
		in.MaxAttempts = DefaultMaxAttempts
	}

	now := time.Now().UTC()
	p := &Parcel{
		status:        Pending,
		paymentStatus: PaymentPending,
		returnInfo:    noReturn(),
		createdAt:     now,
		updatedAt:     now,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(id),
		p.setClientID(in.ClientID),
		p.setOriginBranchID(in.OriginBranchID),
		p.setDestinationBranchID(in.DestinationBranchID),
		p.setRecipientName(in.RecipientName),
		p.setDestination(in.Destination),
		p.setDeliveryType(in.DeliveryType),
		p.setWeight(in.Weight),
		p.setTotalPrice(in.TotalPrice),
		p.setPaymentMethod(in.PaymentMethod),
		p.setMaxAttempts(in.MaxAttempts),
		validateActor(actor),
	); err != nil {
		return nil, err
	}
	if err := p.checkPickupDestination(); err != nil {
		return nil, err
	}

	p.trackingID = newTrackingID()
	p.recipientPhone = strings.TrimSpace(in.RecipientPhone)
	p.description = strings.TrimSpace(in.Description)
	p.currentBranchID = copyID(&p.originBranchID)
	p.admittedBranchID = copyID(&p.originBranchID)

	p.appendHistory(Pending, p.currentBranchID, actor, "package created", now)
	p.raise(CreatedEvent{
		PackageID:  p.id,
		TrackingID: p.trackingID,
		BranchID:   p.originBranchID,
		CreatedAt:  now,
	})

	return p, nil
}

// Snapshot is the persisted state of a parcel.
type Snapshot struct {
	ID                  kernel.UUID
	TrackingID          string
	ClientID            kernel.UUID
	OriginBranchID      kernel.UUID
	CurrentBranchID     *kernel.UUID
	DestinationBranchID *kernel.UUID
	AdmittedBranchID    *kernel.UUID
	RecipientName       string
	RecipientPhone      string
	Destination         kernel.Address
	DeliveryType        DeliveryType
	Description         string
	Weight              decimal.Decimal
	TotalPrice          decimal.Decimal
	PaymentMethod       PaymentMethod
	PaymentStatus       PaymentStatus
	Status              Status
	AttemptCount        int
	MaxAttempts         int
	NextAttemptDate     *time.Time
	DeliveredAt         *time.Time
	ReturnInfo          ReturnInfo
	Issues              []*Issue
	History             []TrackingEvent
	CreatedAt           time.Time
	UpdatedAt           time.Time
	Version             int
}

// RestoreParcel rebuilds a Parcel from persisted state.
func RestoreParcel(s Snapshot) (*Parcel, error) {
	p := &Parcel{
		trackingID:       s.TrackingID,
		currentBranchID:  copyID(s.CurrentBranchID),
		admittedBranchID: copyID(s.AdmittedBranchID),
		recipientPhone:   s.RecipientPhone,
		description:      s.Description,
		nextAttemptDate:  copyTime(s.NextAttemptDate),
		deliveredAt:      copyTime(s.DeliveredAt),
		returnInfo:       s.ReturnInfo,
		issues:           append([]*Issue(nil), s.Issues...),
		history:          append([]TrackingEvent(nil), s.History...),
		createdAt:        s.CreatedAt,
		updatedAt:        s.UpdatedAt,
		version:          s.Version,
		guard:            guard.NewConstructorGuard(),
	}
	if p.returnInfo.RefundStatus == "" {
		p.returnInfo.RefundStatus = RefundNone
	}

	var trackingErr error
	if !strings.HasPrefix(s.TrackingID, trackingIDPrefix) {
		trackingErr = errs.NewValueIsInvalidErrorWithCause("trackingId", fmt.Errorf("%q has no %s prefix", s.TrackingID, trackingIDPrefix))
	}

	if err := errors.Join(
		trackingErr,
		p.setID(s.ID),
		p.setClientID(s.ClientID),
		p.setOriginBranchID(s.OriginBranchID),
		p.setDestinationBranchID(s.DestinationBranchID),
		p.setRecipientName(s.RecipientName),
		p.setDestination(s.Destination),
		p.setDeliveryType(s.DeliveryType),
		p.setWeight(s.Weight),
		p.setTotalPrice(s.TotalPrice),
		p.setPaymentMethod(s.PaymentMethod),
		s.PaymentStatus.Validate(),
		s.Status.Validate(),
		p.returnInfo.RefundStatus.Validate(),
		p.setMaxAttempts(s.MaxAttempts),
	); err != nil {
		return nil, err
	}
	if err := p.checkPickupDestination(); err != nil {
		return nil, err
	}
	if s.AttemptCount < 0 || s.AttemptCount > s.MaxAttempts {
		return nil, errs.NewValueIsOutOfRangeError("attemptCount", s.AttemptCount, 0, s.MaxAttempts)
	}

	p.paymentStatus = s.PaymentStatus
	p.status = s.Status
	p.attemptCount = s.AttemptCount

	return p, nil
}

// Validate ensures the parcel was built through a constructor.
func (p *Parcel) Validate() error {
	if p == nil {
		return ErrParcelIsNotConstructed
	}
	return p.guard.Validate(ErrParcelIsNotConstructed)
}

func (p *Parcel) ID() kernel.UUID                   { return p.id }
func (p *Parcel) TrackingID() string                { return p.trackingID }
func (p *Parcel) ClientID() kernel.UUID             { return p.clientID }
func (p *Parcel) OriginBranchID() kernel.UUID       { return p.originBranchID }
func (p *Parcel) CurrentBranchID() *kernel.UUID     { return copyID(p.currentBranchID) }
func (p *Parcel) DestinationBranchID() *kernel.UUID { return copyID(p.destinationBranchID) }
func (p *Parcel) RecipientName() string             { return p.recipientName }
func (p *Parcel) RecipientPhone() string            { return p.recipientPhone }
func (p *Parcel) Destination() kernel.Address       { return p.destination }
func (p *Parcel) DeliveryType() DeliveryType        { return p.deliveryType }
func (p *Parcel) Description() string               { return p.description }
func (p *Parcel) Weight() decimal.Decimal           { return p.weight }
func (p *Parcel) TotalPrice() decimal.Decimal       { return p.totalPrice }
func (p *Parcel) PaymentMethod() PaymentMethod      { return p.paymentMethod }
func (p *Parcel) PaymentStatus() PaymentStatus      { return p.paymentStatus }
func (p *Parcel) Status() Status                    { return p.status }
func (p *Parcel) AttemptCount() int                 { return p.attemptCount }
func (p *Parcel) MaxAttempts() int                  { return p.maxAttempts }
func (p *Parcel) NextAttemptDate() *time.Time       { return copyTime(p.nextAttemptDate) }
func (p *Parcel) DeliveredAt() *time.Time           { return copyTime(p.deliveredAt) }
func (p *Parcel) ReturnInfo() ReturnInfo            { return p.returnInfo }
func (p *Parcel) CreatedAt() time.Time              { return p.createdAt }
func (p *Parcel) UpdatedAt() time.Time              { return p.updatedAt }
func (p *Parcel) Version() int                      { return p.version }

// AdmittedBranchID is the branch whose load this parcel still counts towards,
// or nil once the admission was released.
func (p *Parcel) AdmittedBranchID() *kernel.UUID { return copyID(p.admittedBranchID) }

// IsTerminal reports whether the parcel left the normal flow.
func (p *Parcel) IsTerminal() bool { return p.status.IsTerminal() }

// RemainingAttempts is the number of delivery attempts left before the parcel is returned.
func (p *Parcel) RemainingAttempts() int { return max(p.maxAttempts-p.attemptCount, 0) }

// Issues returns the issues in reporting order.
func (p *Parcel) Issues() []*Issue {
	return append([]*Issue(nil), p.issues...)
}

// IssueAt returns the issue at display position i.
func (p *Parcel) IssueAt(i int) (*Issue, error) {
	if i < 0 || i >= len(p.issues) {
		return nil, errs.NewValueIsOutOfRangeError("issueIndex", i, 0, len(p.issues)-1)
	}
	return p.issues[i], nil
}

// OpenIssues returns the unresolved issues in reporting order.
func (p *Parcel) OpenIssues() []*Issue {
	var open []*Issue
	for _, issue := range p.issues {
		if !issue.IsResolved() {
			open = append(open, issue)
		}
	}
	return open
}

// HasOpenIssues reports whether any issue is still unresolved.
func (p *Parcel) HasOpenIssues() bool {
	for _, issue := range p.issues {
		if !issue.IsResolved() {
			return true
		}
	}
	return false
}

// TrackingHistory returns the audit log, oldest first.
func (p *Parcel) TrackingHistory() []TrackingEvent {
	return append([]TrackingEvent(nil), p.history...)
}

// DomainEvents returns the events recorded since the last ClearDomainEvents.
func (p *Parcel) DomainEvents() []DomainEvent {
	return append([]DomainEvent(nil), p.domainEvents...)
}

func (p *Parcel) ClearDomainEvents() {
	p.domainEvents = nil
}

// TransitionStatus moves the parcel to status to on behalf of actor (nil for
// the system) and appends a tracking event. A failed delivery that exhausts
// maxAttempts escalates the parcel to returned within the same call.
func (p *Parcel) TransitionStatus(to Status, actor *kernel.UUID, opts TransitionOptions) error {
	const op = "change package status"

	if err := errors.Join(to.Validate(), validateActor(actor), validateOptionalID("branchId", opts.BranchID)); err != nil {
		return err
	}
	if p.status.isClosed() {
		return errs.NewPreconditionFailedError(op, fmt.Sprintf("package %s is %s", p.id, p.status))
	}
	switch {
	case to == Pending:
		return errs.NewPreconditionFailedError(op, "a package cannot go back to pending")
	case to == Cancelled:
		return errs.NewPreconditionFailedError(op, "cancellation goes through ToggleCancel")
	case p.status == Lost && to != Returned:
		return errs.NewPreconditionFailedError(op, "a lost package can only be returned")
	case to == Rescheduled && opts.NextAttemptDate == nil:
		return errs.NewValueIsRequiredError("nextAttemptDate")
	}

	now := time.Now().UTC()
	branchID := opts.BranchID

	switch to {
	case AtOriginBranch:
		if branchID == nil {
			branchID = copyID(&p.originBranchID)
		}
		p.currentBranchID = copyID(branchID)
	case AtDestinationBranch:
		if branchID == nil {
			branchID = copyID(p.destinationBranchID)
		}
		if branchID != nil {
			p.currentBranchID = copyID(branchID)
		}
	case FailedDelivery:
		p.attemptCount++
		if p.attemptCount >= p.maxAttempts {
			p.move(FailedDelivery, branchID, actor, opts.Notes, now)
			p.enterReturned(ReasonMaxAttemptsReached, nil, nil, now)
			return nil
		}
		next := now.Add(DefaultRetryDelay)
		if opts.NextAttemptDate != nil {
			next = opts.NextAttemptDate.UTC()
		}
		p.nextAttemptDate = &next
	case Rescheduled:
		next := opts.NextAttemptDate.UTC()
		p.nextAttemptDate = &next
	case Delivered:
		p.deliveredAt = &now
		p.nextAttemptDate = nil
		if p.paymentMethod == PaymentCashOnDelivery && p.paymentStatus == PaymentPending {
			p.paymentStatus = PaymentPaid
		}
		p.move(Delivered, branchID, actor, opts.Notes, now)
		p.releaseAdmission(now)
		return nil
	case Returned:
		reason := strings.TrimSpace(opts.Notes)
		if reason == "" {
			reason = "returned to sender"
		}
		p.enterReturned(reason, branchID, actor, now)
		return nil
	}

	p.move(to, branchID, actor, opts.Notes, now)
	return nil
}

// ToggleCancel cancels an active parcel, or reactivates a cancelled one back
// to pending. Cancelling gives back the branch admission the parcel still
// holds; reactivating does not take a new one.
func (p *Parcel) ToggleCancel(actor *kernel.UUID, notes string) error {
	if err := validateActor(actor); err != nil {
		return err
	}
	if p.status == Delivered || p.status == Returned {
		return errs.NewPreconditionFailedError("cancel package", fmt.Sprintf("package %s is %s", p.id, p.status))
	}

	now := time.Now().UTC()
	if p.status == Cancelled {
		p.move(Pending, p.currentBranchID, actor, notesOr(notes, "package reactivated"), now)
		return nil
	}

	p.move(Cancelled, p.currentBranchID, actor, notesOr(notes, "package cancelled"), now)
	p.releaseAdmission(now)
	return nil
}

// ReportIssue records an exception against the parcel. Damage, loss, delay
// and an unavailable customer force the matching holding status unless the
// parcel is already lost or returned.
func (p *Parcel) ReportIssue(issueType IssueType, description string, priority Priority, actor *kernel.UUID) (*Issue, error) {
	if p.status == Delivered || p.status == Cancelled {
		return nil, errs.NewPreconditionFailedError("report issue", fmt.Sprintf("package %s is %s", p.id, p.status))
	}

	now := time.Now().UTC()
	issue, err := newIssue(issueType, description, priority, actor, now)
	if err != nil {
		return nil, err
	}
	p.issues = append(p.issues, issue)

	status := p.status
	if forced, ok := issueType.forcedStatus(); ok && p.status != Lost && p.status != Returned {
		status = forced
	}
	p.move(status, p.currentBranchID, actor, fmt.Sprintf("issue reported (%s): %s", issue.Type(), issue.Description()), now)

	p.raise(IssueReportedEvent{
		PackageID:  p.id,
		IssueID:    issue.ID(),
		Type:       issue.Type(),
		Priority:   issue.Priority(),
		ReportedAt: now,
	})
	return issue, nil
}

// ResolveIssue marks the issue resolved. When it was the last open one and the
// parcel is damaged, lost or on hold, the parcel lands at its destination branch.
func (p *Parcel) ResolveIssue(issueID kernel.UUID, resolution string, actor *kernel.UUID) error {
	if err := validateActor(actor); err != nil {
		return err
	}

	var issue *Issue
	for _, candidate := range p.issues {
		if candidate.ID().IsEqual(issueID) {
			issue = candidate
			break
		}
	}
	if issue == nil {
		return errs.NewObjectNotFoundError("issueId", issueID)
	}

	now := time.Now().UTC()
	if err := issue.resolve(resolution, actor, now); err != nil {
		return err
	}

	status := p.status
	if !p.HasOpenIssues() && p.status.isException() {
		status = AtDestinationBranch
		if p.destinationBranchID != nil {
			p.currentBranchID = copyID(p.destinationBranchID)
		}
	}
	p.move(status, p.currentBranchID, actor, fmt.Sprintf("issue resolved: %s", issue.Resolution()), now)

	p.raise(IssueResolvedEvent{PackageID: p.id, IssueID: issue.ID(), ResolvedAt: now})
	return nil
}

// RequestReturn sends the parcel back to its sender.
func (p *Parcel) RequestReturn(reason string, actor *kernel.UUID) error {
	if err := validateActor(actor); err != nil {
		return err
	}
	if p.status.isClosed() {
		return errs.NewPreconditionFailedError("request return", fmt.Sprintf("package %s is %s", p.id, p.status))
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return errs.NewValueIsRequiredError("reason")
	}

	p.enterReturned(reason, p.currentBranchID, actor, time.Now().UTC())
	return nil
}

// ProcessRefund pays back amount for a returned parcel that had been paid.
func (p *Parcel) ProcessRefund(amount decimal.Decimal, actor *kernel.UUID) error {
	const op = "process refund"

	if err := validateActor(actor); err != nil {
		return err
	}
	if p.status != Returned {
		return errs.NewPreconditionFailedError(op, fmt.Sprintf("package %s is %s, not returned", p.id, p.status))
	}
	if p.paymentStatus != PaymentPaid {
		return errs.NewPreconditionFailedError(op, fmt.Sprintf("payment is %s", p.paymentStatus))
	}
	if !amount.IsPositive() || amount.GreaterThan(p.totalPrice) {
		return errs.NewValueIsOutOfRangeError("amount", amount.String(), "0", p.totalPrice.String())
	}

	now := time.Now().UTC()
	p.returnInfo.RefundStatus = RefundProcessed
	p.returnInfo.RefundAmount = amount
	p.returnInfo.RefundedAt = &now
	p.paymentStatus = PaymentRefunded
	p.move(p.status, p.currentBranchID, actor, fmt.Sprintf("refund processed: %s", amount.StringFixed(2)), now)

	p.raise(RefundProcessedEvent{PackageID: p.id, Amount: amount, RefundedAt: now})
	return nil
}

// RecordPayment marks the price as settled with method.
func (p *Parcel) RecordPayment(method PaymentMethod) error {
	const op = "record payment"

	if err := method.Validate(); err != nil {
		return err
	}
	if p.status == Cancelled {
		return errs.NewPreconditionFailedError(op, fmt.Sprintf("package %s is cancelled", p.id))
	}
	if p.paymentStatus == PaymentPaid || p.paymentStatus == PaymentRefunded {
		return errs.NewPreconditionFailedError(op, fmt.Sprintf("payment is already %s", p.paymentStatus))
	}

	p.paymentMethod = method
	p.paymentStatus = PaymentPaid
	p.updatedAt = time.Now().UTC()
	if p.status == Returned && p.returnInfo.RefundStatus == RefundNone {
		p.returnInfo.RefundStatus = RefundPending
	}
	return nil
}

func (p *Parcel) enterReturned(reason string, branchID, actor *kernel.UUID, at time.Time) {
	p.returnInfo.IsReturn = true
	p.returnInfo.Reason = reason
	p.returnInfo.RequestedAt = &at
	if p.paymentStatus == PaymentPaid && p.returnInfo.RefundStatus == RefundNone {
		p.returnInfo.RefundStatus = RefundPending
	}
	p.nextAttemptDate = nil

	p.move(Returned, branchID, actor, reason, at)
	p.releaseAdmission(at)
	p.raise(ReturnedEvent{PackageID: p.id, Reason: reason, ReturnedAt: at})
}

func (p *Parcel) move(to Status, branchID, actor *kernel.UUID, notes string, at time.Time) {
	from := p.status
	p.status = to
	p.updatedAt = at
	if branchID == nil {
		branchID = p.currentBranchID
	}
	p.appendHistory(to, branchID, actor, notes, at)
	if from != to {
		p.raise(StatusChangedEvent{
			PackageID: p.id,
			From:      from,
			To:        to,
			ActorID:   copyID(actor),
			ChangedAt: at,
		})
	}
}

func (p *Parcel) releaseAdmission(at time.Time) {
	if p.admittedBranchID == nil {
		return
	}
	p.raise(AdmissionReleasedEvent{PackageID: p.id, BranchID: *p.admittedBranchID, ReleasedAt: at})
	p.admittedBranchID = nil
}

func (p *Parcel) appendHistory(status Status, branchID, actor *kernel.UUID, notes string, at time.Time) {
	p.history = append(p.history, TrackingEvent{
		id:        kernel.NewUUID(),
		status:    status,
		branchID:  copyID(branchID),
		userID:    copyID(actor),
		notes:     strings.TrimSpace(notes),
		timestamp: at,
	})
}

func (p *Parcel) raise(event DomainEvent) {
	p.domainEvents = append(p.domainEvents, event)
}

func (p *Parcel) checkPickupDestination() error {
	if p.deliveryType == DeliveryBranchPickup && p.destinationBranchID == nil {
		return errs.NewValueIsRequiredErrorWithCause("destinationBranchId",
			errors.New("branch_pickup delivery needs a destination branch"))
	}
	return nil
}

func (p *Parcel) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Parcel) setClientID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("clientId", err)
	}
	p.clientID = id
	return nil
}

func (p *Parcel) setOriginBranchID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("originBranchId", err)
	}
	p.originBranchID = id
	return nil
}

func (p *Parcel) setDestinationBranchID(id *kernel.UUID) error {
	if err := validateOptionalID("destinationBranchId", id); err != nil {
		return err
	}
	p.destinationBranchID = copyID(id)
	return nil
}

func (p *Parcel) setRecipientName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("recipientName")
	}
	p.recipientName = name
	return nil
}

func (p *Parcel) setDestination(address kernel.Address) error {
	if err := address.Validate(); err != nil {
		return err
	}
	p.destination = address
	return nil
}

func (p *Parcel) setDeliveryType(deliveryType DeliveryType) error {
	if err := deliveryType.Validate(); err != nil {
		return err
	}
	p.deliveryType = deliveryType
	return nil
}

func (p *Parcel) setWeight(weight decimal.Decimal) error {
	if !weight.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause("weight", fmt.Errorf("%s is not positive", weight))
	}
	p.weight = weight
	return nil
}

func (p *Parcel) setTotalPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("totalPrice", fmt.Errorf("%s is negative", price))
	}
	p.totalPrice = price
	return nil
}

func (p *Parcel) setPaymentMethod(method PaymentMethod) error {
	if err := method.Validate(); err != nil {
		return err
	}
	p.paymentMethod = method
	return nil
}

func (p *Parcel) setMaxAttempts(n int) error {
	if n < 1 {
		return errs.NewValueIsOutOfRangeError("maxAttempts", n, 1, "unlimited")
	}
	p.maxAttempts = n
	return nil
}

func newTrackingID() string {
	raw := strings.ReplaceAll(kernel.NewUUID().String(), "-", "")
	return trackingIDPrefix + strings.ToUpper(raw[:trackingIDLength])
}

func notesOr(notes, fallback string) string {
	if strings.TrimSpace(notes) == "" {
		return fallback
	}
	return notes
}

func validateActor(actor *kernel.UUID) error {
	return validateOptionalID("actor", actor)
}

func validateOptionalID(param string, id *kernel.UUID) error {
	if id == nil {
		return nil
	}
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause(param, err)
	}
	return nil
}

func copyID(id *kernel.UUID) *kernel.UUID {
	if id == nil {
		return nil
	}
	c := *id
	return &c
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
