// Package parcelrepo persists parcels with their issues and tracking history.
package parcelrepo

import (
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/parcel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ParcelDTO is the "packages" row. Issues and tracking events live in their
// own tables and are written separately from the row itself.
type ParcelDTO struct {
	ID                  uuid.UUID  `gorm:"type:uuid;primaryKey"`
	TrackingID          string     `gorm:"type:varchar(32);uniqueIndex;not null"`
	ClientID            uuid.UUID  `gorm:"type:uuid;index;not null"`
	OriginBranchID      uuid.UUID  `gorm:"type:uuid;not null"`
	CurrentBranchID     *uuid.UUID `gorm:"type:uuid;index"`
	DestinationBranchID *uuid.UUID `gorm:"type:uuid"`
	AdmittedBranchID    *uuid.UUID `gorm:"type:uuid"`
	RecipientName       string     `gorm:"type:varchar(255);not null"`
	RecipientPhone      string     `gorm:"type:varchar(64)"`
	Destination         AddressDTO `gorm:"embedded;embeddedPrefix:dest_"`
	DeliveryType        string     `gorm:"type:varchar(16);not null"`
	Description         string
	Weight              decimal.Decimal `gorm:"type:numeric(12,3);not null"`
	TotalPrice          decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	PaymentMethod       string          `gorm:"type:varchar(24);not null"`
	PaymentStatus       string          `gorm:"type:varchar(16);not null"`
	Status              string          `gorm:"type:varchar(32);index:idx_packages_retry,priority:1;not null"`
	AttemptCount        int             `gorm:"not null;default:0"`
	MaxAttempts         int             `gorm:"not null"`
	NextAttemptDate     *time.Time      `gorm:"index:idx_packages_retry,priority:2"`
	DeliveredAt         *time.Time
	Return              ReturnDTO          `gorm:"embedded;embeddedPrefix:return_"`
	Issues              []IssueDTO         `gorm:"foreignKey:PackageID;constraint:OnDelete:CASCADE"`
	Events              []TrackingEventDTO `gorm:"foreignKey:PackageID;constraint:OnDelete:CASCADE"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
	Version             int `gorm:"not null;default:1"`
}

func (ParcelDTO) TableName() string {
	return "packages"
}

// AddressDTO is the embedded destination. Lat and Lng are both set or both nil.
type AddressDTO struct {
	Street     string `gorm:"type:varchar(255);not null"`
	City       string `gorm:"type:varchar(128);not null"`
	State      string `gorm:"type:varchar(128)"`
	PostalCode string `gorm:"type:varchar(32)"`
	Lat        *float64
	Lng        *float64
}

type ReturnDTO struct {
	IsReturn     bool   `gorm:"not null;default:false"`
	Reason       string `gorm:"type:text"`
	RequestedAt  *time.Time
	RefundStatus string          `gorm:"type:varchar(16);not null;default:none"`
	RefundAmount decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	RefundedAt   *time.Time
}

// IssueDTO keeps the display order of issues in Position.
type IssueDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	PackageID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	Position    int        `gorm:"not null"`
	Type        string     `gorm:"type:varchar(32);not null"`
	Description string     `gorm:"type:text;not null"`
	Priority    string     `gorm:"type:varchar(16);not null"`
	ReportedBy  *uuid.UUID `gorm:"type:uuid"`
	ReportedAt  time.Time  `gorm:"not null"`
	ResolvedAt  *time.Time
	ResolvedBy  *uuid.UUID `gorm:"type:uuid"`
	Resolution  string     `gorm:"type:text"`
}

func (IssueDTO) TableName() string {
	return "package_issues"
}

// TrackingEventDTO is append-only. Sequence orders events written in the same instant.
type TrackingEventDTO struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	PackageID uuid.UUID  `gorm:"type:uuid;not null;index"`
	Sequence  int        `gorm:"not null"`
	Status    string     `gorm:"type:varchar(32);not null"`
	BranchID  *uuid.UUID `gorm:"type:uuid"`
	UserID    *uuid.UUID `gorm:"type:uuid"`
	Notes     string     `gorm:"type:text"`
	Timestamp time.Time  `gorm:"not null"`
}

func (TrackingEventDTO) TableName() string {
	return "package_tracking_events"
}

func fromDomain(p *parcel.Parcel) ParcelDTO {
	id := p.ID().Bytes()
	dest := p.Destination()
	ret := p.ReturnInfo()

	dto := ParcelDTO{
		ID:                  id,
		TrackingID:          p.TrackingID(),
		ClientID:            p.ClientID().Bytes(),
		OriginBranchID:      p.OriginBranchID().Bytes(),
		CurrentBranchID:     rawID(p.CurrentBranchID()),
		DestinationBranchID: rawID(p.DestinationBranchID()),
		AdmittedBranchID:    rawID(p.AdmittedBranchID()),
		RecipientName:       p.RecipientName(),
		RecipientPhone:      p.RecipientPhone(),
		Destination: AddressDTO{
			Street:     dest.Street(),
			City:       dest.City(),
			State:      dest.State(),
			PostalCode: dest.PostalCode(),
		},
		DeliveryType:    string(p.DeliveryType()),
		Description:     p.Description(),
		Weight:          p.Weight(),
		TotalPrice:      p.TotalPrice(),
		PaymentMethod:   string(p.PaymentMethod()),
		PaymentStatus:   string(p.PaymentStatus()),
		Status:          string(p.Status()),
		AttemptCount:    p.AttemptCount(),
		MaxAttempts:     p.MaxAttempts(),
		NextAttemptDate: p.NextAttemptDate(),
		DeliveredAt:     p.DeliveredAt(),
		Return: ReturnDTO{
			IsReturn:     ret.IsReturn,
			Reason:       ret.Reason,
			RequestedAt:  ret.RequestedAt,
			RefundStatus: string(ret.RefundStatus),
			RefundAmount: ret.RefundAmount,
			RefundedAt:   ret.RefundedAt,
		},
		CreatedAt: p.CreatedAt(),
		UpdatedAt: p.UpdatedAt(),
		Version:   p.Version(),
	}
	if point := dest.Point(); point != nil {
		lat, lng := point.Lat(), point.Lng()
		dto.Destination.Lat, dto.Destination.Lng = &lat, &lng
	}

	for i, issue := range p.Issues() {
		dto.Issues = append(dto.Issues, IssueDTO{
			ID:          issue.ID().Bytes(),
			PackageID:   id,
			Position:    i,
			Type:        string(issue.Type()),
			Description: issue.Description(),
			Priority:    string(issue.Priority()),
			ReportedBy:  rawID(issue.ReportedBy()),
			ReportedAt:  issue.ReportedAt(),
			ResolvedAt:  issue.ResolvedAt(),
			ResolvedBy:  rawID(issue.ResolvedBy()),
			Resolution:  issue.Resolution(),
		})
	}
	for i, event := range p.TrackingHistory() {
		dto.Events = append(dto.Events, TrackingEventDTO{
			ID:        event.ID().Bytes(),
			PackageID: id,
			Sequence:  i,
			Status:    string(event.Status()),
			BranchID:  rawID(event.BranchID()),
			UserID:    rawID(event.UserID()),
			Notes:     event.Notes(),
			Timestamp: event.Timestamp(),
		})
	}

	return dto
}

// columns lists what an update writes to the packages row. id and created_at never change.
func (dto ParcelDTO) columns() map[string]any {
	return map[string]any{
		"tracking_id":           dto.TrackingID,
		"client_id":             dto.ClientID,
		"origin_branch_id":      dto.OriginBranchID,
		"current_branch_id":     dto.CurrentBranchID,
		"destination_branch_id": dto.DestinationBranchID,
		"admitted_branch_id":    dto.AdmittedBranchID,
		"recipient_name":        dto.RecipientName,
		"recipient_phone":       dto.RecipientPhone,
		"dest_street":           dto.Destination.Street,
		"dest_city":             dto.Destination.City,
		"dest_state":            dto.Destination.State,
		"dest_postal_code":      dto.Destination.PostalCode,
		"dest_lat":              dto.Destination.Lat,
		"dest_lng":              dto.Destination.Lng,
		"delivery_type":         dto.DeliveryType,
		"description":           dto.Description,
		"weight":                dto.Weight,
		"total_price":           dto.TotalPrice,
		"payment_method":        dto.PaymentMethod,
		"payment_status":        dto.PaymentStatus,
		"status":                dto.Status,
		"attempt_count":         dto.AttemptCount,
		"max_attempts":          dto.MaxAttempts,
		"next_attempt_date":     dto.NextAttemptDate,
		"delivered_at":          dto.DeliveredAt,
		"return_is_return":      dto.Return.IsReturn,
		"return_reason":         dto.Return.Reason,
		"return_requested_at":   dto.Return.RequestedAt,
		"return_refund_status":  dto.Return.RefundStatus,
		"return_refund_amount":  dto.Return.RefundAmount,
		"return_refunded_at":    dto.Return.RefundedAt,
		"updated_at":            dto.UpdatedAt,
		"version":               dto.Version,
	}
}

func toDomain(dto ParcelDTO) (*parcel.Parcel, error) {
	ids, err := parseIDs(dto.ID, dto.ClientID, dto.OriginBranchID)
	if err != nil {
		return nil, err
	}
	currentBranchID, err := domainID(dto.CurrentBranchID)
	if err != nil {
		return nil, err
	}
	destinationBranchID, err := domainID(dto.DestinationBranchID)
	if err != nil {
		return nil, err
	}
	admittedBranchID, err := domainID(dto.AdmittedBranchID)
	if err != nil {
		return nil, err
	}
	destination, err := addressToDomain(dto.Destination)
	if err != nil {
		return nil, err
	}

	issues := make([]*parcel.Issue, 0, len(dto.Issues))
	for _, issueDTO := range dto.Issues {
		issue, issueErr := issueToDomain(issueDTO)
		if issueErr != nil {
			return nil, issueErr
		}
		issues = append(issues, issue)
	}

	history := make([]parcel.TrackingEvent, 0, len(dto.Events))
	for _, eventDTO := range dto.Events {
		event, eventErr := eventToDomain(eventDTO)
		if eventErr != nil {
			return nil, eventErr
		}
		history = append(history, event)
	}

	return parcel.RestoreParcel(parcel.Snapshot{
		ID:                  ids[0],
		TrackingID:          dto.TrackingID,
		ClientID:            ids[1],
		OriginBranchID:      ids[2],
		CurrentBranchID:     currentBranchID,
		DestinationBranchID: destinationBranchID,
		AdmittedBranchID:    admittedBranchID,
		RecipientName:       dto.RecipientName,
		RecipientPhone:      dto.RecipientPhone,
		Destination:         destination,
		DeliveryType:        parcel.DeliveryType(dto.DeliveryType),
		Description:         dto.Description,
		Weight:              dto.Weight,
		TotalPrice:          dto.TotalPrice,
		PaymentMethod:       parcel.PaymentMethod(dto.PaymentMethod),
		PaymentStatus:       parcel.PaymentStatus(dto.PaymentStatus),
		Status:              parcel.Status(dto.Status),
		AttemptCount:        dto.AttemptCount,
		MaxAttempts:         dto.MaxAttempts,
		NextAttemptDate:     dto.NextAttemptDate,
		DeliveredAt:         dto.DeliveredAt,
		ReturnInfo: parcel.ReturnInfo{
			IsReturn:     dto.Return.IsReturn,
			Reason:       dto.Return.Reason,
			RequestedAt:  dto.Return.RequestedAt,
			RefundStatus: parcel.RefundStatus(dto.Return.RefundStatus),
			RefundAmount: dto.Return.RefundAmount,
			RefundedAt:   dto.Return.RefundedAt,
		},
		Issues:    issues,
		History:   history,
		CreatedAt: dto.CreatedAt,
		UpdatedAt: dto.UpdatedAt,
		Version:   dto.Version,
	})
}

func addressToDomain(dto AddressDTO) (kernel.Address, error) {
	var point *kernel.GeoPoint
	if dto.Lat != nil && dto.Lng != nil {
		p, err := kernel.NewGeoPoint(*dto.Lat, *dto.Lng)
		if err != nil {
			return kernel.Address{}, err
		}
		point = &p
	}
	return kernel.NewAddress(dto.Street, dto.City, dto.State, dto.PostalCode, point)
}

func issueToDomain(dto IssueDTO) (*parcel.Issue, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	reportedBy, err := domainID(dto.ReportedBy)
	if err != nil {
		return nil, err
	}
	resolvedBy, err := domainID(dto.ResolvedBy)
	if err != nil {
		return nil, err
	}

	return parcel.RestoreIssue(id, parcel.IssueType(dto.Type), dto.Description, parcel.Priority(dto.Priority),
		reportedBy, dto.ReportedAt, dto.ResolvedAt, resolvedBy, dto.Resolution)
}

func eventToDomain(dto TrackingEventDTO) (parcel.TrackingEvent, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return parcel.TrackingEvent{}, err
	}
	branchID, err := domainID(dto.BranchID)
	if err != nil {
		return parcel.TrackingEvent{}, err
	}
	userID, err := domainID(dto.UserID)
	if err != nil {
		return parcel.TrackingEvent{}, err
	}

	return parcel.RestoreTrackingEvent(id, parcel.Status(dto.Status), branchID, userID, dto.Notes, dto.Timestamp)
}

func rawID(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func domainID(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromBytes(raw[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func parseIDs(raw ...uuid.UUID) ([]kernel.UUID, error) {
	ids := make([]kernel.UUID, 0, len(raw))
	for _, r := range raw {
		id, err := kernel.UUIDFromBytes(r[:])
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
