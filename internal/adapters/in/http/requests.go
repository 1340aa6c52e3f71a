package http

import (
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/parcel"
	"shipping/internal/core/domain/model/route"
	"shipping/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

type addressRequest struct {
	Street     string   `json:"street" validate:"required"`
	City       string   `json:"city" validate:"required"`
	State      string   `json:"state"`
	PostalCode string   `json:"postalCode"`
	Lat        *float64 `json:"lat" validate:"required_with=Lng,omitempty,min=-90,max=90"`
	Lng        *float64 `json:"lng" validate:"required_with=Lat,omitempty,min=-180,max=180"`
}

func (r addressRequest) toAddress() (kernel.Address, error) {
	var point *kernel.GeoPoint
	if r.Lat != nil && r.Lng != nil {
		p, err := kernel.NewGeoPoint(*r.Lat, *r.Lng)
		if err != nil {
			return kernel.Address{}, err
		}
		point = &p
	}
	return kernel.NewAddress(r.Street, r.City, r.State, r.PostalCode, point)
}

type createPackageRequest struct {
	ClientID            string          `json:"clientId" validate:"required,uuid"`
	OriginBranchID      string          `json:"originBranchId" validate:"required,uuid"`
	DestinationBranchID *string         `json:"destinationBranchId" validate:"omitempty,uuid"`
	RecipientName       string          `json:"recipientName" validate:"required"`
	RecipientPhone      string          `json:"recipientPhone"`
	Destination         addressRequest  `json:"destination" validate:"required"`
	DeliveryType        string          `json:"deliveryType" validate:"omitempty,oneof=home branch_pickup"`
	Description         string          `json:"description"`
	Weight              decimal.Decimal `json:"weight"`
	TotalPrice          decimal.Decimal `json:"totalPrice"`
	PaymentMethod       string          `json:"paymentMethod" validate:"required"`
	MaxAttempts         int             `json:"maxAttempts" validate:"gte=0"`
}

func (r createPackageRequest) toIntake(defaultMaxAttempts int) (parcel.Intake, error) {
	clientID, err := parseID("clientId", r.ClientID)
	if err != nil {
		return parcel.Intake{}, err
	}
	originID, err := parseID("originBranchId", r.OriginBranchID)
	if err != nil {
		return parcel.Intake{}, err
	}
	destinationID, err := optionalID("destinationBranchId", r.DestinationBranchID)
	if err != nil {
		return parcel.Intake{}, err
	}
	address, err := r.Destination.toAddress()
	if err != nil {
		return parcel.Intake{}, err
	}

	maxAttempts := r.MaxAttempts
	if maxAttempts == 0 {
		maxAttempts = defaultMaxAttempts
	}

	return parcel.Intake{
		ClientID:            clientID,
		OriginBranchID:      originID,
		DestinationBranchID: destinationID,
		RecipientName:       r.RecipientName,
		RecipientPhone:      r.RecipientPhone,
		Destination:         address,
		DeliveryType:        parcel.DeliveryType(r.DeliveryType),
		Description:         r.Description,
		Weight:              r.Weight,
		TotalPrice:          r.TotalPrice,
		PaymentMethod:       parcel.PaymentMethod(r.PaymentMethod),
		MaxAttempts:         maxAttempts,
	}, nil
}

type transitionStatusRequest struct {
	Status          string     `json:"status" validate:"required"`
	BranchID        *string    `json:"branchId" validate:"omitempty,uuid"`
	Notes           string     `json:"notes"`
	NextAttemptDate *time.Time `json:"nextAttemptDate"`
}

type notesRequest struct {
	Notes string `json:"notes"`
}

type reportIssueRequest struct {
	Type        string `json:"type" validate:"required"`
	Description string `json:"description" validate:"required"`
	Priority    string `json:"priority"`
}

type resolveIssueRequest struct {
	Resolution string `json:"resolution"`
}

type reasonRequest struct {
	Reason string `json:"reason" validate:"required"`
}

type refundRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

type paymentRequest struct {
	Method string `json:"method" validate:"required"`
}

type stopRequest struct {
	Order                  int             `json:"order" validate:"gte=0"`
	Action                 string          `json:"action" validate:"required"`
	PackageIDs             []string        `json:"packageIds" validate:"dive,uuid"`
	Address                *addressRequest `json:"address"`
	EstimatedTravelMinutes int             `json:"estimatedTravelMinutes" validate:"gte=0"`
	Notes                  string          `json:"notes"`
}

func (r stopRequest) toPlan() (route.StopPlan, error) {
	ids, err := parseIDs("packageIds", r.PackageIDs)
	if err != nil {
		return route.StopPlan{}, err
	}
	plan := route.StopPlan{
		Order:           r.Order,
		Action:          route.Action(r.Action),
		PackageIDs:      ids,
		EstimatedTravel: time.Duration(r.EstimatedTravelMinutes) * time.Minute,
		Notes:           r.Notes,
	}
	if r.Address != nil {
		address, addrErr := r.Address.toAddress()
		if addrErr != nil {
			return route.StopPlan{}, addrErr
		}
		plan.Address = &address
	}
	return plan, nil
}

type createRouteRequest struct {
	BranchID       string        `json:"branchId" validate:"required,uuid"`
	ScheduledStart time.Time     `json:"scheduledStart" validate:"required"`
	ScheduledEnd   time.Time     `json:"scheduledEnd" validate:"required"`
	Stops          []stopRequest `json:"stops" validate:"required,min=1,dive"`
}

type assignRouteRequest struct {
	VehicleID     string  `json:"vehicleId" validate:"required,uuid"`
	DelivererID   string  `json:"delivererId" validate:"required,uuid"`
	TransporterID *string `json:"transporterId" validate:"omitempty,uuid"`
}

type completeStopRequest struct {
	CompletedPackageIDs []string `json:"completedPackageIds" validate:"dive,uuid"`
	FailedPackageIDs    []string `json:"failedPackageIds" validate:"dive,uuid"`
	Notes               string   `json:"notes"`
}

type failStopRequest struct {
	Reason            string   `json:"reason" validate:"required"`
	SkippedPackageIDs []string `json:"skippedPackageIds" validate:"dive,uuid"`
}

type skipStopRequest struct {
	Reason string `json:"reason"`
}

type reorderStopsRequest struct {
	Order []int `json:"order" validate:"required,min=1"`
}

type createBranchRequest struct {
	CompanyID     string `json:"companyId" validate:"required,uuid"`
	Name          string `json:"name" validate:"required"`
	CapacityLimit *int   `json:"capacityLimit" validate:"omitempty,gte=0"`
}

type updateCapacityRequest struct {
	CapacityLimit *int `json:"capacityLimit" validate:"omitempty,gte=0"`
}

func parseID(param, raw string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(param, err)
	}
	return id, nil
}

func optionalID(param string, raw *string) (*kernel.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	id, err := parseID(param, *raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func parseIDs(param string, raw []string) ([]kernel.UUID, error) {
	ids, err := kernel.UUIDsFromStrings(raw)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause(param, err)
	}
	return ids, nil
}
