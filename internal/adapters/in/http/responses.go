package http

import (
	"time"

	"shipping/internal/core/application/usecases/queries"
	"shipping/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

type createdResponse struct {
	ID         string `json:"id"`
	TrackingID string `json:"trackingId,omitempty"`
}

type trackingEntryResponse struct {
	Status    string    `json:"status"`
	BranchID  *string   `json:"branchId,omitempty"`
	UserID    *string   `json:"userId,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type issueResponse struct {
	ID          string     `json:"id"`
	Type        string     `json:"type"`
	Description string     `json:"description"`
	Priority    string     `json:"priority"`
	ReportedBy  *string    `json:"reportedBy,omitempty"`
	ReportedAt  time.Time  `json:"reportedAt"`
	Resolved    bool       `json:"resolved"`
	ResolvedAt  *time.Time `json:"resolvedAt,omitempty"`
	ResolvedBy  *string    `json:"resolvedBy,omitempty"`
	Resolution  string     `json:"resolution,omitempty"`
}

type returnInfoResponse struct {
	IsReturn     bool            `json:"isReturn"`
	Reason       string          `json:"reason,omitempty"`
	RefundStatus string          `json:"refundStatus,omitempty"`
	RefundAmount decimal.Decimal `json:"refundAmount"`
}

type packageResponse struct {
	ID                  string                  `json:"id"`
	TrackingID          string                  `json:"trackingId"`
	ClientID            string                  `json:"clientId"`
	OriginBranchID      string                  `json:"originBranchId"`
	CurrentBranchID     *string                 `json:"currentBranchId,omitempty"`
	DestinationBranchID *string                 `json:"destinationBranchId,omitempty"`
	RecipientName       string                  `json:"recipientName"`
	RecipientPhone      string                  `json:"recipientPhone,omitempty"`
	Street              string                  `json:"street"`
	City                string                  `json:"city"`
	DeliveryType        string                  `json:"deliveryType"`
	Status              string                  `json:"status"`
	Weight              decimal.Decimal         `json:"weight"`
	TotalPrice          decimal.Decimal         `json:"totalPrice"`
	PaymentMethod       string                  `json:"paymentMethod"`
	PaymentStatus       string                  `json:"paymentStatus"`
	AttemptCount        int                     `json:"attemptCount"`
	MaxAttempts         int                     `json:"maxAttempts"`
	RemainingAttempts   int                     `json:"remainingAttempts"`
	NextAttemptDate     *time.Time              `json:"nextAttemptDate,omitempty"`
	DeliveredAt         *time.Time              `json:"deliveredAt,omitempty"`
	ReturnInfo          returnInfoResponse      `json:"returnInfo"`
	OpenIssues          int                     `json:"openIssues"`
	Version             int                     `json:"version"`
	CreatedAt           time.Time               `json:"createdAt"`
	UpdatedAt           time.Time               `json:"updatedAt"`
	TrackingHistory     []trackingEntryResponse `json:"trackingHistory"`
	Issues              []issueResponse         `json:"issues"`
}

type packageRouteResponse struct {
	RouteID          string    `json:"routeId"`
	BranchID         string    `json:"branchId"`
	Status           string    `json:"status"`
	ScheduledStart   time.Time `json:"scheduledStart"`
	ScheduledEnd     time.Time `json:"scheduledEnd"`
	CurrentStopIndex int       `json:"currentStopIndex"`
	TotalStops       int       `json:"totalStops"`
	StopPosition     int       `json:"stopPosition"`
	StopAction       string    `json:"stopAction"`
	StopStatus       string    `json:"stopStatus"`
}

type routeStopResponse struct {
	Position          int        `json:"position"`
	Order             int        `json:"order"`
	Action            string     `json:"action"`
	Status            string     `json:"status"`
	PackageIDs        []string   `json:"packageIds"`
	Street            string     `json:"street,omitempty"`
	City              string     `json:"city,omitempty"`
	EstimatedMinutes  float64    `json:"estimatedMinutes"`
	ExpectedArrival   *time.Time `json:"expectedArrival,omitempty"`
	ActualArrival     *time.Time `json:"actualArrival,omitempty"`
	ResolvedAt        *time.Time `json:"resolvedAt,omitempty"`
	CompletedPackages []string   `json:"completedPackages"`
	FailedPackages    []string   `json:"failedPackages"`
	SkippedPackages   []string   `json:"skippedPackages"`
	Notes             string     `json:"notes,omitempty"`
}

// routeResponse carries currentStop and nextStop as null once the route has
// moved past its last stop.
type routeResponse struct {
	ID                 string              `json:"id"`
	BranchID           string              `json:"branchId"`
	VehicleID          *string             `json:"vehicleId,omitempty"`
	DelivererID        *string             `json:"delivererId,omitempty"`
	TransporterID      *string             `json:"transporterId,omitempty"`
	Status             string              `json:"status"`
	ScheduledStart     time.Time           `json:"scheduledStart"`
	ScheduledEnd       time.Time           `json:"scheduledEnd"`
	ActualStart        *time.Time          `json:"actualStart,omitempty"`
	ActualEnd          *time.Time          `json:"actualEnd,omitempty"`
	ActualMinutes      float64             `json:"actualTime"`
	CurrentStopIndex   int                 `json:"currentStopIndex"`
	CompletedStops     int                 `json:"completedStops"`
	FailedStops        int                 `json:"failedStops"`
	SkippedStops       int                 `json:"skippedStops"`
	TotalStops         int                 `json:"totalStops"`
	ProgressPercentage float64             `json:"progressPercentage"`
	OnTimePerformance  float64             `json:"onTimePerformance"`
	Notes              string              `json:"notes,omitempty"`
	CancelReason       string              `json:"cancelReason,omitempty"`
	Version            int                 `json:"version"`
	CreatedAt          time.Time           `json:"createdAt"`
	UpdatedAt          time.Time           `json:"updatedAt"`
	Stops              []routeStopResponse `json:"stops"`
	CurrentStop        *routeStopResponse  `json:"currentStop"`
	NextStop           *routeStopResponse  `json:"nextStop"`
}

type dueForRetryResponse struct {
	ID              string    `json:"id"`
	TrackingID      string    `json:"trackingId"`
	CurrentBranchID *string   `json:"currentBranchId,omitempty"`
	AttemptCount    int       `json:"attemptCount"`
	MaxAttempts     int       `json:"maxAttempts"`
	NextAttemptDate time.Time `json:"nextAttemptDate"`
}

type branchLoadResponse struct {
	ID                    string  `json:"id"`
	Name                  string  `json:"name"`
	Status                string  `json:"status"`
	CapacityLimit         *int    `json:"capacityLimit"`
	CurrentLoad           int     `json:"currentLoad"`
	Available             *int    `json:"available"`
	IsFull                bool    `json:"isFull"`
	UtilizationPercentage float64 `json:"utilizationPercentage"`
}

func idString(id *kernel.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func toPackageResponse(p queries.PackageDetailsResponse) packageResponse {
	history := make([]trackingEntryResponse, 0, len(p.History))
	for _, e := range p.History {
		history = append(history, trackingEntryResponse{
			Status:    e.Status,
			BranchID:  idString(e.BranchID),
			UserID:    idString(e.UserID),
			Notes:     e.Notes,
			Timestamp: e.Timestamp,
		})
	}

	issues := make([]issueResponse, 0, len(p.Issues))
	for _, i := range p.Issues {
		issues = append(issues, issueResponse{
			ID:          i.ID.String(),
			Type:        i.Type,
			Description: i.Description,
			Priority:    i.Priority,
			ReportedBy:  idString(i.ReportedBy),
			ReportedAt:  i.ReportedAt,
			Resolved:    i.Resolved,
			ResolvedAt:  i.ResolvedAt,
			ResolvedBy:  idString(i.ResolvedBy),
			Resolution:  i.Resolution,
		})
	}

	return packageResponse{
		ID:                  p.ID.String(),
		TrackingID:          p.TrackingID,
		ClientID:            p.ClientID.String(),
		OriginBranchID:      p.OriginBranchID.String(),
		CurrentBranchID:     idString(p.CurrentBranchID),
		DestinationBranchID: idString(p.DestinationBranchID),
		RecipientName:       p.RecipientName,
		RecipientPhone:      p.RecipientPhone,
		Street:              p.Street,
		City:                p.City,
		DeliveryType:        p.DeliveryType,
		Status:              p.Status,
		Weight:              p.Weight,
		TotalPrice:          p.TotalPrice,
		PaymentMethod:       p.PaymentMethod,
		PaymentStatus:       p.PaymentStatus,
		AttemptCount:        p.AttemptCount,
		MaxAttempts:         p.MaxAttempts,
		RemainingAttempts:   p.RemainingAttempts,
		NextAttemptDate:     p.NextAttemptDate,
		DeliveredAt:         p.DeliveredAt,
		ReturnInfo: returnInfoResponse{
			IsReturn:     p.IsReturn,
			Reason:       p.ReturnReason,
			RefundStatus: p.RefundStatus,
			RefundAmount: p.RefundAmount,
		},
		OpenIssues:          p.OpenIssues,
		Version:             p.Version,
		CreatedAt:           p.CreatedAt,
		UpdatedAt:           p.UpdatedAt,
		TrackingHistory:     history,
		Issues:              issues,
	}
}

func toRouteStopResponse(stop queries.RouteStopEntry) routeStopResponse {
	return routeStopResponse{
		Position:          stop.Position,
		Order:             stop.Order,
		Action:            stop.Action,
		Status:            stop.Status,
		PackageIDs:        kernel.UUIDStrings(stop.PackageIDs),
		Street:            stop.Street,
		City:              stop.City,
		EstimatedMinutes:  stop.EstimatedTravel.Minutes(),
		ExpectedArrival:   stop.ExpectedArrival,
		ActualArrival:     stop.ActualArrival,
		ResolvedAt:        stop.ResolvedAt,
		CompletedPackages: kernel.UUIDStrings(stop.CompletedPackages),
		FailedPackages:    kernel.UUIDStrings(stop.FailedPackages),
		SkippedPackages:   kernel.UUIDStrings(stop.SkippedPackages),
		Notes:             stop.Notes,
	}
}

func toRouteResponse(r queries.RouteDetailsResponse) routeResponse {
	stops := make([]routeStopResponse, 0, len(r.Stops))
	for _, stop := range r.Stops {
		stops = append(stops, toRouteStopResponse(stop))
	}

	response := routeResponse{
		ID:                 r.ID.String(),
		BranchID:           r.BranchID.String(),
		VehicleID:          idString(r.VehicleID),
		DelivererID:        idString(r.DelivererID),
		TransporterID:      idString(r.TransporterID),
		Status:             r.Status,
		ScheduledStart:     r.ScheduledStart,
		ScheduledEnd:       r.ScheduledEnd,
		ActualStart:        r.ActualStart,
		ActualEnd:          r.ActualEnd,
		ActualMinutes:      r.ActualTime.Minutes(),
		CurrentStopIndex:   r.CurrentStopIndex,
		CompletedStops:     r.CompletedStops,
		FailedStops:        r.FailedStops,
		SkippedStops:       r.SkippedStops,
		TotalStops:         r.TotalStops,
		ProgressPercentage: r.ProgressPercentage,
		OnTimePerformance:  r.OnTimePerformance,
		Notes:              r.Notes,
		CancelReason:       r.CancelReason,
		Version:            r.Version,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
		Stops:              stops,
	}
	if r.CurrentStop != nil {
		current := toRouteStopResponse(*r.CurrentStop)
		response.CurrentStop = &current
	}
	if r.NextStop != nil {
		next := toRouteStopResponse(*r.NextStop)
		response.NextStop = &next
	}
	return response
}
