package response

import (
	"pearl-desk/internal/usecase"
)

type ServiceCountResponse struct {
	Item  string `json:"item"`
	Count int64  `json:"count"`
}

type ReportResponse struct {
	TotalRevenueCents int64                  `json:"totalRevenueCents"`
	OccupancyRate     float64                `json:"occupancyRate"`
	CompletedStays    int64                  `json:"completedStays"`
	MaintenanceRooms  int64                  `json:"maintenanceRooms"`
	PopularServices   []ServiceCountResponse `json:"popularServices"`
}

func FromReportView(rm *usecase.ReportView) *ReportResponse {
	services := make([]ServiceCountResponse, len(rm.PopularServices))
	for i, s := range rm.PopularServices {
		services[i] = ServiceCountResponse{Item: s.Item, Count: s.Count}
	}

	return &ReportResponse{
		TotalRevenueCents: rm.TotalRevenueCents,
		OccupancyRate:     rm.OccupancyRate,
		CompletedStays:    rm.CompletedStays,
		MaintenanceRooms:  rm.MaintenanceRooms,
		PopularServices:   services,
	}
}
