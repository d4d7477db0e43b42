package dto

// Request/response shapes for the solve and replan endpoints. Field names
// follow the established wire contract.

type BranchRequest struct {
	ID  string  `json:"id"`
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type TargetRequest struct {
	ID        string  `json:"id"`
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	Stay      int     `json:"stay"`
	Mandatory *bool   `json:"mandatory"`
	ExactTime *string `json:"exact_time"`
}

type DateRangeRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type VehicleRequest struct {
	ID      string   `json:"id"`
	OffDays []string `json:"off_days"`
}

type SolveRequest struct {
	Branch             BranchRequest       `json:"branch"`
	Targets            []TargetRequest     `json:"targets"`
	DateRange          DateRangeRequest    `json:"date_range"`
	Holidays           []string            `json:"holidays"`
	WeekdayTimeWindows map[string][]string `json:"weekday_time_windows"`
	Vehicles           []VehicleRequest    `json:"vehicles"`
	TimeoutSeconds     int                 `json:"timeout_seconds"`
	UseGoogleAPI       bool                `json:"use_google_api"`
	GoogleAPIKey       string              `json:"google_api_key"`
}

type VehiclePositionRequest struct {
	CurrentTime int `json:"current_time"`
}

type ReplanRequest struct {
	SolveRequest
	PrevTargets      []TargetRequest          `json:"prev_targets"`
	PrevRoutes       [][]int                  `json:"prev_routes"`
	VehiclePositions []VehiclePositionRequest `json:"vehicle_positions"`
}

type StopResponse struct {
	RoutingIndex   int    `json:"routing_index"`
	NodeID         int    `json:"node_id"`
	NodeName       string `json:"node_name"`
	ArrivalTimeStr string `json:"arrival_time_str"`
	ExactTime      string `json:"exact_time"`
	Mandatory      string `json:"mandatory"`
}

type RouteResponse struct {
	VehicleID int            `json:"vehicle_id"`
	Stops     []StopResponse `json:"stops"`
}

type SolveResponse struct {
	SolutionFound bool            `json:"solution_found"`
	Routes        []RouteResponse `json:"routes"`
}

type ReplanResponse struct {
	SolveResponse
	ReplanStatus string `json:"replan_status"`
}
