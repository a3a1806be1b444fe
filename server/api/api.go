// Package api holds the wire types and endpoint names of the HTTP facade.
package api

const (
	EndPointHelp            = "/help"
	EndPointRegister        = "/register"
	EndPointLogin           = "/login"
	EndPointReport          = "/report"
	EndPointMyReports       = "/my_reports"
	EndPointReports         = "/reports"
	EndPointUpdateReport    = "/update_report"
	EndPointSuggestCategory = "/suggest_category"
	EndPointNotifications   = "/notifications"
	EndPointStations        = "/stations"
	EndPointGetMap          = "/get_map"
	EndPointReportsGeoJSON  = "/reports_geojson"
	EndPointExportCSV       = "/export_csv"
)

// APIVersion must be sent in every POST body.
const APIVersion = "2.0"

type RegisterArgs struct {
	Version  string `json:"version"` // Must be "2.0"
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"` // cittadino or operatore
}

type RegisterResp struct {
	UserID int64 `json:"user_id"`
}

type LoginArgs struct {
	Version  string `json:"version"` // Must be "2.0"
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResp struct {
	UserID int64  `json:"user_id"`
	Role   string `json:"role"`
}

type ReportArgs struct {
	Version     string `json:"version"` // Must be "2.0"
	UserID      int64  `json:"user_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Station     string `json:"station"`
	PhotoName   string `json:"photo_name,omitempty"`
	Photo       []byte `json:"photo,omitempty"`
}

type ReportResp struct {
	ReportID  int64    `json:"report_id"`
	Status    string   `json:"status"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	PhotoPath string   `json:"photo_path,omitempty"`
}

type UpdateReportArgs struct {
	Version    string `json:"version"` // Must be "2.0"
	ReportID   int64  `json:"report_id"`
	AssignedTo string `json:"assigned_to"`
	Status     string `json:"status"`
}

type SuggestArgs struct {
	Version     string `json:"version"` // Must be "2.0"
	Description string `json:"description"`
}

type SuggestResp struct {
	Category string `json:"category"`
}

type ViewPort struct {
	LatMin float64 `json:"latmin"`
	LonMin float64 `json:"lonmin"`
	LatMax float64 `json:"latmax"`
	LonMax float64 `json:"lonmax"`
}

type MapArgs struct {
	Version  string   `json:"version"` // Must be "2.0"
	VPort    ViewPort `json:"vport"`
	Category string   `json:"category,omitempty"`
	Status   string   `json:"status,omitempty"`
	Assignee string   `json:"assigned_to,omitempty"`
}

type MapResult struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Count     int64   `json:"count"`
}
