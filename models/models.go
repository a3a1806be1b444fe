// Package models holds the record types shared by every service, plus their
// CSV row mappings. The column names are the ones the tables have always
// carried, so existing data files keep working.
package models

import (
	"errors"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"segnalapp/csvstore"
)

var (
	// ErrNotFound marks a referenced identity that does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidCredentials marks a failed login. It is an explicit
	// negative result for the caller to render, never a crash.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type Role string

const (
	RoleCitizen  Role = "cittadino"
	RoleOperator Role = "operatore"
)

type Status string

const (
	StatusSubmitted  Status = "inviata"
	StatusInProgress Status = "presa in carico"
	StatusResolved   Status = "risolta"
)

// Statuses lists the three report states in lifecycle order. Transitions
// between them are not guarded: an operator may move a report along any
// edge, including back from risolta.
func Statuses() []Status {
	return []Status{StatusSubmitted, StatusInProgress, StatusResolved}
}

func ValidStatus(s Status) bool {
	return s == StatusSubmitted || s == StatusInProgress || s == StatusResolved
}

// TimestampLayout is the notification timestamp format used in the files.
const TimestampLayout = "2006-01-02 15:04:05"

const (
	TableUsers         = "users"
	TableReports       = "reports"
	TableNotifications = "notifications"
	TableStations      = "stations"
)

// Schemas declares the column set of each table, in file order.
func Schemas() map[string][]string {
	return map[string][]string{
		TableUsers:         {"user_id", "email", "password", "role"},
		TableReports:       {"report_id", "user_id", "title", "description", "category", "status", "assigned_to", "stazione", "latitude", "longitude", "photo_path"},
		TableNotifications: {"notification_id", "operator_email", "message", "timestamp"},
		TableStations:      {"nome_stazione", "indirizzo", "comune", "provincia", "regione", "latitudine", "longitudine"},
	}
}

// User is an account row. Passwords are stored in clear text; that is the
// system's current behavior, kept as-is, not an endorsement.
type User struct {
	ID       int64
	Email    string
	Password string
	Role     Role
}

func UserFromRow(r csvstore.Row) User {
	return User{
		ID:       parseID(r["user_id"]),
		Email:    r["email"],
		Password: r["password"],
		Role:     Role(r["role"]),
	}
}

func (u User) Row() csvstore.Row {
	return csvstore.Row{
		"user_id":  strconv.FormatInt(u.ID, 10),
		"email":    u.Email,
		"password": u.Password,
		"role":     string(u.Role),
	}
}

// Report is a citizen-submitted incident record. Station and UserID are
// plain references with no integrity enforcement; a dangling station name
// simply means no geotag.
type Report struct {
	ID          int64
	UserID      int64
	Title       string
	Description string
	Category    string
	Status      Status
	AssignedTo  string
	Station     string
	Latitude    *decimal.Decimal
	Longitude   *decimal.Decimal
	PhotoPath   string
}

func ReportFromRow(r csvstore.Row) Report {
	return Report{
		ID:          parseID(r["report_id"]),
		UserID:      parseID(r["user_id"]),
		Title:       r["title"],
		Description: r["description"],
		Category:    r["category"],
		Status:      Status(r["status"]),
		AssignedTo:  r["assigned_to"],
		Station:     r["stazione"],
		Latitude:    parseCoord(r["latitude"]),
		Longitude:   parseCoord(r["longitude"]),
		PhotoPath:   r["photo_path"],
	}
}

func (p Report) Row() csvstore.Row {
	return csvstore.Row{
		"report_id":   strconv.FormatInt(p.ID, 10),
		"user_id":     strconv.FormatInt(p.UserID, 10),
		"title":       p.Title,
		"description": p.Description,
		"category":    p.Category,
		"status":      string(p.Status),
		"assigned_to": p.AssignedTo,
		"stazione":    p.Station,
		"latitude":    coordString(p.Latitude),
		"longitude":   coordString(p.Longitude),
		"photo_path":  p.PhotoPath,
	}
}

// Notification is an operator inbox row, immutable once written.
type Notification struct {
	ID            int64
	OperatorEmail string
	Message       string
	Timestamp     time.Time
}

func NotificationFromRow(r csvstore.Row) Notification {
	ts, _ := time.Parse(TimestampLayout, r["timestamp"])
	return Notification{
		ID:            parseID(r["notification_id"]),
		OperatorEmail: r["operator_email"],
		Message:       r["message"],
		Timestamp:     ts,
	}
}

func (n Notification) Row() csvstore.Row {
	return csvstore.Row{
		"notification_id": strconv.FormatInt(n.ID, 10),
		"operator_email":  n.OperatorEmail,
		"message":         n.Message,
		"timestamp":       n.Timestamp.Format(TimestampLayout),
	}
}

// Station is externally supplied reference data, never written back.
// Coordinates stay decimal so the source values survive re-serialization
// digit for digit.
type Station struct {
	Name         string
	Address      string
	Municipality string
	Province     string
	Region       string
	Latitude     decimal.Decimal
	Longitude    decimal.Decimal
}

func StationFromRow(r csvstore.Row) Station {
	lat, _ := decimal.NewFromString(r["latitudine"])
	lon, _ := decimal.NewFromString(r["longitudine"])
	return Station{
		Name:         r["nome_stazione"],
		Address:      r["indirizzo"],
		Municipality: r["comune"],
		Province:     r["provincia"],
		Region:       r["regione"],
		Latitude:     lat,
		Longitude:    lon,
	}
}

func parseID(s string) int64 {
	n, _ := strconv.ParseInt(s, 10, 64)
	return n
}

func parseCoord(s string) *decimal.Decimal {
	if s == "" {
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil
	}
	return &d
}

func coordString(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.String()
}
