// Package domain defines the persistence models for document reports, match
// decisions, and notifications. These types are mapped with GORM and form the
// core data layer of the matching engine.
package domain

import "time"

// Report status values. A candidate must carry the opposite status of the
// report it is matched against.
const (
	StatusLost  = "lost"
	StatusFound = "found"
)

// Document type values accepted by the submission flow.
const (
	TypeNationalID     = "national-id"
	TypePassport       = "passport"
	TypeDriversLicense = "drivers-license"
	TypeOther          = "other"
)

// NotificationTypeMatch is the only notification type emitted by the engine.
const NotificationTypeMatch = "match"

// OppositeStatus maps lost to found and found to lost. It returns an empty
// string for anything else so callers can reject unknown statuses early.
func OppositeStatus(status string) string {
	switch status {
	case StatusLost:
		return StatusFound
	case StatusFound:
		return StatusLost
	default:
		return ""
	}
}

// KnownType reports whether t is one of the accepted document types.
func KnownType(t string) bool {
	switch t {
	case TypeNationalID, TypePassport, TypeDriversLicense, TypeOther:
		return true
	default:
		return false
	}
}

// DocumentReport represents a single lost-or-found submission. The engine
// treats rows as immutable history: status transitions and verification flags
// belong to the surrounding CRUD subsystem.
//
// Fields:
//   - ID: stable UUID primary key (char(36)).
//   - OwnerID: identifier of the reporter; indexed, never matched against itself.
//   - Type / Status: document type and lost/found side; composite index drives
//     candidate retrieval.
//   - DocumentNumber: optional printed number; empty means "not provided".
//   - Title / Description: free-text description of the item.
//   - Latitude / Longitude: optional last-seen coordinates. Both pointers are
//     set together or not at all; scorers branch on presence, not on zero values.
//   - CreatedAt / UpdatedAt: timestamps managed by GORM.
type DocumentReport struct {
	ID             string    `json:"id"         gorm:"type:char(36);primaryKey"`
	OwnerID        string    `json:"owner_id"   gorm:"type:varchar(64);not null;index:idx_owner_reports"`
	Type           string    `json:"type"       gorm:"type:varchar(32);not null;index:idx_type_status,priority:1"`
	Status         string    `json:"status"     gorm:"type:varchar(8);not null;index:idx_type_status,priority:2;check:status IN ('lost','found')"`
	DocumentNumber string    `json:"document_number,omitempty" gorm:"type:varchar(64)"`
	Title          string    `json:"title"      gorm:"type:varchar(255);not null"`
	Description    string    `json:"description,omitempty" gorm:"type:text"`
	Latitude       *float64  `json:"latitude,omitempty"`
	Longitude      *float64  `json:"longitude,omitempty"`
	CreatedAt      time.Time `json:"created_at" gorm:"index"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// TableName returns the database table name for DocumentReport.
func (DocumentReport) TableName() string { return "document_reports" }

// Location returns the report coordinates and whether both are present.
func (r DocumentReport) Location() (lat, lng float64, ok bool) {
	if r.Latitude == nil || r.Longitude == nil {
		return 0, 0, false
	}
	return *r.Latitude, *r.Longitude, true
}

// MatchDecision records that two reports were confidently matched. At most one
// row exists per unordered report pair for the lifetime of both reports; the
// unique index on PairKey is what enforces the at-most-once guarantee under
// concurrent matching passes.
//
// Rows are written once and never updated.
type MatchDecision struct {
	ID            string    `json:"id"              gorm:"type:char(36);primaryKey"`
	PairKey       string    `json:"-"               gorm:"type:varchar(80);not null;uniqueIndex:ux_decision_pair"`
	LostReportID  string    `json:"lost_report_id"  gorm:"type:char(36);not null;index"`
	FoundReportID string    `json:"found_report_id" gorm:"type:char(36);not null;index"`
	Score         int       `json:"score"           gorm:"not null"`
	Reasons       []string  `json:"reasons"         gorm:"serializer:json;type:text;not null"`
	CreatedAt     time.Time `json:"created_at"`
}

// TableName returns the database table name for MatchDecision.
func (MatchDecision) TableName() string { return "match_decisions" }

// Notification is one half of the symmetric pair emitted when a MatchDecision
// is first recorded. Exactly two rows (one per owner) accompany every decision;
// they are inserted in the same transaction as the decision itself.
type Notification struct {
	ID                  string    `json:"id"                     gorm:"type:char(36);primaryKey"`
	RecipientID         string    `json:"recipient_id"           gorm:"type:varchar(64);not null;index:idx_recipient_notifs"`
	Type                string    `json:"type"                   gorm:"type:varchar(16);not null;default:'match'"`
	Message             string    `json:"message"                gorm:"type:varchar(255);not null"`
	MatchedReportID     string    `json:"matched_report_id"      gorm:"type:char(36);not null"`
	MatchScore          int       `json:"match_score"            gorm:"not null"`
	MatchedWithReportID string    `json:"matched_with_report_id" gorm:"type:char(36);not null"`
	Read                bool      `json:"read"                   gorm:"not null;default:false;index"`
	CreatedAt           time.Time `json:"created_at"`
}

// TableName returns the database table name for Notification.
func (Notification) TableName() string { return "notifications" }
