package model

import "time"

const (
	StatusAvailable        = "available"
	StatusUnderMaintenance = "under_maintenance"
)

// SystemStatuses lists every valid computer status.
func SystemStatuses() []string {
	return []string{StatusAvailable, StatusUnderMaintenance}
}

// IsValidSystemStatus reports whether s is a known status value.
func IsValidSystemStatus(s string) bool {
	return s == StatusAvailable || s == StatusUnderMaintenance
}

type Computer struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	SystemStatus string      `gorm:"size:50;not null;index" json:"system_status"`
	OS           *string     `gorm:"size:255" json:"os,omitempty"`
	Processor    *string     `gorm:"size:255" json:"processor,omitempty"`
	RAM          *string     `gorm:"size:255" json:"ram,omitempty"`
	Storage      *string     `gorm:"size:255" json:"storage,omitempty"`
	GraphicsCard *string     `gorm:"size:255" json:"graphics_card,omitempty"`
	Motherboard  *string     `gorm:"size:255" json:"motherboard,omitempty"`
	Location     *string     `gorm:"size:255" json:"location,omitempty"`
	AssetTag     *string     `gorm:"size:255;uniqueIndex" json:"asset_tag,omitempty"`
	Complaints   []Complaint `gorm:"constraint:OnDelete:CASCADE" json:"complaints,omitempty"`
	Software     []Software  `gorm:"constraint:OnDelete:CASCADE" json:"software,omitempty"`
	CreatedAt    time.Time   `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt    time.Time   `gorm:"autoUpdateTime" json:"updated_at"`
}

func (c *Computer) IsAvailable() bool {
	return c.SystemStatus == StatusAvailable
}

const (
	ComplaintOpen     = "open"
	ComplaintResolved = "resolved"
)

// Complaint is one reported issue against a computer. Complaints used to be
// a JSON string array on the computer row; giving each its own row makes
// add/resolve a single-row write instead of a read-modify-write of the
// whole list.
type Complaint struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ComputerID uint      `gorm:"index;not null" json:"computer_id"`
	Text       string    `gorm:"size:500;not null" json:"text"`
	Status     string    `gorm:"size:20;not null;default:open" json:"status"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type Software struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	ComputerID  uint       `gorm:"index;not null" json:"computer_id"`
	Computer    *Computer  `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Name        string     `gorm:"size:255;not null" json:"name"`
	Version     string     `gorm:"size:255;not null" json:"version"`
	Category    *string    `gorm:"size:255;index" json:"category,omitempty"`
	Vendor      *string    `gorm:"size:255" json:"vendor,omitempty"`
	Description *string    `gorm:"type:text" json:"description,omitempty"`
	InstallDate *time.Time `json:"install_date,omitempty"`
	IsLicensed  bool       `gorm:"default:false" json:"is_licensed"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}
