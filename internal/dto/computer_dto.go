package dto

import "github.com/foc-sab/ctrlroom/internal/model"

// ComputerFilter carries the list query parameters. PerPage is a pointer so
// an absent parameter (defaulted) is distinct from an explicit 0 (clamped).
type ComputerFilter struct {
	SystemStatus string `form:"system_status"`
	Location     string `form:"location"`
	Search       string `form:"search"`
	Page         int    `form:"page"`
	PerPage      *int   `form:"per_page"`
}

type CreateComputerRequest struct {
	SystemStatus string   `json:"system_status" binding:"required,oneof=available under_maintenance"`
	Complaints   []string `json:"complaints" binding:"omitempty,dive,max=500"`
	OS           *string  `json:"os" binding:"omitempty,max=255"`
	Processor    *string  `json:"processor" binding:"omitempty,max=255"`
	RAM          *string  `json:"ram" binding:"omitempty,max=255"`
	Storage      *string  `json:"storage" binding:"omitempty,max=255"`
	GraphicsCard *string  `json:"graphics_card" binding:"omitempty,max=255"`
	Motherboard  *string  `json:"motherboard" binding:"omitempty,max=255"`
	Location     *string  `json:"location" binding:"omitempty,max=255"`
	AssetTag     *string  `json:"asset_tag" binding:"omitempty,max=255"`
}

// UpdateComputerRequest is a partial update: only non-nil fields are applied.
type UpdateComputerRequest struct {
	SystemStatus *string `json:"system_status" binding:"omitempty,oneof=available under_maintenance"`
	OS           *string `json:"os" binding:"omitempty,max=255"`
	Processor    *string `json:"processor" binding:"omitempty,max=255"`
	RAM          *string `json:"ram" binding:"omitempty,max=255"`
	Storage      *string `json:"storage" binding:"omitempty,max=255"`
	GraphicsCard *string `json:"graphics_card" binding:"omitempty,max=255"`
	Motherboard  *string `json:"motherboard" binding:"omitempty,max=255"`
	Location     *string `json:"location" binding:"omitempty,max=255"`
	AssetTag     *string `json:"asset_tag" binding:"omitempty,max=255"`
}

type UpdateStatusRequest struct {
	SystemStatus string `json:"system_status" binding:"required,oneof=available under_maintenance"`
}

// SetComplaintsRequest replaces the full complaint list of a computer. The
// pointer distinguishes an absent key from an explicit empty list; replacing
// with [] is valid and clears every complaint.
type SetComplaintsRequest struct {
	Complaints *[]string `json:"complaints" binding:"required"`
}

type AddComplaintRequest struct {
	Text string `json:"text" binding:"required,max=500"`
}

type UpdateComplaintRequest struct {
	Status string `json:"status" binding:"required,oneof=open resolved"`
}

type PaginatedComputersResponse struct {
	Computers []model.Computer `json:"computers"`
	Meta      PaginationMeta   `json:"meta"`
}

type ComputerStatistics struct {
	TotalComputers            int64   `json:"total_computers"`
	AvailableComputers        int64   `json:"available_computers"`
	UnderMaintenanceComputers int64   `json:"under_maintenance_computers"`
	ComputersWithComplaints   int64   `json:"computers_with_complaints"`
	AvailabilityPercentage    float64 `json:"availability_percentage"`
}
