package dto

type SoftwareFilter struct {
	Category string `form:"category"`
	Search   string `form:"search"`
}

type CreateSoftwareRequest struct {
	Name        string  `json:"name" binding:"required,max=255"`
	Version     string  `json:"version" binding:"required,max=255"`
	Category    *string `json:"category" binding:"omitempty,max=255"`
	Vendor      *string `json:"vendor" binding:"omitempty,max=255"`
	Description *string `json:"description"`
	InstallDate *string `json:"install_date" binding:"omitempty,datetime=2006-01-02"`
	IsLicensed  *bool   `json:"is_licensed"`
}

// UpdateSoftwareRequest is a partial update: only non-nil fields are applied.
type UpdateSoftwareRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=255"`
	Version     *string `json:"version" binding:"omitempty,max=255"`
	Category    *string `json:"category" binding:"omitempty,max=255"`
	Vendor      *string `json:"vendor" binding:"omitempty,max=255"`
	Description *string `json:"description"`
	InstallDate *string `json:"install_date" binding:"omitempty,datetime=2006-01-02"`
	IsLicensed  *bool   `json:"is_licensed"`
}
