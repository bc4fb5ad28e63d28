package dto

import "io"

// UpdateProfileRequest is a partial update: nil pointers leave the field
// untouched.
type UpdateProfileRequest struct {
	Name     *string `json:"name" form:"name" binding:"omitempty,max=255"`
	Email    *string `json:"email" form:"email" binding:"omitempty,email,max=255"`
	Phone    *string `json:"phone" form:"phone" binding:"omitempty,max=50"`
	Location *string `json:"location" form:"location" binding:"omitempty,max=255"`
	Bio      *string `json:"bio" form:"bio" binding:"omitempty,max=2000"`
}

// ProfilePicture is an uploaded profile image.
type ProfilePicture struct {
	Reader   io.Reader
	FileName string
}
