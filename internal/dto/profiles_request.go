package dto

type ChangeProfileRequest struct {
	ProfileID int64             `json:"profile_id" binding:"required"`
	Updates   map[string]string `json:"updates" binding:"required"`
}

type FollowRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
}

type UnfollowRequest struct {
	Username string `json:"username" binding:"required"`
}
