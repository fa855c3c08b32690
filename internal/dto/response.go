package dto

import "time"

type BasicResponse struct {
	Ok        bool      `json:"ok"`
	Details   string    `json:"details"`
	Timestamp time.Time `json:"timestamp"`
}

func NewBasicResponse(ok bool, details string) BasicResponse {
	return BasicResponse{
		Ok:        ok,
		Details:   details,
		Timestamp: time.Now(),
	}
}

type LoginResponse struct {
	UserID int64  `json:"user_id"`
	Token  string `json:"token"`
}

type LikeResponse struct {
	Created bool  `json:"created"`
	Likes   int64 `json:"likes"`
}
