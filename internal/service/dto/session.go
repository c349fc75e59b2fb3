package dto

type CreateSessionResponse struct {
	SessionID string `json:"session_id"`
}
