package dto

type RegisterKeyRequest struct {
	ID        string `json:"id" binding:"required,uuid"`
	SecretKey string `json:"secret_key"`
}

type SessionRequest struct {
	ID        string `json:"id" binding:"required,uuid"`
	SecretKey string `json:"secret_key"`
}
