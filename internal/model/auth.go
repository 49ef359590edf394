package model

type AccessToken struct {
	ID string `json:"id"`
}

type GenerateAccessTokenRequest struct {
	UserID string `json:"user_id" form:"user_id"`
}

type GenerateAccessTokenResponse struct {
	AccessToken string `json:"access_token"`
}
