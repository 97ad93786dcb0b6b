package dto

type GenerateKeyInput struct {
	UserID string `json:"userId"`
}

type GenerateKeyOutput struct {
	KeyHash string `json:"keyHash"`
}
