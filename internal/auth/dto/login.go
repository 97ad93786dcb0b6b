package dto

type LoginInput struct {
	EncryptedData string `json:"encryptedData"`
	UserID        string `json:"userId"`
}

type LoginOutput struct {
	UserID   int
	Username string
	Token    string
}
