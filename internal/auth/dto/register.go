package dto

type RegisterInput struct {
	EncryptedData string `json:"encryptedData"`
	UserID        string `json:"userId"`
}

// Credentials is the decrypted payload shared by register and login.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
