package dto

type AdditionalDataInput struct {
	EncryptedData string `json:"encryptedData"`
	UserID        string `json:"userId"`
}

// ProfilePayload is the decrypted additional-data record.
type ProfilePayload struct {
	UserID      int    `json:"userId"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	MiddleName  string `json:"middleName"`
	PhoneNumber string `json:"phoneNumber"`
	Email       string `json:"email"`
	City        string `json:"city"`
}
