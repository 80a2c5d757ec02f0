package userdto

type Payload struct {
	Email         string `json:"email" validate:"required,rfc5322,max=254"`
	FirstName     string `json:"firstName" validate:"required,max=100"`
	LastName      string `json:"lastName" validate:"required,max=100"`
	Unit          string `json:"unit" validate:"required,max=20"`
	IsBoardMember bool   `json:"isBoardMember"`
}
