package client

type CreateClientRequest struct {
	FullName string `json:"full_name" validate:"required,max=200"`
	Phone    string `json:"phone" validate:"required,max=30,phone"`
	Email    string `json:"email" validate:"omitempty,email,max=255"`
	Status   Status `json:"status"`
	Notes    string `json:"notes" validate:"max=500"`
}

type UpdateClientRequest struct {
	FullName *string `json:"full_name" validate:"omitempty,max=200"`
	Phone    *string `json:"phone" validate:"omitempty,max=30,phone"`
	Email    *string `json:"email" validate:"omitempty,max=255"`
	Status   *Status `json:"status"`
	Notes    *string `json:"notes" validate:"omitempty,max=500"`
}

type ListResponse struct {
	Clients []Client `json:"clients"`
	Total   int64    `json:"total"`
}

type Details struct {
	*Client
	Rentals []HistoryRow `json:"rentals"`
}
