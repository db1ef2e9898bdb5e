package rental

import "videorental/internal/domain"

type IssueInput struct {
	ClientID    int64
	MediaUnitID int64
	TariffID    int64
	Days        int
	StaffID     int64
	Notes       string
}

type ReturnInput struct {
	Condition domain.Condition
	Notes     string
	StaffID   int64
}

type CreateRentalRequest struct {
	ClientID    int64  `json:"client_id" validate:"required"`
	MediaUnitID int64  `json:"cassette_id" validate:"required"`
	TariffID    int64  `json:"tariff_id" validate:"required"`
	Days        int    `json:"days" validate:"required,min=1"`
	Notes       string `json:"notes" validate:"max=1000"`
}

type ReturnRequest struct {
	Condition domain.Condition `json:"condition"`
	Notes     string           `json:"notes" validate:"max=1000"`
}
