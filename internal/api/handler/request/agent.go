package request

type CreateAgentDTO struct {
	DisplayName string  `json:"displayName" validate:"required"`
	Bio         string  `json:"bio"`
	City        string  `json:"city"`
	Country     string  `json:"country"`
	HourlyRate  float64 `json:"hourlyRate" validate:"gte=0"`
}

type UpdateAgentDTO struct {
	DisplayName *string  `json:"displayName"`
	Bio         *string  `json:"bio"`
	City        *string  `json:"city"`
	Country     *string  `json:"country"`
	HourlyRate  *float64 `json:"hourlyRate"`
}
