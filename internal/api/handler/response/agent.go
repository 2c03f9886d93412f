package response

type AgentResponseDTO struct {
	ID          uint    `json:"id"`
	UserID      uint    `json:"userId"`
	DisplayName string  `json:"displayName"`
	Bio         string  `json:"bio"`
	City        string  `json:"city"`
	Country     string  `json:"country"`
	HourlyRate  float64 `json:"hourlyRate"`
	Rating      float64 `json:"rating"`
	ReviewCount int     `json:"reviewCount"`
}
