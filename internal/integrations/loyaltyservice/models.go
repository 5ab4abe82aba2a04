package loyaltyservice

// AddPointsRequest запрос на начисление баллов за визит
type AddPointsRequest struct {
	ClientID  int64   `json:"client_id"`
	CompanyID int64   `json:"company_id"`
	BookingID int64   `json:"booking_id"`
	Amount    float64 `json:"amount"`
}

// AddPointsResponse результат начисления баллов
type AddPointsResponse struct {
	ClientID int64 `json:"client_id"`
	Points   int64 `json:"points"`
}
