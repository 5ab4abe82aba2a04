package toggle_holiday

// ToggleHolidayRequest HTTP request model
// Если заданы name и behavior, праздник создаётся при отсутствии;
// иначе меняется только флаг active у существующего
type ToggleHolidayRequest struct {
	Active   bool    `json:"active"`
	Name     *string `json:"name,omitempty"`
	Behavior *string `json:"behavior,omitempty"`
}

// ToggleHolidayResponse HTTP response model
type ToggleHolidayResponse struct {
	Date   string `json:"date"`
	Active bool   `json:"active"`
}
