package holidayfeed

// FeedHoliday праздник из внешнего производственного календаря
type FeedHoliday struct {
	Date string `json:"date"` // YYYY-MM-DD
	Name string `json:"name"`
}

// FeedResponse ответ внешнего календаря за год
type FeedResponse struct {
	Year     int           `json:"year"`
	Holidays []FeedHoliday `json:"holidays"`
}
