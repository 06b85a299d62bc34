package utils

import "time"

// ParseDate interpreta datas no formato YYYY-MM-DD no fuso informado; string
// vazia resolve para a data zero
func ParseDate(dateStr string, loc *time.Location) (*time.Time, error) {
	var date time.Time

	if dateStr != "" {
		incomingDate, err := time.ParseInLocation(time.DateOnly, dateStr, loc)
		if err != nil {
			return nil, err
		}

		date = incomingDate
	}

	return &date, nil
}
