package models

// Weather is the decorative forecast annotation attached to a game.
type Weather struct {
	Temp      int    `dynamodbav:"temp" json:"temp"`
	Condition string `dynamodbav:"condition" json:"condition"`
	Icon      string `dynamodbav:"icon" json:"icon"`
}

// WeatherCacheEntry is one cached lookup, keyed by calendar date. Multiple
// games on the same date share one entry.
type WeatherCacheEntry struct {
	Date     string  `dynamodbav:"date" json:"date"`
	Weather  Weather `dynamodbav:"weather" json:"weather"`
	CachedAt string  `dynamodbav:"cachedAt" json:"cachedAt"`
}
