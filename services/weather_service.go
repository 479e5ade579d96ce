package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"net/http"
	"time"

	"github.com/arthurarakelov/burlington-ballers/models"
	"github.com/arthurarakelov/burlington-ballers/utils"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Weather is decorative: Annotate never fails, it degrades to a fixed
// placeholder instead.
var fallbackWeather = models.Weather{Temp: 75, Condition: "TBD", Icon: "Sun"}

// cacheTTL is how long a cached lookup is considered fresh.
const cacheTTL = 2 * time.Hour

// forecastHorizonHours is how far out the fine-grained forecast endpoint
// reaches; beyond it, current conditions stand in as a rough proxy.
const forecastHorizonHours = 120

// WeatherService annotates games with a point forecast, read through a
// day-granularity cache in the WeatherCache table.
type WeatherService struct {
	Dynamo     DynamoAPI
	HTTPClient *http.Client
	APIKey     string
	BaseURL    string
	Latitude   float64
	Longitude  float64
	Clock      func() time.Time
}

func (s *WeatherService) now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now()
}

// Annotate returns the weather annotation for a game's date and start time.
// Cache hits are returned verbatim; misses hit the provider and overwrite
// the cache. Any provider problem yields the fallback payload.
func (s *WeatherService) Annotate(ctx context.Context, date, clock string) models.Weather {
	if s.APIKey == "" {
		log.Println("⚠️ No weather API key configured, using default weather")
		return fallbackWeather
	}

	if cached, ok := s.readCache(ctx, date); ok {
		return cached
	}

	fresh, err := s.fetchFromProvider(ctx, date, clock)
	if err != nil {
		log.Printf("⚠️ Weather lookup failed for %s: %v", date, err)
		return fallbackWeather
	}

	entry := models.WeatherCacheEntry{
		Date:     date,
		Weather:  fresh,
		CachedAt: s.now().UTC().Format(time.RFC3339),
	}
	if err := s.Dynamo.PutItem(ctx, models.WeatherCacheTable, entry); err != nil {
		log.Printf("⚠️ Failed to cache weather for %s: %v", date, err)
	}

	return fresh
}

func (s *WeatherService) readCache(ctx context.Context, date string) (models.Weather, bool) {
	key := map[string]types.AttributeValue{
		"date": &types.AttributeValueMemberS{Value: date},
	}
	item, err := s.Dynamo.GetItem(ctx, models.WeatherCacheTable, key)
	if err != nil {
		if !errors.Is(err, models.ErrNotFound) {
			log.Printf("⚠️ Weather cache read failed for %s: %v", date, err)
		}
		return models.Weather{}, false
	}

	var entry models.WeatherCacheEntry
	if err := attributevalue.UnmarshalMap(item, &entry); err != nil {
		return models.Weather{}, false
	}

	cachedAt, err := time.Parse(time.RFC3339, entry.CachedAt)
	if err != nil || s.now().Sub(cachedAt) >= cacheTTL {
		return models.Weather{}, false
	}
	return entry.Weather, true
}

// owmSample is the slice of an OpenWeatherMap response we care about; the
// current-conditions body has the same shape minus dt.
type owmSample struct {
	Dt   int64 `json:"dt"`
	Main struct {
		Temp float64 `json:"temp"`
	} `json:"main"`
	Weather []struct {
		Main string `json:"main"`
	} `json:"weather"`
}

type owmForecastResponse struct {
	List []owmSample `json:"list"`
}

func (s *WeatherService) fetchFromProvider(ctx context.Context, date, clock string) (models.Weather, error) {
	target, err := utils.CombineDateTime(date, clock, s.now().Location())
	if err != nil {
		return models.Weather{}, err
	}

	if target.Sub(s.now()).Hours() <= forecastHorizonHours {
		return s.fetchForecast(ctx, target)
	}
	return s.fetchCurrent(ctx)
}

func (s *WeatherService) fetchForecast(ctx context.Context, target time.Time) (models.Weather, error) {
	url := fmt.Sprintf("%s/forecast?lat=%f&lon=%f&appid=%s&units=imperial", s.BaseURL, s.Latitude, s.Longitude, s.APIKey)

	var body owmForecastResponse
	if err := s.getJSON(ctx, url, &body); err != nil {
		return models.Weather{}, err
	}
	if len(body.List) == 0 {
		return models.Weather{}, errors.New("forecast response contained no samples")
	}

	// Pick the sample numerically closest to tip-off.
	closest := body.List[0]
	smallest := absDuration(time.Unix(closest.Dt, 0).Sub(target))
	for _, sample := range body.List[1:] {
		diff := absDuration(time.Unix(sample.Dt, 0).Sub(target))
		if diff < smallest {
			smallest = diff
			closest = sample
		}
	}

	return sampleToWeather(closest)
}

func (s *WeatherService) fetchCurrent(ctx context.Context) (models.Weather, error) {
	url := fmt.Sprintf("%s/weather?lat=%f&lon=%f&appid=%s&units=imperial", s.BaseURL, s.Latitude, s.Longitude, s.APIKey)

	var body owmSample
	if err := s.getJSON(ctx, url, &body); err != nil {
		return models.Weather{}, err
	}
	return sampleToWeather(body)
}

func (s *WeatherService) getJSON(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	client := s.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("weather API request failed: %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func sampleToWeather(sample owmSample) (models.Weather, error) {
	if len(sample.Weather) == 0 {
		return models.Weather{}, errors.New("weather response missing condition")
	}
	code := sample.Weather[0].Main
	return models.Weather{
		Temp:      int(math.Round(sample.Main.Temp)),
		Condition: conditionFromCode(code),
		Icon:      iconFromCode(code),
	}, nil
}

// conditionFromCode converts the provider keyword to friendly text.
func conditionFromCode(weatherMain string) string {
	conditions := map[string]string{
		"Clear":        "perfect",
		"Clouds":       "partly cloudy",
		"Rain":         "rainy",
		"Drizzle":      "light rain",
		"Snow":         "snowy",
		"Thunderstorm": "stormy",
		"Mist":         "misty",
		"Fog":          "foggy",
	}
	if condition, ok := conditions[weatherMain]; ok {
		return condition
	}
	return "variable"
}

// iconFromCode converts the provider keyword to one of six icon keys.
func iconFromCode(weatherMain string) string {
	icons := map[string]string{
		"Clear":        "Sun",
		"Clouds":       "Cloud",
		"Rain":         "CloudRain",
		"Drizzle":      "CloudDrizzle",
		"Snow":         "CloudSnow",
		"Thunderstorm": "CloudLightning",
		"Mist":         "Cloud",
		"Fog":          "Cloud",
	}
	if icon, ok := icons[weatherMain]; ok {
		return icon
	}
	return "Sun"
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
