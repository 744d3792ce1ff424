package weather

import (
	"strings"
	"time"

	"github.com/i474232898/weather-forecast-service/internal/common"
)

// Upstream emits 3-hour forecast granules, eight per calendar day. The date
// prefix of a granule's dt_txt ("YYYY-MM-DD HH:MM:SS") is its grouping key.
const (
	granulesPerDay = 8
	dateKeyLen     = 10
)

// Placeholders substituted when a payload carries no condition entry.
const (
	conditionUnknown   = "unknown"
	descriptionUnknown = "No description available"
)

// NormalizeCurrent converts the upstream current-weather payload into the
// simplified snapshot. Temperatures and wind speed are rounded to one
// decimal; the observation timestamp is converted to UTC.
func NormalizeCurrent(resp *CurrentWeatherResponse) SimpleCurrentWeather {
	var primary *WeatherCondition
	if len(resp.Weather) > 0 {
		primary = &resp.Weather[0]
	}

	return SimpleCurrentWeather{
		City:          resp.Name,
		Country:       resp.Sys.Country,
		Coordinates:   resp.Coord,
		Temperature:   common.Round(resp.Main.Temp, 1),
		FeelsLike:     common.Round(resp.Main.FeelsLike, 1),
		Humidity:      resp.Main.Humidity,
		Pressure:      resp.Main.Pressure,
		Weather:       simplifyCondition(primary),
		WindSpeed:     common.Round(resp.Wind.Speed, 1),
		WindDirection: resp.Wind.Deg,
		Cloudiness:    resp.Clouds.All,
		Visibility:    resp.Visibility,
		Timestamp:     time.Unix(resp.Dt, 0).UTC(),
	}
}

// NormalizeForecast aggregates the upstream 3-hour granules into at most
// `days` daily summaries. The granule list is truncated to days*8 entries
// before grouping, so entries beyond that window never contribute even when
// they belong to a requested day; groups keep the upstream first-seen date
// order and are never re-sorted.
func NormalizeForecast(resp *ForecastResponse, days int, generatedAt time.Time) SimpleForecastResponse {
	items := resp.List
	if limit := days * granulesPerDay; len(items) > limit {
		items = items[:limit]
	}

	var order []string
	groups := make(map[string][]ForecastItem)
	for _, item := range items {
		key := item.DtTxt
		if len(key) > dateKeyLen {
			key = key[:dateKeyLen]
		}
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], item)
	}
	if len(order) > days {
		order = order[:days]
	}

	forecastDays := make([]SimpleForecastDay, 0, len(order))
	for _, date := range order {
		granules := groups[date]
		if len(granules) == 0 {
			continue
		}
		forecastDays = append(forecastDays, summarizeDay(date, granules))
	}

	return SimpleForecastResponse{
		City:         resp.City.Name,
		Country:      resp.City.Country,
		Coordinates:  resp.City.Coord,
		ForecastDays: forecastDays,
		GeneratedAt:  generatedAt.UTC(),
	}
}

// summarizeDay reduces one day's granules: min/max of granule temperatures,
// mean humidity and wind speed, max precipitation probability. A day short
// of full coverage is summarized from whatever granules it has.
func summarizeDay(date string, granules []ForecastItem) SimpleForecastDay {
	minTemp := granules[0].Main.Temp
	maxTemp := granules[0].Main.Temp

	var humiditySum, windSum, maxPop float64
	for _, g := range granules {
		if g.Main.Temp < minTemp {
			minTemp = g.Main.Temp
		}
		if g.Main.Temp > maxTemp {
			maxTemp = g.Main.Temp
		}
		humiditySum += float64(g.Main.Humidity)
		windSum += g.Wind.Speed
		if g.Pop > maxPop {
			maxPop = g.Pop
		}
	}

	n := float64(len(granules))
	return SimpleForecastDay{
		Date:                     date,
		TemperatureMin:           common.Round(minTemp, 1),
		TemperatureMax:           common.Round(maxTemp, 1),
		Humidity:                 int(common.Round(humiditySum/n, 0)),
		Weather:                  dominantCondition(granules),
		WindSpeed:                common.Round(windSum/n, 1),
		PrecipitationProbability: common.Round(maxPop, 2),
	}
}

// dominantCondition picks the first granule of the day that carries a
// condition entry; days whose granules all lack one get the placeholder.
func dominantCondition(granules []ForecastItem) SimpleWeatherCondition {
	for _, g := range granules {
		if len(g.Weather) > 0 {
			return simplifyCondition(&g.Weather[0])
		}
	}
	return simplifyCondition(nil)
}

func simplifyCondition(cond *WeatherCondition) SimpleWeatherCondition {
	if cond == nil {
		return SimpleWeatherCondition{
			Condition:   conditionUnknown,
			Description: descriptionUnknown,
			Icon:        "",
		}
	}
	return SimpleWeatherCondition{
		Condition:   strings.ToLower(cond.Main),
		Description: cond.Description,
		Icon:        cond.Icon,
	}
}
