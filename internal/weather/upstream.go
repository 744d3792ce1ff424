package weather

// Typed schema of the OpenWeatherMap /data/2.5 endpoints. Only the fields the
// service reads are documented; the rest are carried so a well-formed payload
// decodes without loss.

// WeatherCondition is one entry of the upstream condition list.
type WeatherCondition struct {
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// MainWeatherData is the temperature/pressure/humidity block.
type MainWeatherData struct {
	Temp      float64 `json:"temp"`
	FeelsLike float64 `json:"feels_like"`
	TempMin   float64 `json:"temp_min"`
	TempMax   float64 `json:"temp_max"`
	Pressure  int     `json:"pressure"`
	Humidity  int     `json:"humidity"`
	SeaLevel  int     `json:"sea_level"`
	GrndLevel int     `json:"grnd_level"`
}

type Wind struct {
	Speed float64 `json:"speed"`
	Deg   int     `json:"deg"`
	Gust  float64 `json:"gust"`
}

type Clouds struct {
	All int `json:"all"`
}

type Sys struct {
	Country string `json:"country"`
	Sunrise int64  `json:"sunrise"`
	Sunset  int64  `json:"sunset"`
}

// CurrentWeatherResponse is the /weather payload.
type CurrentWeatherResponse struct {
	Coord      Coord              `json:"coord"`
	Weather    []WeatherCondition `json:"weather"`
	Main       MainWeatherData    `json:"main"`
	Visibility int                `json:"visibility"`
	Wind       Wind               `json:"wind"`
	Clouds     Clouds             `json:"clouds"`
	Dt         int64              `json:"dt"`
	Sys        Sys                `json:"sys"`
	Timezone   int                `json:"timezone"`
	ID         int                `json:"id"`
	Name       string             `json:"name"`
	Cod        int                `json:"cod"`
}

// ForecastItem is one 3-hour forecast granule. DtTxt is the textual
// timestamp in "YYYY-MM-DD HH:MM:SS" form; its date prefix is the grouping
// key for daily aggregation.
type ForecastItem struct {
	Dt         int64              `json:"dt"`
	Main       MainWeatherData    `json:"main"`
	Weather    []WeatherCondition `json:"weather"`
	Clouds     Clouds             `json:"clouds"`
	Wind       Wind               `json:"wind"`
	Visibility int                `json:"visibility"`
	Pop        float64            `json:"pop"`
	DtTxt      string             `json:"dt_txt"`
}

// City is the location block of the /forecast payload.
type City struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Coord      Coord  `json:"coord"`
	Country    string `json:"country"`
	Population int    `json:"population"`
	Timezone   int    `json:"timezone"`
	Sunrise    int64  `json:"sunrise"`
	Sunset     int64  `json:"sunset"`
}

// ForecastResponse is the /forecast payload: up to 40 granules covering five
// days at 3-hour intervals, already in chronological order.
type ForecastResponse struct {
	Cod     string         `json:"cod"`
	Message int            `json:"message"`
	Cnt     int            `json:"cnt"`
	List    []ForecastItem `json:"list"`
	City    City           `json:"city"`
}
