package owm

import "github.com/jftsang/weatherscreen/internal/weather"

// currentResponse mirrors the payload returned by /data/2.5/weather.
type currentResponse struct {
	DT      int64          `json:"dt"`
	Main    mainBlock      `json:"main"`
	Weather []weatherBlock `json:"weather"`
	Name    string         `json:"name"`
}

// forecastResponse mirrors /data/2.5/forecast.
type forecastResponse struct {
	List []forecastEntry `json:"list"`
	City cityBlock       `json:"city"`
}

type forecastEntry struct {
	DT      int64          `json:"dt"`
	Main    mainBlock      `json:"main"`
	Weather []weatherBlock `json:"weather"`
}

type mainBlock struct {
	Temp      float64 `json:"temp"`
	FeelsLike float64 `json:"feels_like"`
	Humidity  int     `json:"humidity"`
}

type weatherBlock struct {
	Icon string `json:"icon"`
}

type cityBlock struct {
	Name string `json:"name"`
}

// geocodeResult mirrors one element of the /geo/1.0/direct response.
type geocodeResult struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

func (r currentResponse) snapshot() weather.Snapshot {
	snap := weather.Snapshot{
		Timestamp: r.DT,
		Temp:      r.Main.Temp,
		FeelsLike: r.Main.FeelsLike,
		Humidity:  r.Main.Humidity,
		Location:  r.Name,
	}
	if len(r.Weather) > 0 {
		snap.Icon = r.Weather[0].Icon
	}
	return snap
}

func (r forecastResponse) series() weather.Series {
	series := make(weather.Series, 0, len(r.List))
	for _, entry := range r.List {
		snap := weather.Snapshot{
			Timestamp: entry.DT,
			Temp:      entry.Main.Temp,
			FeelsLike: entry.Main.FeelsLike,
			Humidity:  entry.Main.Humidity,
			Location:  r.City.Name,
		}
		if len(entry.Weather) > 0 {
			snap.Icon = entry.Weather[0].Icon
		}
		series = append(series, snap)
	}
	return series
}
