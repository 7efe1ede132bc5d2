package owm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(Options{
		BaseURL: server.URL,
		APIKey:  "test-key",
		Lat:     51.5,
		Lon:     -0.12,
		RPS:     1000, // no throttling in tests
		Burst:   1000,
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return client, server
}

func TestClient_CurrentParsesAndSendsLocation(t *testing.T) {
	t.Parallel()

	var gotQuery url.Values
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/data/2.5/weather" {
			http.NotFound(w, r)
			return
		}
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"dt": 1700000000,
			"main": {"temp": 11.5, "feels_like": 9.8, "humidity": 76},
			"weather": [{"icon": "04d"}],
			"name": "London"
		}`))
	}))

	snap, err := client.Current(context.Background())
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if snap.Timestamp != 1700000000 || snap.Temp != 11.5 || snap.FeelsLike != 9.8 {
		t.Fatalf("snapshot = %#v", snap)
	}
	if snap.Humidity != 76 || snap.Icon != "04d" || snap.Location != "London" {
		t.Fatalf("snapshot = %#v", snap)
	}

	if gotQuery.Get("appid") != "test-key" {
		t.Fatalf("appid = %q, want test-key", gotQuery.Get("appid"))
	}
	if gotQuery.Get("lat") != "51.5" || gotQuery.Get("lon") != "-0.12" {
		t.Fatalf("lat/lon = %q/%q", gotQuery.Get("lat"), gotQuery.Get("lon"))
	}
	if gotQuery.Get("units") != "metric" {
		t.Fatalf("units = %q, want metric", gotQuery.Get("units"))
	}
}

func TestClient_ForecastPreservesOrderAndCityName(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"list": [
				{"dt": 100, "main": {"temp": 1}, "weather": [{"icon": "01d"}]},
				{"dt": 200, "main": {"temp": 2}, "weather": [{"icon": "02d"}]},
				{"dt": 300, "main": {"temp": 3}, "weather": []}
			],
			"city": {"name": "Cambridge"}
		}`))
	}))

	series, err := client.Forecast(context.Background())
	if err != nil {
		t.Fatalf("Forecast: %v", err)
	}
	if len(series) != 3 {
		t.Fatalf("series length = %d, want 3", len(series))
	}
	for i, wantTS := range []int64{100, 200, 300} {
		if series[i].Timestamp != wantTS {
			t.Fatalf("series[%d].Timestamp = %d, want %d", i, series[i].Timestamp, wantTS)
		}
		if series[i].Location != "Cambridge" {
			t.Fatalf("series[%d].Location = %q, want Cambridge", i, series[i].Location)
		}
	}
	if series[2].Icon != "" {
		t.Fatalf("series[2].Icon = %q, want empty for missing weather block", series[2].Icon)
	}
}

func TestClient_NonOKStatusIsFailure(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))

	if _, err := client.Current(context.Background()); err == nil {
		t.Fatal("Current should fail on 401")
	}
}

func TestClient_Geocode(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/geo/1.0/direct" {
			http.NotFound(w, r)
			return
		}
		if r.URL.Query().Get("q") != "Cambridge,GB" {
			http.Error(w, "bad query", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"name": "Cambridge", "lat": 52.2, "lon": 0.12}]`))
	}))

	lat, lon, err := client.Geocode(context.Background(), "Cambridge,GB")
	if err != nil {
		t.Fatalf("Geocode: %v", err)
	}
	if lat != 52.2 || lon != 0.12 {
		t.Fatalf("lat/lon = %v/%v, want 52.2/0.12", lat, lon)
	}
}

func TestClient_GeocodeNoResults(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))

	if _, _, err := client.Geocode(context.Background(), "Nowhere"); err == nil {
		t.Fatal("Geocode should fail with no results")
	}
}

func TestIconCache_SharesCircuitBreakerWithAPI(t *testing.T) {
	t.Parallel()

	requests := 0
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		http.Error(w, "down", http.StatusBadGateway)
	}))

	// Enough consecutive failures to open the breaker.
	for i := 0; i < 6; i++ {
		if _, err := client.Current(context.Background()); err == nil {
			t.Fatal("Current should fail while the server is down")
		}
	}

	before := requests
	icons := NewIconCache(client)
	if _, err := icons.Icon(context.Background(), "01d"); err == nil {
		t.Fatal("Icon should fail fast once the breaker is open")
	}
	if requests != before {
		t.Fatalf("requests = %d, want %d (open breaker must not reach the network)", requests, before)
	}
}

func TestIconCache_FetchOncePerCodeAndClear(t *testing.T) {
	t.Parallel()

	fetches := 0
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/img/wn/01d.png" {
			http.NotFound(w, r)
			return
		}
		fetches++
		_, _ = w.Write([]byte{0x89, 'P', 'N', 'G'})
	}))

	icons := NewIconCache(client)

	img, err := icons.Icon(context.Background(), "01d")
	if err != nil {
		t.Fatalf("Icon: %v", err)
	}
	if img.Code != "01d" || len(img.PNG) != 4 {
		t.Fatalf("image = %#v", img)
	}

	if _, err := icons.Icon(context.Background(), "01d"); err != nil {
		t.Fatalf("Icon (cached): %v", err)
	}
	if fetches != 1 {
		t.Fatalf("fetches = %d, want 1 (second read should hit cache)", fetches)
	}

	icons.Clear()
	if icons.Size() != 0 {
		t.Fatalf("Size = %d after Clear, want 0", icons.Size())
	}
	if _, err := icons.Icon(context.Background(), "01d"); err != nil {
		t.Fatalf("Icon after Clear: %v", err)
	}
	if fetches != 2 {
		t.Fatalf("fetches = %d, want 2 after Clear", fetches)
	}
}
