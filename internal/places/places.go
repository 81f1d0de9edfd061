package places

import (
	"context"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"dearmind-backend/internal/cache"

	"github.com/tidwall/gjson"
)

const (
	DefaultBaseURL = "https://maps.googleapis.com/maps/api/place"

	cacheTTL          = 10 * time.Minute
	earthRadiusMeters = 6371000.0
)

type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Place struct {
	Name             string   `json:"name"`
	Address          string   `json:"address"`
	Location         Location `json:"location"`
	Rating           *float64 `json:"rating,omitempty"`
	UserRatingsTotal *int     `json:"userRatingsTotal,omitempty"`
	DistanceMeters   int      `json:"distanceMeters"`
}

type Searcher interface {
	Nearby(ctx context.Context, lat, lng float64) ([]Place, error)
}

type Client struct {
	baseURL string
	apiKey  string
	radius  int
	keyword string
	http    *http.Client
	cache   cache.Cache
}

var _ Searcher = Client{}

type Config struct {
	BaseURL string
	ApiKey  string
	Radius  int
	Keyword string
}

func NewClient(cnf Config, httpClient *http.Client, c cache.Cache) Client {
	if cnf.BaseURL == "" {
		cnf.BaseURL = DefaultBaseURL
	}
	if cnf.Radius <= 0 {
		cnf.Radius = 5000
	}
	if cnf.Keyword == "" {
		cnf.Keyword = "counseling"
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	if c == nil {
		c = cache.Noop{}
	}
	return Client{
		baseURL: cnf.BaseURL,
		apiKey:  cnf.ApiKey,
		radius:  cnf.Radius,
		keyword: cnf.Keyword,
		http:    httpClient,
		cache:   c,
	}
}

// Nearby returns places matching the keyword within the radius, nearest first.
// The cache holds raw results for a rounded area, distances are always measured
// from the caller's own position.
func (c Client) Nearby(ctx context.Context, lat, lng float64) ([]Place, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("nearby places: GOOGLE_MAPS_API_KEY is not configured")
	}

	key := fmt.Sprintf("places:%s:%d:%.3f:%.3f", c.keyword, c.radius, lat, lng)
	found, err := cache.Fetch(ctx, c.cache, key, cacheTTL, func(ctx context.Context) ([]Place, error) {
		return c.search(ctx, lat, lng)
	})
	if err != nil {
		return nil, err
	}
	return rank(found, Location{Lat: lat, Lng: lng}, c.radius), nil
}

func (c Client) search(ctx context.Context, lat, lng float64) ([]Place, error) {
	q := url.Values{}
	q.Set("location", fmt.Sprintf("%f,%f", lat, lng))
	q.Set("radius", strconv.Itoa(c.radius))
	q.Set("keyword", c.keyword)
	q.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/nearbysearch/json?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("nearby places: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("nearby places: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("nearby places: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nearby places: status %d", resp.StatusCode)
	}

	return parse(body)
}

func parse(body []byte) ([]Place, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("nearby places: invalid json response")
	}

	doc := gjson.ParseBytes(body)
	switch status := doc.Get("status").String(); status {
	case "OK":
	case "ZERO_RESULTS":
		return []Place{}, nil
	default:
		return nil, fmt.Errorf("nearby places: api status %s: %s", status, doc.Get("error_message").String())
	}

	places := []Place{}
	doc.Get("results").ForEach(func(_, r gjson.Result) bool {
		name := r.Get("name").String()
		loc := r.Get("geometry.location")
		if name == "" || !loc.Get("lat").Exists() || !loc.Get("lng").Exists() {
			return true
		}

		p := Place{
			Name:     name,
			Address:  r.Get("vicinity").String(),
			Location: Location{Lat: loc.Get("lat").Float(), Lng: loc.Get("lng").Float()},
		}
		if v := r.Get("rating"); v.Exists() {
			rating := v.Float()
			p.Rating = &rating
		}
		if v := r.Get("user_ratings_total"); v.Exists() {
			total := int(v.Int())
			p.UserRatingsTotal = &total
		}
		places = append(places, p)
		return true
	})
	return places, nil
}

// rank measures every place from origin, drops those outside radius and sorts nearest first.
func rank(found []Place, origin Location, radius int) []Place {
	places := make([]Place, 0, len(found))
	for _, p := range found {
		d := Distance(origin, p.Location)
		if d > float64(radius) {
			continue
		}
		p.DistanceMeters = int(math.Round(d))
		places = append(places, p)
	}

	sort.SliceStable(places, func(i, j int) bool {
		return places[i].DistanceMeters < places[j].DistanceMeters
	})
	return places
}

// Distance is the haversine great-circle distance in meters.
func Distance(a, b Location) float64 {
	lat1, lat2 := toRad(a.Lat), toRad(b.Lat)
	dLat := lat2 - lat1
	dLng := toRad(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusMeters * math.Asin(math.Min(1, math.Sqrt(h)))
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
