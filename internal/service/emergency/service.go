package emergency

import (
	"context"
	"fmt"

	ierr "dearmind-backend/internal/errors"
	"dearmind-backend/internal/places"
)

type OnlineCenter struct {
	Name          string  `json:"name"`
	Link          string  `json:"link"`
	Phone         *string `json:"phone"`
	AvailableTime string  `json:"availableTime"`
}

func phone(s string) *string { return &s }

var onlineCenters = []OnlineCenter{
	{
		Name:          "청소년상담복지센터",
		Link:          "https://www.cyber1388.kr",
		Phone:         phone("1388"),
		AvailableTime: "24시간",
	},
	{
		Name:          "마음톡톡 상담센터",
		Link:          "https://www.maumtuktuk.kr",
		Phone:         phone("1644-1234"),
		AvailableTime: "9AM~6PM",
	},
	{
		Name:          "카카오톡 플러스친구 - 정신건강",
		Link:          "https://pf.kakao.com/_mentalhealth",
		AvailableTime: "상시 운영",
	},
}

type Service struct {
	searcher places.Searcher
}

func New(searcher places.Searcher) *Service {
	return &Service{searcher: searcher}
}

func (s *Service) OnlineCenters() []OnlineCenter {
	out := make([]OnlineCenter, len(onlineCenters))
	copy(out, onlineCenters)
	return out
}

func (s *Service) NearbyCenters(ctx context.Context, lat, lng float64) ([]places.Place, error) {
	if lat < -90 || lat > 90 {
		return nil, ierr.BadRequestf("latitude must be between -90 and 90")
	}
	if lng < -180 || lng > 180 {
		return nil, ierr.BadRequestf("longitude must be between -180 and 180")
	}

	found, err := s.searcher.Nearby(ctx, lat, lng)
	if err != nil {
		return nil, fmt.Errorf("search nearby centers: %w", err)
	}
	return found, nil
}
