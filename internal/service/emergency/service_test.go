package emergency

import (
	"context"
	"errors"
	"testing"

	ierr "dearmind-backend/internal/errors"
	"dearmind-backend/internal/places"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSearcher struct {
	calls int
	err   error
}

func (f *fakeSearcher) Nearby(_ context.Context, lat, lng float64) ([]places.Place, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return []places.Place{{Name: "center", Location: places.Location{Lat: lat, Lng: lng}}}, nil
}

func TestOnlineCenters(t *testing.T) {
	s := New(&fakeSearcher{})

	centers := s.OnlineCenters()
	require.Len(t, centers, 3)
	assert.Equal(t, "1388", *centers[0].Phone)
	assert.Nil(t, centers[2].Phone)

	centers[0].Name = "changed"
	assert.NotEqual(t, "changed", s.OnlineCenters()[0].Name)
}

func TestNearbyCentersValidatesCoordinates(t *testing.T) {
	searcher := &fakeSearcher{}
	s := New(searcher)
	ctx := context.Background()

	_, err := s.NearbyCenters(ctx, 91, 0)
	assert.True(t, ierr.Is(err, ierr.BadRequest))
	_, err = s.NearbyCenters(ctx, 0, -180.5)
	assert.True(t, ierr.Is(err, ierr.BadRequest))
	assert.Zero(t, searcher.calls)

	found, err := s.NearbyCenters(ctx, 37.5665, 126.978)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, 37.5665, found[0].Location.Lat)
}

func TestNearbyCentersWrapsSearchFailure(t *testing.T) {
	s := New(&fakeSearcher{err: errors.New("quota exceeded")})

	_, err := s.NearbyCenters(context.Background(), 37.5, 127)
	require.Error(t, err)
	assert.False(t, ierr.Is(err, ierr.BadRequest))
}
