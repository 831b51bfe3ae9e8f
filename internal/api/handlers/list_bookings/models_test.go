package list_bookings

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToServiceRequest(t *testing.T) {
	query := url.Values{
		"therapistId": {"3"},
		"status":      {"confirmed"},
		"start":       {"2025-07-01T00:00:00+07:00"},
		"limit":       {"20"},
	}

	req, err := ToServiceRequest(query)
	require.NoError(t, err)

	require.NotNil(t, req.TherapistID)
	assert.Equal(t, int64(3), *req.TherapistID)
	assert.Nil(t, req.ServiceID)
	require.NotNil(t, req.Status)
	assert.Equal(t, "confirmed", *req.Status)
	require.NotNil(t, req.From)
	assert.True(t, req.From.Equal(time.Date(2025, 6, 30, 17, 0, 0, 0, time.UTC)))
	assert.Nil(t, req.To)
	assert.Equal(t, uint64(20), req.Limit)
}

func TestToServiceRequest_Empty(t *testing.T) {
	req, err := ToServiceRequest(url.Values{})
	require.NoError(t, err)
	assert.Nil(t, req.TherapistID)
	assert.Nil(t, req.Status)
	assert.Zero(t, req.Limit)
}

func TestToServiceRequest_Invalid(t *testing.T) {
	for _, query := range []url.Values{
		{"therapistId": {"abc"}},
		{"serviceId": {"-1"}},
		{"start": {"2025-07-01"}},
		{"limit": {"0"}},
		{"limit": {"100000"}},
		{"offset": {"x"}},
	} {
		_, err := ToServiceRequest(query)
		assert.Error(t, err, query.Encode())
	}
}
