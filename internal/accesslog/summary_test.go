package accesslog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	log := strings.Join([]string{
		`{"endpoint":"/api/v1/books","method":"GET","status_code":200,"response_time_ms":10}`,
		`{"endpoint":"/api/v1/books","method":"GET","status_code":200,"response_time_ms":20}`,
		`{"endpoint":"/api/v1/books/99","method":"GET","status_code":404,"response_time_ms":3}`,
		`{"message":"server started"}`,
		`not json at all`,
		`{"endpoint":"/api/v1/auth/login","method":"POST","status_code":401,"response_time_ms":7}`,
	}, "\n")

	s, err := Summarize(strings.NewReader(log))
	require.NoError(t, err)

	assert.Equal(t, 4, s.TotalRequests)
	assert.Equal(t, 10.0, s.AverageResponseMs)
	assert.Equal(t, 50.0, s.ErrorRatePercent)
	assert.Equal(t, 3, s.UniqueEndpoints)
	assert.Equal(t, 2, s.ByEndpoint["/api/v1/books"])
	assert.Equal(t, 2, s.ByStatus["200"])
	assert.Equal(t, 1, s.ByStatus["401"])
	assert.Equal(t, 15.0, s.AverageByEndpoint["/api/v1/books"])
	assert.Len(t, s.Recent, 4)
	assert.Equal(t, "/api/v1/auth/login", s.Recent[3].Endpoint)
	assert.Equal(t, "/api/v1/books", s.TopEndpoints()[0])
}

func TestSummarize_KeepsLastTenEntries(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 15; i++ {
		b.WriteString(`{"endpoint":"/e","status_code":200,"response_time_ms":1,"request_id":"r`)
		b.WriteByte(byte('a' + i))
		b.WriteString(`"}` + "\n")
	}

	s, err := Summarize(strings.NewReader(b.String()))
	require.NoError(t, err)
	require.Len(t, s.Recent, 10)
	assert.Equal(t, "rf", s.Recent[0].RequestID)
	assert.Equal(t, "ro", s.Recent[9].RequestID)
}

func TestSummarize_Empty(t *testing.T) {
	s, err := Summarize(strings.NewReader(""))
	require.NoError(t, err)
	assert.Zero(t, s.TotalRequests)
	assert.Zero(t, s.ErrorRatePercent)
	assert.Empty(t, s.Recent)
}
