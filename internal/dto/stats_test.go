package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samadhan-cg/samadhan-api/internal/models"
)

func numPair(p, r float64) *ChannelPair {
	return &ChannelPair{Pending: &p, Resolve: &r}
}

func TestUpdateStatsRequestNormalizeCanonicalKeys(t *testing.T) {
	req := UpdateStatsRequest{
		CallCenter:     numPair(4, 2),
		CMJandarshan:   numPair(5, 3),
		CollJandarshan: numPair(6, 1),
		PostMail:       numPair(2, 2),
		Web:            numPair(3, 0),
		PGPortal:       numPair(1, 1),
	}
	counts, err := req.Normalize()
	require.NoError(t, err)
	assert.Len(t, counts, 6)
	assert.Equal(t, PendingResolve{Pending: 5, Resolve: 3}, counts[models.ChannelCMJandarshan])
}

func TestUpdateStatsRequestNormalizeLegacyAliases(t *testing.T) {
	raw := `{
		"callCenter": {"pending": 4, "resolve": 2},
		"cmJandarshan": {"pending": 5, "resolve": 3},
		"collectorJandarshan": {"pending": 6, "resolve": 1},
		"postMail": {"pending": 2, "resolve": 2},
		"jansikayatWeb": {"pending": 3, "resolve": 0},
		"pgPortal": {"pending": 1, "resolve": 1}
	}`
	var req UpdateStatsRequest
	require.NoError(t, json.Unmarshal([]byte(raw), &req))

	counts, err := req.Normalize()
	require.NoError(t, err)
	assert.Equal(t, PendingResolve{Pending: 2, Resolve: 2}, counts[models.ChannelPostMail])
	assert.Equal(t, PendingResolve{Pending: 6, Resolve: 1}, counts[models.ChannelCollectorJandarshan])
}

func TestUpdateStatsRequestNormalizeCanonicalWinsOverAlias(t *testing.T) {
	req := UpdateStatsRequest{
		CallCenter:     numPair(9, 9),
		CallCenterAlt:  numPair(1, 1),
		CMJandarshan:   numPair(5, 3),
		CollJandarshan: numPair(6, 1),
		PostMail:       numPair(2, 2),
		Web:            numPair(3, 0),
		PGPortal:       numPair(1, 1),
	}
	counts, err := req.Normalize()
	require.NoError(t, err)
	assert.Equal(t, PendingResolve{Pending: 9, Resolve: 9}, counts[models.ChannelCallCenter])
}

func TestUpdateStatsRequestNormalizeMissingChannel(t *testing.T) {
	req := UpdateStatsRequest{
		CallCenter:     numPair(4, 2),
		CMJandarshan:   numPair(5, 3),
		CollJandarshan: numPair(6, 1),
		PostMail:       numPair(2, 2),
		Web:            numPair(3, 0),
	}
	_, err := req.Normalize()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pgportal")
}

func TestUpdateStatsRequestNormalizeIncompletePair(t *testing.T) {
	p := 4.0
	req := UpdateStatsRequest{
		CallCenter:     &ChannelPair{Pending: &p},
		CMJandarshan:   numPair(5, 3),
		CollJandarshan: numPair(6, 1),
		PostMail:       numPair(2, 2),
		Web:            numPair(3, 0),
		PGPortal:       numPair(1, 1),
	}
	_, err := req.Normalize()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "callcenter")
}
