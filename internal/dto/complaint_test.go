package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountCoercion(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want int
	}{
		{"number", `7`, 7},
		{"numeric string", `"12"`, 12},
		{"float string", `"3.9"`, 3},
		{"empty string", `""`, 0},
		{"null", `null`, 0},
		{"garbage", `"abc"`, 0},
		{"bool", `true`, 0},
		{"negative clamps on read", `-5`, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var c Count
			require.NoError(t, json.Unmarshal([]byte(tc.raw), &c))
			assert.Equal(t, tc.want, c.Int())
		})
	}
}

func TestUpsertComplaintRequestLenientCounts(t *testing.T) {
	raw := `{
		"main_department": "Revenue",
		"department_name": "Tehsil Office Raipur",
		"officer_designation": "Tehsildar",
		"cm_jandarshan": "4",
		"collector_jandarshan": null,
		"call_center": "x",
		"pgPortal": 2,
		"total_complaints": "999"
	}`
	var req UpsertComplaintRequest
	require.NoError(t, json.Unmarshal([]byte(raw), &req))
	assert.Equal(t, 4, req.CMJandarshan.Int())
	assert.Equal(t, 0, req.CollectorJandarshan.Int())
	assert.Equal(t, 0, req.CallCenter.Int())
	assert.Equal(t, 2, req.PGPortal.Int())
	require.NotNil(t, req.TotalComplaints)
	assert.Equal(t, 999, req.TotalComplaints.Int())
}
