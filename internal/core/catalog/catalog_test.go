// Copyright (c) 2026 Ansiklopedi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/ansiklopedi/internal/core/catalog"
)

/*
TestTimestamp_UnmarshalJSON verifies lenient decoding of backend timestamps.
*/
func TestTimestamp_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{"rfc3339", `"2024-03-01T10:20:30Z"`, time.Date(2024, 3, 1, 10, 20, 30, 0, time.UTC)},
		{"fractional", `"2024-03-01T10:20:30.123Z"`, time.Date(2024, 3, 1, 10, 20, 30, 123000000, time.UTC)},
		{"no_zone", `"2024-03-01T10:20:30"`, time.Date(2024, 3, 1, 10, 20, 30, 0, time.UTC)},
		{"date_only", `"2024-03-01"`, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"empty", `""`, time.Time{}},
		{"null", `null`, time.Time{}},
		{"garbage", `"yesterday"`, time.Time{}},
		{"number", `1700000000`, time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ts catalog.Timestamp
			require.NoError(t, json.Unmarshal([]byte(tt.input), &ts))
			assert.True(t, tt.want.Equal(ts.Time), "got %v", ts.Time)
		})
	}
}

/*
TestEntry_Decode checks that a malformed timestamp does not fail a whole record
and that unknown fields are ignored.
*/
func TestEntry_Decode(t *testing.T) {
	payload := `[
		{"id":"ent_001","title":"Sakarya Nehri","status":"published","createdAt":"bad","extra":true,
		 "categoryIds":["cat_01"],"authorships":[{"authorId":"auth_002","role":"Yazar","order":1}],
		 "volume":{"volumeId":"vol_01","pageStart":3,"pageEnd":5},
		 "places":[{"name":"Adapazarı","admin":{"il":"Sakarya","ilce":"Adapazarı"}}]},
		{"id":"ent_002","title":"Taslak","status":"draft","createdAt":"2024-01-01T00:00:00Z"}
	]`

	var entries []catalog.Entry
	require.NoError(t, json.Unmarshal([]byte(payload), &entries))
	require.Len(t, entries, 2)

	first := entries[0]
	assert.True(t, first.IsPublished())
	assert.True(t, first.CreatedAt.IsZero())
	assert.True(t, first.HasCategory("cat_01"))
	assert.False(t, first.HasCategory("cat_02"))
	assert.True(t, first.HasAuthor("auth_002"))
	assert.Equal(t, "vol_01", first.VolumeID())
	assert.Equal(t, "Sakarya", first.Places[0].Admin.Il)

	assert.False(t, entries[1].IsPublished())
	assert.Empty(t, entries[1].VolumeID())
}

func TestStatus_IsValid(t *testing.T) {
	assert.True(t, catalog.StatusPublished.IsValid())
	assert.True(t, catalog.StatusPending.IsValid())
	assert.False(t, catalog.Status("archived").IsValid())
}

func TestTimestamp_MarshalJSON(t *testing.T) {
	raw, err := json.Marshal(catalog.Timestamp{})
	require.NoError(t, err)
	assert.JSONEq(t, `""`, string(raw))

	raw, err = json.Marshal(catalog.Timestamp{Time: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)})
	require.NoError(t, err)
	assert.JSONEq(t, `"2024-03-01T10:00:00Z"`, string(raw))
}
