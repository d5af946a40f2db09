package apidef

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMemberAccountDerivesFieldsFromSuffix(t *testing.T) {
	p := NewMemberAccount(1700000123, "pw")
	assert.Equal(t, "member_1700000123", p.Username)
	assert.Equal(t, "member_1700000123@example.com", p.Email)
	assert.Equal(t, int64(88000123), p.Phone)
	assert.Equal(t, "pw", p.Password)
}

func TestMemberPhoneKeepsLeadingZeros(t *testing.T) {
	assert.Equal(t, int64(88000007), memberPhone(5000007))
	assert.Equal(t, int64(88999999), memberPhone(1999999))
}

func TestLogHeadParamsPreserveIdentifierTypes(t *testing.T) {
	p := CreateLogHeadParams{
		Subject:      "s",
		StartDate:    "2024-01-01T00:00:00Z",
		EndDate:      "2024-01-02T00:00:00Z",
		WriterIDList: []ID{mustParseID(t, "7")},
		OwnerID:      mustParseID(t, `"abc"`),
	}
	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"subject":"s","start_date":"2024-01-01T00:00:00Z","end_date":"2024-01-02T00:00:00Z",`+
			`"writer_id_list":[7],"owner_id":"abc"}`,
		string(data))
}

func TestLogHeadParamsKeepLargeIdentifiersExact(t *testing.T) {
	id := mustParseID(t, "9007199254740993")
	data, err := json.Marshal(CreateLogHeadParams{WriterIDList: []ID{id}, OwnerID: id})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"writer_id_list":[9007199254740993]`)
	assert.Contains(t, string(data), `"owner_id":9007199254740993`)
}

func TestLogContentParamsWithUnsetIdentifier(t *testing.T) {
	data, err := json.Marshal(CreateLogContentParams{Content: "c", Date: "d"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"log_head_id":null,"content":"c","date":"d"}`, string(data))
}

func TestResourcePaths(t *testing.T) {
	assert.Equal(t, "/api/admin/log-heads/12", AdminLogHeadPath("12"))
	assert.Equal(t, "/api/admin/accounts/abc", AdminAccountPath("abc"))
}

func TestFormatTimestamp(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	instant := time.Date(2024, 3, 5, 9, 4, 5, 987654321, tokyo)

	s := FormatTimestamp(instant)

	assert.Equal(t, "2024-03-05T00:04:05Z", s)
	assert.NotContains(t, s, ".")
	assert.NotContains(t, s, "+")
}

func TestFormatTimestampIgnoresHostZone(t *testing.T) {
	instant := time.Date(2024, 12, 31, 23, 59, 59, 500000000, time.UTC)
	for _, loc := range []*time.Location{time.UTC, time.FixedZone("west", -5*60*60), time.FixedZone("east", 14*60*60)} {
		assert.Equal(t, "2024-12-31T23:59:59Z", FormatTimestamp(instant.In(loc)))
	}
}
