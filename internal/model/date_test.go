package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate_JSON(t *testing.T) {
	var v struct {
		Due Date `json:"due"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"due":"2025-10-01"}`), &v))
	assert.Equal(t, "2025-10-01", v.Due.String())

	out, err := json.Marshal(v)
	require.NoError(t, err)
	assert.JSONEq(t, `{"due":"2025-10-01"}`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`{"due":"01/10/2025"}`), &v))
}

func TestNewDate_TruncatesTime(t *testing.T) {
	d := NewDate(time.Date(2025, 10, 1, 23, 59, 0, 0, time.UTC))
	assert.True(t, d.Equal(MustParseDate("2025-10-01")))
	assert.True(t, d.Before(MustParseDate("2025-10-02")))
	assert.False(t, d.After(MustParseDate("2025-10-01")))
}

func TestNewDate_UsesUTCDay(t *testing.T) {
	lagos := time.FixedZone("WAT", 3600)
	brisbane := time.FixedZone("AEST", 10*3600)

	assert.Equal(t, "2025-10-01", NewDate(time.Date(2025, 10, 2, 0, 30, 0, 0, lagos)).String())
	assert.Equal(t, "2025-09-30", NewDate(time.Date(2025, 10, 1, 8, 0, 0, 0, brisbane)).String())
	assert.Equal(t, time.UTC, NewDate(time.Date(2025, 10, 1, 8, 0, 0, 0, brisbane)).Location())
}

func TestRole(t *testing.T) {
	assert.True(t, RoleAccountant.Valid())
	assert.False(t, Role("janitor").Valid())
	assert.True(t, RoleTeacher.In(RoleAdmin, RoleTeacher))

	u := User{FirstName: "Ada", LastName: "Lovelace"}
	assert.Equal(t, "Ada Lovelace", u.FullName())
	u.MiddleName = "King"
	assert.Equal(t, "Ada King Lovelace", u.FullName())
}

func TestOptionalUUID(t *testing.T) {
	var req UpdateUserRequest
	require.NoError(t, json.Unmarshal([]byte(`{"firstName":"Ada"}`), &req))
	assert.False(t, req.ClassID.Set)

	require.NoError(t, json.Unmarshal([]byte(`{"classId":null}`), &req))
	assert.True(t, req.ClassID.Set)
	assert.Nil(t, req.ClassID.ID)

	req = UpdateUserRequest{}
	require.NoError(t, json.Unmarshal([]byte(`{"classId":"6f1c2a54-8f0e-4c6b-9a4e-2b6f4f0d9c11"}`), &req))
	require.NotNil(t, req.ClassID.ID)
	assert.Equal(t, "6f1c2a54-8f0e-4c6b-9a4e-2b6f4f0d9c11", req.ClassID.ID.String())

	assert.Error(t, json.Unmarshal([]byte(`{"classId":"nope"}`), &req))
}
