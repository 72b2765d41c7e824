package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleLevel(t *testing.T) {
	tests := []struct {
		role string
		want int
	}{
		{"Admin", 90},
		{"super ADMIN manager", 90},
		{"Area Manager", 50},
		{"Team Lead", 50},
		{"Tổ trưởng", 50},
		{"TRƯỞNG CA", 50},
		{"driver", 10},
		{"", 10},
	}
	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			assert.Equal(t, tt.want, RoleLevel(tt.role))
		})
	}
}

func TestIsYes(t *testing.T) {
	for _, v := range []string{"Y", "y", " yes ", "YES", "\tY\n"} {
		assert.True(t, IsYes(v), v)
	}
	for _, v := range []string{"", "N", "no", "1", "true", " x y"} {
		assert.False(t, IsYes(v), v)
	}
}

func TestRoleName(t *testing.T) {
	assert.Equal(t, "admin", RoleName(90))
	assert.Equal(t, "manager", RoleName(50))
	assert.Equal(t, "employee", RoleName(10))
	assert.Equal(t, "viewer", RoleName(0))
}

func TestMapUser(t *testing.T) {
	u := User{
		ManV:         "E001",
		FullName:     "Nguyễn Văn A",
		Role:         "Team Lead",
		RoleLevelTxt: "5",
		CanApprove:   "Y",
		CanAdjust:    "n",
		Team:         "HCM",
		ScopeView:    "HCM;HN",
		Active:       "yes",
		PIN:          "4321",
		PINExpiresAt: ParseTimestamp("2030-01-01T00:00:00Z"),
	}

	v := MapUser(u)
	assert.Equal(t, "E001", v.ManV)
	assert.Equal(t, "Nguyễn Văn A", v.Name)
	assert.Equal(t, v.Name, v.FullName)
	assert.Equal(t, 50, v.RoleLevel)
	assert.Equal(t, 50, v.RoleLevelCC)
	require.NotNil(t, v.RoleLevelTxt)
	assert.Equal(t, "5", *v.RoleLevelTxt)
	assert.True(t, v.CanApprove)
	assert.True(t, v.CanApproveCC)
	assert.False(t, v.CanAdjust)
	assert.True(t, v.Active)
	require.NotNil(t, v.TeamMain)
	assert.Equal(t, "HCM", *v.TeamMain)
	assert.Nil(t, v.DeviceID)
	assert.Nil(t, v.PINHash)

	raw, err := json.Marshal(v)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))
	assert.NotContains(t, m, "pin")
	assert.Contains(t, m, "teamMain")
	assert.Contains(t, m, "canApprove")
	assert.Nil(t, m["dept_code"])
	assert.Nil(t, m["created_at"])
	assert.Equal(t, "2030-01-01T00:00:00Z", m["pin_expires_at"])
}

func TestMapListItem(t *testing.T) {
	item := MapListItem(User{ManV: "E002", Role: "admin", Active: "Y", Team: "  "})
	assert.Equal(t, 90, item.RoleLevel)
	assert.True(t, item.Active)
	assert.Nil(t, item.TeamMain)
	assert.Equal(t, "", item.Team())
}

func TestMapRound(t *testing.T) {
	v := MapRound(Round{ID: "7", ManV: "E001", Vong: "V1", Plate: "51A-12345", StartTime: "08:00", Date: "2024-01-15"})
	assert.Equal(t, RowID("7"), v.ID)
	require.NotNil(t, v.Vong)
	assert.Equal(t, "V1", *v.Vong)
	assert.Equal(t, v.Vong, v.RoundLabel)
	assert.Nil(t, v.EndTime)
	assert.Nil(t, v.Route)
	assert.Equal(t, "2024-01-15", v.Date)

	assert.Empty(t, MapRounds(nil))
	assert.NotNil(t, MapRounds(nil))
}
