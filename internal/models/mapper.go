package models

import "strings"

// подстроки роли, дающие уровень руководителя
var managerMarkers = []string{"manager", "lead", "trưởng"}

// RoleLevel: уровень доступа по текстовой роли, "admin" важнее всего остального
func RoleLevel(role string) int {
	r := strings.ToLower(role)
	if strings.Contains(r, "admin") {
		return LevelAdmin
	}
	for _, m := range managerMarkers {
		if strings.Contains(r, m) {
			return LevelManager
		}
	}
	return LevelEmployee
}

// флаг в стиле Y/N
func IsYes(v string) bool {
	return strings.HasPrefix(strings.ToUpper(strings.TrimSpace(v)), "Y")
}

// RoleName: имя роли для фронтенда
func RoleName(level int) string {
	switch {
	case level >= LevelAdmin:
		return "admin"
	case level >= LevelManager:
		return "manager"
	case level > 0:
		return "employee"
	default:
		return "viewer"
	}
}

func MapUser(u User) UserView {
	level := RoleLevel(u.Role.String())
	team := u.Team.Ptr()

	return UserView{
		ManV:         u.ManV.String(),
		Name:         u.FullName.String(),
		FullName:     u.FullName.String(),
		Role:         u.Role.String(),
		RoleLevel:    level,
		RoleLevelCC:  level,
		RoleLevelTxt: u.RoleLevelTxt.Ptr(),
		CanApprove:   IsYes(u.CanApprove.String()),
		CanApproveCC: IsYes(u.CanApprove.String()),
		CanAdjust:    IsYes(u.CanAdjust.String()),
		CanAdjustCC:  IsYes(u.CanAdjust.String()),
		TeamMain:     team,
		TeamMainCC:   team,
		ScopeView:    u.ScopeView.Ptr(),
		ScopeApprove: u.ScopeApprove.Ptr(),
		ScopeAdjust:  u.ScopeAdjust.Ptr(),
		DeviceID:     u.DeviceID.Ptr(),
		Active:       IsYes(u.Active.String()),
		PINExpiresAt: u.PINExpiresAt,
		DeptCode:     u.DeptCode.Ptr(),
		ID:           u.ID.Ptr(),
		PINHash:      u.PINHash.Ptr(),
		PINSalt:      u.PINSalt.Ptr(),
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func MapListItem(u User) UserListItem {
	return UserListItem{
		ManV:       u.ManV.String(),
		FullName:   u.FullName.String(),
		Role:       u.Role.String(),
		RoleLevel:  RoleLevel(u.Role.String()),
		CanApprove: IsYes(u.CanApprove.String()),
		CanAdjust:  IsYes(u.CanAdjust.String()),
		TeamMain:   u.Team.Ptr(),
		ScopeView:  u.ScopeView.Ptr(),
		Active:     IsYes(u.Active.String()),
	}
}

func MapRound(r Round) RoundView {
	label := r.Vong.Ptr()
	return RoundView{
		ID:         RowID(r.ID),
		ManV:       r.ManV.String(),
		Vong:       label,
		RoundLabel: label,
		Plate:      r.Plate.Ptr(),
		StartTime:  r.StartTime.Ptr(),
		EndTime:    r.EndTime.Ptr(),
		Date:       r.Date.String(),
	}
}

func MapRounds(rows []Round) []RoundView {
	out := make([]RoundView, 0, len(rows))
	for _, r := range rows {
		out = append(out, MapRound(r))
	}
	return out
}
