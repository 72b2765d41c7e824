package models

// Уровни доступа, вычисляемые из текстовой роли
const (
	LevelAdmin    = 90
	LevelManager  = 50
	LevelEmployee = 10
)

// User это строка public."KPI_Users". Таблица ведётся снаружи, сервис только читает.
type User struct {
	ManV         Text      `gorm:"column:name_code;primaryKey"`
	FullName     Text      `gorm:"column:full_name"`
	Role         Text      `gorm:"column:role"`
	RoleLevelTxt Text      `gorm:"column:roleLevel"`
	CanApprove   Text      `gorm:"column:canApprove"`
	CanAdjust    Text      `gorm:"column:canAdjust"`
	Team         Text      `gorm:"column:team"`
	ScopeView    Text      `gorm:"column:scopeView"`
	ScopeApprove Text      `gorm:"column:scopeApprove"`
	ScopeAdjust  Text      `gorm:"column:scopeAdjust"`
	DeviceID     Text      `gorm:"column:deviceId"`
	Active       Text      `gorm:"column:active"`
	PIN          Text      `gorm:"column:pin"`
	PINExpiresAt Timestamp `gorm:"column:pin_expires_at"`
	DeptCode     Text      `gorm:"column:dept_code"`
	ID           Text      `gorm:"column:id"`
	PINHash      Text      `gorm:"column:pin_hash"` // миграция на хэши не завершена
	PINSalt      Text      `gorm:"column:pin_salt"`
	CreatedAt    Timestamp `gorm:"column:created_at"`
	UpdatedAt    Timestamp `gorm:"column:updated_at"`
}

func (User) TableName() string { return "KPI_Users" }

// UserView: JSON одного сотрудника. Ключи и в snake_case, и в camelCase,
// старые фронтенды читают второй вариант
type UserView struct {
	ManV         string    `json:"manv"`
	Name         string    `json:"name"`
	FullName     string    `json:"full_name"`
	Role         string    `json:"role"`
	RoleLevel    int       `json:"role_level"`
	RoleLevelCC  int       `json:"roleLevel"`
	RoleLevelTxt *string   `json:"role_level_txt"`
	CanApprove   bool      `json:"can_approve"`
	CanApproveCC bool      `json:"canApprove"`
	CanAdjust    bool      `json:"can_adjust"`
	CanAdjustCC  bool      `json:"canAdjust"`
	TeamMain     *string   `json:"team_main"`
	TeamMainCC   *string   `json:"teamMain"`
	ScopeView    *string   `json:"scope_view"`
	ScopeApprove *string   `json:"scope_approve"`
	ScopeAdjust  *string   `json:"scope_adjust"`
	DeviceID     *string   `json:"device_id"`
	Active       bool      `json:"active"`
	PINExpiresAt Timestamp `json:"pin_expires_at"`
	DeptCode     *string   `json:"dept_code"`
	ID           *string   `json:"id"`
	PINHash      *string   `json:"pin_hash"`
	PINSalt      *string   `json:"pin_salt"`
	CreatedAt    Timestamp `json:"created_at"`
	UpdatedAt    Timestamp `json:"updated_at"`
}

// UserListItem: урезанная строка для списков
type UserListItem struct {
	ManV       string  `json:"manv"`
	FullName   string  `json:"full_name"`
	Role       string  `json:"role"`
	RoleLevel  int     `json:"role_level"`
	CanApprove bool    `json:"can_approve"`
	CanAdjust  bool    `json:"can_adjust"`
	TeamMain   *string `json:"team_main"`
	ScopeView  *string `json:"scope_view"`
	Active     bool    `json:"active"`
}

// тег команды для фильтра по scope
func (i UserListItem) Team() string {
	if i.TeamMain == nil {
		return ""
	}
	return *i.TeamMain
}
