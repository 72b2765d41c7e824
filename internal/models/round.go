package models

// Round это одна запись графика выездов из public.rounds.
type Round struct {
	ID        Text `gorm:"column:id;primaryKey;autoIncrement:false"`
	ManV      Text `gorm:"column:manv;index"`
	Vong      Text `gorm:"column:ma_vong"`
	Plate     Text `gorm:"column:bien_so"`
	StartTime Text `gorm:"column:gio_di"`
	EndTime   Text `gorm:"column:gio_ve"`
	Date      Text `gorm:"column:ngay_txt;index"`
}

func (Round) TableName() string { return "rounds" }

type RoundView struct {
	ID         RowID   `json:"id"`
	ManV       string  `json:"manv"`
	Vong       *string `json:"vong"`
	RoundLabel *string `json:"round_label"`
	Plate      *string `json:"plate"`
	StartTime  *string `json:"start_time"`
	EndTime    *string `json:"end_time"`
	Date       string  `json:"date"`
	Route      *string `json:"route"` // маршрут в таблице не хранится
}
