package models

import "time"

// Garment описывает вещь из гардероба пользователя.
type Garment struct {
	ID          int        `json:"id"`
	UserUID     string     `json:"user_uid"`
	Category    string     `json:"category"`
	Material    string     `json:"material,omitempty"`
	Condition   string     `json:"condition"`
	CleanCount  int        `json:"clean_count"`
	LastCleaned *time.Time `json:"last_cleaned,omitempty"`
	ImagePath   string     `json:"image_path,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// DummyGarment используется для приёма данных вещи из JSON-запроса.
type DummyGarment struct {
	Category    string `json:"category" validate:"required,max=100"`
	Material    string `json:"material" validate:"omitempty,max=100"`
	Condition   string `json:"condition" validate:"required,oneof=new good worn damaged"`
	CleanCount  int    `json:"clean_count" validate:"omitempty,gte=0"`
	LastCleaned string `json:"last_cleaned" validate:"omitempty"` // формат 2006-01-02
}
