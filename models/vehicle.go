package models

import (
	"time"
)

type Vehicle struct {
	ID                 string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	UserID             string     `json:"userId" gorm:"type:uuid;not null;index"`
	Vin                string     `json:"vin" binding:"required"`
	Year               int        `json:"year" binding:"required"`
	Make               string     `json:"make" binding:"required"`
	Model              string     `json:"model" binding:"required"`
	Trim               string     `json:"trim"`
	FuelType           string     `json:"fuelType"`
	Transmission       string     `json:"transmission"`
	Drivetrain         string     `json:"drivetrain"`
	BodyType           string     `json:"bodyType"`
	Color              string     `json:"color"`
	LicensePlate       string     `json:"licensePlate"`
	CurrentMileage     int        `json:"currentMileage"`
	PurchaseDate       *time.Time `json:"purchaseDate"`
	PurchasePrice      float64    `json:"purchasePrice"`
	CurrentMarketValue float64    `json:"currentMarketValue"`
	ProfileImage       string     `json:"profileImage"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}
