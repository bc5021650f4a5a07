package models

import (
	"time"
)

type MaintenanceType string

const (
	MaintenanceRoutine      MaintenanceType = "routine"
	MaintenanceRepair       MaintenanceType = "repair"
	MaintenanceModification MaintenanceType = "modification"
	MaintenanceDiagnostic   MaintenanceType = "diagnostic"
	MaintenanceInspection   MaintenanceType = "inspection"
)

type MaintenanceRecord struct {
	ID                 string          `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	VehicleID          string          `json:"vehicleId" gorm:"type:uuid;not null;index"`
	UserID             string          `json:"userId" gorm:"type:uuid;not null;index"`
	Type               MaintenanceType `json:"type" binding:"required" gorm:"type:varchar(20)"`
	Date               time.Time       `json:"date"`
	Mileage            int             `json:"mileage"`
	Title              string          `json:"title" binding:"required"`
	Description        string          `json:"description"`
	Cost               float64         `json:"cost"`
	LaborCost          float64         `json:"laborCost"`
	PartsCost          float64         `json:"partsCost"`
	ShopName           string          `json:"shopName"`
	ShopLocation       string          `json:"shopLocation"`
	TechnicianName     string          `json:"technicianName"`
	DtcCodes           []string        `json:"dtcCodes" gorm:"serializer:json"`
	PartsReplaced      []string        `json:"partsReplaced" gorm:"serializer:json"`
	AttachmentUrls     []string        `json:"attachmentUrls" gorm:"serializer:json"`
	NextServiceDate    *time.Time      `json:"nextServiceDate"`
	NextServiceMileage int             `json:"nextServiceMileage"`
	WarrantyCovered    bool            `json:"warrantyCovered"`
	CreatedAt          time.Time       `json:"createdAt"`
	UpdatedAt          time.Time       `json:"updatedAt"`
}
