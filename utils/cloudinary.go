package utils

import (
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"os"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

var cld *cloudinary.Cloudinary

// InitCloudinary initializes the Cloudinary connection
func InitCloudinary() error {
	var err error

	cloudName := os.Getenv("CLOUDINARY_CLOUD_NAME")
	apiKey := os.Getenv("CLOUDINARY_API_KEY")
	apiSecret := os.Getenv("CLOUDINARY_API_SECRET")

	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return fmt.Errorf("the Cloudinary environment variables are not set")
	}

	cld, err = cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return fmt.Errorf("error initializing Cloudinary: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err = cld.Admin.Ping(ctx)
	if err != nil {
		return fmt.Errorf("error checking the Cloudinary connection: %v", err)
	}

	log.Println("Cloudinary initialized and connection verified")
	return nil
}

func boolPointer(b bool) *bool {
	return &b
}

func isValidImageType(filename string) bool {
	validExtensions := []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".bmp", ".heic"}
	lowerFilename := strings.ToLower(filename)

	for _, ext := range validExtensions {
		if strings.HasSuffix(lowerFilename, ext) {
			return true
		}
	}
	return false
}

// UploadVehicleImage uploads a vehicle photo to Cloudinary and returns
// its public URL
func UploadVehicleImage(file *multipart.FileHeader) (string, error) {
	if !isValidImageType(file.Filename) {
		return "", fmt.Errorf("unsupported image format, use JPG, PNG, GIF, WEBP, BMP or HEIC")
	}

	// 10MB max
	if file.Size > 10*1024*1024 {
		return "", fmt.Errorf("image too large, maximum 10MB allowed")
	}

	if cld == nil {
		if err := InitCloudinary(); err != nil {
			LogError(err, "Cloudinary initialization failed")
			return "", err
		}
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("error opening the file: %v", err)
	}
	defer src.Close()

	if _, err = src.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("error resetting the file cursor: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	timestamp := time.Now().Unix()
	publicID := fmt.Sprintf("vehicle_%d", timestamp)

	uploadParams := uploader.UploadParams{
		Folder:         "vehicle_images",
		PublicID:       publicID,
		UseFilename:    boolPointer(true),
		UniqueFilename: boolPointer(true),
		Overwrite:      boolPointer(true),
		ResourceType:   "auto",
	}

	uploadResult, err := cld.Upload.Upload(ctx, src, uploadParams)
	if err != nil {
		LogError(err, "Error uploading to Cloudinary")
		return "", fmt.Errorf("error uploading to Cloudinary: %v", err)
	}

	if uploadResult.SecureURL == "" {
		if uploadResult.PublicID != "" {
			cloudName := os.Getenv("CLOUDINARY_CLOUD_NAME")
			return fmt.Sprintf("https://res.cloudinary.com/%s/image/upload/%s",
				cloudName, uploadResult.PublicID), nil
		}
		return "", fmt.Errorf("empty secure URL in the Cloudinary response")
	}

	return uploadResult.SecureURL, nil
}
