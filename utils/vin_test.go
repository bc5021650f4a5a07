package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateVin(t *testing.T) {
	assert.True(t, ValidateVin("1HGCM82633A004352"))
	assert.True(t, ValidateVin("5YJ3E1EA7KF317000"))

	// Wrong length
	assert.False(t, ValidateVin("1HGCM82633A00435"))
	assert.False(t, ValidateVin("1HGCM82633A0043521"))
	// I, O and Q are not valid VIN characters
	assert.False(t, ValidateVin("IHGCM82633A004352"))
	assert.False(t, ValidateVin("OHGCM82633A004352"))
	assert.False(t, ValidateVin("QHGCM82633A004352"))
	// Lowercase is rejected
	assert.False(t, ValidateVin("1hgcm82633a004352"))
	assert.False(t, ValidateVin(""))
}

func TestDecodeVin_MapsVpicVariables(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"Count": 8,
			"Results": [
				{"Variable": "Model Year", "Value": "2003"},
				{"Variable": "Make", "Value": "HONDA"},
				{"Variable": "Model", "Value": "Accord"},
				{"Variable": "Trim", "Value": "EX"},
				{"Variable": "Fuel Type - Primary", "Value": "Gasoline"},
				{"Variable": "Transmission Style", "Value": "Automatic"},
				{"Variable": "Drive Type", "Value": "FWD"},
				{"Variable": "Body Class", "Value": "Coupe"}
			]
		}`))
	}))
	defer server.Close()

	originalURL := vpicDecodeURL
	vpicDecodeURL = server.URL + "/api/vehicles/DecodeVin/"
	defer func() { vpicDecodeURL = originalURL }()

	result, err := DecodeVin("1HGCM82633A004352")

	assert.NoError(t, err)
	assert.Equal(t, "1HGCM82633A004352", result.Vin)
	assert.Equal(t, 2003, result.Year)
	assert.Equal(t, "HONDA", result.Make)
	assert.Equal(t, "Accord", result.Model)
	assert.Equal(t, "Gasoline", result.FuelType)
	assert.Equal(t, "FWD", result.Drivetrain)
	assert.Equal(t, "Coupe", result.BodyType)
}

func TestDecodeVin_InvalidVin(t *testing.T) {
	_, err := DecodeVin("not-a-vin")
	assert.Error(t, err)
}

func TestDecodeVin_ApiError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	originalURL := vpicDecodeURL
	vpicDecodeURL = server.URL + "/api/vehicles/DecodeVin/"
	defer func() { vpicDecodeURL = originalURL }()

	_, err := DecodeVin("1HGCM82633A004352")
	assert.Error(t, err)
}
