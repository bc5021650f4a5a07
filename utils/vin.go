package utils

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
)

// VinDecodeResult holds the fields we keep from a vPIC decode.
type VinDecodeResult struct {
	Vin          string `json:"vin"`
	Year         int    `json:"year"`
	Make         string `json:"make"`
	Model        string `json:"model"`
	Trim         string `json:"trim"`
	FuelType     string `json:"fuelType"`
	Transmission string `json:"transmission"`
	Drivetrain   string `json:"drivetrain"`
	BodyType     string `json:"bodyType"`
}

type vpicApiResponse struct {
	Count   int `json:"Count"`
	Results []struct {
		Variable string `json:"Variable"`
		Value    string `json:"Value"`
	} `json:"Results"`
}

var (
	vinRegexp      = regexp.MustCompile(`^[A-HJ-NPR-Z0-9]{17}$`)
	vpicDecodeURL  = "https://vpic.nhtsa.dot.gov/api/vehicles/DecodeVin/"
	yearFromModelY = regexp.MustCompile(`^\d{4}$`)
)

// ValidateVin checks the 17-character VIN format (no I, O or Q).
func ValidateVin(vin string) bool {
	return vinRegexp.MatchString(vin)
}

// DecodeVin looks a VIN up through the NHTSA vPIC API. A VIN unknown to
// the API decodes to empty fields rather than an error.
func DecodeVin(vin string) (*VinDecodeResult, error) {
	if !ValidateVin(vin) {
		return nil, fmt.Errorf("invalid VIN format: %s", vin)
	}

	url := vpicDecodeURL + vin + "?format=json"
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %v", err)
	}
	req.Header.Set("Accept", "application/json")

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error making request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("vPIC API error: status=%d, body=%s", resp.StatusCode, string(body))
	}

	var apiResp vpicApiResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("error decoding response: %v", err)
	}

	result := &VinDecodeResult{Vin: vin}
	for _, row := range apiResp.Results {
		switch row.Variable {
		case "Model Year":
			if yearFromModelY.MatchString(row.Value) {
				fmt.Sscanf(row.Value, "%d", &result.Year)
			}
		case "Make":
			result.Make = row.Value
		case "Model":
			result.Model = row.Value
		case "Trim":
			result.Trim = row.Value
		case "Fuel Type - Primary":
			result.FuelType = row.Value
		case "Transmission Style":
			result.Transmission = row.Value
		case "Drive Type":
			result.Drivetrain = row.Value
		case "Body Class":
			result.BodyType = row.Value
		}
	}

	return result, nil
}
