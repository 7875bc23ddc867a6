package response

import "encoding/json"

type SettingsResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty" swaggertype:"object"`
}
