// Package flight defines the canonical flight data model, identifier
// validation, and normalization of raw provider records.
package flight

// RawRecord is a single flight record as decoded from the provider's JSON
// response. No structure is guaranteed until it passes through Format.
type RawRecord map[string]any

// Data is the canonical flight response served by the proxy.
type Data struct {
	// FlightNumber is the airline flight number (e.g. "AA123").
	FlightNumber string `json:"flight_number"`

	// Airline is the operating airline's name.
	Airline string `json:"airline"`

	// DepartureAirport and ArrivalAirport are airport codes.
	DepartureAirport string `json:"departure_airport"`
	ArrivalAirport   string `json:"arrival_airport"`

	// FlightStatus is the provider status, normalized to uppercase.
	FlightStatus string `json:"flight_status"`

	// Gate and Terminal are departure details, absent when unknown.
	Gate     *string `json:"gate,omitempty"`
	Terminal *string `json:"terminal,omitempty"`

	// Delay is the departure delay in minutes, absent when unknown.
	Delay *int `json:"delay,omitempty"`

	// Live is the in-flight position block. Either fully populated or nil,
	// never partial.
	Live *Live `json:"live,omitempty"`
}

// Live is the real-time position of an airborne flight.
type Live struct {
	UpdatedAt       string  `json:"updated"`
	Latitude        float64 `json:"latitude"`
	Longitude       float64 `json:"longitude"`
	Altitude        float64 `json:"altitude"`
	Direction       float64 `json:"direction"`
	SpeedHorizontal float64 `json:"speed_horizontal"`
	SpeedVertical   float64 `json:"speed_vertical"`
}
