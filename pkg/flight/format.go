package flight

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMissingField indicates a raw record lacks one of the required fields
// (flight number, airline, departure/arrival airport).
var ErrMissingField = errors.New("missing required field")

// Format transforms a raw provider record into the canonical Data shape.
// Required fields must be present and non-empty; optional fields default
// to absent rather than failing. The live block is all-or-nothing: it is
// emitted only when all six numeric position fields parse.
func Format(raw RawRecord) (*Data, error) {
	number, ok := nestedString(raw, "flight", "number")
	if !ok {
		return nil, fmt.Errorf("%w: flight.number", ErrMissingField)
	}
	airline, ok := nestedString(raw, "airline", "name")
	if !ok {
		return nil, fmt.Errorf("%w: airline.name", ErrMissingField)
	}
	departure, ok := nestedString(raw, "departure", "airport")
	if !ok {
		return nil, fmt.Errorf("%w: departure.airport", ErrMissingField)
	}
	arrival, ok := nestedString(raw, "arrival", "airport")
	if !ok {
		return nil, fmt.Errorf("%w: arrival.airport", ErrMissingField)
	}

	data := &Data{
		FlightNumber:     number,
		Airline:          airline,
		DepartureAirport: departure,
		ArrivalAirport:   arrival,
	}

	if status, ok := nestedString(raw, "flight_status"); ok {
		data.FlightStatus = strings.ToUpper(status)
	}
	if gate, ok := nestedString(raw, "departure", "gate"); ok {
		data.Gate = &gate
	}
	if terminal, ok := nestedString(raw, "departure", "terminal"); ok {
		data.Terminal = &terminal
	}
	if delay, ok := intValue(nestedValue(raw, "departure", "delay")); ok {
		data.Delay = &delay
	}

	data.Live = formatLive(raw)

	return data, nil
}

// liveFields are the numeric position fields that must all be present and
// parseable for a live block to be emitted.
var liveFields = []string{
	"latitude", "longitude", "altitude",
	"direction", "speed_horizontal", "speed_vertical",
}

func formatLive(raw RawRecord) *Live {
	block, ok := nestedValue(raw, "live").(map[string]any)
	if !ok {
		return nil
	}

	values := make(map[string]float64, len(liveFields))
	for _, field := range liveFields {
		f, ok := floatValue(block[field])
		if !ok {
			return nil
		}
		values[field] = f
	}

	live := &Live{
		Latitude:        values["latitude"],
		Longitude:       values["longitude"],
		Altitude:        values["altitude"],
		Direction:       values["direction"],
		SpeedHorizontal: values["speed_horizontal"],
		SpeedVertical:   values["speed_vertical"],
	}
	if updated, ok := block["updated"].(string); ok {
		live.UpdatedAt = updated
	}
	return live
}

// nestedValue walks a path of keys through nested maps, returning nil if
// any step is absent or not a map.
func nestedValue(raw RawRecord, path ...string) any {
	var current any = map[string]any(raw)
	for _, key := range path {
		m, ok := current.(map[string]any)
		if !ok {
			return nil
		}
		current = m[key]
	}
	return current
}

func nestedString(raw RawRecord, path ...string) (string, bool) {
	s, ok := nestedValue(raw, path...).(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// floatValue coerces a decoded JSON value to float64. JSON numbers decode
// to float64, but providers sometimes ship numerics as strings.
func floatValue(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func intValue(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		return int(n), true
	case int:
		return n, true
	case string:
		i, err := strconv.Atoi(n)
		if err != nil {
			return 0, false
		}
		return i, true
	default:
		return 0, false
	}
}
