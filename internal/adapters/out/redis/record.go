package redis

import (
	"encoding/json"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// orderRecord is the JSON value stored under an order key.
type orderRecord struct {
	ID           string       `json:"id"`
	OrderedAt    time.Time    `json:"orderedAt"`
	FareAmount   string       `json:"fareAmount"`
	FareCurrency string       `json:"fareCurrency"`
	Distances    []int        `json:"distances"`
	Stops        []stopRecord `json:"stops"`
	Status       string       `json:"status"`
	Version      int64        `json:"version"`
}

type stopRecord struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func encodeOrder(o *order.Order) ([]byte, error) {
	stops := make([]stopRecord, 0, len(o.Stops()))
	for _, s := range o.Stops() {
		stops = append(stops, stopRecord{Lat: s.Lat(), Lng: s.Lng()})
	}

	return json.Marshal(orderRecord{
		ID:           o.ID(),
		OrderedAt:    o.OrderedAt(),
		FareAmount:   o.Fare().Amount().String(),
		FareCurrency: o.Fare().Currency(),
		Distances:    o.Distances(),
		Stops:        stops,
		Status:       o.Status().String(),
		Version:      o.Version(),
	})
}

func decodeOrder(data []byte) (*order.Order, error) {
	var rec orderRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decode order record: %w", err)
	}

	fare, err := kernel.MoneyFromString(rec.FareAmount, rec.FareCurrency)
	if err != nil {
		return nil, fmt.Errorf("order %s: fare: %w", rec.ID, err)
	}

	stops := make([]kernel.Location, 0, len(rec.Stops))
	for i, s := range rec.Stops {
		loc, locErr := kernel.NewLocation(s.Lat, s.Lng)
		if locErr != nil {
			return nil, fmt.Errorf("order %s: stop %d: %w", rec.ID, i, locErr)
		}
		stops = append(stops, loc)
	}

	status, err := order.ParseStatus(rec.Status)
	if err != nil {
		return nil, fmt.Errorf("order %s: %w", rec.ID, err)
	}

	return order.RestoreOrder(rec.ID, rec.OrderedAt, fare, rec.Distances, stops, status, rec.Version)
}
