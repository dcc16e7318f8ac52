// Package orderrepo maps order aggregates to the "orders" table.
package orderrepo

import (
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// OrderDTO is one row of the orders table. Stops are kept as a JSON array
// since they are always read and written with the order.
type OrderDTO struct {
	ID           string          `gorm:"type:varchar(64);primaryKey"`
	OrderedAt    time.Time       `gorm:"type:timestamptz;not null"`
	FareAmount   decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	FareCurrency string          `gorm:"type:char(3);not null"`
	Distances    pq.Int64Array   `gorm:"type:bigint[];not null"`
	Stops        []StopDTO       `gorm:"serializer:json;type:jsonb;not null"`
	Status       int             `gorm:"not null;index"`
	Version      int64           `gorm:"not null"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// StopDTO is one element of the stops column.
type StopDTO struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func fromDomain(o *order.Order) OrderDTO {
	distances := make(pq.Int64Array, 0, len(o.Distances()))
	for _, d := range o.Distances() {
		distances = append(distances, int64(d))
	}

	stops := make([]StopDTO, 0, len(o.Stops()))
	for _, s := range o.Stops() {
		stops = append(stops, StopDTO{Lat: s.Lat(), Lng: s.Lng()})
	}

	return OrderDTO{
		ID:           o.ID(),
		OrderedAt:    o.OrderedAt(),
		FareAmount:   o.Fare().Amount(),
		FareCurrency: o.Fare().Currency(),
		Distances:    distances,
		Stops:        stops,
		Status:       int(o.Status()),
		Version:      o.Version(),
	}
}

// toDomain rebuilds the aggregate with RestoreOrder, so a row that no longer
// satisfies the domain rules is reported instead of silently loaded.
func toDomain(dto OrderDTO) (*order.Order, error) {
	fare, err := kernel.NewMoney(dto.FareAmount, dto.FareCurrency)
	if err != nil {
		return nil, fmt.Errorf("order %s: fare: %w", dto.ID, err)
	}

	distances := make([]int, 0, len(dto.Distances))
	for _, d := range dto.Distances {
		distances = append(distances, int(d))
	}

	stops := make([]kernel.Location, 0, len(dto.Stops))
	for i, s := range dto.Stops {
		loc, locErr := kernel.NewLocation(s.Lat, s.Lng)
		if locErr != nil {
			return nil, fmt.Errorf("order %s: stop %d: %w", dto.ID, i, locErr)
		}
		stops = append(stops, loc)
	}

	return order.RestoreOrder(
		dto.ID,
		dto.OrderedAt,
		fare,
		distances,
		stops,
		order.Status(dto.Status),
		dto.Version,
	)
}
