package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// jsonbValue marshals a document-shaped field for storage in a JSONB column.
func jsonbValue(v interface{}) (driver.Value, error) {
	if v == nil {
		return nil, nil
	}
	return json.Marshal(v)
}

// jsonbScan unmarshals a JSONB column into a document-shaped field.
func jsonbScan(src, dest interface{}) error {
	if src == nil {
		return nil
	}
	switch data := src.(type) {
	case []byte:
		return json.Unmarshal(data, dest)
	case string:
		return json.Unmarshal([]byte(data), dest)
	default:
		return fmt.Errorf("unsupported jsonb source type %T", src)
	}
}

// SegmentList is a custom type for handling route segments stored as JSONB
type SegmentList []Segment

// Value implements the driver.Valuer interface
func (s SegmentList) Value() (driver.Value, error) {
	if s == nil {
		return jsonbValue([]Segment{})
	}
	return jsonbValue([]Segment(s))
}

// Scan implements the sql.Scanner interface
func (s *SegmentList) Scan(src interface{}) error {
	return jsonbScan(src, (*[]Segment)(s))
}

// PassengerList is a custom type for handling passenger records stored as JSONB
type PassengerList []Passenger

// Value implements the driver.Valuer interface
func (p PassengerList) Value() (driver.Value, error) {
	if p == nil {
		return jsonbValue([]Passenger{})
	}
	return jsonbValue([]Passenger(p))
}

// Scan implements the sql.Scanner interface
func (p *PassengerList) Scan(src interface{}) error {
	return jsonbScan(src, (*[]Passenger)(p))
}

// BookedSegmentList is a custom type for handling booked segment snapshots stored as JSONB
type BookedSegmentList []BookedSegment

// Value implements the driver.Valuer interface
func (b BookedSegmentList) Value() (driver.Value, error) {
	if b == nil {
		return jsonbValue([]BookedSegment{})
	}
	return jsonbValue([]BookedSegment(b))
}

// Scan implements the sql.Scanner interface
func (b *BookedSegmentList) Scan(src interface{}) error {
	return jsonbScan(src, (*[]BookedSegment)(b))
}

// BookedAddOnList is a custom type for handling add-on price snapshots stored as JSONB
type BookedAddOnList []BookedAddOn

// Value implements the driver.Valuer interface
func (b BookedAddOnList) Value() (driver.Value, error) {
	if b == nil {
		return jsonbValue([]BookedAddOn{})
	}
	return jsonbValue([]BookedAddOn(b))
}

// Scan implements the sql.Scanner interface
func (b *BookedAddOnList) Scan(src interface{}) error {
	return jsonbScan(src, (*[]BookedAddOn)(b))
}
