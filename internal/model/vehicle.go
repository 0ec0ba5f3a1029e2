package model

// Vehicle represents a row in the `vehicles` table.  Departure and arrival
// times are stored as strings because drivers report them as free-form local
// times, matching the upstream data feed.
//
// Fields:
//  ID                  – primary key identifier.
//  NumberPlate         – unique registration plate.
//  Capacity            – load capacity in kilograms.
//  DriverName          – name of the assigned driver.
//  DriverPhone         – phone number of the assigned driver.
//  DepartureTime       – reported departure time.
//  ExpectedArrivalTime – reported expected arrival time.
//  Status              – free text, defaults to "empty".
//  LocationID          – locations.id of the current/origin route.
type Vehicle struct {
	ID                  uint64  // vehicles.id
	NumberPlate         string  // vehicles.number_plate
	Capacity            float64 // vehicles.capacity
	DriverName          string  // vehicles.driver_name
	DriverPhone         string  // vehicles.driver_phone
	DepartureTime       string  // vehicles.departure_time
	ExpectedArrivalTime string  // vehicles.expected_arrival_time
	Status              string  // vehicles.status
	LocationID          uint64  // vehicles.location_id
}
