package catalog

import (
	"math"
	"testing"

	"github.com/Domenick1991/skyjourney/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleFlights() []domain.Flight {
	return []domain.Flight{
		{ID: "FL001", Airline: "SkyJourney Airways", FlightNumber: "SJ101", DepartureAirport: "JFK", DepartureCity: "New York", DepartureTime: "08:30", ArrivalAirport: "LAX", ArrivalCity: "Los Angeles", ArrivalTime: "11:45", Duration: "5h 15m", Stops: 0, Price: 349},
		{ID: "FL002", Airline: "Global Air", FlightNumber: "GA205", DepartureAirport: "JFK", DepartureCity: "New York", DepartureTime: "10:15", ArrivalAirport: "LAX", ArrivalCity: "Los Angeles", ArrivalTime: "13:50", Duration: "5h 35m", Stops: 0, Price: 320},
		{ID: "FL003", Airline: "TransAtlantic", FlightNumber: "TA310", DepartureAirport: "JFK", DepartureCity: "New York", DepartureTime: "12:45", ArrivalAirport: "LAX", ArrivalCity: "Los Angeles", ArrivalTime: "18:30", Duration: "5h 45m", Stops: 1, Price: 285},
		{ID: "FL004", Airline: "Pacific Connect", FlightNumber: "PC422", DepartureAirport: "JFK", DepartureCity: "New York", DepartureTime: "15:00", ArrivalAirport: "LAX", ArrivalCity: "Los Angeles", ArrivalTime: "19:55", Duration: "4h 55m", Stops: 0, Price: 390},
		{ID: "FL005", Airline: "SkyJourney Airways", FlightNumber: "SJ550", DepartureAirport: "JFK", DepartureCity: "New York", DepartureTime: "18:30", ArrivalAirport: "LAX", ArrivalCity: "Los Angeles", ArrivalTime: "22:15", Duration: "5h 45m", Stops: 0, Price: 315},
		{ID: "FL006", Airline: "Coastal Express", FlightNumber: "CE635", DepartureAirport: "EWR", DepartureCity: "Newark", DepartureTime: "20:15", ArrivalAirport: "SFO", ArrivalCity: "San Francisco", ArrivalTime: "01:30", Duration: "5h 15m", Stops: 0, Price: 280},
	}
}

func ids(flights []domain.Flight) []string {
	out := make([]string, len(flights))
	for i, f := range flights {
		out[i] = f.ID
	}
	return out
}

func ptr[T any](v T) *T { return &v }

func TestOrder_Toggle(t *testing.T) {
	o := Order{}
	o = o.Toggle(FieldPrice)
	assert.Equal(t, Order{Field: FieldPrice, Direction: Asc}, o)
	o = o.Toggle(FieldPrice)
	assert.Equal(t, Order{Field: FieldPrice, Direction: Desc}, o)
	o = o.Toggle(FieldPrice)
	assert.Equal(t, Order{Field: FieldPrice, Direction: Asc}, o)
	o = o.Toggle(FieldDuration)
	assert.Equal(t, Order{Field: FieldDuration, Direction: Asc}, o)
}

func TestSchema_SortToggleReversesDistinctKeys(t *testing.T) {
	schema := FlightSchema()
	o := Order{}.Toggle(FieldPrice)

	first, err := schema.Sort(sampleFlights(), o)
	require.NoError(t, err)
	assert.Equal(t, []string{"FL006", "FL003", "FL005", "FL002", "FL001", "FL004"}, ids(first))

	second, err := schema.Sort(sampleFlights(), o.Toggle(FieldPrice))
	require.NoError(t, err)
	assert.Equal(t, []string{"FL004", "FL001", "FL002", "FL005", "FL003", "FL006"}, ids(second))
}

func TestSchema_SortIsStableForEqualKeys(t *testing.T) {
	schema := FlightSchema()

	// FL001/FL006 share 5h 15m, FL003/FL005 share 5h 45m.
	asc, err := schema.Sort(sampleFlights(), Order{Field: FieldDuration, Direction: Asc})
	require.NoError(t, err)
	assert.Equal(t, []string{"FL004", "FL001", "FL006", "FL002", "FL003", "FL005"}, ids(asc))

	desc, err := schema.Sort(sampleFlights(), Order{Field: FieldDuration, Direction: Desc})
	require.NoError(t, err)
	assert.Equal(t, []string{"FL003", "FL005", "FL002", "FL001", "FL006", "FL004"}, ids(desc))
}

func TestSchema_SortDoesNotMutateInput(t *testing.T) {
	in := sampleFlights()
	_, err := FlightSchema().Sort(in, Order{Field: FieldPrice, Direction: Desc})
	require.NoError(t, err)
	assert.Equal(t, ids(sampleFlights()), ids(in))
}

func TestSchema_SortErrors(t *testing.T) {
	_, err := FlightSchema().Sort(sampleFlights(), Order{Field: "gate"})
	assert.ErrorIs(t, err, ErrUnknownSortField)

	_, err = FlightSchema().Sort(sampleFlights(), Order{Field: FieldPrice, Direction: "sideways"})
	assert.ErrorIs(t, err, ErrInvalidDirection)
}

func TestView_FilterCriteria(t *testing.T) {
	view := NewView(FlightSchema(), sampleFlights())

	testCases := []struct {
		name     string
		filter   Filter
		expected []string
	}{
		{name: "no filter", filter: Filter{}, expected: []string{"FL006", "FL003", "FL005", "FL002", "FL001", "FL004"}},
		{name: "case-insensitive flight number", filter: Filter{Query: "sj"}, expected: []string{"FL005", "FL001"}},
		{name: "city", filter: Filter{Query: "san fran"}, expected: []string{"FL006"}},
		{name: "identifier", filter: Filter{Query: "fl003"}, expected: []string{"FL003"}},
		{name: "stops", filter: Filter{Stops: ptr(1)}, expected: []string{"FL003"}},
		{name: "price range", filter: Filter{MinPrice: ptr(300.0), MaxPrice: ptr(350.0)}, expected: []string{"FL005", "FL002", "FL001"}},
		{name: "combined with AND", filter: Filter{Query: "jfk", Stops: ptr(0), MaxPrice: ptr(330.0)}, expected: []string{"FL005", "FL002"}},
		{name: "no match", filter: Filter{Query: "tokyo"}, expected: []string{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := view.Query(tc.filter, Order{})
			require.NoError(t, err)
			assert.Equal(t, tc.expected, ids(got))
		})
	}
}

func TestView_FilterIsNotCumulative(t *testing.T) {
	view := NewView(FlightSchema(), sampleFlights())
	a := Filter{Stops: ptr(1)}
	b := Filter{Query: "new york"}

	_, err := view.Query(a, Order{})
	require.NoError(t, err)
	afterA, err := view.Query(b, Order{})
	require.NoError(t, err)
	alone, err := NewView(FlightSchema(), sampleFlights()).Query(b, Order{})
	require.NoError(t, err)

	assert.Equal(t, ids(alone), ids(afterA))
	assert.Len(t, afterA, 5)

	reset, err := view.Query(Filter{}, Order{})
	require.NoError(t, err)
	assert.ElementsMatch(t, ids(view.Source()), ids(reset))
}

func TestView_DefaultOrder(t *testing.T) {
	flights, err := NewView(FlightSchema(), sampleFlights()).Query(Filter{}, Order{})
	require.NoError(t, err)
	assert.Equal(t, []string{"FL006", "FL003", "FL005", "FL002", "FL001", "FL004"}, ids(flights))

	explicit, err := NewView(FlightSchema(), sampleFlights()).Query(Filter{}, Order{Field: FieldAirline, Direction: Asc})
	require.NoError(t, err)
	assert.NotEqual(t, ids(flights), ids(explicit))

	bookings := []domain.Booking{
		{ID: "B-1", Date: "2025-06-01"},
		{ID: "B-2", Date: "2025-07-15"},
		{ID: "B-3", Date: "2025-05-20"},
	}
	got, err := NewView(BookingSchema(), bookings).Query(Filter{}, Order{})
	require.NoError(t, err)
	assert.Equal(t, "B-2", got[0].ID)
	assert.Equal(t, "B-3", got[2].ID)

	schedule := []domain.ScheduledFlight{
		{ID: "F-1", DepartureTime: "14:00"},
		{ID: "F-2", DepartureTime: "06:45"},
	}
	gotSchedule, err := NewView(ScheduleSchema(), schedule).Query(Filter{}, Order{})
	require.NoError(t, err)
	assert.Equal(t, "F-2", gotSchedule[0].ID)

	assert.Equal(t, Order{Field: "date", Direction: Desc}, BookingSchema().Resolve(Order{}))
	assert.Equal(t, Order{Field: "amount", Direction: Asc}, BookingSchema().Resolve(Order{Field: "amount", Direction: Asc}))
}

func TestView_SourceIsCopied(t *testing.T) {
	src := sampleFlights()
	view := NewView(FlightSchema(), src)
	src[0].ID = "changed"
	assert.Equal(t, "FL001", view.Source()[0].ID)
	assert.Equal(t, 6, view.Len())
}

func TestBookingSchema_SearchesRouteAndPassenger(t *testing.T) {
	bookings := []domain.Booking{
		{ID: "B-12345", Passenger: "John Doe", FlightNumber: "SJ101", From: "New York (JFK)", To: "Los Angeles (LAX)"},
		{ID: "B-12346", Passenger: "Sarah Smith", FlightNumber: "SJ205", From: "London (LHR)", To: "Paris (CDG)"},
	}
	view := NewView(BookingSchema(), bookings)

	got, err := view.Query(Filter{Query: "PARIS"}, Order{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "B-12346", got[0].ID)

	got, err = view.Query(Filter{Query: "john"}, Order{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "B-12345", got[0].ID)
}

func TestParseDirection(t *testing.T) {
	d, err := ParseDirection("DESC")
	require.NoError(t, err)
	assert.Equal(t, Desc, d)

	d, err = ParseDirection("")
	require.NoError(t, err)
	assert.Equal(t, Asc, d)

	_, err = ParseDirection("up")
	assert.ErrorIs(t, err, ErrInvalidDirection)
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	got, total := Paginate(items, NormalizePage(2, 2))
	assert.Equal(t, []int{3, 4}, got)
	assert.Equal(t, 5, total)

	got, _ = Paginate(items, NormalizePage(3, 2))
	assert.Equal(t, []int{5}, got)

	got, _ = Paginate(items, NormalizePage(9, 2))
	assert.Empty(t, got)

	assert.Equal(t, Page{Page: 1, Limit: 10}, NormalizePage(0, 0))
	assert.Equal(t, Page{Page: 2, Limit: MaxLimit}, NormalizePage(2, 1<<40))
}

func TestPaginate_HugeWindow(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	got, total := Paginate(items, Page{Page: 3, Limit: 1 << 62})
	assert.Empty(t, got)
	assert.Equal(t, 5, total)

	got, _ = Paginate(items, Page{Page: math.MaxInt, Limit: 2})
	assert.Empty(t, got)

	got, _ = Paginate(items, Page{Page: 1, Limit: math.MaxInt})
	assert.Equal(t, items, got)

	got, _ = Paginate(items, Page{})
	assert.Empty(t, got)
}
