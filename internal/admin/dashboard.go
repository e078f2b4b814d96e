package admin

import (
	"slices"
	"strings"

	"github.com/Domenick1991/skyjourney/internal/catalog"
	"github.com/Domenick1991/skyjourney/internal/domain"
)

type MonthlyBookings struct {
	Month    string `json:"month"`
	Bookings int    `json:"bookings"`
}

type FlightSplit struct {
	Domestic      int `json:"domestic"`
	International int `json:"international"`
}

// Dashboard is a point-in-time summary of the back-office lists.
type Dashboard struct {
	TotalBookings      int                          `json:"total_bookings"`
	Revenue            float64                      `json:"revenue"`
	Cancellations      int                          `json:"cancellations"`
	AverageTicketPrice float64                      `json:"average_ticket_price"`
	ByStatus           map[domain.BookingStatus]int `json:"by_status"`
	Monthly            []MonthlyBookings            `json:"monthly"`
	Flights            FlightSplit                  `json:"flights"`
	Recent             []domain.Booking             `json:"recent"`
	CurrencySymbol     string                       `json:"currency_symbol"`
}

const recentBookings = 5

// BuildDashboard derives totals from the given lists. Revenue and the
// average ticket price exclude cancelled bookings. Dates are expected in
// "YYYY-MM-DD" form.
func BuildDashboard(bookings []domain.Booking, flights []domain.ScheduledFlight, currency string) Dashboard {
	d := Dashboard{
		TotalBookings:  len(bookings),
		ByStatus:       make(map[domain.BookingStatus]int, len(domain.BookingStatuses)),
		CurrencySymbol: currency,
	}

	paid := 0
	months := make(map[string]int)
	for _, b := range bookings {
		d.ByStatus[b.Status]++
		if b.Status == domain.BookingStatusCancelled {
			d.Cancellations++
		} else {
			d.Revenue += b.Amount
			paid++
		}
		if len(b.Date) >= 7 {
			months[b.Date[:7]]++
		}
	}
	if paid > 0 {
		d.AverageTicketPrice = d.Revenue / float64(paid)
	}

	for month, n := range months {
		d.Monthly = append(d.Monthly, MonthlyBookings{Month: month, Bookings: n})
	}
	slices.SortFunc(d.Monthly, func(a, b MonthlyBookings) int { return strings.Compare(a.Month, b.Month) })

	for _, f := range flights {
		if f.Domestic {
			d.Flights.Domestic++
		} else {
			d.Flights.International++
		}
	}

	recent, _ := catalog.BookingSchema().Sort(bookings, catalog.Order{Field: "date", Direction: catalog.Desc})
	if len(recent) > recentBookings {
		recent = recent[:recentBookings]
	}
	d.Recent = recent
	return d
}
