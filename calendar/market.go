// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package calendar

import (
	"strings"
	"time"

	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/us"
)

const observedHolidayPostfix = "(observed)"

type Session int

const (
	SessionClosed Session = iota
	SessionPreMarket
	SessionRegular
	SessionAfterHours
)

func (s Session) String() string {
	switch s {
	case SessionClosed:
		return "Market Closed"
	case SessionPreMarket:
		return "Pre-Market"
	case SessionRegular:
		return "Market Open"
	case SessionAfterHours:
		return "After-Hours"
	}
	panic("unknown session")
}

type TradingHours struct {
	Open     time.Time
	Close    time.Time
	PreOpen  time.Time
	ExtClose time.Time
}

func (h TradingHours) Session(t time.Time) Session {
	if t.Before(h.PreOpen) || !t.Before(h.ExtClose) {
		return SessionClosed
	} else if t.Before(h.Open) {
		return SessionPreMarket
	} else if t.Before(h.Close) {
		return SessionRegular
	}
	return SessionAfterHours
}

type clockTime struct {
	hours   int
	minutes int
}

// Exchange calendar with holidays and trading hours.
type Market struct {
	location                *time.Location
	calendar                *cal.BusinessCalendar
	stdOpenTime             clockTime
	stdCloseTime            clockTime
	partialCloseTime        clockTime
	extendedHoursBeforeOpen time.Duration
	extendedHoursAfterClose time.Duration
}

func NewUSMarket() Market {
	// NYSE uses ET, which can be either EST or EDT.
	// Changing to/from daylight saving time does not occur during market hours.
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		panic("NYSE time location not supported")
	}
	c := cal.NewBusinessCalendar()
	// Source for bank holidays: https://www.federalreserve.gov/aboutthefed/k8.htm
	c.AddHoliday(
		us.NewYear,
		us.MlkDay,
		us.PresidentsDay,
		us.MemorialDay,
		us.Juneteenth,
		us.IndependenceDay,
		us.LaborDay,
		us.ColumbusDay,
		us.VeteransDay,
		us.ThanksgivingDay,
		us.ChristmasDay,
	)
	c.Cacheable = true
	return Market{
		calendar:                c,
		location:                loc,
		stdOpenTime:             clockTime{hours: 9, minutes: 30},
		stdCloseTime:            clockTime{hours: 16, minutes: 0},
		partialCloseTime:        clockTime{hours: 13, minutes: 0},
		extendedHoursBeforeOpen: time.Hour*5 + time.Minute*30,
		extendedHoursAfterClose: time.Hour * 4,
	}
}

var usMarket = NewUSMarket()

// Market of a ticker symbol. Only US listings are known, these have no exchange suffix.
// Share classes like BRK.B are US listings as well.
func MarketOf(symbol string) (Market, bool) {
	if len(symbol) == 0 {
		return Market{}, false
	}
	if i := strings.LastIndexByte(symbol, '.'); i >= 0 && len(symbol)-i-1 > 1 {
		return Market{}, false
	}
	return usMarket, true
}

func (m Market) Location() *time.Location {
	return m.location
}

func (m Market) IsHoliday(t time.Time) (bool, string) {
	actual, observed, h := m.calendar.IsHoliday(t.In(m.location))
	if !actual && !observed {
		return false, ""
	} else if !actual {
		return true, h.Name + " " + observedHolidayPostfix
	}
	return true, h.Name
}

func (m Market) IsTradingDay(t time.Time) (trading bool, partial bool) {
	day := t.In(m.location)
	trading = m.calendar.IsWorkday(day)

	if trading {
		holiday, name := m.IsHoliday(day.AddDate(0, 0, 1))
		// There are partial trading days before independence day and christmas.
		if holiday && (name == us.IndependenceDay.Name || name == us.ChristmasDay.Name) {
			partial = true
		} else {
			// There is a partial trading day after thanksgiving.
			holiday, name = m.IsHoliday(day.AddDate(0, 0, -1))
			if holiday && name == us.ThanksgivingDay.Name {
				partial = true
			}
		}
	}
	return
}

func (m Market) TradingHours(t time.Time) (trading, partial bool, h TradingHours) {
	day := t.In(m.location)
	trading, partial = m.IsTradingDay(day)
	if !trading {
		return
	}
	y, mon, d := day.Date()
	h.Open = time.Date(y, mon, d, m.stdOpenTime.hours, m.stdOpenTime.minutes, 0, 0, m.location)
	if partial {
		h.Close = time.Date(y, mon, d, m.partialCloseTime.hours, m.partialCloseTime.minutes, 0, 0, m.location)
	} else {
		h.Close = time.Date(y, mon, d, m.stdCloseTime.hours, m.stdCloseTime.minutes, 0, 0, m.location)
	}
	h.PreOpen = h.Open.Add(-m.extendedHoursBeforeOpen)
	h.ExtClose = h.Close.Add(m.extendedHoursAfterClose)
	return
}

func (m Market) Session(t time.Time) Session {
	trading, _, h := m.TradingHours(t)
	if !trading {
		return SessionClosed
	}
	return h.Session(t)
}

// Short state text of the market of symbol, empty if the market is unknown or open.
func MarketState(symbol string, t time.Time) string {
	m, ok := MarketOf(symbol)
	if !ok {
		return ""
	}
	s := m.Session(t)
	if s == SessionRegular {
		return ""
	}
	if holiday, name := m.IsHoliday(t); holiday {
		return s.String() + " (" + name + ")"
	}
	return s.String()
}
