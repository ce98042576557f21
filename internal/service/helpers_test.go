package service

import (
	"time"

	"github.com/smartcity/aqdash/internal/domain"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func at(s string) time.Time {
	t, err := time.Parse("2006-01-02 15:04:05", s)
	if err != nil {
		panic(err)
	}
	return t
}

func f(v float64) *float64 { return domain.Float(v) }

func rec(city string, date time.Time, aqi, pm25, temp, hum *float64) domain.Record {
	return domain.Record{City: city, Date: date, AQI: aqi, PM25: pm25, Temperature: temp, Humidity: hum}
}

func dataset(records ...domain.Record) domain.Dataset {
	return domain.Dataset{
		Version: "test",
		Columns: append([]string(nil), domain.CanonicalColumns...),
		Records: records,
	}
}

func view(records ...domain.Record) domain.FilteredView {
	return domain.FilteredView{Records: records}
}

// wide selects every record of ds holding an AQI value
func wide(ds domain.Dataset) domain.FilterCriteria {
	lo, hi, _ := ds.DateBounds()
	return domain.FilterCriteria{
		AllCities: true,
		Start:     domain.StartOfDay(lo),
		End:       hi,
		MinAQI:    -1e9,
		MaxAQI:    1e9,
	}
}

func sample() domain.Dataset {
	return dataset(
		rec("Almaty", day("2024-01-01"), f(150), f(60), f(-5), f(70)),
		rec("Oslo", day("2024-01-01"), f(30), f(8), f(-2), f(80)),
		rec("Delhi", day("2024-01-01"), f(220), f(120), f(18), f(55)),
		rec("Almaty", day("2024-01-02"), f(170), nil, f(-7), f(72)),
		rec("Oslo", day("2024-01-02"), nil, f(9), f(-1), nil),
		rec("Delhi", day("2024-01-02"), f(200), f(110), nil, f(50)),
		rec("Almaty", day("2024-01-03"), f(90), f(30), f(-3), f(65)),
		rec("Oslo", day("2024-01-03"), f(25), f(6), f(0), f(85)),
		rec("Delhi", day("2024-01-03"), f(240), f(140), f(20), f(52)),
	)
}
