package ccss

import "github.com/shopspring/decimal"

// Type is the social-security contribution tier of an employee.
type Type string

const (
	TypeFullTime Type = "TC"
	TypePartTime Type = "MT"
)

var TypeValues = []string{string(TypeFullTime), string(TypePartTime)}

// ParseType maps anything other than TC to the part-time tier.
func ParseType(raw string) Type {
	if Type(raw) == TypeFullTime {
		return TypeFullTime
	}
	return TypePartTime
}

// Rates is the per-company contribution and wage configuration.
type Rates struct {
	TC           decimal.Decimal `json:"tc"`
	MT           decimal.Decimal `json:"mt"`
	HoraBruta    decimal.Decimal `json:"horabruta"`
	OvertimeRate decimal.Decimal `json:"hora_extra"`
}

var (
	DefaultTC           = decimal.RequireFromString("11017.39")
	DefaultMT           = decimal.RequireFromString("3672.46")
	DefaultHoraBruta    = decimal.RequireFromString("1529.62")
	DefaultOvertimeRate = decimal.RequireFromString("2294.43")
)

func DefaultRates() Rates {
	return Rates{
		TC:           DefaultTC,
		MT:           DefaultMT,
		HoraBruta:    DefaultHoraBruta,
		OvertimeRate: DefaultOvertimeRate,
	}
}

// ContributionFor returns the monthly contribution charged for the tier.
func (r Rates) ContributionFor(t Type) decimal.Decimal {
	if t == TypeFullTime {
		return r.TC
	}
	return r.MT
}

// Resolution is a resolved rate set tagged with where it came from.
type Resolution struct {
	Rates       Rates
	UsedDefault bool
	CompanyName string
}
