// internal/browse/detail.go
package browse

import (
	"math"
	"time"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/javajoker/realestate-backend/internal/models"
)

const defaultMapAddress = "Bogotá, Colombia"

// cop is the Colombian peso; golang.org/x/text/currency has no predefined COP unit.
var cop = currency.MustParseISO("COP")

// Mortgage describes the financing used for the monthly payment estimate.
type Mortgage struct {
	RateMonthly float64
	Years       int
	DownPct     float64
}

var DefaultMortgage = Mortgage{RateMonthly: 0.0125, Years: 20, DownPct: 0.2}

// MonthlyPayment is the rounded annuity payment for price after the down
// payment, or 0 when price is not positive.
func (m Mortgage) MonthlyPayment(price float64) float64 {
	if price <= 0 {
		return 0
	}
	principal := price * (1 - m.DownPct)
	n := float64(m.Years * 12)
	if m.RateMonthly == 0 {
		return math.Round(principal / n)
	}
	return math.Round(principal * m.RateMonthly / (1 - math.Pow(1+m.RateMonthly, -n)))
}

type TraceView struct {
	DateSale string
	Name     string
	Value    string
	Tax      string
}

// DetailView is the display model of a single property.
type DetailView struct {
	ID           string
	Name         string
	Address      string
	CodeInternal string
	Year         int
	OwnerName    string
	Price        string
	MonthlyUSD   string
	Mortgage     Mortgage
	Gallery      []string
	Traces       []TraceView
	MapAddress   string
	ShareText    string
}

var displayTag = language.MustParse("es-CO")

func BuildDetailView(property models.FullProperty) DetailView {
	view := DetailView{
		ID:           property.IDProperty,
		Name:         property.Name,
		Address:      property.Address,
		CodeInternal: property.CodeInternal,
		Year:         property.Year,
		Price:        FormatMoney(currency.USD, property.Price),
		Mortgage:     DefaultMortgage,
		Gallery:      []string{},
		Traces:       []TraceView{},
		MapAddress:   property.Address,
	}

	if monthly := DefaultMortgage.MonthlyPayment(property.Price); monthly > 0 {
		view.MonthlyUSD = FormatMoney(currency.USD, monthly)
	}
	if property.Owner != nil {
		view.OwnerName = property.Owner.Name
	}
	if view.MapAddress == "" {
		view.MapAddress = defaultMapAddress
	}
	view.ShareText = property.Name + " - " + view.Price

	for _, image := range property.Images {
		if image.Enabled {
			view.Gallery = append(view.Gallery, image.File)
		}
	}

	for _, trace := range property.Traces {
		view.Traces = append(view.Traces, TraceView{
			DateSale: formatDate(trace.DateSale),
			Name:     trace.Name,
			Value:    FormatMoney(cop, trace.Value),
			Tax:      FormatMoney(cop, trace.Tax),
		})
	}

	return view
}

// FormatMoney renders amount without decimals using Colombian grouping,
// e.g. "US$ 1.250.000" or "$ 200.000.000".
func FormatMoney(unit currency.Unit, amount float64) string {
	symbol := unit.String()
	switch unit {
	case currency.USD:
		symbol = "US$"
	case cop:
		symbol = "$"
	}
	p := message.NewPrinter(displayTag)
	return p.Sprintf("%s %v", symbol, number.Decimal(math.Round(amount), number.MaxFractionDigits(0)))
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02/01/2006")
}
