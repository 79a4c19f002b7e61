package store

import (
	"strings"

	"github.com/fgallo/cartera"
)

// NormalizeCurrency maps the broker's currency labels to ISO codes. Codes
// already in ISO form pass through uppercased.
func NormalizeCurrency(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "peso_argentino", "pesos":
		return "ARS"
	case "dolar_estadounidense", "dolares":
		return "USD"
	case "":
		return ""
	default:
		return strings.ToUpper(strings.TrimSpace(s))
	}
}

// brokerCurrency is the inverse mapping, used to filter order rows stored
// with the broker's labels.
func brokerCurrency(iso string) string {
	switch strings.ToUpper(strings.TrimSpace(iso)) {
	case "ARS":
		return "peso_Argentino"
	case "USD":
		return "dolar_Estadounidense"
	default:
		return iso
	}
}

// ClassifySide maps an order's direction. A pre-normalized side wins when
// present; otherwise the broker's Spanish operation label decides.
// Amortization payments return principal, so they count as sells; dividend
// and coupon payments are income, not flows against a position.
func ClassifySide(sideNorm *string, side string) cartera.Side {
	if sideNorm != nil {
		switch strings.ToLower(strings.TrimSpace(*sideNorm)) {
		case "buy":
			return cartera.SideBuy
		case "sell":
			return cartera.SideSell
		}
	}
	switch strings.ToLower(strings.TrimSpace(side)) {
	case "compra", "suscripción fci", "suscripcion fci":
		return cartera.SideBuy
	case "venta", "rescate fci", "pago de amortización", "pago de amortizacion":
		return cartera.SideSell
	case "pago de dividendos", "pago de renta":
		return cartera.SideIgnored
	default:
		return cartera.SideUnknown
	}
}
