package parser

// flightFields are the leaf-level timing values of one flight item. No
// format validation happens here; the date strings stay raw until
// parseCompactDate.
type flightFields struct {
	DepartureAirport string
	ArrivalAirport   string
	DepartureDate    string
	DepartureTime    string
	ArrivalDate      string
	ArrivalTime      string
	FlightTime       float64
}

func (p *Parser) extractFlightFields(item map[string]any) flightFields {
	return flightFields{
		DepartureAirport: p.stringField(item, "depAirportCode"),
		ArrivalAirport:   p.stringField(item, "arrAirportCode"),
		DepartureDate:    p.stringField(item, "depDate"),
		DepartureTime:    p.stringField(item, "depTime"),
		ArrivalDate:      p.stringField(item, "arrDate"),
		ArrivalTime:      p.stringField(item, "arrTime"),
		FlightTime:       p.numberField(item, "flyTime"),
	}
}

// stringField returns the named field as text, or empty with a warning when
// it is absent. Extraction never fails at this level.
func (p *Parser) stringField(obj map[string]any, key string) string {
	v, present := obj[key]
	if !present || v == nil {
		p.log.Warnf("flight item missing %q", key)
		return ""
	}
	return coerceString(v)
}

func (p *Parser) numberField(obj map[string]any, key string) float64 {
	v, present := obj[key]
	if !present || v == nil {
		p.log.Warnf("flight item missing %q", key)
		return 0
	}
	n, ok := asNumber(v)
	if !ok {
		p.log.Warnf("flight item field %q is not numeric", key)
		return 0
	}
	return n
}
