package parser

type fareAmounts struct {
	Price float64
	Tax   float64
}

// firstFare returns the first fare option of a flight item. The upstream
// orders fareList cheapest-first and both passes only ever read the first.
func firstFare(item map[string]any) (map[string]any, bool) {
	fares, ok := asList(item["fareList"])
	if !ok || len(fares) == 0 {
		return nil, false
	}
	return asObject(fares[0])
}

// extractFare derives the exported amounts from one fare option. The raw
// totalPrice.price is tax-inclusive, so Price is the remainder after
// subtracting tax.totalTax. There is no way to detect a tax-exclusive total
// from the payload; if the upstream ever switches, the subtraction here is
// silently wrong.
//
// Missing sub-objects and non-numeric amounts default to 0 and are logged,
// identical to an absent field. Extraction never fails.
func (p *Parser) extractFare(fare map[string]any) fareAmounts {
	var out fareAmounts

	info, ok := asObject(fare["fareInfo"])
	if !ok {
		p.log.Warnf("fare option missing fareInfo")
		return out
	}

	var total, tax float64
	if tp, ok := asObject(info["totalPrice"]); ok {
		total = p.amount(tp, "price")
	} else {
		p.log.Warnf("fareInfo missing totalPrice")
	}
	if tx, ok := asObject(info["tax"]); ok {
		tax = p.amount(tx, "totalTax")
	} else {
		p.log.Warnf("fareInfo missing tax")
	}

	out.Price = total - tax
	out.Tax = tax
	return out
}

func (p *Parser) amount(obj map[string]any, key string) float64 {
	v, present := obj[key]
	if !present || v == nil {
		p.log.Warnf("fare amount missing %q", key)
		return 0
	}
	n, ok := asNumber(v)
	if !ok {
		p.log.Errorf("fare amount %q is not numeric", key)
		p.log.Debugf("fare amount %q: %s", key, excerpt(v))
		return 0
	}
	return n
}
