package parser

// flightList walks the required response nesting
// data.pfpFlightSegmentSearch.data.flightList and returns the raw flight
// item list. Any missing level, or an error indicator set by the upstream,
// aborts the whole pass: the error log names the level that failed and a
// debug log carries a payload excerpt. An empty list is a valid result.
//
// tag is appended to every diagnostic so inbound passes stay traceable to
// their originating search id.
func (p *Parser) flightList(doc map[string]any, tag string) ([]any, bool) {
	if len(doc) == 0 {
		p.log.Errorf("invalid response: empty document%s", tag)
		return nil, false
	}

	data, ok := asObject(doc["data"])
	if !ok {
		p.log.Errorf("invalid response: missing 'data'%s", tag)
		p.log.Debugf("response: %s", excerpt(doc))
		return nil, false
	}

	search, ok := asObject(data["pfpFlightSegmentSearch"])
	if !ok {
		p.log.Errorf("invalid response: missing 'data.pfpFlightSegmentSearch'%s", tag)
		p.log.Debugf("response data: %s", excerpt(data))
		return nil, false
	}

	if v, present := search["error"]; present && v != nil {
		if msg := coerceString(v); msg != "" {
			p.log.Errorf("response carries error%s: %s", tag, msg)
			return nil, false
		}
	}

	inner, ok := asObject(search["data"])
	if !ok {
		p.log.Errorf("invalid response: missing 'data.pfpFlightSegmentSearch.data'%s", tag)
		p.log.Debugf("pfpFlightSegmentSearch: %s", excerpt(search))
		return nil, false
	}

	list, ok := asList(inner["flightList"])
	if !ok {
		p.log.Errorf("invalid response: missing 'data.pfpFlightSegmentSearch.data.flightList'%s", tag)
		p.log.Debugf("pfpFlightSegmentSearch.data: %s", excerpt(inner))
		return nil, false
	}

	return list, true
}
