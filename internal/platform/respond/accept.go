package respond

import (
	"strconv"
	"strings"
)

// mediaRange is one element of an Accept header.
type mediaRange struct {
	typ     string
	subtype string
	q       float64
}

// parseAccept splits an Accept header into media ranges. Malformed or out-of-range q values
// count as 1.0 and a bare type without a subtype is read as type/*.
func parseAccept(header string) []mediaRange {
	var ranges []mediaRange
	for part := range strings.SplitSeq(header, ",") {
		params := strings.Split(part, ";")
		mediaType := strings.ToLower(strings.TrimSpace(params[0]))
		if mediaType == "" {
			continue
		}
		mr := mediaRange{q: 1.0}
		if typ, sub, ok := strings.Cut(mediaType, "/"); ok {
			mr.typ, mr.subtype = strings.TrimSpace(typ), strings.TrimSpace(sub)
		} else {
			mr.typ, mr.subtype = mediaType, "*"
		}
		for _, p := range params[1:] {
			key, val, ok := strings.Cut(strings.TrimSpace(p), "=")
			if !ok || !strings.EqualFold(strings.TrimSpace(key), "q") {
				continue
			}
			q, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
			if err != nil || q < 0 || q > 1 {
				q = 1.0
			}
			mr.q = q
		}
		ranges = append(ranges, mr)
	}
	return ranges
}

// preference returns the q value and specificity of the most specific range matching
// application/{suffix} or application/problem+{suffix}. Specificity runs from 0 (*/*)
// to 4 (application/problem+{suffix}); -1 means no range matched.
func preference(ranges []mediaRange, suffix string) (q float64, specificity int) {
	specificity = -1
	for _, mr := range ranges {
		s := -1
		switch {
		case mr.typ == "*" && mr.subtype == "*":
			s = 0
		case mr.typ != "application":
		case mr.subtype == "*":
			s = 1
		case mr.subtype == "*+"+suffix:
			s = 2
		case mr.subtype == suffix:
			s = 3
		case mr.subtype == "problem+"+suffix:
			s = 4
		}
		if s > specificity {
			specificity, q = s, mr.q
		}
	}
	return q, specificity
}

// selectFormat reports whether the client prefers CBOR over JSON. The q value decides first and
// specificity breaks ties; JSON wins every remaining tie and is the default.
func selectFormat(accept string) bool {
	ranges := parseAccept(accept)
	if len(ranges) == 0 {
		return false
	}
	cq, cs := preference(ranges, "cbor")
	jq, js := preference(ranges, "json")
	if cs < 0 || cq <= 0 {
		return false
	}
	if cq != jq {
		return cq > jq
	}
	return cs > js
}
