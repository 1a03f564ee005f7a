package model

import (
	"math"
	"strconv"

	"github.com/rotisserie/eris"
)

// Metric is a derived float64 value that may be non-finite. Zero-cost rows
// produce infinite roi/cltv and a zero revenue total produces a NaN share;
// those values flow through to the outputs rather than erroring, so Metric
// carries them across JSON and CSV, where plain float64 cannot.
type Metric float64

// MarshalJSON encodes finite values as numbers and non-finite values as
// the strings "NaN", "+Inf", and "-Inf".
func (m Metric) MarshalJSON() ([]byte, error) {
	f := float64(m)
	switch {
	case math.IsNaN(f):
		return []byte(`"NaN"`), nil
	case math.IsInf(f, 1):
		return []byte(`"+Inf"`), nil
	case math.IsInf(f, -1):
		return []byte(`"-Inf"`), nil
	}
	return strconv.AppendFloat(nil, f, 'g', -1, 64), nil
}

// UnmarshalJSON accepts both plain numbers and the quoted non-finite forms.
func (m *Metric) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return eris.Wrapf(err, "model: parse metric %q", string(data))
	}
	*m = Metric(f)
	return nil
}

// MarshalText renders the value the way strconv does ("NaN", "+Inf", "-Inf"
// for non-finite values). Used by csvutil for CSV export.
func (m Metric) MarshalText() ([]byte, error) {
	return strconv.AppendFloat(nil, float64(m), 'g', -1, 64), nil
}

// UnmarshalText parses the strconv float forms.
func (m *Metric) UnmarshalText(data []byte) error {
	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return eris.Wrapf(err, "model: parse metric %q", string(data))
	}
	*m = Metric(f)
	return nil
}
