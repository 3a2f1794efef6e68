package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// FlexFloat is a float64 that unmarshals from either a JSON number or a
// numeric string. The queue's message schema sends the yield both ways.
type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if strings.HasPrefix(s, `"`) {
		var quoted string
		if err := json.Unmarshal(data, &quoted); err != nil {
			return err
		}
		s = strings.TrimSpace(quoted)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("parse yield %q: %w", s, err)
	}
	*f = FlexFloat(v)
	return nil
}

// AnalysisRequest is the unit of work dequeued per iteration. The yield
// field keeps the queue contract's established spelling.
type AnalysisRequest struct {
	Ticker string    `json:"ticker" validate:"required"`
	Yield  FlexFloat `json:"yeild" validate:"required,gt=0"`
}
