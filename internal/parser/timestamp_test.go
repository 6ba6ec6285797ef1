package parser_test

import (
	"testing"

	"github.com/Egor213/LogLens/internal/parser"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeTimestamp(t *testing.T) {
	testCases := []struct {
		name string
		raw  string
		want string
	}{
		{name: "php utc", raw: "29-Jan-2022 16:02:48 UTC", want: "2022-01-29T16:02:48+00:00"},
		{name: "lowercase utc", raw: "29-Jan-2022 16:02:48 utc", want: "2022-01-29T16:02:48+00:00"},
		{name: "gmt", raw: "29-Jan-2022 16:02:48 GMT", want: "2022-01-29T16:02:48+00:00"},
		{name: "host zone name rejected", raw: "29-Jan-2022 16:02:48 Local", want: "29-Jan-2022 16:02:48 Local"},
		{name: "php named zone", raw: "29-Jan-2022 16:02:48 Europe/Berlin", want: "2022-01-29T16:02:48+01:00"},
		{name: "php named zone in summer", raw: "01-Jun-2016 09:24:02 Europe/Berlin", want: "2016-06-01T09:24:02+02:00"},
		{name: "numeric offset", raw: "29-Jan-2022 16:02:48 -0500", want: "2022-01-29T16:02:48-05:00"},
		{name: "rfc3339", raw: "2022-01-29T16:02:48+01:00", want: "2022-01-29T16:02:48+01:00"},
		{name: "rfc3339 fractional", raw: "2022-01-29T16:02:48.123Z", want: "2022-01-29T16:02:48+00:00"},
		{name: "no zone is utc", raw: "2022-01-29 16:02:48", want: "2022-01-29T16:02:48+00:00"},
		{name: "surrounding spaces", raw: " 29-Jan-2022 16:02:48 UTC ", want: "2022-01-29T16:02:48+00:00"},
		{name: "unknown zone passes through", raw: "29-Jan-2022 16:02:48 Mars/Olympus", want: "29-Jan-2022 16:02:48 Mars/Olympus"},
		{name: "garbage passes through", raw: "not a date", want: "not a date"},
		{name: "empty", raw: "", want: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, parser.NormalizeTimestamp(tc.raw))
		})
	}
}
