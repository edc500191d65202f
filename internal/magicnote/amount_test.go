package magicnote

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractAmount(t *testing.T) {
	tests := []struct {
		wantErr  error
		name     string
		text     string
		want     string
		wantSpan string
	}{
		{name: "plain number", text: "Sold 500 to Shop", want: "500", wantSpan: "500"},
		{name: "multiply", text: "Sold 50*8 to Shop", want: "400", wantSpan: "50*8"},
		{name: "add with spaces", text: "Sold 50 + 25 today", want: "75", wantSpan: "50 + 25"},
		{name: "subtract", text: "Spent 100-30", want: "70", wantSpan: "100-30"},
		{name: "divide", text: "Sold 90/4", want: "22.5", wantSpan: "90/4"},
		{name: "decimal", text: "Spent 99.50 on tea", want: "99.5", wantSpan: "99.50"},
		{name: "first positive wins", text: "Sold 3 boxes for 600", want: "3", wantSpan: "3"},
		{name: "skips zero", text: "0 then 15", want: "15", wantSpan: "15"},
		{name: "skips negative result", text: "10-20 then 5", want: "5", wantSpan: "5"},
		{name: "skips malformed", text: "5/0 then 7", want: "7", wantSpan: "7"},
		{name: "separated minus is not arithmetic", text: "Sold 500 - Rahul", want: "500", wantSpan: "500"},
		{name: "no digits", text: "hello there", wantErr: ErrNoAmountFound},
		{name: "empty", text: "", wantErr: ErrNoAmountFound},
		{name: "only zero", text: "Sold 0", wantErr: ErrNoAmountFound},
		{name: "division by zero", text: "Sold 50/0", wantErr: ErrMalformedArithmetic},
		{name: "dangling operator", text: "Sold 50* to Shop", wantErr: ErrMalformedArithmetic},
		{name: "chained", text: "Sold 1+2+3", wantErr: ErrMalformedArithmetic},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractAmount(tt.text)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got.Amount), "want %s, got %s", tt.want, got.Amount)
			assert.Equal(t, tt.wantSpan, got.Span)
			assert.Equal(t, tt.wantSpan, tt.text[got.Start:got.End])
		})
	}
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name    string
		left    string
		op      string
		right   string
		want    string
		wantErr bool
	}{
		{name: "add", left: "2", op: "+", right: "3", want: "5"},
		{name: "subtract", left: "2", op: "-", right: "3", want: "-1"},
		{name: "multiply", left: "1.5", op: "*", right: "4", want: "6"},
		{name: "divide", left: "10", op: "/", right: "4", want: "2.5"},
		{name: "divide by zero", left: "10", op: "/", right: "0", wantErr: true},
		{name: "unknown operator", left: "10", op: "%", right: "3", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Evaluate(decimal.RequireFromString(tt.left), tt.op, decimal.RequireFromString(tt.right))
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMalformedArithmetic)
				return
			}
			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}

func TestEvaluate_DivisionKeepsPrecision(t *testing.T) {
	got, err := Evaluate(decimal.NewFromInt(100), "/", decimal.NewFromInt(3))
	require.NoError(t, err)

	assert.Equal(t, "33.33", got.StringFixed(2))
	assert.False(t, got.Equal(decimal.RequireFromString("33.33")))
}

func TestFindPartialPayment(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		want     string
		wantSpan string
		wantOK   bool
	}{
		{name: "advance", text: "Sold 1000 advance 200", want: "200", wantSpan: "advance 200", wantOK: true},
		{name: "received", text: "Sold 1000 to Rahul received 300", want: "300", wantSpan: "received 300", wantOK: true},
		{name: "case insensitive", text: "Sold 1000 ADVANCE 50", want: "50", wantSpan: "ADVANCE 50", wantOK: true},
		{name: "zero is ignored", text: "Sold 1000 advance 0", wantOK: false},
		{name: "absent", text: "Sold 1000 to Rahul", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := findPartialPayment(tt.text)
			assert.Equal(t, tt.wantOK, ok)
			if !tt.wantOK {
				return
			}
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got.amount))
			assert.Equal(t, tt.wantSpan, tt.text[got.span.start:got.span.end])
		})
	}
}

func TestMaskSpan(t *testing.T) {
	text := "Sold 1000 advance 200"
	masked := maskSpan(text, span{start: 10, end: 21})

	assert.Len(t, masked, len(text))
	assert.Equal(t, "Sold 1000            ", masked)
}
