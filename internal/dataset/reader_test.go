package dataset

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fraudcli/internal/errors"
)

func TestRead(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{
			name:  "empty input",
			input: "",
			want:  0,
		},
		{
			name:  "single record",
			input: `{"customer":{"customerEmail":"a@x.com"},"fraudulent":false}`,
			want:  1,
		},
		{
			name: "blank lines skipped",
			input: `{"customer":{"customerEmail":"a@x.com"},"fraudulent":false}


{"customer":{"customerEmail":"b@x.com"},"fraudulent":true}
`,
			want: 2,
		},
		{
			name:    "malformed line is fatal",
			input:   `{"customer":{"customerEmail":"a@x.com"}` + "\n" + `not json`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := Read(strings.NewReader(tt.input))
			if tt.wantErr {
				require.Error(t, err)
				var appErr *errors.AppError
				require.ErrorAs(t, err, &appErr)
				assert.Equal(t, errors.ErrTypeParsing, appErr.Type)
				return
			}
			require.NoError(t, err)
			assert.Len(t, records, tt.want)
		})
	}
}

func TestRead_NestedCollections(t *testing.T) {
	input := `{"customer":{"customerEmail":"a@x.com"},"fraudulent":true,"orders":[{"orderAmount":10,"orderState":"failed","orderShippingAddress":"addr"}],"transactions":[{"transactionAmount":15,"transactionFailed":false}]}`

	records, err := Read(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 1)

	record := records[0]
	require.NotNil(t, record.Customer)
	assert.Equal(t, "a@x.com", record.Customer.CustomerEmail)
	require.NotNil(t, record.Fraudulent)
	assert.True(t, *record.Fraudulent)
	require.Len(t, record.Orders, 1)
	assert.Equal(t, 10.0, record.Orders[0].OrderAmount)
	assert.Len(t, record.Transactions, 1)
	assert.Empty(t, record.PaymentMethods)
}
