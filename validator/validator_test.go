package validator_test

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vortex-fintech/go-iban/errors"
	"github.com/vortex-fintech/go-iban/iban"
	"github.com/vortex-fintech/go-iban/validator"
)

type payout struct {
	Payee string `validate:"required,iban"`
	Memo  string `validate:"max=10"`
}

type draft struct {
	Payee string `validate:"omitempty,iban_format"`
}

type routed struct {
	Payee string `validate:"iban_country"`
}

type typed struct {
	Account iban.IBAN `validate:"iban"`
}

type nested struct {
	Transfer struct {
		Payee string `validate:"required,iban"`
	}
}

func TestValidate_Valid(t *testing.T) {
	res := validator.Validate(payout{Payee: "GB82 WEST 1234 5698 7654 32", Memo: "rent"})
	assert.Nil(t, res)
}

func TestValidate_InvalidIBAN(t *testing.T) {
	tests := []struct {
		name  string
		payee string
		want  string
	}{
		{"empty", "", "required"},
		{"bad checksum", "DE51 2131 1231 5532 1234 42", "invalid_iban"},
		{"unknown country", "DD14 2004 1010 0505 0001 3M02 606", "invalid_iban"},
		{"not an iban", "GB82-WEST", "invalid_iban"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := validator.Validate(payout{Payee: tt.payee})
			require.NotNil(t, res)
			assert.Equal(t, tt.want, res["Payee"])
		})
	}
}

func TestValidate_Format(t *testing.T) {
	assert.Nil(t, validator.Validate(draft{}))
	assert.Nil(t, validator.Validate(draft{Payee: "DE51 2131 1231 5532 1234 42"}), "format only, checksum ignored")

	res := validator.Validate(draft{Payee: "GB82_WEST"})
	assert.Equal(t, "not_an_iban", res["Payee"])
}

func TestValidate_Country(t *testing.T) {
	assert.Nil(t, validator.Validate(routed{Payee: "NO93 8601 1117 947"}))

	res := validator.Validate(routed{Payee: "DD14 2004"})
	assert.Equal(t, "unsupported_country", res["Payee"])
}

func TestValidate_IBANField(t *testing.T) {
	assert.Nil(t, validator.Validate(typed{Account: iban.MustParse("DE89 3704 0044 0532 0130 00")}))

	res := validator.Validate(typed{Account: iban.MustParse("DE22 8472 162")})
	assert.Equal(t, "invalid_iban", res["Account"])
}

func TestValidate_NestedFieldPath(t *testing.T) {
	res := validator.Validate(nested{})
	require.NotNil(t, res)
	assert.Equal(t, "required", res["Transfer.Payee"])
}

func TestValidate_ErrorType(t *testing.T) {
	res := validator.Validate(123)
	require.NotNil(t, res)
	assert.Equal(t, "validation_failed", res["_error"])
}

func TestCheck(t *testing.T) {
	require.NoError(t, validator.Check(payout{Payee: "GB82WEST12345698765432"}))

	err := validator.Check(payout{Payee: "GB54 AAAA BBBB CCCC DDDD EE", Memo: "way too long memo"})
	require.Error(t, err)

	var er errors.ErrorResponse
	require.True(t, stderrors.As(err, &er))
	assert.Equal(t, errors.Reason("validation_failed"), er.Reason)
	require.Len(t, er.Violations, 2)

	reasons := map[string]string{}
	for _, v := range er.Violations {
		reasons[v.Field] = v.Reason
	}
	assert.Equal(t, "invalid_iban", reasons["Payee"])
	assert.Equal(t, "too_long", reasons["Memo"])
}

func TestInstance(t *testing.T) {
	assert.NotNil(t, validator.Instance())
}
