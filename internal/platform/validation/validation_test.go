package validation

import (
	"errors"
	"strings"
	"testing"

	cardhttp "cardhub/contexts/card-directory/card-service/transport/http"
	userhttp "cardhub/contexts/identity-access/user-service/transport/http"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testAddress struct {
	City        string `json:"city" validate:"required,min=2,max=256"`
	HouseNumber int    `json:"houseNumber" validate:"required,min=1"`
}

type testSchema struct {
	Email    string       `json:"email" validate:"required,email"`
	Password string       `json:"password" validate:"required,min=8" trim:"-"`
	Phone    string       `json:"phone,omitempty" validate:"omitempty,phone"`
	Web      string       `json:"web,omitempty" validate:"omitempty,url"`
	Address  *testAddress `json:"address,omitempty" validate:"omitempty"`
}

func (testSchema) SchemaID() string { return "test_schema" }

func TestValidateAcceptsValidPayload(t *testing.T) {
	payload := testSchema{
		Email:    "a@b.com",
		Password: "longpass1",
		Phone:    "050-1234567",
		Web:      "https://example.com",
		Address:  &testAddress{City: "Haifa", HouseNumber: 3},
	}
	got, err := Validate(payload)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestValidateReportsFirstViolationOnly(t *testing.T) {
	_, err := Validate(testSchema{Email: "not-an-email", Password: "short"})
	require.Error(t, err)

	var vErr *Error
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "test_schema", vErr.Schema)
	assert.Equal(t, "email", vErr.Field)
	assert.Equal(t, "email", vErr.Rule)
	assert.Equal(t, `"email" must be a valid email`, vErr.Message)
}

func TestValidatePasswordMinimumLength(t *testing.T) {
	_, err := Validate(testSchema{Email: "a@b.com", Password: "short"})
	var vErr *Error
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "password", vErr.Field)
	assert.Equal(t, `"password" length must be at least 8 characters long`, vErr.Message)
}

func TestValidatePhonePattern(t *testing.T) {
	_, err := Validate(testSchema{Email: "a@b.com", Password: "longpass1", Phone: "12345"})
	var vErr *Error
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "phone", vErr.Field)
	assert.Equal(t, "phone", vErr.Rule)
}

func TestValidateNestedAddressPath(t *testing.T) {
	_, err := Validate(testSchema{
		Email:    "a@b.com",
		Password: "longpass1",
		Address:  &testAddress{City: "Haifa"},
	})
	var vErr *Error
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "address.houseNumber", vErr.Field)
	assert.Equal(t, `"address.houseNumber" is required`, vErr.Message)
}

func TestDecodeRejectsUnknownFields(t *testing.T) {
	_, err := Decode[testSchema](strings.NewReader(`{"email":"a@b.com","password":"longpass1","isAdmin":true}`))
	var vErr *Error
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "unknown", vErr.Rule)
	assert.Equal(t, "isAdmin", vErr.Field)
}

func TestDecodeRejectsWrongTypes(t *testing.T) {
	_, err := Decode[testSchema](strings.NewReader(`{"email":"a@b.com","password":"longpass1","address":{"city":"Haifa","houseNumber":"three"}}`))
	var vErr *Error
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "type", vErr.Rule)
	assert.Contains(t, vErr.Message, "must be a number")
}

func TestDecodeRejectsEmptyBody(t *testing.T) {
	_, err := Decode[testSchema](strings.NewReader(""))
	var vErr *Error
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "request body is required", vErr.Message)
}

func TestDecodeValidatesAfterParsing(t *testing.T) {
	payload, err := Decode[testSchema](strings.NewReader(`{"email":"a@b.com","password":"longpass1"}`))
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", payload.Email)
}

func TestPhonePattern(t *testing.T) {
	for _, phone := range []string{"050-1234567", "0501234567", "03 123 4567", "03-123 4567"} {
		assert.True(t, PhonePattern.MatchString(phone), phone)
	}
	for _, phone := range []string{"", "1234567890", "050-12345", "phone"} {
		assert.False(t, PhonePattern.MatchString(phone), phone)
	}
}

func TestParseSkipsRuleCheck(t *testing.T) {
	payload, err := Parse[testSchema](strings.NewReader(`{"email":"nope"}`))
	require.NoError(t, err)
	assert.Equal(t, "nope", payload.Email)
}

func TestValidateTrimsStringsExceptOptOut(t *testing.T) {
	got, err := Validate(testSchema{Email: "  a@b.com ", Password: " longpass1 "})
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", got.Email)
	assert.Equal(t, " longpass1 ", got.Password)
}

func TestValidateTrimsNestedCopy(t *testing.T) {
	address := &testAddress{City: " Haifa ", HouseNumber: 3}
	got, err := Validate(testSchema{Email: "a@b.com", Password: "longpass1", Address: address})
	require.NoError(t, err)
	assert.Equal(t, "Haifa", got.Address.City)
	assert.Equal(t, " Haifa ", address.City)
}

func TestValidateRejectsWhitespaceOnlyRequired(t *testing.T) {
	_, err := Validate(testSchema{Email: "a@b.com", Password: "longpass1", Address: &testAddress{City: "   ", HouseNumber: 3}})
	var vErr *Error
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "address.city", vErr.Field)
	assert.Equal(t, "required", vErr.Rule)
}

func validCard() cardhttp.CreateCardRequest {
	return cardhttp.CreateCardRequest{
		Title:       "Cohen Plumbing",
		Subtitle:    "Pipes and more",
		Description: "Family business since 1985",
		Phone:       "0501234567",
		Email:       "info@cohen.example.com",
		Address: &cardhttp.AddressDTO{
			Country:     "Israel",
			City:        "Haifa",
			Street:      "Herzl",
			HouseNumber: 1,
		},
	}
}

func TestCardSchemaRules(t *testing.T) {
	cases := []struct {
		name      string
		mutate    func(*cardhttp.CreateCardRequest)
		wantField string
		wantRule  string
	}{
		{name: "valid", mutate: func(*cardhttp.CreateCardRequest) {}},
		{name: "short description", mutate: func(r *cardhttp.CreateCardRequest) { r.Description = "abc" }, wantField: "description", wantRule: "min"},
		{name: "ten char description", mutate: func(r *cardhttp.CreateCardRequest) { r.Description = "0123456789" }},
		{name: "padded short description", mutate: func(r *cardhttp.CreateCardRequest) { r.Description = "   short   " }, wantField: "description", wantRule: "min"},
		{name: "subtitle omitted", mutate: func(r *cardhttp.CreateCardRequest) { r.Subtitle = "" }},
		{name: "one char subtitle", mutate: func(r *cardhttp.CreateCardRequest) { r.Subtitle = "a" }, wantField: "subtitle", wantRule: "min"},
		{name: "international digits phone", mutate: func(r *cardhttp.CreateCardRequest) { r.Phone = "972501234567" }},
		{name: "fifteen digit phone", mutate: func(r *cardhttp.CreateCardRequest) { r.Phone = "123456789012345" }},
		{name: "dashed phone", mutate: func(r *cardhttp.CreateCardRequest) { r.Phone = "050-1234567" }, wantField: "phone", wantRule: "card_phone"},
		{name: "nine digit phone", mutate: func(r *cardhttp.CreateCardRequest) { r.Phone = "123456789" }, wantField: "phone", wantRule: "card_phone"},
		{name: "sixteen digit phone", mutate: func(r *cardhttp.CreateCardRequest) { r.Phone = "1234567890123456" }, wantField: "phone", wantRule: "card_phone"},
		{name: "blank title", mutate: func(r *cardhttp.CreateCardRequest) { r.Title = "   " }, wantField: "title", wantRule: "required"},
		{name: "blank state defaults later", mutate: func(r *cardhttp.CreateCardRequest) { r.Address.State = "  " }},
		{name: "one char state", mutate: func(r *cardhttp.CreateCardRequest) { r.Address.State = "a" }, wantField: "address.state", wantRule: "min"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validCard()
			tc.mutate(&req)
			_, err := Validate(req)
			if tc.wantField == "" {
				require.NoError(t, err)
				return
			}
			var vErr *Error
			require.True(t, errors.As(err, &vErr), "got %v", err)
			assert.Equal(t, tc.wantField, vErr.Field)
			assert.Equal(t, tc.wantRule, vErr.Rule)
		})
	}
}

func TestRegisterSchemaRules(t *testing.T) {
	cases := []struct {
		name      string
		req       userhttp.RegisterUserRequest
		wantField string
		wantRule  string
	}{
		{name: "valid", req: userhttp.RegisterUserRequest{Email: "a@b.com", Password: "longpass1", Phone: "050-1234567"}},
		{name: "missing phone", req: userhttp.RegisterUserRequest{Email: "a@b.com", Password: "longpass1"}, wantField: "phone", wantRule: "required"},
		{name: "blank phone", req: userhttp.RegisterUserRequest{Email: "a@b.com", Password: "longpass1", Phone: "  "}, wantField: "phone", wantRule: "required"},
		{name: "card style phone", req: userhttp.RegisterUserRequest{Email: "a@b.com", Password: "longpass1", Phone: "972501234567"}, wantField: "phone", wantRule: "phone"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Validate(tc.req)
			if tc.wantField == "" {
				require.NoError(t, err)
				return
			}
			var vErr *Error
			require.True(t, errors.As(err, &vErr), "got %v", err)
			assert.Equal(t, tc.wantField, vErr.Field)
			assert.Equal(t, tc.wantRule, vErr.Rule)
		})
	}
}
