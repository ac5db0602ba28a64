package transport

import (
	"testing"

	"oratoria_backend/platform/validator"
)

func newValidator(t *testing.T) *validator.Validator {
	t.Helper()
	val := validator.New()
	if err := RegisterPhoneRule(val); err != nil {
		t.Fatalf("failed to register phone rule: %v", err)
	}
	return val
}

func validRequest() SubmitLeadRequest {
	return SubmitLeadRequest{
		Name:  "Aziza Karimova",
		Phone: "+998901234567",
		Job:   "Sales manager",
	}
}

func TestSubmitLeadRequestValid(t *testing.T) {
	val := newValidator(t)
	req := validRequest()
	req.Normalize()
	if err := val.Struct(req); err != nil {
		t.Fatalf("expected valid request, got %v", err)
	}
}

func TestPhoneFormat(t *testing.T) {
	val := newValidator(t)

	cases := []struct {
		phone string
		ok    bool
	}{
		{"+998901234567", true},
		{"+998 90 123 45 67", true},  // compacted by Normalize
		{"+99890123456", false},      // one digit short
		{"+9989012345678", false},    // one digit long
		{"90 123 45 67", false},      // national format, no country code
		{"998901234567", false},      // missing plus
		{"+79261234567", false},      // wrong country code
		{"+998abc234567", false},     // non-digits
		{"", false},
	}

	for _, tc := range cases {
		req := validRequest()
		req.Phone = tc.phone
		req.Normalize()
		err := val.Struct(req)
		if tc.ok && err != nil {
			t.Errorf("phone %q: expected valid, got %v", tc.phone, err)
		}
		if !tc.ok && err == nil {
			t.Errorf("phone %q: expected rejection", tc.phone)
		}
	}
}

func TestSingleCharacterNameAndJobAccepted(t *testing.T) {
	val := newValidator(t)

	req := SubmitLeadRequest{Name: "A", Phone: "+998901234567", Job: "IT"}
	req.Normalize()
	if err := val.Struct(req); err != nil {
		t.Fatalf("expected short name and job to be valid, got %v", err)
	}

	req = SubmitLeadRequest{Name: "A", Phone: "+998901234567", Job: "X"}
	req.Normalize()
	if err := val.Struct(req); err != nil {
		t.Fatalf("expected one-character job to be valid, got %v", err)
	}
}

func TestFieldErrorsReportEveryInvalidField(t *testing.T) {
	val := newValidator(t)

	req := SubmitLeadRequest{Name: "   ", Phone: "1234", Job: ""}
	req.Normalize()

	err := val.Struct(req)
	if err == nil {
		t.Fatal("expected validation failure")
	}

	fields := make(map[string]bool)
	for _, fe := range FieldErrors(err) {
		fields[fe.Field] = true
	}

	for _, want := range []string{"name", "phone", "job"} {
		if !fields[want] {
			t.Errorf("expected a field error for %q, got %v", want, fields)
		}
	}
}

func TestNormalizeTrimsAndCompactsPhone(t *testing.T) {
	req := SubmitLeadRequest{
		Name:  "  Aziza Karimova  ",
		Phone: " +998 90 123 45 67 ",
		Job:   " Sales manager ",
	}
	req.Normalize()

	if req.Name != "Aziza Karimova" {
		t.Fatalf("name not trimmed: %q", req.Name)
	}
	if req.Phone != "+998901234567" {
		t.Fatalf("phone not compacted: %q", req.Phone)
	}
	if req.Job != "Sales manager" {
		t.Fatalf("job not trimmed: %q", req.Job)
	}
}

func TestTrackingCollectsProvidedFieldsOnly(t *testing.T) {
	req := validRequest()
	req.UTMSource = "instagram"
	req.Referrer = "https://example.uz/"

	tracking := req.Tracking()
	if len(tracking) != 2 {
		t.Fatalf("expected 2 tracking entries, got %d", len(tracking))
	}
	if tracking["utm_source"] != "instagram" {
		t.Fatalf("unexpected utm_source: %q", tracking["utm_source"])
	}
	if tracking["referrer"] != "https://example.uz/" {
		t.Fatalf("unexpected referrer: %q", tracking["referrer"])
	}
	if _, ok := tracking["utm_medium"]; ok {
		t.Fatal("did not expect utm_medium")
	}
}
