package openapi_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formstate/pkg/openapi"
	"github.com/goliatone/go-formstate/pkg/schema"
)

const petstoreDoc = `{
	"openapi": "3.0.0",
	"info": {"title": "Signup", "version": "1.0.0"},
	"paths": {
		"/signup": {
			"post": {
				"operationId": "createAccount",
				"requestBody": {
					"content": {
						"application/json": {
							"schema": {
								"type": "object",
								"required": ["email", "plan"],
								"properties": {
									"email": {"type": "string", "format": "email"},
									"full_name": {"type": "string", "minLength": 2, "maxLength": 80},
									"plan": {"type": "string", "enum": ["free", "pro"]},
									"interests": {
										"type": "array",
										"items": {"type": "string", "enum": ["go", "rust"]}
									},
									"newsletter": {"type": "boolean", "default": false},
									"account_id": {"type": "string", "readOnly": true},
									"profile": {"type": "object", "properties": {"bio": {"type": "string"}}}
								}
							}
						}
					}
				},
				"responses": {"201": {"description": "created"}}
			}
		}
	}
}`

func TestFieldsFromDocument(t *testing.T) {
	adapter := openapi.New()
	fields, err := adapter.FieldsFromDocument(context.Background(), []byte(petstoreDoc), "createAccount")
	if err != nil {
		t.Fatalf("FieldsFromDocument: %v", err)
	}

	byID := make(map[string]schema.FieldDefinition, len(fields))
	for _, f := range fields {
		byID[f.ID] = f
	}

	if _, mapped := byID["profile"]; mapped {
		t.Fatal("nested object should be skipped")
	}

	email := byID["email"]
	if email.Kind != schema.KindEmail || !email.Required {
		t.Fatalf("email field = %+v", email)
	}
	if len(email.Validators) == 0 || email.Validators[0].Type != schema.ValidatorEmail {
		t.Fatalf("email validators = %+v", email.Validators)
	}

	name := byID["full_name"]
	if name.Label != "Full Name" {
		t.Fatalf("label = %q, want %q", name.Label, "Full Name")
	}
	wantValidators := []schema.Validator{
		{Type: schema.ValidatorMinLength, Value: "2"},
		{Type: schema.ValidatorMaxLength, Value: "80"},
	}
	if diff := cmp.Diff(wantValidators, name.Validators); diff != "" {
		t.Fatalf("full_name validators (-want +got):\n%s", diff)
	}

	plan := byID["plan"]
	if plan.Kind != schema.KindSelect || len(plan.Options) != 2 {
		t.Fatalf("plan field = %+v", plan)
	}

	interests := byID["interests"]
	if interests.Kind != schema.KindMultiSelect || len(interests.Options) != 2 {
		t.Fatalf("interests field = %+v", interests)
	}

	newsletter := byID["newsletter"]
	if newsletter.Kind != schema.KindBoolean || newsletter.InitialValue != "false" {
		t.Fatalf("newsletter field = %+v", newsletter)
	}

	accountID := byID["account_id"]
	if !accountID.ReadOnly || accountID.IncludeInOutput {
		t.Fatalf("read-only field must be excluded from output: %+v", accountID)
	}
}

func TestFieldsFromDocumentUnknownOperation(t *testing.T) {
	adapter := openapi.New()
	_, err := adapter.FieldsFromDocument(context.Background(), []byte(petstoreDoc), "nope")
	if !errors.Is(err, openapi.ErrOperationNotFound) {
		t.Fatalf("err = %v, want ErrOperationNotFound", err)
	}
}

func TestHumanizeLabel(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"full_name", "Full Name"},
		{"firstName", "First Name"},
		{"plan-tier", "Plan Tier"},
		{"email", "Email"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := openapi.HumanizeLabel(tc.in); got != tc.want {
			t.Fatalf("HumanizeLabel(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
