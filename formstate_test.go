package formstate_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	formstate "github.com/goliatone/go-formstate"
)

const signupTemplate = `{
	"id": "signup",
	"title": "Signup",
	"fields": [
		{
			"id": "email",
			"label": "Email",
			"kind": "email",
			"required": true,
			"insert": true,
			"validators": [{"type": "email"}]
		},
		{
			"id": "name",
			"label": "Name",
			"kind": "text",
			"initialValue": "Ada",
			"insert": true
		}
	]
}`

func TestNewFromTemplateEndToEnd(t *testing.T) {
	var received map[string]string
	form, err := formstate.NewFromTemplate([]byte(signupTemplate),
		formstate.WithSubmitHandler(func(ctx context.Context, values map[string]string) error {
			received = values
			return nil
		}),
	)
	if err != nil {
		t.Fatalf("NewFromTemplate: %v", err)
	}
	t.Cleanup(form.Close)

	if form.State().IsValid() {
		t.Fatal("form with an empty required field must start invalid")
	}

	if err := form.UpdateFieldValue("email", "ada@example.com"); err != nil {
		t.Fatalf("UpdateFieldValue: %v", err)
	}

	ok, err := form.Submit(context.Background())
	if err != nil || !ok {
		t.Fatalf("Submit = %v, %v; want success", ok, err)
	}

	want := map[string]string{"email": "ada@example.com", "name": "Ada"}
	if diff := cmp.Diff(want, received); diff != "" {
		t.Fatalf("submitted values (-want +got):\n%s", diff)
	}
}

func TestNewFromTemplateRejectsBadDocuments(t *testing.T) {
	cases := []struct {
		name string
		doc  string
	}{
		{"empty document", ""},
		{"not json or yaml", "{{{"},
		{"missing template id", `{"fields": [{"id": "a", "kind": "text"}]}`},
		{"duplicate field id", `{"id": "t", "fields": [{"id": "a", "kind": "text"}, {"id": "a", "kind": "text"}]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := formstate.NewFromTemplate([]byte(tc.doc)); err == nil {
				t.Fatal("NewFromTemplate accepted a malformed document")
			}
		})
	}
}
