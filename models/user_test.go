package models

import (
	"encoding/json"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestPublicProjectionOmitsSensitiveFields(t *testing.T) {
	u := User{
		ID:           primitive.NewObjectID(),
		Email:        "a@example.com",
		PasswordHash: "hash",
		FirstName:    "Ada",
		Genre:        "female",
	}

	pub := u.Public()
	if pub.FirstName != "Ada" || pub.Genre != "female" {
		t.Fatalf("public view lost profile fields: %+v", pub)
	}

	raw, err := json.Marshal(pub)
	if err != nil {
		t.Fatalf("marshal public view: %v", err)
	}
	for _, field := range []string{"email", "passwordHash"} {
		if strings.Contains(string(raw), field) {
			t.Fatalf("public view leaks %q: %s", field, raw)
		}
	}
}

func TestUserJSONNeverCarriesCredential(t *testing.T) {
	u := User{
		ID:           primitive.NewObjectID(),
		Email:        "a@example.com",
		PasswordHash: "secret-hash",
	}

	raw, err := json.Marshal(u)
	if err != nil {
		t.Fatalf("marshal user: %v", err)
	}
	if strings.Contains(string(raw), "secret-hash") || strings.Contains(string(raw), "passwordHash") {
		t.Fatalf("serialized user leaks credential: %s", raw)
	}
}
