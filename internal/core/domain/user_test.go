package domain

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestUser_PublicProjection(t *testing.T) {
	u := User{
		ID:           "id-1",
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
		Role:         RoleUser,
	}

	raw, err := json.Marshal(u.Public())
	if err != nil {
		t.Fatalf("marshal public view: %v", err)
	}

	s := string(raw)
	if strings.Contains(s, u.PasswordHash) || strings.Contains(strings.ToLower(s), "password") {
		t.Fatalf("public view leaked password material: %s", s)
	}
	if !strings.Contains(s, `"email":"alice@example.com"`) {
		t.Fatalf("public view missing expected fields: %s", s)
	}
}

func TestUser_StoredRecordHidesHashInJSON(t *testing.T) {
	u := User{ID: "id-1", PasswordHash: "$2a$10$abcdefghijklmnopqrstuv"}

	raw, err := json.Marshal(u)
	if err != nil {
		t.Fatalf("marshal user: %v", err)
	}
	if strings.Contains(string(raw), u.PasswordHash) {
		t.Fatalf("stored record serialized its password hash: %s", raw)
	}
}

func TestValidRole(t *testing.T) {
	if !ValidRole(RoleUser) || !ValidRole(RoleAdmin) {
		t.Fatalf("known roles must validate")
	}
	if ValidRole("superadmin") || ValidRole("") {
		t.Fatalf("unknown roles must not validate")
	}
}
