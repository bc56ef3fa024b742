package domain

import (
	"encoding/json"
	"testing"
	"time"
)

func TestTimestamp_Unmarshal(t *testing.T) {
	cases := []struct {
		in   string
		want time.Time
	}{
		{`"2024-05-01T10:00:00"`, time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)},
		{`"2024-05-01T10:00:00.250000"`, time.Date(2024, 5, 1, 10, 0, 0, 250_000_000, time.UTC)},
		{`"2024-05-01T10:00:00+08:00"`, time.Date(2024, 5, 1, 2, 0, 0, 0, time.UTC)},
		{`"2024-05-01"`, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)},
		{`null`, time.Time{}},
	}
	for _, tc := range cases {
		var ts Timestamp
		if err := json.Unmarshal([]byte(tc.in), &ts); err != nil {
			t.Fatalf("unmarshal %s: %v", tc.in, err)
		}
		if !ts.Equal(tc.want) {
			t.Fatalf("unmarshal %s: got %v, want %v", tc.in, ts.Time, tc.want)
		}
	}
}

func TestTimestamp_UnmarshalRejectsGarbage(t *testing.T) {
	var ts Timestamp
	if err := json.Unmarshal([]byte(`"yesterday"`), &ts); err == nil {
		t.Fatalf("expected error for unrecognized format")
	}
	if err := json.Unmarshal([]byte(`12`), &ts); err == nil {
		t.Fatalf("expected error for non-string")
	}
}

func TestUser_DecodesBackendPayload(t *testing.T) {
	body := `{"id":1,"username":"admin","name":"Admin","role":"admin","initial_password":null,"password_changed":false,"created_at":"2024-05-01T10:00:00"}`
	var u User
	if err := json.Unmarshal([]byte(body), &u); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !u.Role.IsAdmin() || u.CreatedAt.Year() != 2024 {
		t.Fatalf("unexpected user: %+v", u)
	}
}

func TestRolePredicates(t *testing.T) {
	cases := []struct {
		role                        Role
		admin, ambassador, engineer bool
	}{
		{RoleAdmin, true, false, false},
		{RoleCustomerAmbassador, false, true, false},
		{RoleProjectEngineer, false, false, true},
		{RoleMaintenanceEngineer, false, false, true},
		{"", false, false, false},
		{"viewer", false, false, false},
	}
	for _, tc := range cases {
		if tc.role.IsAdmin() != tc.admin || tc.role.IsCustomerAmbassador() != tc.ambassador || tc.role.IsEngineer() != tc.engineer {
			t.Fatalf("predicates wrong for role %q", tc.role)
		}
	}
}

func TestSession_IsAuthenticated(t *testing.T) {
	user := &User{ID: 1, Role: RoleAdmin}
	if (Session{Token: "t"}).IsAuthenticated() {
		t.Fatalf("token without user must not be authenticated")
	}
	if (Session{User: user}).IsAuthenticated() {
		t.Fatalf("user without token must not be authenticated")
	}
	s := Session{Token: "t", User: user}
	if !s.IsAuthenticated() || !s.IsAdmin() || s.IsEngineer() {
		t.Fatalf("unexpected predicates for %+v", s)
	}
	if (Session{}).IsAdmin() {
		t.Fatalf("empty session must have no role")
	}
}

func TestTimestamp_UnmarshalParam(t *testing.T) {
	var ts Timestamp
	if err := ts.UnmarshalParam("2024-05-01 09:30:00"); err != nil {
		t.Fatalf("unmarshal param: %v", err)
	}
	if want := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC); !ts.Equal(want) {
		t.Fatalf("got %v, want %v", ts.Time, want)
	}
	if err := ts.UnmarshalParam("soon"); err == nil {
		t.Fatalf("expected error for unrecognized format")
	}
}
