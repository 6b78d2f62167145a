package models

import "testing"

func TestSetAndCheckPassword(t *testing.T) {
	u := &User{}
	if err := u.SetPassword("s3cret"); err != nil {
		t.Fatalf("SetPassword: %v", err)
	}
	if u.Password == "s3cret" {
		t.Error("password stored in plain text")
	}
	if !u.CheckPassword("s3cret") {
		t.Error("correct password rejected")
	}
	if u.CheckPassword("wrong") {
		t.Error("wrong password accepted")
	}
}

func TestSanitizeOmitsPassword(t *testing.T) {
	u := &User{Name: "Pat", Email: "pat@example.com", Role: RolePatient, FirstLogin: true}
	u.ID = "id-1"
	u.Password = "hash"

	s := u.Sanitize()
	if s.ID != "id-1" || s.Name != "Pat" || s.Email != "pat@example.com" || s.Role != RolePatient || !s.FirstLogin {
		t.Errorf("Sanitize() = %+v", s)
	}
}

func TestValidRole(t *testing.T) {
	for _, r := range []Role{RoleAdmin, RoleDoctor, RolePatient, RolePharmacist} {
		if !ValidRole(r) {
			t.Errorf("ValidRole(%q) = false", r)
		}
	}
	if ValidRole("nurse") {
		t.Error(`ValidRole("nurse") = true`)
	}
	if ValidRole("") {
		t.Error(`ValidRole("") = true`)
	}
}
