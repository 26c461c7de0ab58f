package db

import "testing"

func TestPostgresConfigDSN(t *testing.T) {
	cfg := PostgresConfig{Host: "db", Port: "5432", User: "edu", Password: "p@ss word", Name: "edulearn"}
	got := cfg.DSN()
	want := "postgres://edu:p%40ss%20word@db:5432/edulearn?sslmode=disable"
	if got != want {
		t.Fatalf("DSN: want=%q got=%q", want, got)
	}

	cfg.SSLMode = "require"
	if got := cfg.DSN(); got != "postgres://edu:p%40ss%20word@db:5432/edulearn?sslmode=require" {
		t.Fatalf("DSN sslmode: got=%q", got)
	}
}
