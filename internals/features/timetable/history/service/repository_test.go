package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"not found", ErrNotFound, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("get: %w", ErrNotFound), http.StatusNotFound},
		{"deadline", context.DeadlineExceeded, http.StatusGatewayTimeout},
		{"unique", &pgconn.PgError{Code: "23505"}, http.StatusConflict},
		{"not null", &pgconn.PgError{Code: "23502"}, http.StatusBadRequest},
		{"check", &pgconn.PgError{Code: "23514"}, http.StatusBadRequest},
		{"cancelled statement", &pgconn.PgError{Code: "57014"}, http.StatusGatewayTimeout},
		{"other pg", &pgconn.PgError{Code: "42P01", Message: "relation missing"}, http.StatusInternalServerError},
		{"plain", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if code, _ := MapError(tt.err); code != tt.code {
				t.Errorf("MapError = %d, want %d", code, tt.code)
			}
		})
	}
}
