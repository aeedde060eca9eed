package mongo

import "testing"

func TestDatabaseName(t *testing.T) {
	tests := []struct {
		name    string
		uri     string
		want    string
		wantErr bool
	}{
		{"named database", "mongodb://mongodb:27017/hustleBust", "hustleBust", false},
		{"other database", "mongodb://localhost:27017/rentals?retryWrites=true", "rentals", false},
		{"no database", "mongodb://localhost:27017", DefaultDatabase, false},
		{"trailing slash", "mongodb://localhost:27017/", DefaultDatabase, false},
		{"bad scheme", "postgres://localhost/db", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DatabaseName(tt.uri)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("DatabaseName(%q) = %q, want %q", tt.uri, got, tt.want)
			}
		})
	}
}
