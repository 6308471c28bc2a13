package remote

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	client := New("http://localhost:8081", 10*time.Second)
	if client == nil {
		t.Fatal("New() returned nil")
	}
	if client.BaseURL != "http://localhost:8081" {
		t.Errorf("New() BaseURL = %v, want http://localhost:8081", client.BaseURL)
	}
	// hex(md5("aaron")), reproduced verbatim for wire compatibility
	if client.authToken != "449a36b6689d841d7d27f31b4b7cc73a" {
		t.Errorf("New() authToken = %v, want 449a36b6689d841d7d27f31b4b7cc73a", client.authToken)
	}
}

func TestClient_FetchRecipes(t *testing.T) {
	since := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		serverResp func(w http.ResponseWriter, r *http.Request)
		wantCount  int
		wantTitles []string
		wantErr    error
	}{
		{
			name: "successful fetch",
			serverResp: func(w http.ResponseWriter, r *http.Request) {
				if got := r.Header.Get("Authorization"); got != "449a36b6689d841d7d27f31b4b7cc73a" {
					t.Errorf("Authorization header = %q", got)
				}
				if got := r.URL.Query().Get("last_updated"); got != "2024-03-01 12:00:00" {
					t.Errorf("last_updated = %q, want 2024-03-01 12:00:00", got)
				}
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{
					"recently_added_count": 1,
					"recipes": [{
						"title": "Pancakes",
						"category": "Breakfast",
						"preparation_time": 20,
						"servings": 4,
						"description": "Fluffy.",
						"ingredients": [{"quantity": 1.5, "measurement": "cups", "ingredient": "flour", "comment_": ""}],
						"instructions": [{"instruction": "Mix well"}],
						"some_future_field": true
					}]
				}`))
			},
			wantCount:  1,
			wantTitles: []string{"Pancakes"},
		},
		{
			name: "empty payload is success",
			serverResp: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"recently_added_count": 0, "recipes": []}`))
			},
			wantCount:  0,
			wantTitles: []string{},
		},
		{
			name: "server error",
			serverResp: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			wantErr: ErrProtocol,
		},
		{
			name: "malformed body",
			serverResp: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"recipes": [`))
			},
			wantErr: ErrDecode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(tt.serverResp))
			defer server.Close()

			client := New(server.URL, 5*time.Second)
			payload, err := client.FetchRecipes(context.Background(), since)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("FetchRecipes() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("FetchRecipes() unexpected error: %v", err)
			}

			if payload.RecentlyAddedCount != tt.wantCount {
				t.Errorf("RecentlyAddedCount = %d, want %d", payload.RecentlyAddedCount, tt.wantCount)
			}
			if len(payload.Recipes) != len(tt.wantTitles) {
				t.Fatalf("Recipes length = %d, want %d", len(payload.Recipes), len(tt.wantTitles))
			}
			for i, title := range tt.wantTitles {
				if payload.Recipes[i].Title != title {
					t.Errorf("Recipes[%d].Title = %q, want %q", i, payload.Recipes[i].Title, title)
				}
			}
		})
	}
}

func TestClient_FetchRecipes_DecodesNestedRecords(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"recently_added_count": 1,
			"recipes": [{
				"title": "Soup",
				"category": "Starter",
				"ingredients": [
					{"quantity": 2, "measurement": "pcs", "ingredient": "onion", "comment_": "diced"},
					{"quantity": 0.5, "measurement": "l", "ingredient": "stock", "comment_": ""}
				],
				"instructions": [{"instruction": "Chop."}, {"instruction": "Simmer."}]
			}]
		}`))
	}))
	defer server.Close()

	client := New(server.URL, 5*time.Second)
	payload, err := client.FetchRecipes(context.Background(), time.Unix(0, 0))
	if err != nil {
		t.Fatalf("FetchRecipes() error = %v", err)
	}

	rec := payload.Recipes[0]
	// Absent fields default to zero values
	if rec.Servings != 0 || rec.PreparationTime != 0 || rec.Description != "" {
		t.Errorf("absent fields not zero-valued: %+v", rec)
	}
	if len(rec.Ingredients) != 2 || rec.Ingredients[0].Comment != "diced" || rec.Ingredients[1].Ingredient != "stock" {
		t.Errorf("ingredients decoded wrong: %+v", rec.Ingredients)
	}
	if len(rec.Instructions) != 2 || rec.Instructions[1].Instruction != "Simmer." {
		t.Errorf("instructions decoded wrong: %+v", rec.Instructions)
	}
}

func TestClient_FetchCategories(t *testing.T) {
	tests := []struct {
		name       string
		serverResp func(w http.ResponseWriter, r *http.Request)
		wantNames  []string
		wantErr    error
	}{
		{
			name: "successful fetch",
			serverResp: func(w http.ResponseWriter, r *http.Request) {
				if got := r.Header.Get("Authorization"); got != "449a36b6689d841d7d27f31b4b7cc73a" {
					t.Errorf("Authorization header = %q", got)
				}
				_, _ = w.Write([]byte(`[{"id": 1, "name": "Main"}, {"id": 2, "name": "Dessert"}]`))
			},
			wantNames: []string{"Main", "Dessert"},
		},
		{
			name: "empty list is success",
			serverResp: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`[]`))
			},
			wantNames: []string{},
		},
		{
			name: "unauthorized",
			serverResp: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
			},
			wantErr: ErrProtocol,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(tt.serverResp))
			defer server.Close()

			client := New(server.URL, 5*time.Second)
			categories, err := client.FetchCategories(context.Background())

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("FetchCategories() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("FetchCategories() unexpected error: %v", err)
			}
			if len(categories) != len(tt.wantNames) {
				t.Fatalf("FetchCategories() returned %d, want %d", len(categories), len(tt.wantNames))
			}
			for i, name := range tt.wantNames {
				if categories[i].Name != name {
					t.Errorf("categories[%d].Name = %q, want %q", i, categories[i].Name, name)
				}
			}
		})
	}
}

func TestClient_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // Refuse all connections

	client := New(server.URL, 1*time.Second)
	_, err := client.FetchCategories(context.Background())
	if !errors.Is(err, ErrNetwork) {
		t.Errorf("FetchCategories() against closed server error = %v, want ErrNetwork", err)
	}
}

func TestStatusText(t *testing.T) {
	tests := []struct {
		code int
		want string
	}{
		{200, "Ok"},
		{400, "Bad Request"},
		{401, "Unauthorized Access"},
		{500, "Internal Server Error"},
		{418, "Status Code Unknown: 418"},
	}

	for _, tt := range tests {
		if got := StatusText(tt.code); got != tt.want {
			t.Errorf("StatusText(%d) = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestStatusError_Error(t *testing.T) {
	err := &StatusError{Code: 500}
	if got := err.Error(); got != "500. Internal Server Error" {
		t.Errorf("StatusError.Error() = %q, want %q", got, "500. Internal Server Error")
	}
	if !errors.Is(err, ErrProtocol) {
		t.Error("StatusError must match ErrProtocol")
	}
}
