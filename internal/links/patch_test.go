package links

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestOptional_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantSet  bool
		wantNull bool
		wantVal  string
	}{
		{"absent", `{}`, false, false, ""},
		{"null", `{"tag":null}`, true, true, ""},
		{"empty string", `{"tag":""}`, true, false, ""},
		{"value", `{"tag":"New"}`, true, false, "New"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v struct {
				Tag Optional[string] `json:"tag"`
			}
			if err := json.Unmarshal([]byte(tt.body), &v); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			if v.Tag.Set != tt.wantSet || v.Tag.Null != tt.wantNull || v.Tag.Value != tt.wantVal {
				t.Errorf("got %+v, want set=%v null=%v value=%q", v.Tag, tt.wantSet, tt.wantNull, tt.wantVal)
			}
		})
	}
}

func TestOptional_UnmarshalJSON_TypeMismatch(t *testing.T) {
	var v struct {
		Order Optional[int] `json:"order"`
	}
	if err := json.Unmarshal([]byte(`{"order":"first"}`), &v); err == nil {
		t.Fatal("expected error for string order")
	}
}

func TestPatch_Decode(t *testing.T) {
	var req HTTPUpdateLinkRequest
	body := `{"id":"abc","name":"Renamed","order":0,"tag":null}`
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if req.ID != "abc" {
		t.Errorf("ID = %q, want abc", req.ID)
	}
	if !req.Name.Set || req.Name.Value != "Renamed" {
		t.Errorf("Name = %+v", req.Name)
	}
	if !req.Order.Set || req.Order.Value != 0 {
		t.Errorf("Order = %+v, want explicit 0", req.Order)
	}
	if req.URL.Set || req.Description.Set {
		t.Error("absent keys must not be set")
	}
	if !req.ClearsTag() {
		t.Error("null tag must clear the tag")
	}
}

func TestPatch_ClearsTag(t *testing.T) {
	tests := []struct {
		name string
		tag  Optional[string]
		want bool
	}{
		{"absent", Optional[string]{}, false},
		{"null", Null[string](), true},
		{"empty", Some(""), true},
		{"value", Some("New"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := (Patch{Tag: tt.tag}).ClearsTag(); got != tt.want {
				t.Errorf("ClearsTag() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPatch_Validate(t *testing.T) {
	tests := []struct {
		name        string
		patch       Patch
		errContains string
	}{
		{"empty patch", Patch{}, ""},
		{"empty strings allowed", Patch{Name: Some(""), URL: Some("")}, ""},
		{"null tag allowed", Patch{Tag: Null[string]()}, ""},
		{"null name", Patch{Name: Null[string]()}, "name cannot be null"},
		{"null url", Patch{URL: Null[string]()}, "url cannot be null"},
		{"null description", Patch{Description: Null[string]()}, "description cannot be null"},
		{"null order", Patch{Order: Null[int]()}, "order cannot be null"},
		{"negative order", Patch{Order: Some(-3)}, ""},
		{"order out of range", Patch{Order: Some(1 << 40)}, "out of range"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.patch.Validate()
			if tt.errContains == "" {
				if err != nil {
					t.Errorf("Validate() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.errContains) {
				t.Errorf("Validate() error = %v, want containing %q", err, tt.errContains)
			}
		})
	}
}
