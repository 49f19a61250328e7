package roles

import (
	"reflect"
	"testing"
)

func TestNormalizeStripsCodeFence(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{
			name: "json fence",
			raw:  "```json\n[\"Backend Developer\", \"Data Engineer\"]\n```",
			want: []string{"Backend Developer", "Data Engineer"},
		},
		{
			name: "bare fence",
			raw:  "```\n[\"Backend Developer\"]\n```",
			want: []string{"Backend Developer"},
		},
		{
			name: "uppercase fence tag",
			raw:  "```JSON\n[\"Data Analyst\"]\n```",
			want: []string{"Data Analyst"},
		},
		{
			name: "no fence",
			raw:  `["Backend Developer", "Data Engineer"]`,
			want: []string{"Backend Developer", "Data Engineer"},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out := Normalize(tc.raw)
			if out.Kind != KindRoles {
				t.Fatalf("kind = %v, want roles (raw=%q)", out.Kind, out.Raw)
			}
			if got := out.Titles(); !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("titles = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestNormalizeKeyFallbacks(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"job_roles", `{"job_roles": ["A", "B"]}`, []string{"A", "B"}},
		{"suggested_roles", `{"suggested_roles": ["C"]}`, []string{"C"}},
		{"recommended_roles", `{"recommended_roles": ["D"]}`, []string{"D"}},
		{
			"job_roles wins over later keys",
			`{"suggested_roles": ["X"], "job_roles": ["A"]}`,
			[]string{"A"},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out := Normalize(tc.raw)
			if out.Kind != KindRoles {
				t.Fatalf("kind = %v, want roles", out.Kind)
			}
			if got := out.Titles(); !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("titles = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestNormalizeObjectWithoutKnownKeys(t *testing.T) {
	out := Normalize(`{"roles": ["A"], "note": "unexpected shape"}`)
	if out.Kind != KindRoles {
		t.Fatalf("kind = %v, want roles", out.Kind)
	}
	if got := out.Titles(); len(got) != 0 {
		t.Fatalf("titles = %v, want empty", got)
	}
}

func TestNormalizeUnparseableReturnsRaw(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"plain prose", "Here are some roles you might like."},
		{"truncated json", `["Backend Developer",`},
		{"scalar", `"Backend Developer"`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out := Normalize(tc.raw)
			if out.Kind != KindRaw {
				t.Fatalf("kind = %v, want raw", out.Kind)
			}
			if out.Raw != tc.raw {
				t.Fatalf("raw = %q, want %q", out.Raw, tc.raw)
			}
		})
	}
}

func TestNormalizeObjectRoles(t *testing.T) {
	out := Normalize(`{"job_roles": [{"title": "Data Engineer", "level": "senior"}, "Backend Developer"]}`)
	if out.Kind != KindRoles {
		t.Fatalf("kind = %v, want roles", out.Kind)
	}
	want := []string{"Data Engineer", "Backend Developer"}
	if got := out.Titles(); !reflect.DeepEqual(got, want) {
		t.Fatalf("titles = %v, want %v", got, want)
	}
	if out.Roles[0].Meta["level"] != "senior" {
		t.Fatalf("meta = %v, want level=senior", out.Roles[0].Meta)
	}
}
