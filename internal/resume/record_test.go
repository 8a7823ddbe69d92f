package resume

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestStringListAcceptsScalarAndSequence(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want StringList
	}{
		{"sequence", `["Go","SQL"]`, StringList{"Go", "SQL"}},
		{"scalar", `"Go, SQL"`, StringList{"Go, SQL"}},
		{"mixed elements", `["Go", 2024]`, StringList{"Go", "2024"}},
		{"empty", `[]`, StringList{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var got StringList
			if err := json.Unmarshal([]byte(tc.in), &got); err != nil {
				t.Fatalf("unmarshal %s: %v", tc.in, err)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("got %#v, want %#v", got, tc.want)
			}
		})
	}
}

func TestStringListRejectsObject(t *testing.T) {
	var got StringList
	if err := json.Unmarshal([]byte(`{"a":1}`), &got); err == nil {
		t.Fatal("expected error for object value")
	}
}

func TestExperienceUnion(t *testing.T) {
	raw := `[
		{"position":"Developer","company":"Tech Corp","start_date":"2020-01","achievements":["Shipped v1"]},
		"Various freelance work"
	]`
	var entries []Experience
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Job == nil || entries[0].Job.Position != "Developer" {
		t.Fatalf("expected structured first entry, got %#v", entries[0])
	}
	if entries[0].Job.EndDate != "" {
		t.Fatalf("end_date should stay empty until render time, got %q", entries[0].Job.EndDate)
	}
	if entries[1].Freeform != "Various freelance work" {
		t.Fatalf("expected freeform second entry, got %#v", entries[1])
	}
}

func TestExperienceListAcceptsBareString(t *testing.T) {
	var rec Record
	raw := `{"name":"Jane","experience":"Various freelance work"}`
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(rec.Experience) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(rec.Experience))
	}
	if rec.Experience[0].Job != nil || rec.Experience[0].Freeform != "Various freelance work" {
		t.Fatalf("expected single freeform entry, got %#v", rec.Experience[0])
	}
}

func TestEducationListAcceptsBareString(t *testing.T) {
	var rec Record
	raw := `{"name":"Jane","education":"Self taught since 2015"}`
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(rec.Education) != 1 || rec.Education[0].Freeform != "Self taught since 2015" {
		t.Fatalf("expected single freeform entry, got %#v", rec.Education)
	}
}

func TestExperienceListRejectsObject(t *testing.T) {
	var l ExperienceList
	if err := json.Unmarshal([]byte(`{"position":"Dev"}`), &l); err == nil {
		t.Fatal("expected error for object value")
	}
}

func TestEducationUnion(t *testing.T) {
	var e Education
	if err := json.Unmarshal([]byte(`{"degree":"B.S.","institution":"State University"}`), &e); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if e.Study == nil || e.Study.Institution != "State University" {
		t.Fatalf("expected structured entry, got %#v", e)
	}
}

func TestRecordRoundTrip(t *testing.T) {
	original := Record{
		Name:  "Jane Doe",
		Title: "Engineer",
		Contact: &Contact{
			Email: "jane@example.com",
			Phone: "+1-555-555-5555",
		},
		Summary: "Builds reliable backends.",
		Skills:  StringList{"Go", "SQL"},
		Experience: ExperienceList{
			{Job: &Job{
				Position:     "Developer",
				Company:      "Tech Corp",
				StartDate:    "2020-01",
				EndDate:      "Present",
				Description:  "Led development of cloud services.",
				Achievements: StringList{"Cut latency 40%"},
			}},
			{Freeform: "Open source maintenance"},
		},
		Education: EducationList{
			{Study: &Study{Degree: "B.S. in Computer Science", Institution: "State University"}},
		},
		Certifications: StringList{"AWS Certified Developer"},
	}

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded Record
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !reflect.DeepEqual(original, decoded) {
		t.Fatalf("round trip mismatch:\noriginal: %#v\ndecoded:  %#v", original, decoded)
	}
}
