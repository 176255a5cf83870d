package models

import (
	"encoding/json"
	"math"
	"reflect"
	"testing"
)

func TestSubjectIDKeepsForm(t *testing.T) {
	cases := []string{`123`, `"abc-7"`, `"42"`, `4.5e3`}
	for _, in := range cases {
		var id SubjectID
		if err := json.Unmarshal([]byte(in), &id); err != nil {
			t.Fatalf("%s: %v", in, err)
		}
		out, err := json.Marshal(id)
		if err != nil {
			t.Fatal(err)
		}
		if string(out) != in {
			t.Fatalf("%s round-tripped as %s", in, out)
		}
	}
}

func TestNumberNull(t *testing.T) {
	var n Number
	if err := json.Unmarshal([]byte(`null`), &n); err != nil || n.Valid {
		t.Fatalf("null decoded as %+v, %v", n, err)
	}
	if err := json.Unmarshal([]byte(`"n/a"`), &n); err != nil || n.Valid {
		t.Fatalf("string decoded as %+v, %v", n, err)
	}
	if err := json.Unmarshal([]byte(`-12.5`), &n); err != nil || n != Num(-12.5) {
		t.Fatalf("number decoded as %+v, %v", n, err)
	}

	out, _ := json.Marshal([]Number{Num(1.5), Missing})
	if string(out) != `[1.5,null]` {
		t.Fatalf("encoded %s", out)
	}
}

func TestNumberFrom(t *testing.T) {
	cases := []struct {
		in   interface{}
		want Number
	}{
		{3.5, Num(3.5)},
		{int64(7), Num(7)},
		{json.Number("12"), Num(12)},
		{[]byte("-4.25"), Num(-4.25)},
		{"oops", Missing},
		{nil, Missing},
		{true, Missing},
		{"NaN", Missing},
		{"Infinity", Missing},
		{[]byte("-Inf"), Missing},
		{math.NaN(), Missing},
		{math.Inf(1), Missing},
	}
	for _, c := range cases {
		if got := NumberFrom(c.in); got != c.want {
			t.Fatalf("NumberFrom(%#v) = %+v, want %+v", c.in, got, c.want)
		}
	}
}

func TestExplorationDataDecode(t *testing.T) {
	payload := `{
		"subject_data": [
			{"subject_ID": 101, "url": "https://img/101.png", "latitude": 12.5, "longitude": -30,
			 "perijove": 20, "is_vortex": true, "zoom": 2},
			{"subject_ID": "x-2", "url": "https://img/x2.png", "latitude": null, "longitude": 4,
			 "perijove": 13, "is_vortex": false}
		],
		"variables": {"Latitude": "latitude", "Zoom": "zoom", "Perijove": "perijove"}
	}`

	var data ExplorationData
	if err := json.Unmarshal([]byte(payload), &data); err != nil {
		t.Fatal(err)
	}
	if len(data.SubjectData) != 2 {
		t.Fatalf("got %d subjects", len(data.SubjectData))
	}

	a, b := data.SubjectData[0], data.SubjectData[1]
	if a.ID.String() != "101" || !a.IsVortex || a.Latitude != Num(12.5) || a.Value("zoom") != Num(2) {
		t.Fatalf("first subject %+v", a)
	}
	if b.ID.String() != "x-2" || b.IsVortex || b.Latitude.Valid || b.Value("zoom").Valid {
		t.Fatalf("second subject %+v", b)
	}

	if got := data.Variables.Fields(); !reflect.DeepEqual(got, []string{"latitude", "perijove", "zoom"}) {
		t.Fatalf("fields %v", got)
	}

	ids, _ := json.Marshal(ExportRequest{SubjectIDs: SubjectIDs(data.SubjectData)})
	if string(ids) != `{"subject_IDs":[101,"x-2"]}` {
		t.Fatalf("export request %s", ids)
	}
}

func TestSubjectEncodeFlattensAttrs(t *testing.T) {
	s := Subject{
		ID:       NewSubjectID("9"),
		URL:      "u",
		Latitude: Num(1),
		Perijove: Num(14),
		Attrs:    map[string]interface{}{"zoom": 3},
	}
	out, err := json.Marshal(s)
	if err != nil {
		t.Fatal(err)
	}

	var m map[string]interface{}
	if err := json.Unmarshal(out, &m); err != nil {
		t.Fatal(err)
	}
	if m["subject_ID"] != 9.0 || m["zoom"] != 3.0 || m["longitude"] != nil || m["is_vortex"] != false {
		t.Fatalf("encoded %s", out)
	}
}

func TestPlotTypeAxes(t *testing.T) {
	if !reflect.DeepEqual(PlotHistogram.Axes(), []string{"x"}) || !reflect.DeepEqual(PlotScatter.Axes(), []string{"x", "y"}) {
		t.Fatalf("axes")
	}
	if PlotType("pie").Axes() != nil {
		t.Fatalf("unknown plot type should have no axes")
	}
}

func TestNonFiniteValuesEncodeAsNull(t *testing.T) {
	payload := `{"subject_ID": 5, "url": "u", "latitude": "NaN", "longitude": "Infinity",
		"perijove": 20, "is_vortex": true}`

	var s Subject
	if err := json.Unmarshal([]byte(payload), &s); err != nil {
		t.Fatal(err)
	}
	if s.Latitude.Valid || s.Longitude.Valid {
		t.Fatalf("non-finite values decoded as %+v %+v", s.Latitude, s.Longitude)
	}

	out, err := json.Marshal([]Number{{Value: math.NaN(), Valid: true}, {Value: math.Inf(-1), Valid: true}, Num(2)})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `[null,null,2]` {
		t.Fatalf("encoded %s", out)
	}
}
