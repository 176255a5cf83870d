package models

import (
	"bytes"
	"encoding/json"
	"sort"
	"strconv"
)

// Field names with dedicated Subject fields
const (
	FieldSubjectID = "subject_ID"
	FieldURL       = "url"
	FieldLatitude  = "latitude"
	FieldLongitude = "longitude"
	FieldPerijove  = "perijove"
	FieldIsVortex  = "is_vortex"
)

// SubjectID identifies a subject. The backend may send it as a JSON
// number or a string; it is echoed back in the same form.
type SubjectID struct {
	raw     string
	numeric bool
}

// NewSubjectID builds a SubjectID from its textual form
func NewSubjectID(s string) SubjectID {
	_, err := strconv.ParseFloat(s, 64)
	return SubjectID{raw: s, numeric: err == nil}
}

func (id SubjectID) String() string { return id.raw }

func (id SubjectID) MarshalJSON() ([]byte, error) {
	if id.numeric {
		return []byte(id.raw), nil
	}
	return json.Marshal(id.raw)
}

func (id *SubjectID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = SubjectID{raw: s}
		return nil
	}
	if bytes.Equal(data, []byte("null")) {
		*id = SubjectID{}
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = SubjectID{raw: n.String(), numeric: true}
	return nil
}

// Subject is one observed item of the dataset. Subjects are treated as
// immutable once loaded.
type Subject struct {
	ID        SubjectID
	URL       string
	Latitude  Number
	Longitude Number
	Perijove  Number
	IsVortex  bool

	// Attrs holds every other field sent by the backend, keyed by name
	Attrs map[string]interface{}
}

// Value returns the named numeric field. Unknown or non-numeric fields
// are reported as missing.
func (s Subject) Value(field string) Number {
	switch field {
	case FieldLatitude:
		return s.Latitude
	case FieldLongitude:
		return s.Longitude
	case FieldPerijove:
		return s.Perijove
	}
	if v, ok := s.Attrs[field]; ok {
		return NumberFrom(v)
	}
	return Missing
}

// SubjectFromMap converts a decoded JSON object or a database row into a
// Subject.
func SubjectFromMap(m map[string]interface{}) Subject {
	s := Subject{Attrs: make(map[string]interface{})}
	for k, v := range m {
		switch k {
		case FieldSubjectID:
			s.ID = subjectIDFrom(v)
		case FieldURL:
			switch u := v.(type) {
			case string:
				s.URL = u
			case []byte:
				s.URL = string(u)
			}
		case FieldLatitude:
			s.Latitude = NumberFrom(v)
		case FieldLongitude:
			s.Longitude = NumberFrom(v)
		case FieldPerijove:
			s.Perijove = NumberFrom(v)
		case FieldIsVortex:
			s.IsVortex = truthy(v)
		default:
			s.Attrs[k] = v
		}
	}
	return s
}

func subjectIDFrom(v interface{}) SubjectID {
	switch t := v.(type) {
	case string:
		return SubjectID{raw: t}
	case []byte:
		return SubjectID{raw: string(t)}
	case json.Number:
		return SubjectID{raw: t.String(), numeric: true}
	case float64:
		return SubjectID{raw: strconv.FormatFloat(t, 'f', -1, 64), numeric: true}
	case int64:
		return SubjectID{raw: strconv.FormatInt(t, 10), numeric: true}
	case int:
		return SubjectID{raw: strconv.Itoa(t), numeric: true}
	}
	return SubjectID{}
}

func truthy(v interface{}) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		b, _ := strconv.ParseBool(t)
		return b
	case []byte:
		b, _ := strconv.ParseBool(string(t))
		return b
	case json.Number:
		f, _ := t.Float64()
		return f != 0
	case float64:
		return t != 0
	case int64:
		return t != 0
	case int:
		return t != 0
	}
	return false
}

func (s *Subject) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var m map[string]interface{}
	if err := dec.Decode(&m); err != nil {
		return err
	}
	*s = SubjectFromMap(m)
	return nil
}

func (s Subject) MarshalJSON() ([]byte, error) {
	m := make(map[string]interface{}, len(s.Attrs)+6)
	for k, v := range s.Attrs {
		m[k] = v
	}
	m[FieldSubjectID] = s.ID
	m[FieldURL] = s.URL
	m[FieldLatitude] = s.Latitude
	m[FieldLongitude] = s.Longitude
	m[FieldPerijove] = s.Perijove
	m[FieldIsVortex] = s.IsVortex
	return json.Marshal(m)
}

// Catalogue maps a display key to a plottable record field name
type Catalogue map[string]string

// Fields returns the catalogue's field names in display-key order
func (c Catalogue) Fields() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	fields := make([]string, 0, len(keys))
	for _, k := range keys {
		fields = append(fields, c[k])
	}
	return fields
}

// ExplorationData is the payload of the dataset retrieval endpoint
type ExplorationData struct {
	SubjectData []Subject `json:"subject_data"`
	Variables   Catalogue `json:"variables"`
}

// SubjectIDs returns the identifiers of subjects, in order
func SubjectIDs(subjects []Subject) []SubjectID {
	ids := make([]SubjectID, len(subjects))
	for i, s := range subjects {
		ids[i] = s.ID
	}
	return ids
}
