package state

import (
	"context"
	"errors"
	"testing"

	"jude-explorer/internal/models"
)

type stubSource struct {
	data *models.ExplorationData
	err  error
}

func (s *stubSource) Fetch(context.Context) (*models.ExplorationData, error) {
	return s.data, s.err
}

func TestStoreLoad(t *testing.T) {
	src := &stubSource{data: &models.ExplorationData{SubjectData: []models.Subject{{URL: "a"}}}}
	st := NewStore(src)

	if _, err := st.Session(); !errors.Is(err, ErrNotLoaded) {
		t.Fatalf("err = %v, want ErrNotLoaded", err)
	}
	if err := st.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	sess, err := st.Session()
	if err != nil {
		t.Fatalf("Session: %v", err)
	}
	if len(sess.Dataset().SubjectData) != 1 || st.LoadedAt().IsZero() {
		t.Fatalf("dataset not installed")
	}
}

func TestStoreLoadFailureKeepsPrevious(t *testing.T) {
	src := &stubSource{data: &models.ExplorationData{SubjectData: []models.Subject{{URL: "a"}}}}
	st := NewStore(src)
	if err := st.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	before, _ := st.Session()

	src.err = errors.New("backend down")
	if err := st.Load(context.Background()); err == nil {
		t.Fatalf("expected load error")
	}
	after, _ := st.Session()
	if before != after {
		t.Fatalf("session replaced after failed load")
	}
}

func TestReloadStartsFreshSession(t *testing.T) {
	st := NewStore(&stubSource{data: &models.ExplorationData{}})
	st.Load(context.Background())
	first, _ := st.Session()
	st.Load(context.Background())
	second, _ := st.Session()
	if first == second {
		t.Fatalf("reload should discard derived state")
	}
}
