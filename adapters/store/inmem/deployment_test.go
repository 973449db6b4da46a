package inmem

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/acsops/acsops/domain/model"
)

func TestDeploymentRepositoryCreateAssignsID(t *testing.T) {
	repo := NewDeploymentRepository()
	d := &model.Deployment{ClusterName: "myapp", Image: "repo/app:1", Outcome: model.OutcomeSucceeded}
	if err := repo.Create(context.Background(), d); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if !strings.HasPrefix(d.ID, "dep-") {
		t.Errorf("id = %q, want dep- prefix", d.ID)
	}
	if d.CreatedAt.IsZero() || d.UpdatedAt.IsZero() {
		t.Errorf("timestamps not set: %+v", d)
	}
}

func TestDeploymentRepositoryGet(t *testing.T) {
	repo := NewDeploymentRepository()
	d := &model.Deployment{ClusterName: "myapp", Outcome: model.OutcomeTunnelFailed}
	if err := repo.Create(context.Background(), d); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	got, err := repo.Get(context.Background(), d.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got.Outcome != model.OutcomeTunnelFailed {
		t.Errorf("outcome = %q", got.Outcome)
	}

	// Mutating the returned record must not touch the stored copy.
	got.Outcome = model.OutcomeSucceeded
	again, _ := repo.Get(context.Background(), d.ID)
	if again.Outcome != model.OutcomeTunnelFailed {
		t.Error("stored record mutated through returned copy")
	}
}

func TestDeploymentRepositoryGetNotFound(t *testing.T) {
	repo := NewDeploymentRepository()
	_, err := repo.Get(context.Background(), "dep-missing")
	if !errors.Is(err, model.ErrDeploymentNotFound) {
		t.Fatalf("expected ErrDeploymentNotFound, got %v", err)
	}
}

func TestDeploymentRepositoryListOrdered(t *testing.T) {
	repo := NewDeploymentRepository()
	for _, img := range []string{"a", "b", "c"} {
		if err := repo.Create(context.Background(), &model.Deployment{Image: img}); err != nil {
			t.Fatalf("Create returned error: %v", err)
		}
		time.Sleep(time.Millisecond)
	}
	out, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("len = %d, want 3", len(out))
	}
	for i, want := range []string{"a", "b", "c"} {
		if out[i].Image != want {
			t.Errorf("out[%d].Image = %q, want %q", i, out[i].Image, want)
		}
	}
}
