package rdb

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/acsops/acsops/domain/model"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := OpenFromURL("sqlite::memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestOpenFromURLRejectsUnknownScheme(t *testing.T) {
	if _, err := OpenFromURL("postgres://localhost/acsops"); err == nil {
		t.Fatal("expected error for unsupported scheme")
	}
}

func TestDeploymentRoundTrip(t *testing.T) {
	repo := NewDeploymentRepository(openTestDB(t))
	now := time.Now().UTC().Truncate(time.Second)
	d := &model.Deployment{
		ClusterName: "myapp",
		Image:       "registry.example.com/myorg/myapp",
		AppID:       "myapp",
		Outcome:     model.OutcomeSucceeded,
		StartedAt:   now,
		FinishedAt:  now.Add(time.Minute),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := repo.Create(context.Background(), d); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if !strings.HasPrefix(d.ID, "dep-") {
		t.Errorf("id = %q, want dep- prefix", d.ID)
	}

	got, err := repo.Get(context.Background(), d.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got.Outcome != model.OutcomeSucceeded || got.Image != d.Image || got.ClusterName != "myapp" {
		t.Errorf("unexpected record: %+v", got)
	}
}

func TestDeploymentGetNotFound(t *testing.T) {
	repo := NewDeploymentRepository(openTestDB(t))
	_, err := repo.Get(context.Background(), "dep-missing")
	if !errors.Is(err, model.ErrDeploymentNotFound) {
		t.Fatalf("expected ErrDeploymentNotFound, got %v", err)
	}
}

func TestDeploymentListOrdered(t *testing.T) {
	repo := NewDeploymentRepository(openTestDB(t))
	base := time.Now().UTC().Add(-time.Hour)
	for i, img := range []string{"a", "b", "c"} {
		d := &model.Deployment{
			Image:     img,
			Outcome:   model.OutcomeSucceeded,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
			UpdatedAt: base,
		}
		if err := repo.Create(context.Background(), d); err != nil {
			t.Fatalf("Create returned error: %v", err)
		}
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
