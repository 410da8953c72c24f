package service

import (
	"testing"

	"github.com/storecraft/internal/db"
)

func TestResolveByHostMatchesDomain(t *testing.T) {
	cleanup := setupServiceTestDB(t)
	defer cleanup()

	db.DB.Create(&db.Tenant{Name: "默认店", Domain: "default.example.com"})
	db.DB.Create(&db.Tenant{Name: "香氛店", Domain: "aroma.example.com"})

	svc := NewTenantService(db.DB)
	tenant, err := svc.ResolveByHost("aroma.example.com:8080")
	if err != nil {
		t.Fatalf("ResolveByHost returned error: %v", err)
	}
	if tenant.Name != "香氛店" {
		t.Fatalf("expected domain match, got %s", tenant.Name)
	}
}

func TestResolveByHostFallsBackToFirstTenant(t *testing.T) {
	cleanup := setupServiceTestDB(t)
	defer cleanup()

	db.DB.Create(&db.Tenant{Name: "默认店"})

	svc := NewTenantService(db.DB)
	tenant, err := svc.ResolveByHost("unknown.example.com")
	if err != nil {
		t.Fatalf("ResolveByHost returned error: %v", err)
	}
	if tenant.Name != "默认店" {
		t.Fatalf("expected fallback tenant, got %s", tenant.Name)
	}
}

func TestEnsureDefaultCreatesTenantOnce(t *testing.T) {
	cleanup := setupServiceTestDB(t)
	defer cleanup()

	svc := NewTenantService(db.DB)
	first, err := svc.EnsureDefault("我的店")
	if err != nil {
		t.Fatalf("EnsureDefault returned error: %v", err)
	}

	second, err := svc.EnsureDefault("另一间店")
	if err != nil {
		t.Fatalf("EnsureDefault returned error: %v", err)
	}
	if first.ID != second.ID {
		t.Fatal("expected existing tenant reused")
	}
}
