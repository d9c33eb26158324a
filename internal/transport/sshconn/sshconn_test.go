package sshconn

import "testing"

func TestResolveAddressRequiresHost(t *testing.T) {
	if _, err := resolveAddress("", ""); err == nil {
		t.Fatal("expected error for empty host")
	}
}

func TestResolveAddressDefaultPort(t *testing.T) {
	addr, err := resolveAddress("node-a", "")
	if err != nil {
		t.Fatalf("resolveAddress: %v", err)
	}
	if addr != "node-a:22" {
		t.Fatalf("got %q, want node-a:22", addr)
	}
}

func TestResolveAddressExplicitPort(t *testing.T) {
	addr, err := resolveAddress("node-a", "2222")
	if err != nil {
		t.Fatalf("resolveAddress: %v", err)
	}
	if addr != "node-a:2222" {
		t.Fatalf("got %q, want node-a:2222", addr)
	}
}

func TestResolveAddressAlreadyHasPort(t *testing.T) {
	addr, err := resolveAddress("node-a:2022", "")
	if err != nil {
		t.Fatalf("resolveAddress: %v", err)
	}
	if addr != "node-a:2022" {
		t.Fatalf("got %q, want node-a:2022", addr)
	}
}

func TestBuildClientConfigRequiresUser(t *testing.T) {
	if _, err := buildClientConfig(Config{Host: "node-a"}); err == nil {
		t.Fatal("expected error for missing user")
	}
}

func TestLoadSignerRequiresKeyPath(t *testing.T) {
	if _, err := loadSigner("", nil); err == nil {
		t.Fatal("expected error for missing key path")
	}
}
