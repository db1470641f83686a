package session

import (
	"path/filepath"
	"testing"
)

func TestCredentialsSaveLoadAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "creds.db")

	creds, err := OpenCredentials(path)
	if err != nil {
		t.Fatalf("OpenCredentials err: %v", err)
	}
	if err := creds.Save("tok-1", "ana@mymentor.dev"); err != nil {
		t.Fatalf("Save err: %v", err)
	}
	if err := creds.Close(); err != nil {
		t.Fatalf("Close err: %v", err)
	}

	reopened, err := OpenCredentials(path)
	if err != nil {
		t.Fatalf("reopen err: %v", err)
	}
	defer reopened.Close()

	if reopened.Token() != "tok-1" || reopened.Email() != "ana@mymentor.dev" {
		t.Fatalf("persisted pair lost: %q / %q", reopened.Token(), reopened.Email())
	}
}

func TestCredentialsSaveOverwrites(t *testing.T) {
	creds, err := OpenCredentials(filepath.Join(t.TempDir(), "creds.db"))
	if err != nil {
		t.Fatalf("OpenCredentials err: %v", err)
	}
	defer creds.Close()

	if err := creds.Save("tok-1", "a@x.dev"); err != nil {
		t.Fatalf("Save err: %v", err)
	}
	if err := creds.Save("tok-2", "b@x.dev"); err != nil {
		t.Fatalf("second Save err: %v", err)
	}

	if creds.Token() != "tok-2" || creds.Email() != "b@x.dev" {
		t.Fatalf("latest write should win: %q / %q", creds.Token(), creds.Email())
	}
}

func TestCredentialsClearIsIdempotent(t *testing.T) {
	creds, err := OpenCredentials(filepath.Join(t.TempDir(), "creds.db"))
	if err != nil {
		t.Fatalf("OpenCredentials err: %v", err)
	}
	defer creds.Close()

	if err := creds.Save("tok", "a@x.dev"); err != nil {
		t.Fatalf("Save err: %v", err)
	}
	if err := creds.Clear(); err != nil {
		t.Fatalf("Clear err: %v", err)
	}
	if err := creds.Clear(); err != nil {
		t.Fatalf("second Clear err: %v", err)
	}

	if creds.Token() != "" || creds.Email() != "" {
		t.Fatal("clear should wipe both values")
	}
}

func TestCredentialsEmptyStore(t *testing.T) {
	creds, err := OpenCredentials(filepath.Join(t.TempDir(), "creds.db"))
	if err != nil {
		t.Fatalf("OpenCredentials err: %v", err)
	}
	defer creds.Close()

	if creds.Token() != "" || creds.Email() != "" {
		t.Fatal("fresh store should be empty")
	}
}
