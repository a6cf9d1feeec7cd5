package main

import "testing"

func subcommandNames(t *testing.T, use string) map[string]bool {
	t.Helper()
	root := NewRootCmd()
	names := map[string]bool{}
	if use == "" {
		for _, sub := range root.Commands() {
			names[sub.Name()] = true
		}
		return names
	}
	for _, sub := range root.Commands() {
		if sub.Name() == use {
			for _, s := range sub.Commands() {
				names[s.Name()] = true
			}
			return names
		}
	}
	t.Fatalf("command %q missing", use)
	return nil
}

func TestRootCmdWiring(t *testing.T) {
	names := subcommandNames(t, "")
	for _, name := range []string{"signup", "login", "logout", "whoami", "places", "bookings", "upload-image"} {
		if !names[name] {
			t.Errorf("missing subcommand %q", name)
		}
	}
}

func TestPlacesSubcommands(t *testing.T) {
	names := subcommandNames(t, "places")
	for _, name := range []string{"list", "get", "add", "update"} {
		if !names[name] {
			t.Errorf("places missing subcommand %q", name)
		}
	}
}

func TestBookingsSubcommands(t *testing.T) {
	names := subcommandNames(t, "bookings")
	for _, name := range []string{"list", "add", "cancel"} {
		if !names[name] {
			t.Errorf("bookings missing subcommand %q", name)
		}
	}
}
